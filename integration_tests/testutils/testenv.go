//go:build integration

// Package testutils starts the containers shared by the integration tests.
package testutils

import (
	"context"
	"fmt"
	"log"
	"sync"
	"testing"

	"github.com/Black-And-White-Club/frolf-progression/app"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/observability"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/timeparse"
	"github.com/Black-And-White-Club/frolf-progression/config"
	"github.com/Black-And-White-Club/frolf-progression/integration_tests/containers"
	internaltestutils "github.com/Black-And-White-Club/frolf-progression/internal/testutils"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// TestEnvironment holds the containers for one test binary.
type TestEnvironment struct {
	Ctx           context.Context
	PgContainer   *postgres.PostgresContainer
	NatsContainer testcontainers.Container
	PostgresDSN   string
	NatsURL       string
}

var (
	globalEnv     *TestEnvironment
	globalEnvErr  error
	globalEnvOnce sync.Once
)

// GetOrCreateTestEnv starts Postgres and NATS once per test binary.
func GetOrCreateTestEnv(t *testing.T) *TestEnvironment {
	t.Helper()
	globalEnvOnce.Do(func() {
		globalEnv, globalEnvErr = newTestEnvironment(context.Background())
	})
	if globalEnvErr != nil {
		t.Fatalf("failed to create test environment: %v", globalEnvErr)
	}
	return globalEnv
}

func newTestEnvironment(ctx context.Context) (*TestEnvironment, error) {
	pgContainer, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to setup postgres container: %w", err)
	}
	natsContainer, natsURL, err := containers.SetupNatsContainer(ctx)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to setup nats container: %w", err)
	}
	return &TestEnvironment{
		Ctx:           ctx,
		PgContainer:   pgContainer,
		NatsContainer: natsContainer,
		PostgresDSN:   dsn,
		NatsURL:       natsURL,
	}, nil
}

// Config returns an application config pointing at the containers.
func (env *TestEnvironment) Config(driver string) *config.Config {
	cfg := config.Default()
	cfg.Database.Driver = driver
	cfg.Database.DSN = env.PostgresDSN
	cfg.Events.NATSURL = env.NatsURL
	cfg.Progression.Seed = 11
	return &cfg
}

// NewApp starts a migrated application on emptied tables.
func (env *TestEnvironment) NewApp(t *testing.T, driver string, opts ...app.Option) *app.App {
	t.Helper()
	opts = append([]app.Option{app.WithMigrations(), app.WithClock(timeparse.SystemClock{})}, opts...)
	a, err := app.New(env.Ctx, env.Config(driver), observability.NewNoop(), opts...)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	t.Cleanup(func() {
		if err := a.Close(); err != nil {
			t.Logf("failed to close app: %v", err)
		}
	})
	if err := internaltestutils.TruncateAll(env.Ctx, a.DB); err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
	return a
}

// Terminate stops the containers. Call it from TestMain after m.Run.
func Terminate() {
	if globalEnv == nil {
		return
	}
	ctx := context.Background()
	if err := globalEnv.NatsContainer.Terminate(ctx); err != nil {
		log.Printf("failed to terminate NATS container: %v", err)
	}
	if err := globalEnv.PgContainer.Terminate(ctx); err != nil {
		log.Printf("failed to terminate postgres container: %v", err)
	}
}
