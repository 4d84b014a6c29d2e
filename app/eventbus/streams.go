package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/frolf-progression/app/shared/observability/attr"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// SubjectFilter matches every topic in Topics.
const SubjectFilter = "progression.>"

// EnsureStream creates the JetStream stream that retains published events,
// if it does not exist yet. Core NATS publishes on matching subjects are
// captured by the stream.
func EnsureStream(ctx context.Context, natsURL, name string, logger *slog.Logger) error {
	conn, err := nc.Connect(natsURL, nc.Timeout(5*time.Second))
	if err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	defer conn.Close()

	js, err := jetstream.New(conn)
	if err != nil {
		return fmt.Errorf("failed to create JetStream context: %w", err)
	}

	_, err = js.Stream(ctx, name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, jetstream.ErrStreamNotFound) {
		return fmt.Errorf("failed to check stream %s: %w", name, err)
	}

	if _, err := js.CreateStream(ctx, jetstream.StreamConfig{
		Name:     name,
		Subjects: []string{SubjectFilter},
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to create JetStream stream", attr.String("stream", name), attr.Error(err))
		return fmt.Errorf("failed to create stream %s: %w", name, err)
	}
	logger.InfoContext(ctx, "Created JetStream stream", attr.String("stream", name))
	return nil
}
