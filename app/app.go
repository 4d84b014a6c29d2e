// Package app wires configuration, storage, events and the modules into one
// application.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/frolf-progression/app/database"
	"github.com/Black-And-White-Club/frolf-progression/app/eventbus"
	"github.com/Black-And-White-Club/frolf-progression/app/modules/level"
	"github.com/Black-And-White-Club/frolf-progression/app/modules/player"
	"github.com/Black-And-White-Club/frolf-progression/app/modules/report"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/observability"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/observability/attr"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/timeparse"
	"github.com/Black-And-White-Club/frolf-progression/config"
	"github.com/uptrace/bun"
)

// App holds the initialized modules and the resources they share.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	DB            *bun.DB
	EventBus      *eventbus.EventBus
	Clock         timeparse.Clock
	Modules       *Modules
}

// Modules groups every module.
type Modules struct {
	PlayerModule *player.Module
	LevelModule  *level.Module
	ReportModule *report.Module
}

// Option customizes application start-up.
type Option func(*options)

type options struct {
	clock   timeparse.Clock
	migrate bool
}

// WithClock overrides the wall clock used for prize and completion dates.
func WithClock(c timeparse.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithMigrations applies pending migrations during start-up.
func WithMigrations() Option {
	return func(o *options) { o.migrate = true }
}

// New connects to storage and the event bus and initializes every module.
func New(ctx context.Context, cfg *config.Config, obs observability.Observability, opts ...Option) (*App, error) {
	o := options{clock: timeparse.SystemClock{}}
	for _, opt := range opts {
		opt(&o)
	}
	logger := obs.Logger

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if o.migrate {
		if err := database.Migrate(ctx, db, logger); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	if cfg.Events.Stream != "" {
		if err := eventbus.EnsureStream(ctx, cfg.Events.NATSURL, cfg.Events.Stream, logger); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	bus, err := eventbus.New(cfg.Events.NATSURL, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}

	playerModule, err := player.NewPlayerModule(ctx, obs, cfg.Progression, bus, db)
	if err != nil {
		_ = bus.Close()
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize player module: %w", err)
	}

	app := &App{
		Config:        cfg,
		Observability: obs,
		DB:            db,
		EventBus:      bus,
		Clock:         o.clock,
		Modules: &Modules{
			PlayerModule: playerModule,
			LevelModule:  level.NewLevelModule(ctx, obs, o.clock, bus, db),
			ReportModule: report.NewReportModule(ctx, obs, db),
		},
	}

	logger.InfoContext(ctx, "Application initialized",
		attr.String("driver", cfg.Database.Driver),
		attr.Bool("nats", cfg.Events.NATSURL != ""),
	)
	return app, nil
}

// Close flushes metrics and releases the event bus and database.
func (a *App) Close() error {
	var errs []error
	if err := a.Observability.WriteMetrics(a.Config.Observability.MetricsTextfile); err != nil {
		errs = append(errs, err)
	}
	if a.EventBus != nil {
		if err := a.EventBus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event bus: %w", err))
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
