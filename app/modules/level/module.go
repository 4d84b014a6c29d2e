package level

import (
	"context"

	"github.com/Black-And-White-Club/frolf-progression/app/eventbus"
	levelservice "github.com/Black-And-White-Club/frolf-progression/app/modules/level/application"
	leveldb "github.com/Black-And-White-Club/frolf-progression/app/modules/level/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/observability"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/timeparse"
	"github.com/uptrace/bun"
)

// Module represents the level module.
type Module struct {
	LevelService levelservice.Service
	Repository   leveldb.Repository
}

// NewLevelModule creates and initializes a new level module.
func NewLevelModule(
	ctx context.Context,
	obs observability.Observability,
	clock timeparse.Clock,
	publisher eventbus.Publisher,
	db *bun.DB,
) *Module {
	logger := obs.Logger
	logger.InfoContext(ctx, "level.NewLevelModule initializing")

	repo := leveldb.NewRepository(db)
	service := levelservice.NewLevelService(
		repo,
		logger,
		obs.Metrics,
		obs.Tracer("level"),
		db,
		levelservice.WithClock(clock),
		levelservice.WithPublisher(publisher),
	)

	return &Module{
		LevelService: service,
		Repository:   repo,
	}
}
