package player

import (
	"context"
	"fmt"

	"github.com/Black-And-White-Club/frolf-progression/app/eventbus"
	playerservice "github.com/Black-And-White-Club/frolf-progression/app/modules/player/application"
	playerdomain "github.com/Black-And-White-Club/frolf-progression/app/modules/player/domain"
	playerdb "github.com/Black-And-White-Club/frolf-progression/app/modules/player/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/observability"
	"github.com/Black-And-White-Club/frolf-progression/config"
	"github.com/uptrace/bun"
)

// Module represents the player module.
type Module struct {
	PlayerService playerservice.Service
	Repository    playerdb.Repository
}

// NewPlayerModule creates and initializes a new player module.
func NewPlayerModule(
	ctx context.Context,
	obs observability.Observability,
	cfg config.ProgressionConfig,
	publisher eventbus.Publisher,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "player.NewPlayerModule initializing")

	// 1. Initialize Repository
	repo := playerdb.NewRepository(db)

	// 2. Initialize the reward randomness
	rng, err := playerdomain.NewRandomSource(cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to seed player randomness: %w", err)
	}

	// 3. Initialize Service
	service := playerservice.NewPlayerService(
		repo,
		logger,
		obs.Metrics,
		obs.Tracer("player"),
		db,
		playerservice.WithRandomSource(rng),
		playerservice.WithPublisher(publisher),
		playerservice.WithDefaults(playerservice.Defaults{
			InitialThreshold:   cfg.InitialThreshold,
			InitialRewardCount: cfg.InitialRewardCount,
		}),
	)

	logger.InfoContext(ctx, "player module initialized")
	return &Module{
		PlayerService: service,
		Repository:    repo,
	}, nil
}
