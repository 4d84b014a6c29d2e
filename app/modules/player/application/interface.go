package playerservice

import (
	"context"

	playerdomain "github.com/Black-And-White-Club/frolf-progression/app/modules/player/domain"
)

// Service handles player registration, experience and boost holdings.
type Service interface {
	RegisterPlayer(ctx context.Context, username string) (*PlayerView, error)
	GetPlayer(ctx context.Context, username string) (*PlayerView, error)
	ListPlayers(ctx context.Context) ([]PlayerView, error)
	DeletePlayer(ctx context.Context, username string) error

	IncreaseExperience(ctx context.Context, username string, amount int) (*ExperienceResult, error)

	GrantBoost(ctx context.Context, username string, boostType playerdomain.BoostType, count int) (*BoostGrant, error)
	AddBoostForLevel(ctx context.Context, username, levelTitle string, boostType playerdomain.BoostType, count int) (*BoostGrant, error)
	ListBoosts(ctx context.Context, username string) ([]BoostHolding, error)
}
