package playerservice

import (
	"errors"

	playerdomain "github.com/Black-And-White-Club/frolf-progression/app/modules/player/domain"
	playerdb "github.com/Black-And-White-Club/frolf-progression/app/modules/player/infrastructure/repositories"
)

var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrInvalidUsername   = errors.New("username must not be empty")
	ErrInvalidBoostCount = errors.New("boost count must not be negative")
)

// Defaults are the progression values a newly registered player starts with.
type Defaults struct {
	InitialThreshold   int
	InitialRewardCount int
}

// DefaultDefaults matches a fresh player: level 1, 1000 experience to the
// next level, one boost for the first level-up.
func DefaultDefaults() Defaults {
	return Defaults{InitialThreshold: 1000, InitialRewardCount: 1}
}

// PlayerView is the read model returned to callers.
type PlayerView struct {
	Username             string   `json:"username"`
	Level                int      `json:"level"`
	Experience           int      `json:"experience"`
	ExperienceForLevelUp int      `json:"experience_for_level_up"`
	RewardCount          int      `json:"reward_count"`
	LevelsCompleted      []string `json:"levels_completed"`
}

func toPlayerView(p *playerdb.Player) PlayerView {
	levels := make([]string, len(p.LevelsCompleted))
	copy(levels, p.LevelsCompleted)
	return PlayerView{
		Username:             p.Username,
		Level:                p.Level,
		Experience:           p.Experience,
		ExperienceForLevelUp: p.ExperienceForLevelUp,
		RewardCount:          p.RewardCount,
		LevelsCompleted:      levels,
	}
}

// ExperienceResult is the outcome of IncreaseExperience.
type ExperienceResult struct {
	Player   PlayerView             `json:"player"`
	LevelUps []playerdomain.LevelUp `json:"level_ups"`
}

// BoostHolding is how many boosts of one type a player holds.
type BoostHolding struct {
	Type  playerdomain.BoostType `json:"type"`
	Count int                    `json:"count"`
}

// BoostGrant is the outcome of a direct boost grant.
type BoostGrant struct {
	Username string                 `json:"username"`
	Type     playerdomain.BoostType `json:"type"`
	Granted  int                    `json:"granted"`
	Total    int                    `json:"total"`
}
