package playerdb

import (
	"time"

	"github.com/uptrace/bun"
)

// Player is a tracked player and its progression state.
type Player struct {
	bun.BaseModel        `bun:"table:players,alias:p"`
	ID                   int64     `bun:"id,pk,autoincrement" json:"id"`
	Username             string    `bun:"username,unique,notnull" json:"username"`
	Level                int       `bun:"level,notnull,default:1" json:"level"`
	Experience           int       `bun:"experience,notnull,default:0" json:"experience"`
	ExperienceForLevelUp int       `bun:"experience_for_level_up,notnull,default:1000" json:"experience_for_level_up"`
	RewardCount          int       `bun:"reward_count,notnull,default:1" json:"reward_count"`
	LevelsCompleted      []string  `bun:"levels_completed" json:"levels_completed"`
	CreatedAt            time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt            time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// HasCompletedLevel reports whether title is already in LevelsCompleted.
func (p *Player) HasCompletedLevel(title string) bool {
	for _, t := range p.LevelsCompleted {
		if t == title {
			return true
		}
	}
	return false
}

// Boost is a boost-type record shared by every holding of that type.
type Boost struct {
	bun.BaseModel `bun:"table:boosts,alias:b"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id"`
	Type          string `bun:"type,unique,notnull,type:varchar(32)" json:"type"`
}

// PlayerBoost is a counted holding: how many boosts of one type a player has.
// There is at most one holding per (player, boost type).
type PlayerBoost struct {
	bun.BaseModel `bun:"table:player_boosts,alias:pb"`
	ID            int64 `bun:"id,pk,autoincrement" json:"id"`
	PlayerID      int64 `bun:"player_id,notnull,unique:player_boost" json:"player_id"`
	BoostID       int64 `bun:"boost_id,notnull,unique:player_boost" json:"boost_id"`
	Count         int   `bun:"count,notnull,default:0" json:"count"`

	// ORM relationships
	Boost *Boost `bun:"rel:belongs-to,join:boost_id=id" json:"boost,omitempty"`
}
