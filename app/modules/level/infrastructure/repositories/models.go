package leveldb

import (
	"time"

	"github.com/uptrace/bun"
)

// Level is a playable level. OrderIndex positions it in the level list.
type Level struct {
	bun.BaseModel `bun:"table:levels,alias:l"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id"`
	Title         string `bun:"title,notnull,type:varchar(100)" json:"title"`
	OrderIndex    int    `bun:"order_index,notnull,default:0" json:"order"`
}

// Prize is something a player can receive for completing a level.
type Prize struct {
	bun.BaseModel `bun:"table:prizes,alias:pr"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id"`
	Title         string `bun:"title,notnull" json:"title"`
}

// PlayerLevel is one player's status on one level. PlayerID is the player's
// username.
type PlayerLevel struct {
	bun.BaseModel `bun:"table:player_levels,alias:pl"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	PlayerID      string     `bun:"player_id,notnull,type:varchar(100),unique:player_level" json:"player_id"`
	LevelID       int64      `bun:"level_id,notnull,unique:player_level" json:"level_id"`
	Completed     *time.Time `bun:"completed,type:date" json:"completed,omitempty"`
	IsCompleted   bool       `bun:"is_completed,notnull,default:false" json:"is_completed"`
	Score         int        `bun:"score,notnull,default:0" json:"score"`

	// ORM relationships
	Level *Level `bun:"rel:belongs-to,join:level_id=id" json:"level,omitempty"`
}

// LevelPrize records that a player received a prize for a completed level.
type LevelPrize struct {
	bun.BaseModel `bun:"table:level_prizes,alias:lp"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	LevelID       int64     `bun:"level_id,notnull" json:"level_id"`
	PrizeID       int64     `bun:"prize_id,notnull" json:"prize_id"`
	PlayerID      string    `bun:"player_id,notnull,type:varchar(100)" json:"player_id"`
	Received      time.Time `bun:"received,notnull,type:date" json:"received"`

	// ORM relationships
	Prize *Prize `bun:"rel:belongs-to,join:prize_id=id" json:"prize,omitempty"`
}
