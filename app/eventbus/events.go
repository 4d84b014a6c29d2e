package eventbus

import "time"

// Topics published after a successful commit.
const (
	TopicPlayerRegistered = "progression.player.registered"
	TopicPlayerLeveledUp  = "progression.player.leveled_up"
	TopicBoostGranted     = "progression.boost.granted"
	TopicPrizeGranted     = "progression.prize.granted"
)

// Topics lists every topic this service publishes.
func Topics() []string {
	return []string{TopicPlayerRegistered, TopicPlayerLeveledUp, TopicBoostGranted, TopicPrizeGranted}
}

// PlayerRegisteredPayload is published when a player is created.
type PlayerRegisteredPayload struct {
	Username string `json:"username"`
}

// PlayerLeveledUpPayload is published once per applied level-up.
type PlayerLeveledUpPayload struct {
	Username  string `json:"username"`
	Level     int    `json:"level"`
	BoostType string `json:"boost_type"`
	Count     int    `json:"count"`
}

// BoostGrantedPayload is published for a direct boost grant.
type BoostGrantedPayload struct {
	Username  string `json:"username"`
	BoostType string `json:"boost_type"`
	Count     int    `json:"count"`
	Level     string `json:"level,omitempty"`
}

// PrizeGrantedPayload is published when a level prize is recorded.
type PrizeGrantedPayload struct {
	PlayerID string    `json:"player_id"`
	LevelID  int64     `json:"level_id"`
	PrizeID  int64     `json:"prize_id"`
	Received time.Time `json:"received"`
}
