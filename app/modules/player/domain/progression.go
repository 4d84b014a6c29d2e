package playerdomain

import (
	"errors"
	"math"
)

var (
	// ErrNegativeExperience rejects experience decreases; progress is
	// left untouched.
	ErrNegativeExperience = errors.New("experience amount must not be negative")

	// ErrInvalidThreshold is returned when the level-up threshold is not
	// positive, which would never terminate the level-up loop.
	ErrInvalidThreshold = errors.New("experience threshold must be positive")

	// ErrProgressOverflow is returned when experience or threshold would
	// exceed the int range.
	ErrProgressOverflow = errors.New("progression values overflow")
)

// Progress is the mutable progression state of one player.
type Progress struct {
	Level       int
	Experience  int
	Threshold   int // experience needed for the next level-up
	RewardCount int // boosts granted by the next level-up
}

// LevelUp describes one applied level-up and the reward it earned.
type LevelUp struct {
	Level     int       `json:"level"`
	BoostType BoostType `json:"boost_type"`
	Count     int       `json:"count"`
}

// AddExperience adds amount and applies one level-up per threshold crossed,
// carrying the overflow into the next level. On return Experience is below
// Threshold. On error p is unchanged.
func (p *Progress) AddExperience(amount int, src RandomSource) ([]LevelUp, error) {
	if amount < 0 {
		return nil, ErrNegativeExperience
	}
	if p.Threshold <= 0 {
		return nil, ErrInvalidThreshold
	}
	if amount > math.MaxInt-p.Experience {
		return nil, ErrProgressOverflow
	}

	next := *p
	next.Experience += amount

	var ups []LevelUp
	for next.Experience >= next.Threshold {
		if next.Threshold > math.MaxInt/2 {
			return nil, ErrProgressOverflow
		}
		overflow := next.Experience - next.Threshold
		ups = append(ups, next.levelUp(src))
		next.Experience = overflow
	}

	*p = next
	return ups, nil
}

// levelUp advances one level: experience resets, the threshold doubles and
// the current reward count of a random boost type is granted. The next
// level-up grants one more.
func (p *Progress) levelUp(src RandomSource) LevelUp {
	p.Level++
	p.Experience = 0
	p.Threshold *= 2

	up := LevelUp{
		Level:     p.Level,
		BoostType: RandomBoostType(src),
		Count:     p.RewardCount,
	}
	p.RewardCount++
	return up
}
