package playerdomain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownBoostType is returned for a boost type outside BoostTypes.
var ErrUnknownBoostType = errors.New("unknown boost type")

// BoostType is the kind of reward unit a player can hold.
type BoostType string

const (
	BoostPower     BoostType = "power"
	BoostIntellect BoostType = "intellect"
	BoostDexterity BoostType = "dexterity"
)

// BoostTypes returns the fixed set of boost types in a stable order.
func BoostTypes() []BoostType {
	return []BoostType{BoostPower, BoostIntellect, BoostDexterity}
}

// IsValid reports whether b is one of BoostTypes.
func (b BoostType) IsValid() bool {
	switch b {
	case BoostPower, BoostIntellect, BoostDexterity:
		return true
	}
	return false
}

func (b BoostType) String() string { return string(b) }

// ParseBoostType converts user input into a BoostType.
func ParseBoostType(s string) (BoostType, error) {
	b := BoostType(strings.ToLower(strings.TrimSpace(s)))
	if !b.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownBoostType, s)
	}
	return b, nil
}
