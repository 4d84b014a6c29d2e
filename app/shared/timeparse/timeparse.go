// Package timeparse turns operator input such as "today", "yesterday" or
// "2026-03-14" into calendar days.
package timeparse

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

const dayLayout = "2006-01-02"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock struct{ T time.Time }

func (c FixedClock) Now() time.Time { return c.T }

// Today returns the current UTC calendar day at midnight.
func Today(clock Clock) time.Time {
	return TruncateDay(clock.Now())
}

// TruncateDay returns midnight UTC of the day t falls on in UTC.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Parser resolves natural-language day expressions.
type Parser struct {
	w     *when.Parser
	clock Clock
}

// NewParser creates a Parser using English and common rules.
func NewParser(clock Clock) *Parser {
	if clock == nil {
		clock = SystemClock{}
	}
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Parser{w: w, clock: clock}
}

// ParseDay resolves input to a UTC calendar day.
func (p *Parser) ParseDay(input string) (time.Time, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(dayLayout, input); err == nil {
		return t, nil
	}

	base := p.clock.Now().UTC()
	if input == "today" || input == "now" {
		return TruncateDay(base), nil
	}

	r, err := p.w.Parse(input, base)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", input, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("could not recognize date %q", input)
	}
	return TruncateDay(r.Time), nil
}
