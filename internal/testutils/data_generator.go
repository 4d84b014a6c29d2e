package testutils

import (
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// TestDataGenerator creates realistic player, level and prize names.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
	seen  map[string]struct{}
}

// NewTestDataGenerator creates a new test data generator with optional seed.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
		seen:  make(map[string]struct{}),
	}
}

// Seed returns the seed, for reproducing a failing run.
func (g *TestDataGenerator) Seed() int64 { return g.seed }

// Username returns a username not returned before by this generator.
func (g *TestDataGenerator) Username() string {
	for {
		name := strings.ToLower(g.faker.Username())
		if _, dup := g.seen[name]; !dup {
			g.seen[name] = struct{}{}
			return name
		}
	}
}

// Usernames returns count distinct usernames.
func (g *TestDataGenerator) Usernames(count int) []string {
	out := make([]string, count)
	for i := range out {
		out[i] = g.Username()
	}
	return out
}

// LevelTitle returns a level title such as "Misty Forest".
func (g *TestDataGenerator) LevelTitle() string {
	return g.faker.AdjectiveDescriptive() + " " + g.faker.NounConcrete()
}

// PrizeTitle returns a prize title.
func (g *TestDataGenerator) PrizeTitle() string {
	return g.faker.Color() + " " + g.faker.NounConcrete()
}

// Score returns a level score between 0 and 100.
func (g *TestDataGenerator) Score() int {
	return g.faker.Number(0, 100)
}

// Experience returns an experience gain between 0 and limit.
func (g *TestDataGenerator) Experience(limit int) int {
	return g.faker.Number(0, limit)
}
