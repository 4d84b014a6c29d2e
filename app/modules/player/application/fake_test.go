package playerservice

import (
	"context"

	playerdb "github.com/Black-And-White-Club/frolf-progression/app/modules/player/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Player Repo
// ------------------------

type FakePlayerRepo struct {
	trace []string

	CreatePlayerFunc     func(ctx context.Context, db bun.IDB, player *playerdb.Player) error
	GetPlayerFunc        func(ctx context.Context, db bun.IDB, username string) (*playerdb.Player, error)
	UpdateProgressFunc   func(ctx context.Context, db bun.IDB, player *playerdb.Player) error
	DeletePlayerFunc     func(ctx context.Context, db bun.IDB, username string) error
	ListPlayersFunc      func(ctx context.Context, db bun.IDB) ([]*playerdb.Player, error)
	GetOrCreateBoostFunc func(ctx context.Context, db bun.IDB, boostType string) (*playerdb.Boost, error)
	GetHoldingFunc       func(ctx context.Context, db bun.IDB, playerID, boostID int64) (*playerdb.PlayerBoost, error)
	CreateHoldingFunc    func(ctx context.Context, db bun.IDB, holding *playerdb.PlayerBoost) error
	IncrementHoldingFunc func(ctx context.Context, db bun.IDB, holdingID int64, delta int) error
	ListHoldingsFunc     func(ctx context.Context, db bun.IDB, playerID int64) ([]*playerdb.PlayerBoost, error)
}

func NewFakePlayerRepo() *FakePlayerRepo {
	return &FakePlayerRepo{
		trace: []string{},
	}
}

func (f *FakePlayerRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakePlayerRepo) CreatePlayer(ctx context.Context, db bun.IDB, player *playerdb.Player) error {
	f.record("CreatePlayer")
	if f.CreatePlayerFunc != nil {
		return f.CreatePlayerFunc(ctx, db, player)
	}
	return nil
}

func (f *FakePlayerRepo) GetPlayer(ctx context.Context, db bun.IDB, username string) (*playerdb.Player, error) {
	f.record("GetPlayer")
	if f.GetPlayerFunc != nil {
		return f.GetPlayerFunc(ctx, db, username)
	}
	return nil, playerdb.ErrNotFound
}

func (f *FakePlayerRepo) UpdateProgress(ctx context.Context, db bun.IDB, player *playerdb.Player) error {
	f.record("UpdateProgress")
	if f.UpdateProgressFunc != nil {
		return f.UpdateProgressFunc(ctx, db, player)
	}
	return nil
}

func (f *FakePlayerRepo) DeletePlayer(ctx context.Context, db bun.IDB, username string) error {
	f.record("DeletePlayer")
	if f.DeletePlayerFunc != nil {
		return f.DeletePlayerFunc(ctx, db, username)
	}
	return nil
}

func (f *FakePlayerRepo) ListPlayers(ctx context.Context, db bun.IDB) ([]*playerdb.Player, error) {
	f.record("ListPlayers")
	if f.ListPlayersFunc != nil {
		return f.ListPlayersFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakePlayerRepo) GetOrCreateBoost(ctx context.Context, db bun.IDB, boostType string) (*playerdb.Boost, error) {
	f.record("GetOrCreateBoost")
	if f.GetOrCreateBoostFunc != nil {
		return f.GetOrCreateBoostFunc(ctx, db, boostType)
	}
	return &playerdb.Boost{ID: 1, Type: boostType}, nil
}

func (f *FakePlayerRepo) GetHolding(ctx context.Context, db bun.IDB, playerID, boostID int64) (*playerdb.PlayerBoost, error) {
	f.record("GetHolding")
	if f.GetHoldingFunc != nil {
		return f.GetHoldingFunc(ctx, db, playerID, boostID)
	}
	return nil, playerdb.ErrNotFound
}

func (f *FakePlayerRepo) CreateHolding(ctx context.Context, db bun.IDB, holding *playerdb.PlayerBoost) error {
	f.record("CreateHolding")
	if f.CreateHoldingFunc != nil {
		return f.CreateHoldingFunc(ctx, db, holding)
	}
	return nil
}

func (f *FakePlayerRepo) IncrementHolding(ctx context.Context, db bun.IDB, holdingID int64, delta int) error {
	f.record("IncrementHolding")
	if f.IncrementHoldingFunc != nil {
		return f.IncrementHoldingFunc(ctx, db, holdingID, delta)
	}
	return nil
}

func (f *FakePlayerRepo) ListHoldings(ctx context.Context, db bun.IDB, playerID int64) ([]*playerdb.PlayerBoost, error) {
	f.record("ListHoldings")
	if f.ListHoldingsFunc != nil {
		return f.ListHoldingsFunc(ctx, db, playerID)
	}
	return nil, nil
}

// --- Accessors for assertions ---

func (f *FakePlayerRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ playerdb.Repository = (*FakePlayerRepo)(nil)

// ------------------------
// Fake Publisher
// ------------------------

type publishedEvent struct {
	Topic   string
	Payload any
}

type FakePublisher struct {
	Events []publishedEvent
	Err    error
}

func (f *FakePublisher) Publish(_ context.Context, topic string, payload any) error {
	if f.Err != nil {
		return f.Err
	}
	f.Events = append(f.Events, publishedEvent{Topic: topic, Payload: payload})
	return nil
}

// withStore wires the fake to an in-memory player and holdings table.
func (f *FakePlayerRepo) withStore(player *playerdb.Player) map[int64]*playerdb.PlayerBoost {
	holdings := map[int64]*playerdb.PlayerBoost{}
	boosts := map[string]*playerdb.Boost{}

	f.GetPlayerFunc = func(_ context.Context, _ bun.IDB, username string) (*playerdb.Player, error) {
		if player == nil || player.Username != username {
			return nil, playerdb.ErrNotFound
		}
		cp := *player
		cp.LevelsCompleted = append([]string(nil), player.LevelsCompleted...)
		return &cp, nil
	}
	f.UpdateProgressFunc = func(_ context.Context, _ bun.IDB, p *playerdb.Player) error {
		*player = *p
		return nil
	}
	f.GetOrCreateBoostFunc = func(_ context.Context, _ bun.IDB, boostType string) (*playerdb.Boost, error) {
		if b, ok := boosts[boostType]; ok {
			return b, nil
		}
		b := &playerdb.Boost{ID: int64(len(boosts) + 1), Type: boostType}
		boosts[boostType] = b
		return b, nil
	}
	f.GetHoldingFunc = func(_ context.Context, _ bun.IDB, _ int64, boostID int64) (*playerdb.PlayerBoost, error) {
		for _, h := range holdings {
			if h.BoostID == boostID {
				cp := *h
				return &cp, nil
			}
		}
		return nil, playerdb.ErrNotFound
	}
	f.CreateHoldingFunc = func(_ context.Context, _ bun.IDB, h *playerdb.PlayerBoost) error {
		h.ID = int64(len(holdings) + 1)
		cp := *h
		holdings[h.ID] = &cp
		return nil
	}
	f.IncrementHoldingFunc = func(_ context.Context, _ bun.IDB, id int64, delta int) error {
		h, ok := holdings[id]
		if !ok {
			return playerdb.ErrNoRowsAffected
		}
		h.Count += delta
		return nil
	}
	f.ListHoldingsFunc = func(_ context.Context, _ bun.IDB, _ int64) ([]*playerdb.PlayerBoost, error) {
		var out []*playerdb.PlayerBoost
		for _, b := range boosts {
			for _, h := range holdings {
				if h.BoostID == b.ID {
					cp := *h
					cp.Boost = b
					out = append(out, &cp)
				}
			}
		}
		return out, nil
	}
	return holdings
}
