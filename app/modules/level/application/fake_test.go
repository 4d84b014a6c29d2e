package levelservice

import (
	"context"

	leveldb "github.com/Black-And-White-Club/frolf-progression/app/modules/level/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Level Repo
// ------------------------

type FakeLevelRepo struct {
	trace []string

	CreateLevelFunc       func(ctx context.Context, db bun.IDB, level *leveldb.Level) error
	GetLevelFunc          func(ctx context.Context, db bun.IDB, id int64) (*leveldb.Level, error)
	ListLevelsFunc        func(ctx context.Context, db bun.IDB) ([]*leveldb.Level, error)
	DeleteLevelFunc       func(ctx context.Context, db bun.IDB, id int64) error
	CreatePrizeFunc       func(ctx context.Context, db bun.IDB, prize *leveldb.Prize) error
	GetPrizeFunc          func(ctx context.Context, db bun.IDB, id int64) (*leveldb.Prize, error)
	ListPrizesFunc        func(ctx context.Context, db bun.IDB) ([]*leveldb.Prize, error)
	DeletePrizeFunc       func(ctx context.Context, db bun.IDB, id int64) error
	PlayerExistsFunc      func(ctx context.Context, db bun.IDB, playerID string) (bool, error)
	GetPlayerLevelFunc    func(ctx context.Context, db bun.IDB, playerID string, levelID int64) (*leveldb.PlayerLevel, error)
	UpsertPlayerLevelFunc func(ctx context.Context, db bun.IDB, pl *leveldb.PlayerLevel) error
	CreateLevelPrizeFunc  func(ctx context.Context, db bun.IDB, lp *leveldb.LevelPrize) error
	ListLevelPrizesFunc   func(ctx context.Context, db bun.IDB, playerID string) ([]*leveldb.LevelPrize, error)
}

func NewFakeLevelRepo() *FakeLevelRepo {
	return &FakeLevelRepo{
		trace: []string{},
	}
}

func (f *FakeLevelRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeLevelRepo) CreateLevel(ctx context.Context, db bun.IDB, level *leveldb.Level) error {
	f.record("CreateLevel")
	if f.CreateLevelFunc != nil {
		return f.CreateLevelFunc(ctx, db, level)
	}
	return nil
}

func (f *FakeLevelRepo) GetLevel(ctx context.Context, db bun.IDB, id int64) (*leveldb.Level, error) {
	f.record("GetLevel")
	if f.GetLevelFunc != nil {
		return f.GetLevelFunc(ctx, db, id)
	}
	return nil, leveldb.ErrNotFound
}

func (f *FakeLevelRepo) ListLevels(ctx context.Context, db bun.IDB) ([]*leveldb.Level, error) {
	f.record("ListLevels")
	if f.ListLevelsFunc != nil {
		return f.ListLevelsFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeLevelRepo) DeleteLevel(ctx context.Context, db bun.IDB, id int64) error {
	f.record("DeleteLevel")
	if f.DeleteLevelFunc != nil {
		return f.DeleteLevelFunc(ctx, db, id)
	}
	return nil
}

func (f *FakeLevelRepo) CreatePrize(ctx context.Context, db bun.IDB, prize *leveldb.Prize) error {
	f.record("CreatePrize")
	if f.CreatePrizeFunc != nil {
		return f.CreatePrizeFunc(ctx, db, prize)
	}
	return nil
}

func (f *FakeLevelRepo) GetPrize(ctx context.Context, db bun.IDB, id int64) (*leveldb.Prize, error) {
	f.record("GetPrize")
	if f.GetPrizeFunc != nil {
		return f.GetPrizeFunc(ctx, db, id)
	}
	return nil, leveldb.ErrNotFound
}

func (f *FakeLevelRepo) ListPrizes(ctx context.Context, db bun.IDB) ([]*leveldb.Prize, error) {
	f.record("ListPrizes")
	if f.ListPrizesFunc != nil {
		return f.ListPrizesFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeLevelRepo) DeletePrize(ctx context.Context, db bun.IDB, id int64) error {
	f.record("DeletePrize")
	if f.DeletePrizeFunc != nil {
		return f.DeletePrizeFunc(ctx, db, id)
	}
	return nil
}

func (f *FakeLevelRepo) PlayerExists(ctx context.Context, db bun.IDB, playerID string) (bool, error) {
	f.record("PlayerExists")
	if f.PlayerExistsFunc != nil {
		return f.PlayerExistsFunc(ctx, db, playerID)
	}
	return true, nil
}

func (f *FakeLevelRepo) GetPlayerLevel(ctx context.Context, db bun.IDB, playerID string, levelID int64) (*leveldb.PlayerLevel, error) {
	f.record("GetPlayerLevel")
	if f.GetPlayerLevelFunc != nil {
		return f.GetPlayerLevelFunc(ctx, db, playerID, levelID)
	}
	return nil, leveldb.ErrNotFound
}

func (f *FakeLevelRepo) UpsertPlayerLevel(ctx context.Context, db bun.IDB, pl *leveldb.PlayerLevel) error {
	f.record("UpsertPlayerLevel")
	if f.UpsertPlayerLevelFunc != nil {
		return f.UpsertPlayerLevelFunc(ctx, db, pl)
	}
	return nil
}

func (f *FakeLevelRepo) CreateLevelPrize(ctx context.Context, db bun.IDB, lp *leveldb.LevelPrize) error {
	f.record("CreateLevelPrize")
	if f.CreateLevelPrizeFunc != nil {
		return f.CreateLevelPrizeFunc(ctx, db, lp)
	}
	return nil
}

func (f *FakeLevelRepo) ListLevelPrizes(ctx context.Context, db bun.IDB, playerID string) ([]*leveldb.LevelPrize, error) {
	f.record("ListLevelPrizes")
	if f.ListLevelPrizesFunc != nil {
		return f.ListLevelPrizesFunc(ctx, db, playerID)
	}
	return nil, nil
}

// --- Accessors for assertions ---

func (f *FakeLevelRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ leveldb.Repository = (*FakeLevelRepo)(nil)

type FakePublisher struct {
	Topics   []string
	Payloads []any
}

func (f *FakePublisher) Publish(_ context.Context, topic string, payload any) error {
	f.Topics = append(f.Topics, topic)
	f.Payloads = append(f.Payloads, payload)
	return nil
}
