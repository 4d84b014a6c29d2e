package reportservice

import (
	"context"

	reportdb "github.com/Black-And-White-Club/frolf-progression/app/modules/report/infrastructure/repositories"
	"github.com/uptrace/bun"
)

type FakeReportRepo struct {
	trace []string

	ProgressRowsFunc      func(ctx context.Context, db bun.IDB) ([]reportdb.ProgressRow, error)
	LevelDistributionFunc func(ctx context.Context, db bun.IDB) ([]reportdb.LevelCount, error)
}

func NewFakeReportRepo() *FakeReportRepo {
	return &FakeReportRepo{trace: []string{}}
}

func (f *FakeReportRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeReportRepo) ProgressRows(ctx context.Context, db bun.IDB) ([]reportdb.ProgressRow, error) {
	f.record("ProgressRows")
	if f.ProgressRowsFunc != nil {
		return f.ProgressRowsFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeReportRepo) LevelDistribution(ctx context.Context, db bun.IDB) ([]reportdb.LevelCount, error) {
	f.record("LevelDistribution")
	if f.LevelDistributionFunc != nil {
		return f.LevelDistributionFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeReportRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ reportdb.Repository = (*FakeReportRepo)(nil)
