package reportservice

import (
	"context"
	"io"
	"log/slog"
	"strconv"

	reportdb "github.com/Black-And-White-Club/frolf-progression/app/modules/report/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/observability"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/operation"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "ReportService"

// Header is the first row of every tabular export.
var Header = []string{"Player ID", "Level Title", "Completed", "Prize Title"}

// Row is a report row with nulls flattened to empty strings.
type Row struct {
	PlayerID   string
	LevelTitle string
	Completed  string
	PrizeTitle string
}

// Values returns the row in Header order.
func (r Row) Values() []string {
	return []string{r.PlayerID, r.LevelTitle, r.Completed, r.PrizeTitle}
}

// Service produces progress reports.
type Service interface {
	ProgressRows(ctx context.Context) ([]Row, error)
	ExportCSV(ctx context.Context, w io.Writer) (int, error)
	ExportXLSX(ctx context.Context, w io.Writer) (int, error)
	RenderLevelChart(ctx context.Context, w io.Writer) error
}

// ReportService implements the Service interface.
type ReportService struct {
	repo   reportdb.Repository
	logger *slog.Logger
	runner *operation.Runner
}

// NewReportService creates a new ReportService.
func NewReportService(
	repo reportdb.Repository,
	logger *slog.Logger,
	metrics observability.Metrics,
	tracer trace.Tracer,
	db *bun.DB,
) *ReportService {
	runner := operation.NewRunner(serviceName, logger, metrics, tracer, db)
	return &ReportService{
		repo:   repo,
		logger: runner.Logger,
		runner: runner,
	}
}

// ProgressRows returns the outer-join projection of players, their levels
// and the prizes they received for them.
func (s *ReportService) ProgressRows(ctx context.Context) ([]Row, error) {
	return operation.Execute(s.runner, ctx, "ProgressRows", "",
		func(ctx context.Context, db bun.IDB) (results.OperationResult[[]Row, error], error) {
			raw, err := s.repo.ProgressRows(ctx, db)
			if err != nil {
				return results.OperationResult[[]Row, error]{}, err
			}
			rows := make([]Row, 0, len(raw))
			for _, r := range raw {
				rows = append(rows, toRow(r))
			}
			return results.SuccessResult[[]Row, error](rows), nil
		})
}

func toRow(r reportdb.ProgressRow) Row {
	row := Row{PlayerID: r.PlayerID}
	if r.LevelTitle.Valid {
		row.LevelTitle = r.LevelTitle.String
	}
	if r.IsCompleted.Valid {
		row.Completed = strconv.FormatBool(r.IsCompleted.Bool)
	}
	if r.PrizeTitle.Valid {
		row.PrizeTitle = r.PrizeTitle.String
	}
	return row
}
