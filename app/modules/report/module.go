package report

import (
	"context"

	reportservice "github.com/Black-And-White-Club/frolf-progression/app/modules/report/application"
	reportdb "github.com/Black-And-White-Club/frolf-progression/app/modules/report/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/observability"
	"github.com/uptrace/bun"
)

// Module represents the report module.
type Module struct {
	ReportService reportservice.Service
}

// NewReportModule creates and initializes a new report module.
func NewReportModule(ctx context.Context, obs observability.Observability, db *bun.DB) *Module {
	obs.Logger.InfoContext(ctx, "report.NewReportModule initializing")
	repo := reportdb.NewRepository(db)
	return &Module{
		ReportService: reportservice.NewReportService(repo, obs.Logger, obs.Metrics, obs.Tracer("report"), db),
	}
}
