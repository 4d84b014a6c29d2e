package reportservice

import (
	"context"
	"fmt"
	"io"

	reportdb "github.com/Black-And-White-Club/frolf-progression/app/modules/report/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/operation"
	"github.com/Black-And-White-Club/frolf-progression/app/shared/results"
	"github.com/uptrace/bun"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	barColor  = drawing.ColorFromHex("2e7d32")
	textColor = drawing.ColorFromHex("212121")
)

// RenderLevelChart writes a PNG bar chart of how many players sit at each
// progression level.
func (s *ReportService) RenderLevelChart(ctx context.Context, w io.Writer) error {
	counts, err := operation.Execute(s.runner, ctx, "LevelDistribution", "",
		func(ctx context.Context, db bun.IDB) (results.OperationResult[[]reportdb.LevelCount, error], error) {
			counts, err := s.repo.LevelDistribution(ctx, db)
			if err != nil {
				return results.OperationResult[[]reportdb.LevelCount, error]{}, err
			}
			return results.SuccessResult[[]reportdb.LevelCount, error](counts), nil
		})
	if err != nil {
		return err
	}
	bars := make([]chart.Value, 0, len(counts))
	most := 0
	if len(counts) == 0 {
		bars = append(bars, chart.Value{Label: "No players", Value: 0})
	}
	for _, c := range counts {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("Level %d", c.Level),
			Value: float64(c.Players),
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor},
		})
		most = max(most, c.Players)
	}

	graph := chart.BarChart{
		Title:      "Players per level",
		TitleStyle: chart.Style{FontColor: textColor},
		Width:      800,
		Height:     400,
		BarWidth:   48,
		Background: chart.Style{Padding: chart.Box{Top: 48}},
		XAxis:      chart.Style{FontColor: textColor},
		YAxis: chart.YAxis{
			Name:           "Players",
			Style:          chart.Style{FontColor: textColor},
			Range:          &chart.ContinuousRange{Min: 0, Max: float64(most + 1)},
			ValueFormatter: func(v interface{}) string { return fmt.Sprintf("%.0f", v) },
		},
		Bars: bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render level chart: %w", err)
	}
	return nil
}
