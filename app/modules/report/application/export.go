package reportservice

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/Black-And-White-Club/frolf-progression/app/shared/observability/attr"
	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Progress"

// ExportCSV writes the header and every report row to w, comma-delimited
// and newline-terminated. It returns the number of data rows written.
func (s *ReportService) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	rows, err := s.ProgressRows(ctx)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return 0, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row.Values()); err != nil {
			return 0, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("failed to flush csv: %w", err)
	}

	s.logger.InfoContext(ctx, "Exported progress report",
		attr.ExtractCorrelationID(ctx),
		attr.String("format", "csv"),
		attr.Int("rows", len(rows)),
	)
	return len(rows), nil
}

// ExportXLSX writes the same rows as ExportCSV to a single-sheet workbook.
func (s *ReportService) ExportXLSX(ctx context.Context, w io.Writer) (int, error) {
	rows, err := s.ProgressRows(ctx)
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), xlsxSheet); err != nil {
		return 0, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := setRow(f, 1, Header); err != nil {
		return 0, err
	}
	for i, row := range rows {
		if err := setRow(f, i+2, row.Values()); err != nil {
			return 0, err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return 0, fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(xlsxSheet, 1, 1, bold); err != nil {
		return 0, fmt.Errorf("failed to style header: %w", err)
	}

	if err := f.Write(w); err != nil {
		return 0, fmt.Errorf("failed to write xlsx: %w", err)
	}

	s.logger.InfoContext(ctx, "Exported progress report",
		attr.ExtractCorrelationID(ctx),
		attr.String("format", "xlsx"),
		attr.Int("rows", len(rows)),
	)
	return len(rows), nil
}

func setRow(f *excelize.File, rowNum int, values []string) error {
	axis, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("invalid cell for row %d: %w", rowNum, err)
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(xlsxSheet, axis, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}
