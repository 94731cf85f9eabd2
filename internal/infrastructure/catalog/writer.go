package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/klydo/pricelens/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Writer serializes comparison rows to a CSV or XLSX file.
type Writer struct {
	path string
}

// NewWriter creates a writer for the given output path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// WriteComparison writes the full comparison table, header first. Sentinel
// cell values pass through untouched.
func (w *Writer) WriteComparison(ctx context.Context, rows []domain.ComparisonRow) error {
	if isXLSX(w.path) {
		return w.writeXLSX(rows)
	}
	return w.writeCSV(rows)
}

func (w *Writer) writeCSV(rows []domain.ComparisonRow) error {
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(domain.ComparisonColumns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row.Values()); err != nil {
			return fmt.Errorf("writing row %s: %w", row.StyleID, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	return nil
}

func (w *Writer) writeXLSX(rows []domain.ComparisonRow) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &domain.ComparisonColumns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rows {
		values := row.Values()
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("addressing row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cellRef, &values); err != nil {
			return fmt.Errorf("writing row %s: %w", row.StyleID, err)
		}
	}
	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}
