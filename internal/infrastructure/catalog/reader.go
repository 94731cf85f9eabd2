// Package catalog reads merchant product catalogs and writes comparison
// tables, in CSV or XLSX depending on the file extension.
package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klydo/pricelens/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Input column names. Order in the file does not matter; the header decides.
const (
	colStyleID    = "style_id"
	colBrand      = "brand"
	colTitle      = "product_title"
	colGender     = "gender"
	colCategory   = "category"
	colMinPrice   = "min_price_rupees"
	colFirstImage = "first_image_url"
)

// Reader loads products from a catalog file.
type Reader struct {
	path string
}

// NewReader creates a reader for the given catalog path.
func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// ReadProducts loads the whole catalog into memory. A failure here aborts the
// run: there is nothing to do without input.
func (r *Reader) ReadProducts(ctx context.Context) ([]domain.Product, error) {
	records, err := r.readRecords()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("catalog %s is empty", r.path)
	}

	header := headerIndex(records[0])
	products := make([]domain.Product, 0, len(records)-1)
	for _, row := range records[1:] {
		products = append(products, domain.Product{
			StyleID:        cell(row, header, colStyleID),
			Brand:          cell(row, header, colBrand),
			Title:          cell(row, header, colTitle),
			Gender:         cell(row, header, colGender),
			Category:       cell(row, header, colCategory),
			ReferencePrice: parsePrice(cell(row, header, colMinPrice)),
			ImageURL:       cell(row, header, colFirstImage),
		})
	}
	return products, nil
}

func (r *Reader) readRecords() ([][]string, error) {
	if isXLSX(r.path) {
		return readXLSXRecords(r.path)
	}
	return readCSVRecords(r.path)
}

func readCSVRecords(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing catalog csv: %w", err)
	}
	return records, nil
}

func readXLSXRecords(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("reading catalog sheet: %w", err)
	}
	return rows, nil
}

func isXLSX(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return index
}

func cell(row []string, header map[string]int, name string) string {
	i, ok := header[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parsePrice reads the reference price; anything unparseable means "no
// reference price" rather than an input error.
func parsePrice(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
