// Package importer turns CSV files and bank statements into purchase rows and
// replays them through the tracker.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Veraticus/shopimpact/internal/ofx"
)

// Import errors.
var (
	ErrMissingColumn = errors.New("missing column")
	ErrBadRow        = errors.New("bad row")
)

// Row is one purchase waiting to be recorded. Line is the 1-based source line
// for CSV rows and zero otherwise.
type Row struct {
	Category string
	Brand    string
	Source   string
	Price    float64
	Line     int
}

// RowError is a CSV row that could not be turned into a Row.
type RowError struct {
	Err  error
	Line int
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// CSV columns, in positional order when the file has no header.
const (
	colCategory = "category"
	colBrand    = "brand"
	colPrice    = "price"
)

// ReadCSV parses category,brand,price rows. A header naming those columns is
// optional and may order them freely; without one the first three fields are
// used in that order. Malformed rows are returned as RowErrors, not fatal.
func ReadCSV(r io.Reader) ([]Row, []*RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var (
		rows    []Row
		badRows []*RowError
		idx     map[string]int
	)

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)

		if idx == nil {
			if header, ok := indexMap(record); ok {
				idx = header
				continue
			}
			idx = map[string]int{colCategory: 0, colBrand: 1, colPrice: 2}
		}

		row, err := parseRecord(record, idx)
		if err != nil {
			badRows = append(badRows, &RowError{Line: line, Err: err})
			continue
		}
		row.Line = line
		row.Source = "csv"
		rows = append(rows, row)
	}

	return rows, badRows, nil
}

// indexMap reads a header row. It reports false when record is data.
func indexMap(record []string) (map[string]int, bool) {
	idx := make(map[string]int, len(record))
	for i, h := range record {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := idx[colCategory]; !ok {
		return nil, false
	}
	if _, ok := idx[colPrice]; !ok {
		return nil, false
	}
	return idx, true
}

func parseRecord(record []string, idx map[string]int) (Row, error) {
	get := func(name string) (string, bool) {
		i, ok := idx[name]
		if !ok || i >= len(record) {
			return "", false
		}
		return strings.TrimSpace(record[i]), true
	}

	category, ok := get(colCategory)
	if !ok || category == "" {
		return Row{}, fmt.Errorf("%w: %s", ErrMissingColumn, colCategory)
	}
	rawPrice, ok := get(colPrice)
	if !ok {
		return Row{}, fmt.Errorf("%w: %s", ErrMissingColumn, colPrice)
	}
	brand, _ := get(colBrand)

	price, err := strconv.ParseFloat(rawPrice, 64)
	if err != nil {
		return Row{}, fmt.Errorf("%w: price %q", ErrBadRow, rawPrice)
	}

	return Row{Category: category, Brand: brand, Price: price}, nil
}

// FromDebits maps statement debits to rows. The category is the cleaned payee
// unless category is non-empty, in which case every row uses it.
func FromDebits(debits []ofx.Debit, category string) []Row {
	rows := make([]Row, 0, len(debits))
	for _, d := range debits {
		c := category
		if c == "" {
			c = d.Payee
		}
		if c == "" {
			c = d.Memo
		}
		rows = append(rows, Row{
			Category: c,
			Brand:    d.Payee,
			Price:    d.Amount,
			Source:   d.ID,
		})
	}
	return rows
}
