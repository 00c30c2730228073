package core

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrRaggedDataset is returned when columns disagree on the number of rows.
var ErrRaggedDataset = errors.New("columns have different row counts")

// Cell is a single value. Valid is false for a missing value.
type Cell struct {
	Value string
	Valid bool
}

// Text returns a present cell holding s.
func Text(s string) Cell {
	return Cell{Value: s, Valid: true}
}

// Missing is the absent cell.
var Missing = Cell{}

// Column is a named, ordered sequence of cells.
type Column struct {
	Name  string
	Cells []Cell
}

// NonMissing returns the number of present cells.
func (c Column) NonMissing() int {
	n := 0
	for _, cell := range c.Cells {
		if cell.Valid {
			n++
		}
	}
	return n
}

// Distinct returns the number of distinct present values.
func (c Column) Distinct() int {
	seen := make(map[string]struct{})
	for _, cell := range c.Cells {
		if cell.Valid {
			seen[cell.Value] = struct{}{}
		}
	}
	return len(seen)
}

// Dataset is a rectangular collection of named columns.
type Dataset struct {
	columns []Column
	rows    int
}

// NewDataset builds a dataset from columns that all share one row count.
func NewDataset(columns []Column) (*Dataset, error) {
	ds := &Dataset{columns: columns}
	for i, col := range columns {
		if i == 0 {
			ds.rows = len(col.Cells)
			continue
		}
		if len(col.Cells) != ds.rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d",
				ErrRaggedDataset, col.Name, len(col.Cells), ds.rows)
		}
	}
	return ds, nil
}

// NumColumns returns the number of columns.
func (d *Dataset) NumColumns() int { return len(d.columns) }

// NumRows returns the shared row count.
func (d *Dataset) NumRows() int { return d.rows }

// Column returns the i-th column.
func (d *Dataset) Column(i int) Column { return d.columns[i] }

// Columns returns the column names in order.
func (d *Dataset) Columns() []string {
	names := make([]string, len(d.columns))
	for i, col := range d.columns {
		names[i] = col.Name
	}
	return names
}

// missingTokens are the cell texts read as missing values, matching what
// spreadsheet tooling treats as NA by default.
var missingTokens = map[string]bool{
	"":         true,
	"NA":       true,
	"N/A":      true,
	"n/a":      true,
	"NULL":     true,
	"null":     true,
	"NaN":      true,
	"nan":      true,
	"-NaN":     true,
	"-nan":     true,
	"None":     true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"<NA>":     true,
	"1.#IND":   true,
	"-1.#IND":  true,
	"1.#QNAN":  true,
	"-1.#QNAN": true,
}

// ParseCell converts raw text to a cell, mapping NA tokens to Missing.
func ParseCell(s string) Cell {
	if missingTokens[s] {
		return Missing
	}
	return Text(s)
}

// FromRecords builds a dataset from a header row and data rows of raw text.
// Short rows are padded with missing cells and extra fields are dropped.
// Header names are de-duplicated the way spreadsheet readers do it.
func FromRecords(header []string, rows [][]string) *Dataset {
	names := uniqueHeaders(header)
	columns := make([]Column, len(names))
	for i, name := range names {
		cells := make([]Cell, len(rows))
		for r, row := range rows {
			if i < len(row) {
				cells[r] = ParseCell(row[i])
			}
		}
		columns[i] = Column{Name: name, Cells: cells}
	}
	return &Dataset{columns: columns, rows: len(rows)}
}

// uniqueHeaders names blank headers "Unnamed: <i>" and suffixes repeats
// with ".1", ".2" and so on.
func uniqueHeaders(header []string) []string {
	names := make([]string, len(header))
	taken := make(map[string]bool, len(header))
	for i, h := range header {
		if h == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		name := h
		for n := 1; taken[name]; n++ {
			name = h + "." + strconv.Itoa(n)
		}
		taken[name] = true
		names[i] = name
	}
	return names
}
