package dataprocessing

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// CellKind identifies what a cell holds.
type CellKind int

const (
	// KindMissing marks a cell with no usable value. Parse failures
	// coerce to missing rather than raising; imputation fills them later.
	KindMissing CellKind = iota
	KindText
	KindNumber
	KindDate
)

// Cell is one typed value in a dataset. Missing-ness is explicit so that
// imputation is a separate, testable pass instead of a silent coercion.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Date   time.Time
}

// Missing returns the missing-value sentinel cell
func Missing() Cell {
	return Cell{Kind: KindMissing}
}

// TextCell creates a text cell
func TextCell(s string) Cell {
	return Cell{Kind: KindText, Text: s}
}

// NumberCell creates a numeric cell
func NumberCell(f float64) Cell {
	return Cell{Kind: KindNumber, Number: f}
}

// DateCell creates a date cell
func DateCell(t time.Time) Cell {
	return Cell{Kind: KindDate, Date: t}
}

// IsMissing reports whether the cell carries no value
func (c Cell) IsMissing() bool {
	return c.Kind == KindMissing
}

// String renders the cell for tabular artifacts: dates as YYYY-MM-DD,
// numbers in shortest decimal form, text verbatim, missing as empty.
func (c Cell) String() string {
	switch c.Kind {
	case KindText:
		return c.Text
	case KindNumber:
		return strconv.FormatFloat(c.Number, 'g', -1, 64)
	case KindDate:
		return c.Date.Format("2006-01-02")
	default:
		return ""
	}
}

// Row maps column name to cell.
type Row map[string]Cell

// Dataset is an ordered-column table of rows. It is the working form of
// the petroleum data between fetch and export.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// NewDataset creates an empty dataset with the given columns
func NewDataset(columns []string) *Dataset {
	return &Dataset{Columns: columns}
}

// FromRecords builds a dataset from raw API rows. Columns lists the
// columns in artifact order; values may be strings, numbers or nil.
func FromRecords(columns []string, records []map[string]any) *Dataset {
	ds := NewDataset(columns)
	for _, rec := range records {
		row := make(Row, len(columns))
		for _, col := range columns {
			row[col] = cellFromValue(rec[col])
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds
}

// cellFromValue converts a decoded JSON value into a cell
func cellFromValue(v any) Cell {
	switch val := v.(type) {
	case nil:
		return Missing()
	case string:
		return TextCell(val)
	case float64:
		return NumberCell(val)
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return NumberCell(f)
		}
		return TextCell(val.String())
	case bool:
		return TextCell(strconv.FormatBool(val))
	default:
		return Missing()
	}
}

// HasColumn reports whether the dataset contains the named column
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Len returns the number of rows
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// Empty reports whether the dataset has no rows
func (d *Dataset) Empty() bool {
	return len(d.Rows) == 0
}

// Clone returns a deep copy. Cleaning works on a copy so the input
// dataset is never mutated.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{Columns: append([]string(nil), d.Columns...)}
	out.Rows = make([]Row, 0, len(d.Rows))
	for _, row := range d.Rows {
		cp := make(Row, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out.Rows = append(out.Rows, cp)
	}
	return out
}

// Headers returns the column names for tabular export
func (d *Dataset) Headers() []string {
	return append([]string(nil), d.Columns...)
}

// Records renders every row as strings in column order
func (d *Dataset) Records() [][]string {
	out := make([][]string, 0, len(d.Rows))
	for _, row := range d.Rows {
		rec := make([]string, len(d.Columns))
		for i, col := range d.Columns {
			rec[i] = row[col].String()
		}
		out = append(out, rec)
	}
	return out
}

// rowKey builds a deduplication key over all columns. The kind prefix
// keeps empty text distinct from a genuinely missing cell.
func (d *Dataset) rowKey(row Row) string {
	var b strings.Builder
	for _, col := range d.Columns {
		cell := row[col]
		b.WriteString(strconv.Itoa(int(cell.Kind)))
		b.WriteByte(':')
		b.WriteString(cell.String())
		b.WriteByte('\x1f')
	}
	return b.String()
}
