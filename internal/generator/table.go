package generator

import (
	"fmt"
	"strconv"
	"time"
)

// DatetimeLayout is the textual form of Datetime values in exports and views.
const DatetimeLayout = "2006-01-02 15:04:05.999999"

// Column is one generated column. Values hold float64 for Numeric,
// time.Time for Datetime and string for Categorical and Text.
type Column struct {
	Name   string `json:"name"`
	Kind   Kind   `json:"kind"`
	Values []any  `json:"values"`
}

// Table is a rectangular generated dataset; columns keep request order.
type Table struct {
	RowCount int      `json:"rows"`
	Columns  []Column `json:"columns"`
}

func (t *Table) Rows() int {
	return t.RowCount
}

func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// Column looks a column up by name.
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// Row returns the i-th record across all columns.
func (t *Table) Row(i int) []any {
	row := make([]any, len(t.Columns))
	for j, col := range t.Columns {
		row[j] = col.Values[i]
	}
	return row
}

// Head returns a table sharing the first n rows of t.
func (t *Table) Head(n int) *Table {
	if n < 0 {
		n = 0
	}
	if n > t.RowCount {
		n = t.RowCount
	}
	head := &Table{RowCount: n, Columns: make([]Column, len(t.Columns))}
	for i, col := range t.Columns {
		head.Columns[i] = Column{Name: col.Name, Kind: col.Kind, Values: col.Values[:n]}
	}
	return head
}

// Records renders every row in its textual form.
func (t *Table) Records() [][]string {
	records := make([][]string, t.RowCount)
	for i := range records {
		record := make([]string, len(t.Columns))
		for j, col := range t.Columns {
			record[j] = FormatValue(col.Values[i])
		}
		records[i] = record
	}
	return records
}

// FormatValue renders a generated value the way exports write it.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.Format(DatetimeLayout)
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
