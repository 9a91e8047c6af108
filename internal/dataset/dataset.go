// Package dataset loads tabular sources into an immutable, column-typed
// in-memory table.
//
// A Dataset is built once and never mutated afterwards, so it can be read
// from any number of goroutines without coordination. Cell values are always
// one of int64, float64, bool, time.Time, string or nil (missing).
package dataset

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// ColumnType is the inferred scalar type of a column, named the way
// dataframe libraries report dtypes.
type ColumnType string

const (
	TypeInt64    ColumnType = "int64"
	TypeFloat64  ColumnType = "float64"
	TypeBool     ColumnType = "bool"
	TypeDatetime ColumnType = "datetime64[ns]"
	TypeObject   ColumnType = "object"
)

// TimeLayout is the layout used to render temporal cells.
const TimeLayout = time.RFC3339Nano

// IsNumeric reports whether the column type holds numbers.
func (t ColumnType) IsNumeric() bool {
	return t == TypeInt64 || t == TypeFloat64
}

// Column is a named, typed sequence of cells.
type Column struct {
	Name   string
	Type   ColumnType
	Values []any
}

// Dataset is an immutable in-memory table.
type Dataset struct {
	columns []Column
	rows    int
}

// New builds a Dataset from columns of equal length. Column names must be unique.
func New(columns []Column) (*Dataset, error) {
	rows := 0
	if len(columns) > 0 {
		rows = len(columns[0].Values)
	}

	seen := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		if _, ok := seen[col.Name]; ok {
			return nil, fmt.Errorf("duplicate column name %q", col.Name)
		}
		seen[col.Name] = struct{}{}

		if len(col.Values) != rows {
			return nil, fmt.Errorf("column %q has %d values, expected %d", col.Name, len(col.Values), rows)
		}
	}

	return &Dataset{columns: columns, rows: rows}, nil
}

// NumRows returns the number of rows.
func (d *Dataset) NumRows() int {
	return d.rows
}

// NumColumns returns the number of columns.
func (d *Dataset) NumColumns() int {
	return len(d.columns)
}

// Columns returns the columns in original order. Callers must not modify them.
func (d *Dataset) Columns() []Column {
	return d.columns
}

// Column returns the column at index i.
func (d *Dataset) Column(i int) Column {
	return d.columns[i]
}

// Names returns the column names in original order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.columns))
	for i, col := range d.columns {
		names[i] = col.Name
	}
	return names
}

// Row returns the cells of row i in column order.
func (d *Dataset) Row(i int) []any {
	row := make([]any, len(d.columns))
	for j, col := range d.columns {
		row[j] = col.Values[i]
	}
	return row
}

// JSONValue converts a cell into a value encoding/json can serialize:
// temporal cells become RFC 3339 strings and non-finite floats become nil.
func JSONValue(v any) any {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil
		}
		return val
	case time.Time:
		return val.Format(TimeLayout)
	default:
		return v
	}
}

// FormatValue renders a cell as text. Missing cells render as "".
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		if val {
			return "True"
		}
		return "False"
	case time.Time:
		return val.Format(TimeLayout)
	default:
		return fmt.Sprint(val)
	}
}
