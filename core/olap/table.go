// Package olap provides slice/dice/drill-down/roll-up/pivot operations over
// labelled tabular data. All operations are pure: inputs are never mutated
// and every result is a fresh table.
package olap

import (
	"fmt"
	"math"
	"strconv"
)

// Row maps column names to cell values. Cells are strings or numbers;
// nil marks a missing value.
type Row map[string]any

// Table is an ordered set of columns plus its rows. Column order is
// preserved across operations so results render deterministically.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable builds a table from a column list and rows.
func NewTable(columns []string, rows []Row) Table {
	return Table{Columns: columns, Rows: rows}
}

// HasColumn reports whether the table has the named column.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Len returns the row count.
func (t Table) Len() int {
	return len(t.Rows)
}

// IsNumericColumn reports whether every non-missing value in the column is
// numeric. Columns with no values at all are not numeric.
func (t Table) IsNumericColumn(name string) bool {
	found := false
	for _, row := range t.Rows {
		v, ok := row[name]
		if !ok || v == nil {
			continue
		}
		if _, isNum := asFloat(v); !isNum {
			return false
		}
		found = true
	}
	return found
}

// cloneRow copies a row so results never alias input storage.
func cloneRow(row Row) Row {
	out := make(Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

// asFloat converts numeric cell values to float64.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// valuesEqual compares two cell values, treating numerics of different
// widths as equal when their float values match.
func valuesEqual(a, b any) bool {
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			return af == bf
		}
		return false
	}
	return a == b
}

// cellLabel renders a cell value as a column header or group key.
// Whole floats drop their fraction so pivoted year columns read "2024",
// not "2024.000000".
func cellLabel(v any) string {
	if v == nil {
		return ""
	}
	if f, ok := asFloat(v); ok {
		if f == math.Trunc(f) && !math.IsInf(f, 0) {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}

// lessValues orders cell values: numbers before strings, numbers by value,
// strings lexicographically.
func lessValues(a, b any) bool {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	switch {
	case aok && bok:
		return af < bf
	case aok:
		return true
	case bok:
		return false
	default:
		return cellLabel(a) < cellLabel(b)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
