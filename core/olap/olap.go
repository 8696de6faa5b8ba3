package olap

import (
	"fmt"
	"sort"
)

// Filter is a tagged union of an equality test and an arbitrary predicate,
// used by Dice. The zero Filter matches nothing; build filters with Equals
// or Where.
type Filter struct {
	value     any
	predicate func(any) bool
	isPred    bool
}

// Equals builds a filter matching cells equal to v.
func Equals(v any) Filter {
	return Filter{value: v}
}

// Where builds a filter matching cells for which pred returns true.
func Where(pred func(any) bool) Filter {
	return Filter{predicate: pred, isPred: true}
}

func (f Filter) matches(v any) bool {
	if f.isPred {
		return f.predicate != nil && f.predicate(v)
	}
	return valuesEqual(v, f.value)
}

// Slice filters the table to rows where dimension equals value.
func Slice(t Table, dimension string, value any) (Table, error) {
	if !t.HasColumn(dimension) {
		return Table{}, unknownDimension(dimension, t.Columns)
	}
	out := Table{Columns: append([]string(nil), t.Columns...)}
	for _, row := range t.Rows {
		if valuesEqual(row[dimension], value) {
			out.Rows = append(out.Rows, cloneRow(row))
		}
	}
	return out, nil
}

// Dice filters the table to rows satisfying all filters. An empty filter
// map returns the table unchanged, row for row.
func Dice(t Table, filters map[string]Filter) (Table, error) {
	for dimension := range filters {
		if !t.HasColumn(dimension) {
			return Table{}, unknownDimension(dimension, t.Columns)
		}
	}
	out := Table{Columns: append([]string(nil), t.Columns...)}
	for _, row := range t.Rows {
		keep := true
		for dimension, filter := range filters {
			if !filter.matches(row[dimension]) {
				keep = false
				break
			}
		}
		if keep {
			out.Rows = append(out.Rows, cloneRow(row))
		}
	}
	return out, nil
}

// DrillDown groups the table by all hierarchy levels up to and including
// targetLevel, summing numeric non-key columns and taking the first value
// of non-numeric ones. Hierarchy levels are ordered coarse to fine.
func DrillDown(t Table, hierarchy []string, targetLevel string) (Table, error) {
	return groupByHierarchy(t, hierarchy, targetLevel)
}

// RollUp aggregates the table to a coarser hierarchy level. The grouping
// contract is identical to DrillDown: group by the hierarchy prefix, sum
// numeric columns, first value for the rest.
func RollUp(t Table, hierarchy []string, targetLevel string) (Table, error) {
	return groupByHierarchy(t, hierarchy, targetLevel)
}

func groupByHierarchy(t Table, hierarchy []string, targetLevel string) (Table, error) {
	targetIdx := -1
	for i, level := range hierarchy {
		if level == targetLevel {
			targetIdx = i
			break
		}
	}
	if targetIdx < 0 {
		return Table{}, fmt.Errorf("%w: %q not in hierarchy %v",
			ErrInvalidHierarchyLevel, targetLevel, hierarchy)
	}

	var groupCols []string
	for _, level := range hierarchy[:targetIdx+1] {
		if t.HasColumn(level) {
			groupCols = append(groupCols, level)
		}
	}
	if len(groupCols) == 0 {
		return Table{}, fmt.Errorf("%w: hierarchy %v has no columns in the table",
			ErrNoMatchingColumns, hierarchy)
	}

	isGroupCol := make(map[string]bool, len(groupCols))
	for _, c := range groupCols {
		isGroupCol[c] = true
	}
	numeric := make(map[string]bool)
	for _, c := range t.Columns {
		if !isGroupCol[c] {
			numeric[c] = t.IsNumericColumn(c)
		}
	}

	// Group rows by their composite key, preserving key order for output.
	type group struct {
		key  []any
		rows []Row
	}
	index := make(map[string]int)
	var groups []group
	for _, row := range t.Rows {
		key := make([]any, len(groupCols))
		mapKey := ""
		for i, c := range groupCols {
			key[i] = row[c]
			mapKey += cellLabel(row[c]) + "\x00"
		}
		gi, ok := index[mapKey]
		if !ok {
			gi = len(groups)
			index[mapKey] = gi
			groups = append(groups, group{key: key})
		}
		groups[gi].rows = append(groups[gi].rows, row)
	}

	// Deterministic output: order groups by key, column by column.
	sort.SliceStable(groups, func(i, j int) bool {
		for c := range groupCols {
			a, b := groups[i].key[c], groups[j].key[c]
			if !valuesEqual(a, b) {
				return lessValues(a, b)
			}
		}
		return false
	})

	// Output keeps the original column order: group cols where they were,
	// aggregated columns in place.
	out := Table{Columns: append([]string(nil), t.Columns...)}
	for _, g := range groups {
		agg := make(Row, len(t.Columns))
		for i, c := range groupCols {
			agg[c] = g.key[i]
		}
		for _, c := range t.Columns {
			if isGroupCol[c] {
				continue
			}
			if numeric[c] {
				var sum float64
				for _, row := range g.rows {
					if v, ok := asFloat(row[c]); ok {
						sum += v
					}
				}
				agg[c] = sum
			} else {
				agg[c] = g.rows[0][c]
			}
		}
		out.Rows = append(out.Rows, agg)
	}
	return out, nil
}

// Pivot cross-tabulates the table: rowKeys form the row index, distinct
// columnKey values become columns, and aggFunc ("sum", "mean", "count",
// "max", "min") is applied to valueKey. Missing cells are filled with 0.
func Pivot(t Table, rowKeys []string, columnKey, valueKey, aggFunc string) (Table, error) {
	required := append(append([]string(nil), rowKeys...), columnKey, valueKey)
	for _, c := range required {
		if !t.HasColumn(c) {
			return Table{}, unknownDimension(c, t.Columns)
		}
	}
	agg, err := aggregator(aggFunc)
	if err != nil {
		return Table{}, err
	}

	// Collect distinct column values in sorted order.
	var colValues []any
	seenCol := make(map[string]bool)
	for _, row := range t.Rows {
		label := cellLabel(row[columnKey])
		if !seenCol[label] {
			seenCol[label] = true
			colValues = append(colValues, row[columnKey])
		}
	}
	sort.SliceStable(colValues, func(i, j int) bool { return lessValues(colValues[i], colValues[j]) })

	// Bucket values per (row key, column value) cell.
	type bucket struct {
		key   []any
		cells map[string][]float64
	}
	index := make(map[string]int)
	var buckets []bucket
	for _, row := range t.Rows {
		key := make([]any, len(rowKeys))
		mapKey := ""
		for i, c := range rowKeys {
			key[i] = row[c]
			mapKey += cellLabel(row[c]) + "\x00"
		}
		bi, ok := index[mapKey]
		if !ok {
			bi = len(buckets)
			index[mapKey] = bi
			buckets = append(buckets, bucket{key: key, cells: make(map[string][]float64)})
		}
		colLabel := cellLabel(row[columnKey])
		if v, okNum := asFloat(row[valueKey]); okNum {
			buckets[bi].cells[colLabel] = append(buckets[bi].cells[colLabel], v)
		} else {
			// count-style aggregations still see the cell
			buckets[bi].cells[colLabel] = append(buckets[bi].cells[colLabel], 0)
		}
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		for c := range rowKeys {
			a, b := buckets[i].key[c], buckets[j].key[c]
			if !valuesEqual(a, b) {
				return lessValues(a, b)
			}
		}
		return false
	})

	columns := append([]string(nil), rowKeys...)
	for _, cv := range colValues {
		columns = append(columns, cellLabel(cv))
	}
	out := Table{Columns: columns}
	for _, b := range buckets {
		row := make(Row, len(columns))
		for i, c := range rowKeys {
			row[c] = b.key[i]
		}
		for _, cv := range colValues {
			label := cellLabel(cv)
			values := b.cells[label]
			if len(values) == 0 {
				row[label] = 0.0
				continue
			}
			row[label] = agg(values)
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

func aggregator(name string) (func([]float64) float64, error) {
	switch name {
	case "sum", "":
		return func(vs []float64) float64 {
			var s float64
			for _, v := range vs {
				s += v
			}
			return s
		}, nil
	case "mean":
		return func(vs []float64) float64 {
			var s float64
			for _, v := range vs {
				s += v
			}
			return s / float64(len(vs))
		}, nil
	case "count":
		return func(vs []float64) float64 { return float64(len(vs)) }, nil
	case "max":
		return func(vs []float64) float64 {
			m := vs[0]
			for _, v := range vs[1:] {
				if v > m {
					m = v
				}
			}
			return m
		}, nil
	case "min":
		return func(vs []float64) float64 {
			m := vs[0]
			for _, v := range vs[1:] {
				if v < m {
					m = v
				}
			}
			return m
		}, nil
	default:
		return nil, fmt.Errorf("unsupported aggregation function %q", name)
	}
}
