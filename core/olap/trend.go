package olap

import (
	"math"
	"sort"
)

// Trend directions.
const (
	TrendUp   = "up"
	TrendDown = "down"
	TrendFlat = "flat"
)

// TrendResult summarizes a metric over the last N time buckets, for
// sparkline-style displays.
type TrendResult struct {
	Values    []float64 `json:"values"`
	Direction string    `json:"direction"`
	ChangePct float64   `json:"change_pct"`
	Min       float64   `json:"min"`
	Max       float64   `json:"max"`
	Avg       float64   `json:"avg"`
}

// MetricTrend sums metricColumn per timeColumn bucket (sorted by time),
// keeps the last periods values and classifies the direction: up when the
// first-to-last change exceeds +5%, down below -5%, flat otherwise. A zero
// first value is replaced with a small epsilon to avoid dividing by zero.
// Missing columns or fewer than two buckets yield an empty flat result;
// this is a diagnostic-friendly degradation, never an error.
func MetricTrend(t Table, timeColumn, metricColumn string, periods int) TrendResult {
	if !t.HasColumn(timeColumn) || !t.HasColumn(metricColumn) {
		return TrendResult{Direction: TrendFlat}
	}

	sums := make(map[string]float64)
	keys := make(map[string]any)
	for _, row := range t.Rows {
		label := cellLabel(row[timeColumn])
		if v, ok := asFloat(row[metricColumn]); ok {
			sums[label] += v
		}
		if _, seen := keys[label]; !seen {
			keys[label] = row[timeColumn]
		}
	}

	ordered := make([]any, 0, len(keys))
	for _, v := range keys {
		ordered = append(ordered, v)
	}
	sort.SliceStable(ordered, func(i, j int) bool { return lessValues(ordered[i], ordered[j]) })

	values := make([]float64, 0, len(ordered))
	for _, k := range ordered {
		values = append(values, sums[cellLabel(k)])
	}
	if periods > 0 && len(values) > periods {
		values = values[len(values)-periods:]
	}

	if len(values) < 2 {
		return TrendResult{Values: values, Direction: TrendFlat}
	}

	first := values[0]
	if first == 0 {
		first = 0.01
	}
	last := values[len(values)-1]
	changePct := (last - first) / math.Abs(first) * 100

	direction := TrendFlat
	if changePct > 5 {
		direction = TrendUp
	} else if changePct < -5 {
		direction = TrendDown
	}

	minV, maxV, sum := values[0], values[0], 0.0
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
		sum += v
	}

	return TrendResult{
		Values:    values,
		Direction: direction,
		ChangePct: round1(changePct),
		Min:       minV,
		Max:       maxV,
		Avg:       round2(sum / float64(len(values))),
	}
}

// CubeValidation reports whether a table satisfies the dimensions and
// measures a computation requires. Pure diagnostic; never fails.
type CubeValidation struct {
	Valid             bool           `json:"valid"`
	MissingDimensions []string       `json:"missing_dimensions"`
	MissingMeasures   []string       `json:"missing_measures"`
	NullCounts        map[string]int `json:"null_counts"`
	RowCount          int            `json:"row_count"`
	ColumnCount       int            `json:"column_count"`
}

// ValidateCube checks for the required dimension and measure columns and
// counts missing values per measure.
func ValidateCube(t Table, requiredDimensions, requiredMeasures []string) CubeValidation {
	result := CubeValidation{
		MissingDimensions: []string{},
		MissingMeasures:   []string{},
		NullCounts:        make(map[string]int),
		RowCount:          t.Len(),
		ColumnCount:       len(t.Columns),
	}
	for _, d := range requiredDimensions {
		if !t.HasColumn(d) {
			result.MissingDimensions = append(result.MissingDimensions, d)
		}
	}
	for _, m := range requiredMeasures {
		if !t.HasColumn(m) {
			result.MissingMeasures = append(result.MissingMeasures, m)
			continue
		}
		nulls := 0
		for _, row := range t.Rows {
			if v, ok := row[m]; !ok || v == nil {
				nulls++
			}
		}
		result.NullCounts[m] = nulls
	}
	result.Valid = len(result.MissingDimensions) == 0 && len(result.MissingMeasures) == 0
	return result
}
