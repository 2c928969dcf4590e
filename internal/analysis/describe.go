package analysis

import (
	"sort"

	"github.com/KaramelBytes/examdash-cli/internal/dataset"
	"github.com/montanaflynn/stats"
)

// Summary holds descriptive statistics of one numeric column. Pointer fields
// are nil when the statistic is undefined for the input.
type Summary struct {
	Column string   `json:"column"`
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	Std    *float64 `json:"std"`
	Min    *float64 `json:"min"`
	P25    *float64 `json:"p25"`
	P50    *float64 `json:"p50"`
	P75    *float64 `json:"p75"`
	Max    *float64 `json:"max"`
}

// Describe summarizes every schema numeric column present in t. Missing
// values are excluded; zero rows yield summaries with Count 0 and no statistics.
func Describe(t *dataset.Table) []Summary {
	if t == nil {
		return nil
	}
	cols := t.NumericColumns()
	out := make([]Summary, 0, len(cols))
	for _, c := range cols {
		out = append(out, DescribeValues(c, t.Floats(c)))
	}
	return out
}

// DescribeValues summarizes vals. The standard deviation uses the sample
// (n-1) formula and is nil for fewer than two values.
func DescribeValues(column string, vals []float64) Summary {
	s := Summary{Column: column, Count: len(vals)}
	if len(vals) == 0 {
		return s
	}
	data := stats.Float64Data(vals)
	if m, err := stats.Mean(data); err == nil {
		s.Mean = &m
	}
	if len(vals) > 1 {
		if sd, err := stats.StandardDeviationSample(data); err == nil {
			s.Std = &sd
		}
	}
	if lo, err := stats.Min(data); err == nil {
		s.Min = &lo
	}
	if hi, err := stats.Max(data); err == nil {
		s.Max = &hi
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	p25, p50, p75 := quantile(sorted, 0.25), quantile(sorted, 0.5), quantile(sorted, 0.75)
	s.P25, s.P50, s.P75 = &p25, &p50, &p75
	return s
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	hi := lo + 1
	if hi >= len(sorted) || pos == float64(lo) {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
