package analysis

import (
	"math"

	"github.com/KaramelBytes/examdash-cli/internal/dataset"
	"gonum.org/v1/gonum/stat"
)

// CorrMatrix holds a symmetric Pearson correlation matrix across numeric
// columns. Values[i][j] is nil where the coefficient is undefined. When
// Determined is false the view had fewer than two rows and Values is empty.
type CorrMatrix struct {
	Columns    []string     `json:"columns"`
	Determined bool         `json:"determined"`
	Values     [][]*float64 `json:"values,omitempty"`
}

// At returns the coefficient for the named pair.
func (m *CorrMatrix) At(a, b string) (float64, bool) {
	if m == nil || !m.Determined {
		return 0, false
	}
	i, j := -1, -1
	for k, c := range m.Columns {
		if c == a {
			i = k
		}
		if c == b {
			j = k
		}
	}
	if i < 0 || j < 0 || m.Values[i][j] == nil {
		return 0, false
	}
	return *m.Values[i][j], true
}

// Correlate computes Pearson coefficients for every pair of schema numeric
// columns in t, using rows where both values are present.
func Correlate(t *dataset.Table) *CorrMatrix {
	if t == nil {
		return &CorrMatrix{}
	}
	cols := t.NumericColumns()
	m := &CorrMatrix{Columns: cols}
	if t.Len() < 2 {
		return m
	}
	idx := make([]int, len(cols))
	for i, c := range cols {
		idx[i], _ = t.Index(c)
	}
	m.Determined = true
	m.Values = make([][]*float64, len(cols))
	for i := range m.Values {
		m.Values[i] = make([]*float64, len(cols))
	}
	for a := 0; a < len(cols); a++ {
		for b := a; b < len(cols); b++ {
			r, ok := pearson(t.Rows, idx[a], idx[b])
			if !ok {
				continue
			}
			if a == b {
				r = 1
			}
			ra, rb := r, r
			m.Values[a][b] = &ra
			m.Values[b][a] = &rb
		}
	}
	return m
}

// pearson is undefined with fewer than two complete pairs or a zero-variance side.
func pearson(rows []dataset.Row, i, j int) (float64, bool) {
	var xs, ys []float64
	for _, r := range rows {
		x, y := r[i], r[j]
		if x.Kind != dataset.KindNumber || y.Kind != dataset.KindNumber {
			continue
		}
		xs = append(xs, x.Num)
		ys = append(ys, y.Num)
	}
	if len(xs) < 2 {
		return 0, false
	}
	if constant(xs) || constant(ys) {
		return 0, false
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r, true
}

func constant(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}
