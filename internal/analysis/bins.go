package analysis

import (
	"sort"

	"github.com/KaramelBytes/examdash-cli/internal/dataset"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
)

// DefaultBins is the upper bound on histogram bins when none is requested.
const DefaultBins = 15

// Bin is one histogram bucket. Bins are half-open [Lower, Upper) except the
// last, which includes Upper.
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// BinSeries is the histogram of one numeric column over the current view.
type BinSeries struct {
	Column string  `json:"column"`
	Width  float64 `json:"width"`
	Bins   []Bin   `json:"bins"`
}

// Point is a frequency polygon vertex.
type Point struct {
	X float64 `json:"x"`
	Y int     `json:"y"`
}

// Polygon returns one point per bin keyed by the bin's lower bound.
func (s BinSeries) Polygon() []Point {
	out := make([]Point, len(s.Bins))
	for i, b := range s.Bins {
		out[i] = Point{X: b.Lower, Y: b.Count}
	}
	return out
}

// Total returns the number of values binned.
func (s BinSeries) Total() int {
	n := 0
	for _, b := range s.Bins {
		n += b.Count
	}
	return n
}

// Histogram bins the named column of t. See BinValues.
func Histogram(t *dataset.Table, column string, n int) BinSeries {
	s := BinValues(t.Floats(column), n)
	s.Column = column
	return s
}

// Histograms bins every schema numeric column present in t.
func Histograms(t *dataset.Table, n int) []BinSeries {
	if t == nil {
		return nil
	}
	cols := t.NumericColumns()
	out := make([]BinSeries, 0, len(cols))
	for _, c := range cols {
		out = append(out, Histogram(t, c, n))
	}
	return out
}

// BinValues splits the observed range of vals into at most n equal-width
// bins (DefaultBins when n <= 0), capped at the number of distinct values.
// A single distinct value yields one bin holding every value; no values
// yield an empty series.
func BinValues(vals []float64, n int) BinSeries {
	if len(vals) == 0 {
		return BinSeries{}
	}
	if n <= 0 {
		n = DefaultBins
	}
	lo, _ := stats.Min(vals)
	hi, _ := stats.Max(vals)
	if lo == hi {
		return BinSeries{Bins: []Bin{{Lower: lo, Upper: hi, Count: len(vals)}}}
	}
	if d := distinctCount(vals); d < n {
		n = d
	}
	edges := floats.Span(make([]float64, n+1), lo, hi)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i] = Bin{Lower: edges[i], Upper: edges[i+1]}
	}
	for _, v := range vals {
		// first edge strictly greater than v, minus one
		i := sort.Search(len(edges), func(k int) bool { return edges[k] > v }) - 1
		if i >= n {
			i = n - 1
		}
		if i < 0 {
			i = 0
		}
		bins[i].Count++
	}
	return BinSeries{Width: (hi - lo) / float64(n), Bins: bins}
}

func distinctCount(vals []float64) int {
	seen := make(map[float64]struct{}, len(vals))
	for _, v := range vals {
		seen[v] = struct{}{}
	}
	return len(seen)
}
