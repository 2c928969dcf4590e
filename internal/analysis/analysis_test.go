package analysis

import (
	"math"
	"testing"

	"github.com/KaramelBytes/examdash-cli/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nums(xs ...float64) []dataset.Value {
	out := make([]dataset.Value, len(xs))
	for i, x := range xs {
		out[i] = dataset.Number(x)
	}
	return out
}

func TestModeOf(t *testing.T) {
	m := ModeOf(nums(5, 5, 7, 7, 9))
	assert.Equal(t, ModeMultimodal, m.Status)
	assert.Equal(t, nums(5, 7), m.Values)
	assert.Equal(t, 2, m.Count)
	assert.Equal(t, "multimodal: 5, 7", m.String())

	m = ModeOf(nil)
	assert.Equal(t, ModeNone, m.Status)
	assert.Equal(t, "not found", m.String())

	m = ModeOf(nums(3, 3, 3))
	assert.Equal(t, ModeSingle, m.Status)
	assert.Equal(t, "3", m.String())
}

func TestModeOfKeepsFirstEncounteredOrder(t *testing.T) {
	vals := []dataset.Value{
		dataset.String("M"), dataset.Missing, dataset.String("F"),
		dataset.String("F"), dataset.String("M"), dataset.Missing, dataset.Missing,
	}
	m := ModeOf(vals)
	require.Equal(t, ModeMultimodal, m.Status)
	assert.Equal(t, []dataset.Value{dataset.String("M"), dataset.String("F")}, m.Values)
}

func TestModeOfOnlyMissing(t *testing.T) {
	m := ModeOf([]dataset.Value{dataset.Missing, dataset.Missing})
	assert.Equal(t, ModeNone, m.Status)
	assert.Empty(t, m.Values)
}

func TestDescribeValues(t *testing.T) {
	s := DescribeValues("Nilai", []float64{4, 1, 3, 2})
	assert.Equal(t, 4, s.Count)
	require.NotNil(t, s.Mean)
	assert.InDelta(t, 2.5, *s.Mean, 1e-12)
	require.NotNil(t, s.Std)
	assert.InDelta(t, 1.2909944487, *s.Std, 1e-9)
	assert.Equal(t, 1.0, *s.Min)
	assert.Equal(t, 4.0, *s.Max)
	assert.InDelta(t, 1.75, *s.P25, 1e-12)
	assert.InDelta(t, 2.5, *s.P50, 1e-12)
	assert.InDelta(t, 3.25, *s.P75, 1e-12)
}

func TestDescribeValuesDegenerate(t *testing.T) {
	one := DescribeValues("Nilai", []float64{70})
	assert.Equal(t, 1, one.Count)
	assert.Nil(t, one.Std, "standard deviation of a single value is undefined")
	assert.Equal(t, 70.0, *one.Mean)
	assert.Equal(t, 70.0, *one.P75)

	none := DescribeValues("Nilai", nil)
	assert.Equal(t, Summary{Column: "Nilai"}, none)
}

func scoreTable(rows ...[]float64) *dataset.Table {
	cols := []dataset.Column{
		{Name: dataset.ColScore, Kind: dataset.KindNumber, Known: true},
		{Name: dataset.ColMidterm, Kind: dataset.KindNumber, Known: true},
		{Name: dataset.ColFinal, Kind: dataset.KindNumber, Known: true},
	}
	out := make([]dataset.Row, len(rows))
	for i, r := range rows {
		row := make(dataset.Row, len(r))
		for j, x := range r {
			row[j] = dataset.Number(x)
		}
		out[i] = row
	}
	return dataset.New("scores.csv", cols, out, dataset.ExamSchema())
}

func TestDescribeSkipsAbsentColumns(t *testing.T) {
	got := Describe(scoreTable([]float64{1, 2, 3}))
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Nilai", "UTS", "UAS"}, []string{got[0].Column, got[1].Column, got[2].Column})
}

func TestCorrelateSymmetricWithUnitDiagonal(t *testing.T) {
	m := Correlate(scoreTable(
		[]float64{80, 75, 70},
		[]float64{60, 50, 70},
		[]float64{90, 70, 70},
		[]float64{70, 72, 70},
	))
	require.True(t, m.Determined)
	for i := range m.Columns {
		for j := range m.Columns {
			a, b := m.Values[i][j], m.Values[j][i]
			if a == nil || b == nil {
				assert.True(t, a == nil && b == nil)
				continue
			}
			assert.Equal(t, *a, *b)
			assert.LessOrEqual(t, *a, 1.0)
			assert.GreaterOrEqual(t, *a, -1.0)
		}
	}
	r, ok := m.At("Nilai", "Nilai")
	require.True(t, ok)
	assert.Equal(t, 1.0, r)

	// UAS is constant: every coefficient involving it is undefined.
	_, ok = m.At("UAS", "UAS")
	assert.False(t, ok)
	_, ok = m.At("Nilai", "UAS")
	assert.False(t, ok)
}

func TestCorrelatePerfectLines(t *testing.T) {
	m := Correlate(scoreTable(
		[]float64{1, 10, 5},
		[]float64{2, 8, 6},
		[]float64{3, 6, 7},
	))
	r, ok := m.At("Nilai", "UTS")
	require.True(t, ok)
	assert.InDelta(t, -1.0, r, 1e-12)
	r, ok = m.At("Nilai", "UAS")
	require.True(t, ok)
	assert.InDelta(t, 1.0, r, 1e-12)
}

func TestCorrelateUndeterminedBelowTwoRows(t *testing.T) {
	m := Correlate(scoreTable([]float64{1, 2, 3}))
	assert.False(t, m.Determined)
	assert.Empty(t, m.Values)
	assert.Equal(t, []string{"Nilai", "UTS", "UAS"}, m.Columns)

	m = Correlate(scoreTable())
	assert.False(t, m.Determined)
}

func TestBinValuesSingleValue(t *testing.T) {
	s := BinValues([]float64{7, 7, 7, 7}, 0)
	require.Len(t, s.Bins, 1)
	assert.Equal(t, 4, s.Bins[0].Count)
	assert.Equal(t, 7.0, s.Bins[0].Lower)
}

func TestBinValuesEdges(t *testing.T) {
	s := BinValues([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 5)
	require.Len(t, s.Bins, 5)
	assert.Equal(t, 2.0, s.Width)
	assert.Equal(t, []int{2, 2, 2, 2, 3}, []int{s.Bins[0].Count, s.Bins[1].Count, s.Bins[2].Count, s.Bins[3].Count, s.Bins[4].Count})
	assert.Equal(t, 0.0, s.Bins[0].Lower)
	assert.Equal(t, 10.0, s.Bins[4].Upper)
	assert.Equal(t, 11, s.Total())

	poly := s.Polygon()
	require.Len(t, poly, 5)
	assert.Equal(t, Point{X: 8, Y: 3}, poly[4])
}

func TestBinValuesCapsAtDistinctValues(t *testing.T) {
	s := BinValues([]float64{60, 80, 80}, 0)
	require.Len(t, s.Bins, 2)
	assert.Equal(t, 1, s.Bins[0].Count)
	assert.Equal(t, 2, s.Bins[1].Count)
}

func TestBinValuesEmpty(t *testing.T) {
	s := BinValues(nil, 10)
	assert.Empty(t, s.Bins)
	assert.Equal(t, 0, s.Total())
}

func TestHistogramsFollowView(t *testing.T) {
	tab := scoreTable([]float64{10, 1, 1}, []float64{20, 2, 1}, []float64{30, 3, 1})
	series := Histograms(tab.WithRows(tab.Rows[:2]), 0)
	require.Len(t, series, 3)
	assert.Equal(t, "Nilai", series[0].Column)
	assert.Equal(t, 10.0, series[0].Bins[0].Lower)
	assert.Equal(t, 20.0, series[0].Bins[len(series[0].Bins)-1].Upper)
}

func TestModeOfMergesSignedZero(t *testing.T) {
	m := ModeOf(nums(math.Copysign(0, -1), 0, 1))
	assert.Equal(t, ModeSingle, m.Status)
	assert.Equal(t, 2, m.Count)
}
