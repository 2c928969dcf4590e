package filter

import (
	"testing"

	"github.com/KaramelBytes/examdash-cli/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scores() *dataset.Table {
	cols := []dataset.Column{
		{Name: dataset.ColGender, Kind: dataset.KindString, Known: true},
		{Name: dataset.ColCourse, Kind: dataset.KindString, Known: true},
		{Name: dataset.ColScore, Kind: dataset.KindNumber, Known: true},
	}
	r := func(g, m string, n float64) dataset.Row {
		return dataset.Row{dataset.String(g), dataset.String(m), dataset.Number(n)}
	}
	rows := []dataset.Row{
		r("F", "Math", 80),
		r("M", "Phys", 60),
		r("F", "Phys", 90),
		r("M", "Math", 75),
		{dataset.String("F"), dataset.String("Math"), dataset.Missing},
	}
	return dataset.New("scores.csv", cols, rows, dataset.ExamSchema())
}

func ptr(f float64) *float64 { return &f }

func TestApplyAllSelectionsReturnsFullTable(t *testing.T) {
	tab := scores()
	// Drop the row without a score so min(Nilai) passes everything.
	tab = tab.WithRows(tab.Rows[:4])
	sel := Options(tab, Spec{})
	require.NotNil(t, sel.ScoreMin)

	got := Spec{Gender: DefaultAll, Course: DefaultAll, MinScore: sel.ScoreMin}.Apply(tab)
	assert.Equal(t, tab.Rows, got.Rows)
}

func TestApplyConjunction(t *testing.T) {
	tab := scores()
	got := Spec{Gender: "F", Course: "Phys"}.Apply(tab)
	require.Equal(t, 1, got.Len())
	assert.Equal(t, 90.0, got.Rows[0][2].Num)

	got = Spec{Gender: "F", MinScore: ptr(80)}.Apply(tab)
	assert.Equal(t, 2, got.Len(), "threshold is inclusive and missing scores fail it")
}

func TestApplyEmptyResultIsValid(t *testing.T) {
	got := Spec{Course: "Chemistry"}.Apply(scores())
	require.NotNil(t, got)
	assert.Equal(t, 0, got.Len())
	assert.Equal(t, []string{dataset.ColGender, dataset.ColCourse, dataset.ColScore}, got.ColumnNames())
}

func TestApplyDoesNotModifySource(t *testing.T) {
	tab := scores()
	_ = Spec{Gender: "M"}.Apply(tab)
	assert.Equal(t, 5, tab.Len())
}

func TestPredicatesSkipUnknownColumnsAndSentinel(t *testing.T) {
	tab := scores()
	spec := Spec{Gender: "Semua", Where: []Equal{{Column: "Kelas", Value: "A"}}, ScoreColumn: "Missing"}
	spec.MinScore = ptr(70)
	assert.Empty(t, spec.Predicates(tab))
	assert.Equal(t, "none", spec.Describe(tab))
}

func TestCustomAllLabel(t *testing.T) {
	tab := scores()
	got := Spec{Gender: "All", All: "All"}.Apply(tab)
	assert.Equal(t, 5, got.Len())
	sel := Options(tab, Spec{All: "All"})
	assert.Equal(t, []string{"All", "F", "M"}, sel.Genders)
}

func TestOptionsFirstOccurrenceOrder(t *testing.T) {
	sel := Options(scores(), Spec{})
	assert.Equal(t, []string{DefaultAll, "F", "M"}, sel.Genders)
	assert.Equal(t, []string{DefaultAll, "Math", "Phys"}, sel.Courses)
	assert.Equal(t, 60.0, *sel.ScoreMin)
	assert.Equal(t, 90.0, *sel.ScoreMax)
}

func TestParseEqual(t *testing.T) {
	eq, err := ParseEqual(" Matkul = Math ")
	require.NoError(t, err)
	assert.Equal(t, Equal{Column: "Matkul", Value: "Math"}, eq)

	_, err = ParseEqual("novalue")
	assert.Error(t, err)
	_, err = ParseEqual("=x")
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	spec := Spec{Gender: "F", MinScore: ptr(70.5)}
	assert.Equal(t, `Gender == "F" AND Nilai >= 70.5`, spec.Describe(scores()))
}

func TestWhereComparesNumericColumnsByValue(t *testing.T) {
	tab := scores()
	for _, v := range []string{"80", "80.0", "80,0"} {
		got := Spec{Where: []Equal{{Column: dataset.ColScore, Value: v}}}.Apply(tab)
		require.Equal(t, 1, got.Len(), v)
		assert.Equal(t, 80.0, got.Rows[0][2].Num)
	}
	got := Spec{Where: []Equal{{Column: dataset.ColScore, Value: "eighty"}}}.Apply(tab)
	assert.Equal(t, 0, got.Len())
	got = Spec{Where: []Equal{{Column: dataset.ColCourse, Value: "Math"}}}.Apply(tab)
	assert.Equal(t, 3, got.Len())
}

func TestOptionsScoreBounds(t *testing.T) {
	sel := Options(scores(), Spec{})
	require.NotNil(t, sel.ScoreMin)
	assert.Equal(t, 60.0, *sel.ScoreMin)
	assert.Equal(t, 90.0, *sel.ScoreMax)

	empty := scores()
	empty = empty.WithRows(nil)
	sel = Options(empty, Spec{})
	assert.Nil(t, sel.ScoreMin)
	assert.Nil(t, sel.ScoreMax)
}
