package filter

import (
	"github.com/KaramelBytes/examdash-cli/internal/dataset"
	"github.com/montanaflynn/stats"
)

// Selection holds the choices offered by the filter controls.
type Selection struct {
	Genders []string `json:"genders"`
	Courses []string `json:"courses"`
	// Score slider bounds; nil when the column has no values.
	ScoreMin *float64 `json:"score_min"`
	ScoreMax *float64 `json:"score_max"`
}

// Options builds the selection lists from t: the all label followed by the
// distinct non-missing values in first-occurrence order.
func Options(t *dataset.Table, spec Spec) Selection {
	sel := Selection{
		Genders: distinct(t, or(spec.GenderColumn, dataset.ColGender), spec.all()),
		Courses: distinct(t, or(spec.CourseColumn, dataset.ColCourse), spec.all()),
	}
	scores := t.Floats(or(spec.ScoreColumn, dataset.ColScore))
	if len(scores) > 0 {
		lo, _ := stats.Min(scores)
		hi, _ := stats.Max(scores)
		sel.ScoreMin, sel.ScoreMax = &lo, &hi
	}
	return sel
}

func distinct(t *dataset.Table, col, all string) []string {
	out := []string{all}
	seen := map[string]struct{}{}
	for _, v := range t.Values(col) {
		if v.IsMissing() {
			continue
		}
		s := v.String()
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
