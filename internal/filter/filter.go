package filter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/KaramelBytes/examdash-cli/internal/dataset"
	"github.com/KaramelBytes/examdash-cli/internal/loader"
)

// DefaultAll is the selection label meaning "no restriction".
const DefaultAll = "Semua"

// Equal restricts Column to rows whose value renders as Value.
type Equal struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

// Spec is a conjunction of optional predicates. Empty fields and the All
// label pass every row.
type Spec struct {
	Gender   string   `json:"gender,omitempty"`
	Course   string   `json:"course,omitempty"`
	Where    []Equal  `json:"where,omitempty"`
	MinScore *float64 `json:"min_score,omitempty"`
	// All is the pass-all label; DefaultAll when empty.
	All string `json:"-"`
	// Column names; the exam schema's when empty.
	GenderColumn string `json:"-"`
	CourseColumn string `json:"-"`
	ScoreColumn  string `json:"-"`
}

func (s Spec) all() string {
	if s.All == "" {
		return DefaultAll
	}
	return s.All
}

func (s Spec) active(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != s.all()
}

func or(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Predicate tests one row of a table.
type Predicate interface {
	Match(r dataset.Row) bool
	String() string
}

type equalPred struct {
	col   string
	idx   int
	value string
	// num is set when the column is numeric and value parses as a number.
	num *float64
}

func (p equalPred) Match(r dataset.Row) bool {
	v := r[p.idx]
	if v.IsMissing() {
		return false
	}
	if p.num != nil && v.Kind == dataset.KindNumber {
		return v.Num == *p.num
	}
	return v.String() == p.value
}

func (p equalPred) String() string { return fmt.Sprintf("%s == %q", p.col, p.value) }

type atLeastPred struct {
	col string
	idx int
	min float64
}

// Match fails rows with a missing value, as NaN >= x is false.
func (p atLeastPred) Match(r dataset.Row) bool {
	v := r[p.idx]
	return v.Kind == dataset.KindNumber && v.Num >= p.min
}

func (p atLeastPred) String() string {
	return fmt.Sprintf("%s >= %s", p.col, strconv.FormatFloat(p.min, 'f', -1, 64))
}

// Predicates returns the active predicates in application order: gender,
// course, extra equalities, then the score threshold. Predicates naming a
// column the table lacks are skipped.
func (s Spec) Predicates(t *dataset.Table) []Predicate {
	var out []Predicate
	addEq := func(col, val string) {
		if !s.active(val) {
			return
		}
		idx, ok := t.Index(col)
		if !ok {
			return
		}
		p := equalPred{col: t.Columns[idx].Name, idx: idx, value: strings.TrimSpace(val)}
		if t.Columns[idx].Kind == dataset.KindNumber {
			if x, ok := loader.ParseNumber(p.value, loader.DefaultOptions()); ok {
				p.num = &x
			}
		}
		out = append(out, p)
	}
	addEq(or(s.GenderColumn, dataset.ColGender), s.Gender)
	addEq(or(s.CourseColumn, dataset.ColCourse), s.Course)
	for _, w := range s.Where {
		addEq(w.Column, w.Value)
	}
	if s.MinScore != nil && !math.IsNaN(*s.MinScore) {
		if idx, ok := t.Index(or(s.ScoreColumn, dataset.ColScore)); ok {
			out = append(out, atLeastPred{col: t.Columns[idx].Name, idx: idx, min: *s.MinScore})
		}
	}
	return out
}

// Apply returns the rows of t matching every active predicate, in order.
// The result shares row storage with t; t is not modified. An empty result
// is valid.
func (s Spec) Apply(t *dataset.Table) *dataset.Table {
	if t == nil {
		return nil
	}
	preds := s.Predicates(t)
	if len(preds) == 0 {
		return t.WithRows(t.Rows)
	}
	rows := t.Rows
	for _, p := range preds {
		kept := make([]dataset.Row, 0, len(rows))
		for _, r := range rows {
			if p.Match(r) {
				kept = append(kept, r)
			}
		}
		rows = kept
	}
	return t.WithRows(rows)
}

// Describe renders the active predicates, or "none".
func (s Spec) Describe(t *dataset.Table) string {
	preds := s.Predicates(t)
	if len(preds) == 0 {
		return "none"
	}
	parts := make([]string, len(preds))
	for i, p := range preds {
		parts[i] = p.String()
	}
	return strings.Join(parts, " AND ")
}

// ParseEqual parses a "column=value" expression.
func ParseEqual(expr string) (Equal, error) {
	col, val, ok := strings.Cut(expr, "=")
	col = strings.TrimSpace(col)
	if !ok || col == "" {
		return Equal{}, fmt.Errorf("invalid filter %q (want column=value)", expr)
	}
	return Equal{Column: col, Value: strings.TrimSpace(val)}, nil
}
