package dataset

import "strings"

// Recognized columns of the exam dataset.
const (
	ColGender  = "Gender"
	ColCourse  = "Matkul"
	ColScore   = "Nilai"
	ColMidterm = "UTS"
	ColFinal   = "UAS"
	ColAge     = "Umur"
	ColDate    = "Tanggal"
)

// DefaultDateLayout is day/month/year; single-digit day and month are accepted.
const DefaultDateLayout = "2/1/2006"

// Column describes one column of a loaded table.
type Column struct {
	Name string
	Kind Kind
	// Known is false for columns outside the schema; they pass through as strings.
	Known bool
}

// Schema lists the recognized columns and how to type them.
type Schema struct {
	Numeric    []string
	Categories []string
	DateColumn string
	DateLayout string
	// ModeColumns are reported by the mode aggregator, in order.
	ModeColumns []string
}

// ExamSchema returns the schema of the student exam dataset.
func ExamSchema() Schema {
	return Schema{
		Numeric:     []string{ColScore, ColMidterm, ColFinal, ColAge},
		Categories:  []string{ColGender, ColCourse},
		DateColumn:  ColDate,
		DateLayout:  DefaultDateLayout,
		ModeColumns: []string{ColScore, ColMidterm, ColFinal, ColGender, ColCourse},
	}
}

// KindOf returns the kind the schema assigns to name, and whether name is recognized.
func (s Schema) KindOf(name string) (Kind, bool) {
	for _, n := range s.Numeric {
		if strings.EqualFold(n, name) {
			return KindNumber, true
		}
	}
	for _, n := range s.Categories {
		if strings.EqualFold(n, name) {
			return KindString, true
		}
	}
	if s.DateColumn != "" && strings.EqualFold(s.DateColumn, name) {
		return KindDate, true
	}
	return KindString, false
}

// Recognized returns every column name the schema knows, in declaration order.
func (s Schema) Recognized() []string {
	out := make([]string, 0, len(s.Numeric)+len(s.Categories)+1)
	out = append(out, s.Categories...)
	out = append(out, s.Numeric...)
	if s.DateColumn != "" {
		out = append(out, s.DateColumn)
	}
	return out
}

// Layout returns the date layout, falling back to DefaultDateLayout.
func (s Schema) Layout() string {
	if s.DateLayout == "" {
		return DefaultDateLayout
	}
	return s.DateLayout
}
