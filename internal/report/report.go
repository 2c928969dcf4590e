package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/examdash-cli/internal/analysis"
	"github.com/KaramelBytes/examdash-cli/internal/clean"
	"github.com/KaramelBytes/examdash-cli/internal/dashboard"
	"github.com/KaramelBytes/examdash-cli/internal/dataset"
	"github.com/KaramelBytes/examdash-cli/internal/filter"
	"github.com/KaramelBytes/examdash-cli/internal/utils"
)

// Dashboard is the rendering input: one source and one computed view.
type Dashboard struct {
	Name       string               `json:"name"`
	Session    string               `json:"session,omitempty"`
	RawRows    int                  `json:"raw_rows"`
	Rows       int                  `json:"rows"`
	Columns    []string             `json:"columns"`
	Cleaning   clean.Report         `json:"cleaning"`
	Filter     string               `json:"filter"`
	Filtered   int                  `json:"filtered_rows"`
	Selection  filter.Selection     `json:"selection"`
	Summary    []analysis.Summary   `json:"describe"`
	Modes      []analysis.Mode      `json:"modes"`
	Corr       *analysis.CorrMatrix `json:"correlation"`
	Histograms []analysis.BinSeries `json:"histograms"`
	Samples    []dataset.Row        `json:"samples,omitempty"`
	Notes      []string             `json:"notes,omitempty"`

	view *dashboard.View
}

// New bundles src and v for rendering, keeping up to sampleRows filtered rows.
func New(src *dashboard.Source, v *dashboard.View, sampleRows int) *Dashboard {
	d := &Dashboard{
		Name:       src.Table.Name,
		RawRows:    src.RawRows,
		Rows:       src.Table.Len(),
		Columns:    src.Table.ColumnNames(),
		Cleaning:   src.Cleaning,
		Filter:     v.FilterText,
		Filtered:   v.Rows(),
		Selection:  v.Selection,
		Summary:    v.Summary,
		Modes:      v.Modes,
		Corr:       v.Corr,
		Histograms: v.Histograms,
		Notes:      src.Notes(),
		view:       v,
	}
	if sampleRows > 0 {
		n := min(sampleRows, v.Rows())
		d.Samples = v.Table.Rows[:n]
	}
	return d
}

// JSON renders the dashboard as indented JSON.
func (d *Dashboard) JSON() ([]byte, error) {
	return utils.PrettyJSON(d)
}

// Markdown renders a compact report for the terminal or a standalone doc.
func (d *Dashboard) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if d.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", d.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d (loaded %d)\n", d.Rows, d.RawRows))
	b.WriteString(fmt.Sprintf("Columns: %d\n", len(d.Columns)))

	b.WriteString("\n[CLEANING]\n")
	b.WriteString(fmt.Sprintf("- empty rows removed: %d\n", d.Cleaning.NullRowsRemoved))
	b.WriteString(fmt.Sprintf("- duplicate rows removed: %d", d.Cleaning.DuplicatesRemoved))
	if d.Cleaning.DuplicateGroups > 0 {
		b.WriteString(fmt.Sprintf(" (%d groups)", d.Cleaning.DuplicateGroups))
	}
	b.WriteString("\n")

	b.WriteString("\n[FILTER]\n")
	b.WriteString(fmt.Sprintf("- predicates: %s\n", d.Filter))
	b.WriteString(fmt.Sprintf("- rows: %d of %d\n", d.Filtered, d.Rows))
	if len(d.Selection.Genders) > 1 {
		b.WriteString(fmt.Sprintf("- genders: %s\n", strings.Join(d.Selection.Genders, ", ")))
	}
	if len(d.Selection.Courses) > 1 {
		b.WriteString(fmt.Sprintf("- courses: %s\n", strings.Join(d.Selection.Courses, ", ")))
	}
	if d.Selection.ScoreMin != nil {
		b.WriteString(fmt.Sprintf("- score range: %s – %s\n", num(d.Selection.ScoreMin), num(d.Selection.ScoreMax)))
	}
	if d.Filtered == 0 {
		b.WriteString("- no rows match the current filters\n")
	}

	if len(d.Summary) > 0 {
		b.WriteString("\n[DESCRIBE]\n")
		b.WriteString("| column | count | mean | std | min | 25% | 50% | 75% | max |\n")
		b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- | --- |\n")
		for _, s := range d.Summary {
			b.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %s | %s | %s | %s | %s |\n",
				safeName(s.Column), s.Count, num(s.Mean), num(s.Std), num(s.Min), num(s.P25), num(s.P50), num(s.P75), num(s.Max)))
		}
	}

	if len(d.Modes) > 0 {
		b.WriteString("\n[MODE]\n")
		for _, m := range d.Modes {
			if m.Status == analysis.ModeNone {
				b.WriteString(fmt.Sprintf("- %s: %s\n", safeName(m.Column), m.String()))
				continue
			}
			b.WriteString(fmt.Sprintf("- %s: %s (n=%d)\n", safeName(m.Column), safeVal(m.String()), m.Count))
		}
	}

	if d.Corr != nil && len(d.Corr.Columns) > 0 {
		b.WriteString("\n[CORRELATIONS]\n")
		if !d.Corr.Determined {
			b.WriteString("- undetermined (fewer than 2 rows)\n")
		} else {
			type pr struct {
				A, B string
				R    float64
			}
			var pairs []pr
			n := len(d.Corr.Columns)
			for i := 0; i < n; i++ {
				for j := i + 1; j < n; j++ {
					if v := d.Corr.Values[i][j]; v != nil {
						pairs = append(pairs, pr{A: d.Corr.Columns[i], B: d.Corr.Columns[j], R: *v})
					}
				}
			}
			sort.SliceStable(pairs, func(i, j int) bool {
				return math.Abs(pairs[i].R) > math.Abs(pairs[j].R)
			})
			for _, p := range pairs {
				b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", p.A, p.B, p.R))
			}
			if len(pairs) == 0 {
				b.WriteString("- no defined coefficients\n")
			}
		}
	}

	if len(d.Histograms) > 0 {
		b.WriteString("\n[HISTOGRAMS]\n")
		for _, h := range d.Histograms {
			if len(h.Bins) == 0 {
				b.WriteString(fmt.Sprintf("- %s: no data\n", safeName(h.Column)))
				continue
			}
			parts := make([]string, len(h.Bins))
			for i, bin := range h.Bins {
				parts[i] = fmt.Sprintf("%.4g:%d", bin.Lower, bin.Count)
			}
			b.WriteString(fmt.Sprintf("- %s (%d bins): %s\n", safeName(h.Column), len(h.Bins), strings.Join(parts, " ")))
		}
	}

	if len(d.Samples) > 0 {
		b.WriteString("\n[HEAD AND SAMPLE ROWS]\n")
		b.WriteString("| ")
		for i, c := range d.Columns {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(safeName(c))
		}
		b.WriteString(" |\n| ")
		for i := range d.Columns {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString("---")
		}
		b.WriteString(" |\n")
		for _, row := range d.Samples {
			b.WriteString("| ")
			for i, v := range row {
				if i > 0 {
					b.WriteString(" | ")
				}
				val := v.String()
				if len(val) > 80 {
					val = val[:77] + "..."
				}
				b.WriteString(safeVal(val))
			}
			b.WriteString(" |\n")
		}
	}

	if len(d.Notes) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range d.Notes {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// CleaningMarkdown renders the cleaning report with the duplicate set.
func CleaningMarkdown(src *dashboard.Source) string {
	var b strings.Builder
	b.WriteString("[CLEANING]\n")
	b.WriteString(fmt.Sprintf("File: %s\n", src.Table.Name))
	b.WriteString(fmt.Sprintf("Rows loaded: %d\n", src.RawRows))
	b.WriteString(fmt.Sprintf("Empty rows removed: %d\n", src.Cleaning.NullRowsRemoved))
	b.WriteString(fmt.Sprintf("Duplicate rows removed: %d\n", src.Cleaning.DuplicatesRemoved))
	b.WriteString(fmt.Sprintf("Rows after cleaning: %d\n", src.Table.Len()))
	if len(src.Cleaning.Duplicates) == 0 {
		b.WriteString("\nNo duplicate rows.\n")
		return b.String()
	}
	b.WriteString("\n[DUPLICATES]\n| ")
	b.WriteString(strings.Join(src.Table.ColumnNames(), " | "))
	b.WriteString(" |\n")
	for _, row := range src.Cleaning.Duplicates {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = safeVal(v.String())
		}
		b.WriteString("| ")
		b.WriteString(strings.Join(cells, " | "))
		b.WriteString(" |\n")
	}
	return b.String()
}

// SelectionMarkdown renders the filter choices available over src.
func SelectionMarkdown(sel filter.Selection) string {
	var b strings.Builder
	b.WriteString("[FILTER OPTIONS]\n")
	b.WriteString(fmt.Sprintf("Gender: %s\n", strings.Join(sel.Genders, ", ")))
	b.WriteString(fmt.Sprintf("Matkul: %s\n", strings.Join(sel.Courses, ", ")))
	if sel.ScoreMin != nil {
		b.WriteString(fmt.Sprintf("Nilai: %s – %s\n", num(sel.ScoreMin), num(sel.ScoreMax)))
	} else {
		b.WriteString("Nilai: no data\n")
	}
	return b.String()
}

func num(p *float64) string {
	if p == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.4g", *p)
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
