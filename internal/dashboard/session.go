package dashboard

import (
	"log/slog"

	"github.com/KaramelBytes/examdash-cli/internal/analysis"
	"github.com/KaramelBytes/examdash-cli/internal/dataset"
	"github.com/KaramelBytes/examdash-cli/internal/filter"
	"github.com/google/uuid"
)

// View is the outcome of one interaction: the filtered rows and everything
// computed from them.
type View struct {
	Filter     filter.Spec          `json:"filter"`
	FilterText string               `json:"filter_text"`
	Table      *dataset.Table       `json:"-"`
	Selection  filter.Selection     `json:"selection"`
	Summary    []analysis.Summary   `json:"describe"`
	Modes      []analysis.Mode      `json:"modes"`
	Corr       *analysis.CorrMatrix `json:"correlation"`
	Histograms []analysis.BinSeries `json:"histograms"`
}

// Rows returns the number of rows in the view.
func (v *View) Rows() int { return v.Table.Len() }

// Empty reports whether the filters matched no rows. This is a valid state
// and every aggregate carries an explicit "no data" value.
func (v *View) Empty() bool { return v.Table.Len() == 0 }

// Session is one interactive consumer of a source. Each session derives its
// own views; the source is never modified.
type Session struct {
	ID     uuid.UUID
	Source *Source
	// Bins is the histogram bin count; analysis.DefaultBins when <= 0.
	Bins   int
	Logger *slog.Logger

	spec filter.Spec
	view *View
}

// NewSession starts a session over src with no filters applied.
func NewSession(src *Source, bins int, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{ID: uuid.New(), Source: src, Bins: bins, Logger: logger}
}

// Apply replaces the session's filters and recomputes its view.
func (s *Session) Apply(spec filter.Spec) *View {
	s.spec = spec
	s.view = Compute(s.Source.Table, spec, s.Bins)
	s.Logger.Debug("view computed",
		"session", s.ID.String(),
		"filter", s.view.FilterText,
		"rows", s.view.Rows())
	return s.view
}

// Spec returns the filters last applied.
func (s *Session) Spec() filter.Spec { return s.spec }

// View returns the last computed view, computing an unfiltered one first if needed.
func (s *Session) View() *View {
	if s.view == nil {
		return s.Apply(s.spec)
	}
	return s.view
}

// Compute runs filter, aggregation and binning over t.
func Compute(t *dataset.Table, spec filter.Spec, bins int) *View {
	filtered := spec.Apply(t)
	return &View{
		Filter:     spec,
		FilterText: spec.Describe(t),
		Table:      filtered,
		Selection:  filter.Options(t, spec),
		Summary:    analysis.Describe(filtered),
		Modes:      analysis.Modes(filtered),
		Corr:       analysis.Correlate(filtered),
		Histograms: analysis.Histograms(filtered, bins),
	}
}
