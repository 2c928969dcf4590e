package clean

import "github.com/KaramelBytes/examdash-cli/internal/dataset"

// Report summarizes what Clean removed. It is built once and not modified.
type Report struct {
	// NullRowsRemoved counts rows whose every value was missing.
	NullRowsRemoved int `json:"null_rows_removed"`
	// DuplicatesRemoved counts rows dropped because an identical earlier row exists.
	DuplicatesRemoved int `json:"duplicates_removed"`
	// DuplicateGroups counts distinct rows that occurred more than once.
	DuplicateGroups int `json:"duplicate_groups"`
	// Duplicates lists every row belonging to a duplicate group, first
	// occurrences included, in source order.
	Duplicates []dataset.Row `json:"duplicates,omitempty"`
}

// Clean drops all-missing rows, then collapses rows identical across all
// columns to their first occurrence. The input table is not modified.
func Clean(t *dataset.Table) (*dataset.Table, Report) {
	var rep Report
	if t == nil {
		return nil, rep
	}

	// Null removal must precede duplicate detection so empty rows are never
	// reported as duplicates of each other.
	nonNull := make([]dataset.Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		if r.AllMissing() {
			rep.NullRowsRemoved++
			continue
		}
		nonNull = append(nonNull, r)
	}

	keys := make([]string, len(nonNull))
	counts := make(map[string]int, len(nonNull))
	for i, r := range nonNull {
		k := r.Key()
		keys[i] = k
		counts[k]++
	}

	seen := make(map[string]struct{}, len(counts))
	out := make([]dataset.Row, 0, len(counts))
	for i, r := range nonNull {
		k := keys[i]
		if counts[k] > 1 {
			rep.Duplicates = append(rep.Duplicates, r)
		}
		if _, dup := seen[k]; dup {
			rep.DuplicatesRemoved++
			continue
		}
		seen[k] = struct{}{}
		if counts[k] > 1 {
			rep.DuplicateGroups++
		}
		out = append(out, r)
	}
	return t.WithRows(out), rep
}

// RowsRemoved returns the total number of rows Clean dropped.
func (r Report) RowsRemoved() int { return r.NullRowsRemoved + r.DuplicatesRemoved }
