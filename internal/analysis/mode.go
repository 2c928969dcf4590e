package analysis

import (
	"strings"

	"github.com/KaramelBytes/examdash-cli/internal/dataset"
)

// ModeStatus classifies a mode result.
type ModeStatus string

const (
	ModeNone       ModeStatus = "none"
	ModeSingle     ModeStatus = "single"
	ModeMultimodal ModeStatus = "multimodal"
)

// Mode is the most frequent value(s) of a column. Values holds one entry for
// ModeSingle, the tied values in first-encountered order for ModeMultimodal,
// and nothing for ModeNone.
type Mode struct {
	Column string          `json:"column"`
	Status ModeStatus      `json:"status"`
	Values []dataset.Value `json:"values,omitempty"`
	Count  int             `json:"count"`
}

// First returns the first-encountered modal value, or Missing for ModeNone.
func (m Mode) First() dataset.Value {
	if len(m.Values) == 0 {
		return dataset.Missing
	}
	return m.Values[0]
}

// String renders the mode for display.
func (m Mode) String() string {
	switch m.Status {
	case ModeSingle:
		return m.Values[0].String()
	case ModeMultimodal:
		parts := make([]string, len(m.Values))
		for i, v := range m.Values {
			parts[i] = v.String()
		}
		return "multimodal: " + strings.Join(parts, ", ")
	default:
		return "not found"
	}
}

// Modes computes the mode of each schema mode column present in t, in schema order.
func Modes(t *dataset.Table) []Mode {
	if t == nil {
		return nil
	}
	var out []Mode
	for _, c := range t.Schema.ModeColumns {
		idx, ok := t.Index(c)
		if !ok {
			continue
		}
		m := ModeOf(t.Values(c))
		m.Column = t.Columns[idx].Name
		out = append(out, m)
	}
	return out
}

// ModeOf counts the non-missing values, then keeps every value reaching the
// highest count in the order it was first encountered.
func ModeOf(vals []dataset.Value) Mode {
	type entry struct {
		v dataset.Value
		n int
	}
	var order []*entry
	byKey := map[string]*entry{}
	for _, v := range vals {
		if v.IsMissing() {
			continue
		}
		k := v.Key()
		e, ok := byKey[k]
		if !ok {
			e = &entry{v: v}
			byKey[k] = e
			order = append(order, e)
		}
		e.n++
	}
	if len(order) == 0 {
		return Mode{Status: ModeNone}
	}
	best := 0
	for _, e := range order {
		if e.n > best {
			best = e.n
		}
	}
	m := Mode{Count: best}
	for _, e := range order {
		if e.n == best {
			m.Values = append(m.Values, e.v)
		}
	}
	if len(m.Values) == 1 {
		m.Status = ModeSingle
	} else {
		m.Status = ModeMultimodal
	}
	return m
}
