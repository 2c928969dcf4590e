package dataset

import "strings"

// Row holds one value per table column, by position.
type Row []Value

// AllMissing reports whether every cell of the row is missing.
func (r Row) AllMissing() bool {
	for _, v := range r {
		if !v.IsMissing() {
			return false
		}
	}
	return true
}

// Key returns a canonical encoding of the whole row; equal rows have equal keys.
func (r Row) Key() string {
	var b strings.Builder
	for i, v := range r {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		b.WriteString(v.Key())
	}
	return b.String()
}

// Table is an ordered, immutable set of rows over a fixed column list.
// Derived tables share Row storage with their source; callers must not
// modify rows obtained from a Table.
type Table struct {
	Name    string
	Columns []Column
	Rows    []Row
	Schema  Schema
	// Notes collects recoverable load conditions, such as absent optional columns.
	Notes []string

	index map[string]int
}

// New builds a table over columns and rows.
func New(name string, columns []Column, rows []Row, schema Schema) *Table {
	t := &Table{Name: name, Columns: columns, Rows: rows, Schema: schema}
	t.buildIndex()
	return t
}

func (t *Table) buildIndex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		key := strings.ToLower(c.Name)
		if _, dup := t.index[key]; !dup {
			t.index[key] = i
		}
	}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Index returns the position of the named column (case-insensitive).
func (t *Table) Index(name string) (int, bool) {
	if t == nil {
		return -1, false
	}
	key := strings.ToLower(strings.TrimSpace(name))
	if t.index == nil {
		for i, c := range t.Columns {
			if strings.ToLower(c.Name) == key {
				return i, true
			}
		}
		return -1, false
	}
	i, ok := t.index[key]
	return i, ok
}

// Has reports whether the table has the named column.
func (t *Table) Has(name string) bool {
	_, ok := t.Index(name)
	return ok
}

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// WithRows returns a table with the same columns, schema and notes over rows.
// The receiver is not modified.
func (t *Table) WithRows(rows []Row) *Table {
	return &Table{
		Name:    t.Name,
		Columns: t.Columns,
		Rows:    rows,
		Schema:  t.Schema,
		Notes:   t.Notes,
		index:   t.index,
	}
}

// Values returns the named column's values in row order, missing values included.
func (t *Table) Values(name string) []Value {
	idx, ok := t.Index(name)
	if !ok {
		return nil
	}
	out := make([]Value, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r[idx]
	}
	return out
}

// Floats returns the non-missing numbers of the named column in row order.
func (t *Table) Floats(name string) []float64 {
	idx, ok := t.Index(name)
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(t.Rows))
	for _, r := range t.Rows {
		if v := r[idx]; v.Kind == KindNumber {
			out = append(out, v.Num)
		}
	}
	return out
}

// NumericColumns returns the schema's numeric columns present in the table, in schema order.
func (t *Table) NumericColumns() []string {
	var out []string
	for _, n := range t.Schema.Numeric {
		if idx, ok := t.Index(n); ok {
			out = append(out, t.Columns[idx].Name)
		}
	}
	return out
}
