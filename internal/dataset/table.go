package dataset

import (
	"fmt"
)

// Table is a rectangular, column-oriented in-memory dataset. Row identity is
// positional; all columns have the same length.
type Table struct {
	order   []string
	columns map[string][]string
	rows    int
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{columns: make(map[string][]string)}
}

// AddColumn appends a named column. The first column fixes the row count;
// later columns must match it. Re-adding an existing name is an error.
func (t *Table) AddColumn(name string, values []string) error {
	if _, exists := t.columns[name]; exists {
		return fmt.Errorf("column %q already present", name)
	}
	if len(t.order) > 0 && len(values) != t.rows {
		return fmt.Errorf("column %q has %d rows, table has %d", name, len(values), t.rows)
	}
	if len(t.order) == 0 {
		t.rows = len(values)
	}
	t.order = append(t.order, name)
	t.columns[name] = values
	return nil
}

// Column returns the named column values, read-only by convention.
func (t *Table) Column(name string) ([]string, bool) {
	values, ok := t.columns[name]
	return values, ok
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Columns lists the column names in insertion order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Rows reports the row count.
func (t *Table) Rows() int { return t.rows }

// Cell returns the value at (row, column), or the empty string when the
// column is missing.
func (t *Table) Cell(row int, column string) string {
	values, ok := t.columns[column]
	if !ok || row < 0 || row >= len(values) {
		return ""
	}
	return values[row]
}

// Append concatenates another table below this one. The column set becomes
// the union in first-seen order; values missing on either side are filled
// with the empty string.
func (t *Table) Append(other *Table) {
	oldRows := t.rows
	for _, name := range other.order {
		if !t.HasColumn(name) {
			filler := make([]string, oldRows)
			t.order = append(t.order, name)
			t.columns[name] = filler
		}
	}
	for _, name := range t.order {
		appended, ok := other.columns[name]
		if !ok {
			appended = make([]string, other.rows)
		}
		t.columns[name] = append(t.columns[name], appended...)
	}
	t.rows = oldRows + other.rows
}

// Merge adds the columns of another table side by side, skipping names this
// table already has. Shorter columns are padded with empty strings so the
// table stays rectangular.
func (t *Table) Merge(other *Table) {
	for _, name := range other.order {
		if t.HasColumn(name) {
			continue
		}
		values := make([]string, len(other.columns[name]))
		copy(values, other.columns[name])
		if len(values) > t.rows {
			t.grow(len(values))
		}
		for len(values) < t.rows {
			values = append(values, "")
		}
		t.order = append(t.order, name)
		t.columns[name] = values
		if t.rows == 0 {
			t.rows = len(values)
		}
	}
}

// grow pads every existing column up to the new row count.
func (t *Table) grow(rows int) {
	for name, values := range t.columns {
		for len(values) < rows {
			values = append(values, "")
		}
		t.columns[name] = values
	}
	t.rows = rows
}
