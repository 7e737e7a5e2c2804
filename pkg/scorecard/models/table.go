// Package models defines data structures for scorecard tables and reports.
package models

// Row maps a column name to a scalar cell value.
// Values are string, int64, float64, time.Time, bool, or nil for an absent cell.
type Row map[string]interface{}

// Table represents a named sheet of rows with a display column order.
type Table struct {
	// Name is the sheet name the table was read from or will be written to.
	Name string `json:"name"`
	// Columns is the display order of column names.
	Columns []string `json:"columns"`
	// Rows contains the table rows; every row is keyed by Columns.
	Rows []Row `json:"rows"`
}

// NewTable creates an empty table with the given column order.
func NewTable(name string, columns []string) Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return Table{Name: name, Columns: cols, Rows: []Row{}}
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether name is one of the table's columns.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Values returns the cells of one column in row order.
func (t Table) Values(column string) []interface{} {
	out := make([]interface{}, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[column]
	}
	return out
}

// Clone returns a copy whose rows can be modified without touching t.
func (t Table) Clone() Table {
	out := Table{Name: t.Name, Columns: make([]string, len(t.Columns)), Rows: make([]Row, len(t.Rows))}
	copy(out.Columns, t.Columns)
	for i, row := range t.Rows {
		r := make(Row, len(row))
		for k, v := range row {
			r[k] = v
		}
		out.Rows[i] = r
	}
	return out
}

// WithColumn returns a copy of t with column set from fn for every row.
// The column is appended to the display order when not already present.
func (t Table) WithColumn(name string, fn func(Row) interface{}) Table {
	out := t.Clone()
	if !out.HasColumn(name) {
		out.Columns = append(out.Columns, name)
	}
	for i, row := range t.Rows {
		out.Rows[i][name] = fn(row)
	}
	return out
}

// Filter returns a copy of t holding only rows for which keep returns true.
func (t Table) Filter(keep func(Row) bool) Table {
	out := NewTable(t.Name, t.Columns)
	for _, row := range t.Clone().Rows {
		if keep(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}
