package schema

import (
	"github.com/ukaji3/scorecard-go/pkg/scorecard/models"
)

// Normalize renames matching columns of t onto the schema and adds any missing
// canonical column as all-null. Canonical columns come first in schema order,
// followed by the remaining columns in their original order.
//
// When several input columns resolve to the same canonical name, a header
// spelled exactly like the canonical name wins, otherwise the left-most one;
// the others are kept under their original names.
// The input table is not modified.
func Normalize(t models.Table, s Schema) models.Table {
	lookup := s.lookup()

	rename := make(map[string]string, len(t.Columns))
	claimed := make(map[string]bool, len(s.Columns))
	// exact canonical headers claim their slot before synonyms do
	for _, col := range t.Columns {
		if canonical, ok := lookup[Key(col)]; ok && col == canonical && !claimed[canonical] {
			rename[col] = canonical
			claimed[canonical] = true
		}
	}
	for _, col := range t.Columns {
		if _, done := rename[col]; done {
			continue
		}
		if canonical, ok := lookup[Key(col)]; ok && !claimed[canonical] {
			rename[col] = canonical
			claimed[canonical] = true
		}
	}

	columns := s.Names()
	for _, col := range t.Columns {
		if _, renamed := rename[col]; renamed {
			continue
		}
		columns = append(columns, col)
	}

	out := models.Table{Name: t.Name, Columns: columns, Rows: make([]models.Row, len(t.Rows))}
	for i, row := range t.Rows {
		r := make(models.Row, len(columns))
		for _, c := range columns {
			r[c] = nil
		}
		for _, col := range t.Columns {
			v := row[col]
			if canonical, ok := rename[col]; ok {
				r[canonical] = v
			} else {
				r[col] = v
			}
		}
		out.Rows[i] = r
	}
	return out
}

// Empty returns a table with the schema's columns and no rows.
func Empty(name string, s Schema) models.Table {
	return models.NewTable(name, s.Names())
}
