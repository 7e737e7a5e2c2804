package writer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/ukaji3/scorecard-go/pkg/scorecard/models"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/values"
)

// ErrNoTables indicates there is nothing to export.
var ErrNoTables = errors.New("no tables to export")

// utf8BOM prefixes every csv export.
const utf8BOM = "\ufeff"

// Widest returns the table with the most columns, the first one on ties.
func Widest(tables []models.Table) (models.Table, bool) {
	if len(tables) == 0 {
		return models.Table{}, false
	}
	best := tables[0]
	for _, t := range tables[1:] {
		if len(t.Columns) > len(best.Columns) {
			best = t
		}
	}
	return best, true
}

// WriteCSV writes the widest table as UTF-8 CSV with a byte order mark.
// Dates are written as yyyy-mm-dd and nil cells as empty fields.
func WriteCSV(w io.Writer, tables []models.Table) error {
	t, ok := Widest(tables)
	if !ok {
		return ErrNoTables
	}
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			record[i], _ = values.Text(row[col])
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
