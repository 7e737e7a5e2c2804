// Package parser reads worksheet cells into typed tables.
package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/scorecard-go/pkg/scorecard/models"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/values"
	"github.com/xuri/excelize/v2"
)

// ReadSheet reads one worksheet as a table.
//
// The read region is area when non-nil, otherwise the bounding box of
// non-empty cells. The first row of the region is the header: blank headers
// become "Unnamed: i" and repeated headers get a ".n" suffix. Rows with no
// value are skipped. Numeric cells formatted as dates come back as time.Time.
func ReadSheet(f *excelize.File, sheet string, area *Region) (models.Table, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return models.Table{}, err
	}

	region, ok := DataRegion(rows)
	if area != nil {
		region, ok = *area, true
	}
	if !ok {
		return models.NewTable(sheet, []string{}), nil
	}

	columns := headerNames(cellsIn(rows, region.R1, region))
	table := models.NewTable(sheet, columns)
	dates := newDateStyles(f)

	for r := region.R1 + 1; r <= region.R2 && r <= len(rows); r++ {
		raw := cellsIn(rows, r, region)
		row := make(models.Row, len(columns))
		hasData := false
		for i, text := range raw {
			v := values.ParseCell(text)
			if v != nil {
				hasData = true
				if isNumber(v) {
					cell, _ := excelize.CoordinatesToCellName(region.C1+i, r)
					if dates.isDate(sheet, cell) {
						if d, ok := values.Date(v); ok {
							v = d
						}
					}
				}
			}
			row[columns[i]] = v
		}
		if hasData {
			table.Rows = append(table.Rows, row)
		}
	}
	return table, nil
}

// cellsIn returns the cells of 1-based row r that fall inside region,
// padding short rows with empty strings.
func cellsIn(rows [][]string, r int, region Region) []string {
	width := region.C2 - region.C1 + 1
	out := make([]string, width)
	if r < 1 || r > len(rows) {
		return out
	}
	row := rows[r-1]
	for i := 0; i < width; i++ {
		if c := region.C1 - 1 + i; c < len(row) {
			out[i] = row[c]
		}
	}
	return out
}

// headerNames turns raw header cells into unique column names.
func headerNames(raw []string) []string {
	names := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, h := range raw {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n := seen[name]; n > 0 {
			base := name
			for ; seen[fmt.Sprintf("%s.%d", base, n)] > 0; n++ {
			}
			name = fmt.Sprintf("%s.%d", base, n)
			seen[base]++
		}
		seen[name]++
		names[i] = name
	}
	return names
}

func isNumber(v interface{}) bool {
	switch v.(type) {
	case int64, float64:
		return true
	}
	return false
}

// dateStyles caches whether a style index carries a date number format.
type dateStyles struct {
	f     *excelize.File
	cache map[int]bool
}

func newDateStyles(f *excelize.File) *dateStyles {
	return &dateStyles{f: f, cache: make(map[int]bool)}
}

func (d *dateStyles) isDate(sheet, cell string) bool {
	idx, err := d.f.GetCellStyle(sheet, cell)
	if err != nil || idx == 0 {
		return false
	}
	if v, ok := d.cache[idx]; ok {
		return v
	}
	st, err := d.f.GetStyle(idx)
	v := err == nil && st != nil && isDateFormat(st.NumFmt, st.CustomNumFmt)
	d.cache[idx] = v
	return v
}

// isDateFormat reports whether a built-in or custom number format renders dates.
func isDateFormat(id int, custom *string) bool {
	if custom != nil && *custom != "" {
		code := strings.ToLower(stripLiterals(*custom))
		return strings.ContainsAny(code, "yd") || strings.Contains(code, "mmm")
	}
	return (id >= 14 && id <= 17) || id == 22 || (id >= 27 && id <= 36) || (id >= 50 && id <= 58)
}

// stripLiterals removes quoted text and bracketed sections such as colours or locales.
func stripLiterals(code string) string {
	var b strings.Builder
	inQuote, inBracket := false, false
	for _, r := range code {
		switch {
		case r == '"' && !inBracket:
			inQuote = !inQuote
		case r == '[' && !inQuote:
			inBracket = true
		case r == ']' && inBracket:
			inBracket = false
		case !inQuote && !inBracket:
			b.WriteRune(r)
		}
	}
	return b.String()
}
