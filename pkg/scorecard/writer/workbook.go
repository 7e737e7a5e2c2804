// Package writer serializes scorecard tables to xlsx and csv.
package writer

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ukaji3/scorecard-go/pkg/scorecard/models"
	"github.com/xuri/excelize/v2"
)

// MaxSheetNameLength is the longest sheet name Excel accepts.
const MaxSheetNameLength = 31

// DateFormat is the number format applied to date cells.
const DateFormat = "yyyy-mm-dd"

// SummarySheet is the name of the optional summary sheet.
const SummarySheet = "Summary"

const defaultSheet = "Sheet1"

// Write writes one sheet per table in order. When summary is non-nil a
// Summary sheet with the headline metrics and health chart is added first.
func Write(w io.Writer, tables []models.Table, summary *models.Summary) error {
	f, err := Workbook(tables, summary)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Workbook builds the in-memory workbook written by Write.
func Workbook(tables []models.Table, summary *models.Summary) (*excelize.File, error) {
	f := excelize.NewFile()
	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	names := newSheetNames()
	first := true
	addSheet := func(want string) (string, error) {
		name := names.next(want)
		if first {
			first = false
			return name, f.SetSheetName(defaultSheet, name)
		}
		_, err := f.NewSheet(name)
		return name, err
	}

	if summary != nil {
		name, err := addSheet(SummarySheet)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to add sheet %q: %w", SummarySheet, err)
		}
		if err := writeSummary(f, name, *summary, st); err != nil {
			f.Close()
			return nil, err
		}
	}

	for _, t := range tables {
		name, err := addSheet(t.Name)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to add sheet %q: %w", t.Name, err)
		}
		if err := writeTable(f, name, t, st); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write sheet %q: %w", name, err)
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// writeTable writes the header row and the rows below it. Nil cells stay blank.
func writeTable(f *excelize.File, sheet string, t models.Table, st styles) error {
	for c, col := range t.Columns {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellStr(sheet, cell, col); err != nil {
			return err
		}
	}
	if len(t.Columns) > 0 {
		end, _ := excelize.CoordinatesToCellName(len(t.Columns), 1)
		if err := f.SetCellStyle(sheet, "A1", end, st.header); err != nil {
			return err
		}
	}

	for r, row := range t.Rows {
		for c, col := range t.Columns {
			v := row[col]
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
			if _, isDate := v.(time.Time); isDate {
				if err := f.SetCellStyle(sheet, cell, cell, st.date); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// SheetName makes name acceptable to Excel: forbidden characters are
// replaced, surrounding apostrophes trimmed and the result cut to 31 characters.
func SheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, name)
	name = strings.Trim(strings.TrimSpace(name), "'")
	if name == "" {
		name = defaultSheet
	}
	return truncate(name, MaxSheetNameLength)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// sheetNames hands out unique sheet names; Excel compares them case-insensitively.
type sheetNames map[string]bool

func newSheetNames() sheetNames {
	return make(sheetNames)
}

func (s sheetNames) next(want string) string {
	name := SheetName(want)
	for n := 2; s[strings.ToLower(name)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		name = truncate(SheetName(want), MaxSheetNameLength-len(suffix)) + suffix
	}
	s[strings.ToLower(name)] = true
	return name
}

// styles holds the style ids shared by every sheet.
type styles struct {
	header   int
	date     int
	title    int
	currency int
	percent  int
	decimal  int
	status   map[models.Label]int
}

func newStyles(f *excelize.File) (styles, error) {
	var (
		st  = styles{status: make(map[models.Label]int)}
		err error
	)
	dateFmt := DateFormat
	currencyFmt := "$#,##0"
	decimalFmt := "0.0"

	if st.header, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return st, err
	}
	if st.date, err = f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt}); err != nil {
		return st, err
	}
	if st.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); err != nil {
		return st, err
	}
	if st.currency, err = f.NewStyle(&excelize.Style{CustomNumFmt: &currencyFmt}); err != nil {
		return st, err
	}
	if st.percent, err = f.NewStyle(&excelize.Style{NumFmt: 9}); err != nil {
		return st, err
	}
	if st.decimal, err = f.NewStyle(&excelize.Style{CustomNumFmt: &decimalFmt}); err != nil {
		return st, err
	}
	for _, label := range models.StatusOrder {
		id, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
			Fill: excelize.Fill{Type: "pattern", Color: []string{models.StatusColors[label]}, Pattern: 1},
		})
		if err != nil {
			return st, err
		}
		st.status[label] = id
	}
	return st, nil
}
