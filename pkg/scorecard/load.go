package scorecard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ukaji3/scorecard-go/pkg/scorecard/models"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/parser"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/schema"
	"github.com/xuri/excelize/v2"
)

var canonicalSheets = []string{models.SheetPortfolio, models.SheetMilestones, models.SheetRisks}

// LoadFile loads a scorecard workbook from disk.
// The returned warnings describe sheets that were missing or unreadable.
func LoadFile(path string, opts Options) (models.Scorecard, []*SheetError, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.Scorecard{}, nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return models.Scorecard{}, nil, err
	}
	defer file.Close()

	return Load(file, filepath.Base(path), opts)
}

// Load reads a workbook and normalizes its canonical sheets.
//
// Only a stream that is not an xlsx workbook fails. A missing canonical sheet
// becomes an empty table and an unreadable sheet is skipped; both are
// reported as warnings.
func Load(r io.Reader, sourceName string, opts Options) (models.Scorecard, []*SheetError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return models.Scorecard{}, nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	tables, warnings := readSheets(f)
	s, missing := FromTables(tables, sourceName, opts)
	warnings = append(warnings, missing...)
	for _, w := range warnings {
		s.Warnings = append(s.Warnings, w.Error())
	}
	return s, warnings, nil
}

// readSheets reads every worksheet in workbook order.
func readSheets(f *excelize.File) ([]models.Table, []*SheetError) {
	var (
		tables   []models.Table
		warnings []*SheetError
	)
	areas := parser.PrintAreas(f)

	for _, name := range f.GetSheetList() {
		var area *parser.Region
		if a := areas[name]; len(a) > 0 {
			area = &a[0]
		}
		t, err := parser.ReadSheet(f, name, area)
		if err != nil {
			warnings = append(warnings, NewSheetError(name, "cells", fmt.Errorf("%w: %v", ErrSheetUnreadable, err)))
			continue
		}
		tables = append(tables, t)
	}
	return tables, warnings
}

// FromTables builds a scorecard from already-parsed sheets.
//
// Sheets named exactly Portfolio, Milestones or Risks are normalized onto
// their schema; the first one of each name is used. Any other sheet is kept in
// Extras untouched. A missing canonical sheet becomes an empty table with the
// schema's columns and a warning.
func FromTables(tables []models.Table, sourceName string, opts Options) (models.Scorecard, []*SheetError) {
	s := models.Scorecard{SourceName: sourceName}
	found := make(map[string]models.Table, len(canonicalSheets))

	for _, t := range tables {
		if _, ok := schema.ForSheet(t.Name); ok {
			if _, dup := found[t.Name]; !dup {
				found[t.Name] = t
			}
			continue
		}
		s.Extras = append(s.Extras, t)
	}

	var warnings []*SheetError
	for _, name := range canonicalSheets {
		sch, _ := opts.Schema(name)
		var table models.Table
		if t, ok := found[name]; ok {
			table = schema.Normalize(t, sch)
		} else {
			table = schema.Empty(name, sch)
			warnings = append(warnings, NewSheetError(name, "load", ErrSheetMissing))
		}
		switch name {
		case models.SheetPortfolio:
			s.Portfolio = table
		case models.SheetMilestones:
			s.Milestones = table
		case models.SheetRisks:
			s.Risks = table
		}
	}
	return s, warnings
}
