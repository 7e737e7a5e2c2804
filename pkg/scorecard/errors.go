package scorecard

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input is not a readable xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrSheetMissing indicates a canonical sheet is absent from the workbook.
var ErrSheetMissing = errors.New("sheet missing")

// ErrSheetUnreadable indicates a sheet exists but its cells could not be read.
var ErrSheetUnreadable = errors.New("sheet unreadable")

// SheetError is a non-fatal problem with one sheet of a workbook.
type SheetError struct {
	SheetName string
	Component string // "load", "cells", "print_areas"
	Err       error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// NewSheetError creates a new SheetError.
func NewSheetError(sheetName, component string, err error) *SheetError {
	return &SheetError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
