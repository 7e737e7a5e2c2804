// Package values converts loosely typed cell values into text, numbers and dates.
// Every conversion is total: a value that cannot be converted reports ok=false.
package values

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// DateLayout is the layout used when dates are rendered as text.
const DateLayout = "2006-01-02"

// largest serial Excel can represent (9999-12-31)
const maxExcelSerial = 2958465

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"1-2-2006",
	"01-02-06",
	"1-2-06",
	"01/02/06",
	"1/2/06",
	"01/02/06 15:04",
	"1/2/06 15:04",
	"01/02/2006 15:04",
	"1/2/2006 15:04",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"02-Jan-2006",
	"2-Jan-06",
	"02-Jan-06",
}

// ParseCell converts raw cell text to the narrowest scalar.
// Returns int64 for integers, float64 for decimals, nil for blank text, or the trimmed string.
func ParseCell(s string) interface{} {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return s
}

// Text renders a cell value as a string.
// ok is false for absent values and values with no sensible text form.
func Text(v interface{}) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return "", false
		}
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(x), true
	case time.Time:
		if x.IsZero() {
			return "", false
		}
		return x.Format(DateLayout), true
	case fmt.Stringer:
		return x.String(), true
	default:
		return fmt.Sprint(x), true
	}
}

// String is Text with the empty string for absent values.
func String(v interface{}) string {
	s, _ := Text(v)
	return strings.TrimSpace(s)
}

// Float coerces a cell to a number.
// Strings may carry a currency sign, thousands separators or a trailing percent sign.
func Float(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return x, true
	case string:
		s := strings.TrimSpace(x)
		s = strings.TrimSuffix(s, "%")
		s = strings.TrimPrefix(s, "$")
		s = strings.ReplaceAll(s, ",", "")
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Date coerces a cell to a date at midnight UTC.
// Numbers are read as Excel serial dates; strings are tried against common layouts.
func Date(v interface{}) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return time.Time{}, false
		}
		return DateOnly(x), true
	case int64:
		return serialDate(float64(x))
	case int:
		return serialDate(float64(x))
	case float64:
		return serialDate(x)
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return DateOnly(parsed), true
			}
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return serialDate(f)
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// DateOnly truncates t to midnight UTC on its calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from ref to t.
func DaysBetween(ref, t time.Time) int {
	return int(DateOnly(t).Sub(DateOnly(ref)).Hours() / 24)
}

func serialDate(f float64) (time.Time, bool) {
	if math.IsNaN(f) || f <= 0 || f > maxExcelSerial {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(f, false)
	if err != nil {
		return time.Time{}, false
	}
	return DateOnly(t), true
}
