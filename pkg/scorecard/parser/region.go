package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Region is a rectangular cell range with 1-based inclusive bounds.
type Region struct {
	R1 int `json:"r1"`
	C1 int `json:"c1"`
	R2 int `json:"r2"`
	C2 int `json:"c2"`
}

// String returns the range in A1 notation.
func (r Region) String() string {
	start, _ := excelize.CoordinatesToCellName(r.C1, r.R1)
	end, _ := excelize.CoordinatesToCellName(r.C2, r.R2)
	return fmt.Sprintf("%s:%s", start, end)
}

// DataRegion returns the bounding box of non-empty cells.
// ok is false when every cell is empty.
func DataRegion(rows [][]string) (Region, bool) {
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return Region{}, false
	}
	return Region{R1: minRow + 1, C1: minCol + 1, R2: maxRow + 1, C2: maxCol + 1}, true
}

// findDataBounds finds the 0-based bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			if minRow < 0 {
				minRow = rowIdx
			}
			maxRow = rowIdx
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}
	return
}

// PrintAreas returns the print areas defined in the workbook, keyed by sheet name.
func PrintAreas(f *excelize.File) map[string][]Region {
	result := make(map[string][]Region)
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, "_xlnm.Print_Area") {
			continue
		}
		sheet, areas := parsePrintAreaReference(dn.RefersTo)
		if sheet == "" && dn.Scope != "" && !strings.EqualFold(dn.Scope, "Workbook") {
			sheet = dn.Scope
		}
		if sheet != "" && len(areas) > 0 {
			result[sheet] = append(result[sheet], areas...)
		}
	}
	return result
}

// parsePrintAreaReference splits 'Sheet Name'!$A$1:$D$10,Sheet!$F$1:$G$4 into
// the sheet name and its ranges.
func parsePrintAreaReference(ref string) (string, []Region) {
	var (
		sheetName string
		areas     []Region
	)
	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		idx := strings.LastIndex(part, "!")
		if idx < 0 {
			continue
		}
		sheet := strings.Trim(part[:idx], "'")
		sheet = strings.ReplaceAll(sheet, "''", "'")
		if sheetName == "" {
			sheetName = sheet
		}
		if area, ok := ParseRange(part[idx+1:]); ok {
			areas = append(areas, area)
		}
	}
	return sheetName, areas
}

// ParseRange parses an A1 range such as $A$1:$D$10. A single cell yields a
// one-cell region.
func ParseRange(ref string) (Region, bool) {
	ref = strings.ReplaceAll(strings.TrimSpace(ref), "$", "")
	parts := strings.Split(ref, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return Region{}, false
	}

	c1, r1, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return Region{}, false
	}
	c2, r2, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return Region{}, false
	}
	if r2 < r1 {
		r1, r2 = r2, r1
	}
	if c2 < c1 {
		c1, c2 = c2, c1
	}
	return Region{R1: r1, C1: c1, R2: r2, C2: c2}, true
}
