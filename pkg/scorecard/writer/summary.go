package writer

import (
	"fmt"
	"strings"

	"github.com/ukaji3/scorecard-go/pkg/scorecard/models"
	"github.com/xuri/excelize/v2"
)

// Summary sheet layout: metrics in A:B, health distribution in D:E, chart at G.
const (
	metricsRow      = 5
	distributionCol = 4
	chartCell       = "G5"
)

type metric struct {
	name  string
	value interface{}
	style int
}

func writeSummary(f *excelize.File, sheet string, s models.Summary, st styles) error {
	if err := f.SetCellStr(sheet, "A1", "Program Scorecard Summary"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", st.title); err != nil {
		return err
	}
	header := [][]interface{}{
		{"Reporting as of", s.AsOf},
		{"Source", s.SourceName},
	}
	for i, row := range header {
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}

	metrics := []metric{
		{"Active initiatives", s.ActiveInitiatives, 0},
		{"At risk", s.AtRiskCount, 0},
		{"Watch", s.WatchCount, 0},
		{"On hold", s.HoldCount, 0},
		{"Avg progress (%)", optional(s.AvgProgress), st.decimal},
		{"Budget total", s.BudgetTotal, st.currency},
		{"Actual spend", s.ActualTotal, st.currency},
		{"Budget burn", optional(s.BudgetBurn), st.percent},
		{"Overdue milestones", s.OverdueCount, 0},
		{"Upcoming milestones", s.UpcomingCount, 0},
		{"Critical risks", s.CriticalRisks, 0},
	}
	if err := setRow(f, sheet, 1, metricsRow, []interface{}{"Metric", "Value"}, st.header); err != nil {
		return err
	}
	for i, m := range metrics {
		row := metricsRow + 1 + i
		if err := f.SetCellStr(sheet, fmt.Sprintf("A%d", row), m.name); err != nil {
			return err
		}
		if m.value == nil {
			continue
		}
		cell := fmt.Sprintf("B%d", row)
		if err := f.SetCellValue(sheet, cell, m.value); err != nil {
			return err
		}
		if m.style != 0 {
			if err := f.SetCellStyle(sheet, cell, cell, m.style); err != nil {
				return err
			}
		}
	}

	if err := setRow(f, sheet, distributionCol, metricsRow, []interface{}{"Health Category", "Count"}, st.header); err != nil {
		return err
	}
	for i, lc := range s.HealthDistribution {
		row := metricsRow + 1 + i
		if err := setRow(f, sheet, distributionCol, row, []interface{}{string(lc.Label), lc.Count}, 0); err != nil {
			return err
		}
		if id, ok := st.status[lc.Label]; ok {
			cell, _ := excelize.CoordinatesToCellName(distributionCol, row)
			if err := f.SetCellStyle(sheet, cell, cell, id); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 22); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "D", "D", 18); err != nil {
		return err
	}

	if len(s.HealthDistribution) == 0 {
		return nil
	}
	if err := f.AddChart(sheet, chartCell, healthChart(sheet, s.HealthDistribution)); err != nil {
		return fmt.Errorf("failed to add health chart: %w", err)
	}
	return nil
}

// healthChart plots one bar series per status so each bar carries its status colour.
func healthChart(sheet string, dist []models.LabelCount) *excelize.Chart {
	labelCol, _ := excelize.ColumnNumberToName(distributionCol)
	countCol, _ := excelize.ColumnNumberToName(distributionCol + 1)
	ref := func(col string, row int) string {
		return fmt.Sprintf("'%s'!$%s$%d", strings.ReplaceAll(sheet, "'", "''"), col, row)
	}

	series := make([]excelize.ChartSeries, 0, len(dist))
	for i, lc := range dist {
		row := metricsRow + 1 + i
		series = append(series, excelize.ChartSeries{
			Name:       ref(labelCol, row),
			Categories: ref(countCol, metricsRow),
			Values:     ref(countCol, row),
			Fill: excelize.Fill{
				Type:    "pattern",
				Color:   []string{strings.TrimPrefix(lc.Color, "#")},
				Pattern: 1,
			},
		})
	}

	return &excelize.Chart{
		Type:   excelize.Bar,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: "Health distribution"}},
		Legend: excelize.ChartLegend{Position: "bottom"},
		PlotArea: excelize.ChartPlotArea{
			ShowVal: true,
		},
		Dimension: excelize.ChartDimension{Width: 480, Height: 320},
	}
}

// setRow writes values left to right from (col, row) and applies style when non-zero.
func setRow(f *excelize.File, sheet string, col, row int, values []interface{}, style int) error {
	start, _ := excelize.CoordinatesToCellName(col, row)
	if err := f.SetSheetRow(sheet, start, &values); err != nil {
		return err
	}
	if style == 0 {
		return nil
	}
	end, _ := excelize.CoordinatesToCellName(col+len(values)-1, row)
	return f.SetCellStyle(sheet, start, end, style)
}

func optional(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
