package scorecard

import (
	"testing"

	"github.com/ukaji3/scorecard-go/pkg/scorecard/enrich"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/models"
)

func TestAnalyzeMilestonePlan(t *testing.T) {
	tables := []models.Table{
		{Name: "Portfolio", Columns: []string{"Initiative", "Health"}, Rows: []models.Row{{"Initiative": "Beta", "Health": "Red"}}},
		{
			Name:    "Milestones",
			Columns: []string{"Initiative", "Milestone", "Target Date", "Baseline Date", "Status"},
			Rows: []models.Row{{
				"Initiative": "Beta", "Milestone": "Cut-over", "Target Date": asOf.AddDate(0, 0, -3),
				"Baseline Date": asOf.AddDate(0, 0, -20), "Status": "Red",
			}},
		},
	}
	opts := DefaultOptions()
	opts.AsOf = asOf
	s, _ := FromTables(tables, "memory", opts)

	filtered, sum := Analyze(s, opts)

	if sum.OverdueCount != 1 {
		t.Fatalf("OverdueCount = %d, expected 1: %+v", sum.OverdueCount, sum.Overdue)
	}
	if o := sum.Overdue[0]; o.Milestone != "Cut-over" || o.StatusCategory != models.StatusAtRisk || o.DaysFromToday != -3 {
		t.Errorf("overdue = %+v", o)
	}
	if got := filtered.Milestones.Rows[0][enrich.DaysFromToday]; got != int64(-3) {
		t.Errorf("%s = %v (%T)", enrich.DaysFromToday, got, got)
	}
}

func TestAnalyzeKeepsPassthroughSheets(t *testing.T) {
	tables := []models.Table{
		{Name: "Portfolio", Columns: []string{"Initiative", "Health"}, Rows: []models.Row{{"Initiative": "Beta", "Health": "Red"}}},
		{Name: "Notes", Columns: []string{"Issue", "Status"}, Rows: []models.Row{{"Issue": "Licence", "Status": "Red"}}},
	}
	opts := DefaultOptions()
	opts.AsOf = asOf
	s, _ := FromTables(tables, "memory", opts)

	filtered, sum := Analyze(s, opts)

	all := filtered.AllTables()
	if len(all) != 4 || all[3].Name != "Notes" || all[3].Len() != 1 {
		t.Errorf("tables = %+v", all)
	}
	if got := sum.Status.ByTable["Notes"][models.StatusAtRisk]; got != 1 {
		t.Errorf("Notes status tally = %v", sum.Status.ByTable["Notes"])
	}
}
