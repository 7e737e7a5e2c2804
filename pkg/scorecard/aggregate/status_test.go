package aggregate

import (
	"reflect"
	"testing"

	"github.com/ukaji3/scorecard-go/pkg/scorecard/models"
)

func TestStatusCounts(t *testing.T) {
	portfolio := models.Table{
		Name:    "Portfolio",
		Columns: []string{"Initiative", "RAG"},
		Rows: []models.Row{
			{"Initiative": "a", "RAG": "Green"},
			{"Initiative": "b", "RAG": "red"},
			{"Initiative": "c", "RAG": nil},
			{"Initiative": "d", "RAG": ""},
			{"Initiative": "e", "RAG": "On hold"},
		},
	}
	risks := models.Table{
		Name:    "Risks",
		Columns: []string{"Risk", "Status"},
		Rows: []models.Row{
			{"Risk": "r1", "Status": "Open"},
			{"Risk": "r2", "Status": "Closed"},
		},
	}
	notes := models.Table{Name: "Notes", Columns: []string{"Text"}, Rows: []models.Row{{"Text": "x"}}}

	report := StatusCounts([]models.Table{portfolio, notes, risks})

	wantPortfolio := models.StatusTally{
		models.StatusOnTrack: 1,
		models.StatusAtRisk:  1,
		models.StatusUnknown: 2,
		models.StatusOnHold:  1,
	}
	if !reflect.DeepEqual(report.ByTable["Portfolio"], wantPortfolio) {
		t.Errorf("Portfolio tally = %v, expected %v", report.ByTable["Portfolio"], wantPortfolio)
	}
	if report.StatusColumns["Portfolio"] != "RAG" || report.StatusColumns["Risks"] != "Status" {
		t.Errorf("status columns = %v", report.StatusColumns)
	}
	if !reflect.DeepEqual(report.MissingStatus, []string{"Notes"}) {
		t.Errorf("MissingStatus = %v, expected [Notes]", report.MissingStatus)
	}
	if report.Overall[models.StatusUnknown] != 3 || report.Overall[models.StatusComplete] != 1 {
		t.Errorf("Overall = %v", report.Overall)
	}
	if report.Overall.Total() != 7 {
		t.Errorf("Overall total = %d, expected 7", report.Overall.Total())
	}
}

func TestStatusCountsConservation(t *testing.T) {
	tables := []models.Table{
		{Name: "a", Columns: []string{"Status"}, Rows: []models.Row{{"Status": "x"}, {}, {"Status": int64(4)}}},
		{Name: "b", Columns: []string{"rag"}, Rows: []models.Row{}},
		{Name: "c", Columns: []string{"Overall Status", "Status"}, Rows: []models.Row{{"Overall Status": "Done"}}},
	}
	report := StatusCounts(tables)
	for _, tbl := range tables {
		tally, ok := report.ByTable[tbl.Name]
		if !ok {
			t.Fatalf("table %s missing from report", tbl.Name)
		}
		if tally.Total() != tbl.Len() {
			t.Errorf("table %s: tally sum %d, expected row count %d", tbl.Name, tally.Total(), tbl.Len())
		}
	}
	if report.StatusColumns["c"] != "Overall Status" {
		t.Errorf("expected first status-like column, got %q", report.StatusColumns["c"])
	}
}

func TestDistribution(t *testing.T) {
	d := Distribution(models.StatusTally{models.StatusWatch: 2, models.StatusComplete: 1})
	if len(d) != len(models.StatusOrder) {
		t.Fatalf("expected %d entries, got %d", len(models.StatusOrder), len(d))
	}
	if d[0].Label != models.StatusAtRisk || d[0].Count != 0 || d[0].Color != "#D64541" {
		t.Errorf("first entry = %+v", d[0])
	}
	if d[1].Label != models.StatusWatch || d[1].Count != 2 {
		t.Errorf("second entry = %+v", d[1])
	}
}
