package scorecard

import (
	"testing"

	"github.com/ukaji3/scorecard-go/pkg/scorecard/enrich"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/models"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/sample"
)

func TestFilterApply(t *testing.T) {
	base := enrich.Scorecard(sample.Load(asOf), asOf)

	tests := []struct {
		name        string
		filter      Filter
		initiatives int
		milestones  int
		risks       int
	}{
		{"no filter", Filter{}, 5, 6, 4},
		{"workstream", Filter{Workstreams: []string{"data", " CRM "}}, 2, 2, 2},
		{"owner", Filter{Owners: []string{"J. Gomez"}}, 1, 1, 1},
		{"health", Filter{Health: []string{"Watch"}}, 2, 2, 2},
		{"no match", Filter{Owners: []string{"Nobody"}}, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(base)
			if got.Portfolio.Len() != tt.initiatives || got.Milestones.Len() != tt.milestones || got.Risks.Len() != tt.risks {
				t.Errorf("Apply = %d/%d/%d rows, expected %d/%d/%d",
					got.Portfolio.Len(), got.Milestones.Len(), got.Risks.Len(),
					tt.initiatives, tt.milestones, tt.risks)
			}
		})
	}

	if base.Portfolio.Len() != 5 {
		t.Error("Apply must not modify its input")
	}
}

func TestFilterComplete(t *testing.T) {
	s := models.Scorecard{
		Portfolio: models.Table{
			Name:    "Portfolio",
			Columns: []string{"Initiative", "Health"},
			Rows: []models.Row{
				{"Initiative": "Done", "Health": "Closed"},
				{"Initiative": "Live", "Health": "Green"},
			},
		},
		Milestones: models.Table{
			Name:    "Milestones",
			Columns: []string{"Initiative"},
			Rows:    []models.Row{{"Initiative": "Done"}, {"Initiative": "Live"}},
		},
	}

	if got := (Filter{}).Apply(s); got.Portfolio.Len() != 1 || got.Milestones.Rows[0]["Initiative"] != "Live" {
		t.Errorf("completed initiatives should be dropped: %+v", got.Portfolio.Rows)
	}
	if got := (Filter{IncludeComplete: true}).Apply(s); got.Portfolio.Len() != 2 || got.Milestones.Len() != 2 {
		t.Errorf("IncludeComplete should keep them: %+v", got.Portfolio.Rows)
	}
}

func TestOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.LookaheadDays != 45 || opts.TopRisks != 5 {
		t.Errorf("DefaultOptions = %+v", opts)
	}
	if today := opts.Today(); today.Hour() != 0 || today.IsZero() {
		t.Errorf("Today = %v", today)
	}

	if _, ok := opts.Schema("Notes"); ok {
		t.Error("Notes is not a canonical sheet")
	}
	opts.Synonyms = map[string]map[string][]string{"Risks": {"Owner": {"accountable"}}}
	s, ok := opts.Schema("Risks")
	if !ok {
		t.Fatal("Risks should have a schema")
	}
	owner := s.Columns[len(s.Columns)-1]
	if owner.Name != "Owner" || owner.Synonyms[len(owner.Synonyms)-1] != "accountable" {
		t.Errorf("configured synonym missing: %+v", owner)
	}
}
