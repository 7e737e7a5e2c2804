package schema

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ukaji3/scorecard-go/pkg/scorecard/models"
)

var allSchemas = []Schema{Portfolio, Milestones, Risks}

func TestNormalizeRenamesAndOrders(t *testing.T) {
	in := models.Table{
		Name:    "Portfolio",
		Columns: []string{"Comments", " Project Name ", "RAG", "PM", "Sponsor"},
		Rows: []models.Row{
			{"Comments": "x", " Project Name ": "Billing", "RAG": "Red", "PM": "S. Woods", "Sponsor": "CFO"},
		},
	}

	out := Normalize(in, Portfolio)

	wantCols := append(Portfolio.Names(), "Comments", "Sponsor")
	if !reflect.DeepEqual(out.Columns, wantCols) {
		t.Fatalf("columns = %v, expected %v", out.Columns, wantCols)
	}
	row := out.Rows[0]
	if row["Initiative"] != "Billing" {
		t.Errorf("Initiative = %v, expected Billing", row["Initiative"])
	}
	if row["Health"] != "Red" {
		t.Errorf("Health = %v, expected Red", row["Health"])
	}
	if row["Owner"] != "S. Woods" {
		t.Errorf("Owner = %v, expected S. Woods", row["Owner"])
	}
	if row["Budget"] != nil {
		t.Errorf("Budget = %v, expected nil for a missing column", row["Budget"])
	}
	if v, ok := row["Budget"]; !ok || v != nil {
		t.Errorf("Budget should be present and nil, got (%v, %v)", v, ok)
	}
	if row["Sponsor"] != "CFO" {
		t.Errorf("Sponsor = %v, expected CFO", row["Sponsor"])
	}

	// input untouched
	if in.Columns[1] != " Project Name " || in.Rows[0]["Initiative"] != nil {
		t.Errorf("Normalize modified its input: %v", in)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []models.Table{
		{Name: "a", Columns: []string{"RAG", "status", "project", "Notes", "extra"}, Rows: []models.Row{
			{"RAG": "Green", "status": "Amber", "project": "P1", "Notes": "n", "extra": int64(1)},
			{"RAG": nil, "status": "Red", "project": "P2", "Notes": nil, "extra": int64(2)},
		}},
		{Name: "b", Columns: nil, Rows: nil},
		{Name: "c", Columns: []string{"Initiative", "initiative name", "Initiative Name"}, Rows: []models.Row{
			{"Initiative": "x", "initiative name": "y", "Initiative Name": "z"},
		}},
	}

	for _, in := range inputs {
		for _, s := range allSchemas {
			once := Normalize(in, s)
			twice := Normalize(once, s)
			if !reflect.DeepEqual(once, twice) {
				t.Errorf("Normalize(%s, %s) not idempotent:\n once  %v\n twice %v", in.Name, s.Domain, once, twice)
			}
		}
	}
}

func TestNormalizeSynonymCoverage(t *testing.T) {
	for _, s := range allSchemas {
		for _, col := range s.Columns {
			for _, syn := range col.Synonyms {
				for _, header := range []string{syn, strings.ToUpper(syn), "  " + syn + "\t"} {
					in := models.Table{Name: s.Domain, Columns: []string{header}, Rows: []models.Row{{header: "v"}}}
					out := Normalize(in, s)
					if out.Rows[0][col.Name] != "v" {
						t.Errorf("%s: header %q did not map to %q (columns %v)", s.Domain, header, col.Name, out.Columns)
					}
					if len(out.Columns) != len(s.Columns) {
						t.Errorf("%s: header %q left extra columns %v", s.Domain, header, out.Columns)
					}
				}
			}
		}
	}
}

func TestNormalizeCompleteness(t *testing.T) {
	for _, s := range allSchemas {
		out := Normalize(models.Table{Name: s.Domain}, s)
		if !reflect.DeepEqual(out.Columns, s.Names()) {
			t.Errorf("%s: empty input normalized to %v, expected %v", s.Domain, out.Columns, s.Names())
		}
		if out.Len() != 0 {
			t.Errorf("%s: expected no rows, got %d", s.Domain, out.Len())
		}
	}
}

func TestNormalizeFirstColumnWins(t *testing.T) {
	in := models.Table{
		Name:    "Milestones",
		Columns: []string{"RAG", "Status"},
		Rows:    []models.Row{{"RAG": "Red", "Status": "Green"}},
	}
	out := Normalize(in, Milestones)

	// the exact canonical header keeps its slot; the synonym stays a leftover
	if out.Rows[0]["Status"] != "Green" {
		t.Errorf("Status = %v, expected Green", out.Rows[0]["Status"])
	}
	if out.Rows[0]["RAG"] != "Red" {
		t.Errorf("RAG = %v, expected Red", out.Rows[0]["RAG"])
	}
	if last := out.Columns[len(out.Columns)-1]; last != "RAG" {
		t.Errorf("last column = %q, expected RAG", last)
	}
}

func TestWithSynonyms(t *testing.T) {
	s := Portfolio.WithSynonyms(map[string][]string{
		"Health":  {"traffic light", "rag"},
		"Missing": {"ignored"},
	})
	in := models.Table{Name: "Portfolio", Columns: []string{"Traffic Light"}, Rows: []models.Row{{"Traffic Light": "Green"}}}
	out := Normalize(in, s)
	if out.Rows[0]["Health"] != "Green" {
		t.Errorf("extra synonym not applied: %v", out.Rows[0])
	}
	if len(Portfolio.Columns[3].Synonyms) != 3 {
		t.Errorf("WithSynonyms modified the built-in schema: %v", Portfolio.Columns[3].Synonyms)
	}
}

func TestForSheet(t *testing.T) {
	for _, name := range []string{"Portfolio", "Milestones", "Risks"} {
		if s, ok := ForSheet(name); !ok || s.Domain != name {
			t.Errorf("ForSheet(%q) = (%v, %v)", name, s.Domain, ok)
		}
	}
	for _, name := range []string{"portfolio", "RISKS", "Summary", ""} {
		if _, ok := ForSheet(name); ok {
			t.Errorf("ForSheet(%q) matched, expected case-sensitive miss", name)
		}
	}
}
