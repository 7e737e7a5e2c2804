package sample

import (
	"reflect"
	"testing"
	"time"

	"github.com/ukaji3/scorecard-go/pkg/scorecard/schema"
)

func TestLoad(t *testing.T) {
	today := time.Date(2026, 10, 15, 14, 0, 0, 0, time.UTC)
	s := Load(today)

	if s.SourceName != SourceName {
		t.Errorf("SourceName = %q", s.SourceName)
	}
	tests := []struct {
		name    string
		columns []string
		rows    int
	}{
		{"Portfolio", schema.Portfolio.Names(), 5},
		{"Milestones", schema.Milestones.Names(), 6},
		{"Risks", schema.Risks.Names(), 4},
	}
	for i, tbl := range s.Tables() {
		tt := tests[i]
		if tbl.Name != tt.name || tbl.Len() != tt.rows || !reflect.DeepEqual(tbl.Columns, tt.columns) {
			t.Errorf("table %d = %s (%d rows, %v), expected %s (%d rows, %v)",
				i, tbl.Name, tbl.Len(), tbl.Columns, tt.name, tt.rows, tt.columns)
		}
	}

	overdue := s.Milestones.Rows[5]["Target Date"].(time.Time)
	if want := time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC); !overdue.Equal(want) {
		t.Errorf("overdue milestone date = %v, expected %v", overdue, want)
	}

	// sample tables are already canonical
	for _, tbl := range s.Tables() {
		sc, _ := schema.ForSheet(tbl.Name)
		if !reflect.DeepEqual(schema.Normalize(tbl, sc), tbl) {
			t.Errorf("%s is not in canonical form", tbl.Name)
		}
	}
}
