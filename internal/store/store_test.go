package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ukaji3/scorecard-go/pkg/scorecard"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/models"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/sample"
)

func TestSanitizeSchema(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"scorecard", "scorecard", false},
		{"  _reports2 ", "_reports2", false},
		{"", "", true},
		{"2fast", "", true},
		{"public; DROP TABLE x", "", true},
		{"a-b", "", true},
	}

	for _, tt := range tests {
		got, err := SanitizeSchema(tt.input)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("SanitizeSchema(%q) = %q, %v; expected %q, error %v", tt.input, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestStatusRows(t *testing.T) {
	report := models.StatusReport{
		ByTable: map[string]models.StatusTally{
			"Risks":     {models.StatusWatch: 1},
			"Portfolio": {models.StatusOnTrack: 2, models.StatusAtRisk: 1},
		},
	}
	rows := statusRows(report)
	want := []statusRow{
		{"Portfolio", "At Risk", 1},
		{"Portfolio", "On Track", 2},
		{"Risks", "Watch", 1},
	}
	if len(rows) != len(want) {
		t.Fatalf("rows = %+v", rows)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("rows[%d] = %+v, expected %+v", i, rows[i], want[i])
		}
	}
}

func TestOpenRejectsBadConfig(t *testing.T) {
	ctx := context.Background()
	if _, err := Open(ctx, Config{URL: "postgres://localhost/x", Schema: "bad-name"}); err == nil {
		t.Error("expected an invalid schema error")
	}
	if _, err := Open(ctx, Config{Schema: "scorecard"}); err == nil {
		t.Error("expected a missing url error")
	}
}

// TestSaveRun needs a live database; set SCORECARD_TEST_DB_URL to run it.
func TestSaveRun(t *testing.T) {
	url := os.Getenv("SCORECARD_TEST_DB_URL")
	if url == "" {
		t.Skip("SCORECARD_TEST_DB_URL not set")
	}

	ctx := context.Background()
	s, err := Open(ctx, Config{URL: url, Schema: "scorecard_test", Tag: "test"})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	opts := scorecard.DefaultOptions()
	opts.AsOf = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	_, sum := scorecard.Analyze(sample.Load(opts.AsOf), opts)

	id, err := s.SaveRun(ctx, sum)
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if id == "" {
		t.Error("expected a run id")
	}
}
