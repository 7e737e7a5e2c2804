// Package sample provides the built-in demonstration scorecard.
package sample

import (
	"time"

	"github.com/ukaji3/scorecard-go/pkg/scorecard/models"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/schema"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/values"
)

// SourceName labels scorecards built by Load.
const SourceName = "Sample Program Scorecard"

// Load returns the sample scorecard with dates relative to today.
func Load(today time.Time) models.Scorecard {
	today = values.DateOnly(today)
	d := func(offset int) time.Time { return today.AddDate(0, 0, offset) }

	portfolio := build(models.SheetPortfolio, schema.Portfolio, [][]interface{}{
		{"Digital Onboarding", "Experience", "A. Lopez", "Green", int64(72), d(-120), d(40), int64(550000), int64(310000),
			"MVP in pilot; adoption tracking 15% above target."},
		{"Customer 360 Rollout", "CRM", "K. Chen", "Amber", int64(58), d(-95), d(25), int64(430000), int64(260000),
			"Integration testing slipping; vendor patch due Friday."},
		{"Data Warehouse Migration", "Data", "R. Patel", "Red", int64(41), d(-60), d(70), int64(620000), int64(180000),
			"Blockers on data quality gating migration cut-over."},
		{"Field Mobile App", "Operations", "J. Gomez", "Green", int64(86), d(-140), d(20), int64(210000), int64(150000),
			"Field feedback positive; higher hardware costs under review."},
		{"Billing Modernization", "Finance", "S. Woods", "Amber", int64(49), d(-80), d(55), int64(390000), int64(210000),
			"Dependency on pricing APIs; replan under way with Finance."},
	})

	milestones := build(models.SheetMilestones, schema.Milestones, [][]interface{}{
		{"Digital Onboarding", "Self-service KYC live", d(15), "Green", "A. Lopez",
			"Beta conversion at 92%. Final analytics QA this week."},
		{"Digital Onboarding", "Paper process sunset", d(45), "Amber", "A. Lopez",
			"Dependency on contact center training completion."},
		{"Customer 360 Rollout", "CRM go-live (Phase 1)", d(25), "Amber", "K. Chen",
			"Waiting on reference data clean-up from Data team."},
		{"Data Warehouse Migration", "Production cut-over", d(70), "Red", "R. Patel",
			"Load testing blocked by missing anonymized dataset."},
		{"Field Mobile App", "iOS field release", d(10), "Green", "J. Gomez",
			"Final sprint in progress; hardware rollout scheduled."},
		{"Billing Modernization", "Pricing rules migration", d(-5), "Red", "S. Woods",
			"Legacy platform defects delaying migration window."},
	})

	risks := build(models.SheetRisks, schema.Risks, [][]interface{}{
		{"Customer 360 Rollout", "Vendor CRM patch may slip, delaying UAT sign-off.", "High", "Medium", "Mitigating",
			"Escalated with vendor; tracking hotfix build.", "K. Chen"},
		{"Data Warehouse Migration", "Data quality issues could extend migration blackout.", "High", "High", "Open",
			"Profiling sprint and cleansing backlog with owners.", "R. Patel"},
		{"Billing Modernization", "Pricing API throughput may not meet performance targets.", "Medium", "Medium", "Watching",
			"Load test this sprint; scale-out plan agreed with Infra.", "S. Woods"},
		{"Field Mobile App", "Offline mode stability risk in low-connectivity regions.", "Medium", "Low", "Mitigating",
			"Targeted field pilots with telemetry instrumentation.", "J. Gomez"},
	})

	return models.Scorecard{
		Portfolio:  portfolio,
		Milestones: milestones,
		Risks:      risks,
		SourceName: SourceName,
	}
}

// build lays positional records out against the schema's column order.
func build(name string, s schema.Schema, records [][]interface{}) models.Table {
	t := schema.Empty(name, s)
	for _, rec := range records {
		row := make(models.Row, len(t.Columns))
		for i, col := range t.Columns {
			row[col] = rec[i]
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
