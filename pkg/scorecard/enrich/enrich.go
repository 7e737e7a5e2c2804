// Package enrich adds derived status and risk columns to normalized tables.
package enrich

import (
	"time"

	"github.com/ukaji3/scorecard-go/pkg/scorecard/classify"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/models"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/values"
)

// Derived column names.
const (
	HealthCategory   = "Health Category"
	StatusCategory   = "Status Category"
	ImpactLevel      = "Impact Level"
	ProbabilityLevel = "Probability Level"
	SeverityScore    = "Severity Score"
	DaysFromToday    = "Days From Today"
)

var (
	portfolioNumbers = []string{"Percent Complete", "Budget", "Actual Spend"}
	portfolioDates   = []string{"Launch Date", "Target Date"}
)

// Scorecard enriches all three canonical tables against the reporting date.
// Extras are left as they are.
func Scorecard(s models.Scorecard, today time.Time) models.Scorecard {
	out := s
	out.Portfolio = Portfolio(s.Portfolio)
	out.Milestones = Milestones(s.Milestones, today)
	out.Risks = Risks(s.Risks)
	return out
}

// Portfolio adds Health Category and coerces the numeric and date columns.
func Portfolio(t models.Table) models.Table {
	t = t.WithColumn(HealthCategory, func(r models.Row) interface{} {
		return string(classify.Classify(r["Health"], classify.ModeStrict))
	})
	for _, col := range portfolioNumbers {
		t = coerce(t, col, number)
	}
	for _, col := range portfolioDates {
		t = coerce(t, col, date)
	}
	return t
}

// Milestones coerces Target Date and adds Status Category and Days From Today.
// Days From Today is nil for rows without a target date.
func Milestones(t models.Table, today time.Time) models.Table {
	t = coerce(t, "Target Date", date)
	t = t.WithColumn(StatusCategory, func(r models.Row) interface{} {
		return string(classify.Classify(r["Status"], classify.ModeStrict))
	})
	return t.WithColumn(DaysFromToday, func(r models.Row) interface{} {
		d, ok := values.Date(r["Target Date"])
		if !ok {
			return nil
		}
		return int64(values.DaysBetween(today, d))
	})
}

// Risks adds Impact Level, Probability Level and Severity Score.
func Risks(t models.Table) models.Table {
	t = t.WithColumn(ImpactLevel, func(r models.Row) interface{} {
		return string(classify.Level(r["Impact"]))
	})
	t = t.WithColumn(ProbabilityLevel, func(r models.Row) interface{} {
		return string(classify.Level(r["Probability"]))
	})
	return t.WithColumn(SeverityScore, func(r models.Row) interface{} {
		impact := models.RiskLevel(values.String(r[ImpactLevel]))
		probability := models.RiskLevel(values.String(r[ProbabilityLevel]))
		return int64(classify.Severity(impact, probability))
	})
}

func coerce(t models.Table, col string, fn func(interface{}) interface{}) models.Table {
	if !t.HasColumn(col) {
		return t
	}
	return t.WithColumn(col, func(r models.Row) interface{} {
		return fn(r[col])
	})
}

func number(v interface{}) interface{} {
	if f, ok := values.Float(v); ok {
		return f
	}
	return nil
}

func date(v interface{}) interface{} {
	if d, ok := values.Date(v); ok {
		return d
	}
	return nil
}
