package aggregate

import (
	"sort"
	"time"

	"github.com/ukaji3/scorecard-go/pkg/scorecard/classify"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/enrich"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/milestone"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/models"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/values"
)

// SummaryParams holds the knobs of Summarize.
type SummaryParams struct {
	// Today is the reporting date.
	Today time.Time
	// LookaheadDays bounds the Upcoming milestone list.
	LookaheadDays int
	// TopRisks is the number of highest-severity risks kept.
	TopRisks int
	// TimelineLimit truncates the cross-table timeline; 0 keeps everything.
	TimelineLimit int
}

// unassignedWorkstream groups initiatives with a blank workstream.
const unassignedWorkstream = "(unassigned)"

// Summarize computes the executive roll-up of an enriched scorecard.
func Summarize(s models.Scorecard, p SummaryParams) models.Summary {
	today := values.DateOnly(p.Today)
	sum := models.Summary{
		SourceName:        s.SourceName,
		AsOf:              today.Format(values.DateLayout),
		LookaheadDays:     p.LookaheadDays,
		ActiveInitiatives: s.Portfolio.Len(),
	}

	health := models.StatusTally{}
	for _, row := range s.Portfolio.Rows {
		health[healthLabel(row)]++
	}
	sum.AtRiskCount = health[models.StatusAtRisk]
	sum.WatchCount = health[models.StatusWatch]
	sum.HoldCount = health[models.StatusOnHold]
	sum.HealthDistribution = Distribution(health)

	sum.AvgProgress = mean(s.Portfolio.Values("Percent Complete"))
	sum.BudgetTotal = total(s.Portfolio.Values("Budget"))
	sum.ActualTotal = total(s.Portfolio.Values("Actual Spend"))
	if sum.BudgetTotal != 0 {
		burn := sum.ActualTotal / sum.BudgetTotal
		sum.BudgetBurn = &burn
	}
	sum.ProgressByWorkstream = progressByWorkstream(s.Portfolio)

	overdue, upcoming := milestone.Due(milestone.Plan(s.Milestones, today), p.LookaheadDays)
	sum.Overdue = overdue
	sum.Upcoming = upcoming
	sum.OverdueCount = len(overdue)
	sum.UpcomingCount = len(upcoming)

	risks := scoreRisks(s.Risks)
	for _, r := range risks {
		if classify.IsCritical(r.Severity) {
			sum.CriticalRisks++
		}
	}
	sum.RiskHeatmap = heatmap(risks)
	sum.TopRisks = topRisks(risks, p.TopRisks)

	sum.Status = StatusCounts(s.AllTables())
	sum.Timeline = nonNil(milestone.Limit(milestone.Extract(s.AllTables(), today), p.TimelineLimit))
	return sum
}

// healthLabel prefers the enriched Health Category and falls back to classifying Health.
func healthLabel(row models.Row) models.Label {
	if v := values.String(row[enrich.HealthCategory]); v != "" {
		return models.Label(v)
	}
	return classify.Classify(row["Health"], classify.ModeStrict)
}

func mean(cells []interface{}) *float64 {
	var sum float64
	n := 0
	for _, c := range cells {
		if f, ok := values.Float(c); ok {
			sum += f
			n++
		}
	}
	if n == 0 {
		return nil
	}
	m := sum / float64(n)
	return &m
}

func total(cells []interface{}) float64 {
	var sum float64
	for _, c := range cells {
		if f, ok := values.Float(c); ok {
			sum += f
		}
	}
	return sum
}

func progressByWorkstream(t models.Table) []models.WorkstreamProgress {
	groups := make(map[string][]interface{})
	for _, row := range t.Rows {
		ws := values.String(row["Workstream"])
		if ws == "" {
			ws = unassignedWorkstream
		}
		groups[ws] = append(groups[ws], row["Percent Complete"])
	}

	out := make([]models.WorkstreamProgress, 0, len(groups))
	for ws, cells := range groups {
		out = append(out, models.WorkstreamProgress{Workstream: ws, Progress: mean(cells)})
	}
	sort.Slice(out, func(i, j int) bool {
		pi, pj := out[i].Progress, out[j].Progress
		switch {
		case pi == nil && pj == nil:
			return out[i].Workstream < out[j].Workstream
		case pi == nil:
			return false
		case pj == nil:
			return true
		case *pi != *pj:
			return *pi < *pj
		default:
			return out[i].Workstream < out[j].Workstream
		}
	})
	return out
}

func scoreRisks(t models.Table) []models.RiskEntry {
	out := make([]models.RiskEntry, 0, t.Len())
	for _, row := range t.Rows {
		impact := riskLevel(row, enrich.ImpactLevel, "Impact")
		probability := riskLevel(row, enrich.ProbabilityLevel, "Probability")
		out = append(out, models.RiskEntry{
			Initiative:  values.String(row["Initiative"]),
			Risk:        values.String(row["Risk"]),
			Impact:      impact,
			Probability: probability,
			Severity:    classify.Severity(impact, probability),
			Status:      values.String(row["Status"]),
			Mitigation:  values.String(row["Mitigation"]),
			Owner:       values.String(row["Owner"]),
		})
	}
	return out
}

func riskLevel(row models.Row, derived, source string) models.RiskLevel {
	if v := values.String(row[derived]); v != "" {
		return models.RiskLevel(v)
	}
	return classify.Level(row[source])
}

func heatmap(risks []models.RiskEntry) []models.HeatmapCell {
	counts := make(map[[2]models.RiskLevel]int)
	for _, r := range risks {
		counts[[2]models.RiskLevel{r.Impact, r.Probability}]++
	}
	out := []models.HeatmapCell{}
	for _, impact := range models.RiskLevelOrder {
		for _, probability := range models.RiskLevelOrder {
			if n := counts[[2]models.RiskLevel{impact, probability}]; n > 0 {
				out = append(out, models.HeatmapCell{Impact: impact, Probability: probability, Count: n})
			}
		}
	}
	return out
}

func topRisks(risks []models.RiskEntry, n int) []models.RiskEntry {
	sorted := make([]models.RiskEntry, len(risks))
	copy(sorted, risks)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Severity != b.Severity {
			return a.Severity > b.Severity
		}
		if ai, bi := classify.Ordinal(a.Impact), classify.Ordinal(b.Impact); ai != bi {
			return ai > bi
		}
		return classify.Ordinal(a.Probability) > classify.Ordinal(b.Probability)
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func nonNil(events []models.MilestoneEvent) []models.MilestoneEvent {
	if events == nil {
		return []models.MilestoneEvent{}
	}
	return events
}
