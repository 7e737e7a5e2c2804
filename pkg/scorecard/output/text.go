package output

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ukaji3/scorecard-go/pkg/scorecard/models"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/values"
)

// WriteText prints the executive summary as an aligned text report.
func WriteText(w io.Writer, s models.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	p := func(format string, args ...interface{}) {
		fmt.Fprintf(tw, format, args...)
	}

	p("Program Scorecard\n")
	p("Reporting as of %s\tSource: %s\n\n", s.AsOf, s.SourceName)

	p("Active initiatives\t%d\t%s\n", s.ActiveInitiatives, atRiskNote(s.AtRiskCount))
	p("Watch / Hold\t%d watch | %d hold\n", s.WatchCount, s.HoldCount)
	p("Avg progress\t%s\n", Percent(s.AvgProgress, 100))
	p("Budget burn\t%s\t%s of %s\n", Percent(s.BudgetBurn, 1), Currency(s.ActualTotal), Currency(s.BudgetTotal))
	p("Critical risks\t%d\n\n", s.CriticalRisks)

	p("Health distribution\n")
	for _, lc := range s.HealthDistribution {
		p("  %s\t%d\n", lc.Label, lc.Count)
	}

	p("\nProgress by workstream\n")
	for _, wp := range s.ProgressByWorkstream {
		p("  %s\t%s\n", wp.Workstream, Percent(wp.Progress, 100))
	}

	p("\nUpcoming milestones (next %d days)\n", s.LookaheadDays)
	writeMilestones(p, s.Upcoming, "No milestones in the selected window.")
	p("\nOverdue milestones\n")
	writeMilestones(p, s.Overdue, "No overdue milestones.")

	p("\nTop risks\n")
	if len(s.TopRisks) == 0 {
		p("  No risks logged for the filtered initiatives.\n")
	}
	for _, r := range s.TopRisks {
		p("  %d\t%s\t%s\t%s x %s\t%s\n", r.Severity, r.Initiative, r.Risk, r.Impact, r.Probability, r.Owner)
	}

	if len(s.Status.MissingStatus) > 0 {
		p("\nNo status column: %s\n", strings.Join(s.Status.MissingStatus, ", "))
	}
	for _, warn := range s.Warnings {
		p("warning: %s\n", warn)
	}
	return tw.Flush()
}

func writeMilestones(p func(string, ...interface{}), items []models.MilestoneItem, empty string) {
	if len(items) == 0 {
		p("  %s\n", empty)
		return
	}
	for _, m := range items {
		p("  %s\t%s\t%s\t%+d d\t%s\t%s\n", m.TargetDate.Format(values.DateLayout), m.Initiative, m.Milestone, m.DaysFromToday, m.StatusCategory, m.Owner)
	}
}

func atRiskNote(n int) string {
	if n == 0 {
		return "All healthy"
	}
	return fmt.Sprintf("%d at risk", n)
}

// Percent renders v*100/scale as a whole percentage, "-" when v is nil.
func Percent(v *float64, scale float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", *v*100/scale)
}

// Currency renders a whole-dollar amount with thousands separators.
func Currency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "-"
	}
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatFloat(math.Round(amount), 'f', 0, 64)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + "$" + b.String()
}
