package milestone

import (
	"sort"
	"time"

	"github.com/ukaji3/scorecard-go/pkg/scorecard/classify"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/enrich"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/models"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/values"
)

// Plan returns one item per Milestones row keyed on its Target Date,
// ascending by date. Rows without a parseable target date are skipped.
func Plan(t models.Table, today time.Time) []models.MilestoneItem {
	today = values.DateOnly(today)
	items := make([]models.MilestoneItem, 0, t.Len())
	for _, row := range t.Rows {
		d, ok := values.Date(row["Target Date"])
		if !ok {
			continue
		}
		items = append(items, models.MilestoneItem{
			Initiative:     values.String(row["Initiative"]),
			Milestone:      values.String(row["Milestone"]),
			TargetDate:     d,
			StatusCategory: statusCategory(row),
			Owner:          values.String(row["Owner"]),
			DaysFromToday:  values.DaysBetween(today, d),
			Notes:          values.String(row["Notes"]),
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].TargetDate.Before(items[j].TargetDate)
	})
	return items
}

// Due splits plan items into overdue ones and those due within lookahead days.
// Items further out than the lookahead are dropped.
func Due(items []models.MilestoneItem, lookahead int) (overdue, upcoming []models.MilestoneItem) {
	overdue = []models.MilestoneItem{}
	upcoming = []models.MilestoneItem{}
	for _, it := range items {
		switch {
		case it.DaysFromToday < 0:
			overdue = append(overdue, it)
		case it.DaysFromToday <= lookahead:
			upcoming = append(upcoming, it)
		}
	}
	return overdue, upcoming
}

// statusCategory prefers the enriched Status Category over classifying Status.
func statusCategory(row models.Row) models.Label {
	if v := values.String(row[enrich.StatusCategory]); v != "" {
		return models.Label(v)
	}
	return classify.Classify(row["Status"], classify.ModeStrict)
}
