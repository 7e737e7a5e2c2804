// Package milestone builds a dated event list from tables of any shape.
package milestone

import (
	"fmt"
	"sort"
	"time"

	"github.com/ukaji3/scorecard-go/pkg/scorecard/classify"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/models"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/schema"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/values"
)

// Extract scans every date-like column of every table and returns one event
// per parseable date, Overdue events first, each group ascending by date.
// Tables without a date-like column and cells that are not dates are skipped.
func Extract(tables []models.Table, today time.Time) []models.MilestoneEvent {
	today = values.DateOnly(today)
	var events []models.MilestoneEvent

	for _, t := range tables {
		dateCols := schema.DateRule.All(t.Columns)
		if len(dateCols) == 0 {
			continue
		}

		labelCol, hasLabel := schema.LabelRule.First(t.Columns)
		if !hasLabel && len(t.Columns) > 0 {
			labelCol, hasLabel = t.Columns[0], true
		}
		statusCol, hasStatus := schema.StatusRule.First(t.Columns)

		for i, row := range t.Rows {
			label := ""
			if hasLabel {
				label = values.String(row[labelCol])
			}
			if label == "" {
				label = fmt.Sprintf("Row %d", i+1)
			}
			var status models.Label
			if hasStatus {
				status = classify.Classify(row[statusCol], classify.ModePassthrough)
			}

			for _, col := range dateCols {
				d, ok := values.Date(row[col])
				if !ok {
					continue
				}
				offset := values.DaysBetween(today, d)
				bucket := models.BucketUpcoming
				if offset < 0 {
					bucket = models.BucketOverdue
				}
				events = append(events, models.MilestoneEvent{
					Table:         t.Name,
					Label:         label,
					Date:          d,
					Status:        status,
					Column:        col,
					DaysFromToday: offset,
					Bucket:        bucket,
				})
			}
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		oi, oj := events[i].Bucket == models.BucketOverdue, events[j].Bucket == models.BucketOverdue
		if oi != oj {
			return oi
		}
		return events[i].Date.Before(events[j].Date)
	})
	return events
}

// Limit returns at most n events; n <= 0 keeps all of them.
func Limit(events []models.MilestoneEvent, n int) []models.MilestoneEvent {
	if n <= 0 || len(events) <= n {
		return events
	}
	return events[:n]
}
