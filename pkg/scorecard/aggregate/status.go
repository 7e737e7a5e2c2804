// Package aggregate rolls normalized tables up into counts and executive metrics.
package aggregate

import (
	"github.com/ukaji3/scorecard-go/pkg/scorecard/classify"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/models"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/schema"
)

// StatusCounts tallies the first status-like column of every table in strict mode.
// Tables without such a column are listed in MissingStatus and skipped.
func StatusCounts(tables []models.Table) models.StatusReport {
	report := models.StatusReport{
		Overall:       models.StatusTally{},
		ByTable:       make(map[string]models.StatusTally),
		StatusColumns: make(map[string]string),
		MissingStatus: []string{},
	}

	for _, t := range tables {
		col, ok := schema.StatusRule.First(t.Columns)
		if !ok {
			report.MissingStatus = append(report.MissingStatus, t.Name)
			continue
		}

		tally := models.StatusTally{}
		for _, row := range t.Rows {
			tally[classify.Classify(row[col], classify.ModeStrict)]++
		}
		// rows not explained by a classification are blank cells
		if missing := t.Len() - tally.Total(); missing > 0 {
			tally[models.StatusUnknown] += missing
		}

		if prev, seen := report.ByTable[t.Name]; seen {
			for label, n := range tally {
				prev[label] += n
			}
		} else {
			report.ByTable[t.Name] = tally
			report.StatusColumns[t.Name] = col
		}
		for label, n := range tally {
			report.Overall[label] += n
		}
	}
	return report
}

// Distribution returns one count per strict label in display order, zeros included.
func Distribution(tally models.StatusTally) []models.LabelCount {
	out := make([]models.LabelCount, 0, len(models.StatusOrder))
	for _, label := range models.StatusOrder {
		out = append(out, models.LabelCount{
			Label: label,
			Count: tally[label],
			Color: models.StatusColors[label],
		})
	}
	return out
}
