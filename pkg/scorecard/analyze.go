package scorecard

import (
	"github.com/ukaji3/scorecard-go/pkg/scorecard/aggregate"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/enrich"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/models"
)

// Analyze enriches and filters a loaded scorecard and computes its summary.
// The returned scorecard is the filtered, enriched data used for export.
func Analyze(s models.Scorecard, opts Options) (models.Scorecard, models.Summary) {
	filtered := opts.Filter.Apply(enrich.Scorecard(s, opts.Today()))
	sum := aggregate.Summarize(filtered, aggregate.SummaryParams{
		Today:         opts.Today(),
		LookaheadDays: opts.LookaheadDays,
		TopRisks:      opts.TopRisks,
		TimelineLimit: opts.TimelineLimit,
	})
	sum.Warnings = s.Warnings
	return filtered, sum
}
