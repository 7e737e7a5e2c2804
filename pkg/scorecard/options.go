// Package scorecard loads program scorecard workbooks and rolls them up into
// an executive summary.
package scorecard

import (
	"time"

	"github.com/ukaji3/scorecard-go/pkg/scorecard/schema"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/values"
)

// Options configures loading and summarizing.
type Options struct {
	// AsOf is the reporting date. The zero value means today.
	AsOf time.Time
	// LookaheadDays bounds the upcoming milestone window.
	LookaheadDays int
	// TimelineLimit truncates the cross-table timeline; 0 keeps every event.
	TimelineLimit int
	// TopRisks is the number of highest-severity risks reported.
	TopRisks int
	// Synonyms adds header spellings per sheet and canonical column,
	// e.g. Synonyms["Portfolio"]["Owner"] = []string{"sponsor"}.
	Synonyms map[string]map[string][]string
	// Filter narrows the portfolio before summarizing.
	Filter Filter
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		LookaheadDays: 45,
		TimelineLimit: 20,
		TopRisks:      5,
	}
}

// Today returns the reporting date truncated to midnight UTC.
func (o Options) Today() time.Time {
	t := o.AsOf
	if t.IsZero() {
		t = time.Now()
	}
	return values.DateOnly(t)
}

// Schema returns the canonical schema for sheet with the configured synonyms
// appended. ok is false for a non-canonical sheet name.
func (o Options) Schema(sheet string) (schema.Schema, bool) {
	s, ok := schema.ForSheet(sheet)
	if !ok {
		return schema.Schema{}, false
	}
	if extra := o.Synonyms[sheet]; len(extra) > 0 {
		s = s.WithSynonyms(extra)
	}
	return s, true
}
