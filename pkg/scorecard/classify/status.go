// Package classify buckets free-text status and risk ratings into fixed vocabularies.
package classify

import (
	"strings"
	"unicode"

	"github.com/ukaji3/scorecard-go/pkg/scorecard/models"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/values"
)

// Mode selects the vocabulary and the fallback for unrecognised text.
type Mode string

const (
	// ModeStrict maps onto the portfolio vocabulary and falls back to Unknown.
	ModeStrict Mode = "strict"
	// ModePassthrough maps onto the loose RAG vocabulary and falls back to the
	// title-cased source text.
	ModePassthrough Mode = "passthrough"
)

// rule matches the trimmed, lower-cased status text.
type rule struct {
	match func(text string) bool
	label models.Label
}

func contains(subs ...string) func(string) bool {
	return func(text string) bool {
		for _, s := range subs {
			if strings.Contains(text, s) {
				return true
			}
		}
		return false
	}
}

func oneOf(words ...string) func(string) bool {
	return func(text string) bool {
		for _, w := range words {
			if text == w {
				return true
			}
		}
		return false
	}
}

func prefix(p string) func(string) bool {
	return func(text string) bool {
		return strings.HasPrefix(text, p)
	}
}

func either(preds ...func(string) bool) func(string) bool {
	return func(text string) bool {
		for _, p := range preds {
			if p(text) {
				return true
			}
		}
		return false
	}
}

var strictRules = []rule{
	{contains("hold"), models.StatusOnHold},
	{contains("complete", "done", "closed"), models.StatusComplete},
	{oneOf("green", "on track", "good"), models.StatusOnTrack},
	{either(oneOf("yellow", "amber", "watch", "caution"), contains("amber", "progress", "watch")), models.StatusWatch},
	{either(oneOf("red", "critical", "off track", "blocked"), contains("risk", "blocked", "critical")), models.StatusAtRisk},
	{either(contains("not started"), oneOf("tbd")), models.StatusNotStarted},
}

var passthroughRules = []rule{
	{contains("hold"), models.StatusOnHold},
	{contains("complete", "done", "closed"), models.StatusComplete},
	{prefix("g"), models.RAGGreen},
	{either(prefix("y"), contains("amber", "progress", "watch")), models.RAGAmber},
	{either(prefix("r"), contains("risk", "blocked", "critical")), models.RAGRed},
}

// Classify maps a status cell to a label. It never fails: absent or blank
// values are Unknown in both modes.
func Classify(value interface{}, mode Mode) models.Label {
	raw, ok := values.Text(value)
	if !ok {
		return models.StatusUnknown
	}
	trimmed := strings.TrimSpace(raw)
	text := strings.ToLower(trimmed)
	if text == "" {
		return models.StatusUnknown
	}

	rules := strictRules
	if mode == ModePassthrough {
		rules = passthroughRules
	}
	for _, r := range rules {
		if r.match(text) {
			return r.label
		}
	}

	if mode == ModePassthrough {
		return models.Label(titleCase(trimmed))
	}
	return models.StatusUnknown
}

// titleCase upper-cases the first letter of every word and lower-cases the rest.
// A word starts after any non-letter.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
