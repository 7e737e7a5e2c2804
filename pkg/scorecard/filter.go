package scorecard

import (
	"strings"

	"github.com/ukaji3/scorecard-go/pkg/scorecard/classify"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/enrich"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/models"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/values"
)

// Filter narrows the portfolio by workstream, owner and health category.
// An empty list does not filter. Matching ignores case and surrounding space.
type Filter struct {
	Workstreams     []string `yaml:"workstreams" json:"workstreams,omitempty"`
	Owners          []string `yaml:"owners" json:"owners,omitempty"`
	Health          []string `yaml:"health" json:"health,omitempty"`
	IncludeComplete bool     `yaml:"include_complete" json:"include_complete"`
}

// Apply filters an enriched scorecard. Milestones and risks are kept only
// when their initiative survives in the portfolio. Extras are not filtered.
func (f Filter) Apply(s models.Scorecard) models.Scorecard {
	workstreams := toSet(f.Workstreams)
	owners := toSet(f.Owners)
	health := toSet(f.Health)

	out := s
	out.Portfolio = s.Portfolio.Filter(func(r models.Row) bool {
		category := healthCategory(r)
		switch {
		case len(workstreams) > 0 && !workstreams[key(r["Workstream"])]:
			return false
		case len(owners) > 0 && !owners[key(r["Owner"])]:
			return false
		case len(health) > 0 && !health[strings.ToLower(string(category))]:
			return false
		case !f.IncludeComplete && category == models.StatusComplete:
			return false
		}
		return true
	})

	initiatives := make(map[string]bool, out.Portfolio.Len())
	for _, r := range out.Portfolio.Rows {
		initiatives[values.String(r["Initiative"])] = true
	}
	byInitiative := func(r models.Row) bool {
		return initiatives[values.String(r["Initiative"])]
	}
	out.Milestones = s.Milestones.Filter(byInitiative)
	out.Risks = s.Risks.Filter(byInitiative)
	return out
}

func healthCategory(r models.Row) models.Label {
	if v := values.String(r[enrich.HealthCategory]); v != "" {
		return models.Label(v)
	}
	return classify.Classify(r["Health"], classify.ModeStrict)
}

func key(v interface{}) string {
	return strings.ToLower(values.String(v))
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		if k := strings.ToLower(strings.TrimSpace(it)); k != "" {
			set[k] = true
		}
	}
	return set
}
