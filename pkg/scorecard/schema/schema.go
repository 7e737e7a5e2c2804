// Package schema holds the canonical column sets and renames arbitrary headers onto them.
package schema

import "strings"

// Column is a canonical column with the header spellings that map onto it.
type Column struct {
	Name     string   `yaml:"name" json:"name"`
	Synonyms []string `yaml:"synonyms" json:"synonyms"`
}

// Schema is the ordered canonical column list of one domain.
type Schema struct {
	Domain  string
	Columns []Column
}

// Canonical schemas for the three recognised sheets.
var (
	Portfolio = Schema{
		Domain: "Portfolio",
		Columns: []Column{
			{"Initiative", []string{"project", "project name", "initiative name"}},
			{"Workstream", []string{"pillar", "tower", "portfolio"}},
			{"Owner", []string{"lead", "manager", "pm"}},
			{"Health", []string{"rag", "status", "overall status"}},
			{"Percent Complete", []string{"percent complete", "% complete", "progress", "progress (%)"}},
			{"Launch Date", []string{"start date", "kickoff"}},
			{"Target Date", []string{"end date", "go-live", "eta", "due date"}},
			{"Budget", []string{"planned spend", "allocated budget", "budget (usd)"}},
			{"Actual Spend", []string{"actuals", "actual spend", "spent"}},
			{"Status Summary", []string{"executive summary", "headline", "status notes"}},
		},
	}

	Milestones = Schema{
		Domain: "Milestones",
		Columns: []Column{
			{"Initiative", []string{"project", "project name"}},
			{"Milestone", []string{"milestone name", "deliverable"}},
			{"Target Date", []string{"due date", "eta", "planned date"}},
			{"Status", []string{"status", "rag"}},
			{"Owner", []string{"lead", "manager", "pm"}},
			{"Notes", []string{"comments", "context"}},
		},
	}

	Risks = Schema{
		Domain: "Risks",
		Columns: []Column{
			{"Initiative", []string{"project", "project name"}},
			{"Risk", []string{"risk description", "risk statement"}},
			{"Impact", []string{"impact level", "impact rating"}},
			{"Probability", []string{"likelihood", "probability level"}},
			{"Status", []string{"status", "rag"}},
			{"Mitigation", []string{"mitigation plan", "response"}},
			{"Owner", []string{"risk owner", "owner"}},
		},
	}
)

// Names returns the canonical column names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// WithSynonyms returns a copy of s with extra synonyms appended per canonical
// column. Unknown canonical names are ignored. Built-in spellings stay first,
// so they win any collision.
func (s Schema) WithSynonyms(extra map[string][]string) Schema {
	out := Schema{Domain: s.Domain, Columns: make([]Column, len(s.Columns))}
	for i, c := range s.Columns {
		syn := make([]string, len(c.Synonyms), len(c.Synonyms)+len(extra[c.Name]))
		copy(syn, c.Synonyms)
		out.Columns[i] = Column{Name: c.Name, Synonyms: append(syn, extra[c.Name]...)}
	}
	return out
}

// lookup maps a normalised header key to its canonical name.
// Canonical names register before synonyms and the first registration wins.
func (s Schema) lookup() map[string]string {
	m := make(map[string]string)
	for _, c := range s.Columns {
		if key := Key(c.Name); key != "" {
			if _, taken := m[key]; !taken {
				m[key] = c.Name
			}
		}
	}
	for _, c := range s.Columns {
		for _, syn := range c.Synonyms {
			key := Key(syn)
			if key == "" {
				continue
			}
			if _, taken := m[key]; !taken {
				m[key] = c.Name
			}
		}
	}
	return m
}

// Key is the comparison form of a header: trimmed and lower-cased.
func Key(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

// ForSheet returns the schema for a canonical sheet name (case-sensitive).
func ForSheet(name string) (Schema, bool) {
	switch name {
	case Portfolio.Domain:
		return Portfolio, true
	case Milestones.Domain:
		return Milestones, true
	case Risks.Domain:
		return Risks, true
	}
	return Schema{}, false
}
