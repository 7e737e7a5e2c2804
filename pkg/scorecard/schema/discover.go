package schema

import "strings"

// ColumnRule finds columns whose lower-cased header contains one of its keywords.
type ColumnRule struct {
	// Role names what the matched column is used for.
	Role string
	// Keywords are matched as substrings of the lower-cased header.
	Keywords []string
	// KeywordPriority picks by keyword order first, then column order.
	// When false the left-most matching column wins.
	KeywordPriority bool
}

// Column discovery rules for tables of unknown shape.
var (
	DateRule   = ColumnRule{Role: "date", Keywords: []string{"date", "eta"}}
	StatusRule = ColumnRule{Role: "status", Keywords: []string{"status", "rag"}}
	LabelRule  = ColumnRule{
		Role:            "label",
		Keywords:        []string{"project", "initiative", "owner", "date", "risk", "issue", "status"},
		KeywordPriority: true,
	}
)

// Matches reports whether header contains any keyword.
func (r ColumnRule) Matches(header string) bool {
	key := strings.ToLower(header)
	for _, kw := range r.Keywords {
		if strings.Contains(key, kw) {
			return true
		}
	}
	return false
}

// All returns every matching column in column order.
func (r ColumnRule) All(columns []string) []string {
	var out []string
	for _, c := range columns {
		if r.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}

// First returns the preferred matching column.
func (r ColumnRule) First(columns []string) (string, bool) {
	if !r.KeywordPriority {
		for _, c := range columns {
			if r.Matches(c) {
				return c, true
			}
		}
		return "", false
	}
	for _, kw := range r.Keywords {
		for _, c := range columns {
			if strings.Contains(strings.ToLower(c), kw) {
				return c, true
			}
		}
	}
	return "", false
}
