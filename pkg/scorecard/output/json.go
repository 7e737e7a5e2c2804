// Package output renders scorecard summaries as JSON or a plain-text report.
package output

import (
	"encoding/json"
)

// ToJSON serializes v to JSON.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
