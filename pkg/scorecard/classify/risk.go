package classify

import (
	"strconv"
	"strings"

	"github.com/ukaji3/scorecard-go/pkg/scorecard/models"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/values"
)

// CriticalSeverity is the lowest score counted as a critical risk (High x Medium).
const CriticalSeverity = 6

var levelOrdinal = map[models.RiskLevel]int{
	models.RiskLow:    1,
	models.RiskMedium: 2,
	models.RiskHigh:   3,
}

var levelKeywords = []struct {
	word  string
	level models.RiskLevel
}{
	{"low", models.RiskLow},
	{"medium", models.RiskMedium},
	{"high", models.RiskHigh},
	{"critical", models.RiskHigh},
	{"severe", models.RiskHigh},
}

// Level maps an impact or probability cell to a risk level.
// Digit strings are read as a 1-3 scale; otherwise the first keyword found wins.
func Level(value interface{}) models.RiskLevel {
	raw, ok := values.Text(value)
	if !ok {
		return models.RiskUnknown
	}
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return models.RiskUnknown
	}

	if isDigits(text) {
		n, err := strconv.Atoi(text)
		switch {
		case err != nil:
			// too many digits for an int: still a large rating
			return models.RiskHigh
		case n <= 1:
			return models.RiskLow
		case n == 2:
			return models.RiskMedium
		default:
			return models.RiskHigh
		}
	}

	for _, kw := range levelKeywords {
		if strings.Contains(text, kw.word) {
			return kw.level
		}
	}
	return models.RiskUnknown
}

// Ordinal returns 1-3 for Low/Medium/High and 0 otherwise.
func Ordinal(level models.RiskLevel) int {
	return levelOrdinal[level]
}

// Severity multiplies the impact and probability ordinals (0-9).
func Severity(impact, probability models.RiskLevel) int {
	return Ordinal(impact) * Ordinal(probability)
}

// IsCritical reports whether a severity score reaches the critical threshold.
func IsCritical(score int) bool {
	return score >= CriticalSeverity
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
