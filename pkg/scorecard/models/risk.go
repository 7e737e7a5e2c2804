package models

// RiskLevel is an ordinal impact or probability rating.
type RiskLevel string

const (
	RiskLow     RiskLevel = "Low"
	RiskMedium  RiskLevel = "Medium"
	RiskHigh    RiskLevel = "High"
	RiskUnknown RiskLevel = "Unknown"
)

// RiskLevelOrder is the axis order used for the impact/probability heatmap.
var RiskLevelOrder = []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskUnknown}

// String returns the level text.
func (r RiskLevel) String() string {
	return string(r)
}
