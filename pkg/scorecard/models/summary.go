package models

// LabelCount is one bar of the health distribution.
type LabelCount struct {
	Label Label  `json:"label"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// WorkstreamProgress is the mean percent complete of a workstream.
// Progress is nil when no initiative in the workstream reports progress.
type WorkstreamProgress struct {
	Workstream string   `json:"workstream"`
	Progress   *float64 `json:"progress"`
}

// HeatmapCell counts risks sharing an impact and probability level.
type HeatmapCell struct {
	Impact      RiskLevel `json:"impact"`
	Probability RiskLevel `json:"probability"`
	Count       int       `json:"count"`
}

// RiskEntry is a scored row of the risk register.
type RiskEntry struct {
	Initiative  string    `json:"initiative"`
	Risk        string    `json:"risk"`
	Impact      RiskLevel `json:"impact"`
	Probability RiskLevel `json:"probability"`
	Severity    int       `json:"severity"`
	Status      string    `json:"status"`
	Mitigation  string    `json:"mitigation"`
	Owner       string    `json:"owner"`
}

// Summary holds the executive roll-up for one scorecard.
type Summary struct {
	SourceName    string `json:"source_name"`
	AsOf          string `json:"as_of"`
	LookaheadDays int    `json:"lookahead_days"`

	ActiveInitiatives int `json:"active_initiatives"`
	AtRiskCount       int `json:"at_risk_count"`
	WatchCount        int `json:"watch_count"`
	HoldCount         int `json:"hold_count"`

	// AvgProgress is nil when no initiative reports percent complete.
	AvgProgress *float64 `json:"avg_progress"`
	BudgetTotal float64  `json:"budget_total"`
	ActualTotal float64  `json:"actual_total"`
	// BudgetBurn is ActualTotal/BudgetTotal, nil when the budget is zero.
	BudgetBurn *float64 `json:"budget_burn"`

	OverdueCount  int `json:"overdue_count"`
	UpcomingCount int `json:"upcoming_count"`
	CriticalRisks int `json:"critical_risks"`

	HealthDistribution   []LabelCount         `json:"health_distribution"`
	ProgressByWorkstream []WorkstreamProgress `json:"progress_by_workstream"`
	RiskHeatmap          []HeatmapCell        `json:"risk_heatmap"`
	TopRisks             []RiskEntry          `json:"top_risks"`

	Overdue  []MilestoneItem  `json:"overdue"`
	Upcoming []MilestoneItem  `json:"upcoming"`
	Timeline []MilestoneEvent `json:"timeline"`

	Status   StatusReport `json:"status"`
	Warnings []string     `json:"warnings,omitempty"`
}
