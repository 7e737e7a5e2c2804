package models

// Canonical sheet names recognised in an uploaded workbook.
const (
	SheetPortfolio  = "Portfolio"
	SheetMilestones = "Milestones"
	SheetRisks      = "Risks"
)

// Scorecard groups the three canonical tables with the upload they came from.
type Scorecard struct {
	// Portfolio holds one row per initiative.
	Portfolio Table `json:"portfolio"`
	// Milestones holds dated deliverables per initiative.
	Milestones Table `json:"milestones"`
	// Risks holds the risk register.
	Risks Table `json:"risks"`
	// Extras holds non-canonical sheets in workbook order, unprocessed.
	Extras []Table `json:"extras,omitempty"`
	// SourceName identifies the upload or the sample set.
	SourceName string `json:"source_name"`
	// Warnings lists sheets that were missing or could not be read.
	Warnings []string `json:"warnings,omitempty"`
}

// Tables returns the three canonical tables in sheet order.
func (s Scorecard) Tables() []Table {
	return []Table{s.Portfolio, s.Milestones, s.Risks}
}

// AllTables returns the canonical tables followed by the passthrough sheets.
func (s Scorecard) AllTables() []Table {
	return append(s.Tables(), s.Extras...)
}
