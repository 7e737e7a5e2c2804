package models

// Label is a canonical status bucket.
type Label string

// Strict vocabulary used for portfolio health and milestone status.
const (
	StatusOnTrack    Label = "On Track"
	StatusWatch      Label = "Watch"
	StatusAtRisk     Label = "At Risk"
	StatusOnHold     Label = "On Hold"
	StatusNotStarted Label = "Not Started"
	StatusComplete   Label = "Complete"
	StatusUnknown    Label = "Unknown"
)

// Loose RAG vocabulary used where free-form status text is shown as-is.
const (
	RAGGreen Label = "Green"
	RAGAmber Label = "Amber"
	RAGRed   Label = "Red"
)

// StatusOrder is the display order for strict labels, most severe first.
var StatusOrder = []Label{
	StatusAtRisk,
	StatusWatch,
	StatusOnHold,
	StatusNotStarted,
	StatusOnTrack,
	StatusComplete,
	StatusUnknown,
}

// StatusColors maps strict labels to their chart colours.
var StatusColors = map[Label]string{
	StatusAtRisk:     "#D64541",
	StatusWatch:      "#E3B341",
	StatusOnHold:     "#8E44AD",
	StatusNotStarted: "#95A5A6",
	StatusOnTrack:    "#2ECC71",
	StatusComplete:   "#1ABC9C",
	StatusUnknown:    "#BDC3C7",
}

// String returns the label text.
func (l Label) String() string {
	return string(l)
}

// IsStrict reports whether l belongs to the strict vocabulary.
func (l Label) IsStrict() bool {
	for _, s := range StatusOrder {
		if s == l {
			return true
		}
	}
	return false
}

// StatusTally counts rows per label.
type StatusTally map[Label]int

// Total returns the sum of all counts.
func (t StatusTally) Total() int {
	n := 0
	for _, c := range t {
		n += c
	}
	return n
}

// StatusReport is the roll-up of status columns across a set of tables.
type StatusReport struct {
	// Overall merges the tallies of every covered table.
	Overall StatusTally `json:"overall"`
	// ByTable holds one tally per table that has a status column.
	ByTable map[string]StatusTally `json:"by_table"`
	// StatusColumns maps table name to the column the tally was taken from.
	StatusColumns map[string]string `json:"status_columns"`
	// MissingStatus lists tables without a status-like column, in input order.
	MissingStatus []string `json:"missing_status"`
}
