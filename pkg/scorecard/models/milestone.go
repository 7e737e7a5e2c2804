package models

import "time"

// Bucket places a dated event relative to the reporting date.
type Bucket string

const (
	BucketOverdue  Bucket = "Overdue"
	BucketUpcoming Bucket = "Upcoming"
)

// MilestoneEvent is one dated cell found while scanning tables.
type MilestoneEvent struct {
	// Table is the source table name.
	Table string `json:"table"`
	// Label identifies the item (initiative, owner, ...) or "Row N".
	Label string `json:"label"`
	// Date is the parsed date at midnight.
	Date time.Time `json:"date"`
	// Status is the classified status of the row, empty without a status column.
	Status Label `json:"status,omitempty"`
	// Column is the date column the event was read from.
	Column string `json:"column"`
	// DaysFromToday is the signed day offset from the reporting date.
	DaysFromToday int `json:"days_from_today"`
	// Bucket is Overdue for negative offsets, Upcoming otherwise.
	Bucket Bucket `json:"bucket"`
}

// MilestoneItem is one row of the milestone plan placed against the reporting date.
type MilestoneItem struct {
	Initiative string    `json:"initiative"`
	Milestone  string    `json:"milestone"`
	TargetDate time.Time `json:"target_date"`
	// StatusCategory is the strict classification of the row's Status.
	StatusCategory Label  `json:"status_category"`
	Owner          string `json:"owner"`
	// DaysFromToday is negative for overdue milestones.
	DaysFromToday int    `json:"days_from_today"`
	Notes         string `json:"notes"`
}
