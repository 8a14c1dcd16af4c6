package entity

import "time"

// Report is an immutable record of one user reporting another. Duplicate
// reports from the same reporter are allowed and each counts.
type Report struct {
	ID         string
	ReporterID string
	ReportedID string
	Reason     string
	ProfileID  string
	CreatedAt  time.Time
}

// ReportedUserProfile aggregates reports against one user. ReportCount is an
// incremental counter; IsProcessed is flipped by the moderation surface.
type ReportedUserProfile struct {
	ID          string
	UserID      string
	ReportCount int
	IsProcessed bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
