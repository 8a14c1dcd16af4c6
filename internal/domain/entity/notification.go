package entity

import "time"

// Notification is a fan-out record written after the mutation that triggered
// it commits. Delivery is asynchronous; once the row exists it is delivered
// at least once.
type Notification struct {
	ID        string
	UserID    string // recipient
	PostID    *string
	JourneyID *string
	Message   string
	Read      bool
	ActorID   *string
	CreatedAt time.Time
}
