package entity

import "time"

// Follow is unique per (follower, following) with toggle semantics on Active.
type Follow struct {
	ID          string
	FollowerID  string
	FollowingID string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
