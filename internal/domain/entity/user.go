package entity

import "time"

// User is the aggregate root for the identity domain.
// Passwords are stored as bcrypt hashes in Password.
// Accounts are soft-deactivated via IsActive, never hard-deleted.
type User struct {
	ID        string
	Username  string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
	AvatarURL string
	// Rate is the aggregate rating derived from approved participations in
	// this user's journeys. Nil until the first rating exists.
	Rate      *float64
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns "First Last" with naive whitespace handling.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// ProfileCounts are live aggregates computed at read time, never cached.
type ProfileCounts struct {
	FollowerCount  int
	FollowingCount int
	JourneyCount   int
}
