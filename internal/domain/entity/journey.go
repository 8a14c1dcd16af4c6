package entity

import "time"

// Journey is a trip owned by its creator. Active journeys are in progress;
// completing a journey sets Active to false, after which no new participation
// approvals are accepted.
type Journey struct {
	ID            string
	CreatorID     string
	Name          string
	Background    string
	// LockComments closes the journey to comments from non-owners. There is
	// no unlock operation on the public surface.
	LockComments  bool
	StartLocation string
	EndLocation   string
	DepartureTime string
	Active        bool
	Distance      string
	EstimatedTime *time.Duration
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// JourneyStats carries the read-time annotations rendered alongside a journey.
type JourneyStats struct {
	Liked         bool
	LikesCount    int
	CommentsCount int
	AverageRating float64
}

// Participation joins a user to a journey. Membership is gated by IsApproved;
// removal flips the flag back rather than deleting the row, preserving history.
// At most one row exists per (journey, user).
type Participation struct {
	ID         string
	JourneyID  string
	UserID     string
	JoinedAt   *time.Time
	IsApproved bool
	// Rating is set once by the member after active participation, 1..5.
	Rating    *int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Member is an entry in a journey's member listing. The creator appears first
// with Owner set; every member carries the location of their most recent post.
type Member struct {
	UserID   string
	Owner    bool
	FullName string
	Username string
	Avatar   string
	LastPost *PostLocation
}

// PostLocation is the location snapshot of a member's latest post.
type PostLocation struct {
	VisitPoint string
	Latitude   *float64
	Longitude  *float64
	CreatedAt  time.Time
}
