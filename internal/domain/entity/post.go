package entity

import "time"

// Post is an update a user publishes inside a journey. Images are ordered and
// owned by the post.
type Post struct {
	ID                     string
	JourneyID              string
	UserID                 string
	Content                string
	VisitPoint             string
	Latitude               *float64
	Longitude              *float64
	EstimatedTimeOfArrival string
	Images                 []Image
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Image is an opaque reference into the external asset store, resolved to a
// retrievable URL at upload time.
type Image struct {
	ID       string
	PostID   string
	URL      string
	Position int
}

// PostStats carries read-time like/comment annotations for a post.
type PostStats struct {
	Liked         bool
	LikesCount    int
	CommentsCount int
}
