package entity

import "time"

// TargetKind discriminates the two commentable/likeable entity kinds. Storage
// keeps a separate table per kind; the engines share one algorithm.
type TargetKind string

const (
	TargetJourney TargetKind = "journey"
	TargetPost    TargetKind = "post"
)

// TargetRef identifies a journey or post as the target of a comment or like.
type TargetRef struct {
	Kind TargetKind
	ID   string
}

// JourneyTarget builds a TargetRef for a journey.
func JourneyTarget(id string) TargetRef { return TargetRef{Kind: TargetJourney, ID: id} }

// PostTarget builds a TargetRef for a post.
func PostTarget(id string) TargetRef { return TargetRef{Kind: TargetPost, ID: id} }

// Comment is attached to exactly one journey or post. A nil ParentID marks a
// root comment; replies reference a parent of the same kind and target,
// forming a finite tree.
type Comment struct {
	ID        string
	Target    TargetRef
	UserID    string
	Content   string
	ParentID  *string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Resolved at render time, not persisted.
	Author  *User
	Replies []*Comment
	// IsMember reports whether the author holds an approved participation in
	// the target journey. Populated for journey comments only; informational.
	IsMember *bool
}

// Like is unique per (user, target). Repeat interactions flip Active instead
// of creating or deleting rows.
type Like struct {
	ID        string
	Target    TargetRef
	UserID    string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
