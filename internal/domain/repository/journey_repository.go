package repository

import (
	"context"
	"time"

	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
)

// JourneyStatistics are the aggregate counts rendered by the admin dashboard.
type JourneyStatistics struct {
	Total              int
	Active             int
	Completed          int
	CompletedThisMonth int
}

// JourneyRepository defines journey lifecycle persistence.
type JourneyRepository interface {
	Create(ctx context.Context, j *entity.Journey) error
	GetByID(ctx context.Context, id string) (*entity.Journey, error)
	Update(ctx context.Context, j *entity.Journey) error
	// LockComments sets the lock flag. There is no unlock.
	LockComments(ctx context.Context, id string) error
	// Complete clears the active flag. Completing twice is a no-op.
	Complete(ctx context.Context, id string) error
	// ListActive returns in-progress journeys, newest first.
	ListActive(ctx context.Context) ([]entity.Journey, error)
	ListByCreator(ctx context.Context, userID string) ([]entity.Journey, error)
	// ListForUser returns journeys the user owns plus journeys where the user
	// holds an approved participation.
	ListForUser(ctx context.Context, userID string) ([]entity.Journey, error)
	CountByCreator(ctx context.Context, userID string) (int, error)
	// Members returns approved participants annotated with each user's most
	// recent post location. The creator is not included; the service prepends
	// it so the owner is always first.
	Members(ctx context.Context, journeyID string) ([]entity.Member, error)
	// Stats computes the read-time annotations for one journey as seen by
	// viewerID (empty for anonymous).
	Stats(ctx context.Context, journeyID, viewerID string) (entity.JourneyStats, error)
	Statistics(ctx context.Context) (JourneyStatistics, error)
	// MonthlyStatistics counts journeys created/completed inside [from, to).
	MonthlyStatistics(ctx context.Context, from, to time.Time) (JourneyStatistics, error)
}

// ParticipationRepository defines membership persistence. Uniqueness of
// (journey, user) is enforced by the storage layer.
type ParticipationRepository interface {
	GetByJourneyAndUser(ctx context.Context, journeyID, userID string) (*entity.Participation, error)
	// Approve looks up or creates the participation and marks it approved.
	// It reports false when the user already held an approved membership.
	Approve(ctx context.Context, journeyID, userID string) (newlyApproved bool, err error)
	// Revoke clears is_approved on an existing approved participation and
	// returns apperror.ErrNotFound when none exists. History is retained.
	Revoke(ctx context.Context, journeyID, userID string) error
	// SetRatingAndRecompute stores the member's rating and, in the same
	// transaction, recomputes the journey creator's aggregate rate as the
	// mean over all of that creator's journeys' approved participations,
	// rounded to one decimal. It returns apperror.ErrNotFound when the user
	// has no approved participation in the journey.
	SetRatingAndRecompute(ctx context.Context, journeyID, userID string, rating int) (aggregate *float64, err error)
}
