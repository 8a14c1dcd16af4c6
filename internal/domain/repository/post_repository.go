package repository

import (
	"context"

	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
)

// PostRepository defines post and image persistence. Images are stored with
// the post in one transaction and keep their insertion order.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	Update(ctx context.Context, p *entity.Post) error
	Delete(ctx context.Context, id string) error
	// ListByJourney returns posts newest first, images attached.
	ListByJourney(ctx context.Context, journeyID string) ([]entity.Post, error)
	Stats(ctx context.Context, postID, viewerID string) (entity.PostStats, error)
	// LatestLocationByUser returns the location of the user's most recent
	// post, or nil when the user has never posted.
	LatestLocationByUser(ctx context.Context, userID string) (*entity.PostLocation, error)
}
