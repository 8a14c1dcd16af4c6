package repository

import (
	"context"

	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
)

// FollowRepository defines follow persistence with the same toggle semantics
// as likes, backed by the (follower, following) uniqueness constraint.
type FollowRepository interface {
	Toggle(ctx context.Context, followerID, followingID string) (follow entity.Follow, created bool, err error)
	// Followers returns the users actively following userID.
	Followers(ctx context.Context, userID string) ([]entity.User, error)
	// Following returns the users userID actively follows.
	Following(ctx context.Context, userID string) ([]entity.User, error)
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
	// Counts computes live follower/following totals over active rows.
	Counts(ctx context.Context, userID string) (followers, following int, err error)
}
