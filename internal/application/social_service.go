package application

import (
	"context"

	"github.com/oksasatya/sharejourney-api/internal/domain/apperror"
	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
	repo "github.com/oksasatya/sharejourney-api/internal/domain/repository"
)

// SocialService implements the follow graph. Follows toggle like likes and
// produce no notification.
type SocialService struct {
	Follows repo.FollowRepository
	Users   repo.UserRepository
}

// ToggleFollow flips the follower's edge toward followingID.
func (s *SocialService) ToggleFollow(ctx context.Context, followerID, followingID string) (entity.Follow, error) {
	if followerID == followingID {
		return entity.Follow{}, apperror.Validationf("cannot follow yourself")
	}
	if _, err := s.Users.GetByID(ctx, followingID); err != nil {
		return entity.Follow{}, err
	}
	follow, _, err := s.Follows.Toggle(ctx, followerID, followingID)
	return follow, err
}

func (s *SocialService) Followers(ctx context.Context, userID string) ([]entity.User, error) {
	return s.Follows.Followers(ctx, userID)
}

func (s *SocialService) Following(ctx context.Context, userID string) ([]entity.User, error) {
	return s.Follows.Following(ctx, userID)
}

func (s *SocialService) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	return s.Follows.IsFollowing(ctx, followerID, followingID)
}
