package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/sharejourney-api/internal/domain/apperror"
	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
)

type memFollowRepo struct {
	rows map[string]*entity.Follow
}

func (m *memFollowRepo) Toggle(_ context.Context, followerID, followingID string) (entity.Follow, bool, error) {
	if m.rows == nil {
		m.rows = map[string]*entity.Follow{}
	}
	k := followerID + "|" + followingID
	if row, ok := m.rows[k]; ok {
		row.Active = !row.Active
		return *row, false, nil
	}
	row := &entity.Follow{ID: k, FollowerID: followerID, FollowingID: followingID, Active: true}
	m.rows[k] = row
	return *row, true, nil
}

func (m *memFollowRepo) Followers(_ context.Context, userID string) ([]entity.User, error) {
	var out []entity.User
	for _, row := range m.rows {
		if row.FollowingID == userID && row.Active {
			out = append(out, entity.User{ID: row.FollowerID})
		}
	}
	return out, nil
}

func (m *memFollowRepo) Following(_ context.Context, userID string) ([]entity.User, error) {
	var out []entity.User
	for _, row := range m.rows {
		if row.FollowerID == userID && row.Active {
			out = append(out, entity.User{ID: row.FollowingID})
		}
	}
	return out, nil
}

func (m *memFollowRepo) IsFollowing(_ context.Context, followerID, followingID string) (bool, error) {
	row, ok := m.rows[followerID+"|"+followingID]
	return ok && row.Active, nil
}

func (m *memFollowRepo) Counts(_ context.Context, userID string) (int, int, error) {
	followers, _ := m.Followers(context.Background(), userID)
	following, _ := m.Following(context.Background(), userID)
	return len(followers), len(following), nil
}

func newSocialService(follows *memFollowRepo) *SocialService {
	return &SocialService{
		Follows: follows,
		Users:   &fakeUserRepo{GetByIDFn: userGetter(testUsers())},
	}
}

func TestToggleFollowParity(t *testing.T) {
	follows := &memFollowRepo{}
	svc := newSocialService(follows)
	ctx := context.Background()

	// odd number of toggles ends active
	for i := 0; i < 3; i++ {
		_, err := svc.ToggleFollow(ctx, "member", "owner")
		require.NoError(t, err)
	}
	active, err := svc.IsFollowing(ctx, "member", "owner")
	require.NoError(t, err)
	assert.True(t, active)
	assert.Len(t, follows.rows, 1)

	// fourth toggle deactivates
	_, err = svc.ToggleFollow(ctx, "member", "owner")
	require.NoError(t, err)
	active, _ = svc.IsFollowing(ctx, "member", "owner")
	assert.False(t, active)
}

func TestToggleFollowSelfRejected(t *testing.T) {
	svc := newSocialService(&memFollowRepo{})

	_, err := svc.ToggleFollow(context.Background(), "member", "member")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestToggleFollowUnknownUser(t *testing.T) {
	svc := newSocialService(&memFollowRepo{})

	_, err := svc.ToggleFollow(context.Background(), "member", "ghost")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestFollowCountsAreLive(t *testing.T) {
	follows := &memFollowRepo{}
	svc := newSocialService(follows)
	ctx := context.Background()

	_, err := svc.ToggleFollow(ctx, "member", "owner")
	require.NoError(t, err)
	_, err = svc.ToggleFollow(ctx, "other", "owner")
	require.NoError(t, err)

	followers, err := svc.Followers(ctx, "owner")
	require.NoError(t, err)
	assert.Len(t, followers, 2)

	// unfollow drops out of the live count immediately
	_, err = svc.ToggleFollow(ctx, "member", "owner")
	require.NoError(t, err)
	followers, _ = svc.Followers(ctx, "owner")
	assert.Len(t, followers, 1)
}
