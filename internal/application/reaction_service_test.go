package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
)

// memLikeRepo simulates the constraint-backed toggle: one row per
// (user, target), flipped in place.
type memLikeRepo struct {
	rows map[string]*entity.Like
}

func likeKey(userID string, target entity.TargetRef) string {
	return userID + "|" + string(target.Kind) + "|" + target.ID
}

func (m *memLikeRepo) Toggle(_ context.Context, userID string, target entity.TargetRef) (entity.Like, bool, error) {
	if m.rows == nil {
		m.rows = map[string]*entity.Like{}
	}
	k := likeKey(userID, target)
	if row, ok := m.rows[k]; ok {
		row.Active = !row.Active
		return *row, false, nil
	}
	row := &entity.Like{ID: k, Target: target, UserID: userID, Active: true}
	m.rows[k] = row
	return *row, true, nil
}

func (m *memLikeRepo) CountActive(_ context.Context, target entity.TargetRef) (int, error) {
	n := 0
	for _, row := range m.rows {
		if row.Target == target && row.Active {
			n++
		}
	}
	return n, nil
}

func (m *memLikeRepo) IsActive(_ context.Context, userID string, target entity.TargetRef) (bool, error) {
	row, ok := m.rows[likeKey(userID, target)]
	return ok && row.Active, nil
}

func newReactionService(likes *memLikeRepo, notes *fakeNotificationRepo) *ReactionService {
	return &ReactionService{
		Likes: likes,
		Journeys: &fakeJourneyRepo{GetByIDFn: func(_ context.Context, id string) (*entity.Journey, error) {
			return activeJourney(), nil
		}},
		Posts: &fakePostRepo{GetByIDFn: func(_ context.Context, id string) (*entity.Post, error) {
			return &entity.Post{ID: id, JourneyID: "j1", UserID: "member"}, nil
		}},
		Users:    &fakeUserRepo{GetByIDFn: userGetter(testUsers())},
		Notifier: newTestNotifier(notes, &fakePublisher{}),
	}
}

func TestToggleLikeNotifiesOnlyOnFirstLike(t *testing.T) {
	notes := &fakeNotificationRepo{}
	svc := newReactionService(&memLikeRepo{}, notes)
	target := entity.JourneyTarget("j1")

	like, err := svc.Toggle(context.Background(), "member", target)
	require.NoError(t, err)
	assert.True(t, like.Active)
	require.Len(t, notes.Created, 1)
	assert.Equal(t, "owner", notes.Created[0].UserID)
	assert.Contains(t, notes.Created[0].Message, "liked your journey")

	// unlike
	like, err = svc.Toggle(context.Background(), "member", target)
	require.NoError(t, err)
	assert.False(t, like.Active)
	assert.Len(t, notes.Created, 1)

	// re-like: the row already exists, no second notification
	like, err = svc.Toggle(context.Background(), "member", target)
	require.NoError(t, err)
	assert.True(t, like.Active)
	assert.Len(t, notes.Created, 1)
}

func TestDoubleToggleRestoresState(t *testing.T) {
	likes := &memLikeRepo{}
	svc := newReactionService(likes, &fakeNotificationRepo{})
	target := entity.PostTarget("p1")

	_, err := svc.Toggle(context.Background(), "other", target)
	require.NoError(t, err)
	n, _ := svc.Count(context.Background(), target)
	assert.Equal(t, 1, n)

	_, err = svc.Toggle(context.Background(), "other", target)
	require.NoError(t, err)
	n, _ = svc.Count(context.Background(), target)
	assert.Equal(t, 0, n)

	active, _ := likes.IsActive(context.Background(), "other", target)
	assert.False(t, active)
	assert.Len(t, likes.rows, 1, "toggle flips the row, never duplicates it")
}

func TestToggleLikeOnPostNotifiesPostAuthor(t *testing.T) {
	notes := &fakeNotificationRepo{}
	svc := newReactionService(&memLikeRepo{}, notes)

	_, err := svc.Toggle(context.Background(), "owner", entity.PostTarget("p1"))
	require.NoError(t, err)
	require.Len(t, notes.Created, 1)
	assert.Equal(t, "member", notes.Created[0].UserID)
	require.NotNil(t, notes.Created[0].PostID)
	assert.Equal(t, "p1", *notes.Created[0].PostID)
}
