package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/sharejourney-api/internal/domain/apperror"
	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
)

func newCommentService(comments *fakeCommentRepo, journeys *fakeJourneyRepo, notes *fakeNotificationRepo) *CommentService {
	return &CommentService{
		Comments: comments,
		Journeys: journeys,
		Users:    &fakeUserRepo{GetByIDFn: userGetter(testUsers())},
		Notifier: newTestNotifier(notes, &fakePublisher{}),
	}
}

func lockedJourneyRepo() *fakeJourneyRepo {
	return &fakeJourneyRepo{GetByIDFn: func(_ context.Context, id string) (*entity.Journey, error) {
		j := activeJourney()
		j.LockComments = true
		return j, nil
	}}
}

func TestAddCommentLockBlocksNonOwner(t *testing.T) {
	svc := newCommentService(&fakeCommentRepo{}, lockedJourneyRepo(), &fakeNotificationRepo{})

	_, err := svc.Add(context.Background(), "member", entity.JourneyTarget("j1"), "hi")
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestAddCommentLockAllowsOwner(t *testing.T) {
	notes := &fakeNotificationRepo{}
	created := false
	svc := newCommentService(
		&fakeCommentRepo{CreateFn: func(_ context.Context, c *entity.Comment) error {
			created = true
			c.ID = "c1"
			return nil
		}},
		lockedJourneyRepo(),
		notes,
	)

	c, err := svc.Add(context.Background(), "owner", entity.JourneyTarget("j1"), "still open for me")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Nil(t, c.ParentID)
	// Owner commenting on their own journey still produces a notification.
	require.Len(t, notes.Created, 1)
	assert.Equal(t, "owner", notes.Created[0].UserID)
}

func TestAddCommentNotifiesJourneyOwner(t *testing.T) {
	notes := &fakeNotificationRepo{}
	svc := newCommentService(
		&fakeCommentRepo{CreateFn: func(_ context.Context, c *entity.Comment) error { return nil }},
		&fakeJourneyRepo{GetByIDFn: func(_ context.Context, id string) (*entity.Journey, error) {
			return activeJourney(), nil
		}},
		notes,
	)

	_, err := svc.Add(context.Background(), "member", entity.JourneyTarget("j1"), "take me with you")
	require.NoError(t, err)
	require.Len(t, notes.Created, 1)
	assert.Equal(t, "owner", notes.Created[0].UserID)
	assert.Contains(t, notes.Created[0].Message, "Manny Member")
}

func TestAddCommentEmptyContent(t *testing.T) {
	svc := newCommentService(&fakeCommentRepo{}, &fakeJourneyRepo{}, &fakeNotificationRepo{})

	_, err := svc.Add(context.Background(), "member", entity.JourneyTarget("j1"), "   ")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestReplyDoesNotNotify(t *testing.T) {
	notes := &fakeNotificationRepo{}
	svc := newCommentService(
		&fakeCommentRepo{
			GetByIDFn: func(_ context.Context, kind entity.TargetKind, id string) (*entity.Comment, error) {
				return &entity.Comment{ID: id, Target: entity.JourneyTarget("j1"), UserID: "owner"}, nil
			},
			CreateFn: func(_ context.Context, c *entity.Comment) error { return nil },
		},
		&fakeJourneyRepo{},
		notes,
	)

	c, err := svc.Reply(context.Background(), "member", entity.JourneyTarget("j1"), "c1", "me too")
	require.NoError(t, err)
	require.NotNil(t, c.ParentID)
	assert.Equal(t, "c1", *c.ParentID)
	assert.Empty(t, notes.Created)
}

func TestReplyParentMustMatchTarget(t *testing.T) {
	svc := newCommentService(
		&fakeCommentRepo{GetByIDFn: func(_ context.Context, kind entity.TargetKind, id string) (*entity.Comment, error) {
			return &entity.Comment{ID: id, Target: entity.JourneyTarget("other-journey")}, nil
		}},
		&fakeJourneyRepo{},
		&fakeNotificationRepo{},
	)

	_, err := svc.Reply(context.Background(), "member", entity.JourneyTarget("j1"), "c1", "hi")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateCommentAuthorOnly(t *testing.T) {
	svc := newCommentService(
		&fakeCommentRepo{
			GetByIDFn: func(_ context.Context, kind entity.TargetKind, id string) (*entity.Comment, error) {
				return &entity.Comment{ID: id, Target: entity.JourneyTarget("j1"), UserID: "member"}, nil
			},
			UpdateContentFn: func(_ context.Context, kind entity.TargetKind, id, content string) error {
				return nil
			},
		},
		&fakeJourneyRepo{},
		&fakeNotificationRepo{},
	)

	err := svc.Update(context.Background(), "other", entity.TargetJourney, "c1", "edited")
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	assert.NoError(t, svc.Update(context.Background(), "member", entity.TargetJourney, "c1", "edited"))
}

func TestDeleteCommentAuthorOnly(t *testing.T) {
	deleted := false
	svc := newCommentService(
		&fakeCommentRepo{
			GetByIDFn: func(_ context.Context, kind entity.TargetKind, id string) (*entity.Comment, error) {
				return &entity.Comment{ID: id, Target: entity.PostTarget("p1"), UserID: "member"}, nil
			},
			DeleteFn: func(_ context.Context, kind entity.TargetKind, id string) error {
				deleted = true
				return nil
			},
		},
		&fakeJourneyRepo{},
		&fakeNotificationRepo{},
	)

	err := svc.Delete(context.Background(), "owner", entity.TargetPost, "c1")
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.False(t, deleted)

	require.NoError(t, svc.Delete(context.Background(), "member", entity.TargetPost, "c1"))
	assert.True(t, deleted)
}

func TestListRootsAssemblesTree(t *testing.T) {
	root1 := &entity.Comment{ID: "r1", Target: entity.JourneyTarget("j1")}
	root2 := &entity.Comment{ID: "r2", Target: entity.JourneyTarget("j1")}
	reply := &entity.Comment{ID: "c3", Target: entity.JourneyTarget("j1"), ParentID: strPtr("r1")}
	nested := &entity.Comment{ID: "c4", Target: entity.JourneyTarget("j1"), ParentID: strPtr("c3")}

	svc := newCommentService(
		&fakeCommentRepo{ListByTargetFn: func(_ context.Context, target entity.TargetRef) ([]*entity.Comment, error) {
			return []*entity.Comment{root1, reply, root2, nested}, nil
		}},
		&fakeJourneyRepo{},
		&fakeNotificationRepo{},
	)

	roots, err := svc.ListRoots(context.Background(), entity.JourneyTarget("j1"))
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, "r1", roots[0].ID)
	assert.Equal(t, "r2", roots[1].ID)
	require.Len(t, roots[0].Replies, 1)
	assert.Equal(t, "c3", roots[0].Replies[0].ID)
	require.Len(t, roots[0].Replies[0].Replies, 1)
	assert.Equal(t, "c4", roots[0].Replies[0].Replies[0].ID)
	assert.Empty(t, roots[1].Replies)
}

func strPtr(s string) *string { return &s }
