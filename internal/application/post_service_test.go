package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/sharejourney-api/internal/domain/apperror"
	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
)

func newPostService(posts *fakePostRepo, parts *fakeParticipationRepo) *PostService {
	return &PostService{
		Posts: posts,
		Journeys: &fakeJourneyRepo{GetByIDFn: func(_ context.Context, id string) (*entity.Journey, error) {
			return activeJourney(), nil
		}},
		Participations: parts,
	}
}

func TestCreatePostRequiresMembership(t *testing.T) {
	svc := newPostService(
		&fakePostRepo{},
		&fakeParticipationRepo{GetByJourneyAndUserFn: func(_ context.Context, journeyID, userID string) (*entity.Participation, error) {
			return nil, apperror.NotFoundf("no participation")
		}},
	)

	_, err := svc.Create(context.Background(), "other", CreatePostInput{JourneyID: "j1", Content: "hello"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestCreatePostUnapprovedParticipationForbidden(t *testing.T) {
	svc := newPostService(
		&fakePostRepo{},
		&fakeParticipationRepo{GetByJourneyAndUserFn: func(_ context.Context, journeyID, userID string) (*entity.Participation, error) {
			return &entity.Participation{JourneyID: journeyID, UserID: userID, IsApproved: false}, nil
		}},
	)

	_, err := svc.Create(context.Background(), "member", CreatePostInput{JourneyID: "j1", Content: "hello"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestCreatePostOwnerAlwaysAllowed(t *testing.T) {
	created := false
	svc := newPostService(
		&fakePostRepo{CreateFn: func(_ context.Context, p *entity.Post) error {
			created = true
			return nil
		}},
		&fakeParticipationRepo{}, // must not be consulted for the owner
	)

	p, err := svc.Create(context.Background(), "owner", CreatePostInput{JourneyID: "j1", Content: "day one"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "owner", p.UserID)
}

func TestCreatePostNeedsContentOrImages(t *testing.T) {
	svc := newPostService(&fakePostRepo{}, &fakeParticipationRepo{})

	_, err := svc.Create(context.Background(), "owner", CreatePostInput{JourneyID: "j1", Content: "  "})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestUpdatePostAuthorOnly(t *testing.T) {
	svc := newPostService(
		&fakePostRepo{
			GetByIDFn: func(_ context.Context, id string) (*entity.Post, error) {
				return &entity.Post{ID: id, JourneyID: "j1", UserID: "member"}, nil
			},
			UpdateFn: func(_ context.Context, p *entity.Post) error { return nil },
		},
		&fakeParticipationRepo{},
	)

	_, err := svc.Update(context.Background(), "owner", "p1", CreatePostInput{Content: "edited"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	p, err := svc.Update(context.Background(), "member", "p1", CreatePostInput{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", p.Content)
}

func TestDeletePostAuthorOnly(t *testing.T) {
	deleted := false
	svc := newPostService(
		&fakePostRepo{
			GetByIDFn: func(_ context.Context, id string) (*entity.Post, error) {
				return &entity.Post{ID: id, JourneyID: "j1", UserID: "member"}, nil
			},
			DeleteFn: func(_ context.Context, id string) error {
				deleted = true
				return nil
			},
		},
		&fakeParticipationRepo{},
	)

	err := svc.Delete(context.Background(), "owner", "p1")
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.False(t, deleted)

	require.NoError(t, svc.Delete(context.Background(), "member", "p1"))
	assert.True(t, deleted)
}
