package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/sharejourney-api/internal/domain/apperror"
	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
)

func testUsers() map[string]*entity.User {
	return map[string]*entity.User{
		"owner":  {ID: "owner", FirstName: "Olive", LastName: "Owner"},
		"member": {ID: "member", FirstName: "Manny", LastName: "Member"},
		"other":  {ID: "other", FirstName: "Otto", LastName: "Other"},
	}
}

func activeJourney() *entity.Journey {
	return &entity.Journey{ID: "j1", CreatorID: "owner", Name: "Coast ride", Active: true}
}

func newJourneyService(journeys *fakeJourneyRepo, parts *fakeParticipationRepo, notes *fakeNotificationRepo) *JourneyService {
	return &JourneyService{
		Journeys:       journeys,
		Participations: parts,
		Users:          &fakeUserRepo{GetByIDFn: userGetter(testUsers())},
		Notifier:       newTestNotifier(notes, &fakePublisher{}),
	}
}

func TestApproveParticipantNotifiesOnFirstApproval(t *testing.T) {
	notes := &fakeNotificationRepo{}
	svc := newJourneyService(
		&fakeJourneyRepo{GetByIDFn: func(_ context.Context, id string) (*entity.Journey, error) {
			return activeJourney(), nil
		}},
		&fakeParticipationRepo{ApproveFn: func(_ context.Context, journeyID, userID string) (bool, error) {
			return true, nil
		}},
		notes,
	)

	status, err := svc.ApproveParticipant(context.Background(), "owner", "j1", "member")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, status)
	require.Len(t, notes.Created, 1)
	assert.Equal(t, "member", notes.Created[0].UserID)
	assert.Contains(t, notes.Created[0].Message, "Olive Owner")
}

func TestApproveParticipantIdempotent(t *testing.T) {
	notes := &fakeNotificationRepo{}
	svc := newJourneyService(
		&fakeJourneyRepo{GetByIDFn: func(_ context.Context, id string) (*entity.Journey, error) {
			return activeJourney(), nil
		}},
		&fakeParticipationRepo{ApproveFn: func(_ context.Context, journeyID, userID string) (bool, error) {
			return false, nil // already approved
		}},
		notes,
	)

	status, err := svc.ApproveParticipant(context.Background(), "owner", "j1", "member")
	require.NoError(t, err)
	assert.Equal(t, StatusAlreadyMember, status)
	assert.Empty(t, notes.Created, "repeat approval must not notify")
}

func TestApproveParticipantOnlyOwner(t *testing.T) {
	svc := newJourneyService(
		&fakeJourneyRepo{GetByIDFn: func(_ context.Context, id string) (*entity.Journey, error) {
			return activeJourney(), nil
		}},
		&fakeParticipationRepo{},
		&fakeNotificationRepo{},
	)

	_, err := svc.ApproveParticipant(context.Background(), "other", "j1", "member")
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestApproveParticipantCompletedJourney(t *testing.T) {
	j := activeJourney()
	j.Active = false
	svc := newJourneyService(
		&fakeJourneyRepo{GetByIDFn: func(_ context.Context, id string) (*entity.Journey, error) {
			return j, nil
		}},
		&fakeParticipationRepo{},
		&fakeNotificationRepo{},
	)

	_, err := svc.ApproveParticipant(context.Background(), "owner", "j1", "member")
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestRateRejectsOutOfRange(t *testing.T) {
	svc := newJourneyService(&fakeJourneyRepo{}, &fakeParticipationRepo{}, &fakeNotificationRepo{})

	for _, r := range []int{0, 6, -1} {
		_, err := svc.Rate(context.Background(), "member", "j1", r)
		assert.ErrorIs(t, err, apperror.ErrValidation, "rating %d", r)
	}
}

func TestRateNonMemberForbidden(t *testing.T) {
	svc := newJourneyService(
		&fakeJourneyRepo{GetByIDFn: func(_ context.Context, id string) (*entity.Journey, error) {
			return activeJourney(), nil
		}},
		&fakeParticipationRepo{SetRatingAndRecomputeFn: func(_ context.Context, journeyID, userID string, rating int) (*float64, error) {
			return nil, apperror.NotFoundf("no approved participation")
		}},
		&fakeNotificationRepo{},
	)

	_, err := svc.Rate(context.Background(), "other", "j1", 4)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.NotErrorIs(t, err, apperror.ErrNotFound)
}

func TestRateReturnsRecomputedAggregate(t *testing.T) {
	agg := 4.3
	svc := newJourneyService(
		&fakeJourneyRepo{GetByIDFn: func(_ context.Context, id string) (*entity.Journey, error) {
			return activeJourney(), nil
		}},
		&fakeParticipationRepo{SetRatingAndRecomputeFn: func(_ context.Context, journeyID, userID string, rating int) (*float64, error) {
			assert.Equal(t, 5, rating)
			return &agg, nil
		}},
		&fakeNotificationRepo{},
	)

	got, err := svc.Rate(context.Background(), "member", "j1", 5)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.InDelta(t, 4.3, *got, 0.001)
}

func TestLockOnlyOwner(t *testing.T) {
	locked := false
	svc := newJourneyService(
		&fakeJourneyRepo{
			GetByIDFn: func(_ context.Context, id string) (*entity.Journey, error) {
				return activeJourney(), nil
			},
			LockCommentsFn: func(_ context.Context, id string) error {
				locked = true
				return nil
			},
		},
		&fakeParticipationRepo{},
		&fakeNotificationRepo{},
	)

	err := svc.Lock(context.Background(), "member", "j1")
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.False(t, locked)

	require.NoError(t, svc.Lock(context.Background(), "owner", "j1"))
	assert.True(t, locked)
}

func TestMembersCreatorFirstWithLatestPost(t *testing.T) {
	loc := &entity.PostLocation{VisitPoint: "Lighthouse"}
	svc := newJourneyService(
		&fakeJourneyRepo{
			GetByIDFn: func(_ context.Context, id string) (*entity.Journey, error) {
				return activeJourney(), nil
			},
			MembersFn: func(_ context.Context, journeyID string) ([]entity.Member, error) {
				return []entity.Member{{UserID: "member", FullName: "Manny Member"}}, nil
			},
		},
		&fakeParticipationRepo{},
		&fakeNotificationRepo{},
	)
	svc.Posts = &fakePostRepo{LatestLocationByUserFn: func(_ context.Context, userID string) (*entity.PostLocation, error) {
		assert.Equal(t, "owner", userID)
		return loc, nil
	}}

	members, err := svc.Members(context.Background(), "j1")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.True(t, members[0].Owner)
	assert.Equal(t, "owner", members[0].UserID)
	assert.Equal(t, loc, members[0].LastPost)
	assert.False(t, members[1].Owner)
}

func TestApproveByCommentWrongJourney(t *testing.T) {
	svc := newJourneyService(&fakeJourneyRepo{}, &fakeParticipationRepo{}, &fakeNotificationRepo{})
	svc.Comments = &fakeCommentRepo{GetByIDFn: func(_ context.Context, kind entity.TargetKind, id string) (*entity.Comment, error) {
		return &entity.Comment{ID: id, Target: entity.JourneyTarget("j2"), UserID: "member"}, nil
	}}

	_, err := svc.ApproveByComment(context.Background(), "owner", "j1", "c1")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestMonthlyStatisticsRejectsBadMonth(t *testing.T) {
	svc := newJourneyService(&fakeJourneyRepo{}, &fakeParticipationRepo{}, &fakeNotificationRepo{})

	_, err := svc.MonthlyStatistics(context.Background(), "2026-13")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCreateValidatesRequiredFields(t *testing.T) {
	svc := newJourneyService(&fakeJourneyRepo{}, &fakeParticipationRepo{}, &fakeNotificationRepo{})

	_, err := svc.Create(context.Background(), "owner", CreateJourneyInput{Name: "  "})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.Create(context.Background(), "owner", CreateJourneyInput{Name: "Trip", StartLocation: "A"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}
