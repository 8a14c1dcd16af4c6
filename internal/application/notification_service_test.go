package application

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/sharejourney-api/internal/domain/apperror"
	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
	"github.com/oksasatya/sharejourney-api/pkg/mailer"
)

func TestMarkReadRecipientOnly(t *testing.T) {
	marked := false
	svc := &NotificationService{Notifications: &fakeNotificationRepo{
		GetFn: func(_ context.Context, id string) (*entity.Notification, error) {
			return &entity.Notification{ID: id, UserID: "member"}, nil
		},
		MarkFn: func(_ context.Context, id string) error {
			marked = true
			return nil
		},
	}}

	err := svc.MarkRead(context.Background(), "other", "n1")
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.False(t, marked)

	require.NoError(t, svc.MarkRead(context.Background(), "member", "n1"))
	assert.True(t, marked)
}

func TestRedirectPrefersPostOverJourney(t *testing.T) {
	postID, journeyID := "p1", "j1"
	svc := &NotificationService{Notifications: &fakeNotificationRepo{
		GetFn: func(_ context.Context, id string) (*entity.Notification, error) {
			return &entity.Notification{ID: id, UserID: "member", PostID: &postID, JourneyID: &journeyID}, nil
		},
		MarkFn: func(_ context.Context, id string) error { return nil },
	}}

	kind, id, err := svc.Redirect(context.Background(), "member", "n1")
	require.NoError(t, err)
	assert.Equal(t, entity.TargetPost, kind)
	assert.Equal(t, "p1", id)
}

func TestRedirectFallsBackToJourney(t *testing.T) {
	journeyID := "j1"
	svc := &NotificationService{Notifications: &fakeNotificationRepo{
		GetFn: func(_ context.Context, id string) (*entity.Notification, error) {
			return &entity.Notification{ID: id, UserID: "member", JourneyID: &journeyID}, nil
		},
		MarkFn: func(_ context.Context, id string) error { return nil },
	}}

	kind, id, err := svc.Redirect(context.Background(), "member", "n1")
	require.NoError(t, err)
	assert.Equal(t, entity.TargetJourney, kind)
	assert.Equal(t, "j1", id)
}

func TestNotifierSwallowsRepoFailure(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(nopWriter{})
	n := &Notifier{
		Repo: &fakeNotificationRepo{CreateFn: func(_ context.Context, _ *entity.Notification) error {
			return errors.New("db down")
		}},
		Pub:    &fakePublisher{},
		Logger: logger,
	}

	// must not panic or propagate the error
	n.Notify(context.Background(), &entity.Notification{UserID: "member", Message: "hi"})
}

func TestNotifierSwallowsPublishFailure(t *testing.T) {
	repo := &fakeNotificationRepo{}
	logger := logrus.New()
	logger.SetOutput(nopWriter{})
	n := &Notifier{
		Repo:   repo,
		Pub:    &fakePublisher{Err: errors.New("broker down")},
		Logger: logger,
	}

	n.Notify(context.Background(), &entity.Notification{UserID: "member", Message: "hi"})
	// row persisted even though the relay failed; the worker picks it up later
	assert.Len(t, repo.Created, 1)
}

func TestNotifierRelaysJob(t *testing.T) {
	repo := &fakeNotificationRepo{}
	pub := &fakePublisher{}
	n := newTestNotifier(repo, pub)
	journeyID := "j1"

	n.Notify(context.Background(), &entity.Notification{
		UserID:    "member",
		JourneyID: &journeyID,
		Message:   "Olive Owner approved you into their journey.",
	})

	require.Len(t, pub.Published, 1)
	job, ok := pub.Published[0].(mailer.NotificationJob)
	require.True(t, ok)
	assert.Equal(t, "member", job.RecipientID)
	require.NotNil(t, job.JourneyID)
	assert.Equal(t, "j1", *job.JourneyID)
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
