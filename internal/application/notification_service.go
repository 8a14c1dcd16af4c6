package application

import (
	"context"

	"github.com/oksasatya/sharejourney-api/internal/domain/apperror"
	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
	repo "github.com/oksasatya/sharejourney-api/internal/domain/repository"
)

// NotificationService is the recipient-facing read surface over the durable
// notification log.
type NotificationService struct {
	Notifications repo.NotificationRepository
}

func (s *NotificationService) List(ctx context.Context, userID string) ([]entity.Notification, error) {
	return s.Notifications.ListByUser(ctx, userID)
}

// MarkRead flags a notification read. Only the recipient may do so.
func (s *NotificationService) MarkRead(ctx context.Context, requesterID, notificationID string) error {
	n, err := s.Notifications.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.UserID != requesterID {
		return apperror.Forbiddenf("not your notification")
	}
	return s.Notifications.MarkRead(ctx, notificationID)
}

// Redirect marks the notification read and returns the target the client
// should navigate to: the post when one is referenced, otherwise the journey.
func (s *NotificationService) Redirect(ctx context.Context, requesterID, notificationID string) (kind entity.TargetKind, id string, err error) {
	n, err := s.Notifications.GetByID(ctx, notificationID)
	if err != nil {
		return "", "", err
	}
	if n.UserID != requesterID {
		return "", "", apperror.Forbiddenf("not your notification")
	}
	if err := s.Notifications.MarkRead(ctx, notificationID); err != nil {
		return "", "", err
	}
	if n.PostID != nil {
		return entity.TargetPost, *n.PostID, nil
	}
	if n.JourneyID != nil {
		return entity.TargetJourney, *n.JourneyID, nil
	}
	return "", "", apperror.NotFoundf("notification has no destination")
}
