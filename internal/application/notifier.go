// Package application contains the business rules of the journey-sharing
// core. Services validate inputs, enforce ownership and membership rules, and
// orchestrate repository calls; no SQL lives here.
package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
	"github.com/oksasatya/sharejourney-api/internal/domain/repository"
	"github.com/oksasatya/sharejourney-api/pkg/mailer"
)

// Publisher relays notification jobs to the delivery queue.
// helpers.RabbitPublisher satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Notifier records notifications and relays them for asynchronous delivery.
// Dispatch is fire-and-forget: the durable row is written first, then the
// queue relay; either failure is logged and swallowed so the triggering
// operation never fails because of its notification. Once the row exists the
// worker delivers at least once.
type Notifier struct {
	Repo   repository.NotificationRepository
	Pub    Publisher
	Logger *logrus.Logger
}

func NewNotifier(repo repository.NotificationRepository, pub Publisher, logger *logrus.Logger) *Notifier {
	return &Notifier{Repo: repo, Pub: pub, Logger: logger}
}

// Notify persists the notification and relays it to the queue. It never
// returns an error.
func (n *Notifier) Notify(ctx context.Context, note *entity.Notification) {
	if n == nil || n.Repo == nil {
		return
	}
	if err := n.Repo.Create(ctx, note); err != nil {
		if n.Logger != nil {
			n.Logger.WithError(err).WithField("recipient", note.UserID).Warn("notification write failed")
		}
		return
	}
	if n.Pub == nil {
		return
	}
	job := mailer.NotificationJob{
		NotificationID: note.ID,
		RecipientID:    note.UserID,
		Message:        note.Message,
		PostID:         note.PostID,
		JourneyID:      note.JourneyID,
		ActorID:        note.ActorID,
	}
	if err := n.Pub.PublishJSON(ctx, job); err != nil && n.Logger != nil {
		n.Logger.WithError(err).WithField("notification_id", note.ID).Warn("notification relay failed")
	}
}
