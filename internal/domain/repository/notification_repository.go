package repository

import (
	"context"

	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
)

// NotificationRepository defines the durable notification log consumed by the
// delivery surface.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	// ListByUser returns the recipient's notifications newest first.
	ListByUser(ctx context.Context, userID string) ([]entity.Notification, error)
	MarkRead(ctx context.Context, id string) error
}
