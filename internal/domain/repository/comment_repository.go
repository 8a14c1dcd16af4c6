package repository

import (
	"context"

	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
)

// CommentRepository defines comment persistence for both target kinds.
// Storage keeps one table per kind; the target reference selects it.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, kind entity.TargetKind, id string) (*entity.Comment, error)
	UpdateContent(ctx context.Context, kind entity.TargetKind, id, content string) error
	// Delete removes the comment; descendant replies go with it via the
	// storage-layer cascade on parent_id.
	Delete(ctx context.Context, kind entity.TargetKind, id string) error
	// ListByTarget returns every comment for the target ordered by creation
	// time, authors resolved. For journey targets each comment carries the
	// author's approved-membership flag. Tree assembly happens in the service.
	ListByTarget(ctx context.Context, target entity.TargetRef) ([]*entity.Comment, error)
	Count(ctx context.Context, target entity.TargetRef) (int, error)
}
