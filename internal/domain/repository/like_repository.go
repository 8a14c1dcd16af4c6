package repository

import (
	"context"

	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
)

// LikeRepository defines like persistence with constraint-backed toggle
// semantics: one row per (user, target), flipped in a single upsert so
// concurrent toggles never produce duplicates.
type LikeRepository interface {
	// Toggle creates the like (active) or flips the existing row. It reports
	// whether the row was newly created; notifications fire only then.
	Toggle(ctx context.Context, userID string, target entity.TargetRef) (like entity.Like, created bool, err error)
	CountActive(ctx context.Context, target entity.TargetRef) (int, error)
	IsActive(ctx context.Context, userID string, target entity.TargetRef) (bool, error)
}
