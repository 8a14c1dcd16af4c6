// Package repository defines the persistence interfaces the application layer
// depends on. Implementations live in internal/infrastructure/postgres.
package repository

import (
	"context"

	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
)

// UserRepository defines user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	// Deactivate soft-deletes the account by clearing is_active.
	Deactivate(ctx context.Context, id string) error
	// EmailTaken and PhoneTaken check uniqueness excluding the given user.
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)
	PhoneTaken(ctx context.Context, phone, excludeID string) (bool, error)
}
