package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
	"github.com/oksasatya/sharejourney-api/internal/domain/repository"
)

func likeTable(kind entity.TargetKind) (table, targetCol string, err error) {
	switch kind {
	case entity.TargetJourney:
		return "journey_likes", "journey_id", nil
	case entity.TargetPost:
		return "post_likes", "post_id", nil
	default:
		return "", "", fmt.Errorf("unknown like target kind %q", kind)
	}
}

type LikeRepository struct {
	pool *pgxpool.Pool
}

func NewLikeRepository(pool *pgxpool.Pool) *LikeRepository {
	return &LikeRepository{pool: pool}
}

// Toggle is a single constraint-backed upsert: insert active, or flip the
// existing row. Concurrent toggles on the same (user, target) serialize on
// the unique index and can never produce a second row. The xmax trick
// distinguishes a fresh insert from a conflict update.
func (r *LikeRepository) Toggle(ctx context.Context, userID string, target entity.TargetRef) (entity.Like, bool, error) {
	table, targetCol, err := likeTable(target.Kind)
	if err != nil {
		return entity.Like{}, false, err
	}
	like := entity.Like{Target: target, UserID: userID}
	var created bool
	err = r.pool.QueryRow(ctx, `
		INSERT INTO `+table+` (`+targetCol+`, user_id)
		VALUES ($1, $2)
		ON CONFLICT (`+targetCol+`, user_id) DO UPDATE
			SET active = NOT `+table+`.active, updated_at = now()
		RETURNING id, active, created_at, updated_at, (xmax = 0)
	`, target.ID, userID).Scan(&like.ID, &like.Active, &like.CreatedAt, &like.UpdatedAt, &created)
	if err != nil {
		return entity.Like{}, false, err
	}
	return like, created, nil
}

func (r *LikeRepository) CountActive(ctx context.Context, target entity.TargetRef) (int, error) {
	table, targetCol, err := likeTable(target.Kind)
	if err != nil {
		return 0, err
	}
	var n int
	err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM `+table+` WHERE `+targetCol+` = $1 AND active`, target.ID).Scan(&n)
	return n, err
}

func (r *LikeRepository) IsActive(ctx context.Context, userID string, target entity.TargetRef) (bool, error) {
	table, targetCol, err := likeTable(target.Kind)
	if err != nil {
		return false, err
	}
	var active bool
	err = r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM `+table+` WHERE `+targetCol+` = $1 AND user_id = $2 AND active)
	`, target.ID, userID).Scan(&active)
	return active, err
}

var _ repository.LikeRepository = (*LikeRepository)(nil)
