package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
	"github.com/oksasatya/sharejourney-api/internal/domain/repository"
)

type FollowRepository struct {
	pool *pgxpool.Pool
}

func NewFollowRepository(pool *pgxpool.Pool) *FollowRepository {
	return &FollowRepository{pool: pool}
}

// Toggle mirrors the like upsert: one row per (follower, following), active
// flipped on conflict.
func (r *FollowRepository) Toggle(ctx context.Context, followerID, followingID string) (entity.Follow, bool, error) {
	f := entity.Follow{FollowerID: followerID, FollowingID: followingID}
	var created bool
	err := r.pool.QueryRow(ctx, `
		INSERT INTO follows (follower_id, following_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, following_id) DO UPDATE
			SET active = NOT follows.active, updated_at = now()
		RETURNING id, active, created_at, updated_at, (xmax = 0)
	`, followerID, followingID).Scan(&f.ID, &f.Active, &f.CreatedAt, &f.UpdatedAt, &created)
	if err != nil {
		return entity.Follow{}, false, err
	}
	return f, created, nil
}

func (r *FollowRepository) Followers(ctx context.Context, userID string) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+prefixedUserColumns("u")+`
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.following_id = $1 AND f.active
		ORDER BY f.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (r *FollowRepository) Following(ctx context.Context, userID string) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+prefixedUserColumns("u")+`
		FROM follows f
		JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = $1 AND f.active
		ORDER BY f.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (r *FollowRepository) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	var active bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2 AND active)
	`, followerID, followingID).Scan(&active)
	return active, err
}

func (r *FollowRepository) Counts(ctx context.Context, userID string) (int, int, error) {
	var followers, following int
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM follows WHERE following_id = $1 AND active),
			(SELECT COUNT(*) FROM follows WHERE follower_id = $1 AND active)
	`, userID).Scan(&followers, &following)
	return followers, following, err
}

func prefixedUserColumns(alias string) string {
	return alias + `.id, ` + alias + `.username, ` + alias + `.first_name, ` + alias + `.last_name, ` +
		alias + `.email, COALESCE(` + alias + `.phone, ''), ` + alias + `.password_hash, ` + alias + `.avatar_url, ` +
		alias + `.rate, ` + alias + `.is_active, ` + alias + `.created_at, ` + alias + `.updated_at`
}

func collectUsers(rows pgx.Rows) ([]entity.User, error) {
	defer rows.Close()
	var out []entity.User
	for rows.Next() {
		u := entity.User{}
		if err := rows.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.Phone,
			&u.Password, &u.AvatarURL, &u.Rate, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

var _ repository.FollowRepository = (*FollowRepository)(nil)
