package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/sharejourney-api/internal/domain/apperror"
	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
	"github.com/oksasatya/sharejourney-api/internal/domain/repository"
)

type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

func (r *NotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO notifications (user_id, post_id, journey_id, message, actor_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, read, created_at
	`, n.UserID, n.PostID, n.JourneyID, n.Message, n.ActorID)
	return row.Scan(&n.ID, &n.Read, &n.CreatedAt)
}

func (r *NotificationRepository) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	n := &entity.Notification{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, post_id, journey_id, message, read, actor_id, created_at
		FROM notifications
		WHERE id = $1
	`, id).Scan(&n.ID, &n.UserID, &n.PostID, &n.JourneyID, &n.Message, &n.Read, &n.ActorID, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("notification: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return n, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) ([]entity.Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, post_id, journey_id, message, read, actor_id, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Notification
	for rows.Next() {
		n := entity.Notification{}
		if err := rows.Scan(&n.ID, &n.UserID, &n.PostID, &n.JourneyID, &n.Message,
			&n.Read, &n.ActorID, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("notification: %w", apperror.ErrNotFound)
	}
	return nil
}

var _ repository.NotificationRepository = (*NotificationRepository)(nil)
