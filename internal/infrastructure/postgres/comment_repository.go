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

// commentTable maps a target kind to its table and target column. One table
// per kind, one shared algorithm.
func commentTable(kind entity.TargetKind) (table, targetCol string, err error) {
	switch kind {
	case entity.TargetJourney:
		return "journey_comments", "journey_id", nil
	case entity.TargetPost:
		return "post_comments", "post_id", nil
	default:
		return "", "", fmt.Errorf("unknown comment target kind %q", kind)
	}
}

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	table, targetCol, err := commentTable(c.Target.Kind)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO `+table+` (`+targetCol+`, user_id, content, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, c.Target.ID, c.UserID, c.Content, c.ParentID)
	return row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CommentRepository) GetByID(ctx context.Context, kind entity.TargetKind, id string) (*entity.Comment, error) {
	table, targetCol, err := commentTable(kind)
	if err != nil {
		return nil, err
	}
	c := &entity.Comment{Target: entity.TargetRef{Kind: kind}}
	err = r.pool.QueryRow(ctx, `
		SELECT id, `+targetCol+`, user_id, content, parent_id, created_at, updated_at
		FROM `+table+`
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Target.ID, &c.UserID, &c.Content, &c.ParentID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("comment: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return c, nil
}

func (r *CommentRepository) UpdateContent(ctx context.Context, kind entity.TargetKind, id, content string) error {
	table, _, err := commentTable(kind)
	if err != nil {
		return err
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE `+table+` SET content = $1, updated_at = now() WHERE id = $2
	`, content, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("comment: %w", apperror.ErrNotFound)
	}
	return nil
}

// Delete removes one comment row; the ON DELETE CASCADE on parent_id takes
// every transitive reply with it.
func (r *CommentRepository) Delete(ctx context.Context, kind entity.TargetKind, id string) error {
	table, _, err := commentTable(kind)
	if err != nil {
		return err
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("comment: %w", apperror.ErrNotFound)
	}
	return nil
}

func (r *CommentRepository) ListByTarget(ctx context.Context, target entity.TargetRef) ([]*entity.Comment, error) {
	table, targetCol, err := commentTable(target.Kind)
	if err != nil {
		return nil, err
	}

	// Journey comments carry the author's approved-membership flag, resolved
	// against the comment's own journey.
	memberExpr := "NULL::boolean"
	if target.Kind == entity.TargetJourney {
		memberExpr = `EXISTS (
			SELECT 1 FROM participations p
			WHERE p.journey_id = c.journey_id AND p.user_id = c.user_id AND p.is_approved
		)`
	}

	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.`+targetCol+`, c.user_id, c.content, c.parent_id, c.created_at, c.updated_at,
		       u.id, u.username, u.first_name, u.last_name, u.avatar_url,
		       `+memberExpr+`
		FROM `+table+` c
		JOIN users u ON u.id = c.user_id
		WHERE c.`+targetCol+` = $1
		ORDER BY c.created_at
	`, target.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Comment
	for rows.Next() {
		c := &entity.Comment{Target: entity.TargetRef{Kind: target.Kind}}
		author := &entity.User{}
		if err := rows.Scan(&c.ID, &c.Target.ID, &c.UserID, &c.Content, &c.ParentID,
			&c.CreatedAt, &c.UpdatedAt,
			&author.ID, &author.Username, &author.FirstName, &author.LastName, &author.AvatarURL,
			&c.IsMember); err != nil {
			return nil, err
		}
		c.Author = author
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CommentRepository) Count(ctx context.Context, target entity.TargetRef) (int, error) {
	table, targetCol, err := commentTable(target.Kind)
	if err != nil {
		return 0, err
	}
	var n int
	err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM `+table+` WHERE `+targetCol+` = $1`, target.ID).Scan(&n)
	return n, err
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
