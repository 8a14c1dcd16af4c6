package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/sharejourney-api/internal/domain/apperror"
	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
	"github.com/oksasatya/sharejourney-api/internal/domain/repository"
)

const postColumns = `id, journey_id, user_id, content, COALESCE(visit_point, ''), latitude, longitude,
	COALESCE(estimated_time_of_arrival, ''), created_at, updated_at`

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

// Create inserts the post and its images in one transaction; image order is
// the slice order.
func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO posts (journey_id, user_id, content, visit_point, latitude, longitude, estimated_time_of_arrival)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, NULLIF($7, ''))
		RETURNING id, created_at, updated_at
	`, p.JourneyID, p.UserID, p.Content, p.VisitPoint, p.Latitude, p.Longitude, p.EstimatedTimeOfArrival)
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return err
	}

	for i := range p.Images {
		img := &p.Images[i]
		img.PostID = p.ID
		img.Position = i
		if err := tx.QueryRow(ctx, `
			INSERT INTO post_images (post_id, url, position)
			VALUES ($1, $2, $3)
			RETURNING id
		`, img.PostID, img.URL, img.Position).Scan(&img.ID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	p := &entity.Post{}
	err := r.pool.QueryRow(ctx, `
		SELECT `+postColumns+`
		FROM posts
		WHERE id = $1
	`, id).Scan(&p.ID, &p.JourneyID, &p.UserID, &p.Content, &p.VisitPoint, &p.Latitude,
		&p.Longitude, &p.EstimatedTimeOfArrival, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("post: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	if err := r.attachImages(ctx, []*entity.Post{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostRepository) Update(ctx context.Context, p *entity.Post) error {
	p.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE posts
		SET content = $1, visit_point = NULLIF($2, ''), latitude = $3, longitude = $4,
		    estimated_time_of_arrival = NULLIF($5, ''), updated_at = $6
		WHERE id = $7
	`, p.Content, p.VisitPoint, p.Latitude, p.Longitude, p.EstimatedTimeOfArrival, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("post: %w", apperror.ErrNotFound)
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("post: %w", apperror.ErrNotFound)
	}
	return nil
}

func (r *PostRepository) ListByJourney(ctx context.Context, journeyID string) ([]entity.Post, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+postColumns+`
		FROM posts
		WHERE journey_id = $1
		ORDER BY created_at DESC
	`, journeyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []entity.Post
	var refs []*entity.Post
	for rows.Next() {
		p := entity.Post{}
		if err := rows.Scan(&p.ID, &p.JourneyID, &p.UserID, &p.Content, &p.VisitPoint,
			&p.Latitude, &p.Longitude, &p.EstimatedTimeOfArrival, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range posts {
		refs = append(refs, &posts[i])
	}
	if err := r.attachImages(ctx, refs); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepository) Stats(ctx context.Context, postID, viewerID string) (entity.PostStats, error) {
	var s entity.PostStats
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM post_likes WHERE post_id = $1 AND active),
			(SELECT COUNT(*) FROM post_comments WHERE post_id = $1),
			EXISTS (SELECT 1 FROM post_likes WHERE post_id = $1 AND user_id = NULLIF($2, '')::uuid AND active)
	`, postID, viewerID).Scan(&s.LikesCount, &s.CommentsCount, &s.Liked)
	return s, err
}

func (r *PostRepository) LatestLocationByUser(ctx context.Context, userID string) (*entity.PostLocation, error) {
	loc := &entity.PostLocation{}
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(visit_point, ''), latitude, longitude, created_at
		FROM posts
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, userID).Scan(&loc.VisitPoint, &loc.Latitude, &loc.Longitude, &loc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return loc, nil
}

func (r *PostRepository) attachImages(ctx context.Context, posts []*entity.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]string, len(posts))
	byID := make(map[string]*entity.Post, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
		byID[p.ID] = p
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, post_id, url, position
		FROM post_images
		WHERE post_id = ANY($1)
		ORDER BY post_id, position
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var img entity.Image
		if err := rows.Scan(&img.ID, &img.PostID, &img.URL, &img.Position); err != nil {
			return err
		}
		if p, ok := byID[img.PostID]; ok {
			p.Images = append(p.Images, img)
		}
	}
	return rows.Err()
}

var _ repository.PostRepository = (*PostRepository)(nil)
