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

const journeyColumns = `id, creator_id, name, COALESCE(background, ''), lock_comments, start_location, end_location,
	COALESCE(departure_time, ''), active, COALESCE(distance, ''), estimated_time, created_at, updated_at`

type JourneyRepository struct {
	pool *pgxpool.Pool
}

func NewJourneyRepository(pool *pgxpool.Pool) *JourneyRepository {
	return &JourneyRepository{pool: pool}
}

func scanJourney(row pgx.Row) (*entity.Journey, error) {
	j := &entity.Journey{}
	err := row.Scan(&j.ID, &j.CreatorID, &j.Name, &j.Background, &j.LockComments,
		&j.StartLocation, &j.EndLocation, &j.DepartureTime, &j.Active, &j.Distance,
		&j.EstimatedTime, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("journey: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return j, nil
}

func (r *JourneyRepository) Create(ctx context.Context, j *entity.Journey) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO journeys (creator_id, name, background, start_location, end_location, departure_time, distance, estimated_time)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8)
		RETURNING id, active, lock_comments, created_at, updated_at
	`, j.CreatorID, j.Name, j.Background, j.StartLocation, j.EndLocation, j.DepartureTime, j.Distance, j.EstimatedTime)
	return row.Scan(&j.ID, &j.Active, &j.LockComments, &j.CreatedAt, &j.UpdatedAt)
}

func (r *JourneyRepository) GetByID(ctx context.Context, id string) (*entity.Journey, error) {
	return scanJourney(r.pool.QueryRow(ctx, `
		SELECT `+journeyColumns+`
		FROM journeys
		WHERE id = $1
	`, id))
}

func (r *JourneyRepository) Update(ctx context.Context, j *entity.Journey) error {
	j.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE journeys
		SET name = $1, background = NULLIF($2, ''), start_location = $3, end_location = $4,
		    departure_time = NULLIF($5, ''), distance = NULLIF($6, ''), estimated_time = $7, updated_at = $8
		WHERE id = $9
	`, j.Name, j.Background, j.StartLocation, j.EndLocation, j.DepartureTime, j.Distance, j.EstimatedTime, j.UpdatedAt, j.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("journey: %w", apperror.ErrNotFound)
	}
	return nil
}

func (r *JourneyRepository) LockComments(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE journeys SET lock_comments = TRUE, updated_at = now() WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("journey: %w", apperror.ErrNotFound)
	}
	return nil
}

func (r *JourneyRepository) Complete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE journeys SET active = FALSE, updated_at = now() WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("journey: %w", apperror.ErrNotFound)
	}
	return nil
}

func (r *JourneyRepository) ListActive(ctx context.Context) ([]entity.Journey, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+journeyColumns+`
		FROM journeys
		WHERE active
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return collectJourneys(rows)
}

func (r *JourneyRepository) ListByCreator(ctx context.Context, userID string) ([]entity.Journey, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+journeyColumns+`
		FROM journeys
		WHERE creator_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return collectJourneys(rows)
}

func (r *JourneyRepository) ListForUser(ctx context.Context, userID string) ([]entity.Journey, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+journeyColumns+`
		FROM journeys
		WHERE creator_id = $1
		   OR id IN (SELECT journey_id FROM participations WHERE user_id = $1 AND is_approved)
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return collectJourneys(rows)
}

func (r *JourneyRepository) CountByCreator(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM journeys WHERE creator_id = $1`, userID).Scan(&n)
	return n, err
}

func (r *JourneyRepository) Members(ctx context.Context, journeyID string) ([]entity.Member, error) {
	// Latest post location per member via LATERAL; ordering by post recency
	// is applied here, the creator is prepended by the service.
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.first_name, u.last_name, u.username, u.avatar_url,
		       lp.visit_point, lp.latitude, lp.longitude, lp.created_at
		FROM participations p
		JOIN users u ON u.id = p.user_id
		LEFT JOIN LATERAL (
			SELECT COALESCE(visit_point, '') AS visit_point, latitude, longitude, created_at
			FROM posts
			WHERE user_id = u.id
			ORDER BY created_at DESC
			LIMIT 1
		) lp ON TRUE
		WHERE p.journey_id = $1 AND p.is_approved
		ORDER BY lp.created_at DESC NULLS LAST
	`, journeyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []entity.Member
	for rows.Next() {
		var (
			m         entity.Member
			first     string
			last      string
			visit     *string
			lat, lng  *float64
			createdAt *time.Time
		)
		if err := rows.Scan(&m.UserID, &first, &last, &m.Username, &m.Avatar,
			&visit, &lat, &lng, &createdAt); err != nil {
			return nil, err
		}
		m.FullName = (&entity.User{FirstName: first, LastName: last}).FullName()
		if createdAt != nil {
			m.LastPost = &entity.PostLocation{Latitude: lat, Longitude: lng, CreatedAt: *createdAt}
			if visit != nil {
				m.LastPost.VisitPoint = *visit
			}
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *JourneyRepository) Stats(ctx context.Context, journeyID, viewerID string) (entity.JourneyStats, error) {
	var s entity.JourneyStats
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM journey_likes WHERE journey_id = $1 AND active),
			(SELECT COUNT(*) FROM journey_comments WHERE journey_id = $1),
			COALESCE((SELECT ROUND(AVG(rating)::numeric, 1) FROM participations WHERE journey_id = $1 AND is_approved), 0),
			EXISTS (SELECT 1 FROM journey_likes WHERE journey_id = $1 AND user_id = NULLIF($2, '')::uuid AND active)
	`, journeyID, viewerID).Scan(&s.LikesCount, &s.CommentsCount, &s.AverageRating, &s.Liked)
	return s, err
}

func (r *JourneyRepository) Statistics(ctx context.Context) (repository.JourneyStatistics, error) {
	var s repository.JourneyStatistics
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE active),
		       COUNT(*) FILTER (WHERE NOT active),
		       COUNT(*) FILTER (WHERE NOT active AND updated_at >= date_trunc('month', now()))
		FROM journeys
	`).Scan(&s.Total, &s.Active, &s.Completed, &s.CompletedThisMonth)
	return s, err
}

func (r *JourneyRepository) MonthlyStatistics(ctx context.Context, from, to time.Time) (repository.JourneyStatistics, error) {
	var s repository.JourneyStatistics
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM journeys WHERE created_at >= $1 AND created_at < $2),
			(SELECT COUNT(*) FROM journeys WHERE created_at >= $1 AND created_at < $2 AND active),
			(SELECT COUNT(*) FROM journeys WHERE updated_at >= $1 AND updated_at < $2 AND NOT active)
	`, from, to).Scan(&s.Total, &s.Active, &s.Completed)
	return s, err
}

func collectJourneys(rows pgx.Rows) ([]entity.Journey, error) {
	defer rows.Close()
	var out []entity.Journey
	for rows.Next() {
		j := entity.Journey{}
		if err := rows.Scan(&j.ID, &j.CreatorID, &j.Name, &j.Background, &j.LockComments,
			&j.StartLocation, &j.EndLocation, &j.DepartureTime, &j.Active, &j.Distance,
			&j.EstimatedTime, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

var _ repository.JourneyRepository = (*JourneyRepository)(nil)
