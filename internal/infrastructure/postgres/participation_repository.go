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

type ParticipationRepository struct {
	pool *pgxpool.Pool
}

func NewParticipationRepository(pool *pgxpool.Pool) *ParticipationRepository {
	return &ParticipationRepository{pool: pool}
}

func (r *ParticipationRepository) GetByJourneyAndUser(ctx context.Context, journeyID, userID string) (*entity.Participation, error) {
	p := &entity.Participation{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, journey_id, user_id, joined_at, is_approved, rating, created_at, updated_at
		FROM participations
		WHERE journey_id = $1 AND user_id = $2
	`, journeyID, userID).Scan(&p.ID, &p.JourneyID, &p.UserID, &p.JoinedAt, &p.IsApproved,
		&p.Rating, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("participation: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

// Approve upserts the (journey, user) row with is_approved set. The WHERE on
// the conflict update makes an already-approved membership return no row,
// which is how "already a member" is detected without a second query.
func (r *ParticipationRepository) Approve(ctx context.Context, journeyID, userID string) (bool, error) {
	rows, err := r.pool.Query(ctx, `
		INSERT INTO participations (journey_id, user_id, is_approved, joined_at)
		VALUES ($1, $2, TRUE, now())
		ON CONFLICT (journey_id, user_id) DO UPDATE
			SET is_approved = TRUE, joined_at = now(), updated_at = now()
			WHERE NOT participations.is_approved
		RETURNING id
	`, journeyID, userID)
	if err != nil {
		return false, err
	}
	defer rows.Close()
	newlyApproved := rows.Next()
	return newlyApproved, rows.Err()
}

func (r *ParticipationRepository) Revoke(ctx context.Context, journeyID, userID string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE participations
		SET is_approved = FALSE, updated_at = now()
		WHERE journey_id = $1 AND user_id = $2 AND is_approved
	`, journeyID, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("approved participation: %w", apperror.ErrNotFound)
	}
	return nil
}

// SetRatingAndRecompute writes the rating and recomputes the creator's
// aggregate inside one transaction, so readers never observe the rating
// without the refreshed aggregate.
func (r *ParticipationRepository) SetRatingAndRecompute(ctx context.Context, journeyID, userID string, rating int) (*float64, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := tx.Exec(ctx, `
		UPDATE participations
		SET rating = $1, updated_at = now()
		WHERE journey_id = $2 AND user_id = $3 AND is_approved
	`, rating, journeyID, userID)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected() == 0 {
		return nil, fmt.Errorf("approved participation: %w", apperror.ErrNotFound)
	}

	var creatorID string
	if err := tx.QueryRow(ctx, `SELECT creator_id FROM journeys WHERE id = $1`, journeyID).Scan(&creatorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("journey: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	// Mean over every rating across all of the creator's journeys' approved
	// participations, one decimal place, NULL when no ratings exist.
	var aggregate *float64
	err = tx.QueryRow(ctx, `
		UPDATE users
		SET rate = (
			SELECT ROUND(AVG(p.rating)::numeric, 1)
			FROM participations p
			JOIN journeys j ON j.id = p.journey_id
			WHERE j.creator_id = $1 AND p.is_approved
		), updated_at = now()
		WHERE id = $1
		RETURNING rate
	`, creatorID).Scan(&aggregate)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return aggregate, nil
}

var _ repository.ParticipationRepository = (*ParticipationRepository)(nil)
