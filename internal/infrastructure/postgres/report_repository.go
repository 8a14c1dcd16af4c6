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

type ReportRepository struct {
	pool *pgxpool.Pool
}

func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// File runs profile get-or-create, counter increment, and the report insert
// in one transaction. The ON CONFLICT upsert makes the counter bump atomic,
// so two concurrent reports both count.
func (r *ReportRepository) File(ctx context.Context, reporterID, reportedID, reason string) (*entity.Report, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var profileID string
	err = tx.QueryRow(ctx, `
		INSERT INTO reported_user_profiles (user_id, report_count)
		VALUES ($1, 1)
		ON CONFLICT (user_id) DO UPDATE
			SET report_count = reported_user_profiles.report_count + 1, updated_at = now()
		RETURNING id
	`, reportedID).Scan(&profileID)
	if err != nil {
		return nil, err
	}

	report := &entity.Report{ReporterID: reporterID, ReportedID: reportedID, Reason: reason, ProfileID: profileID}
	err = tx.QueryRow(ctx, `
		INSERT INTO reports (reporter_id, reported_id, reason, profile_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, reporterID, reportedID, reason, profileID).Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return report, nil
}

func (r *ReportRepository) ProfileByUser(ctx context.Context, userID string) (*entity.ReportedUserProfile, error) {
	p := &entity.ReportedUserProfile{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, report_count, is_processed, created_at, updated_at
		FROM reported_user_profiles
		WHERE user_id = $1
	`, userID).Scan(&p.ID, &p.UserID, &p.ReportCount, &p.IsProcessed, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("reported user profile: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

func (r *ReportRepository) RecountFromReports(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		UPDATE reported_user_profiles
		SET report_count = (SELECT COUNT(*) FROM reports WHERE reported_id = $1), updated_at = now()
		WHERE user_id = $1
		RETURNING report_count
	`, userID).Scan(&n)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("reported user profile: %w", apperror.ErrNotFound)
	}
	return n, err
}

func (r *ReportRepository) MarkProcessed(ctx context.Context, userID string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE reported_user_profiles SET is_processed = TRUE, updated_at = now() WHERE user_id = $1
	`, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("reported user profile: %w", apperror.ErrNotFound)
	}
	return nil
}

var _ repository.ReportRepository = (*ReportRepository)(nil)
