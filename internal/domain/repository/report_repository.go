package repository

import (
	"context"

	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
)

// ReportRepository defines moderation persistence.
type ReportRepository interface {
	// File records one report in a single transaction: get-or-create the
	// reported user's profile, increment its counter, insert the immutable
	// report row. Repeat reports from the same reporter all count.
	File(ctx context.Context, reporterID, reportedID, reason string) (*entity.Report, error)
	ProfileByUser(ctx context.Context, userID string) (*entity.ReportedUserProfile, error)
	// RecountFromReports recomputes the counter from report rows; the admin
	// surface uses it to correct drift in the incremental column.
	RecountFromReports(ctx context.Context, userID string) (int, error)
	MarkProcessed(ctx context.Context, userID string) error
}
