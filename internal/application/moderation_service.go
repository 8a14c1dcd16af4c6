package application

import (
	"context"
	"strings"

	"github.com/oksasatya/sharejourney-api/internal/domain/apperror"
	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
	repo "github.com/oksasatya/sharejourney-api/internal/domain/repository"
)

// ModerationService implements user reporting and the admin review surface.
type ModerationService struct {
	Reports repo.ReportRepository
	Users   repo.UserRepository
}

// Report files a report against a user. A reason is required; repeat reports
// from the same reporter are accepted and each counts.
func (s *ModerationService) Report(ctx context.Context, reporterID, reportedID, reason string) (*entity.Report, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperror.Validationf("reason is required")
	}
	if reporterID == reportedID {
		return nil, apperror.Validationf("cannot report yourself")
	}
	if _, err := s.Users.GetByID(ctx, reportedID); err != nil {
		return nil, err
	}
	return s.Reports.File(ctx, reporterID, reportedID, reason)
}

// Profile returns the aggregated report profile of a user, or ErrNotFound
// when the user was never reported.
func (s *ModerationService) Profile(ctx context.Context, userID string) (*entity.ReportedUserProfile, error) {
	return s.Reports.ProfileByUser(ctx, userID)
}

// Recount recomputes the report counter from the immutable report rows.
func (s *ModerationService) Recount(ctx context.Context, userID string) (int, error) {
	return s.Reports.RecountFromReports(ctx, userID)
}

// MarkProcessed flags the profile as reviewed by moderation.
func (s *ModerationService) MarkProcessed(ctx context.Context, userID string) error {
	return s.Reports.MarkProcessed(ctx, userID)
}
