package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/sharejourney-api/internal/domain/apperror"
	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
	repo "github.com/oksasatya/sharejourney-api/internal/domain/repository"
)

// ApprovalStatus distinguishes a fresh approval from an idempotent repeat.
type ApprovalStatus string

const (
	StatusApproved      ApprovalStatus = "approved"
	StatusAlreadyMember ApprovalStatus = "already_member"
)

// JourneyService implements the journey lifecycle: creation, comment locking,
// participation approval and removal, completion, rating, member listing.
type JourneyService struct {
	Journeys        repo.JourneyRepository
	Participations  repo.ParticipationRepository
	Users           repo.UserRepository
	Posts           repo.PostRepository
	Comments        repo.CommentRepository
	Notifier        *Notifier
	Logger          *logrus.Logger
	ES              *elasticsearch.Client
	ESJourneysIndex string
}

type CreateJourneyInput struct {
	Name          string
	Background    string
	StartLocation string
	EndLocation   string
	DepartureTime string
	Distance      string
	EstimatedTime *time.Duration
}

// Create starts a new active journey owned by the creator. The creator needs
// no participation approval.
func (s *JourneyService) Create(ctx context.Context, creatorID string, in CreateJourneyInput) (*entity.Journey, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperror.Validationf("name is required")
	}
	if strings.TrimSpace(in.StartLocation) == "" {
		return nil, apperror.Validationf("start_location is required")
	}
	if strings.TrimSpace(in.EndLocation) == "" {
		return nil, apperror.Validationf("end_location is required")
	}
	j := &entity.Journey{
		CreatorID:     creatorID,
		Name:          strings.TrimSpace(in.Name),
		Background:    in.Background,
		StartLocation: in.StartLocation,
		EndLocation:   in.EndLocation,
		DepartureTime: in.DepartureTime,
		Distance:      in.Distance,
		EstimatedTime: in.EstimatedTime,
	}
	if err := s.Journeys.Create(ctx, j); err != nil {
		return nil, err
	}
	_ = s.indexJourney(ctx, j)
	return j, nil
}

func (s *JourneyService) Get(ctx context.Context, journeyID, viewerID string) (*entity.Journey, entity.JourneyStats, error) {
	j, err := s.Journeys.GetByID(ctx, journeyID)
	if err != nil {
		return nil, entity.JourneyStats{}, err
	}
	stats, err := s.Journeys.Stats(ctx, journeyID, viewerID)
	if err != nil {
		return nil, entity.JourneyStats{}, err
	}
	return j, stats, nil
}

// Lock closes the journey to comments from non-owners. Only the owner may
// lock; there is no unlock.
func (s *JourneyService) Lock(ctx context.Context, requesterID, journeyID string) error {
	if _, err := s.ownedJourney(ctx, requesterID, journeyID); err != nil {
		return err
	}
	return s.Journeys.LockComments(ctx, journeyID)
}

// Complete marks the journey finished. Completing twice is a no-op success.
func (s *JourneyService) Complete(ctx context.Context, requesterID, journeyID string) error {
	if _, err := s.ownedJourney(ctx, requesterID, journeyID); err != nil {
		return err
	}
	return s.Journeys.Complete(ctx, journeyID)
}

// ApproveParticipant admits a candidate into the journey. Re-approving an
// existing member reports StatusAlreadyMember instead of erroring; a fresh
// approval notifies the candidate.
func (s *JourneyService) ApproveParticipant(ctx context.Context, requesterID, journeyID, candidateID string) (ApprovalStatus, error) {
	j, err := s.ownedJourney(ctx, requesterID, journeyID)
	if err != nil {
		return "", err
	}
	if !j.Active {
		return "", fmt.Errorf("journey already completed: %w", apperror.ErrConflict)
	}
	requester, err := s.Users.GetByID(ctx, requesterID)
	if err != nil {
		return "", err
	}
	if _, err := s.Users.GetByID(ctx, candidateID); err != nil {
		return "", err
	}

	newlyApproved, err := s.Participations.Approve(ctx, journeyID, candidateID)
	if err != nil {
		return "", err
	}
	if !newlyApproved {
		return StatusAlreadyMember, nil
	}

	s.Notifier.Notify(ctx, &entity.Notification{
		UserID:    candidateID,
		JourneyID: &j.ID,
		Message:   fmt.Sprintf("%s approved you into their journey.", requester.FullName()),
		ActorID:   &requester.ID,
	})
	return StatusApproved, nil
}

// ApproveByComment admits the author of a journey comment, the flow the
// owner uses from the comment thread.
func (s *JourneyService) ApproveByComment(ctx context.Context, requesterID, journeyID, commentID string) (ApprovalStatus, error) {
	c, err := s.Comments.GetByID(ctx, entity.TargetJourney, commentID)
	if err != nil {
		return "", err
	}
	if c.Target.ID != journeyID {
		return "", apperror.NotFoundf("comment does not belong to this journey")
	}
	return s.ApproveParticipant(ctx, requesterID, journeyID, c.UserID)
}

// RemoveParticipant revokes an approved membership; the participation row is
// kept with is_approved cleared.
func (s *JourneyService) RemoveParticipant(ctx context.Context, requesterID, journeyID, userID string) error {
	if _, err := s.ownedJourney(ctx, requesterID, journeyID); err != nil {
		return err
	}
	return s.Participations.Revoke(ctx, journeyID, userID)
}

// Rate stores the member's 1..5 rating and refreshes the creator's aggregate.
// Only users with an approved participation may rate.
func (s *JourneyService) Rate(ctx context.Context, requesterID, journeyID string, rating int) (*float64, error) {
	if rating < 1 || rating > 5 {
		return nil, apperror.Validationf("rating must be between 1 and 5")
	}
	if _, err := s.Journeys.GetByID(ctx, journeyID); err != nil {
		return nil, err
	}
	aggregate, err := s.Participations.SetRatingAndRecompute(ctx, journeyID, requesterID, rating)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Forbiddenf("you are not a member of this journey")
		}
		return nil, err
	}
	return aggregate, nil
}

// Members returns the creator first, flagged as owner, followed by approved
// participants ordered by most recent post.
func (s *JourneyService) Members(ctx context.Context, journeyID string) ([]entity.Member, error) {
	j, err := s.Journeys.GetByID(ctx, journeyID)
	if err != nil {
		return nil, err
	}
	creator, err := s.Users.GetByID(ctx, j.CreatorID)
	if err != nil {
		return nil, err
	}
	lastPost, err := s.Posts.LatestLocationByUser(ctx, creator.ID)
	if err != nil {
		return nil, err
	}
	members, err := s.Journeys.Members(ctx, journeyID)
	if err != nil {
		return nil, err
	}

	out := make([]entity.Member, 0, len(members)+1)
	out = append(out, entity.Member{
		UserID:   creator.ID,
		Owner:    true,
		FullName: creator.FullName(),
		Username: creator.Username,
		Avatar:   creator.AvatarURL,
		LastPost: lastPost,
	})
	for _, m := range members {
		if m.UserID == creator.ID {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *JourneyService) ListActive(ctx context.Context) ([]entity.Journey, error) {
	return s.Journeys.ListActive(ctx)
}

func (s *JourneyService) ListByCreator(ctx context.Context, userID string) ([]entity.Journey, error) {
	return s.Journeys.ListByCreator(ctx, userID)
}

// ListForUser returns journeys the user owns or participates in.
func (s *JourneyService) ListForUser(ctx context.Context, userID string) ([]entity.Journey, error) {
	return s.Journeys.ListForUser(ctx, userID)
}

func (s *JourneyService) Statistics(ctx context.Context) (repo.JourneyStatistics, error) {
	return s.Journeys.Statistics(ctx)
}

// MonthlyStatistics accepts "YYYY-MM" and counts journeys created/completed
// in that month.
func (s *JourneyService) MonthlyStatistics(ctx context.Context, yearMonth string) (repo.JourneyStatistics, error) {
	from, err := time.Parse("2006-01", yearMonth)
	if err != nil {
		return repo.JourneyStatistics{}, apperror.Validationf("date_value must be YYYY-MM")
	}
	return s.Journeys.MonthlyStatistics(ctx, from, from.AddDate(0, 1, 0))
}

// Search performs a name/location search over the journeys index.
func (s *JourneyService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESJourneysIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "start_location", "end_location"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESJourneysIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *JourneyService) indexJourney(ctx context.Context, j *entity.Journey) error {
	if s.ES == nil || s.ESJourneysIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":             j.ID,
		"creator_id":     j.CreatorID,
		"name":           j.Name,
		"start_location": j.StartLocation,
		"end_location":   j.EndLocation,
		"active":         j.Active,
		"created_at":     j.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESJourneysIndex, DocumentID: j.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("journey_id", j.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("journey_id", j.ID).Warn("es index response error")
	}
	return nil
}

// ownedJourney loads the journey and verifies the requester is its creator.
func (s *JourneyService) ownedJourney(ctx context.Context, requesterID, journeyID string) (*entity.Journey, error) {
	j, err := s.Journeys.GetByID(ctx, journeyID)
	if err != nil {
		return nil, err
	}
	if j.CreatorID != requesterID {
		return nil, apperror.Forbiddenf("only the journey owner may do this")
	}
	return j, nil
}
