package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/oksasatya/sharejourney-api/internal/domain/apperror"
	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
	repo "github.com/oksasatya/sharejourney-api/internal/domain/repository"
	"github.com/oksasatya/sharejourney-api/pkg/helpers"
)

// PostService implements posts inside journeys, including image upload to
// object storage. Only the journey creator and approved members may post.
type PostService struct {
	Posts          repo.PostRepository
	Journeys       repo.JourneyRepository
	Participations repo.ParticipationRepository
	GCS            *storage.Client
	Bucket         string
}

type CreatePostInput struct {
	JourneyID              string
	Content                string
	VisitPoint             string
	Latitude               *float64
	Longitude              *float64
	EstimatedTimeOfArrival string
	Images                 []ImageUpload
}

// ImageUpload is one image file submitted with a post.
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

func (s *PostService) Create(ctx context.Context, authorID string, in CreatePostInput) (*entity.Post, error) {
	if strings.TrimSpace(in.Content) == "" && len(in.Images) == 0 {
		return nil, apperror.Validationf("post needs content or images")
	}
	j, err := s.Journeys.GetByID(ctx, in.JourneyID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMembership(ctx, j, authorID); err != nil {
		return nil, err
	}

	p := &entity.Post{
		JourneyID:              in.JourneyID,
		UserID:                 authorID,
		Content:                in.Content,
		VisitPoint:             in.VisitPoint,
		Latitude:               in.Latitude,
		Longitude:              in.Longitude,
		EstimatedTimeOfArrival: in.EstimatedTimeOfArrival,
	}
	for i, img := range in.Images {
		url, err := s.uploadImage(ctx, in.JourneyID, img)
		if err != nil {
			return nil, fmt.Errorf("upload image %d: %w", i, err)
		}
		p.Images = append(p.Images, entity.Image{URL: url, Position: i})
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostService) Get(ctx context.Context, postID, viewerID string) (*entity.Post, entity.PostStats, error) {
	p, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		return nil, entity.PostStats{}, err
	}
	stats, err := s.Posts.Stats(ctx, postID, viewerID)
	if err != nil {
		return nil, entity.PostStats{}, err
	}
	return p, stats, nil
}

// Update rewrites the post's textual fields. Images are immutable after
// creation. Only the author may edit.
func (s *PostService) Update(ctx context.Context, requesterID, postID string, in CreatePostInput) (*entity.Post, error) {
	p, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.UserID != requesterID {
		return nil, apperror.Forbiddenf("only the post author may edit")
	}
	p.Content = in.Content
	p.VisitPoint = in.VisitPoint
	p.Latitude = in.Latitude
	p.Longitude = in.Longitude
	p.EstimatedTimeOfArrival = in.EstimatedTimeOfArrival
	if err := s.Posts.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the post; its images, comments and likes cascade away.
func (s *PostService) Delete(ctx context.Context, requesterID, postID string) error {
	p, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if p.UserID != requesterID {
		return apperror.Forbiddenf("only the post author may delete")
	}
	return s.Posts.Delete(ctx, postID)
}

func (s *PostService) ListByJourney(ctx context.Context, journeyID string) ([]entity.Post, error) {
	if _, err := s.Journeys.GetByID(ctx, journeyID); err != nil {
		return nil, err
	}
	return s.Posts.ListByJourney(ctx, journeyID)
}

func (s *PostService) requireMembership(ctx context.Context, j *entity.Journey, userID string) error {
	if j.CreatorID == userID {
		return nil
	}
	part, err := s.Participations.GetByJourneyAndUser(ctx, j.ID, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.Forbiddenf("you are not a member of this journey")
		}
		return err
	}
	if !part.IsApproved {
		return apperror.Forbiddenf("you are not a member of this journey")
	}
	return nil
}

func (s *PostService) uploadImage(ctx context.Context, journeyID string, img ImageUpload) (string, error) {
	if s.GCS == nil || s.Bucket == "" {
		return "", apperror.Validationf("image uploads are not configured")
	}
	object := fmt.Sprintf("posts/%s/%d-%s%s",
		journeyID, time.Now().UnixNano(), uuid.NewString()[:8], path.Ext(img.Filename))
	return helpers.UploadObject(ctx, s.GCS, s.Bucket, object, img.ContentType, img.Body)
}
