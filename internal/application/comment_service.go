package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/oksasatya/sharejourney-api/internal/domain/apperror"
	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
	repo "github.com/oksasatya/sharejourney-api/internal/domain/repository"
)

// CommentService implements threaded comments on journeys and posts. The two
// kinds share one algorithm over separate storage tables.
type CommentService struct {
	Comments repo.CommentRepository
	Journeys repo.JourneyRepository
	Posts    repo.PostRepository
	Users    repo.UserRepository
	Notifier *Notifier
}

// Add creates a root comment. Locked journeys reject comments from everyone
// except the journey owner; the lock does not apply to posts. The target's
// owner is notified, including when commenting on their own content.
func (s *CommentService) Add(ctx context.Context, authorID string, target entity.TargetRef, content string) (*entity.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperror.Validationf("content is required")
	}
	ownerID, journeyID, err := s.resolveTarget(ctx, target, authorID)
	if err != nil {
		return nil, err
	}

	c := &entity.Comment{Target: target, UserID: authorID, Content: content}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, err
	}

	author, err := s.Users.GetByID(ctx, authorID)
	if err == nil {
		note := &entity.Notification{
			UserID:  ownerID,
			Message: fmt.Sprintf("%s commented on your %s.", author.FullName(), target.Kind),
			ActorID: &author.ID,
		}
		if target.Kind == entity.TargetPost {
			note.PostID = &target.ID
		}
		note.JourneyID = &journeyID
		s.Notifier.Notify(ctx, note)
	}
	return c, nil
}

// Reply attaches a comment under an existing parent of the same target.
// Replies do not notify and are not subject to the comment lock.
func (s *CommentService) Reply(ctx context.Context, authorID string, target entity.TargetRef, parentID, content string) (*entity.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperror.Validationf("content is required")
	}
	parent, err := s.Comments.GetByID(ctx, target.Kind, parentID)
	if err != nil {
		return nil, err
	}
	if parent.Target != target {
		return nil, apperror.NotFoundf("parent comment does not belong to this %s", target.Kind)
	}
	c := &entity.Comment{Target: target, UserID: authorID, Content: content, ParentID: &parent.ID}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update rewrites the comment body. Only the author may edit.
func (s *CommentService) Update(ctx context.Context, requesterID string, kind entity.TargetKind, commentID, content string) error {
	if strings.TrimSpace(content) == "" {
		return apperror.Validationf("content is required")
	}
	c, err := s.Comments.GetByID(ctx, kind, commentID)
	if err != nil {
		return err
	}
	if c.UserID != requesterID {
		return apperror.Forbiddenf("only the comment author may edit")
	}
	return s.Comments.UpdateContent(ctx, kind, commentID, content)
}

// Delete removes the comment and its whole reply subtree. Only the author may
// delete; descendants are removed regardless of who wrote them.
func (s *CommentService) Delete(ctx context.Context, requesterID string, kind entity.TargetKind, commentID string) error {
	c, err := s.Comments.GetByID(ctx, kind, commentID)
	if err != nil {
		return err
	}
	if c.UserID != requesterID {
		return apperror.Forbiddenf("only the comment author may delete")
	}
	return s.Comments.Delete(ctx, kind, commentID)
}

// ListRoots returns the target's root comments with replies nested, oldest
// first at every level. Assembly is a single pass over the flat fetch.
func (s *CommentService) ListRoots(ctx context.Context, target entity.TargetRef) ([]*entity.Comment, error) {
	flat, err := s.Comments.ListByTarget(ctx, target)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Comment, len(flat))
	for _, c := range flat {
		byID[c.ID] = c
	}
	roots := make([]*entity.Comment, 0, len(flat))
	for _, c := range flat {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		if parent, ok := byID[*c.ParentID]; ok {
			parent.Replies = append(parent.Replies, c)
		}
	}
	return roots, nil
}

// resolveTarget verifies the target exists, enforces the journey comment lock,
// and returns the owner to notify plus the enclosing journey ID.
func (s *CommentService) resolveTarget(ctx context.Context, target entity.TargetRef, authorID string) (ownerID, journeyID string, err error) {
	switch target.Kind {
	case entity.TargetJourney:
		j, err := s.Journeys.GetByID(ctx, target.ID)
		if err != nil {
			return "", "", err
		}
		if j.LockComments && j.CreatorID != authorID {
			return "", "", apperror.Forbiddenf("comments are locked on this journey")
		}
		return j.CreatorID, j.ID, nil
	case entity.TargetPost:
		p, err := s.Posts.GetByID(ctx, target.ID)
		if err != nil {
			return "", "", err
		}
		return p.UserID, p.JourneyID, nil
	default:
		return "", "", apperror.Validationf("unknown target kind %q", target.Kind)
	}
}
