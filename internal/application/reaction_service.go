package application

import (
	"context"
	"fmt"

	"github.com/oksasatya/sharejourney-api/internal/domain/apperror"
	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
	repo "github.com/oksasatya/sharejourney-api/internal/domain/repository"
)

// ReactionService implements like toggling on journeys and posts.
type ReactionService struct {
	Likes    repo.LikeRepository
	Journeys repo.JourneyRepository
	Posts    repo.PostRepository
	Users    repo.UserRepository
	Notifier *Notifier
}

// Toggle flips the actor's like on the target. A brand-new like notifies the
// target's owner once; re-activating a previously unliked row does not notify
// again, and unliking never does.
func (s *ReactionService) Toggle(ctx context.Context, actorID string, target entity.TargetRef) (entity.Like, error) {
	ownerID, journeyID, err := s.resolveTarget(ctx, target)
	if err != nil {
		return entity.Like{}, err
	}

	like, created, err := s.Likes.Toggle(ctx, actorID, target)
	if err != nil {
		return entity.Like{}, err
	}
	if created && like.Active {
		actor, err := s.Users.GetByID(ctx, actorID)
		if err == nil {
			note := &entity.Notification{
				UserID:  ownerID,
				Message: fmt.Sprintf("%s liked your %s.", actor.FullName(), target.Kind),
				ActorID: &actor.ID,
			}
			if target.Kind == entity.TargetPost {
				note.PostID = &target.ID
			}
			note.JourneyID = &journeyID
			s.Notifier.Notify(ctx, note)
		}
	}
	return like, nil
}

// Count returns the number of active likes on the target.
func (s *ReactionService) Count(ctx context.Context, target entity.TargetRef) (int, error) {
	return s.Likes.CountActive(ctx, target)
}

func (s *ReactionService) resolveTarget(ctx context.Context, target entity.TargetRef) (ownerID, journeyID string, err error) {
	switch target.Kind {
	case entity.TargetJourney:
		j, err := s.Journeys.GetByID(ctx, target.ID)
		if err != nil {
			return "", "", err
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
