package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/sharejourney-api/internal/application"
	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
	"github.com/oksasatya/sharejourney-api/pkg/response"
)

// SocialHandler serves like toggles and the follow graph.
type SocialHandler struct {
	Reactions *application.ReactionService
	Social    *application.SocialService
	Logger    *logrus.Logger
}

func NewSocialHandler(reactions *application.ReactionService, social *application.SocialService, logger *logrus.Logger) *SocialHandler {
	return &SocialHandler{Reactions: reactions, Social: social, Logger: logger}
}

func (h *SocialHandler) ToggleLike(kind entity.TargetKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		target := entity.TargetRef{Kind: kind, ID: targetID(c, kind)}
		like, err := h.Reactions.Toggle(c.Request.Context(), c.GetString("userID"), target)
		if err != nil {
			fail(c, err)
			return
		}
		count, err := h.Reactions.Count(c.Request.Context(), target)
		if err != nil {
			fail(c, err)
			return
		}
		response.Success[any](c, http.StatusOK, map[string]any{
			"liked":       like.Active,
			"likes_count": count,
		}, "like toggled", nil)
	}
}

func (h *SocialHandler) ToggleFollow(c *gin.Context) {
	follow, err := h.Social.ToggleFollow(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"following": follow.Active}, "follow toggled", nil)
}

func (h *SocialHandler) Followers(c *gin.Context) {
	users, err := h.Social.Followers(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, briefUsers(users), "followers", map[string]any{"count": len(users)})
}

func (h *SocialHandler) Following(c *gin.Context) {
	users, err := h.Social.Following(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, briefUsers(users), "following", map[string]any{"count": len(users)})
}

func briefUsers(users []entity.User) []gin.H {
	out := make([]gin.H, 0, len(users))
	for i := range users {
		u := &users[i]
		out = append(out, gin.H{
			"id":         u.ID,
			"username":   u.Username,
			"full_name":  u.FullName(),
			"avatar_url": u.AvatarURL,
		})
	}
	return out
}
