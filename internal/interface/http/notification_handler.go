package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/sharejourney-api/internal/application"
	"github.com/oksasatya/sharejourney-api/pkg/response"
)

type NotificationHandler struct {
	Svc    *application.NotificationService
	Logger *logrus.Logger
}

func NewNotificationHandler(svc *application.NotificationService, logger *logrus.Logger) *NotificationHandler {
	return &NotificationHandler{Svc: svc, Logger: logger}
}

func (h *NotificationHandler) List(c *gin.Context) {
	notes, err := h.Svc.List(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		fail(c, err)
		return
	}
	views := make([]gin.H, 0, len(notes))
	for i := range notes {
		n := &notes[i]
		views = append(views, gin.H{
			"id":         n.ID,
			"message":    n.Message,
			"read":       n.Read,
			"post_id":    n.PostID,
			"journey_id": n.JourneyID,
			"actor_id":   n.ActorID,
			"created_at": n.CreatedAt,
		})
	}
	response.Success(c, http.StatusOK, views, "notifications", map[string]any{"count": len(views)})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.Svc.MarkRead(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"read": true}, "notification read", nil)
}

// Redirect marks the notification read and returns where the client should
// navigate.
func (h *NotificationHandler) Redirect(c *gin.Context) {
	kind, id, err := h.Svc.Redirect(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{
		"target_kind": kind,
		"target_id":   id,
	}, "redirect target", nil)
}
