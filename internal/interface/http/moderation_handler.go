package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/sharejourney-api/internal/application"
	"github.com/oksasatya/sharejourney-api/pkg/response"
	"github.com/oksasatya/sharejourney-api/pkg/validation"
)

type ModerationHandler struct {
	Svc    *application.ModerationService
	Logger *logrus.Logger
}

func NewModerationHandler(svc *application.ModerationService, logger *logrus.Logger) *ModerationHandler {
	return &ModerationHandler{Svc: svc, Logger: logger}
}

type reportRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (h *ModerationHandler) Report(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	r, err := h.Svc.Report(c.Request.Context(), c.GetString("userID"), c.Param("id"), req.Reason)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusCreated, map[string]any{"report_id": r.ID}, "report filed", nil)
}

func (h *ModerationHandler) Profile(c *gin.Context) {
	p, err := h.Svc.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"user_id":      p.UserID,
		"report_count": p.ReportCount,
		"is_processed": p.IsProcessed,
		"created_at":   p.CreatedAt,
		"updated_at":   p.UpdatedAt,
	}, "report profile", nil)
}

func (h *ModerationHandler) Recount(c *gin.Context) {
	n, err := h.Svc.Recount(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"report_count": n}, "report count recomputed", nil)
}

func (h *ModerationHandler) MarkProcessed(c *gin.Context) {
	if err := h.Svc.MarkProcessed(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"processed": true}, "profile marked processed", nil)
}
