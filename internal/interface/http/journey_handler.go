package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/sharejourney-api/internal/application"
	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
	"github.com/oksasatya/sharejourney-api/pkg/response"
	"github.com/oksasatya/sharejourney-api/pkg/validation"
)

type JourneyHandler struct {
	Svc    *application.JourneyService
	Logger *logrus.Logger
}

func NewJourneyHandler(svc *application.JourneyService, logger *logrus.Logger) *JourneyHandler {
	return &JourneyHandler{Svc: svc, Logger: logger}
}

type createJourneyRequest struct {
	Name             string `json:"name" binding:"required"`
	Background       string `json:"background"`
	StartLocation    string `json:"start_location" binding:"required"`
	EndLocation      string `json:"end_location" binding:"required"`
	DepartureTime    string `json:"departure_time"`
	Distance         string `json:"distance"`
	EstimatedMinutes int    `json:"estimated_minutes" binding:"omitempty,min=1"`
}

type rateJourneyRequest struct {
	Rating int `json:"rating" binding:"required,rating"`
}

type approveRequest struct {
	UserID    string `json:"user_id" binding:"required_without=CommentID,omitempty,uuid"`
	CommentID string `json:"comment_id" binding:"required_without=UserID,omitempty,uuid"`
}

func (h *JourneyHandler) Create(c *gin.Context) {
	var req createJourneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in := application.CreateJourneyInput{
		Name:          req.Name,
		Background:    req.Background,
		StartLocation: req.StartLocation,
		EndLocation:   req.EndLocation,
		DepartureTime: req.DepartureTime,
		Distance:      req.Distance,
	}
	if req.EstimatedMinutes > 0 {
		d := time.Duration(req.EstimatedMinutes) * time.Minute
		in.EstimatedTime = &d
	}
	j, err := h.Svc.Create(c.Request.Context(), c.GetString("userID"), in)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, journeyView(j), "journey created", nil)
}

func (h *JourneyHandler) Get(c *gin.Context) {
	j, stats, err := h.Svc.Get(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		fail(c, err)
		return
	}
	view := journeyView(j)
	view["liked"] = stats.Liked
	view["likes_count"] = stats.LikesCount
	view["comments_count"] = stats.CommentsCount
	view["average_rating"] = stats.AverageRating
	response.Success(c, http.StatusOK, view, "journey", nil)
}

func (h *JourneyHandler) Lock(c *gin.Context) {
	if err := h.Svc.Lock(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"locked": true}, "comments locked", nil)
}

func (h *JourneyHandler) Complete(c *gin.Context) {
	if err := h.Svc.Complete(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"completed": true}, "journey completed", nil)
}

// Approve admits a participant either directly by user ID or via one of
// their journey comments.
func (h *JourneyHandler) Approve(c *gin.Context) {
	var req approveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ctx := c.Request.Context()
	requester := c.GetString("userID")
	journeyID := c.Param("id")

	var (
		status application.ApprovalStatus
		err    error
	)
	if req.UserID != "" {
		status, err = h.Svc.ApproveParticipant(ctx, requester, journeyID, req.UserID)
	} else {
		status, err = h.Svc.ApproveByComment(ctx, requester, journeyID, req.CommentID)
	}
	if err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"status": status}, string(status), nil)
}

func (h *JourneyHandler) RemoveParticipant(c *gin.Context) {
	err := h.Svc.RemoveParticipant(c.Request.Context(), c.GetString("userID"), c.Param("id"), c.Param("userId"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"removed": true}, "participant removed", nil)
}

func (h *JourneyHandler) Rate(c *gin.Context) {
	var req rateJourneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	aggregate, err := h.Svc.Rate(c.Request.Context(), c.GetString("userID"), c.Param("id"), req.Rating)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"creator_rate": aggregate}, "rating recorded", nil)
}

func (h *JourneyHandler) Members(c *gin.Context) {
	members, err := h.Svc.Members(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, members, "members", map[string]any{"count": len(members)})
}

func (h *JourneyHandler) ListActive(c *gin.Context) {
	journeys, err := h.Svc.ListActive(c.Request.Context())
	h.list(c, journeys, err)
}

func (h *JourneyHandler) ListMine(c *gin.Context) {
	journeys, err := h.Svc.ListForUser(c.Request.Context(), c.GetString("userID"))
	h.list(c, journeys, err)
}

func (h *JourneyHandler) ListByUser(c *gin.Context) {
	journeys, err := h.Svc.ListByCreator(c.Request.Context(), c.Param("id"))
	h.list(c, journeys, err)
}

func (h *JourneyHandler) list(c *gin.Context, journeys []entity.Journey, err error) {
	if err != nil {
		fail(c, err)
		return
	}
	views := make([]gin.H, 0, len(journeys))
	for i := range journeys {
		views = append(views, journeyView(&journeys[i]))
	}
	response.Success(c, http.StatusOK, views, "journeys", map[string]any{"count": len(views)})
}

func (h *JourneyHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "q is required", nil)
		return
	}
	hits, err := h.Svc.Search(c.Request.Context(), q, intQuery(c, "size", 10))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}

func (h *JourneyHandler) Statistics(c *gin.Context) {
	if month := c.Query("month"); month != "" {
		stats, err := h.Svc.MonthlyStatistics(c.Request.Context(), month)
		if err != nil {
			fail(c, err)
			return
		}
		response.Success(c, http.StatusOK, stats, "monthly statistics", map[string]any{"month": month})
		return
	}
	stats, err := h.Svc.Statistics(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats, "statistics", nil)
}

func journeyView(j *entity.Journey) gin.H {
	view := gin.H{
		"id":             j.ID,
		"creator_id":     j.CreatorID,
		"name":           j.Name,
		"background":     j.Background,
		"lock_comments":  j.LockComments,
		"start_location": j.StartLocation,
		"end_location":   j.EndLocation,
		"departure_time": j.DepartureTime,
		"active":         j.Active,
		"distance":       j.Distance,
		"created_at":     j.CreatedAt,
		"updated_at":     j.UpdatedAt,
	}
	if j.EstimatedTime != nil {
		view["estimated_minutes"] = int(j.EstimatedTime.Minutes())
	}
	return view
}
