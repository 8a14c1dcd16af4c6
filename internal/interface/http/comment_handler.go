package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/sharejourney-api/internal/application"
	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
	"github.com/oksasatya/sharejourney-api/pkg/response"
	"github.com/oksasatya/sharejourney-api/pkg/validation"
)

// CommentHandler serves both journey and post comment routes; the route
// registration decides the target kind.
type CommentHandler struct {
	Svc    *application.CommentService
	Logger *logrus.Logger
}

func NewCommentHandler(svc *application.CommentService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Svc: svc, Logger: logger}
}

type addCommentRequest struct {
	Content  string `json:"content" binding:"required"`
	ParentID string `json:"parent_id" binding:"omitempty,uuid"`
}

type editCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// Add creates a root comment, or a reply when parent_id is present.
func (h *CommentHandler) Add(kind entity.TargetKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
			return
		}
		target := entity.TargetRef{Kind: kind, ID: targetID(c, kind)}
		author := c.GetString("userID")

		var (
			cm  *entity.Comment
			err error
		)
		if req.ParentID != "" {
			cm, err = h.Svc.Reply(c.Request.Context(), author, target, req.ParentID, req.Content)
		} else {
			cm, err = h.Svc.Add(c.Request.Context(), author, target, req.Content)
		}
		if err != nil {
			fail(c, err)
			return
		}
		response.Success(c, http.StatusCreated, commentView(cm), "comment added", nil)
	}
}

func (h *CommentHandler) Update(kind entity.TargetKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req editCommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
			return
		}
		err := h.Svc.Update(c.Request.Context(), c.GetString("userID"), kind, c.Param("commentId"), req.Content)
		if err != nil {
			fail(c, err)
			return
		}
		response.Success[any](c, http.StatusOK, map[string]any{"updated": true}, "comment updated", nil)
	}
}

func (h *CommentHandler) Delete(kind entity.TargetKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := h.Svc.Delete(c.Request.Context(), c.GetString("userID"), kind, c.Param("commentId"))
		if err != nil {
			fail(c, err)
			return
		}
		response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "comment deleted", nil)
	}
}

func (h *CommentHandler) List(kind entity.TargetKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		target := entity.TargetRef{Kind: kind, ID: targetID(c, kind)}
		roots, err := h.Svc.ListRoots(c.Request.Context(), target)
		if err != nil {
			fail(c, err)
			return
		}
		views := make([]gin.H, 0, len(roots))
		for _, r := range roots {
			views = append(views, commentView(r))
		}
		response.Success(c, http.StatusOK, views, "comments", map[string]any{"count": len(views)})
	}
}

// targetID picks the right path parameter: journeys nest under /journeys/:id,
// posts under /posts/:postId.
func targetID(c *gin.Context, kind entity.TargetKind) string {
	if kind == entity.TargetPost {
		return c.Param("postId")
	}
	return c.Param("id")
}

func commentView(cm *entity.Comment) gin.H {
	view := gin.H{
		"id":         cm.ID,
		"user_id":    cm.UserID,
		"content":    cm.Content,
		"parent_id":  cm.ParentID,
		"created_at": cm.CreatedAt,
		"updated_at": cm.UpdatedAt,
	}
	if cm.Author != nil {
		view["author"] = gin.H{
			"id":         cm.Author.ID,
			"username":   cm.Author.Username,
			"full_name":  cm.Author.FullName(),
			"avatar_url": cm.Author.AvatarURL,
		}
	}
	if cm.IsMember != nil {
		view["is_member"] = *cm.IsMember
	}
	if len(cm.Replies) > 0 {
		replies := make([]gin.H, 0, len(cm.Replies))
		for _, r := range cm.Replies {
			replies = append(replies, commentView(r))
		}
		view["replies"] = replies
	}
	return view
}
