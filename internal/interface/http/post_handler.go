package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/sharejourney-api/internal/application"
	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
	"github.com/oksasatya/sharejourney-api/pkg/response"
)

type PostHandler struct {
	Svc    *application.PostService
	Logger *logrus.Logger
}

func NewPostHandler(svc *application.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger}
}

// Create accepts multipart form data: text fields plus repeated "images"
// file parts.
func (h *PostHandler) Create(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "multipart form required", nil)
		return
	}
	in := application.CreatePostInput{
		JourneyID:              c.Param("id"),
		Content:                c.PostForm("content"),
		VisitPoint:             c.PostForm("visit_point"),
		EstimatedTimeOfArrival: c.PostForm("eta"),
		Latitude:               floatForm(c, "latitude"),
		Longitude:              floatForm(c, "longitude"),
	}
	files := form.File["images"]
	opened := make([]interface{ Close() error }, 0, len(files))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "unreadable image "+fh.Filename, nil)
			return
		}
		opened = append(opened, f)
		in.Images = append(in.Images, application.ImageUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
		})
	}

	p, err := h.Svc.Create(c.Request.Context(), c.GetString("userID"), in)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, postView(p), "post created", nil)
}

func (h *PostHandler) Get(c *gin.Context) {
	p, stats, err := h.Svc.Get(c.Request.Context(), c.Param("postId"), c.GetString("userID"))
	if err != nil {
		fail(c, err)
		return
	}
	view := postView(p)
	view["liked"] = stats.Liked
	view["likes_count"] = stats.LikesCount
	view["comments_count"] = stats.CommentsCount
	response.Success(c, http.StatusOK, view, "post", nil)
}

type updatePostRequest struct {
	Content                string   `json:"content"`
	VisitPoint             string   `json:"visit_point"`
	Latitude               *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude              *float64 `json:"longitude" binding:"omitempty,longitude"`
	EstimatedTimeOfArrival string   `json:"eta"`
}

func (h *PostHandler) Update(c *gin.Context) {
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", nil)
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), c.GetString("userID"), c.Param("postId"), application.CreatePostInput{
		Content:                req.Content,
		VisitPoint:             req.VisitPoint,
		Latitude:               req.Latitude,
		Longitude:              req.Longitude,
		EstimatedTimeOfArrival: req.EstimatedTimeOfArrival,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, postView(p), "post updated", nil)
}

func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.GetString("userID"), c.Param("postId")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "post deleted", nil)
}

func (h *PostHandler) ListByJourney(c *gin.Context) {
	posts, err := h.Svc.ListByJourney(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	views := make([]gin.H, 0, len(posts))
	for i := range posts {
		views = append(views, postView(&posts[i]))
	}
	response.Success(c, http.StatusOK, views, "posts", map[string]any{"count": len(views)})
}

func postView(p *entity.Post) gin.H {
	images := make([]gin.H, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, gin.H{"id": img.ID, "url": img.URL, "position": img.Position})
	}
	return gin.H{
		"id":          p.ID,
		"journey_id":  p.JourneyID,
		"user_id":     p.UserID,
		"content":     p.Content,
		"visit_point": p.VisitPoint,
		"latitude":    p.Latitude,
		"longitude":   p.Longitude,
		"eta":         p.EstimatedTimeOfArrival,
		"images":      images,
		"created_at":  p.CreatedAt,
		"updated_at":  p.UpdatedAt,
	}
}

func floatForm(c *gin.Context, name string) *float64 {
	v := c.PostForm(name)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}
