package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/sharejourney-api/internal/container"
	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
	handlers "github.com/oksasatya/sharejourney-api/internal/interface/http"
	"github.com/oksasatya/sharejourney-api/internal/interface/middleware"
	"github.com/oksasatya/sharejourney-api/pkg/helpers"
)

// PostModule wires posts inside journeys and the post-level like/comment
// routes.
type PostModule struct {
	Posts    *handlers.PostHandler
	Comments *handlers.CommentHandler
	Social   *handlers.SocialHandler
	JWT      *helpers.JWTManager
}

func NewPostModule(posts *handlers.PostHandler, comments *handlers.CommentHandler, social *handlers.SocialHandler, jwt *helpers.JWTManager) *PostModule {
	return &PostModule{Posts: posts, Comments: comments, Social: social, JWT: jwt}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	journeys := rg.Group("/journeys")
	journeys.Use(middleware.Auth(container.GetRedis(), m.JWT))
	{
		journeys.POST("/:id/posts", m.Posts.Create)
		journeys.GET("/:id/posts", m.Posts.ListByJourney)
	}

	posts := rg.Group("/posts")
	posts.Use(middleware.Auth(container.GetRedis(), m.JWT))
	{
		posts.GET("/:postId", m.Posts.Get)
		posts.PUT("/:postId", m.Posts.Update)
		posts.DELETE("/:postId", m.Posts.Delete)
		posts.POST("/:postId/like", m.Social.ToggleLike(entity.TargetPost))

		posts.POST("/:postId/comments", m.Comments.Add(entity.TargetPost))
		posts.GET("/:postId/comments", m.Comments.List(entity.TargetPost))
		posts.PUT("/:postId/comments/:commentId", m.Comments.Update(entity.TargetPost))
		posts.DELETE("/:postId/comments/:commentId", m.Comments.Delete(entity.TargetPost))
	}
}
