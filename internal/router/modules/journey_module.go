package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/sharejourney-api/internal/container"
	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
	handlers "github.com/oksasatya/sharejourney-api/internal/interface/http"
	"github.com/oksasatya/sharejourney-api/internal/interface/middleware"
	"github.com/oksasatya/sharejourney-api/pkg/helpers"
)

// JourneyModule wires journey lifecycle, membership, rating, likes and
// comment threads. Everything requires authentication.
type JourneyModule struct {
	Journeys *handlers.JourneyHandler
	Comments *handlers.CommentHandler
	Social   *handlers.SocialHandler
	JWT      *helpers.JWTManager
}

func NewJourneyModule(journeys *handlers.JourneyHandler, comments *handlers.CommentHandler, social *handlers.SocialHandler, jwt *helpers.JWTManager) *JourneyModule {
	return &JourneyModule{Journeys: journeys, Comments: comments, Social: social, JWT: jwt}
}

func (m *JourneyModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/journeys")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	{
		auth.POST("", m.Journeys.Create)
		auth.GET("", m.Journeys.ListActive)
		auth.GET("/mine", m.Journeys.ListMine)
		auth.GET("/search", m.Journeys.Search)
		auth.GET("/:id", m.Journeys.Get)
		auth.POST("/:id/lock", m.Journeys.Lock)
		auth.POST("/:id/complete", m.Journeys.Complete)
		auth.POST("/:id/approve", m.Journeys.Approve)
		auth.DELETE("/:id/participants/:userId", m.Journeys.RemoveParticipant)
		auth.POST("/:id/rate", m.Journeys.Rate)
		auth.GET("/:id/members", m.Journeys.Members)
		auth.POST("/:id/like", m.Social.ToggleLike(entity.TargetJourney))

		auth.POST("/:id/comments", m.Comments.Add(entity.TargetJourney))
		auth.GET("/:id/comments", m.Comments.List(entity.TargetJourney))
		auth.PUT("/:id/comments/:commentId", m.Comments.Update(entity.TargetJourney))
		auth.DELETE("/:id/comments/:commentId", m.Comments.Delete(entity.TargetJourney))
	}

	// A user's journeys hang off the users resource.
	users := rg.Group("/users")
	users.Use(middleware.Auth(container.GetRedis(), m.JWT))
	users.GET("/:id/journeys", m.Journeys.ListByUser)
}
