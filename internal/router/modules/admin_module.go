package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/sharejourney-api/internal/container"
	handlers "github.com/oksasatya/sharejourney-api/internal/interface/http"
	"github.com/oksasatya/sharejourney-api/internal/interface/middleware"
	"github.com/oksasatya/sharejourney-api/pkg/helpers"
)

// AdminModule wires the moderation review surface and platform statistics.
// Routes require auth and are additionally restricted to private-network
// clients, matching how the dashboard is deployed.
type AdminModule struct {
	Moderation *handlers.ModerationHandler
	Journeys   *handlers.JourneyHandler
	JWT        *helpers.JWTManager
}

func NewAdminModule(moderation *handlers.ModerationHandler, journeys *handlers.JourneyHandler, jwt *helpers.JWTManager) *AdminModule {
	return &AdminModule{Moderation: moderation, Journeys: journeys, JWT: jwt}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(privateOnly(), middleware.Auth(container.GetRedis(), m.JWT))
	{
		admin.GET("/reports/:id", m.Moderation.Profile)
		admin.POST("/reports/:id/recount", m.Moderation.Recount)
		admin.POST("/reports/:id/processed", m.Moderation.MarkProcessed)
		admin.GET("/statistics/journeys", m.Journeys.Statistics)
	}
}

func privateOnly() gin.HandlerFunc {
	allow := middleware.AllowPrivateIP()
	return func(c *gin.Context) {
		if !allow(c) {
			c.AbortWithStatus(404)
			return
		}
		c.Next()
	}
}
