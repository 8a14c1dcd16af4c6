package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/sharejourney-api/internal/container"
	handlers "github.com/oksasatya/sharejourney-api/internal/interface/http"
	"github.com/oksasatya/sharejourney-api/internal/interface/middleware"
	"github.com/oksasatya/sharejourney-api/pkg/helpers"
)

// NotificationModule wires the recipient-facing notification routes.
type NotificationModule struct {
	Handler *handlers.NotificationHandler
	JWT     *helpers.JWTManager
}

func NewNotificationModule(h *handlers.NotificationHandler, jwt *helpers.JWTManager) *NotificationModule {
	return &NotificationModule{Handler: h, JWT: jwt}
}

func (m *NotificationModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/notifications")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	{
		auth.GET("", m.Handler.List)
		auth.POST("/:id/read", m.Handler.MarkRead)
		auth.GET("/:id/redirect", m.Handler.Redirect)
	}
}
