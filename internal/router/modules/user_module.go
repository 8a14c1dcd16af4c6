package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/sharejourney-api/internal/container"
	handlers "github.com/oksasatya/sharejourney-api/internal/interface/http"
	"github.com/oksasatya/sharejourney-api/internal/interface/middleware"
	"github.com/oksasatya/sharejourney-api/pkg/helpers"
)

// UserModule wires identity, profile and social-graph routes.
// Public: POST /api/register, /api/login, /api/refresh
// Protected: session, profile, avatar, user lookup/search, follow, report.
type UserModule struct {
	Users      *handlers.UserHandler
	Social     *handlers.SocialHandler
	Moderation *handlers.ModerationHandler
	JWT        *helpers.JWTManager
}

func NewUserModule(users *handlers.UserHandler, social *handlers.SocialHandler, moderation *handlers.ModerationHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Users: users, Social: social, Moderation: moderation, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIP(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/register", registerLimiter, m.Users.Register)
	rg.POST("/login", loginLimiter, m.Users.Login)
	rg.POST("/refresh", refreshLimiter, m.Users.Refresh)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.POST("/logout", m.Users.Logout)
		auth.GET("/profile", m.Users.GetProfile)
		auth.PUT("/profile", m.Users.UpdateProfile)
		auth.POST("/profile/avatar", m.Users.UploadAvatar)
		auth.DELETE("/profile", m.Users.Deactivate)

		auth.GET("/users/search", m.Users.Search)
		auth.GET("/users/:id", m.Users.GetUserByID)
		auth.POST("/users/:id/follow", m.Social.ToggleFollow)
		auth.GET("/users/:id/followers", m.Social.Followers)
		auth.GET("/users/:id/following", m.Social.Following)
		auth.POST("/users/:id/report", m.Moderation.Report)
	}
}
