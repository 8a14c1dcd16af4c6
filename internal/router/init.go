package router

import (
	"github.com/oksasatya/sharejourney-api/internal/application"
	"github.com/oksasatya/sharejourney-api/internal/container"
	pginfra "github.com/oksasatya/sharejourney-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/sharejourney-api/internal/interface/http"
	"github.com/oksasatya/sharejourney-api/internal/router/modules"
)

// InitModules builds every repository, service and handler from the
// container singletons and registers the feature modules. Called once at
// startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	journeys := pginfra.NewJourneyRepository(pool)
	participations := pginfra.NewParticipationRepository(pool)
	posts := pginfra.NewPostRepository(pool)
	comments := pginfra.NewCommentRepository(pool)
	likes := pginfra.NewLikeRepository(pool)
	follows := pginfra.NewFollowRepository(pool)
	reports := pginfra.NewReportRepository(pool)
	notifications := pginfra.NewNotificationRepository(pool)

	var pub application.Publisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}
	notifier := application.NewNotifier(notifications, pub, logger)

	journeySvc := &application.JourneyService{
		Journeys:        journeys,
		Participations:  participations,
		Users:           users,
		Posts:           posts,
		Comments:        comments,
		Notifier:        notifier,
		Logger:          logger,
		ES:              container.GetES(),
		ESJourneysIndex: cfg.ESJourneysIndex,
	}
	commentSvc := &application.CommentService{
		Comments: comments,
		Journeys: journeys,
		Posts:    posts,
		Users:    users,
		Notifier: notifier,
	}
	reactionSvc := &application.ReactionService{
		Likes:    likes,
		Journeys: journeys,
		Posts:    posts,
		Users:    users,
		Notifier: notifier,
	}
	socialSvc := &application.SocialService{Follows: follows, Users: users}
	moderationSvc := &application.ModerationService{Reports: reports, Users: users}
	notificationSvc := &application.NotificationService{Notifications: notifications}
	postSvc := &application.PostService{
		Posts:          posts,
		Journeys:       journeys,
		Participations: participations,
		GCS:            container.GetGCS(),
		Bucket:         cfg.GCSBucket,
	}
	userSvc := &application.UserService{
		Users:        users,
		Follows:      follows,
		Journeys:     journeys,
		JWT:          container.GetJWT(),
		Redis:        container.GetRedis(),
		GCS:          container.GetGCS(),
		Bucket:       cfg.GCSBucket,
		ES:           container.GetES(),
		ESUsersIndex: cfg.ESUsersIndex,
		Logger:       logger,
	}

	userHandler := handlers.NewUserHandler(userSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	journeyHandler := handlers.NewJourneyHandler(journeySvc, logger)
	postHandler := handlers.NewPostHandler(postSvc, logger)
	commentHandler := handlers.NewCommentHandler(commentSvc, logger)
	socialHandler := handlers.NewSocialHandler(reactionSvc, socialSvc, logger)
	moderationHandler := handlers.NewModerationHandler(moderationSvc, logger)
	notificationHandler := handlers.NewNotificationHandler(notificationSvc, logger)

	jwt := container.GetJWT()
	r.Add(
		modules.NewUserModule(userHandler, socialHandler, moderationHandler, jwt),
		modules.NewJourneyModule(journeyHandler, commentHandler, socialHandler, jwt),
		modules.NewPostModule(postHandler, commentHandler, socialHandler, jwt),
		modules.NewNotificationModule(notificationHandler, jwt),
		modules.NewAdminModule(moderationHandler, journeyHandler, jwt),
	)
}
