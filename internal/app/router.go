package app

import (
	"github.com/go-chi/chi/v5"

	"github.com/zaikanghel/Photo-Earn/internal/handler/middleware"
	notificationhandler "github.com/zaikanghel/Photo-Earn/internal/handler/notification"
	photohandler "github.com/zaikanghel/Photo-Earn/internal/handler/photo"
	settingshandler "github.com/zaikanghel/Photo-Earn/internal/handler/settings"
	userhandler "github.com/zaikanghel/Photo-Earn/internal/handler/user"
	withdrawalhandler "github.com/zaikanghel/Photo-Earn/internal/handler/withdrawal"
	"github.com/zaikanghel/Photo-Earn/internal/postgres"
	"github.com/zaikanghel/Photo-Earn/internal/service"
	"github.com/zaikanghel/Photo-Earn/pkg/money"
)

func (app App) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.WithRequestID)
	r.Use(middleware.WithAuth(app.Config))

	p := postgres.New(app.DB)
	rewards := money.DefaultRewards()

	notifications := service.NewNotificationService(p)
	settings := service.NewSettingsService(p)
	referrals := service.NewReferralResolver(p, rewards.ReferralRate)

	userService := service.NewUserService(p, notifications, app.Config, rewards)
	userHandler := userhandler.New(userService)

	photoService := service.NewPhotoService(p, notifications)
	reviewService := service.NewReviewService(p, referrals, notifications, rewards)
	photoHandler := photohandler.New(photoService, reviewService)

	withdrawalService := service.NewWithdrawalService(p, settings, notifications)
	withdrawalHandler := withdrawalhandler.New(withdrawalService)

	notificationHandler := notificationhandler.New(notifications)
	settingsHandler := settingshandler.New(settings, service.NewStatsService(p))

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.Get("/stats", settingsHandler.Stats)

		r.Get("/users/me", userHandler.Me)
		r.Get("/invitations", userHandler.Invitations)

		r.Post("/photos", photoHandler.Upload)
		r.Get("/photos", photoHandler.ListPhotos)

		r.Post("/withdrawals", withdrawalHandler.Request)
		r.Get("/withdrawals", withdrawalHandler.ListWithdrawals)

		r.Get("/notifications", notificationHandler.List)
		r.Post("/notifications/{id}/read", notificationHandler.MarkRead)
		r.Post("/notifications/read-all", notificationHandler.MarkAllRead)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.WithAdmin)

			r.Get("/photos", photoHandler.ListPending)
			r.Post("/photos/{id}/approve", photoHandler.Approve)
			r.Post("/photos/{id}/reject", photoHandler.Reject)

			r.Get("/withdrawals", withdrawalHandler.ListPending)
			r.Post("/withdrawals/{id}/complete", withdrawalHandler.Complete)
			r.Post("/withdrawals/{id}/reject", withdrawalHandler.Reject)

			r.Get("/settings", settingsHandler.Get)
			r.Put("/settings", settingsHandler.Update)

			r.Get("/notifications", notificationHandler.ListAdmin)
		})
	})

	return r
}
