package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"tickethub/config"
	"tickethub/handlers"
	"tickethub/middleware"
	"tickethub/models"
	"tickethub/monitoring"
	"tickethub/security"
	"tickethub/services"
	"tickethub/store"
	"tickethub/utils"

	_ "tickethub/migrations"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Start() error {
	app := pocketbase.New()

	cfg := config.LoadConfig()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	redisClient := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	defer redisClient.Close()

	notifier := services.NewNotifier(cfg.PubNubPublishKey, cfg.PubNubSubscribeKey)

	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: cfg.Environment == "development",
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		eventStore := store.NewEventStore(app)
		ticketStore := store.NewTicketStore(app)
		profileStore := store.NewProfileStore(app)

		authService := services.NewAuthService(app, profileStore, redisClient, cfg.JWTSecret, cfg.TokenTTL)
		eventService := services.NewEventService(eventStore, notifier)
		profileService := services.NewProfileService(profileStore)
		ticketService := services.NewTicketService(ticketStore, eventStore, redisClient, notifier, cfg.GenerateLockTTL, cfg.CodeInsertRetries)

		authHandler := handlers.NewAuthHandler(authService)
		eventHandler := handlers.NewEventHandler(eventService)
		ticketHandler := handlers.NewTicketHandler(ticketService)
		userHandler := handlers.NewUserHandler(profileService)

		auth := middleware.NewAuth(authService, profileStore, cfg.JWTSecret)
		limiter := security.NewRateLimiter(redisClient, cfg.RateLimitPerMinute)

		api := se.Router.Group("/api/v1")
		api.BindFunc(limiter.Limit())
		if cfg.EnableMetrics {
			api.BindFunc(monitoring.RequestMetrics())
		}

		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout).BindFunc(auth.RequireAuth())

		api.GET("/users/me", userHandler.Me).BindFunc(auth.RequireAuth())
		api.PUT("/users/me", userHandler.UpdateMe).BindFunc(auth.RequireAuth())
		api.GET("/users", userHandler.List).BindFunc(auth.RequireAuth(), auth.RequireAdmin())
		api.GET("/users/{id}", userHandler.GetByID).BindFunc(auth.RequireAuth(), auth.RequireAdmin())
		api.PUT("/users/{id}", userHandler.Update).BindFunc(auth.RequireAuth(), auth.RequireAdmin())

		api.GET("/events", eventHandler.List)
		api.POST("/events", eventHandler.Create).BindFunc(auth.RequireAuth(), auth.RequireAdmin())
		api.GET("/events/user/me", eventHandler.MyEvents).BindFunc(auth.RequireAuth())
		api.GET("/events/{id}", eventHandler.GetByID)
		api.PUT("/events/{id}", eventHandler.Update).BindFunc(auth.RequireAuth())
		api.DELETE("/events/{id}", eventHandler.Delete).BindFunc(auth.RequireAuth())
		api.GET("/events/{id}/ticket-categories", ticketHandler.ListCategories)
		api.POST("/events/{id}/ticket-categories", ticketHandler.CreateCategory).BindFunc(auth.RequireAuth())

		api.GET("/tickets/categories/{id}", ticketHandler.GetCategory)
		api.PUT("/tickets/categories/{id}", ticketHandler.UpdateCategory).BindFunc(auth.RequireAuth())
		api.DELETE("/tickets/categories/{id}", ticketHandler.DeleteCategory).BindFunc(auth.RequireAuth())
		api.POST("/tickets/categories/{id}/generate", ticketHandler.Generate).BindFunc(auth.RequireAuth())
		api.GET("/tickets/categories/{id}/tickets", ticketHandler.ListByCategory).BindFunc(auth.RequireAuth())
		api.GET("/tickets/my-tickets", ticketHandler.MyTickets).BindFunc(auth.RequireAuth())
		api.GET("/tickets/{id}", ticketHandler.GetTicket).BindFunc(auth.RequireAuth())
		api.PUT("/tickets/{id}", ticketHandler.UpdateTicket).BindFunc(auth.RequireAuth())

		se.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(http.StatusServiceUnavailable, map[string]any{
					"success": false,
					"message": "Redis is unreachable",
				})
			}
			if _, err := app.DB().NewQuery("SELECT 1").Execute(); err != nil {
				return e.JSON(http.StatusServiceUnavailable, map[string]any{
					"success": false,
					"message": "Datastore is unreachable",
				})
			}
			return e.JSON(http.StatusOK, map[string]any{
				"success": true,
				"message": "ok",
			})
		})

		if cfg.EnableMetrics {
			monitoring.NewMonitor(redisClient, cfg.MetricsInterval, func(ctx context.Context) (int64, error) {
				return eventStore.Count(ctx, models.EventFilter{})
			})
			se.Router.GET("/metrics", apis.WrapStdHandler(promhttp.Handler()))
		}

		slog.Info("routes registered", "env", cfg.Environment)
		return se.Next()
	})

	return app.Start()
}
