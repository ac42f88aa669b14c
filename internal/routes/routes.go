package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/saeid-a/TennisCoachBack/internal/config"
	"github.com/saeid-a/TennisCoachBack/internal/features"
	"github.com/saeid-a/TennisCoachBack/internal/handlers"
	"github.com/saeid-a/TennisCoachBack/internal/middleware"
	"github.com/saeid-a/TennisCoachBack/internal/ratelimit"
	"github.com/saeid-a/TennisCoachBack/internal/repository"
	"github.com/saeid-a/TennisCoachBack/internal/services"
)

// RegisterRoutes mounts the API. redisClient may be nil, in which case
// failed logins are not throttled.
func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool, redisClient *redis.Client) error {
	tokenCfg := cfg.TokenConfig()
	gate := features.NewGateFromConfig(cfg)

	coachRepo := repository.NewCoachRepository(db)
	sessionRepo := repository.NewTrainingSessionRepository(db)

	authService := services.NewAuthService(db, coachRepo, tokenCfg)
	if redisClient != nil {
		authService.WithLoginThrottle(ratelimit.NewLoginLimiter(redisClient, ratelimit.LoginLimiterConfig{
			MaxFailures: cfg.LoginMaxFailures,
			Window:      cfg.LoginFailureWindow,
		}))
	}
	sessionService := services.NewTrainingSessionService(db, sessionRepo)

	authHandler := handlers.NewAuthHandler(authService)
	sessionHandler := handlers.NewTrainingSessionHandler(sessionService)

	if err := registerDocsRoutes(app, cfg); err != nil {
		return err
	}

	api := app.Group("/api")

	auth := api.Group("/auth", limiter.New(limiter.Config{
		Max:        cfg.AuthRateLimitPerMin,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many requests"})
		},
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(tokenCfg), authHandler.Me)

	// The gate runs first so a disabled feature is a 404 even without a token.
	sessions := api.Group("/training-sessions",
		middleware.FeatureRequired(gate, features.TrainingSessionManagement),
		middleware.AuthRequired(tokenCfg),
	)
	sessions.Get("", sessionHandler.List)
	sessions.Post("", sessionHandler.Create)
	sessions.Get("/:id", sessionHandler.Get)
	sessions.Put("/:id", sessionHandler.Update)
	sessions.Post("/:id/cancel", sessionHandler.Cancel)
	sessions.Post("/:id/complete", sessionHandler.Complete)

	return nil
}
