package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/saeid-a/TennisCoachBack/internal/config"
	"github.com/saeid-a/TennisCoachBack/internal/database"
	"github.com/saeid-a/TennisCoachBack/internal/handlers"
	"github.com/saeid-a/TennisCoachBack/internal/ratelimit"
	"github.com/saeid-a/TennisCoachBack/internal/routes"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Connect to Database
	if cfg.DBUrl == "" {
		log.Fatal("DB_URL is required")
	}
	if cfg.AutoMigrateEnabled() {
		dir, err := database.FindMigrationsDir(cfg.MigrationsPath)
		if err != nil {
			log.Fatalf("Failed to locate migrations: %v", err)
		}
		if err := database.RunMigrations(cfg.DBUrl, dir, database.MigrateUp); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
		log.Printf("Applied migrations from %s", dir)
	}
	pool, err := database.Connect(ctx, cfg.DBUrl)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// 3. Optional Redis for login throttling
	var redisClient *redis.Client
	if cfg.LoginThrottleEnabled() {
		redisClient, err = ratelimit.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Printf("Login throttling disabled: %v", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	// 4. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:      "TennisCoachBack",
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.AllowedOrigins(),
		AllowHeaders:  "Authorization, Content-Type",
		AllowMethods:  "GET,POST,PUT,OPTIONS",
		ExposeHeaders: "Location",
	}))
	app.Use(compress.New())
	app.Use(logger.New())

	// Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
	if err := routes.RegisterRoutes(app, cfg, pool, redisClient); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Server shutdown: %v", err)
		}
	}()

	// 5. Start Server
	log.Printf("Server starting on port %s (env=%s)", cfg.Port, cfg.AppEnv)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
