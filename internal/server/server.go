// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/gosh00/FitnessApp/docs" // swagger docs
	"github.com/gosh00/FitnessApp/internal/bootstrap"
	"github.com/gosh00/FitnessApp/internal/config"
	"github.com/gosh00/FitnessApp/internal/featureflags"
	"github.com/gosh00/FitnessApp/internal/middleware"
	"github.com/gosh00/FitnessApp/internal/models"
	"github.com/gosh00/FitnessApp/internal/notifications"
	"github.com/gosh00/FitnessApp/internal/nutrition"
	"github.com/gosh00/FitnessApp/internal/repository"
	"github.com/gosh00/FitnessApp/internal/service"
	"github.com/gosh00/FitnessApp/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const bodyLimit = 10 * 1024 * 1024

// Deps are the external collaborators the server does not build itself.
// Nil fields disable the features that need them.
type Deps struct {
	Storage   storage.ObjectStorage
	Nutrition service.NutritionLookup
}

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc
	userRepo       repository.UserRepository
	notifier       *notifications.Notifier
	hub            *notifications.Hub
	featureFlags   *featureflags.Manager

	workoutService   *service.WorkoutService
	commentService   *service.CommentService
	profileService   *service.ProfileService
	logService       *service.LogService
	exerciseService  *service.ExerciseService
	authService      *service.AuthService
	nutritionService *service.NutritionService
	foodService      *service.FoodService
}

// NewServer connects to the database and Redis, builds the object storage and
// nutrition clients from configuration and returns a ready server.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	db, rdb, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{
		SeedCatalog: cfg.ExerciseCatalogURL != "",
	})
	if err != nil {
		return nil, err
	}

	deps := Deps{
		Nutrition: nutrition.NewClient(cfg.NutritionAPIURL, cfg.NinjasAPIKey,
			time.Duration(cfg.NutritionTimeout)*time.Second),
	}
	if cfg.S3Bucket != "" {
		store, err := storage.NewS3Storage(ctx, storage.S3Config{
			Endpoint:      cfg.S3Endpoint,
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("object storage: %w", err)
		}
		deps.Storage = store
	} else {
		middleware.Logger.Warn("S3_BUCKET not set, avatar uploads are disabled")
	}

	return NewServerWithDeps(cfg, db, rdb, deps)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use it with an in-memory database and miniredis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, deps Deps) (*Server, error) {
	if cfg == nil || db == nil {
		return nil, errors.New("config and database are required")
	}
	loc := cfg.Location()
	flags := featureflags.NewManager(cfg.FeatureFlags)

	userRepo := repository.NewUserRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	logRepo := repository.NewExerciseLogRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	foodRepo := repository.NewFoodRepository(db)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("fitness-api"),
		userRepo:       userRepo,
		featureFlags:   flags,
	}

	// Live events go through Redis so every instance sees them; without Redis
	// the hub delivers to its own clients directly.
	var events service.EventPublisher
	if flags.On(featureflags.LiveFeed) {
		server.hub = notifications.NewHub()
		events = server.hub
		if redisClient != nil {
			server.notifier = notifications.NewNotifier(redisClient)
			events = server.notifier
		}
	}

	server.workoutService = service.NewWorkoutService(workoutRepo, exerciseRepo, userRepo, redisClient, flags, events, loc)
	server.commentService = service.NewCommentService(commentRepo, workoutRepo, userRepo, events)
	server.profileService = service.NewProfileService(userRepo, deps.Storage, flags, cfg.AvatarMaxUploadMB)
	server.logService = service.NewLogService(logRepo, loc)
	server.exerciseService = service.NewExerciseService(exerciseRepo, redisClient, flags)
	server.authService = service.NewAuthService(cfg.AdminEmail)
	server.nutritionService = service.NewNutritionService(deps.Nutrition, redisClient)
	server.foodService = service.NewFoodService(foodRepo, loc)

	return server, nil
}

// NewApp builds the Fiber app with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "FitnessApp API",
		BodyLimit:    bodyLimit,
		ErrorHandler: s.errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
	}
	middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())

	// CORS must run before anything that can short-circuit so browser clients
	// still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		MaxAge:       86400,
	}))

	// Identity before the context middleware so logs carry the caller.
	app.Use(middleware.Identity(s.config.AuthJWTSecret, false))
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.StructuredLogger())

	perMinute := s.config.RateLimitPerMinute
	if perMinute <= 0 {
		perMinute = 120
	}
	app.Use(limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions || !s.config.IsProduction()
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error: "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health", s.HealthCheck)
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/health", s.HealthCheck)
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "FitnessApp Metrics Dashboard",
	}))
	api.Get("/swagger/*", swagger.HandlerDefault)

	api.Post("/auth/sync", s.SyncAuth)

	exercises := api.Group("/exercises")
	exercises.Get("/", s.ListExercises)
	exercises.Post("/", middleware.Identity(s.config.AuthJWTSecret, true),
		middleware.AdminOnly(s.config.AdminEmail), s.CreateExercise)

	logs := api.Group("/logs")
	logs.Post("/", s.CreateLog)
	logs.Get("/last", s.GetLastLog)
	logs.Get("/history", s.GetLogHistory)
	logs.Get("/stats", s.GetLogStats)

	api.Get("/foodinfo", middleware.RateLimit(
		s.redis, 30, time.Minute, "foodinfo"), s.GetFoodInfo)

	workouts := api.Group("/workouts")
	workouts.Get("/", s.ListWorkouts)
	workouts.Post("/", middleware.RateLimit(
		s.redis, 20, time.Minute, "create_workout"), s.CreateWorkout)
	workouts.Post("/:id/like", middleware.RateLimit(
		s.redis, 60, time.Minute, "like_workout"), s.ToggleLike)
	workouts.Get("/:id/comments", s.ListComments)
	workouts.Post("/:id/comments", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_comment"), s.AddComment)

	profile := api.Group("/profile")
	profile.Post("/ensure", s.EnsureProfile)
	profile.Post("/update", s.UpdateProfile)
	profile.Post("/avatar", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "avatar_upload"), s.UploadAvatar)

	api.Get("/foods", s.SearchFoods)
	foodLogs := api.Group("/foodlogs")
	foodLogs.Get("/", s.GetFoodLogs)
	foodLogs.Post("/", s.CreateFoodLog)
	foodLogs.Delete("/:id", s.DeleteFoodLog)

	api.Post("/calories/estimate", s.EstimateCalories)

	if s.hub != nil {
		api.Get("/ws/feed", s.FeedUpgrade, s.FeedWebSocketHandler())
	}
}

// HealthCheck reports that the process is serving requests.
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"message": "FitnessApp API is running",
	})
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck pings the database and, when configured, Redis. Redis is
// optional: without it the feed cache and cross-instance events are off.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus != "healthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start builds the app, wires the live feed to Redis and listens on the
// configured port. It blocks until the listener stops.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	s.app = s.NewApp()

	if s.hub != nil && s.notifier != nil {
		go func() {
			if err := s.hub.StartWiring(s.shutdownCtx, s.notifier); err != nil {
				middleware.Logger.Error("failed to start feed wiring",
					slog.String("hub", s.hub.Name()),
					slog.String("error", err.Error()),
				)
			}
		}()
	}

	middleware.Logger.Info("server starting", slog.String("port", s.config.Port), slog.String("env", s.config.Env))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if s.hub != nil {
		if err := s.hub.Shutdown(ctx); err != nil {
			middleware.Logger.Error("error shutting down hub", slog.String("hub", s.hub.Name()), slog.String("error", err.Error()))
		}
	}

	if err := bootstrap.Close(s.db, s.redis); err != nil {
		middleware.Logger.Error("error closing runtime", slog.String("error", err.Error()))
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
