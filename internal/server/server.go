// Package server contains the HTTP surface of the application: dependency
// wiring, middleware setup, and route handlers.
package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/neointeraction/hrms-backend-sub001/internal/cache"
	"github.com/neointeraction/hrms-backend-sub001/internal/config"
	"github.com/neointeraction/hrms-backend-sub001/internal/database"
	"github.com/neointeraction/hrms-backend-sub001/internal/middleware"
	"github.com/neointeraction/hrms-backend-sub001/internal/repository"
	"github.com/neointeraction/hrms-backend-sub001/internal/service"
	"github.com/neointeraction/hrms-backend-sub001/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides the route handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus

	employeeRepo     repository.EmployeeRepository
	postRepo         repository.PostRepository
	commentRepo      repository.CommentRepository
	reactionRepo     repository.ReactionRepository
	pollRepo         repository.PollRepository
	appreciationRepo repository.AppreciationRepository
	badgeRepo        repository.BadgeRepository
	notificationRepo repository.NotificationRepository

	feedService         *service.FeedService
	commentService      *service.CommentService
	appreciationService *service.AppreciationService
	mediaService        *service.MediaService
}

// NewServer creates a new server instance with all dependencies wired.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	store, err := storage.NewS3Store(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("object store initialization failed: %w", err)
	}

	employeeRepo := repository.NewEmployeeRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	pollRepo := repository.NewPollRepository(db)
	appreciationRepo := repository.NewAppreciationRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	s := &Server{
		config:           cfg,
		db:               db,
		redis:            redisClient,
		promMiddleware:   middleware.InitMetrics("hrms-social-api"),
		employeeRepo:     employeeRepo,
		postRepo:         postRepo,
		commentRepo:      commentRepo,
		reactionRepo:     reactionRepo,
		pollRepo:         pollRepo,
		appreciationRepo: appreciationRepo,
		badgeRepo:        badgeRepo,
		notificationRepo: notificationRepo,
	}

	mentions := service.NewMentionNotifier(employeeRepo, notificationRepo)
	s.feedService = service.NewFeedService(postRepo, pollRepo, reactionRepo, commentRepo, employeeRepo, mentions)
	s.commentService = service.NewCommentService(commentRepo, postRepo, reactionRepo, employeeRepo, mentions)
	s.appreciationService = service.NewAppreciationService(appreciationRepo, badgeRepo, postRepo, employeeRepo)
	s.mediaService = service.NewMediaService(store, cfg)

	middleware.InitMiddleware(cfg)

	return s, nil
}

// SetupMiddleware registers the global middleware stack on the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.StructuredLogger())

	app.Use(cors.New(cors.Config{
		AllowOrigins: s.config.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: strings.Join([]string{
			fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete,
		}, ","),
	}))
	app.Use(helmet.New())

	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	s.promMiddleware.RegisterAt(app, "/metrics")
	app.Use(s.promMiddleware.Middleware)
}

// SetupRoutes registers all API routes.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health", s.Health)

	api := app.Group("/api", middleware.AuthRequired)

	api.Get("/feed", s.ListFeed)
	api.Get("/feed/check-new", s.CheckNewActivity)

	api.Post("/posts", s.CreatePost)
	api.Get("/posts/:id", s.GetPost)
	api.Put("/posts/:id", s.UpdatePost)
	api.Delete("/posts/:id", s.DeletePost)
	api.Put("/posts/:id/pin", s.PinPost)
	api.Post("/posts/:id/react", s.ReactToPost)
	api.Post("/posts/:id/vote", s.VotePoll)

	api.Get("/posts/:id/comments", s.ListComments)
	api.Post("/posts/:id/comments", s.AddComment)
	api.Post("/comments/:id/react", s.ReactToComment)

	api.Post("/upload-media", s.UploadMedia)

	api.Post("/appreciations", s.CreateAppreciation)
	api.Get("/appreciations", s.ListAppreciations)
	api.Get("/badges", s.ListBadges)
}

// Health reports liveness plus dependency reachability.
func (s *Server) Health(c *fiber.Ctx) error {
	status := fiber.Map{"status": "ok"}

	if sqlDB, err := s.db.DB(); err != nil || sqlDB.PingContext(c.Context()) != nil {
		status["status"] = "degraded"
		status["database"] = "unreachable"
	}
	if s.redis != nil {
		if err := s.redis.Ping(c.Context()).Err(); err != nil {
			status["cache"] = "unreachable"
		}
	}

	if status["status"] != "ok" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(status)
	}
	return c.JSON(status)
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
