package api

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saturnino-fabrica-de-software/quizzo/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/quizzo/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/quizzo/internal/auth"
	"github.com/saturnino-fabrica-de-software/quizzo/internal/cache"
	"github.com/saturnino-fabrica-de-software/quizzo/internal/config"
	"github.com/saturnino-fabrica-de-software/quizzo/internal/repository"
	"github.com/saturnino-fabrica-de-software/quizzo/internal/service"
)

type Dependencies struct {
	Config     *config.Config
	JWTService *auth.JWTService
	Google     *auth.GoogleOAuth
	Generator  service.QuestionGenerator
	DB         *pgxpool.Pool
}

type Router struct {
	app         *fiber.App
	logger      *slog.Logger
	deps        *Dependencies
	rateLimiter *middleware.RateLimiter
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "Quizzo API",
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))

	allowOrigins := "*"
	if r.deps != nil && r.deps.Config != nil && r.deps.Config.IsProduction() {
		allowOrigins = r.deps.Config.FrontendURL
	}
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Health check endpoints (no auth required)
	var healthHandler *handler.HealthHandler
	if r.deps != nil && r.deps.DB != nil {
		healthHandler = handler.NewHealthHandler(r.deps.DB)
	} else {
		healthHandler = handler.NewHealthHandler(nil)
	}
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	// Only configure application routes if dependencies were provided
	if r.deps == nil {
		return
	}

	// Repositories
	userRepo := repository.NewUserRepository(r.deps.DB)
	questionRepo := repository.NewQuestionRepository(r.deps.DB)
	resultRepo := repository.NewResultRepository(r.deps.DB)
	configRepo := repository.NewAssessmentConfigRepository(r.deps.DB)
	pgCache := cache.NewPGCache(r.deps.DB)

	// Services
	faceAuthService := service.NewFaceAuthService(userRepo, r.deps.JWTService, r.logger)
	userService := service.NewUserService(userRepo, r.deps.JWTService)
	questionService := service.NewQuestionService(questionRepo, configRepo, r.deps.Generator, pgCache, r.logger)
	resultService := service.NewResultService(resultRepo, userRepo)

	// Handlers
	faceHandler := handler.NewFaceHandler(faceAuthService, r.logger)
	authHandler := handler.NewAuthHandler(userService, r.deps.Google, r.deps.Config.FrontendURL, r.logger)
	questionHandler := handler.NewQuestionHandler(questionService, r.logger)
	resultHandler := handler.NewResultHandler(resultService, r.logger)

	// Session middleware
	authRequired := middleware.Auth(r.deps.JWTService)

	// Rate limiting keyed by session user or client IP
	r.rateLimiter = middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
	limited := r.rateLimiter.Handler()

	// Auth routes
	authGroup := r.app.Group("/auth", limited)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/google", authHandler.GoogleRedirect)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)
	authGroup.Get("/status", authRequired, authHandler.Status)
	authGroup.Post("/logout", authHandler.Logout)

	// Face routes: verification is the login path, enrollment needs a session
	authGroup.Post("/face", faceHandler.Verify)
	authGroup.Post("/face/register", authRequired, faceHandler.Enroll)

	// API routes (session required)
	apiGroup := r.app.Group("/api", limited, authRequired)
	apiGroup.Post("/assessments", questionHandler.SetAssessment)
	apiGroup.Get("/assessments", questionHandler.GetAssessment)
	apiGroup.Get("/questions", questionHandler.Generate)
	apiGroup.Post("/questions", middleware.AdminOnly(), questionHandler.AddQuestions)
	apiGroup.Post("/results", resultHandler.Create)
	apiGroup.Get("/results/user/:userId", resultHandler.History)
	apiGroup.Get("/results/:id", resultHandler.Get)
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

// Shutdown drains in-flight requests, bounded by ctx.
func (r *Router) Shutdown(ctx context.Context) error {
	// Stop rate limiter cleanup goroutine
	if r.rateLimiter != nil {
		r.rateLimiter.Stop()
	}

	return r.app.ShutdownWithContext(ctx)
}
