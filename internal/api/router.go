package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/visage-id/visage/internal/api/docs"
	"github.com/visage-id/visage/internal/api/handler"
	"github.com/visage-id/visage/internal/api/middleware"
	"github.com/visage-id/visage/internal/match"
	"github.com/visage-id/visage/internal/repository"
	"github.com/visage-id/visage/internal/service"
)

type Dependencies struct {
	IdentityRepo       *repository.IdentityRepository
	RecognitionLogRepo *repository.RecognitionLogRepository
	AuthPolicy         match.Policy
	RegistrationPolicy match.Policy
	DB                 *pgxpool.Pool
}

type Router struct {
	app    *fiber.App
	logger *slog.Logger
	deps   *Dependencies
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "Visage API",
		BodyLimit:    4 * 1024 * 1024, // room for base64 profile images
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
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Swagger documentation
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	// Health check endpoints
	var pinger handler.Pinger
	if r.deps != nil && r.deps.DB != nil {
		pinger = r.deps.DB
	}
	healthHandler := handler.NewHealthHandler(pinger)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	// Only configure API routes if dependencies were provided
	if r.deps == nil {
		return
	}

	recognitionService := service.NewRecognitionService(
		r.deps.IdentityRepo,
		r.deps.RecognitionLogRepo,
		r.deps.AuthPolicy,
		r.deps.RegistrationPolicy,
		r.logger,
	)

	identityHandler := handler.NewIdentityHandler(recognitionService, r.logger)
	recognizeHandler := handler.NewRecognizeHandler(recognitionService, r.logger)
	statsHandler := handler.NewStatsHandler(recognitionService, r.logger)

	v1 := r.app.Group("/v1")

	// Identity routes
	v1.Post("/identities", identityHandler.Register)
	v1.Get("/identities", identityHandler.List)
	v1.Get("/identities/:id", identityHandler.Get)
	v1.Patch("/identities/:id", identityHandler.Update)
	v1.Delete("/identities/:id", identityHandler.Delete)

	// Recognition routes
	v1.Post("/recognize", recognizeHandler.Recognize)
	v1.Get("/stats", statsHandler.Stats)
	v1.Get("/recognitions", statsHandler.Recognitions)
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	return r.app.Shutdown()
}
