// Package httpserver exposes the ContentForge REST API over Fiber.
//
// Every error response carries a JSON body of the form {"detail": "..."} so
// clients can rely on a single normalization contract.
package httpserver

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/avaskin/contentforge/internal/config"
	"github.com/avaskin/contentforge/internal/errs"
	"github.com/avaskin/contentforge/internal/service"
)

// Server wires services into HTTP handlers.
type Server struct {
	auth     service.AuthService
	content  service.ContentService
	validate *validator.Validate
	cfg      *config.Config
	log      *zap.Logger

	aiConfigured bool
}

// New constructs the HTTP server with injected services.
func New(auth service.AuthService, content service.ContentService, cfg *config.Config, log *zap.Logger) *Server {
	return &Server{
		auth:         auth,
		content:      content,
		validate:     validator.New(),
		cfg:          cfg,
		log:          log,
		aiConfigured: cfg.AI.OpenAIAPIKey != "",
	}
}

// App builds the Fiber application with middleware and routes registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      s.cfg.App.ServiceName,
		ErrorHandler: s.errorHandler,
	})

	app.Use(Recover(s.log))
	app.Use(RequestLogger(s.log))

	app.Get("/health", s.handleHealth)

	auth := app.Group("/auth")
	auth.Post("/register", s.handleRegister)
	auth.Post("/login", s.handleLogin)

	api := app.Group("/api", s.RequireAuth)
	api.Post("/generate", s.handleGenerate)
	api.Get("/history", s.handleHistory)
	api.Get("/history/:id", s.handleContentByID)
	api.Delete("/history/:id", s.handleDeleteContent)

	return app
}

// detail renders the uniform error body.
func detail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"detail": msg})
}

// errorHandler converts unhandled errors into the detail envelope,
// mapping domain sentinels onto HTTP statuses.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return detail(c, fe.Code, fe.Message)
	case errors.Is(err, errs.ErrNotFound):
		return detail(c, fiber.StatusNotFound, "Content not found")
	case errors.Is(err, errs.ErrUnauthorized):
		return detail(c, fiber.StatusUnauthorized, "Could not validate credentials")
	case errors.Is(err, errs.ErrValidation):
		return detail(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, errs.ErrRateLimited):
		return detail(c, fiber.StatusTooManyRequests, "Too many login attempts, try again later")
	case errors.Is(err, errs.ErrAlreadyExists):
		return detail(c, fiber.StatusBadRequest, "Email already registered")
	}
	s.log.Error("unhandled", zap.Error(err), zap.String("path", c.Path()))
	return detail(c, fiber.StatusInternalServerError, "An error occurred")
}
