package httpserver

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/avaskin/contentforge/internal/errs"
	"github.com/avaskin/contentforge/internal/model"
)

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return detail(c, fiber.StatusUnprocessableEntity, "Email and password are required")
	}

	u, err := s.auth.Register(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			return detail(c, fiber.StatusBadRequest, "Email already registered")
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(u)
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return detail(c, fiber.StatusUnprocessableEntity, "Email and password are required")
	}

	tok, err := s.auth.LoginWithIP(c.Context(), req.Email, req.Password, c.IP())
	if err != nil {
		if errors.Is(err, errs.ErrUnauthorized) {
			return detail(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return err
	}
	return c.JSON(fiber.Map{
		"access_token": tok.AccessToken,
		"token_type":   "bearer",
	})
}

func (s *Server) handleGenerate(c *fiber.Ctx) error {
	var req model.GenerationRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return detail(c, fiber.StatusUnprocessableEntity, "Invalid generation parameters")
	}

	res, err := s.content.Generate(c.Context(), currentUserID(c), req)
	if err != nil {
		return detail(c, fiber.StatusInternalServerError, "Content generation failed: "+err.Error())
	}
	return c.JSON(res)
}

func (s *Server) handleHistory(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	items, err := s.content.History(c.Context(), currentUserID(c), limit)
	if err != nil {
		return err
	}
	if items == nil {
		items = []model.ContentHistoryItem{}
	}
	return c.JSON(items)
}

func contentID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

func (s *Server) handleContentByID(c *fiber.Ctx) error {
	id, err := contentID(c)
	if err != nil {
		return detail(c, fiber.StatusNotFound, "Content not found")
	}
	item, err := s.content.GetOne(c.Context(), currentUserID(c), id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return detail(c, fiber.StatusNotFound, "Content not found")
		}
		return err
	}
	return c.JSON(item)
}

func (s *Server) handleDeleteContent(c *fiber.Ctx) error {
	id, err := contentID(c)
	if err != nil {
		return detail(c, fiber.StatusNotFound, "Content not found")
	}
	if err := s.content.Delete(c.Context(), currentUserID(c), id); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return detail(c, fiber.StatusNotFound, "Content not found")
		}
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(model.HealthStatus{
		Status:  "healthy",
		Service: s.cfg.App.ServiceName,
		Version: s.cfg.App.Version,
		AIConfigured: map[string]bool{
			"openai": s.aiConfigured,
		},
	})
}
