package httpserver

import (
	"runtime/debug"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
)

const userIDKey = "userID"

// RequestLogger returns a middleware for structured request logging.
// Each request gets a generated id; payloads are never logged.
func RequestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := ""
		if id, err := uuid.NewV4(); err == nil {
			reqID = id.String()
		}
		c.Locals("requestID", reqID)

		err := c.Next()

		log.Info("http",
			zap.String("id", reqID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("dur", time.Since(start)),
			zap.String("ip", c.IP()),
		)
		return err
	}
}

// Recover returns a middleware that recovers from handler panics.
func Recover(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic",
					zap.Any("reason", r),
					zap.ByteString("stack", debug.Stack()),
					zap.String("path", c.Path()),
				)
				err = detail(c, fiber.StatusInternalServerError, "An error occurred")
			}
		}()
		return c.Next()
	}
}

// RequireAuth extracts "Authorization: Bearer <JWT>", verifies it, and stores
// the subject user ID in the request context.
func (s *Server) RequireAuth(c *fiber.Ctx) error {
	tok, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return detail(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	userID, err := s.auth.VerifyToken(tok)
	if err != nil {
		return detail(c, fiber.StatusUnauthorized, "Could not validate credentials")
	}
	c.Locals(userIDKey, userID)
	return c.Next()
}

// currentUserID reads the authenticated user set by RequireAuth.
func currentUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(userIDKey).(int64)
	return id
}

// bearerToken parses an Authorization header value; scheme match is
// case-insensitive and an empty token is rejected.
func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(header[7:])
	return tok, tok != ""
}
