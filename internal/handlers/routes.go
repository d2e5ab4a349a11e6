package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/talentscout/internal/services"
)

// RegisterRoutes mounts the interview API under /api/v1.
func RegisterRoutes(app *fiber.App, sessions *SessionHandler, candidates *CandidateHandler) {
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/sessions", sessions.HandleCreate)
	api.Get("/sessions/:id", sessions.HandleGet)
	api.Delete("/sessions/:id", sessions.HandleDelete)
	api.Post("/sessions/:id/messages", sessions.HandleMessage)
	api.Post("/sessions/:id/reset", sessions.HandleReset)
	api.Post("/sessions/:id/save", sessions.HandleSave)
	api.Get("/sessions/:id/export", sessions.HandleExport)

	api.Get("/candidates", candidates.HandleList)
	api.Get("/candidates/count", candidates.HandleCount)
}

// ErrorHandler hides internal failures behind a generic apology and keeps
// the detail in the log.
func ErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
		}

		if code < fiber.StatusInternalServerError {
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
				"code":  code,
			})
		}

		log.Error("request failed",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)

		return c.Status(code).JSON(fiber.Map{
			"error":   services.MessageUnexpectedError,
			"code":    code,
			"refresh": true,
		})
	}
}
