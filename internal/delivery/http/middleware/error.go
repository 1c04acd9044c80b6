package middleware

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v3"

	"shortlist-console/internal/delivery/http/view"
	"shortlist-console/internal/pkg/response"
)

type AppError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Cause: cause}
}

type ErrorMiddleware struct {
	appName string
	logger  *log.Logger
}

func NewErrorMiddleware(appName string, logger *log.Logger) *ErrorMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &ErrorMiddleware{appName: appName, logger: logger}
}

// Middleware turns handler errors and panics into an error page, or into a
// JSON envelope for clients that asked for JSON.
func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Printf("[HTTP] panic recovered path=%s err=%v", c.Path(), r)
				err = m.write(c, fiber.StatusInternalServerError, response.MessageInternalServerError)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg := normalizeError(err)
		if status >= fiber.StatusInternalServerError {
			m.logger.Printf("[HTTP] error path=%s err=%v", c.Path(), err)
		}
		return m.write(c, status, msg)
	}
}

func (m *ErrorMiddleware) write(c fiber.Ctx, status int, msg string) error {
	if wantsJSON(c) {
		return response.Error(c, status, msg, nil)
	}

	page := view.Page{
		Title:   "Error",
		AppName: m.appName,
		Session: SessionFrom(c),
		Error:   msg,
		Data:    status,
	}
	name := "error"
	if status == fiber.StatusNotFound {
		page.Title = "Page not found"
		name = "not_found"
	}
	if err := c.Status(status).Render(name, page); err != nil {
		m.logger.Printf("[HTTP] render error page failed err=%v", err)
		return c.Status(status).SendString(msg)
	}
	return nil
}

func wantsJSON(c fiber.Ctx) bool {
	if strings.HasPrefix(c.Path(), "/health") {
		return true
	}
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON)
}

func normalizeError(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.StatusCode
		if status <= 0 || status >= 500 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError
		}
		msg := appErr.Message
		if msg == "" {
			msg = response.DefaultMessage(status)
		}
		return status, msg
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status <= 0 || status >= 500 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError
		}
		if status == fiber.StatusNotFound {
			return status, response.MessageNotFound
		}
		msg := fiberErr.Message
		if msg == "" {
			msg = response.DefaultMessage(status)
		}
		return status, msg
	}

	return fiber.StatusInternalServerError, response.MessageInternalServerError
}
