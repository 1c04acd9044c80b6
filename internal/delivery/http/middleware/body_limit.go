package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
)

// BodyLimitMiddleware bounds request bodies once the server streams them.
// Multipart uploads are spooled to disk by the server and left to the
// handler that reads them, so an oversized file still gets a form message.
type BodyLimitMiddleware struct {
	limit int
}

func NewBodyLimitMiddleware(limit int) *BodyLimitMiddleware {
	return &BodyLimitMiddleware{limit: limit}
}

func (m *BodyLimitMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if m == nil || m.limit <= 0 || isMultipart(c) {
			return c.Next()
		}

		// -1 is a chunked body of unknown size.
		n := c.Request().Header.ContentLength()
		if n > m.limit || n == -1 {
			// The unread body stays on the wire, so the connection can't be reused.
			c.Response().SetConnectionClose()
			return NewAppError(fiber.StatusRequestEntityTooLarge, "Request body too large", nil)
		}
		return c.Next()
	}
}

func isMultipart(c fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm)
}
