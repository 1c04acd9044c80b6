package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"
	CtxRequestIDKey = "request_id"
)

type AccessLogMiddleware struct {
	logger *log.Logger
}

func NewAccessLogMiddleware(logger *log.Logger) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AccessLogMiddleware{logger: logger}
}

// Middleware tags every request with an id and logs one line once the rest
// of the chain has run. The company is logged when a session is present.
func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)
		c.Locals(CtxRequestIDKey, rid)

		err := c.Next()

		company := "-"
		if st := SessionFrom(c); st.Authenticated {
			company = st.CompanyID
		}

		if m != nil && m.logger != nil {
			m.logger.Printf(
				"[HTTP] access rid=%s ip=%s method=%s path=%s status=%d latency=%s company_id=%s resp_bytes=%d ua=%q",
				rid, c.IP(), c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start), company,
				len(c.Response().Body()), c.Get("User-Agent"),
			)
		}

		return err
	}
}
