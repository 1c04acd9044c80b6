package middleware

import (
	"github.com/gofiber/fiber/v3"

	"shortlist-console/internal/session"
)

const (
	CtxSessionKey = "session"
	CtxStorageKey = "session_storage"

	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

type SessionMiddleware struct {
	manager *session.Manager
	secure  bool
}

func NewSessionMiddleware(manager *session.Manager, secureCookies bool) *SessionMiddleware {
	return &SessionMiddleware{manager: manager, secure: secureCookies}
}

// Middleware resolves the session once per request before any route runs.
// Stale or forged cookies are cleared here.
func (m *SessionMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		st := session.NewCookieStorage(c, m.secure)
		state := session.Anonymous()
		if m.manager != nil {
			state = m.manager.Initialize(c.Context(), st)
		}
		c.Locals(CtxStorageKey, st)
		c.Locals(CtxSessionKey, state)
		return c.Next()
	}
}

// SessionFrom returns the request's session. Requests that never passed the
// session middleware are anonymous.
func SessionFrom(c fiber.Ctx) session.State {
	if state, ok := c.Locals(CtxSessionKey).(session.State); ok {
		return state
	}
	return session.Anonymous()
}

// SetSession replaces the session seen by later handlers in the same request.
func SetSession(c fiber.Ctx, state session.State) {
	c.Locals(CtxSessionKey, state)
}

// StorageFrom returns the cookie storage bound to the request.
func StorageFrom(c fiber.Ctx) session.Storage {
	if st, ok := c.Locals(CtxStorageKey).(session.Storage); ok {
		return st
	}
	return session.NewCookieStorage(c, false)
}

// RequireAuth sends anonymous visitors to the login page.
func RequireAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		if !SessionFrom(c).Authenticated {
			return c.Redirect().Status(fiber.StatusFound).To(LoginPath)
		}
		return c.Next()
	}
}

// RedirectIfAuthenticated keeps signed-in users away from the login page.
func RedirectIfAuthenticated() fiber.Handler {
	return func(c fiber.Ctx) error {
		if SessionFrom(c).Authenticated {
			return c.Redirect().Status(fiber.StatusFound).To(DashboardPath)
		}
		return c.Next()
	}
}
