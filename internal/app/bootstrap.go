package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"

	"shortlist-console/internal/config"
	"shortlist-console/internal/delivery/http/handler"
	"shortlist-console/internal/delivery/http/middleware"
	"shortlist-console/internal/delivery/http/routes"
	"shortlist-console/internal/delivery/http/view"
	"shortlist-console/internal/ws"
)

// Bodies above bodyLimit are streamed instead of buffered. Multipart uploads
// of any size are spooled by the server so the form can reject a large resume
// with a message; other oversized bodies are refused by the body limit
// middleware.
const bodyLimit = 8 * 1024 * 1024

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) (*App, error) {
	views := view.NewRenderer()
	if err := views.Load(); err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	f := fiber.New(fiber.Config{
		AppName:           c.Config.App.AppName,
		BodyLimit:         bodyLimit,
		StreamRequestBody: true,
		Views:             views,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}, nil
}

// Bootstrap builds the container and the HTTP app. The returned cleanup
// closes backing connections.
func Bootstrap(ctx context.Context, cfg config.Config) (*App, func() error, error) {
	logger := newLogger(cfg.App.AppName)

	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	a, err := New(c)
	if err != nil {
		_ = c.Close()
		return nil, nil, err
	}
	return a, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware(c.Config.App.AppName, c.Logger)
	accessMw := middleware.NewAccessLogMiddleware(c.Logger)
	bodyMw := middleware.NewBodyLimitMiddleware(bodyLimit)
	sessionMw := middleware.NewSessionMiddleware(c.Sessions, c.Config.Session.CookieSecure)

	app.Use(accessMw.Middleware())
	app.Use(errMw.Middleware())
	app.Use(bodyMw.Middleware())
	app.Use(sessionMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	appName := c.Config.App.AppName
	deps := map[string]handler.Pinger{"redis": nil, "database": nil}
	if c.Redis.Available() {
		deps["redis"] = c.Redis
	}
	if c.DB != nil {
		deps["database"] = c.DB
	}

	registry := routes.NewRegistry(
		handler.NewPagesHandler(appName),
		handler.NewHealthHandler(appName, c.Config.App.Environment, deps),
		handler.NewAuthHandler(c.Auth, appName),
		handler.NewConsoleHandler(appName, c.Jobs, c.Dashboard, c.Shortlist, ws.NewHandler(c.Hub, c.Config.App.PublicBaseURL, c.Logger)),
		handler.NewApplyHandler(appName, c.Applications, c.Config.Session.CookieSecure),
	)
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
