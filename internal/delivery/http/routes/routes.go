package routes

import (
	"github.com/gofiber/fiber/v3"

	"shortlist-console/internal/delivery/http/handler"
)

type Registry struct {
	pages   *handler.PagesHandler
	health  *handler.HealthHandler
	auth    *handler.AuthHandler
	console *handler.ConsoleHandler
	apply   *handler.ApplyHandler
}

func NewRegistry(pages *handler.PagesHandler, health *handler.HealthHandler, auth *handler.AuthHandler, console *handler.ConsoleHandler, apply *handler.ApplyHandler) *Registry {
	return &Registry{pages: pages, health: health, auth: auth, console: console, apply: apply}
}

// Register mounts every route. Guards are attached per route so public pages
// never pass through RequireAuth. The not-found page is mounted last.
func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	r.pages.RegisterRoutes(app)
	r.auth.RegisterRoutes(app)
	r.console.RegisterRoutes(app)
	r.apply.RegisterRoutes(app)

	app.Use(r.pages.NotFound)
}
