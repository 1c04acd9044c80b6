package handler

import (
	"github.com/gofiber/fiber/v3"

	"shortlist-console/internal/delivery/http/view"
)

type PagesHandler struct {
	appName string
}

func NewPagesHandler(appName string) *PagesHandler {
	return &PagesHandler{appName: appName}
}

func (h *PagesHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Landing)
	r.Get("/about", h.About)
}

func (h *PagesHandler) Landing(c fiber.Ctx) error {
	return render(c, fiber.StatusOK, "landing", view.Page{Title: "Hire faster", AppName: h.appName})
}

func (h *PagesHandler) About(c fiber.Ctx) error {
	return render(c, fiber.StatusOK, "about", view.Page{Title: "About", AppName: h.appName})
}

// NotFound is the catch-all registered after every other route.
func (h *PagesHandler) NotFound(c fiber.Ctx) error {
	return render(c, fiber.StatusNotFound, "not_found", view.Page{Title: "Page not found", AppName: h.appName})
}
