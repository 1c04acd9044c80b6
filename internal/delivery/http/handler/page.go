package handler

import (
	"net/url"

	"github.com/gofiber/fiber/v3"

	"shortlist-console/internal/delivery/http/middleware"
	"shortlist-console/internal/delivery/http/view"
)

// render executes a page template with the request's session attached.
func render(c fiber.Ctx, status int, name string, page view.Page) error {
	page.Session = middleware.SessionFrom(c)
	return c.Status(status).Render(name, page)
}

func redirect(c fiber.Ctx, to string) error {
	return c.Redirect().Status(fiber.StatusFound).To(to)
}

// param returns a route parameter decoded from its path encoding. A value
// that does not decode is returned as sent.
func param(c fiber.Ctx, name string) string {
	raw := c.Params(name)
	v, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return v
}
