package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"shortlist-console/internal/delivery/http/dto"
	"shortlist-console/internal/pkg/response"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is any optional dependency that can report liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	appName     string
	environment string
	deps        map[string]Pinger
}

// NewHealthHandler reports on deps by name. A nil Pinger is reported as
// disabled.
func NewHealthHandler(appName, environment string, deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{appName: appName, environment: environment, deps: deps}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
}

// Health always answers 200 while the process serves requests. Optional
// dependencies only degrade features, so their state is informational.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), healthCheckTimeout)
	defer cancel()

	deps := make(map[string]string, len(h.deps))
	for name, p := range h.deps {
		switch {
		case p == nil:
			deps[name] = dto.DependencyDisabled
		case p.Ping(ctx) != nil:
			deps[name] = dto.DependencyDown
		default:
			deps[name] = dto.DependencyUp
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.HealthResponseData{
		App:          h.appName,
		Environment:  h.environment,
		Dependencies: deps,
		CheckedAt:    time.Now().UTC(),
	})
}
