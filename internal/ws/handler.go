package ws

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// NewHandler accepts upgrades from same-origin pages and from publicBaseURL.
func NewHandler(hub *Hub, publicBaseURL string, logger *log.Logger) *Handler {
	allowed := ""
	if u, err := url.Parse(strings.TrimSpace(publicBaseURL)); err == nil && u.Host != "" {
		allowed = u.Host
	}
	return &Handler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				return strings.EqualFold(u.Host, r.Host) || (allowed != "" && strings.EqualFold(u.Host, allowed))
			},
		},
	}
}

// HandleDashboardWS upgrades the request and subscribes the connection to
// companyID's events. The route is only reachable with a session.
func (h *Handler) HandleDashboardWS(c fiber.Ctx, companyID string) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}
	if strings.TrimSpace(companyID) == "" {
		return fiber.ErrUnauthorized
	}

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			if h.logger != nil {
				h.logger.Printf("[WS] upgrade error company_id=%s err=%v", companyID, err)
			}
			return
		}

		client := NewClient(h.hub, conn, companyID)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})

	return fiberHandler(c)
}
