package ws

import (
	"context"
	"log"
	"sync"
)

type companyMessage struct {
	companyID string
	payload   []byte
}

// Hub fans messages out to the dashboards of one company. Registration and
// delivery happen on the Run goroutine.
type Hub struct {
	clients    map[string]map[*Client]struct{}
	broadcast  chan companyMessage
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		broadcast:  make(chan companyMessage, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			set, ok := h.clients[client.companyID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.companyID] = set
			}
			set[client] = struct{}{}
			total := len(set)
			h.mutex.Unlock()
			h.logf("[WS] connected company_id=%s company_clients=%d", client.companyID, total)

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			if h.remove(client) {
				h.logf("[WS] disconnected company_id=%s", client.companyID)
			}

		case msg := <-h.broadcast:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.clients[msg.companyID]))
			for c := range h.clients[msg.companyID] {
				targets = append(targets, c)
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- msg.payload:
				default:
					h.remove(client)
				}
			}
			h.logf("[WS] broadcast company_id=%s clients=%d", msg.companyID, len(targets))
		}
	}
}

func (h *Hub) remove(client *Client) bool {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	set, ok := h.clients[client.companyID]
	if !ok {
		return false
	}
	if _, ok := set[client]; !ok {
		return false
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.companyID)
	}
	return true
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for id, set := range h.clients {
		for c := range set {
			close(c.send)
		}
		delete(h.clients, id)
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// Broadcast queues payload for every client of companyID. It never blocks; a
// full queue drops the message.
func (h *Hub) Broadcast(companyID string, payload []byte) {
	if h == nil || companyID == "" {
		return
	}
	select {
	case h.broadcast <- companyMessage{companyID: companyID, payload: payload}:
	default:
		h.logf("[WS] broadcast dropped company_id=%s reason=buffer_full", companyID)
	}
}

func (h *Hub) ClientCount(companyID string) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[companyID])
}

func (h *Hub) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
