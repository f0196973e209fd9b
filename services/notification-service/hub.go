package main

import (
	"log"
	"sync"

	"github.com/prem-2323/CleanCity/services/report-service/models"
)

type client struct {
	UserID string
	Role   string
	Send   chan models.ReportEvent
}

// hub fans queue events out to connected SSE clients.
type hub struct {
	mu         sync.RWMutex
	clients    map[*client]bool
	broadcast  chan models.ReportEvent
	register   chan *client
	unregister chan *client
}

func newHub() *hub {
	return &hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan models.ReportEvent, 100),
		register:   make(chan *client),
		unregister: make(chan *client),
	}
}

// shouldDeliver decides whether an event reaches a given client:
// new reports go to admin dashboards, assignments to the chosen cleaner,
// and status updates to the reporter plus the assigned cleaner.
func shouldDeliver(c *client, event models.ReportEvent) bool {
	if c.Role == "admin" {
		return true
	}
	switch event.Type {
	case "new_report":
		return false
	case "assignment":
		return c.UserID == event.AssignedTo
	case "status_update":
		return c.UserID == event.ReportedBy || (event.AssignedTo != "" && c.UserID == event.AssignedTo)
	}
	return false
}

func (h *hub) run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			total := len(h.clients)
			h.mu.Unlock()
			log.Printf("[INFO] Client registered - UserID: %s (Total clients: %d)", c.UserID, total)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.Send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			log.Printf("[INFO] Client unregistered - UserID: %s (Total clients: %d)", c.UserID, total)

		case event := <-h.broadcast:
			h.mu.RLock()
			for c := range h.clients {
				if !shouldDeliver(c, event) {
					continue
				}
				select {
				case c.Send <- event:
				default:
					// client is draining too slowly, drop the event
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
