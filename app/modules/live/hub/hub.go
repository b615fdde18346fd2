// Package livehub fans live leaderboard updates out to websocket clients, grouped by round.
package livehub

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Black-And-White-Club/golf-stableford/app/observability"
	"github.com/Black-And-White-Club/golf-stableford/app/observability/attr"
)

// Message types sent to clients.
const (
	TypeLeaderboard    = "leaderboard"
	TypeRoundCompleted = "round_completed"
)

// Message is the JSON frame written to clients.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type roundMessage struct {
	roundID string
	msg     Message
}

// Hub tracks the connected clients of every round. Membership changes and broadcasts are
// serialized through Run.
type Hub struct {
	logger  *slog.Logger
	metrics observability.Metrics

	mu     sync.RWMutex
	rounds map[string]map[*Client]struct{}
	total  int

	register   chan *Client
	unregister chan *Client
	broadcast  chan roundMessage
	done       chan struct{}
}

// New creates a Hub. Run must be called before clients connect.
func New(logger *slog.Logger, metrics observability.Metrics) *Hub {
	if metrics == nil {
		metrics = observability.NoOpMetrics{}
	}
	return &Hub{
		logger:     logger,
		metrics:    metrics,
		rounds:     make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan roundMessage, 64),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until ctx is cancelled, then disconnects
// every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for roundID, clients := range h.rounds {
				for c := range clients {
					close(c.send)
				}
				delete(h.rounds, roundID)
			}
			h.total = 0
			h.mu.Unlock()
			h.metrics.SetLiveClients(0)
			h.logger.Info("Live hub stopped")
			return

		case c := <-h.register:
			h.mu.Lock()
			clients, ok := h.rounds[c.roundID]
			if !ok {
				clients = make(map[*Client]struct{})
				h.rounds[c.roundID] = clients
			}
			clients[c] = struct{}{}
			h.total++
			total := h.total
			h.mu.Unlock()
			h.metrics.SetLiveClients(total)
			h.logger.Debug("Live client connected", attr.RoundID(c.roundID), attr.Int("total_clients", total))

		case c := <-h.unregister:
			h.remove(c)

		case m := <-h.broadcast:
			h.mu.RLock()
			var slow []*Client
			for c := range h.rounds[m.roundID] {
				select {
				case c.send <- m.msg:
				default:
					slow = append(slow, c)
				}
			}
			h.mu.RUnlock()
			for _, c := range slow {
				h.logger.Warn("Dropping slow live client", attr.RoundID(c.roundID))
				h.remove(c)
			}
		}
	}
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	clients, ok := h.rounds[c.roundID]
	if !ok {
		h.mu.Unlock()
		return
	}
	if _, ok := clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(clients, c)
	if len(clients) == 0 {
		delete(h.rounds, c.roundID)
	}
	close(c.send)
	h.total--
	total := h.total
	h.mu.Unlock()
	h.metrics.SetLiveClients(total)
	h.logger.Debug("Live client disconnected", attr.RoundID(c.roundID), attr.Int("total_clients", total))
}

// Broadcast queues msg for every client watching roundID. It returns without sending once
// the hub has stopped.
func (h *Hub) Broadcast(roundID string, msg Message) {
	select {
	case h.broadcast <- roundMessage{roundID: roundID, msg: msg}:
	case <-h.done:
	}
}

// Clients reports how many clients watch roundID.
func (h *Hub) Clients(roundID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rounds[roundID])
}
