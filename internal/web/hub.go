package web

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/pefman/alpha-counter/internal/game"
	"github.com/pefman/alpha-counter/internal/view"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
)

type client struct {
	id   string
	conn *websocket.Conn
	send chan wsMsg
}

// Hub pushes a freshly rendered screen to every connected browser on each
// store notification and feeds their clicks to the router.
type Hub struct {
	router *view.Router
	buffer int
	log    zerolog.Logger

	mu      sync.Mutex
	clients map[string]*client
}

func NewHub(router *view.Router, buffer int, log zerolog.Logger) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	return &Hub{
		router:  router,
		buffer:  buffer,
		log:     log.With().Str("component", "hub").Logger(),
		clients: make(map[string]*client),
	}
}

// Broadcast is a game.Listener.
func (h *Hub) Broadcast(snap game.Snapshot) {
	msg, err := h.renderMsg(snap)
	if err != nil {
		h.log.Error().Err(err).Uint64("version", snap.Version).Msg("render failed")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.log.Warn().Str("client", id).Msg("send buffer full, dropping client")
			h.dropLocked(c)
		}
	}
}

func (h *Hub) renderMsg(snap game.Snapshot) (wsMsg, error) {
	tree := h.router.Render(snap.State)
	html, err := renderHTML(context.Background(), tree)
	if err != nil {
		return wsMsg{}, err
	}
	return wsMsg{Type: "render", Data: renderMsg{
		Version: snap.Version,
		Screen:  h.router.ActiveScreen(snap.State).String(),
		HTML:    html,
	}}, nil
}

// Clients is the number of connected browsers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) register(conn *websocket.Conn) *client {
	c := &client{id: uuid.NewString(), conn: conn, send: make(chan wsMsg, h.buffer)}
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	return c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(c)
}

func (h *Hub) dropLocked(c *client) {
	if _, ok := h.clients[c.id]; !ok {
		return
	}
	delete(h.clients, c.id)
	close(c.send)
}

// enqueue sends to one client without blocking.
func (h *Hub) enqueue(c *client, m wsMsg) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.id]; !ok {
		return
	}
	select {
	case c.send <- m:
	default:
		h.log.Warn().Str("client", c.id).Msg("send buffer full, dropping client")
		h.dropLocked(c)
	}
}

// serve runs one connection until it closes. current is read only after
// the client is registered, so any install it misses is broadcast to the
// client instead.
func (h *Hub) serve(conn *websocket.Conn, current func() game.Snapshot) {
	c := h.register(conn)
	log := h.log.With().Str("client", c.id).Logger()
	log.Info().Str("remote", conn.RemoteAddr().String()).Msg("ws: connect")

	go h.writer(c)

	h.enqueue(c, wsMsg{Type: "you", Data: map[string]string{"id": c.id}})
	if msg, err := h.renderMsg(current()); err == nil {
		h.enqueue(c, msg)
	} else {
		log.Error().Err(err).Msg("initial render failed")
	}

	h.reader(c, log)
	h.unregister(c)
	log.Info().Msg("ws: closed")
}

func (h *Hub) reader(c *client, log zerolog.Logger) {
	c.conn.SetReadLimit(maxMessageSize)
	for {
		var in clientIn
		if err := c.conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("ws: read error")
			}
			return
		}
		switch in.Type {
		case "click":
			var click view.Click
			if err := json.Unmarshal(in.Data, &click); err != nil {
				h.enqueue(c, wsMsg{Type: "error", Data: errorMsg{Message: "malformed click"}})
				continue
			}
			if _, err := h.router.Dispatch(click); err != nil {
				log.Debug().Err(err).Str("control", string(click.Control)).Msg("ws: click rejected")
				h.enqueue(c, wsMsg{Type: "error", Data: errorMsg{Message: err.Error()}})
			}
		default:
			log.Debug().Str("type", in.Type).Msg("ws: ignoring message")
		}
	}
}

// writer drains c.send. Renders older than the last one written are
// skipped, since concurrent transactions may notify out of order.
func (h *Hub) writer(c *client) {
	defer c.conn.Close()
	var last uint64
	for m := range c.send {
		if r, ok := m.Data.(renderMsg); ok {
			if r.Version < last {
				continue
			}
			last = r.Version
		}
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(m); err != nil {
			h.log.Warn().Err(err).Str("client", c.id).Msg("ws: write error")
			h.unregister(c)
			for range c.send {
			}
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}
