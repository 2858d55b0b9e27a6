package session

import (
	"log/slog"
	"sync"

	"github.com/coder/websocket"

	"github.com/inamate/sketchboard/internal/state"
)

// PersisterFunc returns the shape persistence for a board.
type PersisterFunc func(boardID string) state.Persister

type registration struct {
	client *Client
	result chan error
}

// Hub tracks the open session of every board. A board has at most one.
type Hub struct {
	mu         sync.RWMutex
	boards     map[string]*Client // boardID -> client
	persisters PersisterFunc
	register   chan registration
	unregister chan *Client
}

func NewHub(persisters PersisterFunc) *Hub {
	return &Hub{
		boards:     make(map[string]*Client),
		persisters: persisters,
		register:   make(chan registration),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case reg := <-h.register:
			reg.result <- h.addClient(reg.client)
		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

// Register claims the client's board. It fails with ErrBoardBusy when
// another connection holds it.
func (h *Hub) Register(client *Client) error {
	result := make(chan error, 1)
	h.register <- registration{client: client, result: result}
	return <-result
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) addClient(client *Client) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, busy := h.boards[client.BoardID]; busy {
		slog.Info("board busy", "board", client.BoardID, "client", client.ClientID)
		return ErrBoardBusy
	}
	h.boards[client.BoardID] = client
	slog.Info("client joined", "board", client.BoardID, "client", client.ClientID)
	return nil
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.boards[client.BoardID] != client {
		return
	}
	delete(h.boards, client.BoardID)
	close(client.send)
	slog.Info("client left", "board", client.BoardID, "client", client.ClientID)
}

func (h *Hub) persister(boardID string) state.Persister {
	if h.persisters == nil {
		return nil
	}
	return h.persisters(boardID)
}

// Active reports whether boardID has an open session.
func (h *Hub) Active(boardID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.boards[boardID]
	return ok
}

// Shutdown closes every open connection. Their read loops then unregister.
func (h *Hub) Shutdown() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.boards))
	for _, c := range h.boards {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.conn.Close(websocket.StatusGoingAway, "server shutting down")
	}
}
