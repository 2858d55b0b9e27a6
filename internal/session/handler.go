package session

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// ServeBoard upgrades the request and runs a session on boardID until the
// connection closes.
func (h *Hub) ServeBoard(w http.ResponseWriter, r *http.Request, boardID string, opts *websocket.AcceptOptions) {
	conn, err := websocket.Accept(w, r, opts)
	if err != nil {
		slog.Error("websocket accept failed", "error", err)
		return
	}

	client := NewClient(h, conn, boardID, uuid.New().String())
	if err := h.Register(client); err != nil {
		if errors.Is(err, ErrBoardBusy) {
			conn.Close(websocket.StatusPolicyViolation, "board is open in another session")
			return
		}
		conn.Close(websocket.StatusInternalError, "register failed")
		return
	}

	ctx := r.Context()
	sess, err := New(ctx, boardID, client.ClientID, h.persister(boardID), client.Send)
	if err != nil {
		slog.Error("open session failed", "board", boardID, "error", err)
		h.Unregister(client)
		conn.Close(websocket.StatusInternalError, "load board failed")
		return
	}
	client.session = sess

	go client.WritePump(ctx)
	client.ReadPump(ctx)
}
