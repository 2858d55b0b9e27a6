package board

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/inamate/sketchboard/internal/shape"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the board routes on r.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/boards", h.Create).Methods("POST", "OPTIONS")
	r.HandleFunc("/boards/{boardId}", h.Get).Methods("GET")
	r.HandleFunc("/boards/{boardId}/shapes", h.Shapes).Methods("GET")
	r.HandleFunc("/boards/{boardId}/shapes", h.Clear).Methods("DELETE", "OPTIONS")
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	board, err := h.service.Create(r.Context())
	if err != nil {
		slog.Error("create board failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, board)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	board, err := h.service.Get(r.Context(), mux.Vars(r)["boardId"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, board)
}

func (h *Handler) Shapes(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Shapes(r.Context(), mux.Vars(r)["boardId"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	data, err := shape.MarshalShapes(list)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context(), mux.Vars(r)["boardId"]); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, ErrBusy):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "board is open in a session"})
	default:
		slog.Error("board error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
