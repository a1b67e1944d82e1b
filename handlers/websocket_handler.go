package handlers

import (
	"log/slog"
	"net/http"

	"github.com/alex-adamant/volley/live"
	"github.com/alex-adamant/volley/services"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The rating pages are public; the connection is read-only for the
	// client, so cross-origin subscriptions are acceptable.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WebSocketHandler struct {
	hub           *live.Hub
	ratingService services.RatingService
	logger        *slog.Logger
}

func NewWebSocketHandler(hub *live.Hub, ratingService services.RatingService, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, ratingService: ratingService, logger: logger}
}

// ServeWs subscribes the caller to live events for one chat.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	// Reject subscriptions to chats that do not exist; otherwise every
	// typo would open a phantom room.
	if _, err := h.ratingService.GetChat(r.Context(), slug); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed",
			slog.String("chat", slug),
			slog.Any("error", err),
		)
		return
	}

	h.hub.Subscribe(conn, slug)
}
