package ws

import (
	"net/http"
	"slices"

	"hostpulse/internal/config"
	"hostpulse/internal/logger"

	"github.com/gorilla/websocket"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	log      logger.Logger
}

func NewHandler(hub *Hub, log logger.Logger, cfg *config.Config) *Handler {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || slices.Contains(cfg.AllowedOrigins, "*") {
				return true
			}

			if !slices.Contains(cfg.AllowedOrigins, origin) {
				log.Warn("websocket origin rejected", "origin", origin)
				return false
			}
			return true
		},
	}

	return &Handler{
		hub:      hub,
		upgrader: upgrader,
		log:      log,
	}
}

func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("upgrade failed", "error", err)
		return
	}

	client := NewClient(h.hub, conn, h.log)
	if !h.hub.Register(client) {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()

	h.log.Info("client connected", "remote_addr", client.remoteAddr)
}
