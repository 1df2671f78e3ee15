package handlers

import (
	"context"
	"net/http"

	"github.com/a-boudoun/matcha-server/internal/realtime"
	"github.com/a-boudoun/matcha-server/internal/services"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// WSHandler upgrades authenticated connections and wires them into the
// realtime registry
type WSHandler struct {
	registry *realtime.Registry
	profiles services.ProfileStore
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewWSHandler creates a new WSHandler. allowedOrigin restricts the
// upgrade to the configured client; empty allows any origin.
func NewWSHandler(registry *realtime.Registry, profiles services.ProfileStore, allowedOrigin string, logger zerolog.Logger) *WSHandler {
	return &WSHandler{
		registry: registry,
		profiles: profiles,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		},
		logger: logger.With().Str("component", "ws_handler").Logger(),
	}
}

// RegisterWSRoutes registers the websocket endpoint
func (h *WSHandler) RegisterWSRoutes(g *echo.Group) {
	g.GET("/ws", h.Connect)
}

// Connect upgrades the request and serves the connection until it
// drops. The user is marked online for the lifetime of their latest
// connection.
func (h *WSHandler) Connect(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Could not upgrade connection")
	}

	client := h.registry.Register(currentUserID, conn)
	if err := h.profiles.SetOnline(c.Request().Context(), currentUserID, true); err != nil {
		h.logger.Error().Err(err).Uint("user_id", currentUserID).Msg("failed to mark user online")
	}

	go client.WritePump()
	client.ReadPump(h.registry)

	// Only flip the user offline if no newer connection took over.
	// The request context is gone by now, so use a fresh one.
	if !h.registry.IsOnline(currentUserID) {
		if err := h.profiles.SetOnline(context.Background(), currentUserID, false); err != nil {
			h.logger.Error().Err(err).Uint("user_id", currentUserID).Msg("failed to mark user offline")
		}
	}
	return nil
}
