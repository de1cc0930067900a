package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"example.com/war_relay/internal/game"
	"example.com/war_relay/internal/ws"
)

type Handler struct {
	relay *ws.Relay
}

func NewHandler(relay *ws.Relay) *Handler {
	return &Handler{relay: relay}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.GET("/history", h.History)
	e.GET("/connect", echo.WrapHandler(h.relay))
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// History replays the match so far, in the same envelopes players receive.
func (h *Handler) History(c echo.Context) error {
	events := h.relay.History()
	out := make([]game.Envelope, len(events))
	for i, ev := range events {
		out[i] = game.NewEnvelope(ev)
	}
	return c.JSON(http.StatusOK, out)
}

// NewRouter wires the relay into an echo instance. allowOrigins feeds the
// CORS policy for the plain HTTP routes.
func NewRouter(relay *ws.Relay, allowOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(RequestIDMiddleware())
	e.Use(LoggingMiddleware())
	if len(allowOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: allowOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		}))
	}

	NewHandler(relay).Register(e)
	return e
}
