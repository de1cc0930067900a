package ws

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"nhooyr.io/websocket"

	"example.com/war_relay/internal/game"
)

// Client is one accepted websocket holding a player slot.
type Client struct {
	id     string
	player game.PlayerID
	conn   *websocket.Conn
	logger zerolog.Logger
}

func newClient(conn *websocket.Conn, player game.PlayerID) *Client {
	id := uuid.NewString()
	return &Client{
		id:     id,
		player: player,
		conn:   conn,
		logger: log.With().Str("conn", id).Stringer("player", player).Logger(),
	}
}

// IdentityMessage is the first text frame every player receives.
func IdentityMessage(p game.PlayerID) string {
	return fmt.Sprintf("Player Id: %s", p)
}

// readPump turns every inbound message into a game input until the socket
// closes, then reports the disconnect. stop ends the relay side.
func (c *Client) readPump(ctx context.Context, input chan<- game.GameInputEvent, stop <-chan struct{}) {
	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if status := websocket.CloseStatus(err); status != -1 {
				c.logger.Debug().Int("status", int(status)).Msg("connection closed by peer")
			} else if !errors.Is(err, context.Canceled) {
				c.logger.Warn().Err(err).Msg("read failed")
			}
			c.forward(input, stop, game.PlayerDisconnect(c.player))
			return
		}
		c.logger.Debug().Int("bytes", len(data)).Msg("websocket message")
		if !c.forward(input, stop, game.NewInput(string(data), c.player)) {
			return
		}
	}
}

func (c *Client) forward(input chan<- game.GameInputEvent, stop <-chan struct{}, ev game.GameInputEvent) bool {
	select {
	case input <- ev:
		return true
	case <-stop:
		return false
	}
}

// writePump announces the player's identity and then relays every logged
// event until a send fails, the subscription ends or ctx is cancelled.
func (c *Client) writePump(ctx context.Context, sub *game.Subscription) {
	defer sub.Unsubscribe()
	defer func() { _ = c.conn.Close(websocket.StatusNormalClosure, "bye") }()

	if err := c.conn.Write(ctx, websocket.MessageText, []byte(IdentityMessage(c.player))); err != nil {
		c.logger.Warn().Err(err).Msg("failed to send identity")
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.Events():
			if !ok {
				return
			}
			b, err := game.EncodeEvent(ev)
			if err != nil {
				c.logger.Error().Err(err).Str("event", ev.Tag()).Msg("failed to encode event")
				continue
			}
			if err := c.conn.Write(ctx, websocket.MessageText, b); err != nil {
				c.logger.Warn().Err(err).Msg("error while sending websocket message")
				return
			}
		}
	}
}

// keepAlive pings the peer every interval until ctx ends or the connection
// fails. Pongs are only delivered while readPump is reading.
func (c *Client) keepAlive(ctx context.Context, interval time.Duration) {
	ping := time.NewTicker(interval)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ping.C:
			if err := c.conn.Ping(ctx); err != nil {
				if ctx.Err() == nil {
					c.logger.Debug().Err(err).Msg("ping failed")
				}
				return
			}
		}
	}
}
