package ws

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"nhooyr.io/websocket"

	"example.com/war_relay/internal/game"
)

// ServerFullMessage is sent to a connection that arrives when both slots are taken.
const ServerFullMessage = "Server full"

const (
	defaultInputBuffer  = 64
	defaultPingInterval = 15 * time.Second
)

// Relay runs one match and connects it to at most two websocket players.
//
// The match state is owned by a single game-loop goroutine. Connections only
// talk to it through the input channel and only hear from it through the
// game log, so no lock is ever taken around the game itself.
type Relay struct {
	originPatterns  []string
	broadcastBuffer int
	inputBuffer     int
	pingInterval    time.Duration
	rng             game.RNG
	decks           [2]*game.Deck

	slots   *slotPool
	input   chan game.GameInputEvent
	gameLog *game.GameLog

	cancel context.CancelFunc
	stop   <-chan struct{}
	done   chan struct{}
	once   sync.Once
}

type Option func(*Relay)

// WithRNG sets the source used to shuffle the match deck.
func WithRNG(rng game.RNG) Option {
	return func(r *Relay) {
		if rng != nil {
			r.rng = rng
		}
	}
}

// WithDecks starts the match from prepared draw piles instead of a shuffled deal.
func WithDecks(a, b *game.Deck) Option {
	return func(r *Relay) {
		r.decks = [2]*game.Deck{a, b}
	}
}

func WithBroadcastBuffer(n int) Option {
	return func(r *Relay) {
		if n > 0 {
			r.broadcastBuffer = n
		}
	}
}

func WithInputBuffer(n int) Option {
	return func(r *Relay) {
		if n > 0 {
			r.inputBuffer = n
		}
	}
}

// WithPingInterval sets how often idle connections are pinged. Zero turns
// keepalive pings off.
func WithPingInterval(d time.Duration) Option {
	return func(r *Relay) {
		if d >= 0 {
			r.pingInterval = d
		}
	}
}

// WithOriginPatterns restricts which browser origins may connect. With no
// patterns the origin check is skipped.
func WithOriginPatterns(patterns ...string) Option {
	return func(r *Relay) {
		r.originPatterns = patterns
	}
}

// NewRelay deals a match and starts its game loop. Piles passed with
// WithDecks must be the same length.
func NewRelay(opts ...Option) (*Relay, error) {
	r := &Relay{
		broadcastBuffer: game.DefaultBroadcastBuffer,
		inputBuffer:     defaultInputBuffer,
		pingInterval:    defaultPingInterval,
		slots:           newSlotPool(),
		done:            make(chan struct{}),
	}
	for _, o := range opts {
		o(r)
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	r.input = make(chan game.GameInputEvent, r.inputBuffer)
	r.gameLog = game.NewGameLog(r.broadcastBuffer)

	var gs *game.GameState
	if r.decks[0] != nil && r.decks[1] != nil {
		var err error
		gs, err = game.NewMatch(r.decks[0], r.decks[1], r.gameLog)
		if err != nil {
			return nil, fmt.Errorf("new relay: %w", err)
		}
	} else {
		gs = game.NewShuffledGameState(r.rng, r.gameLog)
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.stop = ctx.Done()
	go r.run(ctx, gs)
	return r, nil
}

// ClaimPlayerSlot takes a free player identity, A before B.
func (r *Relay) ClaimPlayerSlot() (game.PlayerID, bool) {
	return r.slots.claim()
}

// ReleasePlayerSlot returns an identity to the pool.
func (r *Relay) ReleasePlayerSlot(id game.PlayerID) {
	r.slots.release(id)
}

// FreeSlots reports how many player identities are unclaimed.
func (r *Relay) FreeSlots() int {
	return r.slots.available()
}

// History returns every event of the match so far.
func (r *Relay) History() []game.Event {
	return r.gameLog.History()
}

// Submit feeds an input to the game loop as if a connection had sent it.
// It returns false once the relay is closed.
func (r *Relay) Submit(ev game.GameInputEvent) bool {
	select {
	case <-r.stop:
		return false
	default:
	}
	select {
	case r.input <- ev:
		return true
	case <-r.stop:
		return false
	}
}

// Close stops the game loop and waits for it to exit.
func (r *Relay) Close() {
	r.once.Do(r.cancel)
	<-r.done
}

// run is the only code that touches the game state.
func (r *Relay) run(ctx context.Context, gs *game.GameState) {
	defer close(r.done)
	started := false
	for {
		select {
		case <-ctx.Done():
			return
		case in := <-r.input:
			if in.Disconnect {
				r.slots.release(in.Player)
				log.Info().Stringer("player", in.Player).Msg("player disconnected, slot released")
			}
			if !gs.CanPlay() {
				continue
			}
			if !started {
				started = true
				r.gameLog.Log(game.GameStarted{})
				log.Info().Msg("game started")
			}
			outcome := game.Turn(gs)
			log.Debug().
				Stringer("from", in.Player).
				Stringer("outcome", outcome).
				Int("a_deck", gs.A.Deck.Len()).
				Int("b_deck", gs.B.Deck.Len()).
				Msg("turn played")
			if !gs.CanPlay() {
				r.gameLog.Log(game.GameEnded{})
				log.Info().Msgf("game ended: A won %d cards, B won %d cards", len(gs.A.Won), len(gs.B.Won))
			}
		}
	}
}

// ServeHTTP upgrades the request to a websocket and seats the player, or
// turns the connection away when both slots are taken.
func (r *Relay) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	conn, err := websocket.Accept(w, req, &websocket.AcceptOptions{
		OriginPatterns:     r.originPatterns,
		InsecureSkipVerify: len(r.originPatterns) == 0,
	})
	if err != nil {
		log.Warn().Err(err).Msg("websocket accept failed")
		return
	}

	id, ok := r.ClaimPlayerSlot()
	if !ok {
		log.Info().Str("remote", req.RemoteAddr).Msg("rejecting connection: server full")
		_ = conn.Write(req.Context(), websocket.MessageText, []byte(ServerFullMessage))
		_ = conn.Close(websocket.StatusPolicyViolation, "server full")
		return
	}

	client := newClient(conn, id)
	client.logger.Info().Str("remote", req.RemoteAddr).Msg("player connected")

	// subscribe before the writer starts so nothing logged after the claim is missed
	sub := r.gameLog.Subscribe()
	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()
	go client.writePump(ctx, sub)
	if r.pingInterval > 0 {
		go client.keepAlive(ctx, r.pingInterval)
	}

	client.readPump(ctx, r.input, r.stop)
	client.logger.Info().Msg("player reader finished")
}
