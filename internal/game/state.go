package game

import (
	"fmt"
	"strings"
)

// PlayerState holds one player's draw pile, the cards currently at risk in an
// unsettled trick, and the cards captured so far.
type PlayerState struct {
	Deck    *Deck
	Wagered []Card
	Won     []Card
}

func NewPlayerState(d *Deck) *PlayerState {
	if d == nil {
		d = NewDeckOf()
	}
	return &PlayerState{Deck: d}
}

func (p *PlayerState) mustDraw(id PlayerID) Card {
	c, ok := p.Deck.Draw()
	if !ok {
		panic(fmt.Errorf("%w: player %s", ErrEmptyDeck, id))
	}
	return c
}

func (p *PlayerState) wager(cards ...Card) {
	p.Wagered = append(p.Wagered, cards...)
}

// drainWagered empties the wagered pile and returns what it held.
func (p *PlayerState) drainWagered() []Card {
	cards := p.Wagered
	p.Wagered = nil
	return cards
}

func (p *PlayerState) size() int {
	return p.Deck.Len() + len(p.Wagered) + len(p.Won)
}

// GameState is the whole match: both players and the log every turn reports to.
// It is owned by a single goroutine and is not safe for concurrent use.
type GameState struct {
	A *PlayerState
	B *PlayerState

	log *GameLog
}

// NewGameState builds a match from two prepared draw piles. log may be nil.
func NewGameState(a, b *Deck, log *GameLog) *GameState {
	return &GameState{
		A:   NewPlayerState(a),
		B:   NewPlayerState(b),
		log: log,
	}
}

// NewMatch is NewGameState for a match that will be played to the end. The
// piles must be the same length, otherwise one player would run dry while
// the other can still draw.
func NewMatch(a, b *Deck, log *GameLog) (*GameState, error) {
	gs := NewGameState(a, b, log)
	if na, nb := gs.A.Deck.Len(), gs.B.Deck.Len(); na != nb {
		return nil, fmt.Errorf("%w: A has %d cards, B has %d", ErrUnevenPiles, na, nb)
	}
	return gs, nil
}

// NewShuffledGameState shuffles a fresh deck with rng and deals it out.
func NewShuffledGameState(rng RNG, log *GameLog) *GameState {
	d := NewDeck()
	d.Shuffle(rng)
	a, b := Deal(d)
	return NewGameState(a, b, log)
}

func (gs *GameState) Player(id PlayerID) *PlayerState {
	if id == PlayerB {
		return gs.B
	}
	return gs.A
}

// DeckIsEmpty reports whether both draw piles are exhausted, i.e. the match is over.
func (gs *GameState) DeckIsEmpty() bool {
	return gs.A.Deck.IsEmpty() && gs.B.Deck.IsEmpty()
}

// CanPlay reports whether both players still have a card to turn up.
func (gs *GameState) CanPlay() bool {
	return !gs.A.Deck.IsEmpty() && !gs.B.Deck.IsEmpty()
}

// Total counts every card across all six piles.
func (gs *GameState) Total() int {
	return gs.A.size() + gs.B.size()
}

func (gs *GameState) emit(ev Event) {
	if gs.log != nil {
		gs.log.Log(ev)
	}
}

// Report dumps every pile for debugging.
func (gs *GameState) Report() string {
	var b strings.Builder
	for _, id := range []PlayerID{PlayerA, PlayerB} {
		p := gs.Player(id)
		fmt.Fprintf(&b, "%s:\n\tDeck: %v\n\tWagered: %v\n\tWon: %v\n", id, p.Deck, p.Wagered, p.Won)
	}
	return b.String()
}
