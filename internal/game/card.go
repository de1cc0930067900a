package game

import (
	"encoding/json"
	"fmt"
)

type Suit uint8

// Enumeration order is significant: it drives the canonical deck order.
const (
	Diamonds Suit = iota
	Clubs
	Hearts
	Spades
)

var Suits = [...]Suit{Diamonds, Clubs, Hearts, Spades}

func (s Suit) String() string {
	switch s {
	case Diamonds:
		return "Diamonds"
	case Clubs:
		return "Clubs"
	case Hearts:
		return "Hearts"
	case Spades:
		return "Spades"
	}
	return fmt.Sprintf("Suit(%d)", uint8(s))
}

type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var Ranks = [...]Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

var rankNames = map[Rank]string{
	Two: "Two", Three: "Three", Four: "Four", Five: "Five", Six: "Six",
	Seven: "Seven", Eight: "Eight", Nine: "Nine", Ten: "Ten",
	Jack: "Jack", Queen: "Queen", King: "King", Ace: "Ace",
}

func (r Rank) String() string {
	if n, ok := rankNames[r]; ok {
		return n
	}
	return fmt.Sprintf("Rank(%d)", uint8(r))
}

// Card is a value type; two cards are the same card iff rank and suit match.
type Card struct {
	Rank Rank
	Suit Suit
}

func (c Card) String() string {
	return c.Rank.String() + " of " + c.Suit.String()
}

// Glyph renders the card as its Unicode playing card character.
func (c Card) Glyph() string {
	const base = 0x1F0A0
	var suit rune
	switch c.Suit {
	case Spades:
		suit = 0x00
	case Hearts:
		suit = 0x10
	case Diamonds:
		suit = 0x20
	case Clubs:
		suit = 0x30
	}
	rank := rune(c.Rank)
	switch {
	case c.Rank == Ace:
		rank = 1
	case c.Rank >= Queen:
		// skip the Knight code point
		rank++
	}
	return string(base + suit + rank)
}

type cardJSON struct {
	Rank  uint8  `json:"rank"`
	Suit  string `json:"suit"`
	Name  string `json:"name"`
	Glyph string `json:"glyph"`
}

func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardJSON{
		Rank:  uint8(c.Rank),
		Suit:  c.Suit.String(),
		Name:  c.String(),
		Glyph: c.Glyph(),
	})
}
