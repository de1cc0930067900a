package game

import "strings"

const (
	DeckSize = 52
	suitSize = 13
)

// RNG abstracts random number generation so shuffles can be made deterministic.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// Deck is an ordered pile of cards. The top of the deck is the last element.
type Deck struct {
	cards []Card
}

// NewDeck returns all 52 cards in suit-major, rank-minor order.
func NewDeck() *Deck {
	cards := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for _, r := range Ranks {
			cards = append(cards, Card{Rank: r, Suit: s})
		}
	}
	return &Deck{cards: cards}
}

// NewDeckOf builds a deck from bottom to top.
func NewDeckOf(cards ...Card) *Deck {
	return &Deck{cards: append([]Card(nil), cards...)}
}

// Shuffle applies a Fisher-Yates permutation driven by rng.
func (d *Deck) Shuffle(rng RNG) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card. ok is false when the deck is empty.
func (d *Deck) Draw() (c Card, ok bool) {
	n := len(d.cards)
	if n == 0 {
		return Card{}, false
	}
	c = d.cards[n-1]
	d.cards = d.cards[:n-1]
	return c, true
}

func (d *Deck) Len() int { return len(d.cards) }

func (d *Deck) IsEmpty() bool { return len(d.cards) == 0 }

// Cards returns a copy of the deck, bottom first.
func (d *Deck) Cards() []Card {
	return append([]Card(nil), d.cards...)
}

func (d *Deck) String() string {
	parts := make([]string, len(d.cards))
	for i, c := range d.cards {
		parts[i] = c.Glyph()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Deal splits d between two players in 13-card packets, alternating A and B.
// Each pile keeps the order in which it was dealt, first card on top.
// The source deck is left empty.
func Deal(d *Deck) (a, b *Deck) {
	var dealt [2][]Card
	for i, c := range d.cards {
		p := (i / suitSize) % 2
		dealt[p] = append(dealt[p], c)
	}
	d.cards = nil
	return NewDeckOf(reversed(dealt[0])...), NewDeckOf(reversed(dealt[1])...)
}

func reversed(cards []Card) []Card {
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[len(cards)-1-i] = c
	}
	return out
}
