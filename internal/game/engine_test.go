package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func card(r Rank, s Suit) Card { return Card{Rank: r, Suit: s} }

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		a, b Card
		want Outcome
	}{
		{"higher rank wins for A", card(King, Clubs), card(Queen, Spades), OutcomeA},
		{"higher rank wins for B", card(Two, Spades), card(Three, Diamonds), OutcomeB},
		{"equal rank is war", card(Seven, Hearts), card(Seven, Clubs), OutcomeWar},
		{"suit never breaks ties", card(Ace, Spades), card(Ace, Diamonds), OutcomeWar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Resolve(tt.a, tt.b))
		})
	}
}

func TestResolveWarIffRanksEqual(t *testing.T) {
	all := NewDeck().Cards()
	for _, a := range all {
		for _, b := range all {
			got := Resolve(a, b)
			require.Equal(t, a.Rank == b.Rank, got == OutcomeWar, "%s vs %s", a, b)
		}
	}
}

func TestTurnSingleCardEach(t *testing.T) {
	log := NewGameLog(0)
	gs := NewGameState(
		NewDeckOf(card(Ace, Spades)),
		NewDeckOf(card(Two, Spades)),
		log,
	)

	outcome := Turn(gs)

	require.Equal(t, OutcomeA, outcome)
	require.Equal(t, []Card{card(Ace, Spades), card(Two, Spades)}, gs.A.Won)
	require.Empty(t, gs.B.Won)
	require.Empty(t, gs.A.Wagered)
	require.Empty(t, gs.B.Wagered)
	require.True(t, gs.A.Deck.IsEmpty())
	require.True(t, gs.B.Deck.IsEmpty())
	require.True(t, gs.DeckIsEmpty())

	require.Equal(t, []Event{
		DrewCard{Player: PlayerA, Card: card(Ace, Spades)},
		DrewCard{Player: PlayerB, Card: card(Two, Spades)},
		ComparedMatch{A: card(Ace, Spades), B: card(Two, Spades)},
		ResolvedMatch{Outcome: OutcomeA},
		WageredVisible{Wager{Player: PlayerA, Cards: []Card{card(Ace, Spades)}}},
		WageredVisible{Wager{Player: PlayerB, Cards: []Card{card(Two, Spades)}}},
		ClaimedWager{Wager{Player: PlayerA, Cards: []Card{card(Ace, Spades), card(Two, Spades)}}},
	}, log.History())
}

func TestTurnUnshuffledDeckStartsWithWar(t *testing.T) {
	log := NewGameLog(0)
	a, b := Deal(NewDeck())
	gs := NewGameState(a, b, log)

	outcome := Turn(gs)
	history := log.History()

	require.Equal(t, DrewCard{Player: PlayerA, Card: card(Two, Diamonds)}, history[0])
	require.Equal(t, DrewCard{Player: PlayerB, Card: card(Two, Clubs)}, history[1])
	require.Equal(t, ResolvedMatch{Outcome: OutcomeWar}, history[3])
	require.IsType(t, WageredHidden{}, history[6], "war escalation follows the first tie")

	// Both piles mirror each other rank for rank, so every comparison ties
	// and the whole deck is consumed by a single war chain.
	resolved := 0
	for _, ev := range history {
		require.NotEqual(t, "claimed_wager", ev.Tag())
		if r, ok := ev.(ResolvedMatch); ok {
			require.Equal(t, OutcomeWar, r.Outcome)
			resolved++
		}
	}
	require.Equal(t, 8, resolved)
	require.Equal(t, GameEndedInWar{}, history[len(history)-1])
	require.Equal(t, OutcomeWar, outcome)

	require.True(t, gs.DeckIsEmpty())
	require.Empty(t, gs.A.Won)
	require.Empty(t, gs.B.Won)
	require.Len(t, gs.A.Wagered, DeckSize/2, "residual wagered cards are never claimed")
	require.Len(t, gs.B.Wagered, DeckSize/2)
}

func TestTurnWarBlindCap(t *testing.T) {
	log := NewGameLog(0)
	// bottom first: the last card is drawn first
	gs := NewGameState(
		NewDeckOf(card(Two, Hearts), card(King, Hearts), card(Three, Hearts), card(Four, Hearts), card(Five, Hearts), card(Nine, Hearts)),
		NewDeckOf(card(Two, Spades), card(Queen, Spades), card(Three, Spades), card(Four, Spades), card(Five, Spades), card(Nine, Spades)),
		log,
	)

	outcome := Turn(gs)

	require.Equal(t, OutcomeA, outcome)
	var hidden []WageredHidden
	var claimed ClaimedWager
	for _, ev := range log.History() {
		switch e := ev.(type) {
		case WageredHidden:
			hidden = append(hidden, e)
		case ClaimedWager:
			claimed = e
		}
	}
	require.Len(t, hidden, 2)
	require.Equal(t, PlayerA, hidden[0].Player)
	require.Equal(t, []Card{card(Five, Hearts), card(Four, Hearts), card(Three, Hearts)}, hidden[0].Cards)
	require.Equal(t, PlayerB, hidden[1].Player)
	require.Len(t, hidden[1].Cards, MaxBlindWager)

	require.Equal(t, PlayerA, claimed.Player)
	require.Len(t, claimed.Cards, 10)
	require.Len(t, gs.A.Won, 10)
	require.Equal(t, 1, gs.A.Deck.Len())
	require.Equal(t, 1, gs.B.Deck.Len())
	require.Equal(t, 12, gs.Total())
}

func TestTurnWarWithShortPiles(t *testing.T) {
	log := NewGameLog(0)
	gs := NewGameState(
		NewDeckOf(card(Ten, Hearts), card(Six, Hearts), card(Jack, Hearts)),
		NewDeckOf(card(Three, Clubs), card(Six, Clubs), card(Jack, Clubs)),
		log,
	)

	outcome := Turn(gs)

	require.Equal(t, OutcomeA, outcome)
	var hidden []WageredHidden
	for _, ev := range log.History() {
		if e, ok := ev.(WageredHidden); ok {
			hidden = append(hidden, e)
		}
	}
	require.Len(t, hidden, 2)
	require.Equal(t, []Card{card(Six, Hearts)}, hidden[0].Cards, "one card must stay back for the face-up draw")
	require.Equal(t, []Card{card(Six, Clubs)}, hidden[1].Cards)
	require.Len(t, gs.A.Won, 6)
	require.True(t, gs.DeckIsEmpty())
}

func TestTurnPanicsOnEmptyDeck(t *testing.T) {
	gs := NewGameState(NewDeckOf(), NewDeckOf(card(Two, Clubs)), nil)
	require.PanicsWithError(t, "draw from empty deck: turn called with A=0 B=1 cards left", func() {
		Turn(gs)
	})
}

func TestTurnWarEndsWhenOnePileRunsOut(t *testing.T) {
	log := NewGameLog(0)
	gs := NewGameState(
		NewDeckOf(card(Five, Hearts), card(Two, Hearts)),
		NewDeckOf(card(Two, Clubs)),
		log,
	)

	var outcome Outcome
	require.NotPanics(t, func() { outcome = Turn(gs) })

	require.Equal(t, OutcomeWar, outcome)
	h := log.History()
	require.Equal(t, GameEndedInWar{}, h[len(h)-1])
	require.False(t, gs.CanPlay())
	require.Equal(t, []Card{card(Five, Hearts)}, gs.A.Deck.Cards())
	require.Equal(t, []Card{card(Two, Hearts)}, gs.A.Wagered)
	require.Equal(t, []Card{card(Two, Clubs)}, gs.B.Wagered)
	require.Equal(t, 3, gs.Total())
}

func TestNewMatch(t *testing.T) {
	t.Run("uneven piles are rejected", func(t *testing.T) {
		gs, err := NewMatch(NewDeckOf(card(Two, Hearts), card(King, Hearts)), NewDeckOf(card(Ace, Clubs)), nil)
		require.ErrorIs(t, err, ErrUnevenPiles)
		require.EqualError(t, err, "draw piles differ in length: A has 2 cards, B has 1")
		require.Nil(t, gs)
	})
	t.Run("dealt deck is accepted", func(t *testing.T) {
		a, b := Deal(NewDeck())
		gs, err := NewMatch(a, b, nil)
		require.NoError(t, err)
		require.True(t, gs.CanPlay())
		require.Equal(t, DeckSize, gs.Total())
	})
}

// checkPiles asserts conservation and that no card sits in two piles.
func checkPiles(t *testing.T, gs *GameState) {
	t.Helper()
	seen := map[Card]string{}
	for _, id := range []PlayerID{PlayerA, PlayerB} {
		p := gs.Player(id)
		piles := map[string][]Card{"deck": p.Deck.Cards(), "wagered": p.Wagered, "won": p.Won}
		for name, cards := range piles {
			for _, c := range cards {
				where := id.String() + "." + name
				prev, dup := seen[c]
				require.False(t, dup, "%s in both %s and %s", c, prev, where)
				seen[c] = where
			}
		}
	}
	require.Len(t, seen, DeckSize)
	require.Equal(t, DeckSize, gs.Total())
}

func TestTurnConservation(t *testing.T) {
	for seed := uint64(1); seed <= 25; seed++ {
		gs := NewShuffledGameState(rand.New(rand.NewSource(seed)), NewGameLog(0))
		checkPiles(t, gs)

		for !gs.DeckIsEmpty() {
			before := gs.A.Deck.Len() + gs.B.Deck.Len()
			Turn(gs)
			after := gs.A.Deck.Len() + gs.B.Deck.Len()
			require.Less(t, after, before, "every turn consumes cards")
			require.Equal(t, gs.A.Deck.Len(), gs.B.Deck.Len())
			checkPiles(t, gs)
		}
	}
}

func TestTurnDeterministic(t *testing.T) {
	play := func(seed uint64) ([]Event, []Outcome) {
		log := NewGameLog(0)
		gs := NewShuffledGameState(rand.New(rand.NewSource(seed)), log)
		var outcomes []Outcome
		for !gs.DeckIsEmpty() {
			outcomes = append(outcomes, Turn(gs))
		}
		return log.History(), outcomes
	}

	h1, o1 := play(99)
	h2, o2 := play(99)
	assert.Equal(t, o1, o2)
	assert.Equal(t, h1, h2)

	a, b := Deal(NewDeck())
	u1 := NewGameLog(0)
	Turn(NewGameState(a, b, u1))
	a, b = Deal(NewDeck())
	u2 := NewGameLog(0)
	Turn(NewGameState(a, b, u2))
	assert.Equal(t, u1.History(), u2.History())
}

func TestReport(t *testing.T) {
	gs := NewGameState(NewDeckOf(card(Ace, Spades)), NewDeckOf(card(Two, Hearts)), nil)
	Turn(gs)
	r := gs.Report()
	require.Contains(t, r, "A:\n\tDeck: []")
	require.Contains(t, r, "Won: [Ace of Spades Two of Hearts]")
}
