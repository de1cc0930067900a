package game

import "fmt"

// MaxBlindWager is how many face-down cards each player commits per war round.
const MaxBlindWager = 3

// Resolve compares two face-up cards by rank. Suits never break ties.
func Resolve(a, b Card) Outcome {
	switch {
	case a.Rank > b.Rank:
		return OutcomeA
	case b.Rank > a.Rank:
		return OutcomeB
	default:
		return OutcomeWar
	}
}

// Turn plays exactly one trick, escalating into war rounds while the
// face-up cards tie, and reports everything it does to the game log.
//
// Both draw piles must be non-empty; calling Turn on a finished match
// panics. The returned outcome is War only when a pile ran out mid-war,
// in which case the wagered cards are left where they are.
func Turn(gs *GameState) Outcome {
	if !gs.CanPlay() {
		panic(fmt.Errorf("%w: turn called with A=%d B=%d cards left",
			ErrEmptyDeck, gs.A.Deck.Len(), gs.B.Deck.Len()))
	}

	outcome := faceUp(gs)
	for outcome == OutcomeWar && gs.CanPlay() {
		blindWager(gs)
		outcome = faceUp(gs)
	}

	winner, ok := outcome.Winner()
	if !ok {
		gs.emit(GameEndedInWar{})
		return outcome
	}
	winnings := append(gs.A.drainWagered(), gs.B.drainWagered()...)
	w := gs.Player(winner)
	w.Won = append(w.Won, winnings...)
	gs.emit(ClaimedWager{Wager{Player: winner, Cards: winnings}})
	return outcome
}

// faceUp draws one card per player, compares them and puts both at risk.
func faceUp(gs *GameState) Outcome {
	a := gs.A.mustDraw(PlayerA)
	b := gs.B.mustDraw(PlayerB)
	gs.emit(DrewCard{Player: PlayerA, Card: a})
	gs.emit(DrewCard{Player: PlayerB, Card: b})

	outcome := Resolve(a, b)
	gs.emit(ComparedMatch{A: a, B: b})
	gs.emit(ResolvedMatch{Outcome: outcome})

	gs.A.wager(a)
	gs.B.wager(b)
	gs.emit(WageredVisible{Wager{Player: PlayerA, Cards: []Card{a}}})
	gs.emit(WageredVisible{Wager{Player: PlayerB, Cards: []Card{b}}})
	return outcome
}

// blindWager commits up to MaxBlindWager cards per player without looking at
// them, always leaving at least one card each for the next face-up draw.
func blindWager(gs *GameState) {
	a := make([]Card, 0, MaxBlindWager)
	b := make([]Card, 0, MaxBlindWager)
	for gs.A.Deck.Len() > 1 && gs.B.Deck.Len() > 1 && len(a) < MaxBlindWager {
		a = append(a, gs.A.mustDraw(PlayerA))
		b = append(b, gs.B.mustDraw(PlayerB))
	}
	gs.A.wager(a...)
	gs.B.wager(b...)
	gs.emit(WageredHidden{Wager{Player: PlayerA, Cards: a}})
	gs.emit(WageredHidden{Wager{Player: PlayerB, Cards: b}})
}
