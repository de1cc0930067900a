package game

import "encoding/json"

// Event is one entry of the game log. The set of implementations is closed.
type Event interface {
	// Tag is the stable wire name of the event kind.
	Tag() string
	isEvent()
}

// Wager is a batch of cards moved on behalf of one player.
type Wager struct {
	Player PlayerID `json:"player"`
	Cards  []Card   `json:"cards"`
}

type (
	GameStarted struct{}

	DrewCard struct {
		Player PlayerID `json:"player"`
		Card   Card     `json:"card"`
	}

	ComparedMatch struct {
		A Card `json:"a_card"`
		B Card `json:"b_card"`
	}

	ResolvedMatch struct {
		Outcome Outcome `json:"outcome"`
	}

	WageredVisible struct{ Wager }
	WageredHidden  struct{ Wager }
	ClaimedWager   struct{ Wager }

	// GameEndedInWar means the deck ran out while a war was still tied.
	GameEndedInWar struct{}

	GameEnded struct{}
)

func (GameStarted) Tag() string    { return "game_started" }
func (DrewCard) Tag() string       { return "drew_card" }
func (ComparedMatch) Tag() string  { return "compared_match" }
func (ResolvedMatch) Tag() string  { return "resolved_match" }
func (WageredVisible) Tag() string { return "wagered_visible" }
func (WageredHidden) Tag() string  { return "wagered_hidden" }
func (ClaimedWager) Tag() string   { return "claimed_wager" }
func (GameEndedInWar) Tag() string { return "game_ended_in_war" }
func (GameEnded) Tag() string      { return "game_ended" }

func (GameStarted) isEvent()    {}
func (DrewCard) isEvent()       {}
func (ComparedMatch) isEvent()  {}
func (ResolvedMatch) isEvent()  {}
func (WageredVisible) isEvent() {}
func (WageredHidden) isEvent()  {}
func (ClaimedWager) isEvent()   {}
func (GameEndedInWar) isEvent() {}
func (GameEnded) isEvent()      {}

// Envelope is the wire shape of an event: the kind under "t", the payload under "m".
type Envelope struct {
	T string `json:"t"`
	M Event  `json:"m"`
}

func NewEnvelope(ev Event) Envelope {
	return Envelope{T: ev.Tag(), M: ev}
}

// EncodeEvent serializes ev for delivery to a connection.
func EncodeEvent(ev Event) ([]byte, error) {
	return json.Marshal(NewEnvelope(ev))
}
