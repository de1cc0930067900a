package game

import "fmt"

// PlayerID names one side of the match. The relay also uses it as the
// connection slot token, so there are exactly two.
type PlayerID uint8

const (
	PlayerA PlayerID = iota
	PlayerB
)

func (p PlayerID) String() string {
	switch p {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	}
	return fmt.Sprintf("PlayerID(%d)", uint8(p))
}

func (p PlayerID) MarshalText() ([]byte, error) {
	if p != PlayerA && p != PlayerB {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPlayer, uint8(p))
	}
	return []byte(p.String()), nil
}

// Outcome of a single face-up comparison.
type Outcome uint8

const (
	OutcomeA Outcome = iota
	OutcomeB
	OutcomeWar
)

func (o Outcome) String() string {
	switch o {
	case OutcomeA:
		return "A"
	case OutcomeB:
		return "B"
	case OutcomeWar:
		return "War"
	}
	return fmt.Sprintf("Outcome(%d)", uint8(o))
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Winner reports which player an outcome favours; ok is false for War.
func (o Outcome) Winner() (p PlayerID, ok bool) {
	switch o {
	case OutcomeA:
		return PlayerA, true
	case OutcomeB:
		return PlayerB, true
	}
	return 0, false
}
