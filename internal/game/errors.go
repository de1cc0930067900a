package game

import "errors"

var (
	ErrEmptyDeck     = errors.New("draw from empty deck")
	ErrUnknownPlayer = errors.New("unknown player")
	ErrUnevenPiles   = errors.New("draw piles differ in length")
)
