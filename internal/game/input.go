package game

// GameInputEvent is one message from a connected player. Its content does not
// select an action: every input advances the shared match by one turn.
type GameInputEvent struct {
	Player     PlayerID
	Text       string
	Disconnect bool
}

func NewInput(text string, from PlayerID) GameInputEvent {
	return GameInputEvent{Player: from, Text: text}
}

// PlayerDisconnect marks the end of a player's connection.
func PlayerDisconnect(from PlayerID) GameInputEvent {
	return GameInputEvent{Player: from, Text: "player disconnected", Disconnect: true}
}
