package ws

import (
	"sync"

	"example.com/war_relay/internal/game"
)

// slotPool hands out the two player identities. The mutex is held only for
// the claim or release itself.
type slotPool struct {
	mu   sync.Mutex
	free []game.PlayerID
}

func newSlotPool() *slotPool {
	// popped from the end, so A goes out first
	return &slotPool{free: []game.PlayerID{game.PlayerB, game.PlayerA}}
}

func (p *slotPool) claim() (game.PlayerID, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.free)
	if n == 0 {
		return 0, false
	}
	id := p.free[n-1]
	p.free = p.free[:n-1]
	return id, true
}

func (p *slotPool) release(id game.PlayerID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, f := range p.free {
		if f == id {
			return
		}
	}
	p.free = append(p.free, id)
}

func (p *slotPool) available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}
