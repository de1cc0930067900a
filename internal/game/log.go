package game

import (
	"sync"
	"sync/atomic"
)

// DefaultBroadcastBuffer is the per-subscriber queue length.
const DefaultBroadcastBuffer = 32

// GameLog is the append-only event history of a match. Every logged event is
// also published to all current subscribers.
//
// Publishing never blocks the producer: a subscriber whose queue is full
// loses its oldest undelivered event instead. History is kept forever.
type GameLog struct {
	mu      sync.Mutex
	history []Event
	subs    map[*Subscription]struct{}
	buffer  int
}

func NewGameLog(buffer int) *GameLog {
	if buffer < 1 {
		buffer = DefaultBroadcastBuffer
	}
	return &GameLog{
		subs:   map[*Subscription]struct{}{},
		buffer: buffer,
	}
}

// Log appends ev to the history and publishes it.
func (l *GameLog) Log(ev Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.history = append(l.history, ev)
	for s := range l.subs {
		s.publish(ev)
	}
}

// History returns a copy of every event logged so far, oldest first.
func (l *GameLog) History() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Event(nil), l.history...)
}

func (l *GameLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.history)
}

// Subscribe registers a new subscriber. It sees only events logged after
// the call returns.
func (l *GameLog) Subscribe() *Subscription {
	s := &Subscription{log: l, ch: make(chan Event, l.buffer)}
	l.mu.Lock()
	l.subs[s] = struct{}{}
	l.mu.Unlock()
	return s
}

func (l *GameLog) Subscribers() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.subs)
}

// Subscription is one consumer's view of the log.
type Subscription struct {
	log     *GameLog
	ch      chan Event
	dropped atomic.Uint64
	once    sync.Once
}

// Events yields published events in log order. It is closed by Unsubscribe.
func (s *Subscription) Events() <-chan Event { return s.ch }

// Dropped counts events discarded because the subscriber fell behind.
func (s *Subscription) Dropped() uint64 { return s.dropped.Load() }

// Unsubscribe detaches the subscriber and closes its channel. Safe to call twice.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.log.mu.Lock()
		delete(s.log.subs, s)
		close(s.ch)
		s.log.mu.Unlock()
	})
}

// publish is called with the log lock held, so it never races Unsubscribe.
func (s *Subscription) publish(ev Event) {
	for {
		select {
		case s.ch <- ev:
			return
		default:
		}
		select {
		case <-s.ch:
			s.dropped.Add(1)
		default:
		}
	}
}
