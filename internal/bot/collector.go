package bot

import (
	"sync"
	"time"
)

// Collector lifetimes. Destructive confirmations get a short window;
// browsing responses stay interactive for five minutes.
const (
	ConfirmTTL = 30 * time.Second
	BrowseTTL  = 300 * time.Second
)

// CollectFunc handles one accepted component action. customID is the
// pressed control's ID. Returning done=true tears the collector down
// immediately (terminal action); the timeout callback does not fire.
type CollectFunc func(ctx *Context, customID string) (done bool, err error)

// collector is the per-response subscription state: who may act, what to
// run on an accepted action, and what to do when the window closes
// untouched.
type collector struct {
	ownerID  string
	notice   string // ephemeral rejection for non-owners
	fn       CollectFunc
	onEnd    func(received bool)
	timer    *time.Timer
	received bool
}

// verdict classifies an incoming component action against the registry.
type verdict int

const (
	verdictExpired verdict = iota // no live collector for the message
	verdictRejected
	verdictAccepted
)

// collectorStore routes component actions to the live collector of the
// message they were pressed on. One collector per rendered response;
// attaching a second to the same message replaces the first.
type collectorStore struct {
	mu        sync.Mutex
	byMessage map[string]*collector
}

func newCollectorStore() *collectorStore {
	return &collectorStore{byMessage: map[string]*collector{}}
}

// Attach opens a subscription on messageID for ttl. Only ownerID's actions
// are accepted; others get the ephemeral notice. onEnd runs exactly once
// when the window expires (received reports whether any action ever
// arrived); it does not run after a terminal action. onEnd may be nil.
func (s *collectorStore) Attach(messageID, ownerID string, ttl time.Duration, notice string, fn CollectFunc, onEnd func(received bool)) {
	c := &collector{
		ownerID: ownerID,
		notice:  notice,
		fn:      fn,
		onEnd:   onEnd,
	}
	c.timer = time.AfterFunc(ttl, func() { s.expire(messageID, c) })

	s.mu.Lock()
	if old := s.byMessage[messageID]; old != nil {
		old.timer.Stop()
	}
	s.byMessage[messageID] = c
	s.mu.Unlock()
}

// resolve classifies an action and, when accepted, marks the collector as
// having received one.
func (s *collectorStore) resolve(messageID, userID string) (*collector, verdict) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.byMessage[messageID]
	if c == nil {
		return nil, verdictExpired
	}
	if userID != c.ownerID {
		return c, verdictRejected
	}
	c.received = true
	return c, verdictAccepted
}

// remove tears the collector down after a terminal action.
func (s *collectorStore) remove(messageID string) {
	s.mu.Lock()
	if c := s.byMessage[messageID]; c != nil {
		c.timer.Stop()
		delete(s.byMessage, messageID)
	}
	s.mu.Unlock()
}

// expire runs on the timer goroutine when a window elapses.
func (s *collectorStore) expire(messageID string, c *collector) {
	s.mu.Lock()
	if s.byMessage[messageID] != c {
		// Replaced or torn down in the meantime.
		s.mu.Unlock()
		return
	}
	delete(s.byMessage, messageID)
	received := c.received
	s.mu.Unlock()

	if c.onEnd != nil {
		c.onEnd(received)
	}
}
