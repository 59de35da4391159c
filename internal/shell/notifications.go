// Package shell holds state owned by the application shell rather than by
// any single view. Today that is the transient notification queue shown
// after successful mutating actions.
package shell

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level classifies a notification for styling.
type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

// DefaultTTL is how long a notification stays visible before it expires.
const DefaultTTL = 4 * time.Second

// Notification is one transient message. It is pushed by a view action and
// auto-removed once its deadline passes.
type Notification struct {
	ID      string
	Level   Level
	Message string
	expires time.Time
}

// Notifier is a time-bounded queue of transient notifications, decoupled
// from the business logic that triggers them.
type Notifier struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	queue []Notification
}

func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{ttl: ttl, now: time.Now}
}

// Push enqueues a notification and returns its id.
func (n *Notifier) Push(level Level, message string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	item := Notification{
		ID:      uuid.NewString(),
		Level:   level,
		Message: message,
		expires: n.now().Add(n.ttl),
	}
	n.queue = append(n.queue, item)
	return item.ID
}

// Active prunes expired notifications and returns the live ones in push
// order.
func (n *Notifier) Active() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	now := n.now()
	kept := n.queue[:0]
	for _, item := range n.queue {
		if item.expires.After(now) {
			kept = append(kept, item)
		}
	}
	n.queue = kept
	out := make([]Notification, len(kept))
	copy(out, kept)
	return out
}

// Dismiss drops a notification before its deadline.
func (n *Notifier) Dismiss(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	kept := n.queue[:0]
	for _, item := range n.queue {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	n.queue = kept
}
