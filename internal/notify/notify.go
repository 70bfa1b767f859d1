// Package notify provides change notification for document updates.
//
// The notify package implements an observer pattern that allows UI
// components to subscribe to document changes and receive callbacks when
// the text is modified.
package notify

import (
	"sync"
)

// EventKind represents the type of document change.
type EventKind int

const (
	// KindEdit indicates text was inserted, deleted, or replaced.
	KindEdit EventKind = iota

	// KindUndo indicates an edit was undone.
	KindUndo

	// KindRedo indicates an undone edit was reapplied.
	KindRedo

	// KindLoad indicates the entire document was replaced.
	KindLoad
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case KindEdit:
		return "edit"
	case KindUndo:
		return "undo"
	case KindRedo:
		return "redo"
	case KindLoad:
		return "load"
	default:
		return "unknown"
	}
}

// Event describes one document change. Observers receive the full text
// after the change; for a text engine the document is the unit of
// interest, not the individual edit.
type Event struct {
	// Kind is the type of change.
	Kind EventKind

	// Text is the complete document content after the change.
	Text string

	// Modified reports whether the document differs from its last
	// saved state.
	Modified bool
}

// Observer is called when the document changes.
type Observer func(event Event)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier manages document change subscriptions. Delivery is
// synchronous: Notify returns after every observer has run.
type Notifier struct {
	mu        sync.RWMutex
	observers map[uint64]Observer
	nextID    uint64
}

// New creates a new Notifier.
func New() *Notifier {
	return &Notifier{
		observers: make(map[uint64]Observer),
	}
}

// Subscribe registers an observer for all document changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.observers[id] = observer

	return &Subscription{id: id, notifier: n}
}

// Notify delivers an event to every registered observer.
func (n *Notifier) Notify(event Event) {
	n.mu.RLock()
	observers := make([]Observer, 0, len(n.observers))
	for _, obs := range n.observers {
		observers = append(observers, obs)
	}
	n.mu.RUnlock()

	// Call observers outside the lock
	for _, obs := range observers {
		obs(event)
	}
}

// Count returns the number of active subscriptions.
func (n *Notifier) Count() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.observers)
}

// unsubscribe removes an observer by ID.
func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.observers, id)
}
