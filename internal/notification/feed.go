// Package notification subscribes to domain events and keeps a small
// in-app feed admins can poll. Domain modules publish events without
// knowing anything about how they are surfaced.
package notification

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultToastDuration is how long clients should display a
// notification before dismissing it.
const DefaultToastDuration = 3 * time.Second

// feedCapacity bounds the in-memory feed; older entries are dropped.
const feedCapacity = 50

// Notification is one feed entry.
type Notification struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	Message    string    `json:"message"`
	DurationMs int64     `json:"durationMs"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Feed is a bounded, newest-first notification list.
type Feed struct {
	mu      sync.RWMutex
	entries []Notification
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{}
}

// Add appends a notification, evicting the oldest entry when full.
func (f *Feed) Add(kind, message string) Notification {
	n := Notification{
		ID:         uuid.New(),
		Type:       kind,
		Message:    message,
		DurationMs: DefaultToastDuration.Milliseconds(),
		CreatedAt:  time.Now(),
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries = append(f.entries, n)
	if len(f.entries) > feedCapacity {
		f.entries = f.entries[len(f.entries)-feedCapacity:]
	}

	return n
}

// List returns the feed newest first.
func (f *Feed) List() []Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()

	results := make([]Notification, len(f.entries))
	for i, n := range f.entries {
		results[len(f.entries)-1-i] = n
	}

	return results
}
