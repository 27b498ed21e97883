// Package session holds in-memory selection sessions. A session pins a
// catalog snapshot for one visitor and serializes all operations on it,
// so concurrent requests against the same token cannot interleave.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"catalogo_backend/internal/selection/engine"
	"catalogo_backend/platform/apperr"
	"catalogo_backend/platform/logger"
)

const sessionNotFoundMessage = "session not found or expired"

// Session is one visitor's selection state over a pinned catalog snapshot.
type Session struct {
	token     string
	catalog   engine.Catalog
	createdAt time.Time
	expiresAt time.Time

	mu        sync.Mutex
	selection *engine.Selection
	view      engine.ViewState
}

// Token returns the opaque session token.
func (s *Session) Token() string {
	return s.token
}

// Catalog returns the pinned catalog snapshot.
func (s *Session) Catalog() engine.Catalog {
	return s.catalog
}

// Toggle flips membership of the item with the given key. Keys that do
// not exist in the pinned snapshot are rejected.
func (s *Session) Toggle(key string) (bool, error) {
	item, ok := s.catalog.ItemByKey(key)
	if !ok {
		return false, apperr.NotFound("item not found in catalog")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Toggle(item), nil
}

// ChangeQuantity adjusts the quantity of a selected item. Unknown keys
// are silently ignored, matching the quantity control contract.
func (s *Session) ChangeQuantity(key string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.ChangeQuantity(key, delta)
}

// UpdateView applies a view mutation while holding the session lock.
func (s *Session) UpdateView(apply func(*engine.ViewState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	apply(&s.view)
}

// Snapshot is a consistent read of a session's selection and view.
type Snapshot struct {
	Catalog    engine.Catalog
	View       engine.ViewState
	Items      []engine.Item
	Entries    []engine.Entry
	TotalCents int64
}

// Snapshot derives the display list, the selected entries in insertion
// order, and the running total under one lock acquisition.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Catalog:    s.catalog,
		View:       s.view,
		Items:      engine.DisplayItems(s.catalog, s.view),
		Entries:    s.selection.Entries(),
		TotalCents: s.selection.Total(s.view.UseQuantities),
	}
}

// IsSelected reports membership for a key.
func (s *Session) IsSelected(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.IsSelected(key)
}

// Store keeps sessions in memory with a sliding expiry. A janitor
// goroutine sweeps expired sessions until Close is called.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	log      *logger.Logger
	stop     chan struct{}
	stopOnce sync.Once
}

// NewStore creates a session store and starts its janitor.
func NewStore(ttl time.Duration, log *logger.Logger) *Store {
	st := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		log:      log,
		stop:     make(chan struct{}),
	}
	go st.janitor()

	return st
}

// Create opens a session over a catalog snapshot and returns it.
func (st *Store) Create(catalog engine.Catalog) (*Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	now := time.Now()
	session := &Session{
		token:     token,
		catalog:   catalog,
		createdAt: now,
		expiresAt: now.Add(st.ttl),
		selection: engine.NewSelection(),
		view:      engine.NewViewState(),
	}

	st.mu.Lock()
	st.sessions[token] = session
	st.mu.Unlock()

	return session, nil
}

// Get returns a live session by token. Expired sessions are treated as
// absent and removed lazily; each hit slides the expiry forward.
func (st *Store) Get(token string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	session, ok := st.sessions[token]
	if !ok {
		return nil, apperr.NotFound(sessionNotFoundMessage)
	}

	if time.Now().After(session.expiresAt) {
		delete(st.sessions, token)
		return nil, apperr.NotFound(sessionNotFoundMessage)
	}
	session.expiresAt = time.Now().Add(st.ttl)

	return session, nil
}

// Len returns the number of live sessions, counting expired ones the
// janitor has not swept yet.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Close stops the janitor. Sessions already handed out stay usable.
func (st *Store) Close() {
	st.stopOnce.Do(func() { close(st.stop) })
}

func (st *Store) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-st.stop:
			return
		case <-ticker.C:
			st.sweep()
		}
	}
}

func (st *Store) sweep() {
	now := time.Now()

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for token, session := range st.sessions {
		if now.After(session.expiresAt) {
			delete(st.sessions, token)
			removed++
		}
	}

	if removed > 0 && st.log != nil {
		st.log.Debug("expired sessions swept", "removed", removed, "remaining", len(st.sessions))
	}
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
