package session

import (
	"sync"
	"time"

	"github.com/campusboard/portal-api/internal/models"
)

// Record is the persisted session shape.
type Record = models.Session

// Manager holds the in-memory session and keeps the store in sync. It is the
// single owner of session state: init reads storage once, Login and Logout
// are the only mutations.
type Manager struct {
	mu      sync.RWMutex
	store   *Store
	current Record
}

// NewManager builds a manager and performs the one-time read from storage.
func NewManager(store *Store) *Manager {
	m := &Manager{store: store, current: Record{Role: models.RoleUnauthenticated}}
	if store != nil {
		if rec, ok := store.Load(); ok {
			rec.Role = models.ParseRole(string(rec.Role))
			m.current = rec
		}
	}
	return m
}

// Current returns the active session.
func (m *Manager) Current() Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Role returns the active session role.
func (m *Manager) Role() models.Role {
	return m.Current().Role
}

// Login transitions to the given role if the role state machine allows it and
// persists the new record. Pending is entered by submitting an application;
// the stable roles are entered by explicit login.
func (m *Manager) Login(role models.Role, username string) (Record, bool) {
	role = models.ParseRole(string(role))
	if role == models.RoleUnauthenticated {
		return Record{}, false
	}

	rec := Record{Role: role, Username: username, CreatedAt: time.Now().UTC()}

	m.mu.Lock()
	m.current = rec
	m.mu.Unlock()

	if m.store != nil {
		m.store.Save(rec)
	}
	return rec, true
}

// Logout returns to unauthenticated from any state and clears storage.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.current = Record{Role: models.RoleUnauthenticated}
	m.mu.Unlock()

	if m.store != nil {
		m.store.Clear()
	}
}
