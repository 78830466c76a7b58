package atm

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rahulvj/atm-inventory-be/internal/apperr"
	"github.com/rahulvj/atm-inventory-be/internal/models"
)

// Session is one authenticated ATM session: an opaque token bound to a PIN
// and the screen the session currently shows. A fresh login lands on the
// menu.
type Session struct {
	Token  string `json:"token"`
	PIN    string `json:"-"`
	Screen Screen `json:"screen"`
}

// SessionManager owns every live session. Logging in creates one, logging
// out destroys it; nothing else outlives it.
type SessionManager struct {
	mu       sync.Mutex
	store    *AccountStore
	sessions map[string]*Session
}

// NewSessionManager creates a manager over the given account store.
func NewSessionManager(store *AccountStore) *SessionManager {
	return &SessionManager{
		store:    store,
		sessions: make(map[string]*Session),
	}
}

// Login authenticates a PIN against the store and opens a new session on
// the menu screen. The account display data is returned alongside.
func (m *SessionManager) Login(pin string) (Session, models.Account, error) {
	account, err := m.store.Lookup(pin)
	if err != nil {
		return Session{}, models.Account{}, err
	}

	sess := &Session{
		Token:  uuid.New().String(),
		PIN:    pin,
		Screen: ScreenMenu,
	}

	m.mu.Lock()
	m.sessions[sess.Token] = sess
	m.mu.Unlock()

	return *sess, account, nil
}

// Get resolves a session token. The returned value is a copy taken under
// the lock; callers never share the stored session, whose screen mutates
// concurrently.
func (m *SessionManager) Get(token string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[token]
	if !ok {
		return Session{}, apperr.Authentication("no active session")
	}
	return *sess, nil
}

// EnterScreen moves a session onto an overlay under the manager's lock.
func (m *SessionManager) EnterScreen(token string, target Screen) (Screen, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[token]
	if !ok {
		return ScreenLogin, apperr.Authentication("no active session")
	}
	if err := sess.Enter(target); err != nil {
		return sess.Screen, err
	}
	return sess.Screen, nil
}

// CloseScreen dismisses the current overlay under the manager's lock.
func (m *SessionManager) CloseScreen(token string) (Screen, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[token]
	if !ok {
		return ScreenLogin, apperr.Authentication("no active session")
	}
	sess.Close()
	return sess.Screen, nil
}

// Logout destroys a session. Unknown tokens are ignored; logging out twice
// is harmless.
func (m *SessionManager) Logout(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}
