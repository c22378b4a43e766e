// Package session stores in-progress quote wizard state between requests.
package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/devaistudio/portfolio/internal/wizard"
)

const (
	cookieName = "devai_wizard"
	ttl        = 2 * time.Hour
)

// Data is the per-visitor wizard session: the state machine itself plus
// the idempotency key for the current submission attempt. The key is
// created once per wizard and reused on resubmission, so a retried submit
// cannot create a second order.
type Data struct {
	Wizard         *wizard.State `json:"wizard"`
	IdempotencyKey string        `json:"idempotency_key"`
	CreatedAt      int64         `json:"created_at"`
}

// Manager handles wizard session creation, lookup, and storage.
type Manager struct {
	store  Store
	secure bool
}

// Store defines the interface for session storage
type Store interface {
	Get(ctx context.Context, key string) (*Data, bool)
	Set(ctx context.Context, key string, data *Data, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Close() error
}

func NewManager(store Store, secure bool) *Manager {
	return &Manager{
		store:  store,
		secure: secure,
	}
}

func (m *Manager) Close() error {
	if m == nil || m.store == nil {
		return nil
	}
	return m.store.Close()
}

// Start creates a fresh wizard session and sets the cookie.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter) (*Data, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context is required")
	}

	sessionID := uuid.NewString()
	data := &Data{
		Wizard:         wizard.New(),
		IdempotencyKey: uuid.NewString(),
		CreatedAt:      time.Now().Unix(),
	}
	m.store.Set(ctx, sessionID, data, ttl)

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return data, nil
}

// Get retrieves the wizard session for the request.
func (m *Manager) Get(ctx context.Context, r *http.Request) (*Data, error) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return nil, fmt.Errorf("no wizard session cookie found: %w", err)
	}

	if ctx == nil {
		ctx = r.Context()
	}

	data, ok := m.store.Get(ctx, cookie.Value)
	if !ok {
		return nil, fmt.Errorf("wizard session not found or expired")
	}

	if time.Now().Unix()-data.CreatedAt > int64(ttl.Seconds()) {
		m.store.Delete(ctx, cookie.Value)
		return nil, fmt.Errorf("wizard session expired")
	}

	return data, nil
}

// Update writes the session data back under the existing session ID.
func (m *Manager) Update(ctx context.Context, r *http.Request, data *Data) error {
	if data == nil {
		return fmt.Errorf("session data is required")
	}

	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return fmt.Errorf("no wizard session cookie found: %w", err)
	}

	if ctx == nil {
		ctx = r.Context()
	}

	m.store.Set(ctx, cookie.Value, data, ttl)
	return nil
}

// Destroy removes the session and clears the cookie. Called after a
// successful submission: wizard state is never kept past that point.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(cookieName)
	if ctx == nil {
		ctx = r.Context()
	}
	if err == nil {
		m.store.Delete(ctx, cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
