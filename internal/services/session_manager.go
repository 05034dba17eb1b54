// internal/services/session_manager.go
package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/delivery-storefront/internal/config"
	"github.com/javajoker/delivery-storefront/internal/storage"
)

// Session is the storefront state owned by one browser session.
type Session struct {
	ID            string
	Cart          *CartService
	UI            *UIState
	Notifications *NotificationService
	Orders        *OrderService

	lastSeen time.Time
}

func (s *Session) close() {
	s.Orders.Close()
	s.Notifications.Close()
}

type SessionManager struct {
	store    storage.KeyValueStore
	settings config.StorefrontConfig
	lang     string

	mu       sync.Mutex
	sessions map[string]*Session
	stop     chan struct{}
	stopOnce sync.Once
}

func NewSessionManager(store storage.KeyValueStore, settings config.StorefrontConfig, lang string) *SessionManager {
	m := &SessionManager{
		store:    store,
		settings: settings,
		lang:     lang,
		sessions: make(map[string]*Session),
		stop:     make(chan struct{}),
	}
	if settings.SessionTTL > 0 && settings.SessionSweepEvery > 0 {
		go m.sweep(settings.SessionSweepEvery)
	}
	return m
}

// Get returns the session for id, creating it and loading its stored cart on first use.
// The stored cart is read without holding the manager lock.
func (m *SessionManager) Get(ctx context.Context, id string) *Session {
	if session, ok := m.lookup(id); ok {
		return session
	}

	created := m.newSession(ctx, id)

	m.mu.Lock()
	defer m.mu.Unlock()
	if session, ok := m.sessions[id]; ok {
		created.close()
		session.lastSeen = time.Now()
		return session
	}
	m.sessions[id] = created
	return created
}

func (m *SessionManager) lookup(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if ok {
		session.lastSeen = time.Now()
	}
	return session, ok
}

func (m *SessionManager) newSession(ctx context.Context, id string) *Session {
	repo := storage.NewCartRepository(m.store, m.storageKey(id))
	notifications := NewNotificationService(m.settings.NotificationTTL)
	ui := NewUIState()
	cart := NewCartService(ctx, repo, notifications, m.lang)
	return &Session{
		ID:            id,
		Cart:          cart,
		UI:            ui,
		Notifications: notifications,
		Orders:        NewOrderService(m.settings, cart, ui, notifications, m.lang),
		lastSeen:      time.Now(),
	}
}

func (m *SessionManager) storageKey(id string) string {
	return m.settings.StorageKey + ":" + id
}

// ResetCategories puts every session's category filter back to "All".
func (m *SessionManager) ResetCategories() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, session := range m.sessions {
		session.UI.ResetCategory()
	}
}

func (m *SessionManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *SessionManager) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			m.evictIdle(now)
		}
	}
}

// evictIdle drops in-memory sessions idle longer than the TTL. Their carts stay in storage.
func (m *SessionManager) evictIdle(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, session := range m.sessions {
		if now.Sub(session.lastSeen) > m.settings.SessionTTL {
			session.close()
			delete(m.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		logrus.WithField("evicted", evicted).Debug("Evicted idle sessions")
	}
	return evicted
}

func (m *SessionManager) Close() {
	m.stopOnce.Do(func() { close(m.stop) })
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, session := range m.sessions {
		session.close()
		delete(m.sessions, id)
	}
}
