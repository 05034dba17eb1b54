// internal/services/notification_service.go
package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/javajoker/delivery-storefront/internal/models"
)

// NotificationService holds transient user-facing messages. Each one is
// dismissed automatically once its TTL elapses.
type NotificationService struct {
	ttl time.Duration
	now func() time.Time

	mu     sync.Mutex
	order  []string
	items  map[string]models.Notification
	timers map[string]*time.Timer
	closed bool
}

func NewNotificationService(ttl time.Duration) *NotificationService {
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	return &NotificationService{
		ttl:    ttl,
		now:    time.Now,
		items:  make(map[string]models.Notification),
		timers: make(map[string]*time.Timer),
	}
}

// Notify is fire-and-forget.
func (s *NotificationService) Notify(message string) models.Notification {
	now := s.now()
	n := models.Notification{
		ID:        uuid.NewString(),
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return n
	}
	s.items[n.ID] = n
	s.order = append(s.order, n.ID)
	s.timers[n.ID] = time.AfterFunc(s.ttl, func() { s.expire(n.ID) })
	return n
}

func (s *NotificationService) expire(id string) {
	s.mu.Lock()
	s.removeLocked(id)
	s.mu.Unlock()
}

// Active lists undismissed notifications, oldest first.
func (s *NotificationService) Active() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Notification, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

func (s *NotificationService) Dismiss(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return ErrNotificationNotFound
	}
	s.removeLocked(id)
	return nil
}

func (s *NotificationService) removeLocked(id string) {
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
	if _, ok := s.items[id]; !ok {
		return
	}
	delete(s.items, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Close stops every pending dismissal timer and drops new notifications.
func (s *NotificationService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	s.items = make(map[string]models.Notification)
	s.order = nil
	s.closed = true
}
