// internal/services/cart_service.go
package services

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/delivery-storefront/internal/i18n"
	"github.com/javajoker/delivery-storefront/internal/models"
)

type Notifier interface {
	Notify(message string) models.Notification
}

type CartPersister interface {
	Load(ctx context.Context) []models.CartLine
	Save(ctx context.Context, lines []models.CartLine) error
}

// CartService owns the ordered cart lines of one session. Every mutation is
// written through to the persister.
type CartService struct {
	persister CartPersister
	notifier  Notifier
	lang      string

	mu    sync.RWMutex
	lines []models.CartLine
}

func NewCartService(ctx context.Context, persister CartPersister, notifier Notifier, lang string) *CartService {
	return &CartService{
		persister: persister,
		notifier:  notifier,
		lang:      lang,
		lines:     persister.Load(ctx),
	}
}

// AddItem merges into an existing line with the same product and options, or
// appends a new line priced at base price plus option deltas.
func (s *CartService) AddItem(ctx context.Context, product models.Product, quantity int, selected []models.SelectedOption) (models.CartLine, error) {
	if quantity < 1 {
		return models.CartLine{}, ErrInvalidQuantity
	}

	summary := OptionsSummary(selected)
	key := LineKey(product.ID, summary)

	s.mu.Lock()
	var line models.CartLine
	merged := false
	for i := range s.lines {
		if s.lines[i].Key == key {
			s.lines[i].Quantity += quantity
			line = s.lines[i]
			merged = true
			break
		}
	}
	if !merged {
		line = models.CartLine{
			Key:         key,
			ProductID:   product.ID,
			Name:        product.Name,
			UnitPrice:   UnitPrice(product, selected),
			Quantity:    quantity,
			Image:       product.Image,
			OptionsText: summary,
		}
		s.lines = append(s.lines, line)
	}
	s.persistLocked(ctx)
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.Notify(i18n.T(s.lang, i18n.KeyCartItemAdded, product.Name))
	}
	return line, nil
}

// UpdateQuantity adds delta to a line; lines that reach zero are removed.
func (s *CartService) UpdateQuantity(ctx context.Context, key string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	next := make([]models.CartLine, 0, len(s.lines))
	for _, line := range s.lines {
		if line.Key == key {
			found = true
			line.Quantity += delta
			if line.Quantity < 0 {
				line.Quantity = 0
			}
		}
		if line.Quantity > 0 {
			next = append(next, line)
		}
	}
	if !found {
		return ErrLineNotFound
	}
	s.lines = next
	s.persistLocked(ctx)
	return nil
}

func (s *CartService) RemoveLine(ctx context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.CartLine, 0, len(s.lines))
	for _, line := range s.lines {
		if line.Key != key {
			next = append(next, line)
		}
	}
	s.lines = next
	s.persistLocked(ctx)
}

func (s *CartService) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = []models.CartLine{}
	s.persistLocked(ctx)
}

func (s *CartService) persistLocked(ctx context.Context) {
	if err := s.persister.Save(ctx, s.lines); err != nil {
		logrus.WithError(err).Error("Failed to persist cart")
	}
}

func (s *CartService) Lines() []models.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.CartLine{}, s.lines...)
}

func (s *CartService) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cartTotal(s.lines)
}

func (s *CartService) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return itemCount(s.lines)
}

func (s *CartService) Snapshot() models.CartSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CartSnapshot{
		Lines:     append([]models.CartLine{}, s.lines...),
		Total:     cartTotal(s.lines),
		ItemCount: itemCount(s.lines),
	}
}

func cartTotal(lines []models.CartLine) float64 {
	total := 0.0
	for _, line := range lines {
		total += line.Subtotal()
	}
	return total
}

func itemCount(lines []models.CartLine) int {
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	return count
}
