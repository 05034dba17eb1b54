// internal/storage/cart_repository.go
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/delivery-storefront/internal/models"
)

// MalformedPersistedStateError is reported when the stored cart cannot be decoded.
type MalformedPersistedStateError struct {
	Key string
	Err error
}

func (e *MalformedPersistedStateError) Error() string {
	return fmt.Sprintf("malformed cart snapshot under %q: %v", e.Key, e.Err)
}

func (e *MalformedPersistedStateError) Unwrap() error {
	return e.Err
}

// CartRepository mirrors the cart lines to a single key as a JSON array.
type CartRepository struct {
	store KeyValueStore
	key   string
}

func NewCartRepository(store KeyValueStore, key string) *CartRepository {
	return &CartRepository{store: store, key: key}
}

// Load never fails: any problem yields an empty cart, and a corrupt value is replaced by [].
func (r *CartRepository) Load(ctx context.Context) []models.CartLine {
	raw, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		logrus.WithError(err).WithField("key", r.key).Warn("Failed to read stored cart")
		return []models.CartLine{}
	}
	if !ok {
		return []models.CartLine{}
	}

	lines, err := decodeLines(raw)
	if err != nil {
		logrus.WithError(&MalformedPersistedStateError{Key: r.key, Err: err}).Warn("Resetting stored cart")
		if err := r.store.Set(ctx, r.key, "[]"); err != nil {
			logrus.WithError(err).WithField("key", r.key).Error("Failed to reset stored cart")
		}
		return []models.CartLine{}
	}
	return lines
}

// Save persists lines when they are well formed and silently skips otherwise.
func (r *CartRepository) Save(ctx context.Context, lines []models.CartLine) error {
	if !WellFormed(lines) {
		logrus.WithField("key", r.key).Warn("Skipping save of malformed cart")
		return nil
	}

	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := r.store.Set(ctx, r.key, string(data)); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// WellFormed reports whether lines can be written to storage.
func WellFormed(lines []models.CartLine) bool {
	if lines == nil {
		return false
	}
	for _, line := range lines {
		if line.Key == "" || line.Quantity <= 0 {
			return false
		}
	}
	return true
}

func decodeLines(raw string) ([]models.CartLine, error) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, fmt.Errorf("stored value is not a list")
	}

	lines := make([]models.CartLine, 0, len(items))
	for i, item := range items {
		var line models.CartLine
		if err := json.Unmarshal(item, &line); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if line.Key == "" || line.Quantity <= 0 {
			return nil, fmt.Errorf("item %d: missing key or non-positive quantity", i)
		}
		lines = append(lines, line)
	}
	return lines, nil
}
