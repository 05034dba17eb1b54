package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/delivery-storefront/internal/config"
	"github.com/javajoker/delivery-storefront/internal/models"
	"github.com/javajoker/delivery-storefront/internal/storage"
)

func sessionSettings() config.StorefrontConfig {
	settings := testSettings()
	settings.StorageKey = "deliveryAppCart"
	settings.NotificationTTL = time.Minute
	settings.ConfirmWindow = time.Minute
	settings.SessionTTL = time.Hour
	return settings
}

func TestSessionManager_GetReusesSession(t *testing.T) {
	m := NewSessionManager(storage.NewMemoryStore(), sessionSettings(), "pt_BR")
	defer m.Close()
	ctx := context.Background()

	a := m.Get(ctx, "a")
	assert.Same(t, a, m.Get(ctx, "a"))
	assert.NotSame(t, a, m.Get(ctx, "b"))
	assert.Equal(t, 2, m.Count())
}

func TestSessionManager_CartsAreIsolatedAndPersisted(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	m := NewSessionManager(store, sessionSettings(), "pt_BR")
	defer m.Close()

	_, err := m.Get(ctx, "a").Cart.AddItem(ctx, models.Product{ID: "b1", Name: "Burger", Price: 10}, 1, nil)
	require.NoError(t, err)

	assert.Empty(t, m.Get(ctx, "b").Cart.Lines())
	raw, ok, _ := store.Get(ctx, "deliveryAppCart:a")
	require.True(t, ok)
	assert.Contains(t, raw, `"cartItemId":"b1-"`)

	assert.Len(t, m.Get(ctx, "a").Notifications.Active(), 1)
}

func TestSessionManager_EvictIdleKeepsStoredCart(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	m := NewSessionManager(store, sessionSettings(), "pt_BR")
	defer m.Close()

	first := m.Get(ctx, "a")
	_, err := first.Cart.AddItem(ctx, models.Product{ID: "b1", Name: "Burger", Price: 10}, 2, nil)
	require.NoError(t, err)

	assert.Zero(t, m.evictIdle(time.Now()))
	assert.Equal(t, 1, m.evictIdle(time.Now().Add(2*time.Hour)))
	assert.Zero(t, m.Count())

	again := m.Get(ctx, "a")
	assert.NotSame(t, first, again)
	assert.Equal(t, 20.0, again.Cart.Total(), "the cart is reloaded from storage")
}

func TestSessionManager_ResetCategories(t *testing.T) {
	ctx := context.Background()
	m := NewSessionManager(storage.NewMemoryStore(), sessionSettings(), "pt_BR")
	defer m.Close()

	m.Get(ctx, "a").UI.SetCategory("Lanche")
	m.Get(ctx, "b").UI.SetCategory("Bebidas")

	m.ResetCategories()

	assert.Equal(t, models.CategoryAll, m.Get(ctx, "a").UI.Category())
	assert.Equal(t, models.CategoryAll, m.Get(ctx, "b").UI.Category())
}

type gatedStore struct {
	storage.KeyValueStore
	key     string
	entered chan struct{}
	release chan struct{}
}

func (s *gatedStore) Get(ctx context.Context, key string) (string, bool, error) {
	if key == s.key {
		close(s.entered)
		<-s.release
	}
	return s.KeyValueStore.Get(ctx, key)
}

func TestSessionManager_SlowLoadDoesNotBlockOtherSessions(t *testing.T) {
	ctx := context.Background()
	store := &gatedStore{
		KeyValueStore: storage.NewMemoryStore(),
		key:           "deliveryAppCart:slow",
		entered:       make(chan struct{}),
		release:       make(chan struct{}),
	}
	m := NewSessionManager(store, sessionSettings(), "pt_BR")
	defer m.Close()

	slow := make(chan *Session, 1)
	go func() { slow <- m.Get(ctx, "slow") }()
	<-store.entered

	fast := make(chan *Session, 1)
	go func() { fast <- m.Get(ctx, "fast") }()
	select {
	case s := <-fast:
		assert.Equal(t, "fast", s.ID)
	case <-time.After(time.Second):
		close(store.release)
		t.Fatal("loading one session's cart blocked another session")
	}

	close(store.release)
	s := <-slow
	assert.Same(t, s, m.Get(ctx, "slow"))
	assert.Equal(t, 2, m.Count())
}

func TestSessionManager_Close(t *testing.T) {
	m := NewSessionManager(storage.NewMemoryStore(), sessionSettings(), "pt_BR")
	m.Get(context.Background(), "a")

	m.Close()
	m.Close()
	assert.Zero(t, m.Count())
}
