package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/delivery-storefront/internal/config"
	"github.com/javajoker/delivery-storefront/internal/models"
)

const placeholder = "https://placehold.co/test"

const catalogFixture = `{
  "items": [
    {"id": "b1", "title": "X-Burger", "price": 18.5, "img": "burger.png", "category": "Lanche",
     "description": "Pão, carne e queijo", "collectionName": "produtos",
     "options": "[{\"name\":\"Adicionais\",\"type\":\"checkbox\",\"values\":[\"Bacon (+R$3,00)\",\"Ovo (+R$1,50)\"]}]"},
    {"id": "s1", "title": "Refrigerante", "price": "6.00", "category": "Bebidas", "collectionName": "produtos",
     "options": [{"name": "Tamanho", "type": "radio", "values": ["350ml", "600ml (+R$2,00)"], "default": "350ml"}]},
    {"id": "p1", "title": "Combo", "price": "abc", "category": "Promoção", "isAvailable": true, "options": "not json"},
    {"id": "x1", "title": "Esgotado", "price": 10, "category": "Sobremesa", "isAvailable": false},
    {"id": "b2", "title": "X-Salada", "price": 20, "category": "Lanche"},
    {"id": "n1", "title": "Sem nada", "price": 1}
  ]
}`

func newTestCatalog(t *testing.T, handler http.HandlerFunc) (*CatalogService, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := config.CatalogConfig{
		Endpoint:         srv.URL,
		Collection:       "produtos",
		PageSize:         100,
		Timeout:          5,
		PlaceholderImage: placeholder,
	}
	return NewCatalogService(cfg, srv.Client(), "pt_BR"), srv
}

func TestCatalogService_RefreshNormalizesRecords(t *testing.T) {
	var gotPath, gotQuery string
	catalog, srv := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(catalogFixture))
	})

	snap, err := catalog.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/api/collections/produtos/records", gotPath)
	assert.Equal(t, "perPage=100", gotQuery)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Error)

	require.Len(t, snap.Products, 5, "unavailable products are dropped")
	ids := make([]string, 0, len(snap.Products))
	for _, p := range snap.Products {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"b1", "s1", "p1", "b2", "n1"}, ids)

	burger := snap.Products[0]
	assert.Equal(t, "X-Burger", burger.Name)
	assert.Equal(t, 18.5, burger.Price)
	assert.Equal(t, srv.URL+"/api/files/produtos/b1/burger.png", burger.Image)
	require.Len(t, burger.Options, 1)
	assert.Equal(t, models.OptionKindMulti, burger.Options[0].Kind)
	assert.Empty(t, burger.Options[0].Default)
	assert.Equal(t, []models.OptionValue{
		{Label: "Bacon (+R$3,00)", PriceDelta: 3},
		{Label: "Ovo (+R$1,50)", PriceDelta: 1.5},
	}, burger.Options[0].Values)

	soda := snap.Products[1]
	assert.Equal(t, 6.0, soda.Price)
	assert.Equal(t, placeholder, soda.Image)
	assert.Equal(t, models.DefaultDescription, soda.Description)
	require.Len(t, soda.Options, 1)
	assert.Equal(t, models.OptionKindSingle, soda.Options[0].Kind)
	assert.Equal(t, []string{"350ml"}, soda.Options[0].Default)

	combo := snap.Products[2]
	assert.Equal(t, 0.0, combo.Price)
	assert.Empty(t, combo.Options)

	assert.Equal(t, models.CategoryUncategorized, snap.Products[4].Category)

	assert.Equal(t, []string{models.CategoryAll, "Bebidas", "Lanche", "Promoção", models.CategoryUncategorized}, snap.Categories)
}

func TestCatalogService_NonFinitePricesAreZero(t *testing.T) {
	catalog, _ := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": [
			{"id": "a", "title": "A", "price": "NaN"},
			{"id": "b", "title": "B", "price": "Infinity"},
			{"id": "c", "title": "C", "price": "-Inf"},
			{"id": "d", "title": "D", "price": 1e309},
			{"id": "e", "title": "E", "price": "1.250,90"}
		]}`))
	})

	snap, err := catalog.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Products, 5)
	for _, p := range snap.Products[:4] {
		assert.Equal(t, 0.0, p.Price, p.ID)
	}
	assert.Equal(t, 1250.9, snap.Products[4].Price)

	_, err = json.Marshal(snap)
	assert.NoError(t, err)
}

func TestCatalogService_CallerDeadlineDoesNotClearCatalog(t *testing.T) {
	var calls atomic.Int32
	catalog, _ := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) > 1 {
			time.Sleep(100 * time.Millisecond)
		}
		w.Write([]byte(catalogFixture))
	})

	_, err := catalog.Refresh(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	snap, err := catalog.Refresh(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Products, 5)
	assert.Empty(t, snap.Error)
	assert.Len(t, catalog.Snapshot().Products, 5)
}

func TestCatalogService_RefreshFailureClearsState(t *testing.T) {
	fail := atomic.Bool{}
	catalog, _ := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(catalogFixture))
	})

	_, err := catalog.Refresh(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, catalog.Snapshot().Products)

	fail.Store(true)
	snap, err := catalog.Refresh(context.Background())

	var fetchErr *CatalogFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusInternalServerError, fetchErr.StatusCode)
	assert.Equal(t, "HTTP error: 500 - Internal Server Error", fetchErr.Error())
	assert.Empty(t, snap.Products)
	assert.Equal(t, []string{models.CategoryAll}, snap.Categories)
	assert.Contains(t, snap.Error, "HTTP error: 500")

	_, err = catalog.Product("b1")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_TransportErrorIsFetchError(t *testing.T) {
	catalog, srv := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := catalog.Refresh(context.Background())

	var fetchErr *CatalogFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Zero(t, fetchErr.StatusCode)
	assert.NotNil(t, fetchErr.Err)
}

func TestCatalogService_SupersededRefreshIsDiscarded(t *testing.T) {
	var calls atomic.Int32
	firstArrived := make(chan struct{})
	catalog, _ := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			close(firstArrived)
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
			json.NewEncoder(w).Encode(map[string]any{"items": []map[string]any{{"id": "old", "title": "Old", "price": 1}}})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"items": []map[string]any{{"id": "new", "title": "New", "price": 2}}})
	})

	firstErr := make(chan error, 1)
	go func() {
		_, err := catalog.Refresh(context.Background())
		firstErr <- err
	}()
	<-firstArrived

	snap, err := catalog.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Products, 1)
	assert.Equal(t, "new", snap.Products[0].ID)

	assert.ErrorIs(t, <-firstErr, ErrRefreshSuperseded)
	final := catalog.Snapshot()
	require.Len(t, final.Products, 1)
	assert.Equal(t, "new", final.Products[0].ID)
	assert.Empty(t, final.Error)
	assert.False(t, final.Loading)
}

func TestCatalogService_ListenersRunOnSuccess(t *testing.T) {
	catalog, _ := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(catalogFixture))
	})
	var seen []string
	catalog.OnRefresh(func(s CatalogSnapshot) { seen = s.Categories })

	_, err := catalog.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.CategoryAll, seen[0])
}

func TestDeriveCategories_NoDuplicates(t *testing.T) {
	products := []models.Product{
		{Category: "Lanche"}, {Category: "Bebidas"}, {Category: "Lanche"}, {Category: "Bebidas"},
	}
	assert.Equal(t, []string{models.CategoryAll, "Bebidas", "Lanche"}, DeriveCategories(products))
	assert.Equal(t, []string{models.CategoryAll}, DeriveCategories(nil))
}

func TestParseProductOptions(t *testing.T) {
	assert.Empty(t, ParseProductOptions(nil))
	assert.Empty(t, ParseProductOptions(json.RawMessage(`null`)))
	assert.Empty(t, ParseProductOptions(json.RawMessage(`"{broken"`)))
	assert.Empty(t, ParseProductOptions(json.RawMessage(`{"name":"x"}`)))

	groups := ParseProductOptions(json.RawMessage(`[
		{"name":"Molho","type":"select","values":["Ketchup","Barbecue (+R$1,00)"]},
		{"name":"Obs","type":"textarea","placeholder":"Sem cebola?"}
	]`))
	require.Len(t, groups, 2)
	assert.Equal(t, models.OptionKindDropdown, groups[0].Kind)
	assert.Equal(t, []string{"Ketchup"}, groups[0].Default, "first value is the default when none is given")
	assert.Equal(t, models.OptionKindText, groups[1].Kind)
	assert.Equal(t, "Sem cebola?", groups[1].Placeholder)
	assert.Empty(t, groups[1].Default)
}
