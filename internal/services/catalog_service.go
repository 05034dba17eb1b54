// internal/services/catalog_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/delivery-storefront/internal/config"
	"github.com/javajoker/delivery-storefront/internal/i18n"
	"github.com/javajoker/delivery-storefront/internal/models"
	"github.com/javajoker/delivery-storefront/internal/utils"
)

// ErrRefreshSuperseded is returned to a refresh whose result was discarded
// because a newer refresh started after it.
var ErrRefreshSuperseded = errors.New("catalog refresh superseded by a newer request")

type CatalogService struct {
	http *http.Client
	cfg  config.CatalogConfig
	lang string

	mu         sync.RWMutex
	products   []models.Product
	categories []string
	loading    bool
	errMsg     string
	updatedAt  time.Time
	seq        uint64
	cancel     context.CancelFunc
	listeners  []func(CatalogSnapshot)
}

type CatalogSnapshot struct {
	Products   []models.Product `json:"products"`
	Categories []string         `json:"categories"`
	Loading    bool             `json:"loading"`
	Error      string           `json:"error,omitempty"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

type catalogResponse struct {
	Items []catalogRecord `json:"items"`
}

type catalogRecord struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Price          json.RawMessage `json:"price"`
	Img            string          `json:"img"`
	Category       string          `json:"category"`
	Description    string          `json:"description"`
	Options        json.RawMessage `json:"options"`
	IsAvailable    *bool           `json:"isAvailable"`
	CollectionName string          `json:"collectionName"`
}

type rawOptionGroup struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Values      []string `json:"values"`
	Default     string   `json:"default"`
	Placeholder string   `json:"placeholder"`
}

func NewCatalogService(cfg config.CatalogConfig, client *http.Client, lang string) *CatalogService {
	if client == nil {
		client = &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second}
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	return &CatalogService{
		http:       client,
		cfg:        cfg,
		lang:       lang,
		categories: []string{models.CategoryAll},
	}
}

// OnRefresh registers fn to run after every successful refresh.
func (s *CatalogService) OnRefresh(fn func(CatalogSnapshot)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Refresh fetches the whole catalog and replaces the current state. Starting a
// refresh cancels any refresh still in flight.
func (s *CatalogService) Refresh(ctx context.Context) (CatalogSnapshot, error) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	if s.cancel != nil {
		s.cancel()
	}
	fetchCtx, cancel := s.fetchContext(ctx)
	s.cancel = cancel
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()
	defer cancel()

	products, err := s.fetch(fetchCtx)

	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		return s.Snapshot(), ErrRefreshSuperseded
	}
	s.loading = false
	s.cancel = nil
	s.updatedAt = time.Now()

	if err != nil {
		s.products = []models.Product{}
		s.categories = []string{models.CategoryAll}
		s.errMsg = i18n.T(s.lang, i18n.KeyCatalogLoadFailed, err.Error())
		snapshot := s.snapshotLocked()
		s.mu.Unlock()

		logrus.WithError(err).WithField("endpoint", s.cfg.Endpoint).Error("Failed to fetch catalog")
		return snapshot, err
	}

	s.products = products
	s.categories = DeriveCategories(products)
	snapshot := s.snapshotLocked()
	listeners := append([]func(CatalogSnapshot){}, s.listeners...)
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"products":   len(snapshot.Products),
		"categories": len(snapshot.Categories) - 1,
	}).Info("Catalog refreshed")

	for _, fn := range listeners {
		fn(snapshot)
	}
	return snapshot, nil
}

// fetchContext detaches the fetch from the caller so an aborted request cannot
// clear the shared catalog. Only the configured timeout and a newer refresh end it.
func (s *CatalogService) fetchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	base := context.WithoutCancel(ctx)
	if s.cfg.Timeout > 0 {
		return context.WithTimeout(base, time.Duration(s.cfg.Timeout)*time.Second)
	}
	return context.WithCancel(base)
}

func (s *CatalogService) fetch(ctx context.Context) ([]models.Product, error) {
	endpoint := fmt.Sprintf("%s/api/collections/%s/records?perPage=%d",
		s.cfg.Endpoint, url.PathEscape(s.cfg.Collection), s.cfg.PageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &CatalogFetchError{Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, &CatalogFetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &CatalogFetchError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
		}
	}

	var payload catalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &CatalogFetchError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	products := make([]models.Product, 0, len(payload.Items))
	for _, record := range payload.Items {
		product := s.normalize(record)
		if product.IsAvailable {
			products = append(products, product)
		}
	}
	return products, nil
}

func (s *CatalogService) normalize(record catalogRecord) models.Product {
	product := models.Product{
		ID:          record.ID,
		Name:        record.Title,
		Price:       parsePrice(record.Price),
		Image:       s.cfg.PlaceholderImage,
		Category:    record.Category,
		Description: record.Description,
		Options:     ParseProductOptions(record.Options),
		IsAvailable: true,
	}
	if record.Img != "" {
		product.Image = fmt.Sprintf("%s/api/files/%s/%s/%s", s.cfg.Endpoint, record.CollectionName, record.ID, record.Img)
	}
	if product.Category == "" {
		product.Category = models.CategoryUncategorized
	}
	if product.Description == "" {
		product.Description = models.DefaultDescription
	}
	if record.IsAvailable != nil {
		product.IsAvailable = *record.IsAvailable
	}
	return product
}

// parsePrice accepts a JSON number or a numeric string; anything else is 0.
func parsePrice(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var value float64
	if err := json.Unmarshal(raw, &value); err != nil {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0
		}
		if value, err = utils.ParseDecimal(text); err != nil {
			return 0
		}
	}
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}

// ParseProductOptions reads option groups from either a JSON-encoded string or
// a JSON array. Any parse failure yields no options.
func ParseProductOptions(raw json.RawMessage) []models.OptionGroup {
	groups := []models.OptionGroup{}
	if len(raw) == 0 {
		return groups
	}

	data := []byte(raw)
	var embedded string
	if err := json.Unmarshal(raw, &embedded); err == nil {
		data = []byte(embedded)
	}

	var rawGroups []rawOptionGroup
	if err := json.Unmarshal(data, &rawGroups); err != nil {
		return groups
	}

	for _, rg := range rawGroups {
		group := models.OptionGroup{
			Name:        rg.Name,
			Kind:        models.ParseOptionKind(rg.Type),
			Values:      make([]models.OptionValue, 0, len(rg.Values)),
			Default:     []string{},
			Placeholder: rg.Placeholder,
		}
		for _, label := range rg.Values {
			group.Values = append(group.Values, models.OptionValue{
				Label:      label,
				PriceDelta: ExtractPriceDelta(label),
			})
		}
		switch group.Kind {
		case models.OptionKindSingle, models.OptionKindDropdown:
			switch {
			case rg.Default != "":
				group.Default = []string{rg.Default}
			case len(rg.Values) > 0:
				group.Default = []string{rg.Values[0]}
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// DeriveCategories returns the "All" sentinel followed by the sorted distinct categories.
func DeriveCategories(products []models.Product) []string {
	seen := make(map[string]struct{}, len(products))
	unique := make([]string, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		unique = append(unique, p.Category)
	}
	sort.Strings(unique)
	return append([]string{models.CategoryAll}, unique...)
}

func (s *CatalogService) Snapshot() CatalogSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *CatalogService) snapshotLocked() CatalogSnapshot {
	return CatalogSnapshot{
		Products:   append([]models.Product{}, s.products...),
		Categories: append([]string{}, s.categories...),
		Loading:    s.loading,
		Error:      s.errMsg,
		UpdatedAt:  s.updatedAt,
	}
}

func (s *CatalogService) Product(id string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}
