// internal/services/ui_state.go
package services

import (
	"sync"

	"github.com/javajoker/delivery-storefront/internal/models"
)

// UIState tracks the product being customized, which overlay is open and the
// current category filter. Opening checkout closes the cart overlay.
type UIState struct {
	mu              sync.RWMutex
	selected        *models.Product
	cartVisible     bool
	checkoutVisible bool
	category        string
}

func NewUIState() *UIState {
	return &UIState{category: models.CategoryAll}
}

func (u *UIState) SelectProduct(p models.Product) {
	u.mu.Lock()
	u.selected = &p
	u.mu.Unlock()
}

func (u *UIState) ClearSelection() {
	u.mu.Lock()
	u.selected = nil
	u.mu.Unlock()
}

func (u *UIState) ShowCart() {
	u.mu.Lock()
	u.cartVisible = true
	u.mu.Unlock()
}

func (u *UIState) HideCart() {
	u.mu.Lock()
	u.cartVisible = false
	u.mu.Unlock()
}

func (u *UIState) ShowCheckout() {
	u.mu.Lock()
	u.cartVisible = false
	u.checkoutVisible = true
	u.mu.Unlock()
}

func (u *UIState) HideCheckout() {
	u.mu.Lock()
	u.checkoutVisible = false
	u.mu.Unlock()
}

func (u *UIState) SetCategory(category string) {
	if category == "" {
		category = models.CategoryAll
	}
	u.mu.Lock()
	u.category = category
	u.mu.Unlock()
}

func (u *UIState) ResetCategory() {
	u.SetCategory(models.CategoryAll)
}

func (u *UIState) Category() string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.category
}

func (u *UIState) Snapshot() models.UISnapshot {
	u.mu.RLock()
	defer u.mu.RUnlock()
	snap := models.UISnapshot{
		CartVisible:     u.cartVisible,
		CheckoutVisible: u.checkoutVisible,
		Category:        u.category,
	}
	if u.selected != nil {
		p := *u.selected
		snap.SelectedProduct = &p
	}
	return snap
}
