// internal/handlers/ui.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/delivery-storefront/internal/services"
	"github.com/javajoker/delivery-storefront/internal/utils"
)

// UIHandler exposes the selection and overlay state of the session.
type UIHandler struct {
	catalog  *services.CatalogService
	sessions *services.SessionManager
}

func NewUIHandler(catalog *services.CatalogService, sessions *services.SessionManager) *UIHandler {
	return &UIHandler{
		catalog:  catalog,
		sessions: sessions,
	}
}

// GET /ui
func (h *UIHandler) GetState(c *gin.Context) {
	h.apply(c, func(*services.UIState) {})
}

// PUT /ui/selection
func (h *UIHandler) SelectProduct(c *gin.Context) {
	var req services.SelectProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.catalog.Product(req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.apply(c, func(ui *services.UIState) { ui.SelectProduct(product) })
}

// DELETE /ui/selection
func (h *UIHandler) ClearSelection(c *gin.Context) {
	h.apply(c, (*services.UIState).ClearSelection)
}

// POST /ui/cart/show
func (h *UIHandler) ShowCart(c *gin.Context) {
	h.apply(c, (*services.UIState).ShowCart)
}

// POST /ui/cart/hide
func (h *UIHandler) HideCart(c *gin.Context) {
	h.apply(c, (*services.UIState).HideCart)
}

// POST /ui/checkout/show
func (h *UIHandler) ShowCheckout(c *gin.Context) {
	h.apply(c, (*services.UIState).ShowCheckout)
}

// POST /ui/checkout/hide
func (h *UIHandler) HideCheckout(c *gin.Context) {
	h.apply(c, (*services.UIState).HideCheckout)
}

// PUT /ui/category
func (h *UIHandler) SetCategory(c *gin.Context) {
	var req services.SetCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	h.apply(c, func(ui *services.UIState) { ui.SetCategory(req.Category) })
}

func (h *UIHandler) apply(c *gin.Context, transition func(*services.UIState)) {
	session, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	transition(session.UI)
	utils.SuccessResponse(c, session.UI.Snapshot())
}
