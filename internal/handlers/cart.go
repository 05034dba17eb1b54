// internal/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/delivery-storefront/internal/i18n"
	"github.com/javajoker/delivery-storefront/internal/services"
	"github.com/javajoker/delivery-storefront/internal/utils"
)

type CartHandler struct {
	catalog  *services.CatalogService
	sessions *services.SessionManager
}

func NewCartHandler(catalog *services.CatalogService, sessions *services.SessionManager) *CartHandler {
	return &CartHandler{
		catalog:  catalog,
		sessions: sessions,
	}
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	session, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	utils.SuccessResponse(c, session.Cart.Snapshot())
}

// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	session, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	var req services.AddItemRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.catalog.Product(req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}

	selected, err := services.ResolveSelections(product, req.Options)
	if err != nil {
		respondError(c, err)
		return
	}

	line, err := session.Cart.AddItem(c.Request.Context(), product, req.Quantity, selected)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"line": line,
		"cart": session.Cart.Snapshot(),
	})
}

// PATCH /cart/items/:key
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	session, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	var req services.UpdateQuantityRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := session.Cart.UpdateQuantity(c.Request.Context(), c.Param("key"), req.Delta); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, session.Cart.Snapshot())
}

// DELETE /cart/items/:key
func (h *CartHandler) RemoveLine(c *gin.Context) {
	session, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	session.Cart.RemoveLine(c.Request.Context(), c.Param("key"))
	utils.SuccessResponse(c, session.Cart.Snapshot())
}

// DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	session, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	session.Cart.Clear(c.Request.Context())
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartCleared),
		"cart":    session.Cart.Snapshot(),
	})
}
