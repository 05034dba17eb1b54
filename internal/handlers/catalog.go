// internal/handlers/catalog.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/delivery-storefront/internal/i18n"
	"github.com/javajoker/delivery-storefront/internal/services"
	"github.com/javajoker/delivery-storefront/internal/utils"
)

type CatalogHandler struct {
	catalog   *services.CatalogService
	sessions  *services.SessionManager
	preferred []string
}

func NewCatalogHandler(catalog *services.CatalogService, sessions *services.SessionManager, preferred []string) *CatalogHandler {
	return &CatalogHandler{
		catalog:   catalog,
		sessions:  sessions,
		preferred: preferred,
	}
}

// GET /catalog
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	utils.SuccessResponse(c, h.catalog.Snapshot())
}

// POST /catalog/refresh
func (h *CatalogHandler) RefreshCatalog(c *gin.Context) {
	snapshot, err := h.catalog.Refresh(c.Request.Context())
	if errors.Is(err, services.ErrRefreshSuperseded) {
		utils.SuccessResponseWithMeta(c, snapshot, gin.H{"superseded": true})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, snapshot, gin.H{
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyCatalogRefreshed),
	})
}

// GET /menu?category=
func (h *CatalogHandler) GetMenu(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		session, ok := currentSession(c, h.sessions)
		if !ok {
			return
		}
		category = session.UI.Category()
	}

	snapshot := h.catalog.Snapshot()
	menu := services.BuildMenu(snapshot.Products, snapshot.Categories, category, h.preferred)

	utils.SuccessResponse(c, gin.H{
		"menu":       menu,
		"categories": snapshot.Categories,
		"loading":    snapshot.Loading,
		"error":      snapshot.Error,
	})
}

// GET /products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalog.Product(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

// POST /products/:id/quote
func (h *CatalogHandler) QuoteProduct(c *gin.Context) {
	product, err := h.catalog.Product(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req services.QuoteRequest
	if !bindJSON(c, &req) {
		return
	}

	selected, err := services.ResolveSelections(product, req.Options)
	if err != nil {
		respondError(c, err)
		return
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	utils.SuccessResponse(c, services.QuoteResponse{
		UnitPrice: services.UnitPrice(product, selected),
		Quantity:  quantity,
		Total:     services.Quote(product, quantity, selected),
		Selected:  selected,
	})
}
