// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/delivery-storefront/internal/i18n"
	"github.com/javajoker/delivery-storefront/internal/models"
	"github.com/javajoker/delivery-storefront/internal/services"
	"github.com/javajoker/delivery-storefront/internal/utils"
)

type OrderHandler struct {
	sessions *services.SessionManager
}

func NewOrderHandler(sessions *services.SessionManager) *OrderHandler {
	return &OrderHandler{sessions: sessions}
}

// POST /orders/preview
func (h *OrderHandler) PreviewOrder(c *gin.Context) {
	session, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	form, ok := bindOrderForm(c)
	if !ok {
		return
	}

	order, err := session.Orders.Preview(form)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

// POST /orders
// The client opens the returned deep link and reports back through
// POST /orders/:id/confirm; the cart is only cleared then.
func (h *OrderHandler) SubmitOrder(c *gin.Context) {
	session, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	form, ok := bindOrderForm(c)
	if !ok {
		return
	}

	submission, err := session.Orders.Submit(form)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, submission)
}

// GET /orders/pending
func (h *OrderHandler) GetPendingOrder(c *gin.Context) {
	session, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	utils.SuccessResponse(c, gin.H{
		"submission": session.Orders.Pending(),
	})
}

// POST /orders/:id/confirm
func (h *OrderHandler) ConfirmOrder(c *gin.Context) {
	session, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	var req services.ConfirmOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	// A blocked link maps to DEEP_LINK_FAILED; the cart is left untouched.
	submission, err := session.Orders.Confirm(c.Request.Context(), c.Param("id"), *req.Opened, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"submission": submission,
		"cart":       session.Cart.Snapshot(),
	})
}

// DELETE /orders/:id
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	session, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	submission, err := session.Orders.Cancel(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, submission)
}

// bindOrderForm only decodes the form. Field checks belong to the composer so
// the first missing field is reported in a fixed order.
func bindOrderForm(c *gin.Context) (models.OrderForm, bool) {
	var form models.OrderForm
	if err := c.ShouldBindJSON(&form); err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return form, false
	}
	return form, true
}
