// internal/handlers/common.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/delivery-storefront/internal/i18n"
	"github.com/javajoker/delivery-storefront/internal/services"
	"github.com/javajoker/delivery-storefront/internal/utils"
)

// currentSession resolves the storefront session of the request.
func currentSession(c *gin.Context, sessions *services.SessionManager) (*services.Session, bool) {
	sessionID, ok := utils.GetSessionIDFromContext(c)
	if !ok {
		utils.BadRequestResponse(c, "Missing session", nil)
		return nil, false
	}
	return sessions.Get(c.Request.Context(), sessionID), true
}

// bindJSON decodes and validates the request body, writing the error response itself.
func bindJSON(c *gin.Context, req interface{}) bool {
	lang := utils.GetLangFromContext(c)
	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}
	return true
}

// respondError maps service errors onto the API error envelope.
func respondError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)
	message := services.UserMessage(lang, err)

	var (
		missing      *services.MissingFieldError
		insufficient *services.InsufficientChangeError
		option       *services.InvalidOptionError
		link         *services.DeepLinkOpenFailure
		fetch        *services.CatalogFetchError
	)

	switch {
	case errors.Is(err, services.ErrProductNotFound):
		utils.NotFoundResponse(c, "product")
	case errors.Is(err, services.ErrLineNotFound):
		utils.NotFoundResponse(c, "cart_line")
	case errors.Is(err, services.ErrNotificationNotFound):
		utils.NotFoundResponse(c, "notification")
	case errors.Is(err, services.ErrSubmissionNotFound):
		utils.NotFoundResponse(c, "submission")
	case errors.Is(err, services.ErrEmptyCart):
		utils.ErrorResponse(c, http.StatusBadRequest, "EMPTY_CART", message, nil)
	case errors.As(err, &missing):
		utils.ErrorResponse(c, http.StatusBadRequest, "MISSING_FIELD", message, gin.H{"field": missing.Field})
	case errors.Is(err, services.ErrUnsupportedPaymentMethod):
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_PAYMENT", message, nil)
	case errors.Is(err, services.ErrInvalidChangeAmount):
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_CHANGE", message, nil)
	case errors.As(err, &insufficient):
		utils.ErrorResponse(c, http.StatusBadRequest, "INSUFFICIENT_CHANGE", message, gin.H{
			"change": insufficient.Change,
			"total":  insufficient.Total,
		})
	case errors.Is(err, services.ErrInvalidQuantity):
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_QUANTITY", message, nil)
	case errors.As(err, &option):
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_OPTION", message, gin.H{
			"group": option.Group,
			"value": option.Value,
		})
	case errors.Is(err, services.ErrSubmissionInProgress):
		utils.ConflictResponse(c, message)
	case errors.As(err, &link):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "DEEP_LINK_FAILED", message, gin.H{
			"submission_id":  link.SubmissionID,
			"cart_preserved": true,
		})
	case errors.As(err, &fetch):
		utils.BadGatewayResponse(c, message)
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}
