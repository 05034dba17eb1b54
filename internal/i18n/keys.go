// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Catalog
	KeyCatalogLoadFailed = "catalog.load_failed"
	KeyCatalogRefreshed  = "catalog.refreshed"
	KeyProductNotFound   = "product.not_found"
	KeyOptionInvalid     = "product.option_invalid"

	// Cart
	KeyCartItemAdded      = "cart.item_added"
	KeyCartLineNotFound   = "cart_line.not_found"
	KeyCartCleared        = "cart.cleared"
	KeyCartEmpty          = "cart.empty"
	KeyCartInvalidQty     = "cart.invalid_quantity"
	KeyNotificationGone   = "notification.not_found"
	KeySubmissionNotFound = "submission.not_found"

	// Orders
	KeyOrderMissingField       = "order.missing_field"
	KeyOrderInvalidPayment     = "order.invalid_payment"
	KeyOrderInvalidChange      = "order.invalid_change"
	KeyOrderInsufficientChange = "order.insufficient_change"
	KeyOrderInProgress         = "order.in_progress"
	KeyOrderSent               = "order.sent"
	KeyOrderLinkFailed         = "order.link_failed"

	// Form field labels
	KeyFieldCustomerName  = "field.client_name"
	KeyFieldStreet        = "field.street"
	KeyFieldNumber        = "field.number"
	KeyFieldNeighborhood  = "field.neighborhood"
	KeyFieldPaymentMethod = "field.payment_method"
)
