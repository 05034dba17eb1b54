// internal/services/errors.go
package services

import (
	"errors"
	"fmt"

	"github.com/javajoker/delivery-storefront/internal/i18n"
)

var (
	ErrProductNotFound          = errors.New("product not found")
	ErrLineNotFound             = errors.New("cart line not found")
	ErrInvalidQuantity          = errors.New("quantity must be at least 1")
	ErrEmptyCart                = errors.New("cart is empty")
	ErrInvalidChangeAmount      = errors.New("invalid change amount")
	ErrUnsupportedPaymentMethod = errors.New("unsupported payment method")
	ErrSubmissionInProgress     = errors.New("an order submission is already pending")
	ErrSubmissionNotFound       = errors.New("submission not found")
	ErrNotificationNotFound     = errors.New("notification not found")
)

// CatalogFetchError covers both non-2xx responses and transport failures.
type CatalogFetchError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *CatalogFetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog fetch failed: %v", e.Err)
	}
	return fmt.Sprintf("HTTP error: %d - %s", e.StatusCode, e.Status)
}

func (e *CatalogFetchError) Unwrap() error {
	return e.Err
}

// MissingFieldError names the first required order field that was blank.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

type InsufficientChangeError struct {
	Change float64
	Total  float64
}

func (e *InsufficientChangeError) Error() string {
	return fmt.Sprintf("change for %.2f does not cover total %.2f", e.Change, e.Total)
}

type InvalidOptionError struct {
	Group string
	Value string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("option %q is not offered by %q", e.Value, e.Group)
}

// DeepLinkOpenFailure means the messaging link could not be opened; the cart is kept.
type DeepLinkOpenFailure struct {
	SubmissionID string
	Reason       string
}

func (e *DeepLinkOpenFailure) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("deep link for submission %s was not opened", e.SubmissionID)
	}
	return fmt.Sprintf("deep link for submission %s was not opened: %s", e.SubmissionID, e.Reason)
}

var fieldLabels = map[string]string{
	FieldCustomerName:  i18n.KeyFieldCustomerName,
	FieldStreet:        i18n.KeyFieldStreet,
	FieldNumber:        i18n.KeyFieldNumber,
	FieldNeighborhood:  i18n.KeyFieldNeighborhood,
	FieldPaymentMethod: i18n.KeyFieldPaymentMethod,
}

// UserMessage renders err as the message shown to the customer in lang.
func UserMessage(lang string, err error) string {
	var (
		missing      *MissingFieldError
		insufficient *InsufficientChangeError
		option       *InvalidOptionError
		link         *DeepLinkOpenFailure
		fetch        *CatalogFetchError
	)

	switch {
	case errors.Is(err, ErrEmptyCart):
		return i18n.T(lang, i18n.KeyCartEmpty)
	case errors.As(err, &missing):
		return i18n.T(lang, i18n.KeyOrderMissingField, i18n.T(lang, fieldLabels[missing.Field]))
	case errors.Is(err, ErrUnsupportedPaymentMethod):
		return i18n.T(lang, i18n.KeyOrderInvalidPayment)
	case errors.Is(err, ErrInvalidChangeAmount):
		return i18n.T(lang, i18n.KeyOrderInvalidChange)
	case errors.As(err, &insufficient):
		return i18n.T(lang, i18n.KeyOrderInsufficientChange)
	case errors.Is(err, ErrSubmissionInProgress):
		return i18n.T(lang, i18n.KeyOrderInProgress)
	case errors.As(err, &link):
		return i18n.T(lang, i18n.KeyOrderLinkFailed)
	case errors.Is(err, ErrInvalidQuantity):
		return i18n.T(lang, i18n.KeyCartInvalidQty)
	case errors.As(err, &option):
		return i18n.T(lang, i18n.KeyOptionInvalid, option.Group)
	case errors.As(err, &fetch):
		return i18n.T(lang, i18n.KeyCatalogLoadFailed, fetch.Error())
	case errors.Is(err, ErrProductNotFound):
		return i18n.T(lang, i18n.KeyProductNotFound)
	case errors.Is(err, ErrLineNotFound):
		return i18n.T(lang, i18n.KeyCartLineNotFound)
	case errors.Is(err, ErrSubmissionNotFound):
		return i18n.T(lang, i18n.KeySubmissionNotFound)
	case errors.Is(err, ErrNotificationNotFound):
		return i18n.T(lang, i18n.KeyNotificationGone)
	default:
		return err.Error()
	}
}
