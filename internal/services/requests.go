package services

import "github.com/javajoker/delivery-storefront/internal/models"

// Options maps an option group name to the values chosen for it. Single
// choice groups take one value; free text groups take the text as one value.
type Options map[string][]string

type AddItemRequest struct {
	ProductID string  `json:"product_id" validate:"not_blank"`
	Quantity  int     `json:"quantity" validate:"min=1"`
	Options   Options `json:"options,omitempty"`
}

type QuoteRequest struct {
	Quantity int     `json:"quantity" validate:"min=0"`
	Options  Options `json:"options,omitempty"`
}

type QuoteResponse struct {
	UnitPrice float64                 `json:"unit_price"`
	Quantity  int                     `json:"quantity"`
	Total     float64                 `json:"total"`
	Selected  []models.SelectedOption `json:"selected"`
}

type UpdateQuantityRequest struct {
	Delta int `json:"delta" validate:"ne=0"`
}

type SelectProductRequest struct {
	ProductID string `json:"product_id" validate:"not_blank"`
}

type SetCategoryRequest struct {
	Category string `json:"category"`
}

type ConfirmOrderRequest struct {
	Opened *bool  `json:"opened" validate:"required"`
	Reason string `json:"reason,omitempty" validate:"max=255"`
}
