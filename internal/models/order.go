// internal/models/order.go
package models

import "time"

// OrderForm is never persisted.
type OrderForm struct {
	CustomerName  string        `json:"client_name"`
	Street        string        `json:"street"`
	Number        string        `json:"number"`
	Complement    string        `json:"complement"`
	Neighborhood  string        `json:"neighborhood"`
	PaymentMethod PaymentMethod `json:"payment_method" validate:"payment_method"`
	ChangeFor     string        `json:"troco"`
}

type ComposedOrder struct {
	Message     string  `json:"message"`
	DeepLinkURL string  `json:"deep_link_url"`
	Total       float64 `json:"total"`
}

type SubmissionStatus string

const (
	SubmissionStatusPending   SubmissionStatus = "pending"
	SubmissionStatusCompleted SubmissionStatus = "completed"
	SubmissionStatusFailed    SubmissionStatus = "failed"
	SubmissionStatusExpired   SubmissionStatus = "expired"
	SubmissionStatusCancelled SubmissionStatus = "cancelled"
)

type Submission struct {
	ID        string           `json:"id"`
	Order     ComposedOrder    `json:"order"`
	Status    SubmissionStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}

type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UISnapshot is the selection/overlay state handed to the view layer.
type UISnapshot struct {
	SelectedProduct *Product `json:"selected_product"`
	CartVisible     bool     `json:"cart_visible"`
	CheckoutVisible bool     `json:"checkout_visible"`
	Category        string   `json:"category"`
}
