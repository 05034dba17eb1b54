// internal/models/cart.go
package models

// SelectedOption is one chosen value of an option group.
type SelectedOption struct {
	Name       string  `json:"name"`
	Value      string  `json:"value"`
	PriceDelta float64 `json:"price_delta"`
}

// CartLine json names match the persisted browser schema.
type CartLine struct {
	Key         string  `json:"cartItemId"`
	ProductID   string  `json:"id"`
	Name        string  `json:"name"`
	UnitPrice   float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Image       string  `json:"image"`
	OptionsText string  `json:"optionsText"`
}

func (l CartLine) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

type CartSnapshot struct {
	Lines     []CartLine `json:"lines"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"item_count"`
}
