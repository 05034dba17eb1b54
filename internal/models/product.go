// internal/models/product.go
package models

type Product struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Price       float64       `json:"price"`
	Image       string        `json:"image"`
	Category    string        `json:"category"`
	Description string        `json:"description"`
	Options     []OptionGroup `json:"options"`
	IsAvailable bool          `json:"is_available"`
}

type OptionGroup struct {
	Name        string        `json:"name"`
	Kind        OptionKind    `json:"kind"`
	Values      []OptionValue `json:"values"`
	Default     []string      `json:"default"`
	Placeholder string        `json:"placeholder,omitempty"`
}

// OptionValue carries the price delta next to the label it was read from.
type OptionValue struct {
	Label      string  `json:"label"`
	PriceDelta float64 `json:"price_delta"`
}

func (g OptionGroup) Value(label string) (OptionValue, bool) {
	for _, v := range g.Values {
		if v.Label == label {
			return v, true
		}
	}
	return OptionValue{}, false
}
