// internal/models/common.go
package models

import "time"

// Sentinels shared by the catalog and the menu view.
const (
	CategoryAll           = "Todos"
	CategoryUncategorized = "Sem Categoria"
	DefaultDescription    = "Sem descrição disponível."
)

type OptionKind string

const (
	OptionKindSingle   OptionKind = "single"
	OptionKindDropdown OptionKind = "dropdown"
	OptionKindMulti    OptionKind = "multi"
	OptionKindText     OptionKind = "text"
)

// ParseOptionKind maps the backend's form-control names onto option kinds.
func ParseOptionKind(raw string) OptionKind {
	switch raw {
	case "radio", string(OptionKindSingle):
		return OptionKindSingle
	case "select", string(OptionKindDropdown):
		return OptionKindDropdown
	case "checkbox", string(OptionKindMulti):
		return OptionKindMulti
	case "textarea", string(OptionKindText):
		return OptionKindText
	default:
		return OptionKindSingle
	}
}

type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "Cartão de Crédito"
	PaymentMethodDebitCard  PaymentMethod = "Cartão de Débito"
	PaymentMethodPix        PaymentMethod = "Pix"
	PaymentMethodCash       PaymentMethod = "Dinheiro"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodPix, PaymentMethodCash:
		return true
	}
	return false
}

// StoredValue is one row of the relational key/value store.
type StoredValue struct {
	Key       string    `gorm:"column:store_key;primaryKey;size:255"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (StoredValue) TableName() string {
	return "storefront_kv"
}
