// internal/services/order_composer.go
package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/javajoker/delivery-storefront/internal/config"
	"github.com/javajoker/delivery-storefront/internal/models"
	"github.com/javajoker/delivery-storefront/internal/utils"
)

// Required order fields, checked in this order.
const (
	FieldCustomerName  = "client_name"
	FieldStreet        = "street"
	FieldNumber        = "number"
	FieldNeighborhood  = "neighborhood"
	FieldPaymentMethod = "payment_method"
)

const orderTemplate = `📱 *NOVO PEDIDO - %[1]s*

👤 *Cliente:* %[2]s
📍 *Endereço:* %[3]s
💳 *Pagamento:* %[4]s

🍔 *Itens do Pedido:*
%[5]s
💰 *Total: %[6]s*

🛵 *Pedido gerado via App %[1]s.*`

// ComposeOrder validates the form against the cart and renders the outbound
// message and its messaging deep link. It has no side effects.
func ComposeOrder(settings config.StorefrontConfig, lines []models.CartLine, form models.OrderForm) (*models.ComposedOrder, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	required := []struct {
		field string
		value string
	}{
		{FieldCustomerName, form.CustomerName},
		{FieldStreet, form.Street},
		{FieldNumber, form.Number},
		{FieldNeighborhood, form.Neighborhood},
		{FieldPaymentMethod, string(form.PaymentMethod)},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, &MissingFieldError{Field: r.field}
		}
	}

	method := models.PaymentMethod(strings.TrimSpace(string(form.PaymentMethod)))
	form.PaymentMethod = method
	if err := utils.ValidateStruct(&form); err != nil {
		return nil, ErrUnsupportedPaymentMethod
	}

	total := cartTotal(lines)
	paymentInfo := string(method)
	if method == models.PaymentMethodCash && strings.TrimSpace(form.ChangeFor) != "" {
		change, err := utils.ParseDecimal(form.ChangeFor)
		if err != nil || change <= 0 {
			return nil, ErrInvalidChangeAmount
		}
		if change < total {
			return nil, &InsufficientChangeError{Change: change, Total: total}
		}
		paymentInfo += fmt.Sprintf(" (Troco para %s)", utils.FormatBRL(change))
	}

	message := fmt.Sprintf(orderTemplate,
		settings.BusinessName,
		strings.TrimSpace(form.CustomerName),
		AddressLine(form),
		paymentInfo,
		ItemsBlock(lines),
		utils.FormatBRL(total),
	)

	return &models.ComposedOrder{
		Message:     message,
		DeepLinkURL: DeepLinkURL(settings, message),
		Total:       total,
	}, nil
}

// AddressLine renders "street, number[, complement], neighborhood".
func AddressLine(form models.OrderForm) string {
	parts := []string{strings.TrimSpace(form.Street), strings.TrimSpace(form.Number)}
	if complement := strings.TrimSpace(form.Complement); complement != "" {
		parts = append(parts, complement)
	}
	parts = append(parts, strings.TrimSpace(form.Neighborhood))
	return strings.Join(parts, ", ")
}

// ItemsBlock renders one "- {qty}x {name} ({options}) - {subtotal}" line per cart line.
func ItemsBlock(lines []models.CartLine) string {
	var b strings.Builder
	for _, line := range lines {
		fmt.Fprintf(&b, "- %dx %s", line.Quantity, line.Name)
		if line.OptionsText != "" {
			fmt.Fprintf(&b, " (%s)", strings.ReplaceAll(line.OptionsText, "; ", ", "))
		}
		fmt.Fprintf(&b, " - %s\n", utils.FormatBRL(line.Subtotal()))
	}
	return b.String()
}

// DeepLinkURL percent-encodes the message the way browsers encode URI
// components, with spaces as %20.
func DeepLinkURL(settings config.StorefrontConfig, message string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("%s/%s?text=%s", strings.TrimRight(settings.MessagingBaseURL, "/"), settings.WhatsAppNumber, encoded)
}
