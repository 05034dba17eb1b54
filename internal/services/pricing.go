// internal/services/pricing.go
package services

import (
	"regexp"
	"sort"
	"strings"

	"github.com/javajoker/delivery-storefront/internal/models"
	"github.com/javajoker/delivery-storefront/internal/utils"
)

// Matches labels such as "Extra cheese (+R$2,50)".
var priceDeltaPattern = regexp.MustCompile(`\(\+R\$\s?([\d,.]+)\)`)

// ExtractPriceDelta reads the "(+R$x,yy)" suffix of an option label. Labels
// without the pattern contribute nothing.
func ExtractPriceDelta(label string) float64 {
	match := priceDeltaPattern.FindStringSubmatch(label)
	if match == nil {
		return 0
	}
	delta, err := utils.ParseDecimal(match[1])
	if err != nil {
		return 0
	}
	return delta
}

// ResolveSelections turns the raw choices made in the customization view into
// selected options. Groups without a choice fall back to their default; blank
// values are dropped and values a group does not offer are rejected.
func ResolveSelections(product models.Product, choices map[string][]string) ([]models.SelectedOption, error) {
	selected := make([]models.SelectedOption, 0, len(product.Options))
	for _, group := range product.Options {
		values, ok := choices[group.Name]
		if !ok {
			values = group.Default
		}

		switch group.Kind {
		case models.OptionKindText:
			text := ""
			if len(values) > 0 {
				text = strings.TrimSpace(values[0])
			}
			if text != "" {
				selected = append(selected, models.SelectedOption{Name: group.Name, Value: text})
			}

		case models.OptionKindMulti:
			seen := make(map[string]struct{}, len(values))
			for _, v := range values {
				if v == "" {
					continue
				}
				if _, dup := seen[v]; dup {
					continue
				}
				seen[v] = struct{}{}
				option, ok := group.Value(v)
				if !ok {
					return nil, &InvalidOptionError{Group: group.Name, Value: v}
				}
				selected = append(selected, models.SelectedOption{Name: group.Name, Value: option.Label, PriceDelta: option.PriceDelta})
			}

		default:
			if len(values) == 0 || values[0] == "" {
				continue
			}
			if len(values) > 1 {
				return nil, &InvalidOptionError{Group: group.Name, Value: strings.Join(values, ", ")}
			}
			option, ok := group.Value(values[0])
			if !ok {
				return nil, &InvalidOptionError{Group: group.Name, Value: values[0]}
			}
			selected = append(selected, models.SelectedOption{Name: group.Name, Value: option.Label, PriceDelta: option.PriceDelta})
		}
	}
	return selected, nil
}

// UnitPrice is the base price plus every selected option's delta.
func UnitPrice(product models.Product, selected []models.SelectedOption) float64 {
	price := product.Price
	for _, opt := range selected {
		price += opt.PriceDelta
	}
	return price
}

// Quote is the running total shown while a product is being customized.
func Quote(product models.Product, quantity int, selected []models.SelectedOption) float64 {
	if quantity < 1 {
		quantity = 1
	}
	return UnitPrice(product, selected) * float64(quantity)
}

// OptionsSummary formats options as "name: value", sorted and joined by "; ",
// so the same set always yields the same text regardless of selection order.
func OptionsSummary(selected []models.SelectedOption) string {
	parts := make([]string, 0, len(selected))
	for _, opt := range selected {
		parts = append(parts, opt.Name+": "+opt.Value)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

func LineKey(productID, summary string) string {
	return productID + "-" + summary
}
