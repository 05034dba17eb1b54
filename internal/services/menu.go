// internal/services/menu.go
package services

import (
	"sort"

	"github.com/javajoker/delivery-storefront/internal/models"
)

type MenuSection struct {
	Category string           `json:"category"`
	Products []models.Product `json:"products"`
}

type Menu struct {
	Category string        `json:"category"`
	Sections []MenuSection `json:"sections"`
}

// BuildMenu lays products out for display. A specific category yields a single
// flat section. The "All" category groups products by category: categories in
// preferred come first in that order, the rest alphabetically; empty sections
// are left out.
func BuildMenu(products []models.Product, categories []string, category string, preferred []string) Menu {
	if category == "" {
		category = models.CategoryAll
	}

	if category != models.CategoryAll {
		return Menu{
			Category: category,
			Sections: []MenuSection{{Category: category, Products: productsIn(products, category)}},
		}
	}

	rank := make(map[string]int, len(preferred))
	for i, name := range preferred {
		if _, ok := rank[name]; !ok {
			rank[name] = i
		}
	}

	ordered := make([]string, 0, len(categories))
	for _, c := range categories {
		if c != models.CategoryAll {
			ordered = append(ordered, c)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		ri, iok := rank[ordered[i]]
		rj, jok := rank[ordered[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok:
			return true
		case jok:
			return false
		default:
			return ordered[i] < ordered[j]
		}
	})

	menu := Menu{Category: category, Sections: []MenuSection{}}
	for _, c := range ordered {
		items := productsIn(products, c)
		if len(items) == 0 {
			continue
		}
		menu.Sections = append(menu.Sections, MenuSection{Category: c, Products: items})
	}
	return menu
}

func productsIn(products []models.Product, category string) []models.Product {
	out := []models.Product{}
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}
