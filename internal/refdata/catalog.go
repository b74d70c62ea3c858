package refdata

import (
	"strings"

	"github.com/stethcare/checkout-api/internal/domain"
)

// recommendedItems is the fixed upsell catalog. It doubles as the lookup
// table for adding line items to a draft cart.
var recommendedItems = []domain.LineItem{
	{Name: "Grey FIGS® Lanyard", Color: "Grey", PriceCents: 1600},
	{Name: "Blue FIGS® T-Shirt", Color: "Blue", PriceCents: 2000},
	{Name: "Black FIGS® Hoodie", Color: "Black", PriceCents: 4000},
}

// RecommendedItems returns the upsell catalog in display order.
func RecommendedItems() []domain.LineItem {
	out := make([]domain.LineItem, len(recommendedItems))
	copy(out, recommendedItems)
	return out
}

// CatalogItem looks up a recommended item by its identity key.
func CatalogItem(name string) (domain.LineItem, bool) {
	name = strings.TrimSpace(name)
	for _, item := range recommendedItems {
		if item.Name == name {
			return item, true
		}
	}
	return domain.LineItem{}, false
}

// ShippingOption is a selectable shipping method with a fixed cost.
type ShippingOption struct {
	Method    string
	Label     string
	CostCents int64
}

var shippingOptions = []ShippingOption{
	{Method: "standard", Label: "Standard (5-7 business days)", CostCents: 0},
	{Method: "express", Label: "Express (1-2 business days)", CostCents: 2500},
}

// ShippingOptions returns the selectable shipping methods in display order.
func ShippingOptions() []ShippingOption {
	out := make([]ShippingOption, len(shippingOptions))
	copy(out, shippingOptions)
	return out
}

// ShippingOptionFor looks up a shipping method by its key.
func ShippingOptionFor(method string) (ShippingOption, bool) {
	method = strings.ToLower(strings.TrimSpace(method))
	for _, opt := range shippingOptions {
		if opt.Method == method {
			return opt, true
		}
	}
	return ShippingOption{}, false
}
