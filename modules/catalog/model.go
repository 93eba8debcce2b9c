package catalog

import (
	"strings"

	"github.com/tryanzu/storefront/modules/cart"
	"github.com/tryanzu/storefront/modules/helpers"
)

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product as listed in the catalog. Products are never mutated once loaded.
type Product struct {
	Id          string  `json:"id" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Rating      Rating  `json:"rating"`
	Brand       string  `json:"brand,omitempty"`
}

// Item is the cart payload for the product, taken from the catalog and
// never from the caller.
func (p Product) Item() cart.Item {
	return cart.Item{
		Id:    p.Id,
		Title: p.Title,
		Price: p.Price,
		Image: p.Image,
	}
}

// Maker is the explicit brand or, failing that, the first word of the title.
func (p Product) Maker() string {
	if p.Brand != "" {
		return p.Brand
	}
	if fields := strings.Fields(p.Title); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

// Slug used by product urls.
func (p Product) Slug() string {
	return helpers.StrSlug(p.Title)
}

type Products []Product

func (list Products) Ids() []string {
	ids := make([]string, len(list))
	for i, p := range list {
		ids[i] = p.Id
	}
	return ids
}
