package catalog

import "strings"

func (module *Catalog) FindId(id string) (p Product, err error) {
	i, exists := module.byId[strings.TrimSpace(id)]
	if !exists {
		err = ErrProductNotFound
		return
	}
	return module.products[i], nil
}

// FindSlug finds the product whose title slug matches.
func (module *Catalog) FindSlug(slug string) (p Product, err error) {
	for _, product := range module.products {
		if product.Slug() == slug {
			return product, nil
		}
	}
	err = ErrProductNotFound
	return
}

// FindList returns the products with the given ids, skipping unknown ones.
func (module *Catalog) FindList(ids ...string) Products {
	list := Products{}
	for _, id := range ids {
		if p, err := module.FindId(id); err == nil {
			list = append(list, p)
		}
	}
	return list
}

// Search matches term against product titles, ignoring case.
func (module *Catalog) Search(term string, limit int) Products {
	return module.Find(Filter{Search: term, Limit: limit}).List
}

// Find applies f to the catalog.
func (module *Catalog) Find(f Filter) Page {
	matched := Products{}
	for _, p := range module.products {
		if f.Match(p) {
			matched = append(matched, p)
		}
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	page := Page{Total: len(matched), List: matched}
	if len(matched) > limit {
		page.List = matched[:limit]
	}
	return page
}
