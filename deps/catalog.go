package deps

import (
	"github.com/tryanzu/storefront/modules/catalog"
)

func IgniteCatalog(container Deps) (Deps, error) {
	c, err := catalog.Open(container.Config().UString("catalog.file"))
	if err != nil {
		return container, err
	}
	container.CatalogProvider = c
	return container, nil
}
