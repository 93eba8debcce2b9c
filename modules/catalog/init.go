package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/op/go-logging"
	"gopkg.in/go-playground/validator.v8"
)

var log = logging.MustGetLogger("catalog")

var (
	ErrProductNotFound = errors.New("product has not been found by given id")
	ErrInvalidCatalog  = errors.New("invalid catalog")
)

//go:embed products.json
var bundled []byte

var validate = validator.New(&validator.Config{TagName: "validate"})

// Catalog is the read-only product list served by the storefront.
type Catalog struct {
	products Products
	byId     map[string]int
}

// Default catalog bundled with the binary.
func Default() *Catalog {
	module, err := Parse(bundled)
	if err != nil {
		panic(err)
	}
	return module
}

// Open loads the catalog from a JSON file. An empty path yields the
// bundled catalog.
func Open(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var list Products
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	module := &Catalog{
		products: make(Products, 0, len(list)),
		byId:     make(map[string]int, len(list)),
	}
	for _, p := range list {
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("%w: product %q: %v", ErrInvalidCatalog, p.Id, err)
		}
		if _, exists := module.byId[p.Id]; exists {
			return nil, fmt.Errorf("%w: duplicated product id %q", ErrInvalidCatalog, p.Id)
		}
		module.byId[p.Id] = len(module.products)
		module.products = append(module.products, p)
	}

	log.Infof("catalog loaded with %d products", len(module.products))
	return module, nil
}

// All products in catalog order.
func (module *Catalog) All() Products {
	list := make(Products, len(module.products))
	copy(list, module.products)
	return list
}

func (module *Catalog) Len() int {
	return len(module.products)
}

// Categories lists the distinct categories in first-seen order.
func (module *Catalog) Categories() []string {
	return module.distinct(func(p Product) string { return p.Category })
}

// Brands lists the distinct makers, sorted.
func (module *Catalog) Brands() []string {
	list := module.distinct(Product.Maker)
	sort.Strings(list)
	return list
}

func (module *Catalog) distinct(key func(Product) string) []string {
	seen := map[string]bool{}
	list := []string{}
	for _, p := range module.products {
		k := key(p)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		list = append(list, k)
	}
	return list
}
