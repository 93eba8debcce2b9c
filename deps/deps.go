package deps

import (
	"github.com/go-redis/redis/v8"
	"github.com/olebedev/config"
	"github.com/siddontang/ledisdb/ledis"
	"github.com/tidwall/buntdb"
	settings "github.com/tryanzu/storefront/core/config"
	"github.com/tryanzu/storefront/core/events"
	"github.com/tryanzu/storefront/modules/cart"
	"github.com/tryanzu/storefront/modules/catalog"
)

type Deps struct {
	SettingsProvider *settings.Config
	ConfigProvider   *config.Config
	BuntProvider     *buntdb.DB
	LedisProvider    *ledis.DB
	CacheProvider    *redis.Client
	CatalogProvider  *catalog.Catalog
	EventsProvider   *events.Bus
	BucketsProvider  cart.BucketFactory
	CartsProvider    *cart.Registry

	closers []func() error
}

func (d Deps) Settings() *settings.Config {
	return d.SettingsProvider
}

func (d Deps) Config() *config.Config {
	return d.ConfigProvider
}

func (d Deps) Bunt() *buntdb.DB {
	return d.BuntProvider
}

func (d Deps) Ledis() *ledis.DB {
	return d.LedisProvider
}

func (d Deps) Cache() *redis.Client {
	return d.CacheProvider
}

func (d Deps) Catalog() *catalog.Catalog {
	return d.CatalogProvider
}

func (d Deps) Events() *events.Bus {
	return d.EventsProvider
}

func (d Deps) Buckets() cart.BucketFactory {
	return d.BucketsProvider
}

func (d Deps) Carts() *cart.Registry {
	return d.CartsProvider
}

// Storage is the configured cart driver.
func (d Deps) Storage() string {
	return d.Config().UString("cart.storage", StorageBunt)
}

// Slot is the key a cart is stored under, scoped to a visitor when one
// is given.
func (d Deps) Slot(visitor string) string {
	slot := d.Config().UString("cart.slot", cart.DefaultSlot)
	if visitor == "" {
		return slot
	}
	return slot + ":" + visitor
}

func (d *Deps) onClose(fn func() error) {
	d.closers = append(d.closers, fn)
}

// Close releases what the ignitors opened, last opened first.
func (d Deps) Close() error {
	var first error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}
