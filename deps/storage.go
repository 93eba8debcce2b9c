package deps

import (
	"fmt"

	"github.com/tryanzu/storefront/modules/cart"
)

// Cart storage drivers.
const (
	StorageBunt    = "bunt"
	StorageLedis   = "ledis"
	StorageRedis   = "redis"
	StorageMemory  = "memory"
	StorageSession = "session"
)

// IgniteStorage opens the store behind the configured cart driver and
// provides the bucket factory for it. The session driver keeps carts in
// the visitor's cookie and has no factory.
func IgniteStorage(container Deps) (Deps, error) {
	var err error
	switch driver := container.Storage(); driver {
	case StorageBunt:
		if container, err = IgniteBuntDB(container); err != nil {
			return container, err
		}
		db := container.Bunt()
		container.BucketsProvider = func(key string) cart.Bucket {
			return cart.BuntBucket{DB: db, Key: key}
		}
	case StorageLedis:
		if container, err = IgniteLedisDB(container); err != nil {
			return container, err
		}
		db := container.Ledis()
		container.BucketsProvider = func(key string) cart.Bucket {
			return cart.LedisBucket{DB: db, Key: key}
		}
	case StorageRedis:
		if container, err = IgniteCache(container); err != nil {
			return container, err
		}
		client := container.Cache()
		container.BucketsProvider = func(key string) cart.Bucket {
			return cart.RedisBucket{Client: client, Key: key}
		}
	case StorageMemory:
		container.BucketsProvider = cart.NewMemoryStore().Bucket
	case StorageSession:
	default:
		return container, fmt.Errorf("unknown cart storage %q", driver)
	}
	log.Infof("cart storage: %s", container.Storage())
	return container, nil
}
