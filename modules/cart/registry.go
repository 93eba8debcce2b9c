package cart

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Limits on the carts a registry keeps live.
const (
	DefaultLive = 1024
	DefaultIdle = 30 * time.Minute
)

// BucketFactory builds the bucket for a slot key.
type BucketFactory func(key string) Bucket

// KeyedListener is notified with the slot key of the cart that changed.
type KeyedListener func(key string, change Change)

// Registry keeps a bounded set of live carts, one per slot key. Carts are
// booted on first access and dropped once idle or least recently used;
// the next access boots them again from their bucket.
type Registry struct {
	// Booted is called with the slot key and line count of every cart
	// the registry boots and keeps.
	Booted func(key string, count int)

	mu        sync.Mutex
	carts     *expirable.LRU[string, *Cart]
	factory   BucketFactory
	listeners []KeyedListener
}

// NewRegistry keeps at most size carts live, each for idle after its last
// access. Zero values fall back to DefaultLive and DefaultIdle.
func NewRegistry(factory BucketFactory, size int, idle time.Duration, listeners ...KeyedListener) *Registry {
	if size <= 0 {
		size = DefaultLive
	}
	if idle <= 0 {
		idle = DefaultIdle
	}
	evicted := func(key string, c *Cart) {
		log.Debugf("cart %s dropped from the live set", key)
	}
	return &Registry{
		carts:     expirable.NewLRU[string, *Cart](size, evicted, idle),
		factory:   factory,
		listeners: listeners,
	}
}

// Get returns the live cart stored under key, booting it when needed.
func (r *Registry) Get(key string) *Cart {
	if c, exists := r.live(key); exists {
		return c
	}

	booted := r.boot(key)

	r.mu.Lock()
	if c, exists := r.carts.Get(key); exists {
		r.carts.Add(key, c)
		r.mu.Unlock()
		return c
	}
	r.carts.Add(key, booted)
	r.mu.Unlock()

	if r.Booted != nil {
		r.Booted(key, booted.Count())
	}
	return booted
}

// View returns the live cart under key or, when there is none, a cart
// booted from the bucket that is not kept. It is meant for reads.
func (r *Registry) View(key string) *Cart {
	if c, exists := r.live(key); exists {
		return c
	}
	return Boot(r.factory(key))
}

// Len is the number of live carts.
func (r *Registry) Len() int {
	return r.carts.Len()
}

func (r *Registry) live(key string) (*Cart, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, exists := r.carts.Get(key)
	if exists {
		// Add renews the idle deadline.
		r.carts.Add(key, c)
	}
	return c, exists
}

func (r *Registry) boot(key string) *Cart {
	options := make([]Option, 0, len(r.listeners))
	for _, fn := range r.listeners {
		fn := fn
		options = append(options, WithListener(func(change Change) {
			fn(key, change)
		}))
	}
	return Boot(r.factory(key), options...)
}
