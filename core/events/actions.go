package events

import "github.com/tryanzu/storefront/modules/cart"

func CartChanged(key string, change cart.Change) Event {
	return Event{
		Name: CART_CHANGED,
		Params: map[string]interface{}{
			"key":    key,
			"status": change.Result.Status,
			"item":   change.Result.Item,
			"count":  len(change.Items),
			"total":  change.Total,
		},
	}
}

func CartBooted(key string, count int) Event {
	return Event{
		Name: CART_BOOTED,
		Params: map[string]interface{}{
			"key":   key,
			"count": count,
		},
	}
}

// Forward returns a cart listener emitting every change on bus.
func Forward(bus *Bus) cart.KeyedListener {
	return func(key string, change cart.Change) {
		bus.Emit(CartChanged(key, change))
	}
}

// Booted returns a registry hook emitting every cart boot on bus.
func Booted(bus *Bus) func(key string, count int) {
	return func(key string, count int) {
		bus.Emit(CartBooted(key, count))
	}
}
