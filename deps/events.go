package deps

import (
	"fmt"
	"time"

	"github.com/tryanzu/storefront/core/events"
	"github.com/tryanzu/storefront/modules/cart"
)

func IgniteEvents(container Deps) (Deps, error) {
	bus := events.New(64)
	bus.On(events.EventHandler{
		On: events.CART_CHANGED,
		Handler: func(e events.Event) error {
			log.Debugf("cart %v %v, %v lines, total %v", e.Params["key"], e.Params["status"], e.Params["count"], e.Params["total"])
			return nil
		},
	}, events.EventHandler{
		On: events.CART_BOOTED,
		Handler: func(e events.Event) error {
			log.Debugf("cart %v booted with %v lines", e.Params["key"], e.Params["count"])
			return nil
		},
	})

	container.EventsProvider = bus
	container.onClose(func() error {
		bus.Close()
		return nil
	})
	return container, nil
}

// IgniteCarts keeps a bounded set of live carts, one per visitor slot.
// Every boot and change is forwarded to the event bus.
func IgniteCarts(container Deps) (Deps, error) {
	factory := container.Buckets()
	if factory == nil {
		return container, nil
	}

	idle, err := time.ParseDuration(container.Config().UString("cart.idle", cart.DefaultIdle.String()))
	if err != nil {
		return container, fmt.Errorf("cart.idle: %w", err)
	}
	live := container.Config().UInt("cart.live", cart.DefaultLive)

	listeners := []cart.KeyedListener{}
	bus := container.Events()
	if bus != nil {
		listeners = append(listeners, events.Forward(bus))
	}
	registry := cart.NewRegistry(factory, live, idle, listeners...)
	if bus != nil {
		registry.Booted = events.Booted(bus)
	}
	container.CartsProvider = registry
	return container, nil
}
