package events

import (
	"sync"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("events")

type Handler func(Event) error

type EventHandler struct {
	On      string
	Handler Handler
}

type Event struct {
	Name   string
	Params map[string]interface{}
}

// Bus fans incoming events out to the handlers registered for their name.
// Events are drained by a single goroutine, handlers run in order.
type Bus struct {
	In chan Event

	mu       sync.RWMutex
	handlers map[string][]Handler
	done     chan struct{}
	once     sync.Once
}

// New starts a bus with an input buffer of the given size.
func New(buffer int) *Bus {
	bus := &Bus{
		In:       make(chan Event, buffer),
		handlers: make(map[string][]Handler),
		done:     make(chan struct{}),
	}
	go bus.sink()
	return bus
}

// On registers handlers. Registration is visible to every event emitted
// after it returns.
func (bus *Bus) On(list ...EventHandler) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for _, h := range list {
		bus.handlers[h.On] = append(bus.handlers[h.On], h.Handler)
	}
}

// Emit queues an event, blocking while the buffer is full. Emitting on a
// closed bus panics.
func (bus *Bus) Emit(event Event) {
	bus.In <- event
}

// Close stops accepting events and waits for queued ones to be handled.
func (bus *Bus) Close() {
	bus.once.Do(func() {
		close(bus.In)
		<-bus.done
	})
}

func (bus *Bus) sink() {
	defer close(bus.done)
	for event := range bus.In {
		log.Debugf("incoming event: %s", event.Name)
		bus.mu.RLock()
		list := bus.handlers[event.Name]
		bus.mu.RUnlock()

		bus.exec(list, event)
	}
}

func (bus *Bus) exec(list []Handler, event Event) {
	for _, h := range list {
		if err := h(event); err != nil {
			log.Errorf("handler for %s failed: %v", event.Name, err)
		}
	}
}
