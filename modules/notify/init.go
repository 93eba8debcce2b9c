package notify

import (
	"sync"
	"time"

	uuid "github.com/satori/go.uuid"
)

// Lifetime of a toast once pushed.
const Lifetime = 3 * time.Second

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
	Warning Kind = "warning"
)

type Toast struct {
	Id      string    `json:"id"`
	Message string    `json:"message"`
	Kind    Kind      `json:"type"`
	At      time.Time `json:"-"`
}

// Center holds the visible toasts. Expired toasts are dropped on read.
type Center struct {
	mu     sync.Mutex
	toasts []Toast
	ttl    time.Duration
	now    func() time.Time
}

func NewCenter() *Center {
	return &Center{
		toasts: []Toast{},
		ttl:    Lifetime,
		now:    time.Now,
	}
}

// Push shows a new toast. An empty kind means success.
func (module *Center) Push(kind Kind, message string) Toast {
	if kind == "" {
		kind = Success
	}
	t := Toast{
		Id:      uuid.NewV4().String(),
		Message: message,
		Kind:    kind,
		At:      module.now(),
	}

	module.mu.Lock()
	module.toasts = append(module.toasts, t)
	module.mu.Unlock()
	return t
}

// Active returns the toasts still visible, oldest first.
func (module *Center) Active() []Toast {
	module.mu.Lock()
	defer module.mu.Unlock()

	now := module.now()
	alive := module.toasts[:0]
	for _, t := range module.toasts {
		if now.Sub(t.At) < module.ttl {
			alive = append(alive, t)
		}
	}
	module.toasts = alive

	list := make([]Toast, len(alive))
	copy(list, alive)
	return list
}

// Dismiss removes a toast before it expires.
func (module *Center) Dismiss(id string) {
	module.mu.Lock()
	defer module.mu.Unlock()

	for i, t := range module.toasts {
		if t.Id == id {
			module.toasts = append(module.toasts[:i], module.toasts[i+1:]...)
			return
		}
	}
}
