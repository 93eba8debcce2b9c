package cart

import (
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/op/go-logging"
	"github.com/shopspring/decimal"
)

var log = logging.MustGetLogger("cart")

// Change is delivered to listeners after every state-changing operation.
type Change struct {
	Result Result
	Items  []LineItem
	Total  float64
}

// Listener observes cart changes. It must not call back into the cart
// that notified it from the same goroutine while holding its own locks.
type Listener func(Change)

// Cart holds the canonical line items and keeps its bucket in sync.
type Cart struct {
	mu        sync.Mutex
	items     []LineItem
	storage   Bucket
	listeners []subscription
	nextID    int
}

type subscription struct {
	id int
	fn Listener
}

// Option tweaks a cart at boot.
type Option func(*Cart)

// WithListener subscribes fn before the first operation runs.
func WithListener(fn Listener) Option {
	return func(c *Cart) {
		c.subscribe(fn)
	}
}

// Boot restores a cart from storage. An empty slot, unreadable slot or
// unparsable content all yield an empty cart; boot never fails.
func Boot(storage Bucket, options ...Option) *Cart {
	module := &Cart{
		items:     []LineItem{},
		storage:   storage,
	}

	data, err := storage.Restore()
	switch {
	case err != nil:
		log.Warningf("%v, starting with an empty cart", &PersistenceError{Op: "restore", Err: err})
	case data != "":
		state, err := Decode(data)
		if err != nil {
			log.Warningf("discarding persisted cart: %v", err)
			break
		}
		module.items = state.Cart
	}

	for _, fn := range options {
		fn(module)
	}
	return module
}

// Add puts one unit of item into the cart.
func (module *Cart) Add(item Item) Result {
	return module.AddQuantity(item, 1)
}

// AddQuantity puts n units of item into the cart. An existing line keeps
// its original title, price and image.
func (module *Cart) AddQuantity(item Item, n int) Result {
	item.Id = strings.TrimSpace(item.Id)
	if err := item.Validate(); err != nil {
		return Result{Status: Rejected, Err: err}
	}
	if n < 1 {
		return Result{Status: Rejected, Err: ErrInvalidQuantity}
	}

	module.mu.Lock()
	var res Result
	if i := module.index(item.Id); i >= 0 {
		if n > math.MaxInt-module.items[i].Quantity {
			module.mu.Unlock()
			return Result{Status: Rejected, Item: module.items[i], Previous: module.items[i].Quantity, Err: ErrQuantityOverflow}
		}
		res.Previous = module.items[i].Quantity
		module.items[i].IncQuantity(n)
		res.Status = Incremented
		res.Item = module.items[i]
	} else {
		line := item.line(n)
		module.items = append(module.items, line)
		res.Status = Added
		res.Item = line
	}
	return module.commit(res)
}

// Remove deletes the line with the given id, if any.
func (module *Cart) Remove(id string) Result {
	module.mu.Lock()
	i := module.index(id)
	if i < 0 {
		module.mu.Unlock()
		return Result{Status: NotFound, Item: LineItem{Id: id}}
	}

	removed := module.items[i]
	module.items = append(module.items[:i:i], module.items[i+1:]...)
	return module.commit(Result{Status: Removed, Item: removed, Previous: removed.Quantity})
}

// SetQuantity sets the quantity of an existing line to max(1, quantity).
func (module *Cart) SetQuantity(id string, quantity int) Result {
	module.mu.Lock()
	i := module.index(id)
	if i < 0 {
		module.mu.Unlock()
		return Result{Status: NotFound, Item: LineItem{Id: id}}
	}

	res := Result{Status: Updated, Previous: module.items[i].Quantity}
	if quantity < 1 {
		res.Status = Clamped
	}
	module.items[i].Quantity = clamp(quantity)
	res.Item = module.items[i]
	return module.commit(res)
}

// Clear empties the cart.
func (module *Cart) Clear() Result {
	module.mu.Lock()
	module.items = []LineItem{}
	return module.commit(Result{Status: Cleared})
}

// Items returns a copy of the current lines in insertion order.
func (module *Cart) Items() []LineItem {
	module.mu.Lock()
	defer module.mu.Unlock()
	return module.snapshot()
}

// Total of the current lines.
func (module *Cart) Total() float64 {
	return Total(module.Items())
}

// Count is the number of distinct lines (the navbar badge).
func (module *Cart) Count() int {
	module.mu.Lock()
	defer module.mu.Unlock()
	return len(module.items)
}

// IsEmpty checks if no items in cart object.
func (module *Cart) IsEmpty() bool {
	return module.Count() == 0
}

// Subscribe registers fn for change notifications and returns a func
// that removes it.
func (module *Cart) Subscribe(fn Listener) (cancel func()) {
	module.mu.Lock()
	id := module.subscribe(fn)
	module.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			module.mu.Lock()
			module.unsubscribe(id)
			module.mu.Unlock()
		})
	}
}

func (module *Cart) subscribe(fn Listener) int {
	id := module.nextID
	module.nextID++
	module.listeners = append(module.listeners, subscription{id: id, fn: fn})
	return id
}

func (module *Cart) unsubscribe(id int) {
	i := sort.Search(len(module.listeners), func(i int) bool {
		return module.listeners[i].id >= id
	})
	if i < len(module.listeners) && module.listeners[i].id == id {
		module.listeners = append(module.listeners[:i:i], module.listeners[i+1:]...)
	}
}

// commit persists the state, releases the lock and notifies listeners.
// Must be called with mu held.
func (module *Cart) commit(res Result) Result {
	items := module.snapshot()
	if err := module.save(items); err != nil {
		log.Errorf("%v, keeping in-memory cart", err)
		res.Err = err
	}

	listeners := make([]Listener, len(module.listeners))
	for i, sub := range module.listeners {
		listeners[i] = sub.fn
	}
	module.mu.Unlock()

	change := Change{Result: res, Items: items, Total: Total(items)}
	for _, fn := range listeners {
		fn(change)
	}
	return res
}

func (module *Cart) save(items []LineItem) error {
	data, err := Encode(State{Cart: items})
	if err != nil {
		return &PersistenceError{Op: "encode", Err: err}
	}
	if err := module.storage.Save(data); err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}

func (module *Cart) index(id string) int {
	for i := range module.items {
		if module.items[i].Id == id {
			return i
		}
	}
	return -1
}

func (module *Cart) snapshot() []LineItem {
	items := make([]LineItem, len(module.items))
	copy(items, module.items)
	return items
}

// Total sums price × quantity over items. Every view computes the cart
// total through this function.
func Total(items []LineItem) float64 {
	sum := decimal.Zero
	for _, line := range items {
		price := decimal.NewFromFloat(line.Price)
		sum = sum.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	total, _ := sum.Float64()
	return total
}
