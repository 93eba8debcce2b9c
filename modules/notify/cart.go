package notify

import (
	"fmt"

	"github.com/tryanzu/storefront/modules/cart"
)

// FromResult builds the toast shown after a cart operation. Operations
// that changed nothing visible yield ok == false.
func FromResult(res cart.Result) (t Toast, ok bool) {
	line := res.Item
	switch res.Status {
	case cart.Added:
		if line.Quantity > 1 {
			return Toast{Kind: Success, Message: fmt.Sprintf("Added %d × %s to cart", line.Quantity, line.Title)}, true
		}
		return Toast{Kind: Success, Message: fmt.Sprintf(`"%s" added to cart!`, line.Title)}, true
	case cart.Incremented:
		if n := line.Quantity - res.Previous; n > 1 {
			return Toast{Kind: Success, Message: fmt.Sprintf("Added %d × %s to cart", n, line.Title)}, true
		}
		return Toast{Kind: Success, Message: fmt.Sprintf(`"%s" added to cart!`, line.Title)}, true
	case cart.Updated:
		switch {
		case line.Quantity > res.Previous:
			return Toast{Kind: Info, Message: "Quantity increased"}, true
		case line.Quantity < res.Previous:
			return Toast{Kind: Info, Message: "Quantity decreased"}, true
		}
	case cart.Clamped:
		return Toast{Kind: Error, Message: "Minimum quantity is 1"}, true
	case cart.Removed:
		return Toast{Kind: Error, Message: fmt.Sprintf("%s removed", line.Title)}, true
	case cart.Cleared:
		return Toast{Kind: Success, Message: "Cart cleared"}, true
	case cart.Rejected:
		if res.Err != nil {
			return Toast{Kind: Error, Message: res.Err.Error()}, true
		}
	}
	return t, false
}

// Result pushes the toast for res, if any.
func (module *Center) Result(res cart.Result) (Toast, bool) {
	t, ok := FromResult(res)
	if !ok {
		return t, false
	}
	return module.Push(t.Kind, t.Message), true
}
