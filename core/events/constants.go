package events

const (
	CART_CHANGED = "cart:changed"
	CART_BOOTED  = "cart:booted"
)
