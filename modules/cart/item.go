package cart

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gopkg.in/go-playground/validator.v8"
)

// ErrInvalidItem is returned when an item fails boundary validation.
var ErrInvalidItem = errors.New("cart item is not valid")

// ErrInvalidQuantity is returned when adding less than one unit.
var ErrInvalidQuantity = errors.New("quantity to add must be at least 1")

// ErrQuantityOverflow is returned when adding would push a line past the
// largest quantity a cart can hold.
var ErrQuantityOverflow = errors.New("quantity is too large")

var validate = validator.New(&validator.Config{TagName: "validate"})

// Item is what callers hand to the store when adding a product.
type Item struct {
	Id    string  `json:"id" validate:"required"`
	Title string  `json:"title"`
	Price float64 `json:"price" validate:"gte=0"`
	Image string  `json:"image"`
}

// LineItem is one product inside the cart along with its quantity.
type LineItem struct {
	Id       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

// Validate checks the item before it reaches the store.
func (item Item) Validate() error {
	item.Id = strings.TrimSpace(item.Id)
	if math.IsNaN(item.Price) || math.IsInf(item.Price, 0) {
		return fmt.Errorf("%w: price must be a finite number", ErrInvalidItem)
	}
	if err := validate.Struct(item); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidItem, err)
	}
	return nil
}

func (item Item) line(quantity int) LineItem {
	return LineItem{
		Id:       item.Id,
		Title:    item.Title,
		Price:    item.Price,
		Image:    item.Image,
		Quantity: quantity,
	}
}

// Subtotal of the line (price × quantity).
func (line LineItem) Subtotal() float64 {
	return Total([]LineItem{line})
}

func (line *LineItem) IncQuantity(by int) {
	line.Quantity = clamp(line.Quantity + by)
}

func clamp(q int) int {
	if q < 1 {
		return 1
	}
	return q
}
