package cart

import (
	"github.com/gin-gonic/contrib/sessions"
	"github.com/gin-gonic/gin"
	uuid "github.com/satori/go.uuid"
	"github.com/tryanzu/storefront/modules/cart"
	"github.com/tryanzu/storefront/modules/catalog"
)

const visitorKey = "visitor"

type API struct {
	Catalog *catalog.Catalog `inject:""`
	Carts   Carts            `inject:""`
}

// Carts resolves the cart of the visitor behind a request. View is used
// by reads and need not keep the cart around.
type Carts interface {
	For(c *gin.Context) *cart.Cart
	View(c *gin.Context) *cart.Cart
}

// Registry serves carts kept in a shared store, one slot per visitor.
type Registry struct {
	Carts *cart.Registry
	Slot  func(visitor string) string
}

func (r *Registry) For(c *gin.Context) *cart.Cart {
	return r.Carts.Get(r.Slot(Visitor(c)))
}

func (r *Registry) View(c *gin.Context) *cart.Cart {
	return r.Carts.View(r.Slot(Visitor(c)))
}

// Session serves carts kept inside the visitor's cookie session. They are
// booted again on every request.
type Session struct {
	Key       string
	Listeners []cart.KeyedListener
}

func (s *Session) For(c *gin.Context) *cart.Cart {
	visitor := Visitor(c)
	options := make([]cart.Option, 0, len(s.Listeners))
	for _, fn := range s.Listeners {
		fn := fn
		options = append(options, cart.WithListener(func(change cart.Change) {
			fn(visitor, change)
		}))
	}
	return cart.Boot(cart.SessionBucket{Session: sessions.Default(c), Key: s.Key}, options...)
}

func (s *Session) View(c *gin.Context) *cart.Cart {
	return cart.Boot(cart.SessionBucket{Session: sessions.Default(c), Key: s.Key})
}

// VisitorMiddleware makes sure every session carries a visitor id.
func VisitorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		visitor, _ := session.Get(visitorKey).(string)
		if visitor == "" {
			visitor = uuid.NewV4().String()
			session.Set(visitorKey, visitor)
			if err := session.Save(); err != nil {
				log.Errorf("could not save visitor session: %v", err)
			}
		}
		c.Set(visitorKey, visitor)
		c.Next()
	}
}

// Visitor id of the request.
func Visitor(c *gin.Context) string {
	return c.GetString(visitorKey)
}

type AddForm struct {
	Id       string `json:"id" binding:"required"`
	Quantity int    `json:"quantity" binding:"omitempty,min=1"`
}

type QuantityForm struct {
	Quantity *int `json:"quantity" binding:"required"`
}
