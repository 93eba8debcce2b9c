package cart

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	"github.com/tryanzu/storefront/modules/api/controller"
	"github.com/tryanzu/storefront/modules/cart"
	"github.com/tryanzu/storefront/modules/catalog"
	"github.com/tryanzu/storefront/modules/notify"
)

var log = logging.MustGetLogger("api")

func (this API) Get(c *gin.Context) {
	c.JSON(http.StatusOK, view(this.Carts.View(c)))
}

// Add looks the product up in the catalog and puts it into the cart.
func (this API) Add(c *gin.Context) {
	var form AddForm
	if err := c.ShouldBindJSON(&form); err != nil {
		controller.JSONBindErr(c, http.StatusBadRequest, "Invalid request, check params.", err)
		return
	}

	product, err := this.Catalog.FindId(form.Id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		controller.JSONErr(c, http.StatusNotFound, "Invalid request, product not found.")
		return
	}

	quantity := form.Quantity
	if quantity == 0 {
		quantity = 1
	}
	container := this.Carts.For(c)
	respond(c, container, container.AddQuantity(product.Item(), quantity))
}

func (this API) Update(c *gin.Context) {
	var form QuantityForm
	if err := c.ShouldBindJSON(&form); err != nil {
		controller.JSONBindErr(c, http.StatusBadRequest, "Invalid request, check params.", err)
		return
	}

	container := this.Carts.For(c)
	res := container.SetQuantity(c.Param("id"), *form.Quantity)
	if res.Status == cart.NotFound {
		controller.JSONErr(c, http.StatusNotFound, "Invalid request, item is not in the cart.")
		return
	}
	respond(c, container, res)
}

// Delete removes a line. Removing a missing line is not an error.
func (this API) Delete(c *gin.Context) {
	container := this.Carts.For(c)
	respond(c, container, container.Remove(c.Param("id")))
}

func (this API) Clear(c *gin.Context) {
	container := this.Carts.For(c)
	respond(c, container, container.Clear())
}

func respond(c *gin.Context, container *cart.Cart, res cart.Result) {
	if res.Status == cart.Rejected {
		controller.JSONErr(c, http.StatusBadRequest, res.Err.Error())
		return
	}

	body := gin.H{
		"status":    "okay",
		"result":    res,
		"cart":      view(container),
		"persisted": res.Err == nil,
	}
	if toast, ok := notify.FromResult(res); ok {
		body["toast"] = toast
	}
	c.JSON(http.StatusOK, body)
}

func view(container *cart.Cart) gin.H {
	items := container.Items()
	return gin.H{
		"items": items,
		"total": cart.Total(items),
		"count": len(items),
	}
}
