package products

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tryanzu/storefront/modules/api/controller"
	"github.com/tryanzu/storefront/modules/catalog"
)

type API struct {
	Catalog *catalog.Catalog `inject:""`
}

// List products matching the query filters.
func (this API) List(c *gin.Context) {
	f, err := catalog.ParseFilter(c.Request.URL.Query())
	if err != nil {
		controller.JSONErr(c, http.StatusBadRequest, err.Error())
		return
	}

	page := this.Catalog.Find(f)
	c.JSON(http.StatusOK, gin.H{
		"status": "okay",
		"data":   page.List,
		"total":  page.Total,
	})
}

// Get a product by id or by slug.
func (this API) Get(c *gin.Context) {
	p, err := this.Catalog.FindId(c.Param("id"))
	if err != nil {
		p, err = this.Catalog.FindSlug(c.Param("id"))
	}
	if errors.Is(err, catalog.ErrProductNotFound) {
		controller.JSONErr(c, http.StatusNotFound, "Invalid request, product not found.")
		return
	}

	c.JSON(http.StatusOK, p)
}

func (this API) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "okay",
		"data":   append([]string{catalog.AllCategories}, this.Catalog.Categories()...),
	})
}

func (this API) Brands(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "okay",
		"data":   this.Catalog.Brands(),
	})
}
