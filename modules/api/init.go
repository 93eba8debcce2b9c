package api

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/facebookgo/inject"
	"github.com/gin-gonic/contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/olebedev/config"
	"github.com/op/go-logging"
	settings "github.com/tryanzu/storefront/core/config"
	"github.com/tryanzu/storefront/modules/api/controller/cart"
	"github.com/tryanzu/storefront/modules/api/controller/products"
	"github.com/tryanzu/storefront/modules/exceptions"
)

var log = logging.MustGetLogger("api")

type Module struct {
	Dependencies ModuleDI
	Products     products.API
	Cart         cart.API
}

type ModuleDI struct {
	Config *config.Config                `inject:""`
	Errors *exceptions.ExceptionsModule `inject:""`
}

// Router builds the storefront HTTP routes.
func (module *Module) Router() *gin.Engine {
	environment := module.Dependencies.Config.UString("environment", "development")
	if environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Session storage
	secret := module.Dependencies.Config.UString("server.secret")
	if insecureSecret(secret) {
		log.Warning("server.secret is empty or left at its default, sessions are not safe")
	}
	store := sessions.NewCookieStore([]byte(secret))

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(module.Dependencies.Errors.Middleware())
	router.Use(sessions.Sessions("session", store))
	router.Use(CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "okay"})
	})

	v1 := router.Group("/v1")

	// Catalog routes
	v1.GET("/products", module.Products.List)
	v1.GET("/products/:id", module.Products.Get)
	v1.GET("/categories", module.Products.Categories)
	v1.GET("/brands", module.Products.Brands)

	// Cart routes
	carts := v1.Group("/cart")
	carts.Use(cart.VisitorMiddleware())
	carts.GET("", module.Cart.Get)
	carts.DELETE("", module.Cart.Clear)
	carts.POST("/items", module.Cart.Add)
	carts.PUT("/items/:id", module.Cart.Update)
	carts.DELETE("/items/:id", module.Cart.Delete)

	return router
}

func insecureSecret(secret string) bool {
	return secret == "" || secret == settings.Defaults().UString("server.secret")
}

// Run serves until an interrupt, then shuts down gracefully.
func (module *Module) Run(bindTo string) error {
	srv := &http.Server{
		Addr:    bindTo,
		Handler: module.Router(),
	}

	// Start the http server as an isolated goroutine.
	failed := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", bindTo)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			failed <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with
	// a timeout of 5 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	defer signal.Stop(quit)
	select {
	case err := <-failed:
		return err
	case <-quit:
	}
	log.Info("shutdown server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// Populate provides the module objects to the graph and fills the whole
// graph in.
func (module *Module) Populate(g *inject.Graph) error {
	err := g.Provide(
		&inject.Object{Value: &module.Dependencies},
		&inject.Object{Value: &module.Products},
		&inject.Object{Value: &module.Cart},
	)
	if err != nil {
		return err
	}

	// Populate the DI with the instances
	return g.Populate()
}

// CORS lets browser clients on other origins use the API with cookies.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS,PUT,DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Requested-With, Content-Length, Accept-Encoding")
		c.Writer.Header().Set("Access-Control-Max-Age", "3600")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
