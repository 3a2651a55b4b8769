package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/api/handlers"
	"github.com/jafarshop/storefront/internal/api/middleware"
	"github.com/jafarshop/storefront/internal/cart"
	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/search"
	"github.com/jafarshop/storefront/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, svc service.ProductService, carts *cart.Store, recents *search.Recents, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))
	router.Use(middleware.CORS())

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Storefront API",
			"endpoints": []string{
				"GET /health",
				"GET /api/shopify/products",
				"GET /api/shopify/products/:id",
				"GET /api/shopify/products/handle/:handle",
				"GET /api/shopify/search",
				"GET /api/search/recent",
				"POST /api/cart",
				"GET /api/cart/:id",
				"POST /api/cart/:id/items",
				"PATCH /api/cart/:id/items/:productID",
				"DELETE /api/cart/:id/items/:productID",
				"POST /api/cart/:id/checkout",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiRoutes := router.Group("/api")
	{
		shopifyRoutes := apiRoutes.Group("/shopify")
		{
			shopifyRoutes.GET("/products", handlers.HandleListProducts(svc, logger))
			shopifyRoutes.GET("/products/:id", handlers.HandleGetProduct(svc, logger))
			shopifyRoutes.GET("/products/handle/:handle", handlers.HandleGetProductByHandle(svc, logger))
			shopifyRoutes.GET("/search", handlers.HandleSearch(svc, recents, logger))
		}

		apiRoutes.GET("/search/recent", handlers.HandleRecentSearches(recents))

		cartRoutes := apiRoutes.Group("/cart")
		{
			cartRoutes.POST("", handlers.HandleCreateCart(carts, logger))
			cartRoutes.GET("/:id", handlers.HandleGetCart(carts, logger))
			cartRoutes.POST("/:id/items", handlers.HandleAddCartItem(carts, logger))
			cartRoutes.PATCH("/:id/items/:productID", handlers.HandleSetCartItemQuantity(carts, logger))
			cartRoutes.DELETE("/:id/items/:productID", handlers.HandleRemoveCartItem(carts, logger))
			cartRoutes.POST("/:id/checkout", handlers.HandleCheckout(carts, logger))
		}
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
