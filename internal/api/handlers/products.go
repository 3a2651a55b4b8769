package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/service"
	pkgerrors "github.com/jafarshop/storefront/pkg/errors"
)

// Catalog reads are cacheable for an hour.
const cacheControl = "public, max-age=3600"

// HandleGetProduct handles GET /api/shopify/products/:id
func HandleGetProduct(svc service.ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondUpstreamError(c, logger, err)
			return
		}
		if product == nil {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "product not found",
			})
			return
		}
		c.Header("Cache-Control", cacheControl)
		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}

// HandleGetProductByHandle handles GET /api/shopify/products/handle/:handle
func HandleGetProductByHandle(svc service.ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.GetByHandle(c.Request.Context(), c.Param("handle"))
		if err != nil {
			respondUpstreamError(c, logger, err)
			return
		}
		if product == nil {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "product not found",
			})
			return
		}
		c.Header("Cache-Control", cacheControl)
		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}

// HandleListProducts handles GET /api/shopify/products
func HandleListProducts(svc service.ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context(), parseLimit(c))
		if err != nil {
			respondUpstreamError(c, logger, err)
			return
		}
		c.Header("Cache-Control", cacheControl)
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func parseLimit(c *gin.Context) int {
	limit := 0
	if l := c.Query("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil {
			limit = n
		}
	}
	return limit
}

// respondUpstreamError is the sole translator from an internal error to a
// client-facing status and message. The raw diagnostic is logged, never
// returned to the client.
func respondUpstreamError(c *gin.Context, logger *zap.Logger, err error) {
	logger.Error("Product request failed",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
	)

	status := http.StatusInternalServerError
	var ue *pkgerrors.UpstreamError
	if errors.As(err, &ue) {
		status = ue.HTTPStatus()
	}

	var message string
	switch status {
	case http.StatusForbidden:
		message = "access to the product catalog was denied"
	case http.StatusNotFound:
		message = "product not found"
	case http.StatusTooManyRequests:
		message = "too many requests, please try again shortly"
	default:
		message = "something went wrong fetching products"
	}

	c.JSON(status, gin.H{
		"status":  "error",
		"message": message,
	})
}
