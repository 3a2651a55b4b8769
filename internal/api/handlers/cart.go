package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/cart"
	"github.com/jafarshop/storefront/internal/domain"
	pkgerrors "github.com/jafarshop/storefront/pkg/errors"
)

// AddItemRequest carries the product being added, mirroring the add-to-cart
// event payload the storefront pages dispatch.
type AddItemRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Title     string  `json:"title" binding:"required"`
	Price     float64 `json:"price" binding:"min=0"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity" binding:"min=0"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// HandleCreateCart handles POST /api/cart
func HandleCreateCart(store *cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		created := store.Create()
		logger.Debug("Cart created", zap.String("cart_id", created.ID))
		c.JSON(http.StatusCreated, gin.H{"cart": created})
	}
}

// HandleGetCart handles GET /api/cart/:id
func HandleGetCart(store *cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, err := store.Get(c.Param("id"))
		if err != nil {
			respondCartError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": current})
	}
}

// HandleAddCartItem handles POST /api/cart/:id/items
func HandleAddCartItem(store *cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"status":  "error",
				"message": "validation failed",
				"details": err.Error(),
			})
			return
		}

		updated, err := store.AddItem(c.Param("id"), domain.CartItem{
			ProductID: req.ProductID,
			Title:     req.Title,
			Price:     req.Price,
			Image:     req.Image,
			Quantity:  req.Quantity,
		})
		if err != nil {
			respondCartError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": updated})
	}
}

// HandleSetCartItemQuantity handles PATCH /api/cart/:id/items/:productID.
// Quantity zero removes the item.
func HandleSetCartItemQuantity(store *cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SetQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"status":  "error",
				"message": "validation failed",
				"details": err.Error(),
			})
			return
		}

		updated, err := store.SetQuantity(c.Param("id"), c.Param("productID"), req.Quantity)
		if err != nil {
			respondCartError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": updated})
	}
}

// HandleRemoveCartItem handles DELETE /api/cart/:id/items/:productID
func HandleRemoveCartItem(store *cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		updated, err := store.RemoveItem(c.Param("id"), c.Param("productID"))
		if err != nil {
			respondCartError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": updated})
	}
}

// HandleCheckout handles POST /api/cart/:id/checkout. Checkout is a demo
// stub; no order is placed anywhere.
func HandleCheckout(store *cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		message, err := store.Checkout(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, cart.ErrCartEmpty) {
				c.JSON(http.StatusBadRequest, gin.H{
					"status":  "error",
					"message": "cart is empty",
				})
				return
			}
			respondCartError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": message})
	}
}

func respondCartError(c *gin.Context, logger *zap.Logger, err error) {
	var notFound *pkgerrors.ErrNotFound
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": notFound.Error(),
		})
		return
	}
	logger.Error("Cart request failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusInternalServerError, gin.H{
		"status":  "error",
		"message": "internal error",
	})
}
