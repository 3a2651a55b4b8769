package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/search"
	"github.com/jafarshop/storefront/internal/service"
)

// HandleSearch handles GET /api/shopify/search?q=&limit=. Terms that return
// at least one product are recorded in the recent-searches cache.
func HandleSearch(svc service.ProductService, recents *search.Recents, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		term := c.Query("q")
		products, err := svc.Search(c.Request.Context(), term, parseLimit(c))
		if err != nil {
			respondUpstreamError(c, logger, err)
			return
		}
		if len(products) > 0 {
			recents.Add(term)
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// HandleRecentSearches handles GET /api/search/recent
func HandleRecentSearches(recents *search.Recents) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"terms": recents.List()})
	}
}
