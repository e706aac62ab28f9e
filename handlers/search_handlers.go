package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wattwise/api/store"
)

type SearchHandlers struct {
	ProductStore *store.ProductStore
}

func NewSearchHandlers(products *store.ProductStore) *SearchHandlers {
	return &SearchHandlers{ProductStore: products}
}

func (h *SearchHandlers) SearchProducts(c *gin.Context) {
	term := c.Query("q")
	category := c.Query("category")
	sort := c.Query("sort")
	page := intQuery(c, "page", 1)
	pageSize := intQuery(c, "pageSize", 20)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	result, err := h.ProductStore.SearchProducts(ctx, term, category, sort, page, pageSize)
	if err != nil {
		log.Printf("Error searching products (term=%q): %v", term, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
