package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelapp/internal/domain/models"
)

// ListCatalog serves one catalog table as reference + display name.
//
//	GET /api/catalog/lodgings
func (a *App) ListCatalog(table string) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := a.Catalog.List(c.Request.Context(), table)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		if items == nil {
			items = []models.CatalogItem{}
		}
		c.JSON(http.StatusOK, gin.H{"data": items})
	}
}

// GET /api/catalog/pickup-locations
func PickupLocations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": models.PickupOptions})
}
