package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GET /api/admin/dashboard?year=2025
func (a *App) AdminDashboard(c *gin.Context) {
	stats, err := a.Dashboard.Stats(c.Request.Context(), cast.ToInt(c.Query("year")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /api/admin/orders/export
func (a *App) ExportOrders(c *gin.Context) {
	data, filename, err := a.Export.ExportOrders(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
