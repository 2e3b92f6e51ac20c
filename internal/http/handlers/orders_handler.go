package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"travelapp/internal/domain"
	"travelapp/internal/domain/models"
	"travelapp/internal/http/middleware"
)

func parseKind(s string) (models.OrderKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "package", "paket", string(models.KindPackageOrder):
		return models.KindPackageOrder, nil
	case "regular", "reguler", string(models.KindRegularOrder):
		return models.KindRegularOrder, nil
	default:
		return "", domain.ValidationError{Field: "kind", Msg: "jenis order tidak dikenal: " + s}
	}
}

func parseOrderRef(c *gin.Context) (models.OrderKind, int64, error) {
	kind, err := parseKind(c.Param("kind"))
	if err != nil {
		return "", 0, err
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return "", 0, domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}
	return kind, id, nil
}

// GET /api/orders
func (a *App) ListOrders(c *gin.Context) {
	orders, err := a.Orders.ListMine(c.Request.Context(), middleware.GetRequestContext(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if orders == nil {
		orders = []models.PersistedOrder{}
	}
	c.JSON(http.StatusOK, gin.H{"data": orders})
}

// GET /api/orders/:kind/:id
func (a *App) GetOrder(c *gin.Context) {
	kind, id, err := parseOrderRef(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	o, err := a.Orders.Get(c.Request.Context(), middleware.GetRequestContext(c), kind, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// GET /api/orders/:kind/:id/invoice
func (a *App) GetOrderInvoicePDF(c *gin.Context) {
	kind, id, err := parseOrderRef(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	pdf, filename, err := a.Docs.GenerateInvoice(c.Request.Context(), middleware.GetRequestContext(c), kind, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
