package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"travelapp/internal/domain/models"
	"travelapp/internal/http/middleware"
	"travelapp/internal/services"
	"travelapp/internal/utils"
)

// POST /api/checkout/quote
func (a *App) Quote(c *gin.Context) {
	var d models.OrderDraft
	if !BindJSONOrError(c, &d) {
		return
	}
	pricing, err := a.Pricing.Quote(d)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, pricing)
}

// POST /api/package-order-tokenizer
// POST /api/checkout/token
func (a *App) PackageOrderTokenizer(c *gin.Context) {
	var d models.OrderDraft
	if !BindJSONOrError(c, &d) {
		return
	}
	d.UserID = middleware.GetRequestContext(c).UserKey()

	checkout := a.Checkout
	checkout.RequestID = middleware.GetRequestID(c)
	tok, err := checkout.IssueToken(c.Request.Context(), d)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	a.present(c, tok)
	c.JSON(http.StatusOK, tok)
}

// POST /api/regular-order-tokenizer
func (a *App) RegularOrderTokenizer(c *gin.Context) {
	var d models.RegularOrderDraft
	if !BindJSONOrError(c, &d) {
		return
	}
	d.UserID = middleware.GetRequestContext(c).UserKey()

	checkout := a.Checkout
	checkout.RequestID = middleware.GetRequestID(c)
	tok, err := checkout.IssueRegularToken(c.Request.Context(), d)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	a.present(c, tok)
	c.JSON(http.StatusOK, tok)
}

func (a *App) present(c *gin.Context, tok models.CheckoutToken) {
	if a.Payments == nil {
		return
	}
	if _, err := a.Payments.Present(tok, services.OutcomeHandlers{}); err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "CHECKOUT", "present", "order_id="+tok.OrderID+" "+err.Error())
	}
}

// GET /api/checkout/snap-config
func (a *App) SnapConfig(c *gin.Context) {
	c.JSON(http.StatusOK, a.Payments.SnapScript())
}

type outcomeRequest struct {
	OrderID string                `json:"order_id"`
	Outcome models.PaymentOutcome `json:"outcome"`
}

// POST /api/checkout/outcome
//
// Only translates the widget result into a client event. Orders are recorded
// from the payment notification, never from here.
func (a *App) CheckoutOutcome(c *gin.Context) {
	var req outcomeRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	req.OrderID = strings.TrimSpace(req.OrderID)
	if req.OrderID == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "order_id wajib diisi", nil)
		return
	}

	ev, first, err := a.Payments.Report(req.OrderID, req.Outcome, middleware.GetRequestID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !first {
		c.JSON(http.StatusConflict, gin.H{
			"message": "outcome sudah dilaporkan",
			"event":   ev,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": ev})
}

// POST /api/orders/summary
func (a *App) OrderSummary(c *gin.Context) {
	var d models.OrderDraft
	if !BindJSONOrError(c, &d) {
		return
	}
	sum, err := a.Summary.Summarize(c.Request.Context(), d)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}
