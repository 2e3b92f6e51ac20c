package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelapp/internal/gateway"
	"travelapp/internal/http/middleware"
	"travelapp/internal/utils"
)

const maxNotificationBody = 1 << 20

// POST /api/payment-notification
// POST /api/midtrans-notification
//
// Status codes: 401 bad signature, 400 unreadable or unknown status, 422
// unknown order kind, 500 when a paid order could not be stored (the gateway
// retries), 200 for everything else including repeats.
func (a *App) PaymentNotification(c *gin.Context) {
	reqID := middleware.GetRequestID(c)

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxNotificationBody))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "body tidak bisa dibaca", err)
		return
	}

	n, err := gateway.ParseNotification(body)
	if err != nil {
		utils.LogEvent(reqID, "WEBHOOK", "parse", err.Error())
		RespondDomainError(c, err)
		return
	}

	if !a.SkipSignature && !gateway.VerifySignature(n, a.ServerKey) {
		utils.LogEvent(reqID, "WEBHOOK", "signature", "order_id="+n.OrderID+" signature tidak valid")
		respondError(c, http.StatusUnauthorized, "invalid_signature", "signature tidak valid", nil)
		return
	}

	svc := a.Reconcile
	svc.RequestID = reqID
	res, err := svc.Reconcile(c.Request.Context(), n)
	if err != nil {
		utils.LogEventf(reqID, "WEBHOOK", "reconcile", "order_id=%s state=%s err=%v", n.OrderID, res.State, err)
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
