package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"travelapp/internal/alert"
	"travelapp/internal/domain"
	"travelapp/internal/domain/models"
	"travelapp/internal/utils"
)

// OrderStore persists a paid order with its link rows atomically. A repeated
// gateway order id must fail with domain.ConflictError.
type OrderStore interface {
	CreatePackageOrder(ctx context.Context, o models.PersistedOrder) (int64, error)
	CreateRegularOrder(ctx context.Context, o models.PersistedOrder) (int64, error)
	FindIDByGatewayOrderID(ctx context.Context, kind models.OrderKind, gatewayOrderID string) (int64, error)
}

type NotificationLog interface {
	Append(ctx context.Context, n models.PaymentNotification, state models.ReconcileState) error
}

// ReconcileService turns gateway notifications into stored orders. It keeps
// no in-process locks: the unique gateway order id in the store is what makes
// concurrent and repeated deliveries safe.
type ReconcileService struct {
	Orders        OrderStore
	Notifications NotificationLog
	Alerts        alert.Alerter
	Observe       func(state models.ReconcileState)
	RequestID     string
}

// sideEffectTimeout bounds the audit write and alert delivery, which run
// detached from the request so a dropped gateway connection cannot cancel them.
const sideEffectTimeout = 5 * time.Second

func detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
}

func (s ReconcileService) Reconcile(ctx context.Context, n models.PaymentNotification) (models.ReconcileResult, error) {
	res, err := s.reconcile(ctx, n)
	if s.Notifications != nil {
		auditCtx, cancel := detached(ctx)
		logErr := s.Notifications.Append(auditCtx, n, res.State)
		cancel()
		if logErr != nil {
			utils.LogEvent(s.RequestID, "RECONCILE", "audit", "order_id="+n.OrderID+" gagal mencatat notifikasi: "+logErr.Error())
		}
	}
	if s.Observe != nil {
		s.Observe(res.State)
	}
	return res, err
}

func (s ReconcileService) reconcile(ctx context.Context, n models.PaymentNotification) (models.ReconcileResult, error) {
	res := models.ReconcileResult{OrderID: n.OrderID, State: models.StateReceived}

	status, ok := models.ParseTransactionStatus(string(n.TransactionStatus))
	if !ok {
		return res, domain.ValidationError{Field: "transaction_status", Msg: "status transaksi tidak dikenal: " + string(n.TransactionStatus)}
	}
	fraud := strings.ToLower(strings.TrimSpace(n.FraudStatus))

	switch {
	case status.IsRejected(), status == models.StatusCapture && fraud == "deny":
		res.State = models.StateRejected
		res.Message = "pembayaran " + string(status)
		utils.LogEventf(s.RequestID, "RECONCILE", "reject", "order_id=%s status=%s fraud=%s", n.OrderID, status, fraud)
		return res, nil
	case status == models.StatusPending, status == models.StatusCapture && fraud == "challenge":
		res.State = models.StateAwaitingSettlement
		res.Message = "menunggu pembayaran"
		utils.LogEventf(s.RequestID, "RECONCILE", "await", "order_id=%s status=%s", n.OrderID, status)
		return res, nil
	}

	// paid from here on: any failure to record must reach an operator
	if n.MetadataErr != nil {
		return s.persistFailed(ctx, res, n.MetadataErr)
	}
	order, err := orderFromNotification(n)
	if err != nil {
		if domain.IsUnrecognizedOrderKind(err) {
			s.raise(ctx, alert.KindUnrecognizedKind, n.OrderID, err.Error())
			return res, err
		}
		return s.persistFailed(ctx, res, err)
	}
	if err := checkGrossAmount(n.GrossAmount, order.TotalCost); err != nil {
		s.raise(ctx, alert.KindAmountMismatch, n.OrderID, err.Error())
		return res, err
	}

	res.State = models.StateSettling
	if s.Orders == nil {
		return s.persistFailed(ctx, res, domain.InternalError{Msg: "order store belum dikonfigurasi"})
	}

	var id int64
	switch order.Kind {
	case models.KindPackageOrder:
		id, err = s.Orders.CreatePackageOrder(ctx, order)
	default:
		id, err = s.Orders.CreateRegularOrder(ctx, order)
	}

	if domain.IsConflict(err) {
		res.State = models.StateSettled
		res.AlreadySettled = true
		res.Message = "order sudah tercatat"
		if existing, findErr := s.Orders.FindIDByGatewayOrderID(ctx, order.Kind, order.GatewayOrderID); findErr == nil {
			res.PersistedID = existing
		}
		utils.LogEvent(s.RequestID, "RECONCILE", "duplicate", "order_id="+n.OrderID)
		return res, nil
	}
	if err != nil {
		return s.persistFailed(ctx, res, err)
	}

	res.State = models.StateSettled
	res.PersistedID = id
	res.Message = "order tercatat"
	utils.LogEventf(s.RequestID, "RECONCILE", "settle", "order_id=%s kind=%s id=%d experiences=%d destinations=%d",
		n.OrderID, order.Kind, id, len(order.ExperienceIDs), len(order.DestinationIDs))
	return res, nil
}

func (s ReconcileService) persistFailed(ctx context.Context, res models.ReconcileResult, err error) (models.ReconcileResult, error) {
	res.State = models.StatePersistFailed
	res.Message = "gagal menyimpan order"
	pf := domain.PersistFailedError{OrderID: res.OrderID, Err: err}
	s.raise(ctx, alert.KindPersistFailed, res.OrderID, pf.Error())
	return res, pf
}

func (s ReconcileService) raise(ctx context.Context, kind, orderID, msg string) {
	var a alert.Alerter = alert.Log{}
	if s.Alerts != nil {
		a = s.Alerts
	}
	alertCtx, cancel := detached(ctx)
	defer cancel()
	if err := a.Raise(alertCtx, alert.Alert{Kind: kind, OrderID: orderID, RequestID: s.RequestID, Message: msg}); err != nil {
		utils.LogEvent(s.RequestID, "RECONCILE", "alert", "order_id="+orderID+" alert gagal: "+err.Error())
	}
}

// packageTypeWidth matches the package_type column.
const packageTypeWidth = 16

// orderFromNotification rebuilds the order from the metadata snapshot.
func orderFromNotification(n models.PaymentNotification) (models.PersistedOrder, error) {
	md := n.Metadata
	o := models.PersistedOrder{
		GatewayOrderID: n.OrderID,
		Kind:           md.TokenizerType,
		UserID:         md.UserID,
		PickupLocation: md.PickupLocation,
		DurationDays:   md.DurationDays,
		MemberNames:    models.CleanNames(md.MemberNames),
		Phone:          md.Phone,
		TravelDate:     md.TravelDate,
		TotalCost:      md.TotalCost,
		LodgingID:      md.LodgingID,
		ExperienceIDs:  models.UniqueIDs(md.ExperienceIDs),
	}
	if len(o.MemberNames) == 0 {
		if md.TokenizerType != models.KindPackageOrder && md.TokenizerType != models.KindRegularOrder {
			return o, domain.UnrecognizedOrderKindError{Kind: string(md.TokenizerType)}
		}
		return o, domain.ValidationError{Field: "metadata.nama", Msg: "metadata tanpa anggota"}
	}

	switch md.TokenizerType {
	case models.KindPackageOrder:
		// an unknown or missing package is stored as sent; the payment already happened
		pkg := md.PackageType
		if pkg == "" {
			pkg = inferPackage(md.TotalCost, len(o.MemberNames))
		}
		if len(pkg) > packageTypeWidth {
			pkg = pkg[:packageTypeWidth]
		}
		o.PackageType = pkg
		o.DestinationIDs = models.UniqueIDs(md.DestinationIDs)
		if o.DurationDays <= 0 {
			o.DurationDays = pkg.DurationDays()
		}
		if o.DurationDays <= 0 {
			o.DurationDays = 1
		}
	case models.KindRegularOrder:
		if strings.TrimSpace(md.DestinationID) == "" {
			return o, domain.ValidationError{Field: "metadata.destinationId", Msg: "destinasi kosong"}
		}
		o.DestinationID = md.DestinationID
		o.Qty = md.Qty
		if o.Qty <= 0 {
			o.Qty = len(o.MemberNames)
		}
		if o.DurationDays <= 0 {
			o.DurationDays = 1
		}
	default:
		return o, domain.UnrecognizedOrderKindError{Kind: string(md.TokenizerType)}
	}
	return o, nil
}

// inferPackage recovers the package for snapshots without the paket key.
// The web form sends the bare per-person fare as totalBiaya, so both the fare
// and fare x members are matched. Empty when neither fits.
func inferPackage(total int64, members int) models.PackageType {
	for _, pkg := range []models.PackageType{models.PackageHealing, models.PackageTravelling} {
		fare, ok := utils.PackageFare(string(pkg))
		if !ok {
			continue
		}
		if total == fare || (members > 0 && total == fare*int64(members)) {
			return pkg
		}
	}
	return ""
}

// checkGrossAmount compares the charged amount with the snapshot total.
// An absent gross_amount is accepted.
func checkGrossAmount(gross string, total int64) error {
	gross = strings.TrimSpace(gross)
	if gross == "" {
		return nil
	}
	amount, err := decimal.NewFromString(gross)
	if err != nil {
		return domain.ValidationError{Field: "gross_amount", Msg: "gross_amount tidak valid", Err: err}
	}
	if !amount.Equal(decimal.NewFromInt(total)) {
		return domain.ValidationError{
			Field: "gross_amount",
			Msg:   fmt.Sprintf("gross_amount %s tidak sama dengan totalBiaya %d", amount.String(), total),
		}
	}
	return nil
}
