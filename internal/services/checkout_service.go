package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"travelapp/internal/domain"
	"travelapp/internal/domain/models"
	"travelapp/internal/gateway"
	"travelapp/internal/utils"
)

// TransactionCreator opens a Snap transaction. *gateway.SnapClient implements it.
type TransactionCreator interface {
	CreateTransaction(ctx context.Context, in gateway.SnapRequest) (gateway.SnapResponse, error)
}

// CheckoutService validates drafts and exchanges them for a gateway token.
// Nothing is stored here; the order is recorded once payment settles.
type CheckoutService struct {
	Gateway     TransactionCreator
	Pricing     PricingService
	MinLeadDays int
	Now         func() time.Time
	NewOrderID  func(prefix string) string
	RequestID   string
}

func (s CheckoutService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s CheckoutService) orderID(prefix string) string {
	if s.NewOrderID != nil {
		return s.NewOrderID(prefix)
	}
	return prefix + "-" + uuid.NewString()
}

// ValidateDraft checks a package draft. The draft must already be normalized.
func (s CheckoutService) ValidateDraft(d models.OrderDraft) error {
	if !d.PackageType.Valid() {
		return domain.ValidationError{Field: "selectedPackage", Msg: "paket tidak valid"}
	}
	if err := s.validateCommon(d.MemberNames, d.Phone, d.PickupLocation, d.TravelDate); err != nil {
		return err
	}
	if d.PackageType == models.PackageTravelling && d.LodgingID == "" {
		return domain.ValidationError{Field: "penginapanId", Msg: "penginapan wajib dipilih untuk paket travelling"}
	}
	return nil
}

// ValidateRegularDraft checks a regular draft. The draft must already be normalized.
func (s CheckoutService) ValidateRegularDraft(d models.RegularOrderDraft) error {
	if d.DestinationID == "" {
		return domain.ValidationError{Field: "destinationId", Msg: "destinasi wajib dipilih"}
	}
	return s.validateCommon(d.MemberNames, d.Phone, d.PickupLocation, d.TravelDate)
}

func (s CheckoutService) validateCommon(names []string, phone string, pickup models.PickupLocation, travelDate string) error {
	if len(names) == 0 {
		return domain.ValidationError{Field: "nama", Msg: "minimal 1 anggota"}
	}
	if !validPhone(phone) {
		return domain.ValidationError{Field: "nomorHp", Msg: "nomor hp tidak valid"}
	}
	if !pickup.Valid() {
		return domain.ValidationError{Field: "lokasiPenjemputan", Msg: "lokasi penjemputan tidak valid"}
	}
	date, err := utils.ParseDate(travelDate)
	if err != nil {
		return domain.ValidationError{Field: "tanggalPerjalanan", Msg: "format tanggal harus YYYY-MM-DD", Err: err}
	}
	earliest := utils.EarliestTravelDate(s.now(), s.MinLeadDays)
	if date.Before(earliest) {
		return domain.ValidationError{Field: "tanggalPerjalanan", Msg: "tanggal perjalanan paling cepat " + utils.FormatDate(earliest)}
	}
	return nil
}

// validPhone accepts 8 to 15 digits with an optional leading plus.
func validPhone(phone string) bool {
	phone = strings.TrimPrefix(phone, "+")
	if len(phone) < 8 || len(phone) > 15 {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IssueToken validates and prices a package draft, then makes one Snap call.
func (s CheckoutService) IssueToken(ctx context.Context, d models.OrderDraft) (models.CheckoutToken, error) {
	d = d.Normalize()
	if err := s.ValidateDraft(d); err != nil {
		return models.CheckoutToken{}, err
	}
	pricing, err := Price(d.PackageType, len(d.MemberNames))
	if err != nil {
		return models.CheckoutToken{}, err
	}

	orderID := s.orderID("PKG")
	md := models.OrderMetadata{
		TokenizerType:  models.KindPackageOrder,
		PackageType:    d.PackageType,
		MemberNames:    d.MemberNames,
		Phone:          d.Phone,
		TotalCost:      pricing.TotalPrice,
		ExperienceIDs:  d.ExperienceIDs,
		DestinationIDs: d.DestinationIDs,
		PickupLocation: string(d.PickupLocation),
		TravelDate:     d.TravelDate,
		DurationDays:   d.PackageType.DurationDays(),
		LodgingID:      d.LodgingID,
		UserID:         d.UserID,
	}
	item := gateway.ItemDetail{
		ID:       string(d.PackageType),
		Name:     "Paket " + string(d.PackageType),
		Price:    pricing.UnitPrice,
		Quantity: pricing.MemberCount,
	}
	return s.issue(ctx, orderID, pricing, md, item)
}

// IssueRegularToken is IssueToken for a single-destination order.
func (s CheckoutService) IssueRegularToken(ctx context.Context, d models.RegularOrderDraft) (models.CheckoutToken, error) {
	d = d.Normalize()
	if err := s.ValidateRegularDraft(d); err != nil {
		return models.CheckoutToken{}, err
	}
	pricing, err := s.Pricing.QuoteRegular(ctx, d)
	if err != nil {
		return models.CheckoutToken{}, err
	}

	orderID := s.orderID("REG")
	md := models.OrderMetadata{
		TokenizerType:  models.KindRegularOrder,
		MemberNames:    d.MemberNames,
		Phone:          d.Phone,
		TotalCost:      pricing.TotalPrice,
		ExperienceIDs:  d.ExperienceIDs,
		PickupLocation: string(d.PickupLocation),
		TravelDate:     d.TravelDate,
		DurationDays:   d.DurationDays,
		LodgingID:      d.LodgingID,
		UserID:         d.UserID,
		DestinationID:  d.DestinationID,
		Qty:            pricing.MemberCount,
	}
	item := gateway.ItemDetail{
		ID:       d.DestinationID,
		Name:     "Tiket destinasi " + d.DestinationID,
		Price:    pricing.UnitPrice,
		Quantity: pricing.MemberCount,
	}
	return s.issue(ctx, orderID, pricing, md, item)
}

func (s CheckoutService) issue(ctx context.Context, orderID string, pricing models.PricingResult, md models.OrderMetadata, item gateway.ItemDetail) (models.CheckoutToken, error) {
	if s.Gateway == nil {
		return models.CheckoutToken{}, fmt.Errorf("%w: gateway belum dikonfigurasi", gateway.ErrUnavailable)
	}
	req := gateway.SnapRequest{
		TransactionDetails: gateway.TransactionDetails{OrderID: orderID, GrossAmount: pricing.TotalPrice},
		CustomerDetails:    &gateway.CustomerDetails{FirstName: md.MemberNames[0], Phone: md.Phone},
		ItemDetails:        []gateway.ItemDetail{item},
		Metadata:           md,
	}

	resp, err := s.Gateway.CreateTransaction(ctx, req)
	if err != nil {
		utils.LogEvent(s.RequestID, "CHECKOUT", "token", "order_id="+orderID+" gagal: "+err.Error())
		return models.CheckoutToken{}, err
	}
	utils.LogEventf(s.RequestID, "CHECKOUT", "token", "order_id=%s kind=%s total=%d phone=%s",
		orderID, md.TokenizerType, pricing.TotalPrice, utils.MaskPhone(md.Phone))

	return models.CheckoutToken{
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
		OrderID:     orderID,
		Pricing:     pricing,
	}, nil
}
