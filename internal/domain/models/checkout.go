package models

// PricingResult is derived from a draft and never stored on its own.
type PricingResult struct {
	UnitPrice   int64 `json:"unitPrice"`
	MemberCount int   `json:"memberCount"`
	TotalPrice  int64 `json:"totalPrice"`
}

// CheckoutToken is what the client needs to open the Snap widget.
type CheckoutToken struct {
	Token       string        `json:"token"`
	RedirectURL string        `json:"redirect_url,omitempty"`
	OrderID     string        `json:"order_id"`
	Pricing     PricingResult `json:"pricing"`
}

// OrderMetadata is the snapshot attached to the gateway transaction. It must be
// enough to rebuild the order when the payment notification comes back.
type OrderMetadata struct {
	TokenizerType  OrderKind   `json:"tokenizerType"`
	PackageType    PackageType `json:"paket,omitempty"`
	MemberNames    []string    `json:"nama"`
	Phone          string      `json:"nomorHp"`
	TotalCost      int64       `json:"totalBiaya"`
	ExperienceIDs  []string    `json:"experience"`
	DestinationIDs []string    `json:"daftarDestinasi,omitempty"`
	PickupLocation string      `json:"lokasiPenjemputan"`
	TravelDate     string      `json:"tanggalPerjalanan"`
	DurationDays   int         `json:"masaPerjalanan"`
	LodgingID      string      `json:"penginapanId,omitempty"`
	UserID         string      `json:"userId,omitempty"`
	DestinationID  string      `json:"destinationId,omitempty"`
	Qty            int         `json:"qty,omitempty"`
}

// PaymentOutcome is the terminal result reported by the Snap widget.
type PaymentOutcome string

const (
	OutcomeSuccess    PaymentOutcome = "success"
	OutcomePending    PaymentOutcome = "pending"
	OutcomeError      PaymentOutcome = "error"
	OutcomeUserClosed PaymentOutcome = "closed"
)

func (o PaymentOutcome) Valid() bool {
	switch o {
	case OutcomeSuccess, OutcomePending, OutcomeError, OutcomeUserClosed:
		return true
	default:
		return false
	}
}

// ClientEvent tells the client what to do after an outcome.
type ClientEvent struct {
	Action  string `json:"action"` // navigate / toast
	Target  string `json:"target,omitempty"`
	Level   string `json:"level,omitempty"`
	Message string `json:"message,omitempty"`
}

// SnapScript is the widget script the client mounts while checking out.
type SnapScript struct {
	URL       string `json:"url"`
	ClientKey string `json:"clientKey"`
}
