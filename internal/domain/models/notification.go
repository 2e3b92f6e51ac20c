package models

import "strings"

// TransactionStatus as reported by Midtrans.
type TransactionStatus string

const (
	StatusPending    TransactionStatus = "pending"
	StatusSettlement TransactionStatus = "settlement"
	StatusCapture    TransactionStatus = "capture"
	StatusDeny       TransactionStatus = "deny"
	StatusCancel     TransactionStatus = "cancel"
	StatusExpire     TransactionStatus = "expire"
	StatusFailure    TransactionStatus = "failure"
)

func ParseTransactionStatus(s string) (TransactionStatus, bool) {
	st := TransactionStatus(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusSettlement, StatusCapture, StatusDeny, StatusCancel, StatusExpire, StatusFailure:
		return st, true
	default:
		return st, false
	}
}

func (s TransactionStatus) IsRejected() bool {
	switch s {
	case StatusDeny, StatusCancel, StatusExpire, StatusFailure:
		return true
	default:
		return false
	}
}

func (s TransactionStatus) IsPaid() bool {
	return s == StatusSettlement || s == StatusCapture
}

// PaymentNotification is one delivery of the gateway webhook. Deliveries are
// at-least-once and may arrive out of order.
type PaymentNotification struct {
	TransactionStatus TransactionStatus
	OrderID           string
	StatusCode        string
	GrossAmount       string
	SignatureKey      string
	PaymentType       string
	FraudStatus       string
	Metadata          OrderMetadata
	// MetadataErr holds a metadata decoding failure. It only matters once
	// the status says the order was paid.
	MetadataErr error
	Raw         []byte
}

type ReconcileState string

const (
	StateReceived           ReconcileState = "received"
	StateAwaitingSettlement ReconcileState = "awaiting_settlement"
	StateSettling           ReconcileState = "settling"
	StateSettled            ReconcileState = "settled"
	StateRejected           ReconcileState = "rejected"
	StatePersistFailed      ReconcileState = "persist_failed"
)

type ReconcileResult struct {
	OrderID        string         `json:"order_id"`
	State          ReconcileState `json:"state"`
	AlreadySettled bool           `json:"already_settled,omitempty"`
	PersistedID    int64          `json:"persisted_id,omitempty"`
	Message        string         `json:"message"`
}
