// Package alert raises operator alerts for money that moved without an order
// being recorded, and for payment notifications the service cannot interpret.
package alert

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travelapp/internal/utils"
)

const (
	KindPersistFailed    = "persist_failed"
	KindUnrecognizedKind = "unrecognized_order_kind"
	KindAmountMismatch   = "amount_mismatch"
)

type Alert struct {
	Kind      string    `json:"kind"`
	OrderID   string    `json:"order_id"`
	RequestID string    `json:"request_id,omitempty"`
	Message   string    `json:"message"`
	At        time.Time `json:"at"`
}

func (a Alert) String() string {
	return fmt.Sprintf("[%s] order_id=%s request_id=%s %s", a.Kind, a.OrderID, a.RequestID, a.Message)
}

type Alerter interface {
	Raise(ctx context.Context, a Alert) error
}

// Log writes alerts to the process log. It never fails.
type Log struct{}

func (Log) Raise(_ context.Context, a Alert) error {
	utils.LogEvent(a.RequestID, "ALERT", a.Kind, fmt.Sprintf("order_id=%s %s", a.OrderID, a.Message))
	return nil
}

// Fanout delivers to every channel and joins their errors.
type Fanout struct {
	Channels []Alerter
	// OnRaise is called once per alert, e.g. to count it.
	OnRaise func(kind string)
}

func (f Fanout) Raise(ctx context.Context, a Alert) error {
	if a.At.IsZero() {
		a.At = time.Now().UTC()
	}
	if f.OnRaise != nil {
		f.OnRaise(a.Kind)
	}
	var errs []error
	for _, ch := range f.Channels {
		if ch == nil {
			continue
		}
		if err := ch.Raise(ctx, a); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
