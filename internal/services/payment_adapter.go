package services

import (
	"sync"
	"time"

	"travelapp/internal/domain"
	"travelapp/internal/domain/models"
	"travelapp/internal/utils"
)

// OutcomeHandlers are the callbacks of one widget presentation. Nil handlers are skipped.
type OutcomeHandlers struct {
	OnSuccess func()
	OnPending func()
	OnError   func()
	OnClose   func()
}

// Presentation is one opening of the payment widget for a token. At most one
// handler fires over its lifetime, whatever the widget reports afterwards.
type Presentation struct {
	Token     models.CheckoutToken
	CreatedAt time.Time

	handlers OutcomeHandlers
	once     sync.Once
	mu       sync.Mutex
	outcome  models.PaymentOutcome
}

// Resolve fires the handler for outcome. It reports false when the
// presentation already resolved.
func (p *Presentation) Resolve(outcome models.PaymentOutcome) (bool, error) {
	if !outcome.Valid() {
		return false, domain.ValidationError{Field: "outcome", Msg: "outcome tidak dikenal: " + string(outcome)}
	}
	fired := false
	p.once.Do(func() {
		fired = true
		p.mu.Lock()
		p.outcome = outcome
		p.mu.Unlock()

		var h func()
		switch outcome {
		case models.OutcomeSuccess:
			h = p.handlers.OnSuccess
		case models.OutcomePending:
			h = p.handlers.OnPending
		case models.OutcomeError:
			h = p.handlers.OnError
		case models.OutcomeUserClosed:
			h = p.handlers.OnClose
		}
		if h != nil {
			h()
		}
	})
	return fired, nil
}

// Outcome returns the resolved outcome, if any.
func (p *Presentation) Outcome() (models.PaymentOutcome, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.outcome, p.outcome != ""
}

// ClientEvent maps a widget outcome to what the client shows next.
func ClientEvent(outcome models.PaymentOutcome) (models.ClientEvent, error) {
	switch outcome {
	case models.OutcomeSuccess:
		return models.ClientEvent{Action: "navigate", Target: "/orders"}, nil
	case models.OutcomePending:
		return models.ClientEvent{Action: "toast", Level: "error", Message: "Pembayaran dibatalkan"}, nil
	case models.OutcomeError:
		return models.ClientEvent{Action: "toast", Level: "error", Message: "Pembayaran tidak valid"}, nil
	case models.OutcomeUserClosed:
		return models.ClientEvent{Action: "toast", Level: "error", Message: "Pembayaran dibatalkan"}, nil
	default:
		return models.ClientEvent{}, domain.ValidationError{Field: "outcome", Msg: "outcome tidak dikenal: " + string(outcome)}
	}
}

// PaymentAdapter tracks widget presentations by gateway order id. It never
// records orders; that happens only on the payment notification.
type PaymentAdapter struct {
	ScriptURL string
	ClientKey string
	TTL       time.Duration
	Now       func() time.Time

	mu            sync.Mutex
	presentations map[string]*Presentation
	lastSweep     time.Time
}

func NewPaymentAdapter(scriptURL, clientKey string) *PaymentAdapter {
	return &PaymentAdapter{
		ScriptURL:     scriptURL,
		ClientKey:     clientKey,
		TTL:           24 * time.Hour,
		presentations: map[string]*Presentation{},
	}
}

func (a *PaymentAdapter) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// SnapScript is what the client mounts while the checkout page is open.
func (a *PaymentAdapter) SnapScript() models.SnapScript {
	return models.SnapScript{URL: a.ScriptURL, ClientKey: a.ClientKey}
}

// Present registers a presentation for token. Presenting the same order
// again replaces an unresolved presentation.
func (a *PaymentAdapter) Present(token models.CheckoutToken, h OutcomeHandlers) (*Presentation, error) {
	if token.Token == "" || token.OrderID == "" {
		return nil, domain.ValidationError{Field: "token", Msg: "token pembayaran kosong"}
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sweepLocked()

	if prev, ok := a.presentations[token.OrderID]; ok {
		if _, resolved := prev.Outcome(); resolved {
			return prev, nil
		}
	}
	p := &Presentation{Token: token, CreatedAt: a.now(), handlers: h}
	a.presentations[token.OrderID] = p
	return p, nil
}

// Report resolves the presentation of orderID and returns the client event.
// first is false when an outcome was already reported for this order; the
// event then describes that earlier outcome. Orders this process never
// presented are translated without being tracked.
func (a *PaymentAdapter) Report(orderID string, outcome models.PaymentOutcome, requestID string) (models.ClientEvent, bool, error) {
	ev, err := ClientEvent(outcome)
	if err != nil {
		return models.ClientEvent{}, false, err
	}

	a.mu.Lock()
	a.sweepLocked()
	p, ok := a.presentations[orderID]
	a.mu.Unlock()
	if !ok {
		utils.LogEventf(requestID, "CHECKOUT", "outcome", "order_id=%s outcome=%s untracked", orderID, outcome)
		return ev, true, nil
	}

	first, err := p.Resolve(outcome)
	if err != nil {
		return models.ClientEvent{}, false, err
	}
	if !first {
		if prev, resolved := p.Outcome(); resolved {
			if ev, err = ClientEvent(prev); err != nil {
				return models.ClientEvent{}, false, err
			}
		}
	}
	utils.LogEventf(requestID, "CHECKOUT", "outcome", "order_id=%s outcome=%s first=%t", orderID, outcome, first)
	return ev, first, nil
}

// sweepInterval spaces out expiry scans of the presentation map.
const sweepInterval = time.Minute

func (a *PaymentAdapter) sweepLocked() {
	if a.presentations == nil {
		a.presentations = map[string]*Presentation{}
		return
	}
	if a.TTL <= 0 {
		return
	}
	now := a.now()
	if !a.lastSweep.IsZero() && now.Sub(a.lastSweep) < sweepInterval {
		return
	}
	a.lastSweep = now
	cutoff := now.Add(-a.TTL)
	for id, p := range a.presentations {
		if p.CreatedAt.Before(cutoff) {
			delete(a.presentations, id)
		}
	}
}

func (a *PaymentAdapter) tracked() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.presentations)
}
