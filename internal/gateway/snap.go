package gateway

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

var (
	// ErrUnavailable covers network failures, timeouts and 5xx answers.
	ErrUnavailable = errors.New("payment gateway unavailable")
	// ErrRejected covers 4xx answers and responses without a token.
	ErrRejected = errors.New("payment gateway rejected transaction")
)

const snapTransactionsPath = "/snap/v1/transactions"

type TransactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount int64  `json:"gross_amount"`
}

type CustomerDetails struct {
	FirstName string `json:"first_name"`
	Phone     string `json:"phone,omitempty"`
}

type ItemDetail struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// SnapRequest is the body of a Snap transaction. Metadata is echoed back by
// the gateway on every payment notification.
type SnapRequest struct {
	TransactionDetails TransactionDetails `json:"transaction_details"`
	CustomerDetails    *CustomerDetails   `json:"customer_details,omitempty"`
	ItemDetails        []ItemDetail       `json:"item_details,omitempty"`
	Metadata           any                `json:"metadata,omitempty"`
}

type SnapResponse struct {
	Token         string   `json:"token"`
	RedirectURL   string   `json:"redirect_url"`
	ErrorMessages []string `json:"error_messages,omitempty"`
}

// Observer receives the outcome ("ok", "unavailable", "rejected") and latency of every call.
type Observer func(outcome string, elapsed time.Duration)

type SnapClient struct {
	BaseURL   string
	ServerKey string
	Timeout   time.Duration
	Observe   Observer

	client *fasthttp.Client
}

func NewSnapClient(baseURL, serverKey string, timeout time.Duration) *SnapClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &SnapClient{
		BaseURL:   strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		ServerKey: serverKey,
		Timeout:   timeout,
		client: &fasthttp.Client{
			Name:                "travelapp",
			MaxConnsPerHost:     64,
			MaxIdleConnDuration: 30 * time.Second,
		},
	}
}

// CreateTransaction makes exactly one call to Snap. It does not retry.
func (c *SnapClient) CreateTransaction(ctx context.Context, in SnapRequest) (SnapResponse, error) {
	started := time.Now()
	out, err := c.createTransaction(ctx, in)
	if c.Observe != nil {
		c.Observe(outcomeLabel(err), time.Since(started))
	}
	return out, err
}

func (c *SnapClient) createTransaction(ctx context.Context, in SnapRequest) (SnapResponse, error) {
	if err := ctx.Err(); err != nil {
		return SnapResponse{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	body, err := json.Marshal(in)
	if err != nil {
		return SnapResponse{}, fmt.Errorf("%w: encode request: %v", ErrRejected, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.BaseURL + snapTransactionsPath)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", basicAuth(c.ServerKey))
	req.SetBody(body)

	if err := c.client.DoTimeout(req, resp, c.effectiveTimeout(ctx)); err != nil {
		return SnapResponse{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	status := resp.StatusCode()
	var out SnapResponse
	decodeErr := json.Unmarshal(resp.Body(), &out)

	switch {
	case status >= 500:
		return SnapResponse{}, fmt.Errorf("%w: status %d", ErrUnavailable, status)
	case status >= 400:
		msg := strings.Join(out.ErrorMessages, "; ")
		if msg == "" {
			msg = fmt.Sprintf("status %d", status)
		}
		return SnapResponse{}, fmt.Errorf("%w: %s", ErrRejected, msg)
	case decodeErr != nil:
		return SnapResponse{}, fmt.Errorf("%w: decode response: %v", ErrRejected, decodeErr)
	case strings.TrimSpace(out.Token) == "":
		return SnapResponse{}, fmt.Errorf("%w: empty token", ErrRejected)
	}
	return out, nil
}

// effectiveTimeout is the configured timeout, shortened by the context deadline.
func (c *SnapClient) effectiveTimeout(ctx context.Context) time.Duration {
	timeout := c.Timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout {
			timeout = left
		}
	}
	if timeout <= 0 {
		timeout = time.Millisecond
	}
	return timeout
}

func basicAuth(serverKey string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(serverKey+":"))
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	default:
		return "rejected"
	}
}
