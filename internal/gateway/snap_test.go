package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRequest() SnapRequest {
	return SnapRequest{
		TransactionDetails: TransactionDetails{OrderID: "PKG-1", GrossAmount: 2400000},
		CustomerDetails:    &CustomerDetails{FirstName: "Ani", Phone: "0812"},
		Metadata:           map[string]any{"tokenizerType": "package-order"},
	}
}

func TestCreateTransactionSuccess(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"token":"tok-123","redirect_url":"https://snap/redirect"}`))
	}))
	defer srv.Close()

	var outcomes []string
	c := NewSnapClient(srv.URL+"/", "SB-server", time.Second)
	c.Observe = func(outcome string, _ time.Duration) { outcomes = append(outcomes, outcome) }

	out, err := c.CreateTransaction(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "tok-123", out.Token)
	assert.Equal(t, "https://snap/redirect", out.RedirectURL)
	assert.Equal(t, "/snap/v1/transactions", gotPath)
	assert.Equal(t, basicAuth("SB-server"), gotAuth)
	assert.Equal(t, "PKG-1", gotBody["transaction_details"].(map[string]any)["order_id"])
	assert.Equal(t, "package-order", gotBody["metadata"].(map[string]any)["tokenizerType"])
	assert.Equal(t, []string{"ok"}, outcomes)
}

func TestCreateTransactionClassifiesFailures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"server error", http.StatusBadGateway, `{}`, ErrUnavailable},
		{"service unavailable", http.StatusServiceUnavailable, ``, ErrUnavailable},
		{"bad request", http.StatusBadRequest, `{"error_messages":["gross_amount is required"]}`, ErrRejected},
		{"unauthorized", http.StatusUnauthorized, `{"error_messages":["Access denied"]}`, ErrRejected},
		{"empty token", http.StatusCreated, `{"token":""}`, ErrRejected},
		{"malformed", http.StatusCreated, `not-json`, ErrRejected},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewSnapClient(srv.URL, "key", time.Second)
			_, err := c.CreateTransaction(context.Background(), sampleRequest())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestCreateTransactionRejectedCarriesGatewayMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error_messages":["transaction_details.order_id sudah digunakan"]}`))
	}))
	defer srv.Close()

	_, err := NewSnapClient(srv.URL, "key", time.Second).CreateTransaction(context.Background(), sampleRequest())
	require.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "sudah digunakan")
}

func TestCreateTransactionTimeoutIsUnavailable(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	var outcome string
	c := NewSnapClient(srv.URL, "key", 50*time.Millisecond)
	c.Observe = func(o string, _ time.Duration) { outcome = o }

	_, err := c.CreateTransaction(context.Background(), sampleRequest())
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "unavailable", outcome)
}

func TestCreateTransactionCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSnapClient("http://127.0.0.1:1", "key", time.Second).CreateTransaction(ctx, sampleRequest())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestEffectiveTimeoutHonorsDeadline(t *testing.T) {
	c := NewSnapClient("http://x", "key", 10*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.LessOrEqual(t, c.effectiveTimeout(ctx), time.Second)
	assert.Equal(t, 10*time.Second, c.effectiveTimeout(context.Background()))
}
