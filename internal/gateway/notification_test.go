package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelapp/internal/domain"
	"travelapp/internal/domain/models"
)

func TestVerifySignature(t *testing.T) {
	n := models.PaymentNotification{OrderID: "PKG-1", StatusCode: "200", GrossAmount: "2400000.00"}
	n.SignatureKey = SignatureFor(n.OrderID, n.StatusCode, n.GrossAmount, "server-key")

	assert.True(t, VerifySignature(n, "server-key"))
	assert.False(t, VerifySignature(n, "other-key"))
	assert.False(t, VerifySignature(n, ""))

	tampered := n
	tampered.GrossAmount = "1.00"
	assert.False(t, VerifySignature(tampered, "server-key"))

	unsigned := n
	unsigned.SignatureKey = ""
	assert.False(t, VerifySignature(unsigned, "server-key"))
}

func TestParseNotificationPackageOrder(t *testing.T) {
	body := []byte(`{
		"transaction_status": "Settlement",
		"order_id": "PKG-1",
		"status_code": "200",
		"gross_amount": "2400000.00",
		"signature_key": "abc",
		"payment_type": "bank_transfer",
		"metadata": {
			"tokenizerType": "package-order",
			"paket": "travelling",
			"nama": ["Ani", " Budi ", ""],
			"nomorHp": "0812",
			"totalBiaya": 2400000,
			"experience": ["E1", "E1"],
			"daftarDestinasi": ["D1", "D2"],
			"lokasiPenjemputan": "wonosobo",
			"tanggalPerjalanan": "2026-11-01",
			"masaPerjalanan": "1",
			"penginapanId": "L1"
		}
	}`)

	n, err := ParseNotification(body)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSettlement, n.TransactionStatus)
	assert.Equal(t, "PKG-1", n.OrderID)
	assert.Equal(t, "2400000.00", n.GrossAmount)
	assert.Equal(t, models.KindPackageOrder, n.Metadata.TokenizerType)
	assert.Equal(t, []string{"Ani", "Budi"}, n.Metadata.MemberNames)
	assert.Equal(t, int64(2400000), n.Metadata.TotalCost)
	assert.Equal(t, []string{"E1"}, n.Metadata.ExperienceIDs)
	assert.Equal(t, []string{"D1", "D2"}, n.Metadata.DestinationIDs)
	assert.Equal(t, 1, n.Metadata.DurationDays)
	assert.Equal(t, "L1", n.Metadata.LodgingID)
	assert.Equal(t, body, n.Raw)
}

func TestParseNotificationStringMetadata(t *testing.T) {
	body := []byte(`{"transaction_status":"pending","order_id":"REG-9","metadata":"{\"tokenizerType\":\"regular-order\",\"nama\":\"Citra\",\"qty\":1,\"destinationId\":\"D7\"}"}`)

	n, err := ParseNotification(body)
	require.NoError(t, err)
	assert.Equal(t, models.KindRegularOrder, n.Metadata.TokenizerType)
	assert.Equal(t, []string{"Citra"}, n.Metadata.MemberNames)
	assert.Equal(t, 1, n.Metadata.Qty)
	assert.Equal(t, "D7", n.Metadata.DestinationID)
}

func TestParseNotificationRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":       `{`,
		"null":           `null`,
		"missing order":  `{"transaction_status":"settlement"}`,
		"missing status": `{"order_id":"PKG-1"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseNotification([]byte(body))
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestParseNotificationKeepsMalformedMetadataOnNotification(t *testing.T) {
	cases := map[string]string{
		"metadata array":  `{"order_id":"PKG-1","transaction_status":"expire","metadata":[1,2]}`,
		"metadata number": `{"order_id":"PKG-1","transaction_status":"cancel","metadata":5}`,
		"metadata broken": `{"order_id":"PKG-1","transaction_status":"settlement","metadata":"{oops"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			n, err := ParseNotification([]byte(body))
			require.NoError(t, err)
			assert.Equal(t, "PKG-1", n.OrderID)
			require.Error(t, n.MetadataErr)
			assert.True(t, domain.IsValidation(n.MetadataErr))
			assert.Empty(t, n.Metadata.MemberNames)
		})
	}

	n, err := ParseNotification([]byte(`{"order_id":"PKG-1","transaction_status":"pending"}`))
	require.NoError(t, err)
	assert.NoError(t, n.MetadataErr)
}
