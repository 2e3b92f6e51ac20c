package gateway

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"

	"github.com/spf13/cast"

	"travelapp/internal/domain"
	"travelapp/internal/domain/models"
)

// SignatureFor computes the Midtrans notification signature.
func SignatureFor(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// VerifySignature checks signature_key in constant time.
func VerifySignature(n models.PaymentNotification, serverKey string) bool {
	if serverKey == "" || n.SignatureKey == "" {
		return false
	}
	want := SignatureFor(n.OrderID, n.StatusCode, n.GrossAmount, serverKey)
	got := strings.ToLower(strings.TrimSpace(n.SignatureKey))
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}

// ParseNotification decodes a webhook body. Scalar fields are read leniently
// since the gateway sends numbers as strings in some channels.
func ParseNotification(body []byte) (models.PaymentNotification, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return models.PaymentNotification{}, domain.ValidationError{Field: "body", Msg: "payload tidak valid", Err: err}
	}
	if raw == nil {
		return models.PaymentNotification{}, domain.ValidationError{Field: "body", Msg: "payload tidak valid"}
	}

	n := models.PaymentNotification{
		TransactionStatus: models.TransactionStatus(strings.ToLower(strings.TrimSpace(cast.ToString(raw["transaction_status"])))),
		OrderID:           strings.TrimSpace(cast.ToString(raw["order_id"])),
		StatusCode:        strings.TrimSpace(cast.ToString(raw["status_code"])),
		GrossAmount:       strings.TrimSpace(cast.ToString(raw["gross_amount"])),
		SignatureKey:      strings.TrimSpace(cast.ToString(raw["signature_key"])),
		PaymentType:       cast.ToString(raw["payment_type"]),
		FraudStatus:       cast.ToString(raw["fraud_status"]),
		Raw:               body,
	}
	if n.OrderID == "" {
		return n, domain.ValidationError{Field: "order_id", Msg: "order_id wajib diisi"}
	}
	if n.TransactionStatus == "" {
		return n, domain.ValidationError{Field: "transaction_status", Msg: "transaction_status wajib diisi"}
	}

	// unpaid statuses never read the metadata, so a broken snapshot is
	// carried on the notification instead of failing the whole delivery
	n.Metadata, n.MetadataErr = parseMetadata(raw["metadata"])
	return n, nil
}

var errMetadataShape = errors.New("metadata harus berupa object")

func parseMetadata(v any) (models.OrderMetadata, error) {
	if v == nil {
		return models.OrderMetadata{}, nil
	}
	// some integrations double-encode metadata as a JSON string
	if s, ok := v.(string); ok {
		if strings.TrimSpace(s) == "" {
			return models.OrderMetadata{}, nil
		}
		var inner any
		if err := json.Unmarshal([]byte(s), &inner); err != nil {
			return models.OrderMetadata{}, domain.ValidationError{Field: "metadata", Msg: "metadata tidak valid", Err: err}
		}
		v = inner
	}
	m, ok := v.(map[string]any)
	if !ok {
		return models.OrderMetadata{}, domain.ValidationError{Field: "metadata", Msg: "metadata tidak valid", Err: errMetadataShape}
	}

	return models.OrderMetadata{
		TokenizerType:  models.OrderKind(strings.TrimSpace(cast.ToString(m["tokenizerType"]))),
		PackageType:    models.PackageType(strings.ToLower(strings.TrimSpace(cast.ToString(m["paket"])))),
		MemberNames:    models.CleanNames(toStrings(m["nama"])),
		Phone:          strings.TrimSpace(cast.ToString(m["nomorHp"])),
		TotalCost:      cast.ToInt64(m["totalBiaya"]),
		ExperienceIDs:  models.UniqueIDs(toStrings(m["experience"])),
		DestinationIDs: models.UniqueIDs(toStrings(m["daftarDestinasi"])),
		PickupLocation: strings.TrimSpace(cast.ToString(m["lokasiPenjemputan"])),
		TravelDate:     strings.TrimSpace(cast.ToString(m["tanggalPerjalanan"])),
		DurationDays:   cast.ToInt(m["masaPerjalanan"]),
		LodgingID:      strings.TrimSpace(cast.ToString(m["penginapanId"])),
		UserID:         strings.TrimSpace(cast.ToString(m["userId"])),
		DestinationID:  strings.TrimSpace(cast.ToString(m["destinationId"])),
		Qty:            cast.ToInt(m["qty"]),
	}, nil
}

// toStrings accepts a list or a single scalar.
func toStrings(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, cast.ToString(item))
		}
		return out
	default:
		return cast.ToStringSlice(v)
	}
}
