package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intconfig "travelapp/internal/config"
	"travelapp/internal/domain/models"
)

// NotificationRepository is the append-only audit trail of webhook deliveries.
type NotificationRepository struct {
	DB *sql.DB
}

func (r NotificationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r NotificationRepository) Append(ctx context.Context, n models.PaymentNotification, state models.ReconcileState) error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("database belum terkoneksi")
	}
	payload := string(n.Raw)
	if payload == "" {
		payload = "{}"
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO payment_notifications (gateway_order_id, transaction_status, state, payload)
		VALUES (?, ?, ?, ?)`,
		n.OrderID, string(n.TransactionStatus), string(state), payload,
	)
	if err != nil {
		return fmt.Errorf("insert payment_notifications: %w", err)
	}
	return nil
}
