package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaDDL is applied in order; link tables come after their parents.
var schemaDDL = []struct {
	table string
	ddl   string
}{
	{"users", `CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(120) NOT NULL,
		username VARCHAR(64) NOT NULL,
		email VARCHAR(120) NOT NULL,
		phone VARCHAR(32) NOT NULL DEFAULT '',
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(16) NOT NULL DEFAULT 'user',
		status VARCHAR(16) NOT NULL DEFAULT 'active',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_users_email (email),
		UNIQUE KEY uniq_users_username (username)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"lodgings", `CREATE TABLE IF NOT EXISTS lodgings (
		id VARCHAR(64) PRIMARY KEY,
		name VARCHAR(160) NOT NULL,
		price BIGINT NOT NULL DEFAULT 0
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"experiences", `CREATE TABLE IF NOT EXISTS experiences (
		id VARCHAR(64) PRIMARY KEY,
		name VARCHAR(160) NOT NULL,
		price BIGINT NOT NULL DEFAULT 0
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"destinations", `CREATE TABLE IF NOT EXISTS destinations (
		id VARCHAR(64) PRIMARY KEY,
		name VARCHAR(160) NOT NULL,
		price BIGINT NOT NULL DEFAULT 0
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"package_orders", `CREATE TABLE IF NOT EXISTS package_orders (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		gateway_order_id VARCHAR(64) NOT NULL,
		user_id VARCHAR(64) NULL,
		package_type VARCHAR(16) NOT NULL,
		pickup_location VARCHAR(32) NOT NULL,
		duration_days INT NOT NULL DEFAULT 1,
		member_names TEXT NOT NULL,
		phone VARCHAR(32) NOT NULL,
		travel_date VARCHAR(10) NOT NULL,
		total_cost BIGINT NOT NULL,
		lodging_id VARCHAR(64) NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_package_orders_gateway (gateway_order_id),
		KEY idx_package_orders_user (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"package_order_experiences", `CREATE TABLE IF NOT EXISTS package_order_experiences (
		package_order_id BIGINT NOT NULL,
		experience_id VARCHAR(64) NOT NULL,
		PRIMARY KEY (package_order_id, experience_id),
		CONSTRAINT fk_poe_order FOREIGN KEY (package_order_id) REFERENCES package_orders(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"package_order_destinations", `CREATE TABLE IF NOT EXISTS package_order_destinations (
		package_order_id BIGINT NOT NULL,
		destination_id VARCHAR(64) NOT NULL,
		PRIMARY KEY (package_order_id, destination_id),
		CONSTRAINT fk_pod_order FOREIGN KEY (package_order_id) REFERENCES package_orders(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"orders", `CREATE TABLE IF NOT EXISTS orders (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		gateway_order_id VARCHAR(64) NOT NULL,
		user_id VARCHAR(64) NULL,
		destination_id VARCHAR(64) NOT NULL,
		qty INT NOT NULL DEFAULT 1,
		pickup_location VARCHAR(32) NOT NULL,
		duration_days INT NOT NULL DEFAULT 1,
		member_names TEXT NOT NULL,
		phone VARCHAR(32) NOT NULL,
		travel_date VARCHAR(10) NOT NULL,
		total_cost BIGINT NOT NULL,
		lodging_id VARCHAR(64) NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_orders_gateway (gateway_order_id),
		KEY idx_orders_user (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"order_experiences", `CREATE TABLE IF NOT EXISTS order_experiences (
		order_id BIGINT NOT NULL,
		experience_id VARCHAR(64) NOT NULL,
		PRIMARY KEY (order_id, experience_id),
		CONSTRAINT fk_oe_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"payment_notifications", `CREATE TABLE IF NOT EXISTS payment_notifications (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		gateway_order_id VARCHAR(64) NOT NULL,
		transaction_status VARCHAR(32) NOT NULL,
		state VARCHAR(32) NOT NULL,
		payload TEXT NOT NULL,
		received_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_payment_notifications_order (gateway_order_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
}

// EnsureSchema creates every table the service reads or writes.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, s := range schemaDDL {
		if _, err := db.ExecContext(ctx, s.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", s.table, err)
		}
	}
	return nil
}
