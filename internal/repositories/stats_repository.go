package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	intconfig "travelapp/internal/config"
	intdb "travelapp/internal/db"
	"travelapp/internal/domain/models"
)

// StatsRepository backs the admin dashboard.
type StatsRepository struct {
	DB *sql.DB
}

func (r StatsRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

var countableTables = map[string]bool{
	"users":           true,
	TableLodgings:     true,
	TableExperiences:  true,
	TableDestinations: true,
	"package_orders":  true,
	"orders":          true,
}

func (r StatsRepository) Count(ctx context.Context, table string) (int64, error) {
	if !countableTables[table] {
		return 0, fmt.Errorf("tabel tidak dikenal: %s", table)
	}
	db := r.db()
	if db == nil || !intdb.HasTable(ctx, db, table) {
		return 0, nil
	}
	var n int64
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// RevenueByMonth sums paid orders of both kinds per calendar month of year.
func (r StatsRepository) RevenueByMonth(ctx context.Context, year int) ([]models.MonthlyRevenue, error) {
	out := []models.MonthlyRevenue{}
	err := sqlx.NewDb(r.db(), "mysql").SelectContext(ctx, &out, `
		SELECT MONTH(t.created_at) AS bulan, COALESCE(SUM(t.total_cost), 0) AS pendapatan
		FROM (
			SELECT created_at, total_cost FROM package_orders
			UNION ALL
			SELECT created_at, total_cost FROM orders
		) t
		WHERE YEAR(t.created_at) = ?
		GROUP BY MONTH(t.created_at)
		ORDER BY bulan`, year)
	if err != nil {
		return nil, fmt.Errorf("revenue by month: %w", err)
	}
	return out, nil
}

// MostOrderedDestination returns nil when nothing has been ordered yet.
func (r StatsRepository) MostOrderedDestination(ctx context.Context) (*models.MostOrdered, error) {
	var m models.MostOrdered
	err := sqlx.NewDb(r.db(), "mysql").GetContext(ctx, &m, `
		SELECT d.id AS destination_id, d.name AS name, COUNT(*) AS orders
		FROM (
			SELECT destination_id FROM orders
			UNION ALL
			SELECT destination_id FROM package_order_destinations
		) o
		JOIN destinations d ON d.id = o.destination_id
		GROUP BY d.id, d.name
		ORDER BY orders DESC, d.name
		LIMIT 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("most ordered destination: %w", err)
	}
	return &m, nil
}
