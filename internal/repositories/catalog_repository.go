package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	intconfig "travelapp/internal/config"
	intdb "travelapp/internal/db"
	"travelapp/internal/domain"
	"travelapp/internal/domain/models"
)

const (
	TableLodgings     = "lodgings"
	TableExperiences  = "experiences"
	TableDestinations = "destinations"
)

// CatalogRepository reads the reference tables maintained by the admin side.
// A missing table reads as an empty catalog.
type CatalogRepository struct {
	DB *sql.DB
}

func (r CatalogRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func catalogTable(table string) error {
	switch table {
	case TableLodgings, TableExperiences, TableDestinations:
		return nil
	default:
		return fmt.Errorf("tabel katalog tidak dikenal: %s", table)
	}
}

func (r CatalogRepository) List(ctx context.Context, table string) ([]models.CatalogItem, error) {
	if err := catalogTable(table); err != nil {
		return nil, err
	}
	db := r.db()
	items := []models.CatalogItem{}
	if db == nil || !intdb.HasTable(ctx, db, table) {
		return items, nil
	}
	x := sqlx.NewDb(db, "mysql")
	if err := x.SelectContext(ctx, &items, "SELECT id, name, price FROM "+table+" ORDER BY name"); err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	return items, nil
}

// FindByIDs resolves ids to items, in the order of ids. Unknown ids are skipped.
func (r CatalogRepository) FindByIDs(ctx context.Context, table string, ids []string) ([]models.CatalogItem, error) {
	if err := catalogTable(table); err != nil {
		return nil, err
	}
	ids = models.UniqueIDs(ids)
	db := r.db()
	if len(ids) == 0 || db == nil || !intdb.HasTable(ctx, db, table) {
		return []models.CatalogItem{}, nil
	}
	x := sqlx.NewDb(db, "mysql")
	query, args, err := sqlx.In("SELECT id, name, price FROM "+table+" WHERE id IN (?)", ids)
	if err != nil {
		return nil, err
	}
	found := []models.CatalogItem{}
	if err := x.SelectContext(ctx, &found, x.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	byID := make(map[string]models.CatalogItem, len(found))
	for _, it := range found {
		byID[it.ID] = it
	}
	out := make([]models.CatalogItem, 0, len(ids))
	for _, id := range ids {
		if it, ok := byID[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r CatalogRepository) Get(ctx context.Context, table, id string) (models.CatalogItem, error) {
	if err := catalogTable(table); err != nil {
		return models.CatalogItem{}, err
	}
	db := r.db()
	if db == nil || !intdb.HasTable(ctx, db, table) {
		return models.CatalogItem{}, domain.NotFoundError{Resource: table}
	}
	var it models.CatalogItem
	err := sqlx.NewDb(db, "mysql").GetContext(ctx, &it, "SELECT id, name, price FROM "+table+" WHERE id = ? LIMIT 1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CatalogItem{}, domain.NotFoundError{Resource: table, Err: err}
		}
		return models.CatalogItem{}, err
	}
	return it, nil
}
