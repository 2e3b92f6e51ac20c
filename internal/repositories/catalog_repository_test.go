package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelapp/internal/domain"
)

func expectTable(mock sqlmock.Sqlmock, table string, exists bool) {
	rows := sqlmock.NewRows([]string{"table_name"})
	if exists {
		rows.AddRow(table)
	}
	mock.ExpectQuery("information_schema\\.tables").WithArgs(table).WillReturnRows(rows)
}

func TestCatalogListMissingTableIsEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectTable(mock, TableLodgings, false)

	items, err := CatalogRepository{DB: db}.List(context.Background(), TableLodgings)
	require.NoError(t, err)
	assert.Empty(t, items)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogFindByIDsKeepsRequestOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectTable(mock, TableDestinations, true)
	mock.ExpectQuery("FROM destinations WHERE id IN \\(\\?, \\?, \\?\\)").WithArgs("D2", "D1", "DX").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}).
			AddRow("D1", "Dieng", 150000).
			AddRow("D2", "Borobudur", 50000))

	items, err := CatalogRepository{DB: db}.FindByIDs(context.Background(), TableDestinations, []string{"D2", "D1", "D2", "DX"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Borobudur", items[0].Name)
	assert.Equal(t, "Dieng", items[1].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectTable(mock, TableDestinations, true)
	mock.ExpectQuery("FROM destinations WHERE id = \\?").WithArgs("D1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}).AddRow("D1", "Dieng", 150000))
	expectTable(mock, TableDestinations, true)
	mock.ExpectQuery("FROM destinations WHERE id = \\?").WithArgs("D9").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}))

	repo := CatalogRepository{DB: db}
	it, err := repo.Get(context.Background(), TableDestinations, "D1")
	require.NoError(t, err)
	assert.Equal(t, int64(150000), it.Price)

	_, err = repo.Get(context.Background(), TableDestinations, "D9")
	assert.True(t, domain.IsNotFound(err))

	_, err = repo.List(context.Background(), "users")
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsCountMissingTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectTable(mock, "orders", true)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM orders").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(4))
	expectTable(mock, "package_orders", false)

	repo := StatsRepository{DB: db}
	n, err := repo.Count(context.Background(), "orders")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	n, err = repo.Count(context.Background(), "package_orders")
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = repo.Count(context.Background(), "payment_notifications; DROP TABLE users")
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsMostOrderedEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("JOIN destinations d").WillReturnRows(sqlmock.NewRows([]string{"destination_id", "name", "orders"}))

	m, err := StatsRepository{DB: db}.MostOrderedDestination(context.Background())
	require.NoError(t, err)
	assert.Nil(t, m)
	require.NoError(t, mock.ExpectationsWereMet())
}
