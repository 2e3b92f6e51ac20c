package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestHasTable(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer conn.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("destinations").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("destinations"))
	mock.ExpectQuery("information_schema\\.tables").WithArgs("lodgings").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
	mock.ExpectQuery("information_schema\\.tables").WithArgs("experiences").
		WillReturnError(errors.New("bad connection"))

	ctx := context.Background()
	if !HasTable(ctx, conn, "destinations") {
		t.Fatalf("destinations should exist")
	}
	if HasTable(ctx, conn, "lodgings") {
		t.Fatalf("lodgings should not exist")
	}
	if HasTable(ctx, conn, "experiences") {
		t.Fatalf("query error should read as missing table")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestIsDuplicateKey(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'PKG-1' for key 'uniq_gateway_order'"}
	if !IsDuplicateKey(fmt.Errorf("insert: %w", dup)) {
		t.Fatalf("wrapped 1062 should be a duplicate")
	}
	if IsDuplicateKey(&mysql.MySQLError{Number: 1452}) {
		t.Fatalf("foreign key failure is not a duplicate")
	}
	if IsDuplicateKey(errors.New("boom")) {
		t.Fatalf("plain error is not a duplicate")
	}
}

func TestNullIfEmpty(t *testing.T) {
	if NullIfEmpty("") != nil {
		t.Fatalf("empty should be nil")
	}
	if NullIfEmpty("L1") != "L1" {
		t.Fatalf("non-empty should pass through")
	}
}
