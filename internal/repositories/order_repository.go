package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	intconfig "travelapp/internal/config"
	intdb "travelapp/internal/db"
	"travelapp/internal/domain"
	"travelapp/internal/domain/models"
)

// OrderRepository stores paid orders. Writes go through database/sql
// transactions, reads through sqlx.
type OrderRepository struct {
	DB *sql.DB
}

func (r OrderRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r OrderRepository) dbx() *sqlx.DB {
	return sqlx.NewDb(r.db(), "mysql")
}

type orderTables struct {
	orders      string
	owner       string
	experiences string
	// destinations is empty for regular orders
	destinations string
}

func tablesFor(kind models.OrderKind) (orderTables, error) {
	switch kind {
	case models.KindPackageOrder:
		return orderTables{
			orders:       "package_orders",
			owner:        "package_order_id",
			experiences:  "package_order_experiences",
			destinations: "package_order_destinations",
		}, nil
	case models.KindRegularOrder:
		return orderTables{
			orders:      "orders",
			owner:       "order_id",
			experiences: "order_experiences",
		}, nil
	default:
		return orderTables{}, domain.UnrecognizedOrderKindError{Kind: string(kind)}
	}
}

// CreatePackageOrder inserts the order row and its experience and destination
// links in one transaction. A second insert for the same gateway order id
// returns domain.ConflictError and leaves nothing behind.
func (r OrderRepository) CreatePackageOrder(ctx context.Context, o models.PersistedOrder) (int64, error) {
	names, err := json.Marshal(o.MemberNames)
	if err != nil {
		return 0, err
	}
	db := r.db()
	if db == nil {
		return 0, fmt.Errorf("database belum terkoneksi")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO package_orders
			(gateway_order_id, user_id, package_type, pickup_location, duration_days,
			 member_names, phone, travel_date, total_cost, lodging_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.GatewayOrderID,
		intdb.NullIfEmpty(o.UserID),
		string(o.PackageType),
		o.PickupLocation,
		o.DurationDays,
		string(names),
		o.Phone,
		o.TravelDate,
		o.TotalCost,
		intdb.NullIfEmpty(o.LodgingID),
	)
	if err != nil {
		return 0, insertOrderError("package_orders", o.GatewayOrderID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	if err := insertLinks(ctx, tx, "package_order_experiences", "package_order_id", "experience_id", id, o.ExperienceIDs); err != nil {
		return 0, err
	}
	if err := insertLinks(ctx, tx, "package_order_destinations", "package_order_id", "destination_id", id, o.DestinationIDs); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// CreateRegularOrder is the regular-order counterpart of CreatePackageOrder.
func (r OrderRepository) CreateRegularOrder(ctx context.Context, o models.PersistedOrder) (int64, error) {
	names, err := json.Marshal(o.MemberNames)
	if err != nil {
		return 0, err
	}
	db := r.db()
	if db == nil {
		return 0, fmt.Errorf("database belum terkoneksi")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qty := o.Qty
	if qty <= 0 {
		qty = len(o.MemberNames)
	}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO orders
			(gateway_order_id, user_id, destination_id, qty, pickup_location, duration_days,
			 member_names, phone, travel_date, total_cost, lodging_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.GatewayOrderID,
		intdb.NullIfEmpty(o.UserID),
		o.DestinationID,
		qty,
		o.PickupLocation,
		o.DurationDays,
		string(names),
		o.Phone,
		o.TravelDate,
		o.TotalCost,
		intdb.NullIfEmpty(o.LodgingID),
	)
	if err != nil {
		return 0, insertOrderError("orders", o.GatewayOrderID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	if err := insertLinks(ctx, tx, "order_experiences", "order_id", "experience_id", id, o.ExperienceIDs); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

func insertOrderError(table, gatewayOrderID string, err error) error {
	if intdb.IsDuplicateKey(err) {
		return domain.ConflictError{Resource: table, Msg: "order " + gatewayOrderID + " sudah tercatat", Err: err}
	}
	return fmt.Errorf("insert %s: %w", table, err)
}

// insertLinks writes all refs for one owner with a single multi-row INSERT.
func insertLinks(ctx context.Context, tx *sql.Tx, table, ownerCol, refCol string, ownerID int64, refs []string) error {
	refs = models.UniqueIDs(refs)
	if len(refs) == 0 {
		return nil
	}
	placeholders := make([]string, 0, len(refs))
	args := make([]any, 0, len(refs)*2)
	for _, ref := range refs {
		placeholders = append(placeholders, "(?, ?)")
		args = append(args, ownerID, ref)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES %s", table, ownerCol, refCol, strings.Join(placeholders, ", "))
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

// FindIDByGatewayOrderID returns the row id of an already stored order.
func (r OrderRepository) FindIDByGatewayOrderID(ctx context.Context, kind models.OrderKind, gatewayOrderID string) (int64, error) {
	t, err := tablesFor(kind)
	if err != nil {
		return 0, err
	}
	var id int64
	err = r.db().QueryRowContext(ctx, "SELECT id FROM "+t.orders+" WHERE gateway_order_id = ? LIMIT 1", gatewayOrderID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.NotFoundError{Resource: "order", Err: err}
	}
	return id, err
}

type orderRow struct {
	ID             int64     `db:"id"`
	GatewayOrderID string    `db:"gateway_order_id"`
	UserID         string    `db:"user_id"`
	PackageType    string    `db:"package_type"`
	PickupLocation string    `db:"pickup_location"`
	DurationDays   int       `db:"duration_days"`
	MemberNames    string    `db:"member_names"`
	Phone          string    `db:"phone"`
	TravelDate     string    `db:"travel_date"`
	TotalCost      int64     `db:"total_cost"`
	LodgingID      string    `db:"lodging_id"`
	DestinationID  string    `db:"destination_id"`
	Qty            int       `db:"qty"`
	CreatedAt      time.Time `db:"created_at"`
}

const packageOrderColumns = `id, gateway_order_id, COALESCE(user_id, '') AS user_id, package_type,
	pickup_location, duration_days, member_names, phone, travel_date, total_cost,
	COALESCE(lodging_id, '') AS lodging_id, '' AS destination_id, 0 AS qty, created_at`

const regularOrderColumns = `id, gateway_order_id, COALESCE(user_id, '') AS user_id, '' AS package_type,
	pickup_location, duration_days, member_names, phone, travel_date, total_cost,
	COALESCE(lodging_id, '') AS lodging_id, destination_id, qty, created_at`

func columnsFor(kind models.OrderKind) string {
	if kind == models.KindRegularOrder {
		return regularOrderColumns
	}
	return packageOrderColumns
}

func (row orderRow) toModel(kind models.OrderKind) models.PersistedOrder {
	var names []string
	if err := json.Unmarshal([]byte(row.MemberNames), &names); err != nil {
		names = models.CleanNames([]string{row.MemberNames})
	}
	return models.PersistedOrder{
		ID:             row.ID,
		GatewayOrderID: row.GatewayOrderID,
		Kind:           kind,
		UserID:         row.UserID,
		PackageType:    models.PackageType(row.PackageType),
		PickupLocation: row.PickupLocation,
		DurationDays:   row.DurationDays,
		MemberNames:    names,
		Phone:          row.Phone,
		TravelDate:     row.TravelDate,
		TotalCost:      row.TotalCost,
		LodgingID:      row.LodgingID,
		DestinationID:  row.DestinationID,
		Qty:            row.Qty,
		ExperienceIDs:  []string{},
		CreatedAt:      row.CreatedAt,
	}
}

// GetByID loads one order with its links.
func (r OrderRepository) GetByID(ctx context.Context, kind models.OrderKind, id int64) (models.PersistedOrder, error) {
	if id <= 0 {
		return models.PersistedOrder{}, domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}
	t, err := tablesFor(kind)
	if err != nil {
		return models.PersistedOrder{}, err
	}
	x := r.dbx()

	var row orderRow
	if err := x.GetContext(ctx, &row, "SELECT "+columnsFor(kind)+" FROM "+t.orders+" WHERE id = ? LIMIT 1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PersistedOrder{}, domain.NotFoundError{Resource: "order", Err: err}
		}
		return models.PersistedOrder{}, err
	}
	orders := []models.PersistedOrder{row.toModel(kind)}
	if err := loadLinks(ctx, x, t, orders); err != nil {
		return models.PersistedOrder{}, err
	}
	return orders[0], nil
}

// ListByUser returns the user's package and regular orders, newest first.
func (r OrderRepository) ListByUser(ctx context.Context, userID string) ([]models.PersistedOrder, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.ValidationError{Field: "user_id", Msg: "user tidak valid"}
	}
	return r.list(ctx, "WHERE user_id = ?", userID)
}

// ListAll returns every stored order, newest first.
func (r OrderRepository) ListAll(ctx context.Context) ([]models.PersistedOrder, error) {
	return r.list(ctx, "")
}

func (r OrderRepository) list(ctx context.Context, where string, args ...any) ([]models.PersistedOrder, error) {
	x := r.dbx()
	out := []models.PersistedOrder{}
	for _, kind := range []models.OrderKind{models.KindPackageOrder, models.KindRegularOrder} {
		t, _ := tablesFor(kind)
		rows := []orderRow{}
		query := "SELECT " + columnsFor(kind) + " FROM " + t.orders + " " + where + " ORDER BY created_at DESC, id DESC"
		if err := x.SelectContext(ctx, &rows, query, args...); err != nil {
			return nil, fmt.Errorf("list %s: %w", t.orders, err)
		}
		orders := make([]models.PersistedOrder, 0, len(rows))
		for _, row := range rows {
			orders = append(orders, row.toModel(kind))
		}
		if err := loadLinks(ctx, x, t, orders); err != nil {
			return nil, err
		}
		out = append(out, orders...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

type linkRow struct {
	OwnerID int64  `db:"owner_id"`
	RefID   string `db:"ref_id"`
}

func loadLinks(ctx context.Context, x *sqlx.DB, t orderTables, orders []models.PersistedOrder) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(orders))
	index := make(map[int64]int, len(orders))
	for i, o := range orders {
		ids = append(ids, o.ID)
		index[o.ID] = i
	}

	experiences, err := selectLinks(ctx, x, t.experiences, t.owner, "experience_id", ids)
	if err != nil {
		return err
	}
	for _, l := range experiences {
		if i, ok := index[l.OwnerID]; ok {
			orders[i].ExperienceIDs = append(orders[i].ExperienceIDs, l.RefID)
		}
	}

	if t.destinations == "" {
		return nil
	}
	for i := range orders {
		orders[i].DestinationIDs = []string{}
	}
	destinations, err := selectLinks(ctx, x, t.destinations, t.owner, "destination_id", ids)
	if err != nil {
		return err
	}
	for _, l := range destinations {
		if i, ok := index[l.OwnerID]; ok {
			orders[i].DestinationIDs = append(orders[i].DestinationIDs, l.RefID)
		}
	}
	return nil
}

func selectLinks(ctx context.Context, x *sqlx.DB, table, ownerCol, refCol string, ids []int64) ([]linkRow, error) {
	query, args, err := sqlx.In(
		fmt.Sprintf("SELECT %s AS owner_id, %s AS ref_id FROM %s WHERE %s IN (?) ORDER BY %s, %s", ownerCol, refCol, table, ownerCol, ownerCol, refCol),
		ids,
	)
	if err != nil {
		return nil, err
	}
	links := []linkRow{}
	if err := x.SelectContext(ctx, &links, x.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	return links, nil
}
