package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"travelapp/internal/domain"
	"travelapp/internal/domain/models"
)

type fakeOrders struct {
	orders []models.PersistedOrder
}

func (f fakeOrders) ListByUser(_ context.Context, userID string) ([]models.PersistedOrder, error) {
	out := []models.PersistedOrder{}
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f fakeOrders) ListAll(context.Context) ([]models.PersistedOrder, error) {
	return f.orders, nil
}

func (f fakeOrders) GetByID(_ context.Context, kind models.OrderKind, id int64) (models.PersistedOrder, error) {
	for _, o := range f.orders {
		if o.Kind == kind && o.ID == id {
			return o, nil
		}
	}
	return models.PersistedOrder{}, domain.NotFoundError{Resource: "order"}
}

func sampleOrders() fakeOrders {
	created := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	return fakeOrders{orders: []models.PersistedOrder{
		{
			ID: 1, GatewayOrderID: "PKG-1", Kind: models.KindPackageOrder, UserID: "42",
			PackageType: models.PackageTravelling, PickupLocation: "wonosobo", DurationDays: 1,
			MemberNames: []string{"Ani", "Budi"}, Phone: "0812", TravelDate: "2026-11-01",
			TotalCost: 2400000, LodgingID: "L1", ExperienceIDs: []string{"E1"},
			DestinationIDs: []string{"D1", "D2"}, CreatedAt: created,
		},
		{
			ID: 1, GatewayOrderID: "REG-1", Kind: models.KindRegularOrder, UserID: "7",
			DestinationID: "D1", Qty: 1, PickupLocation: "magelang", DurationDays: 1,
			MemberNames: []string{"Citra"}, Phone: "0813", TravelDate: "2026-12-01",
			TotalCost: 150000, ExperienceIDs: []string{}, CreatedAt: created,
		},
	}}
}

func TestOrderServiceOwnership(t *testing.T) {
	svc := OrderService{Orders: sampleOrders()}
	ctx := context.Background()

	mine, err := svc.ListMine(ctx, domain.RequestContext{UserID: 42, Role: "user"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "PKG-1", mine[0].GatewayOrderID)

	_, err = svc.ListMine(ctx, domain.RequestContext{})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Get(ctx, domain.RequestContext{UserID: 42}, models.KindPackageOrder, 1)
	assert.NoError(t, err)

	_, err = svc.Get(ctx, domain.RequestContext{UserID: 42}, models.KindRegularOrder, 1)
	assert.True(t, domain.IsNotFound(err))

	_, err = svc.Get(ctx, domain.RequestContext{UserID: 1, Role: "admin"}, models.KindRegularOrder, 1)
	assert.NoError(t, err)
}

func TestGenerateInvoice(t *testing.T) {
	svc := DocsService{
		Orders:  OrderService{Orders: sampleOrders()},
		Catalog: newFakeCatalog(),
		Now:     func() time.Time { return time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC) },
	}

	pdf, filename, err := svc.GenerateInvoice(context.Background(), domain.RequestContext{UserID: 42}, models.KindPackageOrder, 1)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Equal(t, "INVOICE_INV-PKG-1_Ani.pdf", filename)

	_, _, err = svc.GenerateInvoice(context.Background(), domain.RequestContext{UserID: 42}, models.KindRegularOrder, 1)
	assert.True(t, domain.IsNotFound(err))
}

func TestExportOrdersWritesBothSheets(t *testing.T) {
	svc := ExportService{
		Orders: sampleOrders(),
		Now:    func() time.Time { return time.Date(2026, 10, 17, 12, 30, 0, 0, time.UTC) },
	}
	data, filename, err := svc.ExportOrders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "orders_20261017_123000.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(sheetPackageOrders, "B2")
	require.NoError(t, err)
	assert.Equal(t, "PKG-1", v)
	v, err = f.GetCellValue(sheetPackageOrders, "K2")
	require.NoError(t, err)
	assert.Equal(t, "D1, D2", v)

	v, err = f.GetCellValue(sheetRegularOrders, "C2")
	require.NoError(t, err)
	assert.Equal(t, "D1", v)
}

type fakeStats struct {
	counts map[string]int64
	months []models.MonthlyRevenue
	top    *models.MostOrdered
	err    error
}

func (f fakeStats) Count(_ context.Context, table string) (int64, error) {
	return f.counts[table], nil
}

func (f fakeStats) RevenueByMonth(context.Context, int) ([]models.MonthlyRevenue, error) {
	return f.months, f.err
}

func (f fakeStats) MostOrderedDestination(context.Context) (*models.MostOrdered, error) {
	return f.top, nil
}

func TestDashboardStats(t *testing.T) {
	svc := DashboardService{Reader: fakeStats{
		counts: map[string]int64{"users": 10, "destinations": 4, "orders": 3, "package_orders": 2},
		months: []models.MonthlyRevenue{{Month: 9, Revenue: 1000}, {Month: 10, Revenue: 2500}},
		top:    &models.MostOrdered{DestinationID: "D1", Name: "Dieng", Orders: 5},
	}}

	got, err := svc.Stats(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, 2026, got.Year)
	assert.Equal(t, int64(10), got.Users)
	assert.Equal(t, int64(3), got.RegularOrders)
	assert.Equal(t, int64(2), got.PackageOrders)
	assert.Equal(t, int64(3500), got.Revenue.Total)
	assert.Equal(t, "Dieng", got.MostOrdered.Name)

	_, err = DashboardService{Reader: fakeStats{err: errors.New("boom")}}.Stats(context.Background(), 2026)
	assert.Error(t, err)
}

func TestDashboardDefaultsToCurrentYear(t *testing.T) {
	svc := DashboardService{
		Reader: fakeStats{},
		Now:    func() time.Time { return time.Date(2027, 1, 2, 0, 0, 0, 0, time.UTC) },
	}
	got, err := svc.Stats(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 2027, got.Year)
	assert.NotNil(t, got.Revenue.Months)
	assert.Nil(t, got.MostOrdered)
}

func TestSummarizeResolvesNames(t *testing.T) {
	svc := SummaryService{Catalog: newFakeCatalog()}
	sum, err := svc.Summarize(context.Background(), models.OrderDraft{
		PackageType:    models.PackageTravelling,
		MemberNames:    []string{"Ani"},
		PickupLocation: models.PickupYogyakarta,
		DestinationIDs: []string{"D2", "D1"},
		ExperienceIDs:  []string{"E1"},
		LodgingID:      "L1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Yogyakarta", sum.PickupLocation)
	require.Len(t, sum.Destinations, 2)
	assert.Equal(t, "Borobudur", sum.Destinations[0].Name)
	assert.Equal(t, "Sunrise Sikunir", sum.Experiences[0].Name)
	require.NotNil(t, sum.Lodging)
	assert.Equal(t, "Homestay Dieng", sum.Lodging.Name)
	assert.Equal(t, int64(1200000), sum.Pricing.TotalPrice)

	_, err = svc.Summarize(context.Background(), models.OrderDraft{
		PackageType: models.PackageTravelling,
		MemberNames: []string{"Ani"},
		LodgingID:   "L404",
	})
	assert.True(t, domain.IsValidation(err))
}
