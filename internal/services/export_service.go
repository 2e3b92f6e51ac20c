package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"travelapp/internal/domain/models"
)

const (
	sheetPackageOrders = "Paket"
	sheetRegularOrders = "Reguler"
)

// ExportService renders every stored order to an XLSX workbook for staff.
type ExportService struct {
	Orders OrderReader
	Now    func() time.Time
}

func (s ExportService) ExportOrders(ctx context.Context) ([]byte, string, error) {
	orders, err := s.Orders.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetPackageOrders); err != nil {
		return nil, "", err
	}
	if _, err := f.NewSheet(sheetRegularOrders); err != nil {
		return nil, "", err
	}

	pkgHeader := []any{"ID", "Order ID", "Paket", "Nama", "No HP", "Penjemputan", "Tanggal", "Hari", "Penginapan", "Experience", "Destinasi", "Total", "Dibuat"}
	regHeader := []any{"ID", "Order ID", "Destinasi", "Qty", "Nama", "No HP", "Penjemputan", "Tanggal", "Hari", "Penginapan", "Experience", "Total", "Dibuat"}
	if err := f.SetSheetRow(sheetPackageOrders, "A1", &pkgHeader); err != nil {
		return nil, "", err
	}
	if err := f.SetSheetRow(sheetRegularOrders, "A1", &regHeader); err != nil {
		return nil, "", err
	}

	pkgRow, regRow := 2, 2
	for _, o := range orders {
		var (
			sheet string
			row   []any
			n     int
		)
		if o.Kind == models.KindPackageOrder {
			sheet, n = sheetPackageOrders, pkgRow
			pkgRow++
			row = []any{o.ID, o.GatewayOrderID, string(o.PackageType), strings.Join(o.MemberNames, ", "), o.Phone,
				o.PickupLocation, o.TravelDate, o.DurationDays, o.LodgingID, strings.Join(o.ExperienceIDs, ", "),
				strings.Join(o.DestinationIDs, ", "), o.TotalCost, o.CreatedAt.Format("2006-01-02 15:04")}
		} else {
			sheet, n = sheetRegularOrders, regRow
			regRow++
			row = []any{o.ID, o.GatewayOrderID, o.DestinationID, o.Qty, strings.Join(o.MemberNames, ", "), o.Phone,
				o.PickupLocation, o.TravelDate, o.DurationDays, o.LodgingID, strings.Join(o.ExperienceIDs, ", "),
				o.TotalCost, o.CreatedAt.Format("2006-01-02 15:04")}
		}
		cell, err := excelize.CoordinatesToCellName(1, n)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, "", err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", err
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	return buf.Bytes(), fmt.Sprintf("orders_%s.xlsx", now.Format("20060102_150405")), nil
}
