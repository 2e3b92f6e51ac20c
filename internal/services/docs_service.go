package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"travelapp/internal/domain"
	"travelapp/internal/domain/models"
	"travelapp/internal/repositories"
	"travelapp/internal/utils"
)

// DocsService membuat invoice PDF untuk order yang sudah dibayar.
type DocsService struct {
	Orders  OrderService
	Catalog CatalogReader
	Now     func() time.Time
}

type invoiceData struct {
	Order        models.PersistedOrder
	Destinations []models.CatalogItem
	Experiences  []models.CatalogItem
	Lodging      string
	IssuedAt     time.Time
}

func (s DocsService) GenerateInvoice(ctx context.Context, rc domain.RequestContext, kind models.OrderKind, id int64) ([]byte, string, error) {
	o, err := s.Orders.Get(ctx, rc, kind, id)
	if err != nil {
		return nil, "", err
	}
	d := invoiceData{Order: o, IssuedAt: time.Now()}
	if s.Now != nil {
		d.IssuedAt = s.Now()
	}

	if s.Catalog != nil {
		destIDs := o.DestinationIDs
		if o.DestinationID != "" {
			destIDs = append([]string{o.DestinationID}, destIDs...)
		}
		if d.Destinations, err = s.Catalog.FindByIDs(ctx, repositories.TableDestinations, destIDs); err != nil {
			return nil, "", err
		}
		if d.Experiences, err = s.Catalog.FindByIDs(ctx, repositories.TableExperiences, o.ExperienceIDs); err != nil {
			return nil, "", err
		}
		if o.LodgingID != "" {
			if l, err := s.Catalog.Get(ctx, repositories.TableLodgings, o.LodgingID); err == nil {
				d.Lodging = l.Name
			}
		}
	}
	return buildInvoicePDF(d)
}

func invoiceNumber(o models.PersistedOrder) string {
	prefix := "REG"
	if o.Kind == models.KindPackageOrder {
		prefix = "PKG"
	}
	return fmt.Sprintf("INV-%s-%d", prefix, o.ID)
}

func buildInvoicePDF(d invoiceData) ([]byte, string, error) {
	o := d.Order
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "No Invoice   : "+invoiceNumber(o))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Order ID     : "+o.GatewayOrderID)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Tanggal      : "+d.IssuedAt.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Ditagihkan kepada:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Nama   : "+safe(strings.Join(o.MemberNames, ", "), "-"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "No HP  : "+safe(o.Phone, "-"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Rincian:")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)

	lines := []string{}
	if o.Kind == models.KindPackageOrder {
		lines = append(lines, fmt.Sprintf("Paket %s, %d hari", safe(string(o.PackageType), "-"), o.DurationDays))
	} else {
		lines = append(lines, fmt.Sprintf("Tiket reguler, %d orang, %d hari", o.Qty, o.DurationDays))
	}
	lines = append(lines,
		"Tanggal perjalanan : "+safe(o.TravelDate, "-"),
		"Penjemputan        : "+models.PickupLocation(o.PickupLocation).Label(),
		"Destinasi          : "+safe(itemNames(d.Destinations), "-"),
		"Experience         : "+safe(itemNames(d.Experiences), "-"),
	)
	if d.Lodging != "" || o.LodgingID != "" {
		lines = append(lines, "Penginapan         : "+safe(d.Lodging, o.LodgingID))
	}
	for i, l := range lines {
		pdf.MultiCell(0, 6, fmt.Sprintf("%d) %s", i+1, l), "", "", false)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatRupiah(o.TotalCost))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Invoice ini diterbitkan otomatis setelah pembayaran diterima.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	name := ""
	if len(o.MemberNames) > 0 {
		name = o.MemberNames[0]
	}
	filename := fmt.Sprintf("INVOICE_%s_%s.pdf", invoiceNumber(o), utils.SafeFilenamePart(name))
	return buf.Bytes(), filename, nil
}

func itemNames(items []models.CatalogItem) string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return strings.Join(names, ", ")
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
