package services

import (
	"context"
	"fmt"

	"travelapp/internal/domain"
	"travelapp/internal/domain/models"
	"travelapp/internal/repositories"
	"travelapp/internal/utils"
)

// CatalogReader is the read side of the catalog tables.
type CatalogReader interface {
	List(ctx context.Context, table string) ([]models.CatalogItem, error)
	FindByIDs(ctx context.Context, table string, ids []string) ([]models.CatalogItem, error)
	Get(ctx context.Context, table, id string) (models.CatalogItem, error)
}

// Price menghitung total biaya paket: harga per orang x jumlah anggota.
func Price(pkg models.PackageType, memberCount int) (models.PricingResult, error) {
	if memberCount < 1 {
		return models.PricingResult{}, domain.ValidationError{Field: "nama", Msg: "minimal 1 anggota"}
	}
	unit, ok := utils.PackageFare(string(pkg))
	if !ok {
		return models.PricingResult{}, domain.ValidationError{Field: "selectedPackage", Msg: fmt.Sprintf("paket tidak dikenal: %q", pkg)}
	}
	return models.PricingResult{
		UnitPrice:   unit,
		MemberCount: memberCount,
		TotalPrice:  unit * int64(memberCount),
	}, nil
}

type PricingService struct {
	Catalog CatalogReader
}

// Quote prices a package draft after dropping blank member names.
func (s PricingService) Quote(d models.OrderDraft) (models.PricingResult, error) {
	d = d.Normalize()
	return Price(d.PackageType, len(d.MemberNames))
}

// QuoteRegular prices a regular order from the destination's catalog price.
func (s PricingService) QuoteRegular(ctx context.Context, d models.RegularOrderDraft) (models.PricingResult, error) {
	d = d.Normalize()
	if d.DestinationID == "" {
		return models.PricingResult{}, domain.ValidationError{Field: "destinationId", Msg: "destinasi wajib dipilih"}
	}
	if len(d.MemberNames) < 1 {
		return models.PricingResult{}, domain.ValidationError{Field: "nama", Msg: "minimal 1 anggota"}
	}
	if s.Catalog == nil {
		return models.PricingResult{}, domain.InternalError{Msg: "katalog tidak tersedia"}
	}
	dest, err := s.Catalog.Get(ctx, repositories.TableDestinations, d.DestinationID)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.PricingResult{}, domain.ValidationError{Field: "destinationId", Msg: "destinasi tidak ditemukan", Err: err}
		}
		return models.PricingResult{}, err
	}
	if dest.Price <= 0 {
		return models.PricingResult{}, domain.ValidationError{Field: "destinationId", Msg: "harga destinasi belum diatur"}
	}
	return models.PricingResult{
		UnitPrice:   dest.Price,
		MemberCount: len(d.MemberNames),
		TotalPrice:  dest.Price * int64(len(d.MemberNames)),
	}, nil
}
