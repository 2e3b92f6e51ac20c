package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"travelapp/internal/domain"
	"travelapp/internal/domain/models"
	"travelapp/internal/repositories"
)

// SummaryService resolves a draft's catalog references to display names for
// the review step before payment.
type SummaryService struct {
	Catalog CatalogReader
}

func (s SummaryService) Summarize(ctx context.Context, d models.OrderDraft) (models.OrderSummary, error) {
	d = d.Normalize()
	pricing, err := Price(d.PackageType, len(d.MemberNames))
	if err != nil {
		return models.OrderSummary{}, err
	}
	if s.Catalog == nil {
		return models.OrderSummary{}, domain.InternalError{Msg: "katalog tidak tersedia"}
	}

	sum := models.OrderSummary{
		PackageType:    d.PackageType,
		MemberNames:    d.MemberNames,
		Phone:          d.Phone,
		PickupLocation: d.PickupLocation.Label(),
		TravelDate:     d.TravelDate,
		DurationDays:   d.PackageType.DurationDays(),
		Pricing:        pricing,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.Catalog.FindByIDs(gctx, repositories.TableDestinations, d.DestinationIDs)
		sum.Destinations = items
		return err
	})
	g.Go(func() error {
		items, err := s.Catalog.FindByIDs(gctx, repositories.TableExperiences, d.ExperienceIDs)
		sum.Experiences = items
		return err
	})
	if d.LodgingID != "" {
		g.Go(func() error {
			item, err := s.Catalog.Get(gctx, repositories.TableLodgings, d.LodgingID)
			if domain.IsNotFound(err) {
				return domain.ValidationError{Field: "penginapanId", Msg: "penginapan tidak ditemukan", Err: err}
			}
			if err != nil {
				return err
			}
			sum.Lodging = &item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.OrderSummary{}, err
	}
	return sum, nil
}
