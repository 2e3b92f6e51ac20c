package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"travelapp/internal/domain/models"
	"travelapp/internal/repositories"
)

type StatsReader interface {
	Count(ctx context.Context, table string) (int64, error)
	RevenueByMonth(ctx context.Context, year int) ([]models.MonthlyRevenue, error)
	MostOrderedDestination(ctx context.Context) (*models.MostOrdered, error)
}

type DashboardService struct {
	Reader StatsReader
	Now    func() time.Time
}

// Stats runs the independent dashboard queries concurrently.
func (s DashboardService) Stats(ctx context.Context, year int) (models.DashboardStats, error) {
	if year <= 0 {
		now := time.Now()
		if s.Now != nil {
			now = s.Now()
		}
		year = now.Year()
	}
	out := models.DashboardStats{Year: year}

	counts := []struct {
		table string
		dst   *int64
	}{
		{"users", &out.Users},
		{repositories.TableDestinations, &out.Destinations},
		{repositories.TableExperiences, &out.Experiences},
		{repositories.TableLodgings, &out.Lodgings},
		{"orders", &out.RegularOrders},
		{"package_orders", &out.PackageOrders},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range counts {
		c := c
		g.Go(func() error {
			n, err := s.Reader.Count(gctx, c.table)
			*c.dst = n
			return err
		})
	}
	g.Go(func() error {
		months, err := s.Reader.RevenueByMonth(gctx, year)
		if err != nil {
			return err
		}
		out.Revenue.Months = months
		for _, m := range months {
			out.Revenue.Total += m.Revenue
		}
		return nil
	})
	g.Go(func() error {
		m, err := s.Reader.MostOrderedDestination(gctx)
		out.MostOrdered = m
		return err
	})

	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, err
	}
	if out.Revenue.Months == nil {
		out.Revenue.Months = []models.MonthlyRevenue{}
	}
	return out, nil
}
