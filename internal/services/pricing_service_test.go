package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelapp/internal/domain"
	"travelapp/internal/domain/models"
)

func TestPriceIsUnitTimesMembers(t *testing.T) {
	units := map[models.PackageType]int64{
		models.PackageHealing:    499000,
		models.PackageTravelling: 1200000,
	}
	for pkg, unit := range units {
		for n := 1; n <= 6; n++ {
			got, err := Price(pkg, n)
			require.NoError(t, err)
			assert.Equal(t, unit, got.UnitPrice)
			assert.Equal(t, n, got.MemberCount)
			assert.Equal(t, unit*int64(n), got.TotalPrice)
		}
	}
}

func TestPriceRejectsInvalidInput(t *testing.T) {
	_, err := Price(models.PackageHealing, 0)
	assert.True(t, domain.IsValidation(err))

	_, err = Price("honeymoon", 2)
	assert.True(t, domain.IsValidation(err))
}

func TestQuoteIgnoresBlankMembers(t *testing.T) {
	got, err := PricingService{}.Quote(models.OrderDraft{
		PackageType: "Travelling",
		MemberNames: []string{"Ani", "  ", "Budi", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2400000), got.TotalPrice)
}

func TestQuoteRegular(t *testing.T) {
	svc := PricingService{Catalog: newFakeCatalog()}
	ctx := context.Background()

	got, err := svc.QuoteRegular(ctx, models.RegularOrderDraft{DestinationID: "D1", MemberNames: []string{"Ani", "Budi", "Citra"}})
	require.NoError(t, err)
	assert.Equal(t, int64(150000), got.UnitPrice)
	assert.Equal(t, int64(450000), got.TotalPrice)

	_, err = svc.QuoteRegular(ctx, models.RegularOrderDraft{DestinationID: "D9", MemberNames: []string{"Ani"}})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.QuoteRegular(ctx, models.RegularOrderDraft{DestinationID: "D0", MemberNames: []string{"Ani"}})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.QuoteRegular(ctx, models.RegularOrderDraft{DestinationID: "D1"})
	assert.True(t, domain.IsValidation(err))
}
