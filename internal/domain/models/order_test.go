package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderDraftNormalize(t *testing.T) {
	d := OrderDraft{
		PackageType:    " Travelling ",
		MemberNames:    []string{" Ani ", "", "   ", "Budi  Santoso"},
		Phone:          " 0812 ",
		PickupLocation: "Yogyakarta",
		DestinationIDs: []string{"D1", "D2", "D1", " "},
		ExperienceIDs:  []string{"E1", "E1"},
		LodgingID:      " L1 ",
	}.Normalize()

	assert.Equal(t, PackageTravelling, d.PackageType)
	assert.Equal(t, []string{"Ani", "Budi Santoso"}, d.MemberNames)
	assert.Equal(t, "0812", d.Phone)
	assert.Equal(t, PickupYogyakarta, d.PickupLocation)
	assert.Equal(t, []string{"D1", "D2"}, d.DestinationIDs)
	assert.Equal(t, []string{"E1"}, d.ExperienceIDs)
	assert.Equal(t, "L1", d.LodgingID)
}

func TestOrderDraftNormalizeHealingDropsExtras(t *testing.T) {
	d := OrderDraft{
		PackageType:   PackageHealing,
		MemberNames:   []string{"Ani"},
		ExperienceIDs: []string{"E1"},
		LodgingID:     "L1",
	}.Normalize()

	assert.Empty(t, d.ExperienceIDs)
	assert.Empty(t, d.LodgingID)
}

func TestTransactionStatusClassification(t *testing.T) {
	for _, s := range []string{"deny", "cancel", "expire", "failure"} {
		st, ok := ParseTransactionStatus(s)
		assert.True(t, ok, s)
		assert.True(t, st.IsRejected(), s)
		assert.False(t, st.IsPaid(), s)
	}
	for _, s := range []string{"settlement", "CAPTURE"} {
		st, ok := ParseTransactionStatus(s)
		assert.True(t, ok, s)
		assert.True(t, st.IsPaid(), s)
	}
	st, ok := ParseTransactionStatus("pending")
	assert.True(t, ok)
	assert.False(t, st.IsPaid())
	assert.False(t, st.IsRejected())

	_, ok = ParseTransactionStatus("refund")
	assert.False(t, ok)
}

func TestPickupLocation(t *testing.T) {
	assert.True(t, PickupMagelang.Valid())
	assert.False(t, PickupLocation("jakarta").Valid())
	assert.Equal(t, "Wonosobo", PickupWonosobo.Label())
}
