package models

import (
	"strings"
	"time"

	"travelapp/internal/utils"
)

// PackageType is the bundled trip variant of a package order.
type PackageType string

const (
	PackageHealing    PackageType = "healing"
	PackageTravelling PackageType = "travelling"
)

func (p PackageType) Valid() bool {
	switch p {
	case PackageHealing, PackageTravelling:
		return true
	default:
		return false
	}
}

// DurationDays is fixed per package (masaPerjalanan).
func (p PackageType) DurationDays() int {
	switch p {
	case PackageHealing, PackageTravelling:
		return 1
	default:
		return 0
	}
}

type PickupLocation string

const (
	PickupYogyakarta PickupLocation = "yogyakarta"
	PickupWonosobo   PickupLocation = "wonosobo"
	PickupMagelang   PickupLocation = "magelang"
)

// PickupOption is a pickup location as shown in the order form.
type PickupOption struct {
	Label string         `json:"label"`
	Value PickupLocation `json:"value"`
}

var PickupOptions = []PickupOption{
	{Label: "Yogyakarta", Value: PickupYogyakarta},
	{Label: "Wonosobo", Value: PickupWonosobo},
	{Label: "Magelang", Value: PickupMagelang},
}

func (p PickupLocation) Valid() bool {
	for _, opt := range PickupOptions {
		if opt.Value == p {
			return true
		}
	}
	return false
}

// Label returns the display label, or the raw value when unknown.
func (p PickupLocation) Label() string {
	for _, opt := range PickupOptions {
		if opt.Value == p {
			return opt.Label
		}
	}
	return string(p)
}

// OrderKind discriminates the persistence shape of a paid order.
type OrderKind string

const (
	KindPackageOrder OrderKind = "package-order"
	KindRegularOrder OrderKind = "regular-order"
)

// OrderDraft is a package order being filled in by the customer. It lives until
// a checkout token is issued and is never persisted on its own.
type OrderDraft struct {
	PackageType    PackageType    `json:"selectedPackage"`
	MemberNames    []string       `json:"nama"`
	Phone          string         `json:"nomorHp"`
	PickupLocation PickupLocation `json:"lokasiPenjemputan"`
	TravelDate     string         `json:"tanggalPerjalanan"`
	DestinationIDs []string       `json:"daftarDestinasi"`
	LodgingID      string         `json:"penginapanId"`
	ExperienceIDs  []string       `json:"experience"`
	UserID         string         `json:"-"`
}

// Normalize trims inputs, drops blank member names and de-duplicates id sets.
// Healing packages carry no experiences or lodging.
func (d OrderDraft) Normalize() OrderDraft {
	d.PackageType = PackageType(strings.ToLower(strings.TrimSpace(string(d.PackageType))))
	d.MemberNames = CleanNames(d.MemberNames)
	d.Phone = strings.TrimSpace(d.Phone)
	d.PickupLocation = PickupLocation(strings.ToLower(strings.TrimSpace(string(d.PickupLocation))))
	d.TravelDate = strings.TrimSpace(d.TravelDate)
	d.DestinationIDs = UniqueIDs(d.DestinationIDs)
	d.LodgingID = strings.TrimSpace(d.LodgingID)
	d.ExperienceIDs = UniqueIDs(d.ExperienceIDs)
	if d.PackageType == PackageHealing {
		d.ExperienceIDs = []string{}
		d.LodgingID = ""
	}
	return d
}

// RegularOrderDraft is a single-destination booking.
type RegularOrderDraft struct {
	DestinationID  string         `json:"destinationId"`
	MemberNames    []string       `json:"nama"`
	Phone          string         `json:"nomorHp"`
	PickupLocation PickupLocation `json:"lokasiPenjemputan"`
	TravelDate     string         `json:"tanggalPerjalanan"`
	DurationDays   int            `json:"masaPerjalanan"`
	LodgingID      string         `json:"penginapanId"`
	ExperienceIDs  []string       `json:"experience"`
	UserID         string         `json:"-"`
}

func (d RegularOrderDraft) Normalize() RegularOrderDraft {
	d.DestinationID = strings.TrimSpace(d.DestinationID)
	d.MemberNames = CleanNames(d.MemberNames)
	d.Phone = strings.TrimSpace(d.Phone)
	d.PickupLocation = PickupLocation(strings.ToLower(strings.TrimSpace(string(d.PickupLocation))))
	d.TravelDate = strings.TrimSpace(d.TravelDate)
	d.LodgingID = strings.TrimSpace(d.LodgingID)
	d.ExperienceIDs = UniqueIDs(d.ExperienceIDs)
	if d.DurationDays <= 0 {
		d.DurationDays = 1
	}
	return d
}

// PersistedOrder is a paid order as stored, package or regular.
type PersistedOrder struct {
	ID             int64       `json:"id"`
	GatewayOrderID string      `json:"orderId"`
	Kind           OrderKind   `json:"kind"`
	UserID         string      `json:"userId,omitempty"`
	PackageType    PackageType `json:"paket,omitempty"`
	PickupLocation string      `json:"lokasiPenjemputan"`
	DurationDays   int         `json:"masaPerjalanan"`
	MemberNames    []string    `json:"nama"`
	Phone          string      `json:"nomorHp"`
	TravelDate     string      `json:"tanggalPerjalanan"`
	TotalCost      int64       `json:"totalBiaya"`
	LodgingID      string      `json:"penginapanId,omitempty"`
	DestinationID  string      `json:"destinationId,omitempty"`
	Qty            int         `json:"qty,omitempty"`
	ExperienceIDs  []string    `json:"experience"`
	DestinationIDs []string    `json:"daftarDestinasi,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// CleanNames trims names and drops blank entries, keeping order.
func CleanNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = utils.NormalizeSpace(n)
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}

// UniqueIDs trims ids and removes blanks and duplicates, first occurrence wins.
func UniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
