package models

// CatalogItem is a reference plus display name for lodgings, experiences and destinations.
type CatalogItem struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Price int64  `db:"price" json:"price,omitempty"`
}

// OrderSummary is a draft with catalog references resolved to display names.
type OrderSummary struct {
	PackageType    PackageType   `json:"paket,omitempty"`
	MemberNames    []string      `json:"nama"`
	Phone          string        `json:"nomorHp"`
	PickupLocation string        `json:"lokasiPenjemputan"`
	TravelDate     string        `json:"tanggalPerjalanan"`
	DurationDays   int           `json:"masaPerjalanan"`
	Destinations   []CatalogItem `json:"destinasi"`
	Experiences    []CatalogItem `json:"experience"`
	Lodging        *CatalogItem  `json:"penginapan,omitempty"`
	Pricing        PricingResult `json:"pricing"`
}

// MonthlyRevenue uses the dashboard's wire names.
type MonthlyRevenue struct {
	Month   int   `db:"bulan" json:"bulan"`
	Revenue int64 `db:"pendapatan" json:"pendapatan"`
}

type RevenueReport struct {
	Months []MonthlyRevenue `json:"dataPendapatan"`
	Total  int64            `json:"totalPendapatan"`
}

type MostOrdered struct {
	DestinationID string `db:"destination_id" json:"destinationId"`
	Name          string `db:"name" json:"destinationName"`
	Orders        int64  `db:"orders" json:"orders"`
}

type DashboardStats struct {
	Year          int           `json:"year"`
	Users         int64         `json:"users"`
	Destinations  int64         `json:"destinations"`
	Experiences   int64         `json:"experiences"`
	Lodgings      int64         `json:"lodgings"`
	RegularOrders int64         `json:"regularOrders"`
	PackageOrders int64         `json:"packageOrders"`
	Revenue       RevenueReport `json:"revenue"`
	MostOrdered   *MostOrdered  `json:"mostOrdered,omitempty"`
}
