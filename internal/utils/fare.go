package utils

import "strings"

// Harga per orang (Rupiah) untuk paket.
var packageFares = map[string]int64{
	"healing":    499_000,
	"travelling": 1_200_000,
}

// PackageFare returns the per-person price of a package (case-insensitive).
func PackageFare(packageType string) (int64, bool) {
	fare, ok := packageFares[strings.TrimSpace(strings.ToLower(packageType))]
	return fare, ok
}
