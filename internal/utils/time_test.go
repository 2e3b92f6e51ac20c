package utils

import (
	"testing"
	"time"
)

func TestEarliestTravelDate(t *testing.T) {
	now := time.Date(2025, 5, 29, 22, 15, 0, 0, time.Local)
	got := EarliestTravelDate(now, 3)
	if FormatDate(got) != "2025-06-01" {
		t.Fatalf("got %s", FormatDate(got))
	}
	if FormatDate(EarliestTravelDate(now, -2)) != "2025-05-29" {
		t.Fatalf("negative lead should clamp to today")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2025-06-01 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2025 || d.Month() != time.June || d.Day() != 1 {
		t.Fatalf("unexpected date %v", d)
	}
	if _, err := ParseDate("01/06/2025"); err == nil {
		t.Fatalf("expected layout error")
	}
}
