package utils

import "testing"

func TestPackageFare(t *testing.T) {
	cases := map[string]int64{
		"healing":      499000,
		"Travelling":   1200000,
		" travelling ": 1200000,
	}
	for in, want := range cases {
		got, ok := PackageFare(in)
		if !ok || got != want {
			t.Fatalf("PackageFare(%q) = %d,%v want %d", in, got, ok, want)
		}
	}
	if _, ok := PackageFare("honeymoon"); ok {
		t.Fatalf("unknown package should not have a fare")
	}
}
