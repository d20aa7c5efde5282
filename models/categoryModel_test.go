package models

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Fruits & Vegetables", "fruits-vegetables"},
		{"Dairy", "dairy"},
		{"Bakery Items", "bakery-items"},
		{"  Snacks  ", "snacks"},
		{"Coffee/Tea & Cocoa", "coffee-tea-cocoa"},
		{"100% Juice", "100-juice"},
		{"---", ""},
	}

	for _, tc := range cases {
		if got := Slugify(tc.name); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}
