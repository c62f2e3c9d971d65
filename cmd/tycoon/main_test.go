package main

import (
	"testing"

	"tycoon/internal/game"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{12.5, "$12.50"},
		{999.999, "$1,000.00"},
		{1234567.891, "$1,234,567.89"},
		{-5, "-$5.00"},
		{-0.001, "$0.00"},
	}
	for _, tc := range tests {
		if got := formatMoney(tc.in); got != tc.want {
			t.Fatalf("formatMoney(%v) = %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestFindBusiness(t *testing.T) {
	st := game.NewGame(game.DefaultCatalog(), "", game.NewRand(1))

	tests := []struct {
		ref  string
		want string
	}{
		{"lemonade_stand", "Lemonade Stand"},
		{"2", "Freelance Gig"},
		{"tech", "Tech Startup"},
		{"food truck", "Food Truck"},
		{st.Businesses[3].ID, st.Businesses[3].Name},
	}
	for _, tc := range tests {
		b, err := findBusiness(st, tc.ref)
		if err != nil || b.Name != tc.want {
			t.Fatalf("findBusiness(%q) = %q, %v want %q", tc.ref, b.Name, err, tc.want)
		}
	}

	for _, ref := range []string{"re", "0", "99", "zeppelin", ""} {
		if _, err := findBusiness(st, ref); err == nil {
			t.Fatalf("findBusiness(%q) should fail", ref)
		}
	}
}

func TestFindItems(t *testing.T) {
	st := game.NewGame(game.DefaultCatalog(), "", game.NewRand(1))
	lemon, _ := st.BusinessByType(game.LemonadeStand)

	if up, err := findUpgrade(lemon, "cost"); err != nil || up.Name != "Cost Reduction" {
		t.Fatalf("upgrade: %q %v", up.Name, err)
	}
	if s, err := findStrategy(lemon, "3"); err != nil || s.Name != "Conservative Management" {
		t.Fatalf("strategy: %q %v", s.Name, err)
	}
	if s, err := findStock(st, "tchn"); err != nil || s.Symbol != "TCHN" {
		t.Fatalf("stock: %q %v", s.Symbol, err)
	}
	if _, err := findStock(st, "NOPE"); err == nil {
		t.Fatalf("unknown stock should fail")
	}
	if a, err := findAsset(st, "1"); err != nil || a.ID != st.Assets[0].ID {
		t.Fatalf("asset: %+v %v", a, err)
	}
}

func TestPickPrefersExactMatch(t *testing.T) {
	names := []string{"Coffee Shop Deluxe", "Coffee Shop Express", "Coffee Shop"}
	ids := []string{"a", "b", "c"}
	id := func(i int) string { return ids[i] }
	name := func(i int) string { return names[i] }

	tests := []struct {
		ref     string
		want    int
		wantErr bool
	}{
		{ref: "coffee shop", want: 2},
		{ref: "b", want: 1},
		{ref: "coffee shop e", want: 1},
		{ref: "coffee", wantErr: true},
		{ref: "tea", wantErr: true},
	}
	for _, tt := range tests {
		got, err := pick(tt.ref, len(names), id, name)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("pick(%q): expected error, got %d", tt.ref, got)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("pick(%q) = %d, %v; want %d", tt.ref, got, err, tt.want)
		}
	}
}
