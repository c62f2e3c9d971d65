package game

import (
	"strings"
	"testing"
)

func TestDefaultCatalogRoster(t *testing.T) {
	cat := DefaultCatalog()
	if len(cat.Businesses) != 16 || len(cat.Stocks) != 10 || len(cat.Assets) != 10 || len(cat.Events) != 12 {
		t.Fatalf("unexpected roster: %d businesses, %d stocks, %d assets, %d events",
			len(cat.Businesses), len(cat.Stocks), len(cat.Assets), len(cat.Events))
	}
	if len(cat.Upgrades) != 3 || len(cat.Strategies) != 3 {
		t.Fatalf("expected 3 upgrade and 3 strategy templates")
	}
}

func TestNewGameStartingState(t *testing.T) {
	s := NewGame(DefaultCatalog(), "  Ada ", NewRand(7))

	if s.Player.Name != "Ada" || s.Player.Cash != 1000 || s.Player.NetWorth != 1000 {
		t.Fatalf("unexpected player: %+v", s.Player)
	}
	if s.Turn != 1 || s.MarketTrend != 0.05 || s.EconomicHealth != 70 {
		t.Fatalf("unexpected macro fields: turn=%d trend=%v health=%v", s.Turn, s.MarketTrend, s.EconomicHealth)
	}
	if len(s.ActiveEvents) != 0 {
		t.Fatalf("expected no active events")
	}
	// locked businesses priced up to 5000 gate at 2000 net worth
	if s.UnlockProgress != 50 {
		t.Fatalf("unlock progress got %v want 50", s.UnlockProgress)
	}

	lemon := businessOf(t, s, LemonadeStand)
	if !lemon.Unlocked || lemon.Owned || lemon.Level != 1 || lemon.PurchasePrice != 500 || lemon.Revenue != 100 {
		t.Fatalf("unexpected lemonade stand: %+v", lemon)
	}
	wantCosts := []float64{240, 300, 400}
	for i, u := range lemon.Upgrades {
		if u.Cost != wantCosts[i] || u.Purchased || !u.Unlocked {
			t.Fatalf("upgrade %d: %+v", i, u)
		}
	}
	if businessOf(t, s, Franchise).QuickMoneyOption {
		t.Fatalf("restaurant chain must not offer quick money")
	}
	if businessOf(t, s, OnlineShop).Unlocked {
		t.Fatalf("online shop should start locked")
	}

	cat := DefaultCatalog()
	for i, st := range s.Stocks {
		tpl := cat.Stocks[i]
		if st.Price < tpl.MinPrice || st.Price > tpl.MaxPrice {
			t.Fatalf("%s price %v outside [%v,%v]", st.Symbol, st.Price, tpl.MinPrice, tpl.MaxPrice)
		}
		if len(st.History) != seedHistoryPoints {
			t.Fatalf("%s history len %d", st.Symbol, len(st.History))
		}
		for _, p := range st.History {
			if p < MinStockPrice {
				t.Fatalf("%s seeded history below floor: %v", st.Symbol, p)
			}
		}
	}

	for _, ev := range s.Events {
		switch ev.Title {
		case "Stock Market Rally", "Market Crash":
			if len(ev.AffectedStocks) != len(s.Stocks) {
				t.Fatalf("%s should target every stock", ev.Title)
			}
		default:
			if len(ev.AffectedStocks) != 0 {
				t.Fatalf("%s should not target stocks", ev.Title)
			}
		}
	}

	if err := Validate(s); err != nil {
		t.Fatalf("new game fails validation: %v", err)
	}
}

func TestNewGameDeterministicPrices(t *testing.T) {
	a := NewGame(DefaultCatalog(), "", NewRand(99))
	b := NewGame(DefaultCatalog(), "", NewRand(99))
	for i := range a.Stocks {
		if a.Stocks[i].Price != b.Stocks[i].Price {
			t.Fatalf("same seed gave different prices for %s", a.Stocks[i].Symbol)
		}
	}
}

func TestLoadCatalogRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{name: "syntax", yaml: "businesses: [", want: "parse catalog"},
		{name: "empty", yaml: "stocks: []", want: "no businesses"},
		{
			name: "unknown type",
			yaml: "businesses:\n  - {type: SPACE_PORT, name: Port, purchase_price: 1, upgrade_price: 1}",
			want: "unknown type",
		},
		{
			name: "price band",
			yaml: "businesses:\n  - {type: LEMONADE_STAND, name: L, purchase_price: 1, upgrade_price: 1}\n" +
				"stocks:\n  - {name: X, symbol: XX, min_price: 50, max_price: 10}",
			want: "invalid price band",
		},
	}
	for _, tc := range tests {
		_, err := LoadCatalog([]byte(tc.yaml))
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: got %v, want error containing %q", tc.name, err, tc.want)
		}
	}
}
