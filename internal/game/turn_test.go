package game

import (
	"reflect"
	"testing"
)

func TestLemonadeStandEndToEnd(t *testing.T) {
	s := newTestGame(t)
	if s.Player.Cash != 1000 {
		t.Fatalf("starting cash %v", s.Player.Cash)
	}

	lemon := businessOf(t, s, LemonadeStand)
	s = mustApply(t)(PurchaseBusiness(s, lemon.ID))
	lemon = businessOf(t, s, LemonadeStand)
	if s.Player.Cash != 500 || !lemon.Owned || lemon.Level != 1 {
		t.Fatalf("after purchase: cash=%v owned=%v level=%d", s.Player.Cash, lemon.Owned, lemon.Level)
	}

	s, report := AdvanceTurn(s, NewRand(3))
	if s.Player.Cash != 600 {
		t.Fatalf("after one turn cash=%v want 600", s.Player.Cash)
	}
	if report.Turn != 2 || s.Turn != 2 || report.Revenue != 100 {
		t.Fatalf("unexpected report %+v", report)
	}
	assertNetWorthConsistent(t, s)
}

func TestAdvanceTurnLeavesInputUntouched(t *testing.T) {
	s := lemonadeOwned(t)
	snapshot := s.Clone()

	rnd := NewRand(11)
	next := s
	for i := 0; i < 40; i++ {
		next, _ = AdvanceTurn(next, rnd)
	}
	if !reflect.DeepEqual(s, snapshot) {
		t.Fatalf("advancing turns modified the original state")
	}
	if next.Turn != s.Turn+40 {
		t.Fatalf("turn got %d want %d", next.Turn, s.Turn+40)
	}
}

func TestBoostClearedByNextTurn(t *testing.T) {
	s := lemonadeOwned(t)
	lemon := businessOf(t, s, LemonadeStand)

	s = mustApply(t)(ActivateQuickMoney(s, lemon.ID, constSource(0.5)))
	if !businessOf(t, s, LemonadeStand).BoostActive {
		t.Fatalf("boost should be active after quick money")
	}
	s, _ = AdvanceTurn(s, constSource(0.5))
	if businessOf(t, s, LemonadeStand).BoostActive {
		t.Fatalf("boost should reset on the next turn")
	}
	if _, err := ActivateQuickMoney(s, lemon.ID, constSource(0.5)); err != nil {
		t.Fatalf("quick money should be available again: %v", err)
	}
}

func TestNetWorthConsistentUnderRandomPlay(t *testing.T) {
	rnd := NewRand(2024)
	s := NewGame(DefaultCatalog(), "", rnd)
	s.Player.Cash = 2_000_000
	s = refreshNetWorth(s)

	pick := func(n int) int { return int(rnd.Float64() * float64(n)) }
	for step := 0; step < 400; step++ {
		b := s.Businesses[pick(len(s.Businesses))]
		st := s.Stocks[pick(len(s.Stocks))]
		a := s.Assets[pick(len(s.Assets))]

		actions := []Action{
			{Kind: ActionBuyBusiness, TargetID: b.ID},
			{Kind: ActionUpgradeBusiness, TargetID: b.ID},
			{Kind: ActionSellBusiness, TargetID: b.ID},
			{Kind: ActionBuyUpgrade, TargetID: b.ID, ItemID: b.Upgrades[pick(len(b.Upgrades))].ID},
			{Kind: ActionApplyStrategy, TargetID: b.ID, ItemID: b.Strategies[pick(len(b.Strategies))].ID},
			{Kind: ActionQuickMoney, TargetID: b.ID},
			{Kind: ActionBuyStock, TargetID: st.ID, Quantity: 1 + pick(20)},
			{Kind: ActionSellStock, TargetID: st.ID, Quantity: 1 + pick(20)},
			{Kind: ActionBuyAsset, TargetID: a.ID},
			{Kind: ActionSellAsset, TargetID: a.ID},
		}
		if pick(4) == 0 {
			s, _ = AdvanceTurn(s, rnd)
		} else {
			s, _ = Apply(s, actions[pick(len(actions))], rnd)
		}
		assertNetWorthConsistent(t, s)

		for _, bb := range s.Businesses {
			active := 0
			for _, strat := range bb.Strategies {
				if strat.Active {
					active++
				}
			}
			if active > 1 {
				t.Fatalf("step %d: %s has %d active strategies", step, bb.Name, active)
			}
		}
	}
	if err := Validate(s); err != nil {
		t.Fatalf("state invalid after random play: %v", err)
	}
}
