package game

import (
	"math"
	"testing"
)

// constSource always returns v. At 0.5 every uniform(lo, hi) lands on its
// midpoint and no event fires.
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

type seqSource struct {
	vals []float64
	i    int
}

func (s *seqSource) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func newTestGame(t *testing.T) GameState {
	t.Helper()
	return NewGame(DefaultCatalog(), "Tester", constSource(0.5))
}

func businessOf(t *testing.T, s GameState, bt BusinessType) Business {
	t.Helper()
	b, ok := s.BusinessByType(bt)
	if !ok {
		t.Fatalf("business %s missing", bt)
	}
	return b
}

func stockOf(t *testing.T, s GameState, symbol string) Stock {
	t.Helper()
	st, ok := s.StockBySymbol(symbol)
	if !ok {
		t.Fatalf("stock %s missing", symbol)
	}
	return st
}

// mustApply fails the test on a rejected transaction. Call it as
// mustApply(t)(PurchaseBusiness(s, id)).
func mustApply(t *testing.T) func(GameState, error) GameState {
	t.Helper()
	return func(s GameState, err error) GameState {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return s
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func assertNetWorthConsistent(t *testing.T, s GameState) {
	t.Helper()
	if got := NetWorth(s); !near(got, s.Player.NetWorth) {
		t.Fatalf("cached net worth %v, recomputed %v", s.Player.NetWorth, got)
	}
}
