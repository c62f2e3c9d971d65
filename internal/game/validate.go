package game

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// Validate checks the structural invariants of a state. A failure wraps
// ErrInvalidState and lists every violation found.
func Validate(s GameState) error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if s.Turn < 1 {
		bad("turn %d < 1", s.Turn)
	}
	if !finite(s.Player.Cash) || !finite(s.Player.NetWorth) {
		bad("player cash and net worth must be finite")
	}
	if s.MarketTrend < -MaxMarketTrend || s.MarketTrend > MaxMarketTrend {
		bad("market trend %v out of range", s.MarketTrend)
	}
	if s.EconomicHealth < 0 || s.EconomicHealth > MaxEconomicHealth {
		bad("economic health %v out of range", s.EconomicHealth)
	}
	if s.Player.BusinessesSold < 0 || s.Player.UpgradesPurchased < 0 || s.Player.StocksTraded < 0 {
		bad("player counters must be >= 0")
	}

	ids := make(map[string]bool)
	seen := func(kind, id string) {
		if id == "" {
			bad("%s with empty id", kind)
			return
		}
		if ids[id] {
			bad("duplicate id %s", id)
		}
		ids[id] = true
	}

	for _, b := range s.Businesses {
		seen("business", b.ID)
		if !b.Type.Valid() {
			bad("business %s: unknown type %q", b.ID, b.Type)
		}
		if b.Level < 1 {
			bad("business %s: level %d < 1", b.ID, b.Level)
		}
		if !finite(b.Revenue) || !finite(b.Cash) || b.PurchasePrice < 0 || b.UpgradePrice < 0 {
			bad("business %s: invalid economics", b.ID)
		}
		active := 0
		for _, st := range b.Strategies {
			seen("strategy", st.ID)
			if st.Active {
				active++
			}
			if st.RiskLevel < 1 || st.RiskLevel > 10 {
				bad("strategy %s: risk level %d out of range", st.ID, st.RiskLevel)
			}
		}
		if active > 1 {
			bad("business %s: %d active strategies", b.ID, active)
		}
		for _, u := range b.Upgrades {
			seen("upgrade", u.ID)
			if u.RevenueMultiplier < 1 || u.CostReduction < 0 || u.CostReduction >= 1 {
				bad("upgrade %s: invalid modifiers", u.ID)
			}
		}
	}

	for _, st := range s.Stocks {
		seen("stock", st.ID)
		if st.Price < MinStockPrice || !finite(st.Price) {
			bad("stock %s: price %v below floor", st.Symbol, st.Price)
		}
		if st.Volatility < 0 {
			bad("stock %s: negative volatility", st.Symbol)
		}
		if st.Trend < -MaxStockTrend || st.Trend > MaxStockTrend {
			bad("stock %s: trend %v out of range", st.Symbol, st.Trend)
		}
		if len(st.History) > StockHistoryLimit {
			bad("stock %s: %d history samples", st.Symbol, len(st.History))
		}
		if st.Owned < 0 {
			bad("stock %s: negative holding", st.Symbol)
		}
		if st.Owned == 0 && st.PurchasePrice != 0 {
			bad("stock %s: cost basis without holding", st.Symbol)
		}
	}

	for _, a := range s.Assets {
		seen("asset", a.ID)
		if !a.Type.Valid() {
			bad("asset %s: unknown type %q", a.ID, a.Type)
		}
		if !finite(a.Value) || a.Cost < 0 {
			bad("asset %s: invalid value", a.ID)
		}
	}

	for _, ev := range s.Events {
		seen("event", ev.ID)
		if !ev.Type.Valid() || ev.Duration < 1 {
			bad("event %s: invalid type or duration", ev.ID)
		}
	}
	for _, ev := range s.ActiveEvents {
		if ev.TurnsLeft < 1 {
			bad("active event %s: no turns left", ev.ID)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidState, errors.Join(errs...))
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func EncodeState(s GameState) ([]byte, error) {
	return json.Marshal(s)
}

// DecodeState parses and validates a saved document. Unknown fields are an
// integrity failure. Net worth is recomputed rather than trusted.
func DecodeState(data []byte) (GameState, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var s GameState
	if err := dec.Decode(&s); err != nil {
		return GameState{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if s.ActiveEvents == nil {
		s.ActiveEvents = []EconomicEvent{}
	}
	if err := Validate(s); err != nil {
		return GameState{}, err
	}
	s.Player.NetWorth = NetWorth(s)
	s.UnlockProgress = unlockProgress(s)
	return s, nil
}
