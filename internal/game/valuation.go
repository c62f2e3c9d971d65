package game

import "math"

// NetWorth values owned businesses at a flat 1.5x of purchase price per level,
// independent of revenue.
func NetWorth(s GameState) float64 {
	total := s.Player.Cash
	for _, b := range s.Businesses {
		if b.Owned {
			total += BusinessValue(b)
		}
	}
	for _, st := range s.Stocks {
		if st.Owned > 0 {
			total += st.Price * float64(st.Owned)
		}
	}
	for _, a := range s.Assets {
		if a.Owned {
			total += a.Value
		}
	}
	return total
}

func BusinessValue(b Business) float64 {
	return b.PurchasePrice * float64(b.Level) * BusinessValueMultiplier
}

func BusinessSalePrice(b Business) float64 {
	return b.PurchasePrice * float64(b.Level) * BusinessSaleMultiplier
}

func CanAfford(s GameState, cost float64) bool {
	return s.Player.Cash >= cost
}

// TotalRevenue is the per-turn revenue the owned businesses would pay out now.
func TotalRevenue(s GameState) float64 {
	var total float64
	for _, b := range s.Businesses {
		if b.Owned {
			total += turnRevenue(b)
		}
	}
	return total
}

func StockProfitLoss(st Stock) float64 {
	if st.Owned == 0 {
		return 0
	}
	return (st.Price - st.PurchasePrice) * float64(st.Owned)
}

func StockProfitLossPercent(st Stock) float64 {
	if st.Owned == 0 || st.PurchasePrice == 0 {
		return 0
	}
	return (st.Price - st.PurchasePrice) / st.PurchasePrice * 100
}

func AssetValueChange(a Asset) float64 {
	return a.Value - a.Cost
}

func AssetValueChangePercent(a Asset) float64 {
	if a.Cost == 0 {
		return 0
	}
	return (a.Value - a.Cost) / a.Cost * 100
}

// MaxAffordableQuantity is how many units at price the player's cash covers.
func MaxAffordableQuantity(s GameState, price float64) int {
	if price <= 0 {
		return 0
	}
	return int(math.Floor(s.Player.Cash / price))
}

// PercentChange between consecutive values; zero when from is zero.
func PercentChange(from, to float64) float64 {
	if from == 0 {
		return 0
	}
	return (to - from) / from * 100
}

// LastChangePercent compares the two most recent history samples.
func LastChangePercent(st Stock) float64 {
	n := len(st.History)
	if n < 2 {
		return 0
	}
	return PercentChange(st.History[n-2], st.History[n-1])
}

// refreshNetWorth recomputes the cached net worth and the unlock progress
// derived from it.
func refreshNetWorth(s GameState) GameState {
	s.Player.NetWorth = NetWorth(s)
	s.UnlockProgress = unlockProgress(s)
	return s
}
