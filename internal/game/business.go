package game

import "math"

type unlockTier struct {
	maxPrice float64
	netWorth float64
}

// Businesses priced above every bracket unlock at the last tier's net worth.
var unlockTiers = []unlockTier{
	{maxPrice: 5_000, netWorth: 2_000},
	{maxPrice: 20_000, netWorth: 10_000},
	{maxPrice: 50_000, netWorth: 30_000},
	{maxPrice: 200_000, netWorth: 100_000},
	{maxPrice: math.Inf(1), netWorth: 500_000},
}

// UnlockThreshold is the net worth at which a business of this price unlocks.
func UnlockThreshold(purchasePrice float64) float64 {
	for _, t := range unlockTiers {
		if purchasePrice <= t.maxPrice {
			return t.netWorth
		}
	}
	return unlockTiers[len(unlockTiers)-1].netWorth
}

// turnRevenue is revenue x level, scaled and rounded to a whole number only
// when a strategy is active.
func turnRevenue(b Business) float64 {
	r := b.Revenue * float64(b.Level)
	if st, ok := b.ActiveStrategy(); ok {
		r = math.Round(r * st.RevenueMultiplier)
	}
	return r
}

// CollectRevenue credits one turn of revenue from every owned business to
// the business and the player, and clears quick-money cooldowns.
func CollectRevenue(s GameState) (GameState, float64) {
	owned := false
	for _, b := range s.Businesses {
		if b.Owned {
			owned = true
			break
		}
	}
	if !owned {
		return s, 0
	}

	s = s.withBusinesses()
	var total float64
	for i := range s.Businesses {
		b := &s.Businesses[i]
		if !b.Owned {
			continue
		}
		r := turnRevenue(*b)
		total += r
		b.Cash += r
		b.BoostActive = false
	}
	s.Player.Cash += total
	return s, total
}

// UnlockBusinesses unlocks every locked business whose tier threshold the
// current net worth has reached, and refreshes UnlockProgress. Unlocking is
// never undone. It returns the names of newly unlocked businesses.
func UnlockBusinesses(s GameState) (GameState, []string) {
	nw := s.Player.NetWorth
	var unlocked []string
	for i, b := range s.Businesses {
		if b.Unlocked || nw < UnlockThreshold(b.PurchasePrice) {
			continue
		}
		if unlocked == nil {
			s = s.withBusinesses()
		}
		s.Businesses[i].Unlocked = true
		unlocked = append(unlocked, b.Name)
	}
	s.UnlockProgress = unlockProgress(s)
	return s, unlocked
}

// unlockProgress is net worth as a percentage of the lowest threshold still
// gating a locked business.
func unlockProgress(s GameState) float64 {
	next := math.Inf(1)
	for _, b := range s.Businesses {
		if !b.Unlocked {
			next = math.Min(next, UnlockThreshold(b.PurchasePrice))
		}
	}
	if math.IsInf(next, 1) {
		return 100
	}
	return clamp(s.Player.NetWorth/next*100, 0, 100)
}
