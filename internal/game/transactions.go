package game

import "math"

// Every transaction validates first and touches nothing until all checks
// pass. On rejection the input state is returned as-is with an error that
// wraps ErrRejected.

func PurchaseBusiness(s GameState, businessID string) (GameState, error) {
	i := s.businessIndex(businessID)
	if i < 0 {
		return s, ErrBusinessNotFound
	}
	b := s.Businesses[i]
	switch {
	case !b.Unlocked:
		return s, ErrBusinessLocked
	case b.Owned:
		return s, ErrAlreadyOwned
	case !CanAfford(s, b.PurchasePrice):
		return s, ErrInsufficientFunds
	}

	next := s.withBusinesses()
	next.Player.Cash -= b.PurchasePrice
	next.Businesses[i].Owned = true
	return refreshNetWorth(next), nil
}

// UpgradeBusiness raises the level by one at upgradePrice x current level.
func UpgradeBusiness(s GameState, businessID string) (GameState, error) {
	i := s.businessIndex(businessID)
	if i < 0 {
		return s, ErrBusinessNotFound
	}
	b := s.Businesses[i]
	if !b.Owned {
		return s, ErrNotOwned
	}
	price := b.UpgradePrice * float64(b.Level)
	if !CanAfford(s, price) {
		return s, ErrInsufficientFunds
	}

	next := s.withBusinesses()
	next.Player.Cash -= price
	next.Player.UpgradesPurchased++
	next.Businesses[i].Level++
	return refreshNetWorth(next), nil
}

// SellBusiness pays 80% of purchasePrice x level and resets the level.
// Purchased upgrades and the active strategy stay with the business.
func SellBusiness(s GameState, businessID string) (GameState, error) {
	i := s.businessIndex(businessID)
	if i < 0 {
		return s, ErrBusinessNotFound
	}
	b := s.Businesses[i]
	if !b.Owned {
		return s, ErrNotOwned
	}

	next := s.withBusinesses()
	next.Player.Cash += BusinessSalePrice(b)
	next.Player.BusinessesSold++
	next.Businesses[i].Owned = false
	next.Businesses[i].Level = 1
	return refreshNetWorth(next), nil
}

// PurchaseUpgrade buys a one-shot upgrade and applies it to the business
// permanently. Revenue and cost are rounded to whole numbers.
func PurchaseUpgrade(s GameState, businessID, upgradeID string) (GameState, error) {
	i := s.businessIndex(businessID)
	if i < 0 {
		return s, ErrBusinessNotFound
	}
	b := s.Businesses[i]
	if !b.Owned {
		return s, ErrNotOwned
	}
	u := -1
	for j := range b.Upgrades {
		if b.Upgrades[j].ID == upgradeID {
			u = j
			break
		}
	}
	if u < 0 {
		return s, ErrUpgradeNotFound
	}
	up := b.Upgrades[u]
	switch {
	case up.Purchased:
		return s, ErrAlreadyPurchased
	case !up.Unlocked:
		return s, ErrUpgradeLocked
	case !CanAfford(s, up.Cost):
		return s, ErrInsufficientFunds
	}

	b = b.withUpgrades()
	b.Upgrades[u].Purchased = true
	if up.RevenueMultiplier > 1 {
		b.Revenue = math.Round(b.Revenue * up.RevenueMultiplier)
	}
	if up.CostReduction > 0 {
		b.Cost = math.Round(b.Cost * (1 - up.CostReduction))
	}

	next := s.withBusinesses()
	next.Businesses[i] = b
	next.Player.Cash -= up.Cost
	next.Player.UpgradesPurchased++
	return refreshNetWorth(next), nil
}

// ApplyStrategy makes strategyID the only active strategy of the business.
// Revenue picks it up from the next turn.
func ApplyStrategy(s GameState, businessID, strategyID string) (GameState, error) {
	i := s.businessIndex(businessID)
	if i < 0 {
		return s, ErrBusinessNotFound
	}
	b := s.Businesses[i]
	if !b.Owned {
		return s, ErrNotOwned
	}
	sel := -1
	for j := range b.Strategies {
		if b.Strategies[j].ID == strategyID {
			sel = j
			break
		}
	}
	if sel < 0 {
		return s, ErrStrategyNotFound
	}
	if !b.Strategies[sel].Unlocked {
		return s, ErrStrategyLocked
	}

	b = b.withStrategies()
	for j := range b.Strategies {
		b.Strategies[j].Active = j == sel
	}

	next := s.withBusinesses()
	next.Businesses[i] = b
	return refreshNetWorth(next), nil
}

// ActivateQuickMoney pays revenue x level x U(2,4), rounded, once per turn.
func ActivateQuickMoney(s GameState, businessID string, rnd Source) (GameState, error) {
	i := s.businessIndex(businessID)
	if i < 0 {
		return s, ErrBusinessNotFound
	}
	b := s.Businesses[i]
	switch {
	case !b.Owned:
		return s, ErrNotOwned
	case !b.QuickMoneyOption:
		return s, ErrNoQuickMoney
	case b.BoostActive:
		return s, ErrBoostOnCooldown
	}

	amount := math.Round(b.Revenue * float64(b.Level) * uniform(rnd, QuickMoneyMinMultiplier, QuickMoneyMaxMultiplier))

	next := s.withBusinesses()
	next.Player.Cash += amount
	next.Businesses[i].BoostActive = true
	return refreshNetWorth(next), nil
}

// BuyStock buys at the current price and folds the lot into the
// volume-weighted cost basis.
func BuyStock(s GameState, stockID string, quantity int) (GameState, error) {
	if quantity <= 0 {
		return s, ErrInvalidQuantity
	}
	i := s.stockIndex(stockID)
	if i < 0 {
		return s, ErrStockNotFound
	}
	st := s.Stocks[i]
	total := st.Price * float64(quantity)
	if !CanAfford(s, total) {
		return s, ErrInsufficientFunds
	}

	basis := st.PurchasePrice
	if basis == 0 {
		basis = st.Price
	}
	shares := st.Owned + quantity

	next := s.withStocks()
	next.Player.Cash -= total
	next.Player.StocksTraded += quantity
	next.Stocks[i].Owned = shares
	next.Stocks[i].PurchasePrice = (float64(st.Owned)*basis + total) / float64(shares)
	return refreshNetWorth(next), nil
}

func SellStock(s GameState, stockID string, quantity int) (GameState, error) {
	if quantity <= 0 {
		return s, ErrInvalidQuantity
	}
	i := s.stockIndex(stockID)
	if i < 0 {
		return s, ErrStockNotFound
	}
	st := s.Stocks[i]
	if st.Owned < quantity {
		return s, ErrInsufficientShare
	}

	next := s.withStocks()
	next.Player.Cash += st.Price * float64(quantity)
	next.Player.StocksTraded += quantity
	next.Stocks[i].Owned -= quantity
	if next.Stocks[i].Owned == 0 {
		next.Stocks[i].PurchasePrice = 0
	}
	return refreshNetWorth(next), nil
}

// BuyAsset pays the catalog cost and resets value to it, so appreciation
// from an earlier holding is not carried over.
func BuyAsset(s GameState, assetID string) (GameState, error) {
	i := s.assetIndex(assetID)
	if i < 0 {
		return s, ErrAssetNotFound
	}
	a := s.Assets[i]
	switch {
	case a.Owned:
		return s, ErrAlreadyOwned
	case !CanAfford(s, a.Cost):
		return s, ErrInsufficientFunds
	}

	next := s.withAssets()
	next.Player.Cash -= a.Cost
	next.Assets[i].Owned = true
	next.Assets[i].Value = a.Cost
	return refreshNetWorth(next), nil
}

func SellAsset(s GameState, assetID string) (GameState, error) {
	i := s.assetIndex(assetID)
	if i < 0 {
		return s, ErrAssetNotFound
	}
	a := s.Assets[i]
	if !a.Owned {
		return s, ErrNotOwned
	}

	next := s.withAssets()
	next.Player.Cash += a.Value
	next.Assets[i].Owned = false
	return refreshNetWorth(next), nil
}
