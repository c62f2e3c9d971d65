package game

// AdvanceMarket moves the macro indicators, then every stock, then the value
// of owned assets. Draw order is fixed so a seeded Source replays exactly.
func AdvanceMarket(s GameState, rnd Source) GameState {
	s.MarketTrend = clamp(s.MarketTrend+uniform(rnd, -0.2, 0.2), -MaxMarketTrend, MaxMarketTrend)

	health := uniform(rnd, -5, 5)
	switch {
	case s.MarketTrend > 0:
		health += 2
	case s.MarketTrend < 0:
		health -= 2
	}
	s.EconomicHealth = clamp(s.EconomicHealth+health, 0, MaxEconomicHealth)

	s = s.withStocks()
	for i := range s.Stocks {
		s.Stocks[i] = stepStock(s.Stocks[i], s.MarketTrend, rnd)
	}

	s = appreciateAssets(s)
	return s
}

func stepStock(st Stock, marketTrend float64, rnd Source) Stock {
	pct := uniform(rnd, -1, 1)*st.Volatility + marketTrend*5 + st.Trend*2
	price := st.Price * (1 + pct/100)
	if price < MinStockPrice {
		price = MinStockPrice
	}
	st.Price = price
	st.History = appendHistory(st.History, price)
	st.Trend = clamp(st.Trend+uniform(rnd, -0.1, 0.1), -MaxStockTrend, MaxStockTrend)
	return st
}

// appendHistory always allocates; the previous state may still share the
// old backing array.
func appendHistory(history []float64, price float64) []float64 {
	start := 0
	if len(history)+1 > StockHistoryLimit {
		start = len(history) + 1 - StockHistoryLimit
	}
	out := make([]float64, 0, len(history)-start+1)
	out = append(out, history[start:]...)
	return append(out, price)
}

func appreciateAssets(s GameState) GameState {
	touched := false
	for _, a := range s.Assets {
		if a.Owned && a.Appreciation != 0 {
			touched = true
			break
		}
	}
	if !touched {
		return s
	}
	s = s.withAssets()
	for i := range s.Assets {
		if s.Assets[i].Owned {
			s.Assets[i].Value *= 1 + s.Assets[i].Appreciation
		}
	}
	return s
}
