package game

import "time"

type Dashboard struct {
	PlayerName     string         `json:"player_name,omitempty"`
	Turn           int            `json:"turn"`
	Cash           float64        `json:"cash"`
	NetWorth       float64        `json:"net_worth"`
	RevenuePerTurn float64        `json:"revenue_per_turn"`
	MarketTrend    float64        `json:"market_trend"`
	EconomicHealth float64        `json:"economic_health"`
	UnlockProgress float64        `json:"unlock_progress"`
	Businesses     []BusinessView `json:"businesses"`
	Positions      []PositionView `json:"positions"`
	Assets         []AssetView    `json:"assets"`
	ActiveEvents   []EventView    `json:"active_events"`
}

type BusinessView struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Level          int     `json:"level"`
	RevenuePerTurn float64 `json:"revenue_per_turn"`
	Value          float64 `json:"value"`
	SalePrice      float64 `json:"sale_price"`
	NextUpgrade    float64 `json:"next_upgrade_price"`
	Strategy       string  `json:"strategy,omitempty"`
	BoostReady     bool    `json:"boost_ready"`
}

type PositionView struct {
	ID            string  `json:"id"`
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Shares        int     `json:"shares"`
	AvgPrice      float64 `json:"avg_price"`
	Price         float64 `json:"price"`
	MarketValue   float64 `json:"market_value"`
	Unrealized    float64 `json:"unrealized"`
	UnrealizedPct float64 `json:"unrealized_pct"`
}

type AssetView struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Cost      float64 `json:"cost"`
	Value     float64 `json:"value"`
	Change    float64 `json:"change"`
	ChangePct float64 `json:"change_pct"`
}

type EventView struct {
	Title      string  `json:"title"`
	Type       string  `json:"type"`
	Multiplier float64 `json:"multiplier"`
	TurnsLeft  int     `json:"turns_left"`
}

// SaveSummary is one row of a user's save list.
type SaveSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Turn      int       `json:"turn"`
	NetWorth  float64   `json:"net_worth"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summarize builds the dashboard view of owned holdings.
func Summarize(s GameState) Dashboard {
	d := Dashboard{
		PlayerName:     s.Player.Name,
		Turn:           s.Turn,
		Cash:           s.Player.Cash,
		NetWorth:       s.Player.NetWorth,
		RevenuePerTurn: TotalRevenue(s),
		MarketTrend:    s.MarketTrend,
		EconomicHealth: s.EconomicHealth,
		UnlockProgress: s.UnlockProgress,
		Businesses:     []BusinessView{},
		Positions:      []PositionView{},
		Assets:         []AssetView{},
		ActiveEvents:   []EventView{},
	}
	for _, b := range s.Businesses {
		if !b.Owned {
			continue
		}
		v := BusinessView{
			ID:             b.ID,
			Name:           b.Name,
			Type:           string(b.Type),
			Level:          b.Level,
			RevenuePerTurn: turnRevenue(b),
			Value:          BusinessValue(b),
			SalePrice:      BusinessSalePrice(b),
			NextUpgrade:    b.UpgradePrice * float64(b.Level),
			BoostReady:     b.QuickMoneyOption && !b.BoostActive,
		}
		if st, ok := b.ActiveStrategy(); ok {
			v.Strategy = st.Name
		}
		d.Businesses = append(d.Businesses, v)
	}
	for _, st := range s.Stocks {
		if st.Owned == 0 {
			continue
		}
		d.Positions = append(d.Positions, PositionView{
			ID:            st.ID,
			Symbol:        st.Symbol,
			Name:          st.Name,
			Shares:        st.Owned,
			AvgPrice:      st.PurchasePrice,
			Price:         st.Price,
			MarketValue:   st.Price * float64(st.Owned),
			Unrealized:    StockProfitLoss(st),
			UnrealizedPct: StockProfitLossPercent(st),
		})
	}
	for _, a := range s.Assets {
		if !a.Owned {
			continue
		}
		d.Assets = append(d.Assets, AssetView{
			ID:        a.ID,
			Name:      a.Name,
			Type:      string(a.Type),
			Cost:      a.Cost,
			Value:     a.Value,
			Change:    AssetValueChange(a),
			ChangePct: AssetValueChangePercent(a),
		})
	}
	for _, ev := range s.ActiveEvents {
		d.ActiveEvents = append(d.ActiveEvents, EventView{
			Title:      ev.Title,
			Type:       string(ev.Type),
			Multiplier: ev.Multiplier,
			TurnsLeft:  ev.TurnsLeft,
		})
	}
	return d
}
