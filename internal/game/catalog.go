package game

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

const seedHistoryPoints = 10

// Catalog holds the templates a new game is built from.
type Catalog struct {
	Upgrades   []UpgradeTemplate  `yaml:"upgrades"`
	Strategies []StrategyTemplate `yaml:"strategies"`
	Businesses []BusinessTemplate `yaml:"businesses"`
	Stocks     []StockTemplate    `yaml:"stocks"`
	Assets     []AssetTemplate    `yaml:"assets"`
	Events     []EventTemplate    `yaml:"events"`
}

type BusinessTemplate struct {
	Type           BusinessType `yaml:"type"`
	Name           string       `yaml:"name"`
	Description    string       `yaml:"description"`
	Icon           string       `yaml:"icon"`
	Revenue        float64      `yaml:"revenue"`
	Cost           float64      `yaml:"cost"`
	PurchasePrice  float64      `yaml:"purchase_price"`
	UpgradePrice   float64      `yaml:"upgrade_price"`
	Employees      int          `yaml:"employees"`
	Unlocked       bool         `yaml:"unlocked"`
	QuickMoney     bool         `yaml:"quick_money"`
	SpecialAbility string       `yaml:"special_ability"`
}

type UpgradeTemplate struct {
	Name              string  `yaml:"name"`
	Description       string  `yaml:"description"`
	CostFactor        float64 `yaml:"cost_factor"`
	RevenueMultiplier float64 `yaml:"revenue_multiplier"`
	CostReduction     float64 `yaml:"cost_reduction"`
	Icon              string  `yaml:"icon"`
}

type StrategyTemplate struct {
	Name              string  `yaml:"name"`
	Description       string  `yaml:"description"`
	RevenueMultiplier float64 `yaml:"revenue_multiplier"`
	CostMultiplier    float64 `yaml:"cost_multiplier"`
	RiskLevel         int     `yaml:"risk_level"`
}

type StockTemplate struct {
	Name       string  `yaml:"name"`
	Symbol     string  `yaml:"symbol"`
	MinPrice   float64 `yaml:"min_price"`
	MaxPrice   float64 `yaml:"max_price"`
	Volatility float64 `yaml:"volatility"`
	Trend      float64 `yaml:"trend"`
}

type AssetTemplate struct {
	Name         string    `yaml:"name"`
	Type         AssetType `yaml:"type"`
	Cost         float64   `yaml:"cost"`
	Appreciation float64   `yaml:"appreciation"`
	Description  string    `yaml:"description"`
	Icon         string    `yaml:"icon"`
}

type EventTemplate struct {
	Title                 string         `yaml:"title"`
	Description           string         `yaml:"description"`
	Type                  EventType      `yaml:"type"`
	AffectedBusinessTypes []BusinessType `yaml:"affected_business_types"`
	AffectAllStocks       bool           `yaml:"affect_all_stocks"`
	Multiplier            float64        `yaml:"multiplier"`
	Duration              int            `yaml:"duration"`
}

// DefaultCatalog returns the built-in roster. It panics only if the embedded
// file is broken, which the package tests rule out.
func DefaultCatalog() Catalog {
	cat, err := LoadCatalog(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return cat
}

func LoadCatalogFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return LoadCatalog(data)
}

func LoadCatalog(data []byte) (Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	if err := cat.validate(); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

func (c Catalog) validate() error {
	var errs []error
	if len(c.Businesses) == 0 {
		errs = append(errs, errors.New("catalog has no businesses"))
	}
	seen := make(map[BusinessType]bool, len(c.Businesses))
	for _, b := range c.Businesses {
		switch {
		case !b.Type.Valid():
			errs = append(errs, fmt.Errorf("business %q: unknown type %q", b.Name, b.Type))
		case seen[b.Type]:
			errs = append(errs, fmt.Errorf("business %q: duplicate type %s", b.Name, b.Type))
		case b.PurchasePrice <= 0 || b.UpgradePrice <= 0 || b.Revenue < 0 || b.Cost < 0:
			errs = append(errs, fmt.Errorf("business %q: prices must be positive", b.Name))
		}
		seen[b.Type] = true
	}
	for _, u := range c.Upgrades {
		if u.CostFactor <= 0 || u.RevenueMultiplier < 1 || u.CostReduction < 0 || u.CostReduction >= 1 {
			errs = append(errs, fmt.Errorf("upgrade %q: invalid modifiers", u.Name))
		}
	}
	for _, st := range c.Strategies {
		if st.RiskLevel < 1 || st.RiskLevel > 10 || st.RevenueMultiplier <= 0 {
			errs = append(errs, fmt.Errorf("strategy %q: invalid modifiers", st.Name))
		}
	}
	symbols := make(map[string]bool, len(c.Stocks))
	for _, s := range c.Stocks {
		sym := strings.ToUpper(strings.TrimSpace(s.Symbol))
		switch {
		case sym == "" || symbols[sym]:
			errs = append(errs, fmt.Errorf("stock %q: missing or duplicate symbol", s.Name))
		case s.MinPrice < MinStockPrice || s.MaxPrice < s.MinPrice:
			errs = append(errs, fmt.Errorf("stock %s: invalid price band", sym))
		case s.Volatility < 0 || s.Trend < -MaxStockTrend || s.Trend > MaxStockTrend:
			errs = append(errs, fmt.Errorf("stock %s: volatility or trend out of range", sym))
		}
		symbols[sym] = true
	}
	for _, a := range c.Assets {
		if !a.Type.Valid() || a.Cost <= 0 {
			errs = append(errs, fmt.Errorf("asset %q: invalid type or cost", a.Name))
		}
	}
	for _, e := range c.Events {
		if !e.Type.Valid() || e.Duration < 1 || e.Multiplier <= 0 {
			errs = append(errs, fmt.Errorf("event %q: invalid type, duration or multiplier", e.Title))
		}
		for _, bt := range e.AffectedBusinessTypes {
			if !bt.Valid() {
				errs = append(errs, fmt.Errorf("event %q: unknown business type %q", e.Title, bt))
			}
		}
	}
	return errors.Join(errs...)
}

// NewGame builds the starting state. Stock prices and their seed history are
// the only randomised parts.
func NewGame(cat Catalog, playerName string, rnd Source) GameState {
	s := GameState{
		Player: Player{
			Name:     strings.TrimSpace(playerName),
			Cash:     StartingCash,
			NetWorth: StartingCash,
		},
		Turn:           1,
		Businesses:     make([]Business, 0, len(cat.Businesses)),
		Stocks:         make([]Stock, 0, len(cat.Stocks)),
		Assets:         make([]Asset, 0, len(cat.Assets)),
		Events:         make([]EconomicEvent, 0, len(cat.Events)),
		ActiveEvents:   []EconomicEvent{},
		MarketTrend:    StartingMarketTrend,
		EconomicHealth: StartingEconomicHealth,
	}

	for _, t := range cat.Businesses {
		s.Businesses = append(s.Businesses, cat.newBusiness(t))
	}

	for _, t := range cat.Stocks {
		s.Stocks = append(s.Stocks, Stock{
			ID:         uuid.NewString(),
			Name:       t.Name,
			Symbol:     strings.ToUpper(strings.TrimSpace(t.Symbol)),
			Price:      roundCents(uniform(rnd, t.MinPrice, t.MaxPrice)),
			Volatility: t.Volatility,
			Trend:      t.Trend,
		})
	}
	stockIDs := make([]string, 0, len(s.Stocks))
	for i := range s.Stocks {
		s.Stocks[i].History = seedHistory(s.Stocks[i].Price, s.Stocks[i].Volatility, rnd)
		stockIDs = append(stockIDs, s.Stocks[i].ID)
	}

	for _, t := range cat.Assets {
		s.Assets = append(s.Assets, Asset{
			ID:           uuid.NewString(),
			Name:         t.Name,
			Type:         t.Type,
			Cost:         t.Cost,
			Value:        t.Cost,
			Appreciation: t.Appreciation,
			Description:  t.Description,
			Icon:         t.Icon,
		})
	}

	for _, t := range cat.Events {
		ev := EconomicEvent{
			ID:                    uuid.NewString(),
			Title:                 t.Title,
			Description:           t.Description,
			Type:                  t.Type,
			AffectedBusinessTypes: append([]BusinessType(nil), t.AffectedBusinessTypes...),
			Multiplier:            t.Multiplier,
			Duration:              t.Duration,
		}
		if t.AffectAllStocks {
			ev.AffectedStocks = append([]string(nil), stockIDs...)
		}
		s.Events = append(s.Events, ev)
	}

	s.Player.NetWorth = NetWorth(s)
	s.UnlockProgress = unlockProgress(s)
	return s
}

func (c Catalog) newBusiness(t BusinessTemplate) Business {
	b := Business{
		ID:               uuid.NewString(),
		Name:             t.Name,
		Type:             t.Type,
		Description:      t.Description,
		Icon:             t.Icon,
		Level:            1,
		Revenue:          t.Revenue,
		Cost:             t.Cost,
		Employees:        t.Employees,
		PurchasePrice:    t.PurchasePrice,
		UpgradePrice:     t.UpgradePrice,
		Unlocked:         t.Unlocked,
		SpecialAbility:   t.SpecialAbility,
		QuickMoneyOption: t.QuickMoney,
		ManagementLevel:  1,
		Upgrades:         make([]Upgrade, 0, len(c.Upgrades)),
		Strategies:       make([]BusinessStrategy, 0, len(c.Strategies)),
	}
	for _, u := range c.Upgrades {
		b.Upgrades = append(b.Upgrades, Upgrade{
			ID:                uuid.NewString(),
			Name:              u.Name,
			Description:       u.Description,
			Cost:              t.UpgradePrice * u.CostFactor,
			RevenueMultiplier: u.RevenueMultiplier,
			CostReduction:     u.CostReduction,
			Unlocked:          true,
			Icon:              u.Icon,
		})
	}
	for _, st := range c.Strategies {
		b.Strategies = append(b.Strategies, BusinessStrategy{
			ID:                uuid.NewString(),
			Name:              st.Name,
			Description:       st.Description,
			RevenueMultiplier: st.RevenueMultiplier,
			CostMultiplier:    st.CostMultiplier,
			RiskLevel:         st.RiskLevel,
			Unlocked:          true,
		})
	}
	return b
}

// seedHistory walks a random path up from 80% of the current price.
func seedHistory(price, volatility float64, rnd Source) []float64 {
	history := make([]float64, 0, seedHistoryPoints)
	p := price * 0.8
	for i := 0; i < seedHistoryPoints; i++ {
		p += (rnd.Float64() - 0.5) * volatility * p
		if p < MinStockPrice {
			p = MinStockPrice + rnd.Float64()*0.5
		}
		history = append(history, roundCents(p))
	}
	return history
}
