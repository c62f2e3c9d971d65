package game

// Field names follow the camelCase save documents so older saves keep loading.

type BusinessType string

const (
	LemonadeStand      BusinessType = "LEMONADE_STAND"
	FreelanceGig       BusinessType = "FREELANCE_GIG"
	OnlineShop         BusinessType = "ONLINE_SHOP"
	FoodTruck          BusinessType = "FOOD_TRUCK"
	RetailStore        BusinessType = "RETAIL_STORE"
	TechStartup        BusinessType = "TECH_STARTUP"
	RealEstate         BusinessType = "REAL_ESTATE"
	Franchise          BusinessType = "FRANCHISE"
	SocialMedia        BusinessType = "SOCIAL_MEDIA"
	CryptoMining       BusinessType = "CRYPTO_MINING"
	Dropshipping       BusinessType = "DROPSHIPPING"
	MobileGame         BusinessType = "MOBILE_GAME"
	ContentCreation    BusinessType = "CONTENT_CREATION"
	Consulting         BusinessType = "CONSULTING"
	DayTrading         BusinessType = "DAY_TRADING"
	AffiliateMarketing BusinessType = "AFFILIATE_MARKETING"
)

var businessTypes = map[BusinessType]struct{}{
	LemonadeStand: {}, FreelanceGig: {}, OnlineShop: {}, FoodTruck: {},
	RetailStore: {}, TechStartup: {}, RealEstate: {}, Franchise: {},
	SocialMedia: {}, CryptoMining: {}, Dropshipping: {}, MobileGame: {},
	ContentCreation: {}, Consulting: {}, DayTrading: {}, AffiliateMarketing: {},
}

func (t BusinessType) Valid() bool {
	_, ok := businessTypes[t]
	return ok
}

type AssetType string

const (
	AssetProperty    AssetType = "PROPERTY"
	AssetVehicle     AssetType = "VEHICLE"
	AssetLuxury      AssetType = "LUXURY"
	AssetCollectible AssetType = "COLLECTIBLE"
)

func (t AssetType) Valid() bool {
	switch t {
	case AssetProperty, AssetVehicle, AssetLuxury, AssetCollectible:
		return true
	}
	return false
}

type EventType string

const (
	EventPositive EventType = "POSITIVE"
	EventNegative EventType = "NEGATIVE"
	EventNeutral  EventType = "NEUTRAL"
)

func (t EventType) Valid() bool {
	switch t {
	case EventPositive, EventNegative, EventNeutral:
		return true
	}
	return false
}

// GameState is the root aggregate. Engine functions take it by value and
// return a new value; they never write through slices they did not copy.
type GameState struct {
	Player         Player          `json:"player"`
	Turn           int             `json:"turn"`
	Businesses     []Business      `json:"businesses"`
	Stocks         []Stock         `json:"stocks"`
	Assets         []Asset         `json:"assets"`
	Events         []EconomicEvent `json:"events"`
	ActiveEvents   []EconomicEvent `json:"activeEvents"`
	MarketTrend    float64         `json:"marketTrend"`
	EconomicHealth float64         `json:"economicHealth"`
	UnlockProgress float64         `json:"unlockProgress"`
}

type Player struct {
	Name              string  `json:"name,omitempty"`
	Cash              float64 `json:"cash"`
	NetWorth          float64 `json:"netWorth"`
	BusinessesSold    int     `json:"businessesSold"`
	UpgradesPurchased int     `json:"upgradesPurchased"`
	StocksTraded      int     `json:"stocksTraded"`
}

type Business struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Type             BusinessType       `json:"type"`
	Description      string             `json:"description"`
	Icon             string             `json:"icon"`
	Level            int                `json:"level"`
	Revenue          float64            `json:"revenue"`
	Cost             float64            `json:"cost"`
	Cash             float64            `json:"cash"`
	Employees        int                `json:"employees"`
	PurchasePrice    float64            `json:"purchasePrice"`
	UpgradePrice     float64            `json:"upgradePrice"`
	Unlocked         bool               `json:"unlocked"`
	Owned            bool               `json:"owned"`
	BoostActive      bool               `json:"boostActive"`
	AutoSell         bool               `json:"autoSell"`
	SpecialAbility   string             `json:"specialAbility,omitempty"`
	QuickMoneyOption bool               `json:"quickMoneyOption"`
	ManagementLevel  int                `json:"managementLevel"`
	Upgrades         []Upgrade          `json:"upgrades"`
	Strategies       []BusinessStrategy `json:"strategies"`
	Resources        []Resource         `json:"resources,omitempty"`
}

// ActiveStrategy returns the single active strategy, if any.
func (b Business) ActiveStrategy() (BusinessStrategy, bool) {
	for _, st := range b.Strategies {
		if st.Active {
			return st, true
		}
	}
	return BusinessStrategy{}, false
}

type Upgrade struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Cost              float64 `json:"cost"`
	RevenueMultiplier float64 `json:"revenueMultiplier"`
	CostReduction     float64 `json:"costReduction"`
	Unlocked          bool    `json:"unlocked"`
	Purchased         bool    `json:"purchased"`
	Icon              string  `json:"icon"`
}

type BusinessStrategy struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	RevenueMultiplier float64 `json:"revenueMultiplier"`
	CostMultiplier    float64 `json:"costMultiplier"`
	RiskLevel         int     `json:"riskLevel"`
	Unlocked          bool    `json:"unlocked"`
	Active            bool    `json:"active"`
}

type Resource struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitValue float64 `json:"unitValue"`
}

type Stock struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Symbol     string    `json:"symbol"`
	Price      float64   `json:"price"`
	Volatility float64   `json:"volatility"`
	Trend      float64   `json:"trend"`
	History    []float64 `json:"history"`
	Owned      int       `json:"owned"`
	// PurchasePrice is the volume-weighted cost basis; zero when nothing is held.
	PurchasePrice float64 `json:"purchasePrice,omitempty"`
}

type Asset struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         AssetType `json:"type"`
	Cost         float64   `json:"cost"`
	Value        float64   `json:"value"`
	Appreciation float64   `json:"appreciation"`
	Owned        bool      `json:"owned"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon"`
}

// EconomicEvent doubles as a catalog entry (TurnsLeft unset) and as an active
// instance copied from it when triggered.
type EconomicEvent struct {
	ID                    string         `json:"id"`
	Title                 string         `json:"title"`
	Description           string         `json:"description"`
	Type                  EventType      `json:"type"`
	AffectedBusinessTypes []BusinessType `json:"affectedBusinessTypes,omitempty"`
	AffectedStocks        []string       `json:"affectedStocks,omitempty"`
	Multiplier            float64        `json:"multiplier"`
	Duration              int            `json:"duration"`
	Applied               bool           `json:"applied"`
	TurnsLeft             int            `json:"turnsLeft,omitempty"`
}

func (e EconomicEvent) affectsBusiness(t BusinessType) bool {
	for _, bt := range e.AffectedBusinessTypes {
		if bt == t {
			return true
		}
	}
	return false
}

func (e EconomicEvent) affectsStock(id string) bool {
	for _, sid := range e.AffectedStocks {
		if sid == id {
			return true
		}
	}
	return false
}

// TurnReport summarises what a single AdvanceTurn did.
type TurnReport struct {
	Turn           int            `json:"turn"`
	Revenue        float64        `json:"revenue"`
	TriggeredEvent *EconomicEvent `json:"triggered_event,omitempty"`
	RetiredEvents  []string       `json:"retired_events,omitempty"`
	Unlocked       []string       `json:"unlocked,omitempty"`
}

func (s GameState) businessIndex(id string) int {
	for i := range s.Businesses {
		if s.Businesses[i].ID == id {
			return i
		}
	}
	return -1
}

func (s GameState) stockIndex(id string) int {
	for i := range s.Stocks {
		if s.Stocks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s GameState) assetIndex(id string) int {
	for i := range s.Assets {
		if s.Assets[i].ID == id {
			return i
		}
	}
	return -1
}

// BusinessByType returns the first business of the given type.
func (s GameState) BusinessByType(t BusinessType) (Business, bool) {
	for _, b := range s.Businesses {
		if b.Type == t {
			return b, true
		}
	}
	return Business{}, false
}

func (s GameState) StockBySymbol(symbol string) (Stock, bool) {
	for _, st := range s.Stocks {
		if st.Symbol == symbol {
			return st, true
		}
	}
	return Stock{}, false
}

func (s GameState) AssetByName(name string) (Asset, bool) {
	for _, a := range s.Assets {
		if a.Name == name {
			return a, true
		}
	}
	return Asset{}, false
}
