package game

import (
	"fmt"
	"strings"
)

type ActionKind string

const (
	ActionBuyBusiness     ActionKind = "buy_business"
	ActionUpgradeBusiness ActionKind = "upgrade_business"
	ActionSellBusiness    ActionKind = "sell_business"
	ActionBuyUpgrade      ActionKind = "buy_upgrade"
	ActionApplyStrategy   ActionKind = "apply_strategy"
	ActionQuickMoney      ActionKind = "quick_money"
	ActionBuyStock        ActionKind = "buy_stock"
	ActionSellStock       ActionKind = "sell_stock"
	ActionBuyAsset        ActionKind = "buy_asset"
	ActionSellAsset       ActionKind = "sell_asset"
)

// Action is a single transaction request. TargetID names the business, stock
// or asset; ItemID names the upgrade or strategy within a business.
type Action struct {
	Kind     ActionKind `json:"kind"`
	TargetID string     `json:"target_id"`
	ItemID   string     `json:"item_id,omitempty"`
	Quantity int        `json:"quantity,omitempty"`
}

func (a Action) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", a.Kind, a.TargetID)
	if a.ItemID != "" {
		fmt.Fprintf(&b, "/%s", a.ItemID)
	}
	if a.Quantity != 0 {
		fmt.Fprintf(&b, " x%d", a.Quantity)
	}
	return b.String()
}

// Apply routes an action to its transaction.
func Apply(s GameState, a Action, rnd Source) (GameState, error) {
	switch a.Kind {
	case ActionBuyBusiness:
		return PurchaseBusiness(s, a.TargetID)
	case ActionUpgradeBusiness:
		return UpgradeBusiness(s, a.TargetID)
	case ActionSellBusiness:
		return SellBusiness(s, a.TargetID)
	case ActionBuyUpgrade:
		return PurchaseUpgrade(s, a.TargetID, a.ItemID)
	case ActionApplyStrategy:
		return ApplyStrategy(s, a.TargetID, a.ItemID)
	case ActionQuickMoney:
		return ActivateQuickMoney(s, a.TargetID, rnd)
	case ActionBuyStock:
		return BuyStock(s, a.TargetID, a.Quantity)
	case ActionSellStock:
		return SellStock(s, a.TargetID, a.Quantity)
	case ActionBuyAsset:
		return BuyAsset(s, a.TargetID)
	case ActionSellAsset:
		return SellAsset(s, a.TargetID)
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
	}
}
