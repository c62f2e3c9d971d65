package game

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

const (
	StartingCash           = 1000.0
	StartingMarketTrend    = 0.05
	StartingEconomicHealth = 70.0

	BusinessValueMultiplier = 1.5
	BusinessSaleMultiplier  = 0.8

	MinStockPrice     = 1.0
	StockHistoryLimit = 30
	MaxStockTrend     = 2.0

	MaxMarketTrend     = 0.5
	MaxEconomicHealth  = 100.0
	EventTriggerChance = 0.20

	QuickMoneyMinMultiplier = 2.0
	QuickMoneyMaxMultiplier = 4.0
)

var (
	// ErrRejected is wrapped by every validation rejection of a transaction.
	ErrRejected = errors.New("rejected")

	ErrBusinessNotFound  = rejection("business not found")
	ErrUpgradeNotFound   = rejection("upgrade not found")
	ErrStrategyNotFound  = rejection("strategy not found")
	ErrStockNotFound     = rejection("stock not found")
	ErrAssetNotFound     = rejection("asset not found")
	ErrInsufficientFunds = rejection("insufficient funds")
	ErrInsufficientShare = rejection("insufficient shares")
	ErrBusinessLocked    = rejection("business is locked")
	ErrNotOwned          = rejection("not owned")
	ErrAlreadyOwned      = rejection("already owned")
	ErrAlreadyPurchased  = rejection("upgrade already purchased")
	ErrUpgradeLocked     = rejection("upgrade is locked")
	ErrStrategyLocked    = rejection("strategy is locked")
	ErrNoQuickMoney      = rejection("business has no quick money ability")
	ErrBoostOnCooldown   = rejection("quick money already used this turn")
	ErrInvalidQuantity   = rejection("quantity must be > 0")
	ErrUnknownAction     = rejection("unknown action")

	ErrInvalidName  = errors.New("invalid name")
	ErrInvalidState = errors.New("invalid game state")
	ErrNoActiveGame = errors.New("no active game")
	ErrUnauthorized = errors.New("unauthorized")
)

type rejectionError struct {
	msg string
}

func (e *rejectionError) Error() string { return e.msg }

func (e *rejectionError) Unwrap() error { return ErrRejected }

func rejection(msg string) error {
	return &rejectionError{msg: msg}
}

var blockedNameFragments = []string{
	"admin",
	"shit",
	"fuck",
	"bitch",
	"nazi",
}

// validateName applies to player and save names. Empty is rejected here;
// callers that allow an empty name check before calling.
func validateName(name string) error {
	clean := strings.TrimSpace(name)
	if clean == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidName)
	}
	if utf8.RuneCountInString(clean) > 64 {
		return fmt.Errorf("%w: name too long (max 64 chars)", ErrInvalidName)
	}
	lower := strings.ToLower(clean)
	for _, fragment := range blockedNameFragments {
		if strings.Contains(lower, fragment) {
			return fmt.Errorf("%w: name contains blocked content", ErrInvalidName)
		}
	}
	return nil
}

// ValidatePlayerName accepts an empty name; anything else must pass the
// same checks as save names.
func ValidatePlayerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	return validateName(name)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
