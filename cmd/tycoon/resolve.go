package main

import (
	"fmt"
	"strconv"
	"strings"

	"tycoon/internal/game"
)

// Targets on the command line may be given as the list number shown by the
// list commands, the entity id, or its name (a unique prefix is enough).

func pick(ref string, n int, id, name func(int) string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, fmt.Errorf("empty reference")
	}
	if num, err := strconv.Atoi(ref); err == nil {
		if num < 1 || num > n {
			return -1, fmt.Errorf("number %d out of range 1-%d", num, n)
		}
		return num - 1, nil
	}
	for i := 0; i < n; i++ {
		if id(i) == ref || strings.EqualFold(name(i), ref) {
			return i, nil
		}
	}
	needle := strings.ToLower(ref)
	match := -1
	for i := 0; i < n; i++ {
		if strings.HasPrefix(strings.ToLower(name(i)), needle) {
			if match >= 0 {
				return -1, fmt.Errorf("%q is ambiguous", ref)
			}
			match = i
		}
	}
	if match < 0 {
		return -1, fmt.Errorf("nothing matches %q", ref)
	}
	return match, nil
}

func findBusiness(st game.GameState, ref string) (game.Business, error) {
	if b, ok := st.BusinessByType(game.BusinessType(strings.ToUpper(strings.TrimSpace(ref)))); ok {
		return b, nil
	}
	i, err := pick(ref, len(st.Businesses),
		func(i int) string { return st.Businesses[i].ID },
		func(i int) string { return st.Businesses[i].Name },
	)
	if err != nil {
		return game.Business{}, fmt.Errorf("business: %w", err)
	}
	return st.Businesses[i], nil
}

func findUpgrade(b game.Business, ref string) (game.Upgrade, error) {
	i, err := pick(ref, len(b.Upgrades),
		func(i int) string { return b.Upgrades[i].ID },
		func(i int) string { return b.Upgrades[i].Name },
	)
	if err != nil {
		return game.Upgrade{}, fmt.Errorf("upgrade: %w", err)
	}
	return b.Upgrades[i], nil
}

func findStrategy(b game.Business, ref string) (game.BusinessStrategy, error) {
	i, err := pick(ref, len(b.Strategies),
		func(i int) string { return b.Strategies[i].ID },
		func(i int) string { return b.Strategies[i].Name },
	)
	if err != nil {
		return game.BusinessStrategy{}, fmt.Errorf("strategy: %w", err)
	}
	return b.Strategies[i], nil
}

func findStock(st game.GameState, ref string) (game.Stock, error) {
	if s, ok := st.StockBySymbol(strings.ToUpper(strings.TrimSpace(ref))); ok {
		return s, nil
	}
	for _, s := range st.Stocks {
		if s.ID == ref {
			return s, nil
		}
	}
	return game.Stock{}, fmt.Errorf("stock: unknown symbol %q", ref)
}

func findAsset(st game.GameState, ref string) (game.Asset, error) {
	i, err := pick(ref, len(st.Assets),
		func(i int) string { return st.Assets[i].ID },
		func(i int) string { return st.Assets[i].Name },
	)
	if err != nil {
		return game.Asset{}, fmt.Errorf("asset: %w", err)
	}
	return st.Assets[i], nil
}
