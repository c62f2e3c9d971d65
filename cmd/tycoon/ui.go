package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"tycoon/internal/game"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgCyan, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	danger      = color.New(color.FgRed, color.Bold)
	neutral     = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func promptRequired(label string) (string, error) {
	for {
		fmt.Printf("%s: ", label)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text != "" {
			return text, nil
		}
		printWarn(label + " is required.")
	}
}

// promptPassword reads without echo when stdin is a terminal.
func promptPassword(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return promptRequired(label)
	}
	for {
		fmt.Printf("%s: ", label)
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		if text := strings.TrimSpace(string(raw)); text != "" {
			return text, nil
		}
		printWarn(label + " is required.")
	}
}

func renderDashboard(d game.Dashboard) {
	title := "DASHBOARD"
	if d.PlayerName != "" {
		title = strings.ToUpper(d.PlayerName)
	}
	accent.Printf("\n== %s (Turn %d) ==\n", title, d.Turn)
	fmt.Printf("Cash:             %s\n", formatMoney(d.Cash))
	fmt.Printf("Net Worth:        %s\n", formatMoney(d.NetWorth))
	fmt.Printf("P/L vs Start:     %s\n", colorizeMoney(d.NetWorth-game.StartingCash))
	fmt.Printf("Revenue/turn:     %s\n", formatMoney(d.RevenuePerTurn))
	fmt.Printf("Market Trend:     %s\n", colorizePercent(d.MarketTrend*100))
	fmt.Printf("Economic Health:  %.1f\n", d.EconomicHealth)
	fmt.Printf("Unlock Progress:  %.0f%%\n", d.UnlockProgress)

	fmt.Println()
	accent.Println("Businesses")
	if len(d.Businesses) == 0 {
		printInfo("No businesses yet.")
	} else {
		fmt.Printf("%-24s %5s %12s %12s %12s %-12s %-6s\n", "NAME", "LEVEL", "REV/TURN", "VALUE", "NEXT LVL", "STRATEGY", "BOOST")
		for _, b := range d.Businesses {
			boost := "-"
			if b.BoostReady {
				boost = "ready"
			}
			fmt.Printf("%-24s %5d %12s %12s %12s %-12s %-6s\n",
				truncate(b.Name, 24),
				b.Level,
				formatMoney(b.RevenuePerTurn),
				formatMoney(b.Value),
				formatMoney(b.NextUpgrade),
				truncate(b.Strategy, 12),
				boost,
			)
		}
	}

	fmt.Println()
	accent.Println("Positions")
	if len(d.Positions) == 0 {
		printInfo("No open positions yet.")
	} else {
		fmt.Printf("%-6s %-20s %8s %10s %10s %12s %14s %9s\n", "SYMBOL", "NAME", "SHARES", "AVG", "NOW", "VALUE", "P/L", "P/L%")
		for _, p := range d.Positions {
			fmt.Printf("%-6s %-20s %8d %10s %10s %12s %14s %9s\n",
				p.Symbol,
				truncate(p.Name, 20),
				p.Shares,
				formatMoney(p.AvgPrice),
				formatMoney(p.Price),
				formatMoney(p.MarketValue),
				colorizeMoney(p.Unrealized),
				colorizePercent(p.UnrealizedPct),
			)
		}
	}

	if len(d.Assets) > 0 {
		fmt.Println()
		accent.Println("Assets")
		fmt.Printf("%-24s %-9s %12s %12s %9s\n", "NAME", "TYPE", "COST", "VALUE", "CHANGE")
		for _, a := range d.Assets {
			fmt.Printf("%-24s %-9s %12s %12s %9s\n",
				truncate(a.Name, 24),
				strings.ToLower(a.Type),
				formatMoney(a.Cost),
				formatMoney(a.Value),
				colorizePercent(a.ChangePct),
			)
		}
	}

	if len(d.ActiveEvents) > 0 {
		fmt.Println()
		accent.Println("Active Events")
		for _, ev := range d.ActiveEvents {
			line := fmt.Sprintf("%s x%.2f (%d turns left)", ev.Title, ev.Multiplier, ev.TurnsLeft)
			if ev.Type == string(game.EventNegative) {
				danger.Println(line)
			} else {
				success.Println(line)
			}
		}
	}
	fmt.Println()
}

func renderTurnReport(r game.TurnReport) {
	accent.Printf("\n== TURN %d ==\n", r.Turn)
	fmt.Printf("Revenue collected: %s\n", colorizeMoney(r.Revenue))
	if r.TriggeredEvent != nil {
		ev := r.TriggeredEvent
		line := fmt.Sprintf("Event: %s. %s", ev.Title, ev.Description)
		if ev.Type == game.EventNegative {
			danger.Println(line)
		} else {
			warn.Println(line)
		}
	}
	for _, title := range r.RetiredEvents {
		printInfo("Event ended: " + title)
	}
	for _, name := range r.Unlocked {
		printSuccess("Unlocked: " + name)
	}
}

func renderBusinesses(st game.GameState) {
	accent.Println("\n== BUSINESSES ==")
	fmt.Printf("%-3s %-24s %-8s %12s %12s %5s\n", "#", "NAME", "STATUS", "PRICE", "REV/TURN", "LEVEL")
	for i, b := range st.Businesses {
		status := "locked"
		switch {
		case b.Owned:
			status = success.Sprint("owned")
		case b.Unlocked:
			status = "for sale"
		}
		level := "-"
		if b.Owned {
			level = fmt.Sprintf("%d", b.Level)
		}
		fmt.Printf("%-3d %-24s %-8s %12s %12s %5s\n",
			i+1,
			truncate(b.Name, 24),
			status,
			formatMoney(b.PurchasePrice),
			formatMoney(b.Revenue),
			level,
		)
	}
	fmt.Println()
}

func renderBusiness(b game.Business) {
	accent.Printf("\n== %s ==\n", strings.ToUpper(b.Name))
	if b.Description != "" {
		fmt.Println(b.Description)
	}
	fmt.Printf("Level:       %d\n", b.Level)
	fmt.Printf("Revenue:     %s\n", formatMoney(b.Revenue))
	fmt.Printf("Cost:        %s\n", formatMoney(b.Cost))
	fmt.Printf("Sale price:  %s\n", formatMoney(game.BusinessSalePrice(b)))
	if b.SpecialAbility != "" {
		fmt.Printf("Ability:     %s\n", b.SpecialAbility)
	}

	fmt.Println()
	accent.Println("Upgrades")
	for i, u := range b.Upgrades {
		state := "available"
		switch {
		case u.Purchased:
			state = success.Sprint("purchased")
		case !u.Unlocked:
			state = "locked"
		}
		fmt.Printf("%d. %-24s %12s  %s\n", i+1, u.Name, formatMoney(u.Cost), state)
	}

	fmt.Println()
	accent.Println("Strategies")
	for i, s := range b.Strategies {
		state := ""
		if s.Active {
			state = success.Sprint("active")
		}
		fmt.Printf("%d. %-14s rev x%.2f cost x%.2f risk %d  %s\n", i+1, s.Name, s.RevenueMultiplier, s.CostMultiplier, s.RiskLevel, state)
	}
	fmt.Println()
}

func renderStocks(st game.GameState) {
	accent.Println("\n== STOCK MARKET ==")
	fmt.Printf("%-6s %-22s %10s %9s %8s %10s\n", "SYMBOL", "NAME", "PRICE", "LAST", "OWNED", "MAX BUY")
	for _, s := range st.Stocks {
		fmt.Printf("%-6s %-22s %10s %9s %8d %10d\n",
			s.Symbol,
			truncate(s.Name, 22),
			formatMoney(s.Price),
			colorizePercent(game.LastChangePercent(s)),
			s.Owned,
			game.MaxAffordableQuantity(st, s.Price),
		)
	}
	fmt.Println()
}

func renderAssets(st game.GameState) {
	accent.Println("\n== ASSETS ==")
	fmt.Printf("%-3s %-24s %-9s %12s %12s %7s\n", "#", "NAME", "TYPE", "COST", "VALUE", "APPR")
	for i, a := range st.Assets {
		name := truncate(a.Name, 24)
		if a.Owned {
			name = success.Sprint(name)
		}
		fmt.Printf("%-3d %-24s %-9s %12s %12s %6.1f%%\n",
			i+1,
			name,
			strings.ToLower(string(a.Type)),
			formatMoney(a.Cost),
			formatMoney(a.Value),
			a.Appreciation*100,
		)
	}
	fmt.Println()
}

func renderSaves(saves []game.SaveSummary) {
	accent.Println("\n== SAVED GAMES ==")
	if len(saves) == 0 {
		printInfo("No saves yet.")
		return
	}
	fmt.Printf("%-36s %-20s %5s %14s %-16s\n", "ID", "NAME", "TURN", "NET WORTH", "UPDATED")
	for _, s := range saves {
		fmt.Printf("%-36s %-20s %5d %14s %-16s\n",
			s.ID,
			truncate(s.Name, 20),
			s.Turn,
			formatMoney(s.NetWorth),
			s.UpdatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	fmt.Println()
}

func colorizeMoney(v float64) string {
	text := formatMoney(v)
	switch {
	case v > 0:
		return success.Sprint("+" + text)
	case v < 0:
		return danger.Sprint(text)
	default:
		return neutral.Sprint(text)
	}
}

func colorizePercent(v float64) string {
	text := fmt.Sprintf("%+.2f%%", v)
	switch {
	case v > 0:
		return success.Sprint(text)
	case v < 0:
		return danger.Sprint(text)
	default:
		return neutral.Sprint(text)
	}
}

// formatMoney renders a dollar amount with cents and thousands separators.
func formatMoney(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole, frac, _ := strings.Cut(d.StringFixed(2), ".")
	return sign + "$" + comma(whole) + "." + frac
}

func comma(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
		if len(s) > pre {
			b.WriteByte(',')
		}
	}
	for i := pre; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
