package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	cl "tycoon/internal/cli"
	"tycoon/internal/config"
	"tycoon/internal/game"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type app struct {
	cfg     config.CLIConfig
	apiBase string
	offline bool
	seed    int64
}

func main() {
	_ = godotenv.Load()
	cfg := config.LoadCLIFromEnv()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	a := &app{cfg: cfg, apiBase: cfg.APIBaseURL}

	root := &cobra.Command{
		Use:          "tycoon",
		Short:        "Business tycoon game client",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&a.apiBase, "api", a.apiBase, "API base URL")
	root.PersistentFlags().BoolVar(&a.offline, "offline", false, "play a local game without a server")
	root.PersistentFlags().Int64Var(&a.seed, "seed", 0, "random seed for offline play (0 = time)")

	root.AddCommand(
		a.newSignupCmd(),
		a.newLoginCmd(),
		a.newLogoutCmd(),
		a.newNewGameCmd(),
		a.newDashCmd(),
		a.newTurnCmd(),
		a.newBusinessesCmd(),
		a.newStocksCmd(),
		a.newAssetsCmd(),
		a.newSavesCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) client() *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(a.apiBase), "/"))
}

func (a *app) session() (cl.Session, error) {
	sess, err := cl.LoadSession(a.cfg.Home)
	if err != nil {
		return cl.Session{}, fmt.Errorf("login required: %w", err)
	}
	return sess, nil
}

func (a *app) backend() (cl.Backend, error) {
	if a.offline {
		return cl.NewOffline(a.cfg.Home, game.DefaultCatalog(), game.NewRand(a.seed)), nil
	}
	sess, err := a.session()
	if err != nil {
		return nil, err
	}
	return cl.NewRemote(a.client(), sess.Token), nil
}

func withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 30*time.Second)
}

func (a *app) newSignupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.authenticate(cmd, true)
		},
	}
}

func (a *app) newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.authenticate(cmd, false)
		},
	}
}

func (a *app) authenticate(cmd *cobra.Command, signup bool) error {
	username, err := promptRequired("Username")
	if err != nil {
		return err
	}
	password, err := promptPassword("Password")
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(cmd)
	defer cancel()

	client := a.client()
	call := client.Login
	if signup {
		call = client.Signup
	}
	session, err := call(ctx, username, password)
	if err != nil {
		return err
	}
	if err := cl.SaveSession(a.cfg.Home, cl.Session{
		Token:    session.Token,
		Username: session.Username,
		UserID:   session.UserID,
	}); err != nil {
		return err
	}
	if signup {
		printSuccess("Signup complete. Session saved.")
	} else {
		printSuccess("Login successful.")
	}
	return nil
}

func (a *app) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear local session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cl.ClearSession(a.cfg.Home); err != nil {
				return err
			}
			printSuccess("Logged out.")
			return nil
		},
	}
}

func (a *app) newNewGameCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.backend()
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			st, err := b.NewGame(ctx, name)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("New game started with %s cash.", formatMoney(st.Player.Cash)))
			renderDashboard(game.Summarize(st))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "player name")
	return cmd
}

func (a *app) newDashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dash",
		Short: "Show your dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.state(cmd)
			if err != nil {
				return err
			}
			renderDashboard(game.Summarize(st))
			return nil
		},
	}
}

func (a *app) newTurnCmd() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "turn",
		Short: "End the turn",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("count must be >= 1")
			}
			b, err := a.backend()
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			var st game.GameState
			for i := 0; i < count; i++ {
				var report game.TurnReport
				st, report, err = b.AdvanceTurn(ctx)
				if err != nil {
					return err
				}
				renderTurnReport(report)
			}
			renderDashboard(game.Summarize(st))
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of turns to play")
	return cmd
}

func (a *app) state(cmd *cobra.Command) (game.GameState, error) {
	b, err := a.backend()
	if err != nil {
		return game.GameState{}, err
	}
	ctx, cancel := withTimeout(cmd)
	defer cancel()
	return b.State(ctx)
}

// act resolves the target against the current state, then applies it.
func (a *app) act(cmd *cobra.Command, build func(game.GameState) (game.Action, error)) (game.GameState, error) {
	b, err := a.backend()
	if err != nil {
		return game.GameState{}, err
	}
	ctx, cancel := withTimeout(cmd)
	defer cancel()
	st, err := b.State(ctx)
	if err != nil {
		return game.GameState{}, err
	}
	action, err := build(st)
	if err != nil {
		return game.GameState{}, err
	}
	return b.Apply(ctx, action)
}

func (a *app) newBusinessesCmd() *cobra.Command {
	businesses := &cobra.Command{
		Use:     "businesses",
		Aliases: []string{"biz"},
		Short:   "List and manage businesses",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.state(cmd)
			if err != nil {
				return err
			}
			renderBusinesses(st)
			return nil
		},
	}

	simple := []struct {
		use, short string
		kind       game.ActionKind
		done       string
	}{
		{"buy <business>", "Buy a business", game.ActionBuyBusiness, "Bought %s."},
		{"upgrade <business>", "Raise a business level", game.ActionUpgradeBusiness, "Upgraded %s."},
		{"sell <business>", "Sell a business", game.ActionSellBusiness, "Sold %s."},
		{"boost <business>", "Collect quick money", game.ActionQuickMoney, "Quick money collected from %s."},
	}
	for _, c := range simple {
		c := c
		businesses.AddCommand(&cobra.Command{
			Use:   c.use,
			Short: c.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var name string
				st, err := a.act(cmd, func(st game.GameState) (game.Action, error) {
					biz, err := findBusiness(st, args[0])
					if err != nil {
						return game.Action{}, err
					}
					name = biz.Name
					return game.Action{Kind: c.kind, TargetID: biz.ID}, nil
				})
				if err != nil {
					return err
				}
				printSuccess(fmt.Sprintf(c.done, name))
				fmt.Printf("Cash: %s\n", formatMoney(st.Player.Cash))
				return nil
			},
		})
	}

	businesses.AddCommand(&cobra.Command{
		Use:   "show <business>",
		Short: "Show upgrades and strategies of a business",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.state(cmd)
			if err != nil {
				return err
			}
			biz, err := findBusiness(st, args[0])
			if err != nil {
				return err
			}
			renderBusiness(biz)
			return nil
		},
	})

	businesses.AddCommand(&cobra.Command{
		Use:   "improve <business> <upgrade>",
		Short: "Buy an upgrade for a business",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			st, err := a.act(cmd, func(st game.GameState) (game.Action, error) {
				biz, err := findBusiness(st, args[0])
				if err != nil {
					return game.Action{}, err
				}
				up, err := findUpgrade(biz, args[1])
				if err != nil {
					return game.Action{}, err
				}
				name = up.Name
				return game.Action{Kind: game.ActionBuyUpgrade, TargetID: biz.ID, ItemID: up.ID}, nil
			})
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Purchased %s.", name))
			fmt.Printf("Cash: %s\n", formatMoney(st.Player.Cash))
			return nil
		},
	})

	businesses.AddCommand(&cobra.Command{
		Use:   "strategy <business> <strategy>",
		Short: "Switch the operating strategy of a business",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			_, err := a.act(cmd, func(st game.GameState) (game.Action, error) {
				biz, err := findBusiness(st, args[0])
				if err != nil {
					return game.Action{}, err
				}
				strat, err := findStrategy(biz, args[1])
				if err != nil {
					return game.Action{}, err
				}
				name = strat.Name
				return game.Action{Kind: game.ActionApplyStrategy, TargetID: biz.ID, ItemID: strat.ID}, nil
			})
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Strategy set to %s.", name))
			return nil
		},
	})
	return businesses
}

func (a *app) newStocksCmd() *cobra.Command {
	stocks := &cobra.Command{
		Use:   "stocks",
		Short: "Show the stock market and trade shares",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.state(cmd)
			if err != nil {
				return err
			}
			renderStocks(st)
			return nil
		},
	}
	for _, side := range []struct {
		use  string
		kind game.ActionKind
		verb string
	}{
		{"buy <symbol> <quantity>", game.ActionBuyStock, "Bought"},
		{"sell <symbol> <quantity>", game.ActionSellStock, "Sold"},
	} {
		side := side
		stocks.AddCommand(&cobra.Command{
			Use:   side.use,
			Short: side.verb + " shares",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				qty, err := strconv.Atoi(strings.TrimSpace(args[1]))
				if err != nil || qty <= 0 {
					return fmt.Errorf("invalid quantity %q", args[1])
				}
				var symbol string
				st, err := a.act(cmd, func(st game.GameState) (game.Action, error) {
					stock, err := findStock(st, args[0])
					if err != nil {
						return game.Action{}, err
					}
					symbol = stock.Symbol
					return game.Action{Kind: side.kind, TargetID: stock.ID, Quantity: qty}, nil
				})
				if err != nil {
					return err
				}
				printSuccess(fmt.Sprintf("%s %d %s.", side.verb, qty, symbol))
				fmt.Printf("Cash: %s\n", formatMoney(st.Player.Cash))
				return nil
			},
		})
	}
	return stocks
}

func (a *app) newAssetsCmd() *cobra.Command {
	assets := &cobra.Command{
		Use:   "assets",
		Short: "List and trade assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.state(cmd)
			if err != nil {
				return err
			}
			renderAssets(st)
			return nil
		},
	}
	for _, side := range []struct {
		use  string
		kind game.ActionKind
		verb string
	}{
		{"buy <asset>", game.ActionBuyAsset, "Bought"},
		{"sell <asset>", game.ActionSellAsset, "Sold"},
	} {
		side := side
		assets.AddCommand(&cobra.Command{
			Use:   side.use,
			Short: side.verb + " an asset",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var name string
				st, err := a.act(cmd, func(st game.GameState) (game.Action, error) {
					asset, err := findAsset(st, args[0])
					if err != nil {
						return game.Action{}, err
					}
					name = asset.Name
					return game.Action{Kind: side.kind, TargetID: asset.ID}, nil
				})
				if err != nil {
					return err
				}
				printSuccess(fmt.Sprintf("%s %s.", side.verb, name))
				fmt.Printf("Cash: %s\n", formatMoney(st.Player.Cash))
				return nil
			},
		})
	}
	return assets
}

func (a *app) newSavesCmd() *cobra.Command {
	saves := &cobra.Command{
		Use:   "saves",
		Short: "Manage saved games (online only)",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.offline {
				return fmt.Errorf("saves are only available online")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			out, err := a.client().ListSaves(ctx, sess.Token)
			if err != nil {
				return err
			}
			renderSaves(out)
			return nil
		},
	}

	saves.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Save the current game",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			out, err := a.client().CreateSave(ctx, sess.Token, strings.Join(args, " "))
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Saved %q (turn %d) as %s.", out.Name, out.Turn, out.ID))
			return nil
		},
	})

	saves.AddCommand(&cobra.Command{
		Use:   "update <id> [name]",
		Short: "Overwrite a save with the current game",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			out, err := a.client().UpdateSave(ctx, sess.Token, args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Updated %q (turn %d).", out.Name, out.Turn))
			return nil
		},
	})

	saves.AddCommand(&cobra.Command{
		Use:   "load <id>",
		Short: "Resume a saved game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			st, err := a.client().LoadSave(ctx, sess.Token, args[0])
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Loaded turn %d.", st.Turn))
			renderDashboard(game.Summarize(st))
			return nil
		},
	})

	saves.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			if err := a.client().DeleteSave(ctx, sess.Token, args[0]); err != nil {
				return err
			}
			printSuccess("Save deleted.")
			return nil
		},
	})
	return saves
}
