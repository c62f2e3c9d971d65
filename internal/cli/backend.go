package cli

import (
	"context"
	"strings"

	"tycoon/internal/game"
)

// Backend is what the CLI plays against: the API server, or the engine
// running in process over a local game file.
type Backend interface {
	NewGame(ctx context.Context, playerName string) (game.GameState, error)
	State(ctx context.Context) (game.GameState, error)
	AdvanceTurn(ctx context.Context) (game.GameState, game.TurnReport, error)
	Apply(ctx context.Context, a game.Action) (game.GameState, error)
}

type Remote struct {
	client *Client
	token  string
}

func NewRemote(client *Client, token string) *Remote {
	return &Remote{client: client, token: token}
}

func (r *Remote) NewGame(ctx context.Context, playerName string) (game.GameState, error) {
	return r.client.NewGame(ctx, r.token, playerName)
}

func (r *Remote) State(ctx context.Context) (game.GameState, error) {
	return r.client.State(ctx, r.token)
}

func (r *Remote) AdvanceTurn(ctx context.Context) (game.GameState, game.TurnReport, error) {
	out, err := r.client.Turn(ctx, r.token)
	return out.State, out.Report, err
}

func (r *Remote) Apply(ctx context.Context, a game.Action) (game.GameState, error) {
	return r.client.Act(ctx, r.token, a)
}

// Offline runs the engine directly and persists after every successful step.
type Offline struct {
	dir     string
	catalog game.Catalog
	rand    game.Source
}

func NewOffline(dir string, cat game.Catalog, rnd game.Source) *Offline {
	if rnd == nil {
		rnd = game.NewRand(0)
	}
	return &Offline{dir: dir, catalog: cat, rand: rnd}
}

func (o *Offline) NewGame(_ context.Context, playerName string) (game.GameState, error) {
	playerName = strings.TrimSpace(playerName)
	if err := game.ValidatePlayerName(playerName); err != nil {
		return game.GameState{}, err
	}
	st := game.NewGame(o.catalog, playerName, o.rand)
	if err := SaveLocalGame(o.dir, st); err != nil {
		return game.GameState{}, err
	}
	return st, nil
}

func (o *Offline) State(_ context.Context) (game.GameState, error) {
	return LoadLocalGame(o.dir)
}

func (o *Offline) AdvanceTurn(_ context.Context) (game.GameState, game.TurnReport, error) {
	st, err := LoadLocalGame(o.dir)
	if err != nil {
		return game.GameState{}, game.TurnReport{}, err
	}
	next, report := game.AdvanceTurn(st, o.rand)
	if err := SaveLocalGame(o.dir, next); err != nil {
		return game.GameState{}, game.TurnReport{}, err
	}
	return next, report, nil
}

func (o *Offline) Apply(_ context.Context, a game.Action) (game.GameState, error) {
	st, err := LoadLocalGame(o.dir)
	if err != nil {
		return game.GameState{}, err
	}
	next, err := game.Apply(st, a, o.rand)
	if err != nil {
		return st, err
	}
	if err := SaveLocalGame(o.dir, next); err != nil {
		return st, err
	}
	return next, nil
}
