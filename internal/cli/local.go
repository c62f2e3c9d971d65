package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tycoon/internal/game"
)

// The offline game lives in a single JSON document next to the session file.
// Writes go through a temp file and a rename so a crash never leaves a
// half-written game behind.

func localGamePath(dir string) (string, error) {
	if err := ensureDir(dir); err != nil {
		return "", err
	}
	return filepath.Join(dir, "game.json"), nil
}

func LoadLocalGame(dir string) (game.GameState, error) {
	path, err := localGamePath(dir)
	if err != nil {
		return game.GameState{}, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return game.GameState{}, game.ErrNoActiveGame
		}
		return game.GameState{}, err
	}
	st, err := game.DecodeState(raw)
	if err != nil {
		return game.GameState{}, fmt.Errorf("read %s: %w", path, err)
	}
	return st, nil
}

func SaveLocalGame(dir string, st game.GameState) error {
	path, err := localGamePath(dir)
	if err != nil {
		return err
	}
	raw, err := game.EncodeState(st)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
