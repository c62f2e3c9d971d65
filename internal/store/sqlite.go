package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"github.com/google/uuid"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL UNIQUE COLLATE NOCASE,
	password_hash TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS saves (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	turn INTEGER NOT NULL,
	net_worth REAL NOT NULL,
	state BLOB NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS saves_user_updated_idx ON saves(user_id, updated_at DESC);
`

// SQLite is the single-file store used for local play and small deployments.
type SQLite struct {
	db *sql.DB
}

func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer; the driver serialises anyway and this avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma %s: %w", p, err)
		}
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) CreateUser(ctx context.Context, username, passwordHash string) (User, error) {
	u := User{ID: uuid.NewString(), Username: username, PasswordHash: passwordHash, CreatedAt: time.Now().UTC()}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		u.ID, u.Username, u.PasswordHash, u.CreatedAt.UnixMilli(),
	)
	if err != nil {
		if isSQLiteUnique(err) {
			return User{}, ErrUsernameTaken
		}
		return User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (s *SQLite) UserByUsername(ctx context.Context, username string) (User, error) {
	var (
		u       User
		created int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = ?`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("query user: %w", err)
	}
	u.CreatedAt = time.UnixMilli(created).UTC()
	return u, nil
}

func (s *SQLite) CreateSave(ctx context.Context, sv Save) (Save, error) {
	now := time.Now().UTC()
	sv.ID = uuid.NewString()
	sv.CreatedAt, sv.UpdatedAt = now, now
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO saves (id, user_id, name, turn, net_worth, state, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sv.ID, sv.UserID, sv.Name, sv.Turn, sv.NetWorth, sv.State, now.UnixMilli(), now.UnixMilli(),
	)
	if err != nil {
		return Save{}, fmt.Errorf("insert save: %w", err)
	}
	return sv, nil
}

func (s *SQLite) UpdateSave(ctx context.Context, sv Save) (Save, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE saves SET name = ?, turn = ?, net_worth = ?, state = ?, updated_at = ? WHERE id = ?`,
		sv.Name, sv.Turn, sv.NetWorth, sv.State, now.UnixMilli(), sv.ID,
	)
	if err != nil {
		return Save{}, fmt.Errorf("update save: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Save{}, ErrNotFound
	}
	return s.GetSave(ctx, sv.ID)
}

func (s *SQLite) GetSave(ctx context.Context, id string) (Save, error) {
	var (
		sv               Save
		created, updated int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, turn, net_worth, state, created_at, updated_at FROM saves WHERE id = ?`, id,
	).Scan(&sv.ID, &sv.UserID, &sv.Name, &sv.Turn, &sv.NetWorth, &sv.State, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Save{}, ErrNotFound
	}
	if err != nil {
		return Save{}, fmt.Errorf("query save: %w", err)
	}
	sv.CreatedAt = time.UnixMilli(created).UTC()
	sv.UpdatedAt = time.UnixMilli(updated).UTC()
	return sv, nil
}

func (s *SQLite) ListSaves(ctx context.Context, userID string) ([]Save, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, name, turn, net_worth, created_at, updated_at
		 FROM saves WHERE user_id = ? ORDER BY updated_at DESC, id ASC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query saves: %w", err)
	}
	defer rows.Close()

	out := make([]Save, 0)
	for rows.Next() {
		var (
			sv               Save
			created, updated int64
		)
		if err := rows.Scan(&sv.ID, &sv.UserID, &sv.Name, &sv.Turn, &sv.NetWorth, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan save: %w", err)
		}
		sv.CreatedAt = time.UnixMilli(created).UTC()
		sv.UpdatedAt = time.UnixMilli(updated).UTC()
		out = append(out, sv)
	}
	return out, rows.Err()
}

func (s *SQLite) DeleteSave(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saves WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete save: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func isSQLiteUnique(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
