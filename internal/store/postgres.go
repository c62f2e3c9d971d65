package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores users and saves; the state document is kept as JSONB.
// Schema lives in internal/db.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) CreateUser(ctx context.Context, username, passwordHash string) (User, error) {
	u := User{ID: uuid.NewString(), Username: username, PasswordHash: passwordHash}
	err := p.pool.QueryRow(ctx, `
		INSERT INTO users (id, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, u.ID, u.Username, u.PasswordHash).Scan(&u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrUsernameTaken
		}
		return User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (p *Postgres) UserByUsername(ctx context.Context, username string) (User, error) {
	var u User
	err := p.pool.QueryRow(ctx, `
		SELECT id::text, username, password_hash, created_at
		FROM users
		WHERE lower(username) = lower($1)
	`, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

func (p *Postgres) CreateSave(ctx context.Context, s Save) (Save, error) {
	s.ID = uuid.NewString()
	err := p.pool.QueryRow(ctx, `
		INSERT INTO saves (id, user_id, name, turn, net_worth, state)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, s.ID, s.UserID, s.Name, s.Turn, s.NetWorth, s.State).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return Save{}, fmt.Errorf("insert save: %w", err)
	}
	return s, nil
}

func (p *Postgres) UpdateSave(ctx context.Context, s Save) (Save, error) {
	if _, err := uuid.Parse(s.ID); err != nil {
		return Save{}, ErrNotFound
	}
	var out Save
	err := p.pool.QueryRow(ctx, `
		UPDATE saves
		SET name = $2, turn = $3, net_worth = $4, state = $5, updated_at = $6
		WHERE id = $1
		RETURNING id::text, user_id::text, name, turn, net_worth, state::text, created_at, updated_at
	`, s.ID, s.Name, s.Turn, s.NetWorth, s.State, time.Now().UTC()).Scan(
		&out.ID, &out.UserID, &out.Name, &out.Turn, &out.NetWorth, &out.State, &out.CreatedAt, &out.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Save{}, ErrNotFound
	}
	if err != nil {
		return Save{}, fmt.Errorf("update save: %w", err)
	}
	return out, nil
}

func (p *Postgres) GetSave(ctx context.Context, id string) (Save, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Save{}, ErrNotFound
	}
	var s Save
	err := p.pool.QueryRow(ctx, `
		SELECT id::text, user_id::text, name, turn, net_worth, state::text, created_at, updated_at
		FROM saves
		WHERE id = $1
	`, id).Scan(&s.ID, &s.UserID, &s.Name, &s.Turn, &s.NetWorth, &s.State, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Save{}, ErrNotFound
	}
	if err != nil {
		return Save{}, fmt.Errorf("query save: %w", err)
	}
	return s, nil
}

func (p *Postgres) ListSaves(ctx context.Context, userID string) ([]Save, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id::text, user_id::text, name, turn, net_worth, created_at, updated_at
		FROM saves
		WHERE user_id = $1
		ORDER BY updated_at DESC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query saves: %w", err)
	}
	defer rows.Close()

	out := make([]Save, 0)
	for rows.Next() {
		var s Save
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Turn, &s.NetWorth, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan save: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (p *Postgres) DeleteSave(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	tag, err := p.pool.Exec(ctx, `DELETE FROM saves WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete save: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Close is a no-op; the pool belongs to the caller.
func (p *Postgres) Close() error { return nil }

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
