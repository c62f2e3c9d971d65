package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUsernameTaken = errors.New("username already taken")
)

type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Save is a serialized game snapshot owned by one user. Turn and NetWorth
// are copied out of the document so lists do not have to decode it.
type Save struct {
	ID        string
	UserID    string
	Name      string
	Turn      int
	NetWorth  float64
	State     []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is the persistence boundary for accounts and saves. ListSaves
// returns rows without State, newest first.
type Store interface {
	CreateUser(ctx context.Context, username, passwordHash string) (User, error)
	UserByUsername(ctx context.Context, username string) (User, error)

	CreateSave(ctx context.Context, s Save) (Save, error)
	UpdateSave(ctx context.Context, s Save) (Save, error)
	GetSave(ctx context.Context, id string) (Save, error)
	ListSaves(ctx context.Context, userID string) ([]Save, error)
	DeleteSave(ctx context.Context, id string) error

	Close() error
}
