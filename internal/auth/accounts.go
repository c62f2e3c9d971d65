package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"tycoon/internal/store"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidUsername    = errors.New("username must be 3-24 chars: letters, numbers, underscore")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

var usernameRE = regexp.MustCompile(`^[a-zA-Z0-9_]{3,24}$`)

const minPasswordLen = 8

type Session struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	ExpiresIn int    `json:"expires_in"`
}

type User struct {
	ID       string
	Username string
}

// Accounts registers and logs in players against the store and issues
// bearer tokens for the API.
type Accounts struct {
	store  store.Store
	tokens *Tokens
	cost   int
}

// NewAccounts hashes passwords with the given bcrypt cost; 0 selects
// bcrypt.DefaultCost.
func NewAccounts(st store.Store, tokens *Tokens, cost int) *Accounts {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Accounts{store: st, tokens: tokens, cost: cost}
}

func (a *Accounts) SignUp(ctx context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	if !usernameRE.MatchString(username) {
		return Session{}, ErrInvalidUsername
	}
	if len(password) < minPasswordLen {
		return Session{}, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}
	u, err := a.store.CreateUser(ctx, username, string(hash))
	if err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			return Session{}, ErrUsernameTaken
		}
		return Session{}, err
	}
	return a.session(u)
}

func (a *Accounts) Login(ctx context.Context, username, password string) (Session, error) {
	u, err := a.store.UserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}
	return a.session(u)
}

func (a *Accounts) VerifyAccessToken(_ context.Context, accessToken string) (User, error) {
	claims, err := a.tokens.Verify(accessToken)
	if err != nil {
		return User{}, err
	}
	return User{ID: claims.Subject, Username: claims.Username}, nil
}

func (a *Accounts) session(u store.User) (Session, error) {
	token, err := a.tokens.Issue(u.ID, u.Username)
	if err != nil {
		return Session{}, err
	}
	return Session{
		Token:     token,
		UserID:    u.ID,
		Username:  u.Username,
		ExpiresIn: int(a.tokens.ttl / time.Second),
	}, nil
}
