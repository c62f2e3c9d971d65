package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tycoon/internal/store"

	"golang.org/x/crypto/bcrypt"
)

func newTestAccounts(t *testing.T) *Accounts {
	t.Helper()
	tokens, err := NewTokens("0123456789abcdef-test", time.Hour)
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}
	return NewAccounts(store.NewMemory(), tokens, bcrypt.MinCost)
}

func TestSignUpAndLogin(t *testing.T) {
	a := newTestAccounts(t)
	ctx := context.Background()

	sess, err := a.SignUp(ctx, "tycoon_ada", "lemonade123")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if sess.Token == "" || sess.Username != "tycoon_ada" || sess.ExpiresIn != 3600 {
		t.Fatalf("unexpected session %+v", sess)
	}

	if _, err := a.SignUp(ctx, "TYCOON_ADA", "another123"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("duplicate signup: got %v", err)
	}

	login, err := a.Login(ctx, "tycoon_ada", "lemonade123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.UserID != sess.UserID {
		t.Fatalf("login returned a different user")
	}

	u, err := a.VerifyAccessToken(ctx, login.Token)
	if err != nil || u.ID != sess.UserID || u.Username != "tycoon_ada" {
		t.Fatalf("verify: %+v %v", u, err)
	}
}

func TestLoginFailures(t *testing.T) {
	a := newTestAccounts(t)
	ctx := context.Background()
	if _, err := a.SignUp(ctx, "player_one", "correct-horse"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, err := a.Login(ctx, "player_one", "wrong-horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", err)
	}
	if _, err := a.Login(ctx, "nobody", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: got %v", err)
	}
}

func TestSignUpValidation(t *testing.T) {
	a := newTestAccounts(t)
	ctx := context.Background()

	tests := []struct {
		username, password string
		want               error
	}{
		{username: "ab", password: "longenough", want: ErrInvalidUsername},
		{username: "has space", password: "longenough", want: ErrInvalidUsername},
		{username: "valid_name", password: "short", want: ErrWeakPassword},
	}
	for _, tc := range tests {
		if _, err := a.SignUp(ctx, tc.username, tc.password); !errors.Is(err, tc.want) {
			t.Fatalf("%q/%q: got %v want %v", tc.username, tc.password, err, tc.want)
		}
	}
}

func TestTokens(t *testing.T) {
	if _, err := NewTokens("short", time.Hour); err == nil {
		t.Fatalf("expected short secret to be refused")
	}

	tokens, _ := NewTokens("0123456789abcdef-test", time.Hour)
	signed, err := tokens.Issue("user-1", "ada")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other, _ := NewTokens("fedcba9876543210-test", time.Hour)
	if _, err := other.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("foreign secret: got %v", err)
	}

	tampered := signed[:strings.LastIndex(signed, ".")] + ".AAAA"
	if _, err := tokens.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("tampered: got %v", err)
	}

	tokens.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := tokens.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired: got %v", err)
	}
}
