package game

import (
	"errors"
	"testing"
)

func TestValidateName(t *testing.T) {
	valid := []string{"Acme Labs", "run #2", "Élodie's empire"}
	for _, n := range valid {
		if err := validateName(n); err != nil {
			t.Fatalf("expected name %q to be valid: %v", n, err)
		}
	}

	invalid := []string{"", "   ", "admin empire", string(make([]byte, 65))}
	for _, n := range invalid {
		if err := validateName(n); !errors.Is(err, ErrInvalidName) {
			t.Fatalf("expected name %q to fail, got %v", n, err)
		}
	}
}

func TestValidatePlayerName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{name: ""},
		{name: "   "},
		{name: "Ada"},
		{name: "admin empire", wantErr: true},
		{name: string(make([]byte, 65)), wantErr: true},
	}
	for _, tt := range tests {
		err := ValidatePlayerName(tt.name)
		if tt.wantErr != errors.Is(err, ErrInvalidName) {
			t.Fatalf("ValidatePlayerName(%q) = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestRejectionsWrapErrRejected(t *testing.T) {
	for _, err := range []error{
		ErrBusinessNotFound, ErrInsufficientFunds, ErrNotOwned, ErrBusinessLocked,
		ErrAlreadyPurchased, ErrBoostOnCooldown, ErrInvalidQuantity, ErrUnknownAction,
	} {
		if !errors.Is(err, ErrRejected) {
			t.Fatalf("%v does not wrap ErrRejected", err)
		}
	}
	if errors.Is(ErrInvalidState, ErrRejected) {
		t.Fatalf("integrity errors must not count as rejections")
	}
}

func TestClampAndRound(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{v: -3, lo: -2, hi: 2, want: -2},
		{v: 3, lo: -2, hi: 2, want: 2},
		{v: 0.7, lo: -2, hi: 2, want: 0.7},
	}
	for _, tc := range tests {
		if got := clamp(tc.v, tc.lo, tc.hi); got != tc.want {
			t.Fatalf("clamp(%v) got=%v want=%v", tc.v, got, tc.want)
		}
	}
	if got := roundCents(12.345678); got != 12.35 {
		t.Fatalf("roundCents got %v", got)
	}
}
