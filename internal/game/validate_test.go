package game

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func TestEncodeDecodeState(t *testing.T) {
	s := lemonadeOwned(t)
	s, _ = AdvanceTurn(s, NewRand(5))

	doc, err := EncodeState(s)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeState(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(got, s) {
		t.Fatalf("round trip changed the state")
	}
}

func TestDecodeStateRecomputesNetWorth(t *testing.T) {
	s := lemonadeOwned(t)
	s.Player.NetWorth = 99_999_999
	doc, _ := EncodeState(s)

	got, err := DecodeState(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Player.NetWorth != 1250 {
		t.Fatalf("net worth got %v want 1250", got.Player.NetWorth)
	}
}

func TestDecodeStateRejectsCorruptDocuments(t *testing.T) {
	s := newTestGame(t)
	doc, _ := EncodeState(s)

	tests := []struct {
		name string
		doc  []byte
	}{
		{name: "not json", doc: []byte("{")},
		{name: "unknown field", doc: bytes.Replace(doc, []byte(`"turn":1`), []byte(`"turn":1,"cheat":true`), 1)},
		{name: "turn zero", doc: bytes.Replace(doc, []byte(`"turn":1`), []byte(`"turn":0`), 1)},
		{name: "bad health", doc: bytes.Replace(doc, []byte(`"economicHealth":70`), []byte(`"economicHealth":170`), 1)},
	}
	for _, tc := range tests {
		if _, err := DecodeState(tc.doc); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("%s: got %v want ErrInvalidState", tc.name, err)
		}
	}
}

func TestValidateCatchesBrokenInvariants(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameState)
	}{
		{name: "price below floor", mutate: func(s *GameState) { s.Stocks[0].Price = 0.5 }},
		{name: "long history", mutate: func(s *GameState) { s.Stocks[0].History = make([]float64, StockHistoryLimit+1) }},
		{name: "trend out of range", mutate: func(s *GameState) { s.Stocks[0].Trend = 3 }},
		{name: "basis without shares", mutate: func(s *GameState) { s.Stocks[0].PurchasePrice = 12 }},
		{name: "level zero", mutate: func(s *GameState) { s.Businesses[0].Level = 0 }},
		{name: "two strategies", mutate: func(s *GameState) {
			s.Businesses[0].Strategies[0].Active = true
			s.Businesses[0].Strategies[1].Active = true
		}},
		{name: "duplicate id", mutate: func(s *GameState) { s.Assets[1].ID = s.Assets[0].ID }},
		{name: "stale active event", mutate: func(s *GameState) {
			s.ActiveEvents = []EconomicEvent{{ID: "e", Type: EventNeutral, Duration: 1}}
		}},
	}
	for _, tc := range tests {
		s := newTestGame(t).Clone()
		tc.mutate(&s)
		if err := Validate(s); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("%s: got %v want ErrInvalidState", tc.name, err)
		}
	}
}
