package game

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"tycoon/internal/store"
	"tycoon/internal/trace"
)

func newTestService() (*Service, *store.Memory) {
	mem := store.NewMemory()
	return NewService(mem, DefaultCatalog(), NewRand(1), nil), mem
}

func TestServiceRequiresGame(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.State(ctx, "u1"); !errors.Is(err, ErrNoActiveGame) {
		t.Fatalf("state: got %v", err)
	}
	if _, _, err := svc.AdvanceTurn(ctx, "u1"); !errors.Is(err, ErrNoActiveGame) {
		t.Fatalf("turn: got %v", err)
	}
	if _, err := svc.SaveGame(ctx, "u1", "slot"); !errors.Is(err, ErrNoActiveGame) {
		t.Fatalf("save: got %v", err)
	}
	if _, err := svc.NewGame(ctx, "u1", "admin"); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("blocked player name: got %v", err)
	}
}

func TestServiceSaveLoadCycle(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	st, err := svc.NewGame(ctx, "u1", "Ada")
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	lemon := businessOf(t, st, LemonadeStand)
	st, err = svc.Apply(ctx, "u1", Action{Kind: ActionBuyBusiness, TargetID: lemon.ID})
	if err != nil || st.Player.Cash != 500 {
		t.Fatalf("buy: cash=%v err=%v", st.Player.Cash, err)
	}

	saved, err := svc.SaveGame(ctx, "u1", "first run")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.Turn != 1 || saved.Name != "first run" || saved.NetWorth != 1250 {
		t.Fatalf("unexpected summary %+v", saved)
	}

	st, report, err := svc.AdvanceTurn(ctx, "u1")
	if err != nil || st.Turn != 2 || report.Revenue != 100 {
		t.Fatalf("turn: turn=%d report=%+v err=%v", st.Turn, report, err)
	}

	st, err = svc.LoadGame(ctx, "u1", saved.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.Turn != 1 || st.Player.Cash != 500 {
		t.Fatalf("loaded turn=%d cash=%v", st.Turn, st.Player.Cash)
	}
	cur, _ := svc.State(ctx, "u1")
	if cur.Turn != 1 {
		t.Fatalf("session not replaced by load")
	}

	if _, _, err := svc.AdvanceTurn(ctx, "u1"); err != nil {
		t.Fatalf("turn after load: %v", err)
	}
	updated, err := svc.UpdateSave(ctx, "u1", saved.ID, "")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Turn != 2 || updated.Name != "first run" {
		t.Fatalf("unexpected update %+v", updated)
	}

	list, err := svc.ListSaves(ctx, "u1")
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v %v", list, err)
	}
	if err := svc.DeleteSave(ctx, "u1", saved.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.LoadGame(ctx, "u1", saved.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("load deleted: got %v", err)
	}
}

func TestServiceRejectionKeepsSession(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	st, _ := svc.NewGame(ctx, "u1", "")

	mansion, _ := st.AssetByName("Luxury Mansion")
	got, err := svc.Apply(ctx, "u1", Action{Kind: ActionBuyAsset, TargetID: mansion.ID})
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("got %v", err)
	}
	if got.Player.Cash != 1000 {
		t.Fatalf("rejection changed cash: %v", got.Player.Cash)
	}
}

func TestServiceSaveOwnership(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	svc.NewGame(ctx, "owner", "")
	svc.NewGame(ctx, "other", "")

	saved, err := svc.SaveGame(ctx, "owner", "mine")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := svc.LoadGame(ctx, "other", saved.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("load: got %v", err)
	}
	if _, err := svc.UpdateSave(ctx, "other", saved.ID, "stolen"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("update: got %v", err)
	}
	if err := svc.DeleteSave(ctx, "other", saved.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("delete: got %v", err)
	}
	if list, _ := svc.ListSaves(ctx, "other"); len(list) != 0 {
		t.Fatalf("other user sees %d saves", len(list))
	}
}

func TestServiceCorruptSaveLeavesSession(t *testing.T) {
	svc, mem := newTestService()
	ctx := context.Background()
	st, _ := svc.NewGame(ctx, "u1", "")
	st, _, _ = svc.AdvanceTurn(ctx, "u1")

	rec, err := mem.CreateSave(ctx, store.Save{UserID: "u1", Name: "broken", Turn: 1, State: []byte(`{"turn":0}`)})
	if err != nil {
		t.Fatalf("seed save: %v", err)
	}
	if _, err := svc.LoadGame(ctx, "u1", rec.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("load corrupt: got %v", err)
	}
	cur, _ := svc.State(ctx, "u1")
	if cur.Turn != st.Turn {
		t.Fatalf("session replaced by corrupt save")
	}
}

func TestServiceSerializesSession(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	svc.NewGame(ctx, "u1", "")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.AdvanceTurn(ctx, "u1")
		}()
	}
	wg.Wait()

	st, _ := svc.State(ctx, "u1")
	if st.Turn != 21 {
		t.Fatalf("turn got %d want 21", st.Turn)
	}
}

func TestServiceLogsTraceID(t *testing.T) {
	if err := trace.Init(true, "test", io.Discard); err != nil {
		t.Fatalf("init tracing: %v", err)
	}
	t.Cleanup(func() {
		_ = trace.Shutdown(context.Background())
		_ = trace.Init(false, "test", io.Discard)
	})

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	svc := NewService(store.NewMemory(), DefaultCatalog(), NewRand(1), logger)
	ctx := context.Background()

	if _, err := svc.NewGame(ctx, "u1", "Ada"); err != nil {
		t.Fatalf("new game: %v", err)
	}
	if _, _, err := svc.AdvanceTurn(ctx, "u1"); err != nil {
		t.Fatalf("turn: %v", err)
	}
	if _, err := svc.SaveGame(ctx, "u1", "slot"); err != nil {
		t.Fatalf("save: %v", err)
	}

	var turnLine, saveLine string
	for _, line := range strings.Split(buf.String(), "\n") {
		switch {
		case strings.Contains(line, `"msg":"turn resolved"`):
			turnLine = line
		case strings.Contains(line, `"msg":"game saved"`):
			saveLine = line
		}
	}
	if !strings.Contains(turnLine, `"trace_id":"`) {
		t.Fatalf("turn log missing trace_id: %s", turnLine)
	}
	if !strings.Contains(saveLine, `"trace_id":"`) {
		t.Fatalf("save log missing trace_id: %s", saveLine)
	}
}
