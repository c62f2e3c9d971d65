package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemory())
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tycoon.db")
	st, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer st.Close()
	testStore(t, st)
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tycoon.db")
	st, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	u, err := st.CreateUser(ctx, "ada", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	sv, err := st.CreateSave(ctx, Save{UserID: u.ID, Name: "slot", Turn: 3, NetWorth: 1500, State: []byte(`{"turn":3}`)})
	if err != nil {
		t.Fatalf("create save: %v", err)
	}
	st.Close()

	st, err = OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st.Close()
	got, err := st.GetSave(ctx, sv.ID)
	if err != nil || string(got.State) != `{"turn":3}` || got.Turn != 3 {
		t.Fatalf("after reopen: %+v %v", got, err)
	}
}

// testStore runs the behaviour every Store implementation shares.
func testStore(t *testing.T, st Store) {
	t.Helper()
	ctx := context.Background()

	u, err := st.CreateUser(ctx, "Ada", "hash-1")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.ID == "" || u.CreatedAt.IsZero() {
		t.Fatalf("user not populated: %+v", u)
	}
	if _, err := st.CreateUser(ctx, "ada", "hash-2"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("duplicate username: got %v", err)
	}
	got, err := st.UserByUsername(ctx, "ADA")
	if err != nil || got.ID != u.ID || got.PasswordHash != "hash-1" {
		t.Fatalf("lookup: %+v %v", got, err)
	}
	if _, err := st.UserByUsername(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing user: got %v", err)
	}
	other, err := st.CreateUser(ctx, "grace", "hash-3")
	if err != nil {
		t.Fatalf("create second user: %v", err)
	}

	first, err := st.CreateSave(ctx, Save{UserID: u.ID, Name: "first", Turn: 1, NetWorth: 1000, State: []byte(`{"turn":1}`)})
	if err != nil {
		t.Fatalf("create save: %v", err)
	}
	if first.ID == "" || first.UpdatedAt.IsZero() {
		t.Fatalf("save not populated: %+v", first)
	}
	time.Sleep(5 * time.Millisecond)
	second, err := st.CreateSave(ctx, Save{UserID: u.ID, Name: "second", Turn: 4, NetWorth: 2000, State: []byte(`{"turn":4}`)})
	if err != nil {
		t.Fatalf("create save: %v", err)
	}
	if _, err := st.CreateSave(ctx, Save{UserID: other.ID, Name: "theirs", Turn: 1, NetWorth: 1000, State: []byte(`{}`)}); err != nil {
		t.Fatalf("create other save: %v", err)
	}

	list, err := st.ListSaves(ctx, u.ID)
	if err != nil || len(list) != 2 {
		t.Fatalf("list: %d %v", len(list), err)
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("list order: %s, %s", list[0].Name, list[1].Name)
	}
	if list[0].State != nil {
		t.Fatalf("list rows should not carry state")
	}

	time.Sleep(5 * time.Millisecond)
	first.Name = "renamed"
	first.Turn = 9
	first.State = []byte(`{"turn":9}`)
	updated, err := st.UpdateSave(ctx, first)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "renamed" || updated.Turn != 9 || !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Fatalf("updated save: %+v", updated)
	}
	list, _ = st.ListSaves(ctx, u.ID)
	if list[0].ID != first.ID {
		t.Fatalf("updated save should list first, got %s", list[0].Name)
	}

	loaded, err := st.GetSave(ctx, first.ID)
	if err != nil || string(loaded.State) != `{"turn":9}` || loaded.UserID != u.ID {
		t.Fatalf("get: %+v %v", loaded, err)
	}

	if _, err := st.UpdateSave(ctx, Save{ID: "missing", Name: "x", State: []byte(`{}`)}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update missing: got %v", err)
	}
	if err := st.DeleteSave(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := st.GetSave(ctx, first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get deleted: got %v", err)
	}
	if err := st.DeleteSave(ctx, first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete twice: got %v", err)
	}
}
