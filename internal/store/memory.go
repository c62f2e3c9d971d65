package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory keeps everything in process. Used by tests and TYCOON_STORE=memory.
type Memory struct {
	mu      sync.RWMutex
	users   map[string]User // by lower-cased username
	saves   map[string]Save
	nowFunc func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		users:   make(map[string]User),
		saves:   make(map[string]Save),
		nowFunc: func() time.Time { return time.Now().UTC() },
	}
}

func (m *Memory) CreateUser(_ context.Context, username, passwordHash string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(username)
	if _, ok := m.users[key]; ok {
		return User{}, ErrUsernameTaken
	}
	u := User{ID: uuid.NewString(), Username: username, PasswordHash: passwordHash, CreatedAt: m.nowFunc()}
	m.users[key] = u
	return u, nil
}

func (m *Memory) UserByUsername(_ context.Context, username string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[strings.ToLower(username)]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (m *Memory) CreateSave(_ context.Context, s Save) (Save, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.nowFunc()
	s.ID = uuid.NewString()
	s.State = append([]byte(nil), s.State...)
	s.CreatedAt, s.UpdatedAt = now, now
	m.saves[s.ID] = s
	return s, nil
}

func (m *Memory) UpdateSave(_ context.Context, s Save) (Save, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.saves[s.ID]
	if !ok {
		return Save{}, ErrNotFound
	}
	cur.Name = s.Name
	cur.Turn = s.Turn
	cur.NetWorth = s.NetWorth
	cur.State = append([]byte(nil), s.State...)
	cur.UpdatedAt = m.nowFunc()
	m.saves[s.ID] = cur
	return cur, nil
}

func (m *Memory) GetSave(_ context.Context, id string) (Save, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.saves[id]
	if !ok {
		return Save{}, ErrNotFound
	}
	s.State = append([]byte(nil), s.State...)
	return s, nil
}

func (m *Memory) ListSaves(_ context.Context, userID string) ([]Save, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Save, 0)
	for _, s := range m.saves {
		if s.UserID == userID {
			s.State = nil
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (m *Memory) DeleteSave(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.saves[id]; !ok {
		return ErrNotFound
	}
	delete(m.saves, id)
	return nil
}

func (m *Memory) Close() error { return nil }
