package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"tycoon/internal/store"
	"tycoon/internal/trace"

	"go.opentelemetry.io/otel/attribute"
)

// Service holds one in-memory game per user and persists saves through a
// store. Each session is single-writer: every call locks it for its whole
// duration, so turns and transactions of one user never interleave.
type Service struct {
	store   store.Store
	catalog Catalog
	rand    Source
	log     *slog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	mu      sync.Mutex
	state   GameState
	started bool
}

func NewService(st store.Store, cat Catalog, rnd Source, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if rnd == nil {
		rnd = NewRand(0)
	}
	return &Service{
		store:    st,
		catalog:  cat,
		rand:     rnd,
		log:      logger,
		sessions: make(map[string]*session),
	}
}

func (s *Service) session(userID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &session{}
		s.sessions[userID] = sess
	}
	return sess
}

// withGame runs fn on the user's started game and stores the state it
// returns, but only when fn succeeds.
func (s *Service) withGame(userID string, fn func(GameState) (GameState, error)) (GameState, error) {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if !sess.started {
		return GameState{}, ErrNoActiveGame
	}
	next, err := fn(sess.state)
	if err != nil {
		return sess.state, err
	}
	sess.state = next
	return next, nil
}

func (s *Service) NewGame(ctx context.Context, userID, playerName string) (GameState, error) {
	_, span := trace.StartSpan(ctx, "game.NewGame", attribute.String("user_id", userID))
	defer span.End()

	playerName = strings.TrimSpace(playerName)
	if err := ValidatePlayerName(playerName); err != nil {
		return GameState{}, err
	}

	state := NewGame(s.catalog, playerName, s.rand)
	sess := s.session(userID)
	sess.mu.Lock()
	sess.state = state
	sess.started = true
	sess.mu.Unlock()

	s.log.Info("new game", "user_id", userID, "player", playerName)
	return state, nil
}

func (s *Service) State(_ context.Context, userID string) (GameState, error) {
	return s.withGame(userID, func(st GameState) (GameState, error) { return st, nil })
}

func (s *Service) Dashboard(ctx context.Context, userID string) (Dashboard, error) {
	st, err := s.State(ctx, userID)
	if err != nil {
		return Dashboard{}, err
	}
	return Summarize(st), nil
}

func (s *Service) AdvanceTurn(ctx context.Context, userID string) (GameState, TurnReport, error) {
	ctx, span := trace.StartSpan(ctx, "game.AdvanceTurn", attribute.String("user_id", userID))
	var report TurnReport
	next, err := s.withGame(userID, func(st GameState) (GameState, error) {
		var next GameState
		next, report = AdvanceTurn(st, s.rand)
		return next, nil
	})
	if err != nil {
		trace.End(span, err)
		return GameState{}, TurnReport{}, err
	}
	span.SetAttributes(attribute.Int("turn", report.Turn), attribute.Float64("revenue", report.Revenue))
	span.End()

	attrs := []any{"user_id", userID, "turn", report.Turn, "revenue", report.Revenue, "net_worth", next.Player.NetWorth}
	if report.TriggeredEvent != nil {
		attrs = append(attrs, "event", report.TriggeredEvent.Title)
	}
	if len(report.Unlocked) > 0 {
		attrs = append(attrs, "unlocked", report.Unlocked)
	}
	s.log.Info("turn resolved", withTraceID(ctx, attrs)...)
	return next, report, nil
}

// Apply runs one transaction. A rejection returns the unchanged state along
// with the error.
func (s *Service) Apply(ctx context.Context, userID string, a Action) (GameState, error) {
	_, span := trace.StartSpan(ctx, "game.Apply",
		attribute.String("user_id", userID),
		attribute.String("action", string(a.Kind)),
	)
	next, err := s.withGame(userID, func(st GameState) (GameState, error) {
		return Apply(st, a, s.rand)
	})
	trace.End(span, err)
	if err != nil {
		if errors.Is(err, ErrRejected) {
			s.log.Debug("action rejected", "user_id", userID, "action", a.String(), "reason", err.Error())
		}
		return next, err
	}
	return next, nil
}

func (s *Service) SaveGame(ctx context.Context, userID, name string) (SaveSummary, error) {
	ctx, span := trace.StartSpan(ctx, "game.SaveGame", attribute.String("user_id", userID))
	sum, err := s.saveGame(ctx, userID, name)
	trace.End(span, err)
	return sum, err
}

func (s *Service) saveGame(ctx context.Context, userID, name string) (SaveSummary, error) {
	if err := validateName(name); err != nil {
		return SaveSummary{}, err
	}
	st, err := s.State(ctx, userID)
	if err != nil {
		return SaveSummary{}, err
	}
	doc, err := EncodeState(st)
	if err != nil {
		return SaveSummary{}, fmt.Errorf("encode state: %w", err)
	}
	rec, err := s.store.CreateSave(ctx, store.Save{
		UserID:   userID,
		Name:     strings.TrimSpace(name),
		Turn:     st.Turn,
		NetWorth: st.Player.NetWorth,
		State:    doc,
	})
	if err != nil {
		s.log.Error("save failed", "user_id", userID, "error", err)
		return SaveSummary{}, fmt.Errorf("create save: %w", err)
	}
	s.log.Info("game saved", withTraceID(ctx, []any{"user_id", userID, "save_id", rec.ID, "turn", rec.Turn})...)
	return summaryOf(rec), nil
}

// UpdateSave overwrites an existing save with the current game. An empty
// name keeps the stored one.
func (s *Service) UpdateSave(ctx context.Context, userID, saveID, name string) (SaveSummary, error) {
	ctx, span := trace.StartSpan(ctx, "game.UpdateSave",
		attribute.String("user_id", userID),
		attribute.String("save_id", saveID),
	)
	sum, err := s.updateSave(ctx, userID, saveID, name)
	trace.End(span, err)
	return sum, err
}

func (s *Service) updateSave(ctx context.Context, userID, saveID, name string) (SaveSummary, error) {
	rec, err := s.ownedSave(ctx, userID, saveID)
	if err != nil {
		return SaveSummary{}, err
	}
	if strings.TrimSpace(name) != "" {
		if err := validateName(name); err != nil {
			return SaveSummary{}, err
		}
		rec.Name = strings.TrimSpace(name)
	}
	st, err := s.State(ctx, userID)
	if err != nil {
		return SaveSummary{}, err
	}
	doc, err := EncodeState(st)
	if err != nil {
		return SaveSummary{}, fmt.Errorf("encode state: %w", err)
	}
	rec.Turn = st.Turn
	rec.NetWorth = st.Player.NetWorth
	rec.State = doc
	rec, err = s.store.UpdateSave(ctx, rec)
	if err != nil {
		s.log.Error("save update failed", "user_id", userID, "save_id", saveID, "error", err)
		return SaveSummary{}, fmt.Errorf("update save: %w", err)
	}
	s.log.Info("save updated", withTraceID(ctx, []any{"user_id", userID, "save_id", rec.ID, "turn", rec.Turn})...)
	return summaryOf(rec), nil
}

// LoadGame replaces the session with a saved game. A document that fails
// validation leaves the current session untouched.
func (s *Service) LoadGame(ctx context.Context, userID, saveID string) (GameState, error) {
	ctx, span := trace.StartSpan(ctx, "game.LoadGame",
		attribute.String("user_id", userID),
		attribute.String("save_id", saveID),
	)
	st, err := s.loadGame(ctx, userID, saveID)
	trace.End(span, err)
	return st, err
}

func (s *Service) loadGame(ctx context.Context, userID, saveID string) (GameState, error) {
	rec, err := s.ownedSave(ctx, userID, saveID)
	if err != nil {
		return GameState{}, err
	}
	st, err := DecodeState(rec.State)
	if err != nil {
		s.log.Warn("save rejected", "user_id", userID, "save_id", saveID, "error", err)
		return GameState{}, err
	}

	sess := s.session(userID)
	sess.mu.Lock()
	sess.state = st
	sess.started = true
	sess.mu.Unlock()

	s.log.Info("game loaded", withTraceID(ctx, []any{"user_id", userID, "save_id", saveID, "turn", st.Turn})...)
	return st, nil
}

func (s *Service) ListSaves(ctx context.Context, userID string) ([]SaveSummary, error) {
	recs, err := s.store.ListSaves(ctx, userID)
	if err != nil {
		s.log.Error("list saves failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list saves: %w", err)
	}
	out := make([]SaveSummary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, summaryOf(rec))
	}
	return out, nil
}

func (s *Service) DeleteSave(ctx context.Context, userID, saveID string) error {
	if _, err := s.ownedSave(ctx, userID, saveID); err != nil {
		return err
	}
	if err := s.store.DeleteSave(ctx, saveID); err != nil {
		s.log.Error("delete save failed", "user_id", userID, "save_id", saveID, "error", err)
		return fmt.Errorf("delete save: %w", err)
	}
	s.log.Info("save deleted", "user_id", userID, "save_id", saveID)
	return nil
}

func (s *Service) ownedSave(ctx context.Context, userID, saveID string) (store.Save, error) {
	rec, err := s.store.GetSave(ctx, saveID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.log.Error("get save failed", "user_id", userID, "save_id", saveID, "error", err)
		}
		return store.Save{}, fmt.Errorf("get save: %w", err)
	}
	if rec.UserID != userID {
		return store.Save{}, ErrUnauthorized
	}
	return rec, nil
}

// withTraceID appends the active trace id so log lines join up with spans.
func withTraceID(ctx context.Context, attrs []any) []any {
	if id, ok := trace.TraceID(ctx); ok {
		return append(attrs, "trace_id", id)
	}
	return attrs
}

func summaryOf(rec store.Save) SaveSummary {
	return SaveSummary{
		ID:        rec.ID,
		Name:      rec.Name,
		Turn:      rec.Turn,
		NetWorth:  rec.NetWorth,
		UpdatedAt: rec.UpdatedAt,
	}
}
