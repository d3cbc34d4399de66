package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/johnquangdev/voxly/internal/domain/entities"
	"github.com/johnquangdev/voxly/internal/usecase/briefing"
)

type memSnapshots struct {
	mu    sync.Mutex
	snaps map[string]entities.Snapshot
	saves int
}

func newMemSnapshots() *memSnapshots {
	return &memSnapshots{snaps: make(map[string]entities.Snapshot)}
}

func (s *memSnapshots) Save(_ context.Context, snap entities.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[snap.SessionID] = snap
	s.saves++
	return nil
}

func (s *memSnapshots) Load(_ context.Context, id string) (entities.Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.snaps[id]
	return snap, ok, nil
}

func (s *memSnapshots) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snaps, id)
	return nil
}

type stubAnalyzer struct{ raw string }

func (a stubAnalyzer) Analyze(context.Context, string) (string, error) { return a.raw, nil }

func newTestManager(store SnapshotStore) *Manager {
	return NewManager(nil, stubAnalyzer{raw: `{"summary":"ok"}`}, store, time.Hour, nil, briefing.WithLocale("en"))
}

func TestManagerLifecycle(t *testing.T) {
	store := newMemSnapshots()
	m := newTestManager(store)
	ctx := context.Background()

	snap, err := m.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if snap.SessionID == "" || snap.Status.Step != entities.StepIdle {
		t.Fatalf("unexpected initial snapshot %+v", snap)
	}

	in, _ := entities.NewTextInput("Buy milk.")
	res, err := m.Run(ctx, snap.SessionID, in)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Summary != "ok" {
		t.Fatalf("unexpected result %+v", res)
	}

	stored, ok, _ := store.Load(ctx, snap.SessionID)
	if !ok || stored.Status.Step != entities.StepCompleted || stored.Result == nil {
		t.Fatalf("completed snapshot not mirrored: %+v", stored)
	}

	if err := m.Reset(snap.SessionID); err != nil {
		t.Fatalf("reset: %v", err)
	}
	stored, _, _ = store.Load(ctx, snap.SessionID)
	if stored.Status.Step != entities.StepIdle || stored.Result != nil {
		t.Fatalf("reset not mirrored: %+v", stored)
	}

	if err := m.Delete(ctx, snap.SessionID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := m.Snapshot(ctx, snap.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after delete, got %v", err)
	}
}

func TestManagerUnknownSession(t *testing.T) {
	m := newTestManager(nil)
	in, _ := entities.NewTextInput("x")

	if _, err := m.Run(context.Background(), "missing", in); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := m.Reset("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := m.Delete(context.Background(), "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestManagerSnapshotFallsBackToStore(t *testing.T) {
	store := newMemSnapshots()
	store.snaps["old"] = entities.Snapshot{SessionID: "old", Status: entities.ProcessingStatus{Step: entities.StepCompleted}}
	m := newTestManager(store)

	snap, err := m.Snapshot(context.Background(), "old")
	if err != nil || snap.Status.Step != entities.StepCompleted {
		t.Fatalf("expected stored snapshot, got %+v %v", snap, err)
	}
}

func TestManagerPrune(t *testing.T) {
	m := newTestManager(nil)
	a, _ := m.Create(context.Background())
	b, _ := m.Create(context.Background())

	if _, err := m.Pipeline(b.SessionID); err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	m.mu.Lock()
	m.sessions[a.SessionID].lastAccess = time.Now().Add(-2 * time.Hour)
	m.mu.Unlock()

	if n := m.Prune(context.Background(), time.Now()); n != 1 {
		t.Fatalf("pruned %d sessions, want 1", n)
	}
	if m.Len() != 1 {
		t.Fatalf("expected one live session, got %d", m.Len())
	}
	if _, err := m.Pipeline(a.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("stale session should be gone")
	}
}

func TestManagerPruneDropsStoredSnapshot(t *testing.T) {
	store := newMemSnapshots()
	m := newTestManager(store)
	ctx := context.Background()
	snap, _ := m.Create(ctx)

	if n := m.Prune(ctx, time.Now().Add(2*time.Hour)); n != 1 {
		t.Fatalf("pruned %d sessions, want 1", n)
	}
	if _, err := m.Snapshot(ctx, snap.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("pruned session still readable: %v", err)
	}
	if err := m.Delete(ctx, snap.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after prune, got %v", err)
	}
}

func TestManagerDeleteStoredOnlySession(t *testing.T) {
	store := newMemSnapshots()
	store.snaps["old"] = entities.Snapshot{SessionID: "old", Status: entities.ProcessingStatus{Step: entities.StepCompleted}}
	m := newTestManager(store)
	ctx := context.Background()

	if err := m.Delete(ctx, "old"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := store.snaps["old"]; ok {
		t.Fatalf("snapshot survived delete")
	}
	if _, err := m.Snapshot(ctx, "old"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after delete, got %v", err)
	}
}
