package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/voxly/internal/domain/entities"
	"github.com/johnquangdev/voxly/internal/usecase/briefing"
)

// ErrSessionNotFound is returned for unknown or expired session ids
var ErrSessionNotFound = errors.New("session not found")

// SnapshotStore persists the latest snapshot of each session
type SnapshotStore interface {
	Save(ctx context.Context, snap entities.Snapshot) error
	Load(ctx context.Context, sessionID string) (entities.Snapshot, bool, error)
	Delete(ctx context.Context, sessionID string) error
}

type entry struct {
	pipeline   *briefing.Pipeline
	lastAccess time.Time
}

// Manager keeps one pipeline per client session and mirrors every
// transition into the snapshot store.
type Manager struct {
	transcriber briefing.Transcriber
	analyzer    briefing.Analyzer
	store       SnapshotStore
	options     []briefing.Option
	ttl         time.Duration
	logger      *zap.Logger

	mu       sync.Mutex
	sessions map[string]*entry
}

// NewManager creates a session manager. opts are applied to every pipeline.
func NewManager(tr briefing.Transcriber, an briefing.Analyzer, store SnapshotStore, ttl time.Duration, logger *zap.Logger, opts ...briefing.Option) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		transcriber: tr,
		analyzer:    an,
		store:       store,
		options:     opts,
		ttl:         ttl,
		logger:      logger,
		sessions:    make(map[string]*entry),
	}
}

// Create opens a new idle session
func (m *Manager) Create(ctx context.Context) (entities.Snapshot, error) {
	id := uuid.NewString()

	opts := append([]briefing.Option{}, m.options...)
	opts = append(opts,
		briefing.WithSessionID(id),
		briefing.WithLogger(m.logger),
		briefing.WithObserver(m.persist),
	)
	p := briefing.NewPipeline(m.transcriber, m.analyzer, opts...)

	m.mu.Lock()
	m.sessions[id] = &entry{pipeline: p, lastAccess: time.Now()}
	m.mu.Unlock()

	snap := p.Snapshot()
	if m.store != nil {
		if err := m.store.Save(ctx, snap); err != nil {
			m.logger.Warn("session.snapshot.save_failed", zap.String("session_id", id), zap.Error(err))
		}
	}
	m.logger.Info("session.created", zap.String("session_id", id))
	return snap, nil
}

// Pipeline returns the live pipeline of a session
func (m *Manager) Pipeline(id string) (*briefing.Pipeline, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.lastAccess = time.Now()
	return e.pipeline, nil
}

// Snapshot returns the session state. Sessions no longer held in memory
// are served read-only from the snapshot store.
func (m *Manager) Snapshot(ctx context.Context, id string) (entities.Snapshot, error) {
	if p, err := m.Pipeline(id); err == nil {
		return p.Snapshot(), nil
	}
	if m.store == nil {
		return entities.Snapshot{}, ErrSessionNotFound
	}
	snap, ok, err := m.store.Load(ctx, id)
	if err != nil {
		return entities.Snapshot{}, err
	}
	if !ok {
		return entities.Snapshot{}, ErrSessionNotFound
	}
	return snap, nil
}

// Run executes a pipeline run in the session
func (m *Manager) Run(ctx context.Context, id string, input entities.InputPayload) (*entities.BriefingResult, error) {
	p, err := m.Pipeline(id)
	if err != nil {
		return nil, err
	}
	return p.Run(ctx, input)
}

// Reset returns the session pipeline to idle
func (m *Manager) Reset(id string) error {
	p, err := m.Pipeline(id)
	if err != nil {
		return err
	}
	return p.Reset()
}

// Delete closes a session. A session with a run in flight cannot be deleted.
// Sessions only left in the snapshot store are deleted there.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	if ok && e.pipeline.Busy() {
		m.mu.Unlock()
		return entities.ErrBusy
	}
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		if m.store == nil {
			return ErrSessionNotFound
		}
		if _, stored, err := m.store.Load(ctx, id); err != nil {
			return err
		} else if !stored {
			return ErrSessionNotFound
		}
	}

	if m.store != nil {
		if err := m.store.Delete(ctx, id); err != nil {
			return err
		}
	}
	m.logger.Info("session.deleted", zap.String("session_id", id))
	return nil
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Prune drops idle sessions not accessed within the TTL, along with their
// stored snapshots, and returns how many were removed
func (m *Manager) Prune(ctx context.Context, now time.Time) int {
	if m.ttl <= 0 {
		return 0
	}

	var removed []string
	m.mu.Lock()
	for id, e := range m.sessions {
		if e.pipeline.Busy() || now.Sub(e.lastAccess) < m.ttl {
			continue
		}
		delete(m.sessions, id)
		removed = append(removed, id)
	}
	m.mu.Unlock()

	if m.store != nil {
		for _, id := range removed {
			if err := m.store.Delete(ctx, id); err != nil {
				m.logger.Warn("session.snapshot.delete_failed", zap.String("session_id", id), zap.Error(err))
			}
		}
	}
	return len(removed)
}

// StartJanitor prunes expired sessions every interval until ctx is done
func (m *Manager) StartJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if n := m.Prune(ctx, now); n > 0 {
					m.logger.Info("session.pruned", zap.Int("count", n))
				}
			}
		}
	}()
}

func (m *Manager) persist(snap entities.Snapshot) {
	if m.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.store.Save(ctx, snap); err != nil {
		m.logger.Warn("session.snapshot.save_failed",
			zap.String("session_id", snap.SessionID),
			zap.String("step", string(snap.Status.Step)),
			zap.Error(err),
		)
	}
}
