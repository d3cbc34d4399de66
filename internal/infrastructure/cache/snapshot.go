package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/johnquangdev/voxly/internal/domain/entities"
)

// Store is a key-value store with expiration
type Store interface {
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
}

// SnapshotStore keeps the latest pipeline snapshot of each session
type SnapshotStore struct {
	store      Store
	expiration time.Duration
}

// NewSnapshotStore creates a snapshot store on top of any Store
func NewSnapshotStore(store Store, expiration time.Duration) *SnapshotStore {
	return &SnapshotStore{store: store, expiration: expiration}
}

func snapshotKey(sessionID string) string {
	return fmt.Sprintf("voxly:session:%s", sessionID)
}

// Save stores snap under its session id, refreshing the expiration
func (s *SnapshotStore) Save(ctx context.Context, snap entities.Snapshot) error {
	if snap.SessionID == "" {
		return fmt.Errorf("snapshot has no session id")
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return s.store.Set(ctx, snapshotKey(snap.SessionID), string(b), s.expiration)
}

// Load returns the stored snapshot; ok is false when none exists or it expired
func (s *SnapshotStore) Load(ctx context.Context, sessionID string) (entities.Snapshot, bool, error) {
	raw, ok, err := s.store.Get(ctx, snapshotKey(sessionID))
	if err != nil || !ok {
		return entities.Snapshot{}, false, err
	}
	var snap entities.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return entities.Snapshot{}, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, true, nil
}

// Delete removes the session snapshot
func (s *SnapshotStore) Delete(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, snapshotKey(sessionID))
}
