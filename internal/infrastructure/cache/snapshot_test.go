package cache

import (
	"context"
	"testing"
	"time"

	"github.com/johnquangdev/voxly/internal/domain/entities"
)

func TestSnapshotStore(t *testing.T) {
	ctx := context.Background()
	_, rs := newTestRedis(t)
	ms := NewMemoryStore(time.Hour)
	defer ms.Close()

	backends := map[string]Store{"memory": ms, "redis": rs}
	for name, backend := range backends {
		t.Run(name, func(t *testing.T) {
			ss := NewSnapshotStore(backend, time.Hour)
			snap := entities.Snapshot{
				SessionID: "abc",
				Status:    entities.ProcessingStatus{Step: entities.StepCompleted, Message: "Готово!"},
				Progress:  100,
				Result: &entities.BriefingResult{
					Transcription: "Buy milk.",
					Summary:       "errand",
					MainThemes:    []string{},
					KeyPoints:     []string{},
					ActionItems:   []string{"Buy milk"},
					Sentiment:     "neutral",
				},
				UpdatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			}

			if err := ss.Save(ctx, snap); err != nil {
				t.Fatalf("save: %v", err)
			}
			got, ok, err := ss.Load(ctx, "abc")
			if err != nil || !ok {
				t.Fatalf("load: ok=%v err=%v", ok, err)
			}
			if got.Status != snap.Status || got.Result.ActionItems[0] != "Buy milk" || !got.UpdatedAt.Equal(snap.UpdatedAt) {
				t.Fatalf("snapshot mismatch: %+v", got)
			}

			if err := ss.Delete(ctx, "abc"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, ok, _ := ss.Load(ctx, "abc"); ok {
				t.Fatalf("snapshot still present after delete")
			}
		})
	}
}

func TestSnapshotStoreRequiresSessionID(t *testing.T) {
	ms := NewMemoryStore(time.Hour)
	defer ms.Close()
	if err := NewSnapshotStore(ms, time.Hour).Save(context.Background(), entities.Snapshot{}); err == nil {
		t.Fatalf("expected error for snapshot without session id")
	}
}
