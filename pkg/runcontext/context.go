package runcontext

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type KeyContext string

var (
	keySessionID    KeyContext = "session_id"
	keyInputKind    KeyContext = "input_kind"
	keyRunStartTime KeyContext = "run_start_time"
)

// RunMetadata holds metadata for one pipeline run
type RunMetadata struct {
	SessionID string
	InputKind string
	StartTime time.Time
}

// Begin starts a run context detached from the parent's cancellation, so a
// dropped client does not abort the remote calls. timeout bounds the run;
// a non-positive timeout leaves it unbounded.
func Begin(parent context.Context, sessionID, inputKind string, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx := context.WithoutCancel(parent)
	cancel := context.CancelFunc(func() {})
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	}

	ctx = context.WithValue(ctx, keySessionID, sessionID)
	ctx = context.WithValue(ctx, keyInputKind, inputKind)
	ctx = context.WithValue(ctx, keyRunStartTime, time.Now())

	return ctx, cancel
}

// GetSessionID extracts the session ID from context
func GetSessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(keySessionID).(string)
	return id, ok
}

// GetInputKind extracts the input kind from context
func GetInputKind(ctx context.Context) (string, bool) {
	kind, ok := ctx.Value(keyInputKind).(string)
	return kind, ok
}

// GetRunStartTime extracts the run start time from context
func GetRunStartTime(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(keyRunStartTime).(time.Time)
	return t, ok
}

// Elapsed returns the time since Begin, or 0 outside a run
func Elapsed(ctx context.Context) time.Duration {
	t, ok := GetRunStartTime(ctx)
	if !ok {
		return 0
	}
	return time.Since(t)
}

// GetRunMetadata extracts all run metadata from context
func GetRunMetadata(ctx context.Context) *RunMetadata {
	id, _ := GetSessionID(ctx)
	kind, _ := GetInputKind(ctx)
	start, _ := GetRunStartTime(ctx)

	return &RunMetadata{
		SessionID: id,
		InputKind: kind,
		StartTime: start,
	}
}

// Fields returns the run metadata as log fields
func Fields(ctx context.Context) []zap.Field {
	meta := GetRunMetadata(ctx)
	fields := make([]zap.Field, 0, 3)
	if meta.SessionID != "" {
		fields = append(fields, zap.String("session_id", meta.SessionID))
	}
	if meta.InputKind != "" {
		fields = append(fields, zap.String("input_kind", meta.InputKind))
	}
	if !meta.StartTime.IsZero() {
		fields = append(fields, zap.Duration("elapsed", time.Since(meta.StartTime)))
	}
	return fields
}
