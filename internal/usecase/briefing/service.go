package briefing

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/voxly/internal/domain/entities"
	"github.com/johnquangdev/voxly/pkg/ai"
)

// ErrEmptyTranscript is returned when transcription yields only whitespace
var ErrEmptyTranscript = errors.New("transcription returned empty text")

// ErrNoProvider is wrapped in a ConfigurationError when a stage has no client
var ErrNoProvider = errors.New("no provider configured")

// Transcriber turns audio into plain text
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// Analyzer turns a transcript into the raw structured briefing text
type Analyzer interface {
	Analyze(ctx context.Context, transcript string) (string, error)
}

// Observer is notified with a snapshot after every status transition
type Observer func(entities.Snapshot)

// Option configures a Pipeline
type Option func(*Pipeline)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithLocale selects the message catalog
func WithLocale(locale string) Option {
	return func(p *Pipeline) { p.messages = MessagesFor(locale) }
}

// WithMaxTranscriptChars bounds the transcript sent for analysis
func WithMaxTranscriptChars(n int) Option {
	return func(p *Pipeline) { p.maxChars = n }
}

// WithObserver registers a transition hook
func WithObserver(fn Observer) Option {
	return func(p *Pipeline) { p.observer = fn }
}

// WithSessionID tags snapshots and log lines
func WithSessionID(id string) Option {
	return func(p *Pipeline) { p.sessionID = id }
}

// Pipeline sequences transcription and analysis for one session.
// It owns the processing status and the result; only one run may be in
// flight and a finished run must be reset before the next one starts.
type Pipeline struct {
	transcriber Transcriber
	analyzer    Analyzer
	messages    Messages
	maxChars    int
	sessionID   string
	observer    Observer
	logger      *zap.Logger

	mu        sync.Mutex
	status    entities.ProcessingStatus
	result    *entities.BriefingResult
	running   bool
	updatedAt time.Time
}

// NewPipeline creates a pipeline. The transcriber may be nil when only text
// input is expected.
func NewPipeline(transcriber Transcriber, analyzer Analyzer, opts ...Option) *Pipeline {
	p := &Pipeline{
		transcriber: transcriber,
		analyzer:    analyzer,
		messages:    MessagesFor("ru"),
		maxChars:    30000,
		logger:      zap.NewNop(),
		status:      entities.IdleStatus(),
		updatedAt:   time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one pipeline run. Text input skips transcription.
// Remote failures leave the pipeline in the error step with a classified
// message and are returned as TranscriptionError, AnalysisError or
// ConfigurationError.
func (p *Pipeline) Run(ctx context.Context, input entities.InputPayload) (*entities.BriefingResult, error) {
	if input.IsZero() {
		return nil, entities.NewInputError("no input provided", nil)
	}
	var audio []byte
	if input.Kind() == entities.InputKindAudio {
		raw, err := input.AudioBytes()
		if err != nil {
			return nil, err
		}
		audio = raw
	} else if strings.TrimSpace(input.Content()) == "" {
		return nil, entities.NewInputError("text payload is empty", nil)
	}

	if err := p.begin(); err != nil {
		return nil, err
	}

	log := p.logger.With(zap.String("session_id", p.sessionID), zap.String("input_kind", string(input.Kind())))
	start := time.Now()

	transcript := input.Content()
	if input.Kind() == entities.InputKindAudio {
		p.transition(entities.StepTranscribing, p.messages.Transcribing, nil)
		log.Info("briefing.transcribing", zap.String("mime_type", input.MimeType()), zap.Int("audio_bytes", len(audio)))

		text, err := p.transcribe(ctx, audio, input.MimeType())
		if err != nil {
			return nil, p.fail(log, err)
		}
		transcript = text
	}

	p.transition(entities.StepAnalyzing, p.messages.Analyzing, nil)
	log.Info("briefing.analyzing", zap.Int("transcript_chars", len([]rune(transcript))))

	analysis, err := p.analyze(ctx, transcript)
	if err != nil {
		return nil, p.fail(log, err)
	}

	result := entities.NewBriefingResult(transcript, analysis)
	p.transition(entities.StepCompleted, p.messages.Completed, result)
	log.Info("briefing.completed",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("action_items", len(result.ActionItems)),
	)
	return result.Clone(), nil
}

func (p *Pipeline) transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if p.transcriber == nil {
		return "", &entities.ConfigurationError{Setting: "TRANSCRIPTION_PROVIDER", Err: ErrNoProvider}
	}
	text, err := p.transcriber.Transcribe(ctx, audio, mimeType)
	if err != nil {
		if cfgErr := asConfigurationError(err); cfgErr != nil {
			return "", cfgErr
		}
		return "", &entities.TranscriptionError{Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &entities.TranscriptionError{Err: ErrEmptyTranscript}
	}
	return text, nil
}

func (p *Pipeline) analyze(ctx context.Context, transcript string) (entities.Analysis, error) {
	if p.analyzer == nil {
		return entities.Analysis{}, &entities.ConfigurationError{Setting: "ANALYSIS_PROVIDER", Err: ErrNoProvider}
	}
	raw, err := p.analyzer.Analyze(ctx, Truncate(transcript, p.maxChars))
	if err != nil {
		if cfgErr := asConfigurationError(err); cfgErr != nil {
			return entities.Analysis{}, cfgErr
		}
		return entities.Analysis{}, &entities.AnalysisError{Err: err}
	}
	analysis, err := ParseAnalysis(raw, p.messages)
	if err != nil {
		return entities.Analysis{}, &entities.AnalysisError{Err: err}
	}
	return analysis, nil
}

func asConfigurationError(err error) *entities.ConfigurationError {
	var cfgErr *entities.ConfigurationError
	if errors.As(err, &cfgErr) {
		return cfgErr
	}
	if errors.Is(err, ai.ErrMissingAPIKey) {
		return &entities.ConfigurationError{Setting: "API_KEY", Err: err}
	}
	return nil
}

// begin claims the pipeline for a new run
func (p *Pipeline) begin() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return entities.ErrBusy
	}
	if p.status.Step.IsTerminal() {
		return entities.ErrNotReset
	}
	p.running = true
	return nil
}

func (p *Pipeline) fail(log *zap.Logger, err error) error {
	msg := Classify(err, p.messages)
	log.Error("briefing.failed", zap.String("message", msg), zap.Error(err))
	p.transition(entities.StepError, msg, nil)
	return err
}

// transition moves to step and notifies the observer outside the lock
func (p *Pipeline) transition(step entities.ProcessingStep, message string, result *entities.BriefingResult) {
	p.mu.Lock()
	snap := p.setLocked(step, message, result)
	p.mu.Unlock()
	p.notify(snap)
}

func (p *Pipeline) setLocked(step entities.ProcessingStep, message string, result *entities.BriefingResult) entities.Snapshot {
	p.status = entities.ProcessingStatus{Step: step, Message: message}
	p.result = result
	if step.IsTerminal() {
		p.running = false
	}
	p.updatedAt = time.Now().UTC()
	return p.snapshotLocked()
}

func (p *Pipeline) notify(snap entities.Snapshot) {
	if p.observer != nil {
		p.observer(snap)
	}
}

// Reset returns a finished pipeline to idle and discards the result
func (p *Pipeline) Reset() error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return entities.ErrBusy
	}
	snap := p.setLocked(entities.StepIdle, "", nil)
	p.mu.Unlock()

	p.notify(snap)
	p.logger.Debug("briefing.reset", zap.String("session_id", p.sessionID))
	return nil
}

// Status returns the current status
func (p *Pipeline) Status() entities.ProcessingStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Result returns a copy of the result, or nil unless the run completed
func (p *Pipeline) Result() *entities.BriefingResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result.Clone()
}

// Busy reports whether a run is in flight
func (p *Pipeline) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Snapshot returns a point-in-time copy of status and result
func (p *Pipeline) Snapshot() entities.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Pipeline) snapshotLocked() entities.Snapshot {
	return entities.Snapshot{
		SessionID: p.sessionID,
		Status:    p.status,
		Progress:  p.status.Step.Progress(),
		Result:    p.result.Clone(),
		UpdatedAt: p.updatedAt,
	}
}
