package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/voxly/internal/capture"
	"github.com/johnquangdev/voxly/internal/infrastructure/cache"
	"github.com/johnquangdev/voxly/internal/usecase/briefing"
	"github.com/johnquangdev/voxly/internal/usecase/session"
	"github.com/johnquangdev/voxly/pkg/ai"
	"github.com/johnquangdev/voxly/pkg/config"
)

// App wires the remote clients shared by the API server and the CLI
type App struct {
	Config      *config.Config
	Logger      *zap.Logger
	Transcriber ai.Transcriber
	Analyzer    ai.Analyzer

	closers []func() error
}

// New builds the provider clients selected by cfg
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	tr, err := ai.NewTranscriber(&cfg.AI)
	if err != nil {
		return nil, err
	}
	an, err := ai.NewAnalyzer(&cfg.AI)
	if err != nil {
		return nil, err
	}

	logger.Info("providers selected",
		zap.String("transcription", tr.Name()),
		zap.String("analysis", an.Name()),
		zap.String("api_key", cfg.KeyStatus()),
	)

	return &App{
		Config:      cfg,
		Logger:      logger,
		Transcriber: tr,
		Analyzer:    an,
	}, nil
}

// PipelineOptions returns the pipeline settings derived from config
func (a *App) PipelineOptions() []briefing.Option {
	return []briefing.Option{
		briefing.WithLogger(a.Logger),
		briefing.WithLocale(a.Config.Pipeline.Locale),
		briefing.WithMaxTranscriptChars(a.Config.Pipeline.MaxTranscriptChars),
	}
}

// NewPipeline creates a standalone pipeline for one local run
func (a *App) NewPipeline(opts ...briefing.Option) *briefing.Pipeline {
	return briefing.NewPipeline(a.Transcriber, a.Analyzer, append(a.PipelineOptions(), opts...)...)
}

// NewSessionManager creates the session registry backed by the configured snapshot store
func (a *App) NewSessionManager() (*session.Manager, error) {
	store, err := a.snapshotBackend()
	if err != nil {
		return nil, err
	}
	snapshots := cache.NewSnapshotStore(store, a.Config.Session.TTL)
	return session.NewManager(a.Transcriber, a.Analyzer, snapshots, a.Config.Session.TTL, a.Logger, a.PipelineOptions()...), nil
}

// NewRecorder creates a microphone recorder using the configured ffmpeg input
func (a *App) NewRecorder(opts ...capture.RecorderOption) *capture.Recorder {
	rc := a.Config.Recorder
	starter := capture.NewFFmpegStarter(rc.FFmpegPath, rc.InputFormat, rc.InputDevice)
	return capture.NewRecorder(starter, append([]capture.RecorderOption{capture.WithRecorderLogger(a.Logger)}, opts...)...)
}

func (a *App) snapshotBackend() (cache.Store, error) {
	switch a.Config.Session.Store {
	case "redis":
		client, err := cache.NewRedisClient(a.Config)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		store := cache.NewRedisStore(client)
		a.closers = append(a.closers, store.Close)
		a.Logger.Info("session store ready", zap.String("backend", "redis"), zap.String("addr", a.Config.GetRedisAddr()))
		return store, nil
	default:
		store := cache.NewMemoryStore(time.Minute)
		a.closers = append(a.closers, store.Close)
		a.Logger.Info("session store ready", zap.String("backend", "memory"))
		return store, nil
	}
}

// Close releases the stores opened by the app
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}
