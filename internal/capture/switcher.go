package capture

import (
	"sync"

	"go.uber.org/zap"
)

// Switcher tracks the single active input mode. Leaving voice mode stops
// and discards an active recording so the microphone is always released.
type Switcher struct {
	recorder *Recorder
	logger   *zap.Logger

	mu   sync.Mutex
	mode Mode
}

// NewSwitcher starts in text mode. recorder may be nil when voice capture is unavailable.
func NewSwitcher(recorder *Recorder, logger *zap.Logger) *Switcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Switcher{recorder: recorder, logger: logger, mode: ModeText}
}

// Mode returns the active mode
func (s *Switcher) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Switch activates mode, discarding in-progress state of the previous one
func (s *Switcher) Switch(mode Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mode == s.mode {
		return nil
	}
	if s.recorder != nil && s.recorder.Recording() {
		if err := s.recorder.Discard(); err != nil {
			s.logger.Warn("capture.switch.discard_failed", zap.Error(err))
			return err
		}
		s.logger.Info("capture.switch.recording_discarded", zap.String("from", string(s.mode)), zap.String("to", string(mode)))
	}
	s.mode = mode
	return nil
}
