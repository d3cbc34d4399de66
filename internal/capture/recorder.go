package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/voxly/internal/domain/entities"
)

// RecordingMimeType is the container produced by the recorder
const RecordingMimeType = "audio/webm"

var (
	ErrAlreadyRecording = errors.New("recording already in progress")
	ErrNotRecording     = errors.New("no recording in progress")
)

// Stream is a running capture process whose output is encoded audio
type Stream interface {
	io.Reader
	Stop() error
}

// Starter launches a capture stream
type Starter interface {
	Start(ctx context.Context) (Stream, error)
}

// FFmpegStarter captures the microphone with ffmpeg and encodes WebM/Opus to stdout
type FFmpegStarter struct {
	Command     string
	InputFormat string
	InputDevice string
}

// NewFFmpegStarter creates a starter with defaults for empty fields
func NewFFmpegStarter(command, inputFormat, inputDevice string) *FFmpegStarter {
	if command == "" {
		command = "ffmpeg"
	}
	if inputFormat == "" {
		inputFormat = "pulse"
	}
	if inputDevice == "" {
		inputDevice = "default"
	}
	return &FFmpegStarter{Command: command, InputFormat: inputFormat, InputDevice: inputDevice}
}

// Args returns the ffmpeg command line
func (s *FFmpegStarter) Args() []string {
	return []string{
		"-nostdin",
		"-hide_banner",
		"-loglevel", "warning",
		"-f", s.InputFormat,
		"-i", s.InputDevice,
		"-ac", "1",
		"-c:a", "libopus",
		"-b:a", "64k",
		"-f", "webm",
		"-",
	}
}

// Start launches ffmpeg and waits briefly to catch immediate failures.
// Stdout is an os.Pipe owned by the stream so Wait never closes it under a pending read.
func (s *FFmpegStarter) Start(ctx context.Context) (Stream, error) {
	cmd := exec.CommandContext(ctx, s.Command, s.Args()...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create ffmpeg stdout pipe: %w", err)
	}
	cmd.Stdout = pw
	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		return nil, fmt.Errorf("failed to start ffmpeg: %w", err)
	}
	pw.Close()

	waitErr := make(chan error, 1)
	go func() {
		waitErr <- cmd.Wait()
		close(waitErr)
	}()

	select {
	case err := <-waitErr:
		pr.Close()
		if err != nil {
			return nil, fmt.Errorf("ffmpeg exited before capture started: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
		}
		return nil, errors.New("ffmpeg exited before capture started")
	case <-time.After(250 * time.Millisecond):
	}

	return &ffmpegStream{stdout: pr, stderr: &stderr, process: cmd.Process, waitErr: waitErr}, nil
}

type ffmpegStream struct {
	stdout  *os.File
	stderr  *bytes.Buffer
	process *os.Process
	waitErr <-chan error

	stopOnce sync.Once
	stopErr  error
}

func (s *ffmpegStream) Read(p []byte) (int, error) {
	return s.stdout.Read(p)
}

// Close releases the read end of the pipe
func (s *ffmpegStream) Close() error {
	return s.stdout.Close()
}

// Stop interrupts ffmpeg so it can finalize the container, killing it if it lingers
func (s *ffmpegStream) Stop() error {
	s.stopOnce.Do(func() {
		_ = s.process.Signal(os.Interrupt)

		select {
		case err, ok := <-s.waitErr:
			if ok {
				s.stopErr = normalizeStopErr(err)
			}
		case <-time.After(1200 * time.Millisecond):
			_ = s.process.Kill()
			if err, ok := <-s.waitErr; ok {
				s.stopErr = normalizeStopErr(err)
			}
		}

		if s.stopErr != nil && s.stderr.Len() > 0 {
			s.stopErr = fmt.Errorf("%w: %s", s.stopErr, bytes.TrimSpace(s.stderr.Bytes()))
		}
	})
	return s.stopErr
}

func normalizeStopErr(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return err
}

// RecorderOption configures a Recorder
type RecorderOption func(*Recorder)

// WithTick reports elapsed recording time every interval
func WithTick(interval time.Duration, fn func(time.Duration)) RecorderOption {
	return func(r *Recorder) {
		r.tickInterval = interval
		r.onTick = fn
	}
}

// WithRecorderLogger sets the logger
func WithRecorderLogger(logger *zap.Logger) RecorderOption {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Recorder is the microphone start/stop toggle. While active, audio chunks
// accumulate in order; Stop joins them into one payload.
type Recorder struct {
	starter      Starter
	chunkSize    int
	tickInterval time.Duration
	onTick       func(time.Duration)
	logger       *zap.Logger

	mu     sync.Mutex
	active *recording
}

type recording struct {
	stream  Stream
	started time.Time
	cancel  context.CancelFunc

	readDone chan struct{}
	tickDone chan struct{}

	mu      sync.Mutex
	chunks  [][]byte
	readErr error
}

// NewRecorder creates a recorder over starter
func NewRecorder(starter Starter, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		starter:      starter,
		chunkSize:    4096,
		tickInterval: time.Second,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start begins recording. The recording outlives ctx cancellation of the
// caller and ends only with Stop or Discard.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != nil {
		return ErrAlreadyRecording
	}

	recCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stream, err := r.starter.Start(recCtx)
	if err != nil {
		cancel()
		return err
	}

	rec := &recording{
		stream:   stream,
		started:  time.Now(),
		cancel:   cancel,
		readDone: make(chan struct{}),
		tickDone: make(chan struct{}),
	}
	go rec.pump(r.chunkSize)
	go rec.tick(recCtx, r.tickInterval, r.onTick)

	r.active = rec
	r.logger.Info("recorder.started")
	return nil
}

// Recording reports whether a recording is active
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active != nil
}

// Elapsed returns how long the active recording has been running
func (r *Recorder) Elapsed() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil {
		return 0
	}
	return time.Since(r.active.started)
}

// Stop ends the recording and returns the captured audio as a payload
func (r *Recorder) Stop() (entities.InputPayload, error) {
	rec, err := r.finish()
	if err != nil {
		return entities.InputPayload{}, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.readErr != nil {
		return entities.InputPayload{}, fmt.Errorf("audio capture error: %w", rec.readErr)
	}
	audio := bytes.Join(rec.chunks, nil)
	if len(audio) == 0 {
		return entities.InputPayload{}, entities.NewInputError("no audio was recorded", nil)
	}
	r.logger.Info("recorder.stopped", zap.Int("chunks", len(rec.chunks)), zap.Int("bytes", len(audio)))
	return entities.NewAudioInputFromBytes(audio, RecordingMimeType)
}

// Discard ends the recording and drops the captured audio.
// It is a no-op when nothing is recording.
func (r *Recorder) Discard() error {
	_, err := r.finish()
	if errors.Is(err, ErrNotRecording) {
		return nil
	}
	if err == nil {
		r.logger.Info("recorder.discarded")
	}
	return err
}

// finish stops the stream, waits for the reader and ticker goroutines and
// clears the active recording
func (r *Recorder) finish() (*recording, error) {
	r.mu.Lock()
	rec := r.active
	r.active = nil
	r.mu.Unlock()

	if rec == nil {
		return nil, ErrNotRecording
	}

	stopErr := rec.stream.Stop()
	<-rec.readDone
	if c, ok := rec.stream.(io.Closer); ok {
		_ = c.Close()
	}
	rec.cancel()
	<-rec.tickDone

	if stopErr != nil {
		return nil, fmt.Errorf("failed to stop recording: %w", stopErr)
	}
	return rec, nil
}

func (rec *recording) pump(chunkSize int) {
	defer close(rec.readDone)

	buf := make([]byte, chunkSize)
	for {
		n, err := rec.stream.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			rec.mu.Lock()
			rec.chunks = append(rec.chunks, chunk)
			rec.mu.Unlock()
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
				rec.mu.Lock()
				rec.readErr = err
				rec.mu.Unlock()
			}
			return
		}
	}
}

func (rec *recording) tick(ctx context.Context, interval time.Duration, fn func(time.Duration)) {
	defer close(rec.tickDone)
	if fn == nil || interval <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(time.Since(rec.started).Truncate(time.Second))
		}
	}
}
