package output

import (
	"fmt"
	"io"
	"time"

	"github.com/johnquangdev/voxly/internal/domain/entities"
)

type Formatter struct {
	w io.Writer
}

func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

func (f *Formatter) RecordingStarted() {
	fmt.Fprintf(f.w, "🎙️  Recording... press Enter to stop, Ctrl+C to discard\n")
}

// RecordingElapsed rewrites the current line with the running duration
func (f *Formatter) RecordingElapsed(d time.Duration) {
	fmt.Fprintf(f.w, "\r⏺️  %s ", FormatDuration(d))
}

func (f *Formatter) RecordingStopped(d time.Duration) {
	fmt.Fprintf(f.w, "\r⏹️  Recording stopped (%s)\n", FormatDuration(d))
}

func (f *Formatter) RecordingDiscarded() {
	fmt.Fprintf(f.w, "\r🗑️  Recording discarded\n")
}

// Status prints a pipeline transition
func (f *Formatter) Status(snap entities.Snapshot) {
	switch snap.Status.Step {
	case entities.StepTranscribing:
		fmt.Fprintf(f.w, "📝 %s\n", snap.Status.Message)
	case entities.StepAnalyzing:
		fmt.Fprintf(f.w, "🤖 %s\n", snap.Status.Message)
	case entities.StepCompleted:
		fmt.Fprintf(f.w, "✅ %s\n", snap.Status.Message)
	}
}

func (f *Formatter) Copied() {
	fmt.Fprintf(f.w, "📋 Report copied to clipboard\n")
}

func (f *Formatter) Exported(path string) {
	fmt.Fprintf(f.w, "💾 Document saved: %s\n", path)
}

func (f *Formatter) Error(msg string) {
	fmt.Fprintf(f.w, "❌ %s\n", msg)
}

func (f *Formatter) Info(msg string) {
	fmt.Fprintf(f.w, "ℹ️  %s\n", msg)
}

func (f *Formatter) Success(msg string) {
	fmt.Fprintf(f.w, "✅ %s\n", msg)
}

func (f *Formatter) Warning(msg string) {
	fmt.Fprintf(f.w, "⚠️  %s\n", msg)
}

func (f *Formatter) SetupCheck(name string, ok bool, detail string) {
	if ok {
		fmt.Fprintf(f.w, "  ✅ %s: %s\n", name, detail)
	} else {
		fmt.Fprintf(f.w, "  ❌ %s: %s\n", name, detail)
	}
}

// FormatDuration renders d as MM:SS, or H:MM:SS past an hour
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
