package capture

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/johnquangdev/voxly/internal/domain/entities"
)

var audioExtensions = map[string]string{
	".webm": "audio/webm",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".opus": "audio/ogg",
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".mp4":  "audio/mp4",
	".wav":  "audio/wav",
	".flac": "audio/flac",
	".aac":  "audio/aac",
}

// DetectMime resolves the MIME type of an audio file: the extension is
// consulted first, then the content is sniffed.
func DetectMime(name string, data []byte) string {
	if m, ok := audioExtensions[strings.ToLower(filepath.Ext(name))]; ok {
		return m
	}
	return mimetype.Detect(data).String()
}

// IsAudioMime reports whether m names audio, or a container that carries it
func IsAudioMime(m string) bool {
	m = strings.ToLower(m)
	return strings.HasPrefix(m, "audio/") || strings.HasPrefix(m, "video/")
}

// FileSource reads an audio file from disk
type FileSource struct {
	Path string
	// MimeType is passed through unchanged when set
	MimeType string
	// MaxBytes rejects larger files when positive
	MaxBytes int64
}

// Capture reads the file and returns an audio payload
func (s FileSource) Capture(ctx context.Context) (entities.InputPayload, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return entities.InputPayload{}, entities.NewInputError("cannot open audio file", err)
	}
	defer f.Close()

	return ReadAudio(ctx, f, filepath.Base(s.Path), s.MimeType, s.MaxBytes)
}

// ReadAudio reads an uploaded stream into an audio payload. A declared
// mimeType is passed through unchanged; an empty one is detected from name
// and content, and must then name audio.
func ReadAudio(_ context.Context, r io.Reader, name, mimeType string, maxBytes int64) (entities.InputPayload, error) {
	if maxBytes > 0 {
		r = io.LimitReader(r, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return entities.InputPayload{}, entities.NewInputError("cannot read audio", err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return entities.InputPayload{}, entities.NewInputError(fmt.Sprintf("audio exceeds %d bytes", maxBytes), nil)
	}
	if len(data) == 0 {
		return entities.InputPayload{}, entities.NewInputError("audio file is empty", nil)
	}

	if mimeType = strings.TrimSpace(mimeType); mimeType != "" {
		return entities.NewAudioInputFromBytes(data, mimeType)
	}
	detected := DetectMime(name, data)
	if !IsAudioMime(detected) {
		return entities.InputPayload{}, entities.NewInputError(fmt.Sprintf("unsupported file type %s", detected), nil)
	}
	return entities.NewAudioInputFromBytes(data, detected)
}
