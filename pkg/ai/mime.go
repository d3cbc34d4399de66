package ai

import "strings"

var mimeExtensions = map[string]string{
	"audio/webm":   ".webm",
	"audio/ogg":    ".ogg",
	"audio/opus":   ".opus",
	"audio/mpeg":   ".mp3",
	"audio/mp3":    ".mp3",
	"audio/mp4":    ".m4a",
	"audio/x-m4a":  ".m4a",
	"audio/aac":    ".aac",
	"audio/wav":    ".wav",
	"audio/x-wav":  ".wav",
	"audio/wave":   ".wav",
	"audio/flac":   ".flac",
	"audio/x-flac": ".flac",
	"video/webm":   ".webm",
	"video/mp4":    ".mp4",
}

// ExtensionForMime returns a file extension for an audio MIME type.
// Parameters such as ";codecs=opus" are ignored; unknown types yield ".bin".
func ExtensionForMime(mimeType string) string {
	base := strings.ToLower(strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0]))
	if ext, ok := mimeExtensions[base]; ok {
		return ext
	}
	return ".bin"
}
