package entities

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// InputKind tags the variant carried by an InputPayload
type InputKind string

const (
	InputKindAudio InputKind = "audio"
	InputKindText  InputKind = "text"
)

// InputPayload is the normalized input handed to the pipeline.
// Audio payloads carry base64 data and a MIME type; text payloads carry content.
type InputPayload struct {
	kind     InputKind
	data     string
	mimeType string
	content  string
}

// NewAudioInput builds an audio payload from base64-encoded bytes
func NewAudioInput(base64Data, mimeType string) (InputPayload, error) {
	if base64Data == "" {
		return InputPayload{}, NewInputError("audio payload is empty", nil)
	}
	if mimeType == "" {
		return InputPayload{}, NewInputError("audio payload has no mime type", nil)
	}
	return InputPayload{kind: InputKindAudio, data: base64Data, mimeType: mimeType}, nil
}

// NewAudioInputFromBytes base64-encodes raw audio and builds an audio payload
func NewAudioInputFromBytes(raw []byte, mimeType string) (InputPayload, error) {
	if len(raw) == 0 {
		return InputPayload{}, NewInputError("audio payload is empty", nil)
	}
	return NewAudioInput(base64.StdEncoding.EncodeToString(raw), mimeType)
}

// NewTextInput builds a text payload. Content is kept verbatim; it is only
// rejected when nothing but whitespace remains after trimming.
func NewTextInput(content string) (InputPayload, error) {
	if strings.TrimSpace(content) == "" {
		return InputPayload{}, NewInputError("text payload is empty", nil)
	}
	return InputPayload{kind: InputKindText, content: content}, nil
}

func (p InputPayload) Kind() InputKind  { return p.kind }
func (p InputPayload) Data() string     { return p.data }
func (p InputPayload) MimeType() string { return p.mimeType }
func (p InputPayload) Content() string  { return p.content }

// IsZero reports whether the payload was never constructed
func (p InputPayload) IsZero() bool { return p.kind == "" }

// AudioBytes decodes the base64 audio data
func (p InputPayload) AudioBytes() ([]byte, error) {
	if p.kind != InputKindAudio {
		return nil, fmt.Errorf("payload kind %q carries no audio", p.kind)
	}
	raw, err := base64.StdEncoding.DecodeString(p.data)
	if err != nil {
		return nil, NewInputError("audio payload is not valid base64", err)
	}
	return raw, nil
}
