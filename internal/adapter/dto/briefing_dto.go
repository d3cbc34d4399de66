package dto

import (
	"time"

	"github.com/johnquangdev/voxly/internal/domain/entities"
	"github.com/johnquangdev/voxly/internal/report"
)

// CreateBriefingRequest is the JSON input of a pipeline run.
// Audio is base64 in Data with its MimeType; text goes in Text.
type CreateBriefingRequest struct {
	Kind     string `json:"kind" validate:"required,oneof=audio text" example:"text"`
	Data     string `json:"data,omitempty" validate:"required_if=Kind audio"`
	MimeType string `json:"mimeType,omitempty" validate:"required_if=Kind audio,mediatype" example:"audio/webm"`
	Text     string `json:"text,omitempty" validate:"required_if=Kind text" example:"Buy milk. Call Alice."`
}

// ToInput converts the request to a pipeline payload
func (r CreateBriefingRequest) ToInput() (entities.InputPayload, error) {
	if r.Kind == string(entities.InputKindAudio) {
		return entities.NewAudioInput(r.Data, r.MimeType)
	}
	return entities.NewTextInput(r.Text)
}

// SessionResponse is the observable state of a session
type SessionResponse struct {
	SessionID string                  `json:"session_id"`
	Step      entities.ProcessingStep `json:"step" example:"completed"`
	Message   string                  `json:"message" example:"Готово!"`
	Progress  int                     `json:"progress" example:"100"`
	// Processing is true while new input is refused
	Processing bool                     `json:"processing" example:"false"`
	Result     *entities.BriefingResult `json:"result,omitempty"`
	UpdatedAt  time.Time                `json:"updated_at"`
}

// ReportResponse is the JSON report of a completed briefing
type ReportResponse struct {
	SessionID string                   `json:"session_id"`
	Result    *entities.BriefingResult `json:"result"`
	Tone      report.Tone              `json:"tone" example:"positive"`
	PlainText string                   `json:"plain_text"`
}

// TranscriptResponse is the speaker-segmented transcript
type TranscriptResponse struct {
	SessionID string           `json:"session_id"`
	Segmented bool             `json:"segmented"`
	Segments  []report.Segment `json:"segments"`
}
