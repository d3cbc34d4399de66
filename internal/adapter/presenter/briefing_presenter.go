package presenter

import (
	"github.com/johnquangdev/voxly/internal/adapter/dto"
	"github.com/johnquangdev/voxly/internal/domain/entities"
	"github.com/johnquangdev/voxly/internal/report"
)

// ToSessionResponse converts a pipeline snapshot to SessionResponse DTO
func ToSessionResponse(snap entities.Snapshot) dto.SessionResponse {
	return dto.SessionResponse{
		SessionID:  snap.SessionID,
		Step:       snap.Status.Step,
		Message:    snap.Status.Message,
		Progress:   snap.Progress,
		Processing: snap.Status.Step.IsProcessing(),
		Result:     snap.Result,
		UpdatedAt:  snap.UpdatedAt,
	}
}

// ToReportResponse converts a completed snapshot to ReportResponse DTO
func ToReportResponse(snap entities.Snapshot, locale string) dto.ReportResponse {
	resp := dto.ReportResponse{
		SessionID: snap.SessionID,
		Result:    snap.Result,
		Tone:      report.ToneNeutral,
	}
	if snap.Result != nil {
		resp.Tone = report.ToneOf(snap.Result.Sentiment)
		resp.PlainText = report.PlainText(snap.Result, locale)
	}
	return resp
}

// ToTranscriptResponse splits the transcript of a snapshot into speaker segments
func ToTranscriptResponse(snap entities.Snapshot) dto.TranscriptResponse {
	segments := []report.Segment{}
	if snap.Result != nil {
		segments = report.Segments(snap.Result.Transcription)
	}
	return dto.TranscriptResponse{
		SessionID: snap.SessionID,
		Segmented: report.Segmented(segments),
		Segments:  segments,
	}
}
