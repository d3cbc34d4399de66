package presenter

import (
	"strings"
	"testing"

	"github.com/johnquangdev/voxly/internal/domain/entities"
	"github.com/johnquangdev/voxly/internal/report"
)

func completedSnapshot() entities.Snapshot {
	return entities.Snapshot{
		SessionID: "s-1",
		Status:    entities.ProcessingStatus{Step: entities.StepCompleted, Message: "Done!"},
		Progress:  100,
		Result: &entities.BriefingResult{
			Transcription: "Alice: hi\nBob: hello",
			Summary:       "Greetings",
			MainThemes:    []string{},
			KeyPoints:     []string{},
			ActionItems:   []string{"Reply"},
			Sentiment:     "Positive and productive",
		},
	}
}

func TestToSessionResponse(t *testing.T) {
	resp := ToSessionResponse(completedSnapshot())
	if resp.SessionID != "s-1" || resp.Step != entities.StepCompleted || resp.Progress != 100 || resp.Message != "Done!" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Result == nil || resp.Result.Summary != "Greetings" {
		t.Fatalf("result not carried over")
	}
	if resp.Processing {
		t.Fatalf("completed session must not report processing")
	}

	snap := completedSnapshot()
	snap.Status.Step = entities.StepAnalyzing
	if !ToSessionResponse(snap).Processing {
		t.Fatalf("analyzing session must report processing")
	}
}

func TestToReportResponse(t *testing.T) {
	resp := ToReportResponse(completedSnapshot(), "en")
	if resp.Tone != report.TonePositive {
		t.Fatalf("expected positive tone, got %s", resp.Tone)
	}
	if !strings.Contains(resp.PlainText, "[ ] Reply") {
		t.Fatalf("plain text missing task:\n%s", resp.PlainText)
	}

	empty := ToReportResponse(entities.Snapshot{SessionID: "s-2"}, "en")
	if empty.Tone != report.ToneNeutral || empty.PlainText != "" {
		t.Fatalf("unexpected empty report %+v", empty)
	}
}

func TestToTranscriptResponse(t *testing.T) {
	resp := ToTranscriptResponse(completedSnapshot())
	if !resp.Segmented || len(resp.Segments) != 2 || resp.Segments[1].Speaker != "Bob" {
		t.Fatalf("unexpected segments %+v", resp)
	}

	empty := ToTranscriptResponse(entities.Snapshot{})
	if empty.Segmented || empty.Segments == nil {
		t.Fatalf("expected non-nil empty segments, got %+v", empty)
	}
}
