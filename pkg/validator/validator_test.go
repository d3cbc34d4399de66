package validator

import "testing"

type request struct {
	Kind     string `json:"kind" validate:"required,oneof=audio text"`
	MimeType string `json:"mimeType,omitempty" validate:"required_if=Kind audio,mediatype"`
}

func TestValidateMediaType(t *testing.T) {
	cv := New()

	if err := cv.Validate(&request{Kind: "audio", MimeType: "audio/webm"}); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
	if err := cv.Validate(&request{Kind: "text"}); err != nil {
		t.Fatalf("empty mime must pass for text, got %v", err)
	}

	if err := cv.Validate(&request{Kind: "audio", MimeType: "application/ogg"}); err != nil {
		t.Fatalf("any well-formed media type must pass, got %v", err)
	}

	err := cv.Validate(&request{Kind: "audio", MimeType: "not a mime"})
	if err == nil {
		t.Fatalf("expected mediatype failure")
	}
	if got := FieldErrors(err); got["mimeType"] != "mediatype" {
		t.Fatalf("unexpected field errors %v", got)
	}
}

func TestFieldErrorsUsesJSONNames(t *testing.T) {
	err := New().Validate(&request{Kind: "video"})
	got := FieldErrors(err)
	if got["kind"] != "oneof=audio text" {
		t.Fatalf("unexpected field errors %v", got)
	}
}

func TestFieldErrorsIgnoresOtherErrors(t *testing.T) {
	if FieldErrors(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}
