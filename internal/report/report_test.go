package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/johnquangdev/voxly/internal/domain/entities"
)

func sampleResult() *entities.BriefingResult {
	return &entities.BriefingResult{
		Transcription: "Speaker 1: Buy milk.\nSpeaker 2: Call Alice.",
		Summary:       "Two errands <today>.",
		MainThemes:    []string{"errands", "family"},
		KeyPoints:     []string{"milk is out", "Alice is waiting"},
		ActionItems:   []string{"Buy milk", "Call Alice"},
		Sentiment:     "Продуктивная",
	}
}

func TestPlainText(t *testing.T) {
	got := PlainText(sampleResult(), "en")

	for _, want := range []string{
		"VOXLY REPORT",
		"EXECUTIVE SUMMARY:\nTwo errands <today>.",
		"MAIN THEMES:\nerrands, family",
		"1. milk is out\n2. Alice is waiting",
		"[ ] Buy milk\n[ ] Call Alice",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("plain text missing %q:\n%s", want, got)
		}
	}
	if PlainText(nil, "en") != "" {
		t.Fatalf("nil result should render empty")
	}
}

func TestDocument(t *testing.T) {
	doc, err := Document(sampleResult(), "ru")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("\ufeff")) {
		t.Fatalf("document must start with a BOM")
	}
	s := string(doc)
	if !strings.Contains(s, "Отчет Voxly") || !strings.Contains(s, "[ ] Call Alice") {
		t.Fatalf("document missing content:\n%s", s)
	}
	if strings.Contains(s, "<today>") || !strings.Contains(s, "&lt;today&gt;") {
		t.Fatalf("summary not escaped:\n%s", s)
	}

	if _, err := Document(nil, "ru"); err == nil {
		t.Fatalf("expected error for nil result")
	}
}

func TestDocumentFileName(t *testing.T) {
	got := DocumentFileName(time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC))
	if got != "Voxly_Briefing_2026-03-09.doc" {
		t.Fatalf("unexpected file name %q", got)
	}
}

func TestSegments(t *testing.T) {
	segs := Segments("Спикер 1: Привет.\n\nСпикер 2:  Добрый день \nпросто абзац без метки")
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %+v", segs)
	}
	if segs[0].Speaker != "Спикер 1" || segs[0].Text != "Привет." {
		t.Fatalf("unexpected first segment %+v", segs[0])
	}
	if segs[1].Text != "Добрый день" {
		t.Fatalf("text not trimmed: %q", segs[1].Text)
	}
	if segs[2].Speaker != "" || segs[2].Text != "просто абзац без метки" {
		t.Fatalf("unlabeled line mislabeled: %+v", segs[2])
	}
	if !Segmented(segs) || Segmented(Segments("no labels here")) {
		t.Fatalf("Segmented misreports labels")
	}
	if got := Segments("   "); got == nil || len(got) != 0 {
		t.Fatalf("blank transcript should yield empty, non-nil segments")
	}
}

func TestToneOf(t *testing.T) {
	cases := map[string]Tone{
		"Продуктивная и позитивная": TonePositive,
		"Напряженная":               ToneNegative,
		"Mostly negative":           ToneNegative,
		"Нейтральная":               ToneNeutral,
		"":                          ToneNeutral,
	}
	for in, want := range cases {
		if got := ToneOf(in); got != want {
			t.Fatalf("ToneOf(%q) = %s, want %s", in, got, want)
		}
	}
}
