package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/johnquangdev/voxly/internal/domain/entities"
)

func TestFormatDuration(t *testing.T) {
	cases := map[time.Duration]string{
		0:                       "00:00",
		65 * time.Second:        "01:05",
		1499 * time.Millisecond: "00:01",
		time.Hour + 2*time.Minute + 3*time.Second: "1:02:03",
	}
	for in, want := range cases {
		if got := FormatDuration(in); got != want {
			t.Fatalf("FormatDuration(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestStatusSkipsIdleAndError(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	f.Status(entities.Snapshot{Status: entities.ProcessingStatus{Step: entities.StepIdle}})
	f.Status(entities.Snapshot{Status: entities.ProcessingStatus{Step: entities.StepError, Message: "boom"}})
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}

	f.Status(entities.Snapshot{Status: entities.ProcessingStatus{Step: entities.StepAnalyzing, Message: "Analyzing"}})
	if !strings.Contains(buf.String(), "Analyzing") {
		t.Fatalf("missing analyzing line: %q", buf.String())
	}
}
