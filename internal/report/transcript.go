package report

import (
	"regexp"
	"strings"
)

// Segment is one block of a speaker-segmented transcript.
// Speaker is empty for unlabeled paragraphs.
type Segment struct {
	Speaker string `json:"speaker,omitempty"`
	Text    string `json:"text"`
}

var speakerLine = regexp.MustCompile(`^([^:\n]{1,40}):(.*)$`)

// Segments splits a transcript into speaker blocks. Lines shaped like
// "Speaker 1: text" or "Name: text" are labeled; blank lines are skipped.
func Segments(transcript string) []Segment {
	out := make([]Segment, 0)
	for _, line := range strings.Split(transcript, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := speakerLine.FindStringSubmatch(line); m != nil {
			out = append(out, Segment{Speaker: strings.TrimSpace(m[1]), Text: strings.TrimSpace(m[2])})
			continue
		}
		out = append(out, Segment{Text: line})
	}
	return out
}

// Segmented reports whether any speaker label was found
func Segmented(segments []Segment) bool {
	for _, s := range segments {
		if s.Speaker != "" {
			return true
		}
	}
	return false
}
