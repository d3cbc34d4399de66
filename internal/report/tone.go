package report

import "strings"

// Tone is a coarse sentiment class used for styling
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
	ToneNeutral  Tone = "neutral"
)

var (
	positiveMarkers = []string{"позитив", "продуктив", "positive", "productive"}
	negativeMarkers = []string{"негатив", "напряжен", "negative", "tense"}
)

// ToneOf classifies a free-form sentiment description by keyword
func ToneOf(sentiment string) Tone {
	s := strings.ToLower(sentiment)
	for _, m := range positiveMarkers {
		if strings.Contains(s, m) {
			return TonePositive
		}
	}
	for _, m := range negativeMarkers {
		if strings.Contains(s, m) {
			return ToneNegative
		}
	}
	return ToneNeutral
}
