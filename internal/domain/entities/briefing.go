package entities

// BriefingResult is the structured outcome of a completed pipeline run
type BriefingResult struct {
	Transcription string   `json:"transcription"`
	Summary       string   `json:"summary"`
	MainThemes    []string `json:"mainThemes"`
	KeyPoints     []string `json:"keyPoints"`
	ActionItems   []string `json:"actionItems"`
	Sentiment     string   `json:"sentiment"`
}

// Analysis is the part of a briefing produced by the analysis step
type Analysis struct {
	Summary     string   `json:"summary"`
	MainThemes  []string `json:"mainThemes"`
	KeyPoints   []string `json:"keyPoints"`
	ActionItems []string `json:"actionItems"`
	Sentiment   string   `json:"sentiment"`
}

// NewBriefingResult joins a transcript with its analysis
func NewBriefingResult(transcript string, a Analysis) *BriefingResult {
	return &BriefingResult{
		Transcription: transcript,
		Summary:       a.Summary,
		MainThemes:    a.MainThemes,
		KeyPoints:     a.KeyPoints,
		ActionItems:   a.ActionItems,
		Sentiment:     a.Sentiment,
	}
}

// Clone returns a deep copy so callers cannot mutate pipeline-owned state
func (b *BriefingResult) Clone() *BriefingResult {
	if b == nil {
		return nil
	}
	out := *b
	out.MainThemes = append([]string(nil), b.MainThemes...)
	out.KeyPoints = append([]string(nil), b.KeyPoints...)
	out.ActionItems = append([]string(nil), b.ActionItems...)
	return &out
}
