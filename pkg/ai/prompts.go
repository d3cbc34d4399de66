package ai

import (
	"fmt"
	"strings"
)

// DefaultTranscribePrompt instructs the model to act as a stenographer.
// %s is replaced with the target language name.
const DefaultTranscribePrompt = `You are a professional stenographer. Transcribe the attached audio into %s.

Rules:
1. Separate the turns of different people using the format "Speaker 1: <text>", "Speaker 2: <text>".
2. If there is only one speaker, split the text into logical paragraphs instead.
3. Keep the meaning exact, but drop filler words that carry no meaning.
4. Punctuate for easy reading.

Return ONLY the transcript text.`

// DefaultAnalysisPrompt asks for the briefing object.
// The first %s is the response language, the second the transcript.
const DefaultAnalysisPrompt = `Perform a deep analytical breakdown of the following text (a meeting transcript or a voice note):

"""
%s
"""

Structure the information so a reader understands the essence in 30 seconds and knows what to do next.
Write every value in %s.

1. summary: 2-3 strong sentences describing the essence.
2. mainThemes: 3-5 short tags.
3. keyPoints: a list of facts and conclusions.
4. actionItems: concrete actions to take.
5. sentiment: an assessment of the overall tone.

Answer STRICTLY as a JSON object with the keys summary, mainThemes, keyPoints, actionItems, sentiment.`

// AnalysisKeys are the keys every analysis response must contain
var AnalysisKeys = []string{"summary", "mainThemes", "keyPoints", "actionItems", "sentiment"}

var languageNames = map[string]string{
	"ru": "Russian",
	"en": "English",
	"uk": "Ukrainian",
	"de": "German",
	"fr": "French",
	"es": "Spanish",
	"vi": "Vietnamese",
}

// LanguageName maps a language code to the name used in prompts
func LanguageName(code string) string {
	if name, ok := languageNames[strings.ToLower(code)]; ok {
		return name
	}
	return code
}

// BuildTranscribePrompt renders the transcription prompt; an empty template uses the default
func BuildTranscribePrompt(template, language string) string {
	if template == "" {
		template = DefaultTranscribePrompt
	}
	if strings.Contains(template, "%s") {
		return fmt.Sprintf(template, LanguageName(language))
	}
	return template
}

// BuildAnalysisPrompt renders the analysis prompt; an empty template uses the default.
// Custom templates may reference the transcript with {{transcript}} and the language with {{language}}.
func BuildAnalysisPrompt(template, transcript, language string) string {
	if template == "" {
		return fmt.Sprintf(DefaultAnalysisPrompt, transcript, LanguageName(language))
	}
	r := strings.NewReplacer("{{transcript}}", transcript, "{{language}}", LanguageName(language))
	out := r.Replace(template)
	if !strings.Contains(template, "{{transcript}}") {
		out += "\n\n\"\"\"\n" + transcript + "\n\"\"\""
	}
	return out
}
