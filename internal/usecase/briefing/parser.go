package briefing

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/johnquangdev/voxly/internal/domain/entities"
)

// analysisResponse mirrors the structured output requested from the model.
// Pointer and nil-able fields distinguish missing keys from empty values.
type analysisResponse struct {
	Summary     *string  `json:"summary"`
	MainThemes  []string `json:"mainThemes"`
	KeyPoints   []string `json:"keyPoints"`
	ActionItems []string `json:"actionItems"`
	Sentiment   *string  `json:"sentiment"`
}

// ParseAnalysis parses the raw model response into an Analysis.
// Missing fields are replaced with defaults; malformed JSON is an error.
func ParseAnalysis(raw string, m Messages) (entities.Analysis, error) {
	content := extractJSON(raw)
	if content == "" {
		return entities.Analysis{}, errors.New("analysis response is empty")
	}
	if !strings.HasPrefix(content, "{") {
		return entities.Analysis{}, fmt.Errorf("analysis response is not a JSON object: %.40q", content)
	}

	var resp analysisResponse
	if err := json.Unmarshal([]byte(content), &resp); err != nil {
		return entities.Analysis{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	a := entities.Analysis{
		Summary:     m.SummaryFallback,
		MainThemes:  cleanList(resp.MainThemes),
		KeyPoints:   cleanList(resp.KeyPoints),
		ActionItems: cleanList(resp.ActionItems),
		Sentiment:   m.SentimentFallback,
	}
	if resp.Summary != nil && strings.TrimSpace(*resp.Summary) != "" {
		a.Summary = strings.TrimSpace(*resp.Summary)
	}
	if resp.Sentiment != nil && strings.TrimSpace(*resp.Sentiment) != "" {
		a.Sentiment = strings.TrimSpace(*resp.Sentiment)
	}
	return a, nil
}

// cleanList trims items and drops blanks; the result is never nil
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// extractJSON extracts JSON content from markdown code blocks or surrounding prose
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}
	content = strings.TrimSpace(content)

	if !strings.HasPrefix(content, "{") {
		start := strings.Index(content, "{")
		end := strings.LastIndex(content, "}")
		if start != -1 && end > start {
			content = content[start : end+1]
		}
	}
	return content
}
