package report

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/voxly/internal/domain/entities"
)

// PlainText renders the clipboard report: summary, themes, numbered
// insights and unchecked tasks
func PlainText(r *entities.BriefingResult, locale string) string {
	if r == nil {
		return ""
	}
	l := LabelsFor(locale)

	var sb strings.Builder
	sb.WriteString(strings.ToUpper(l.Title))
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "%s:\n%s\n\n", strings.ToUpper(l.Summary), r.Summary)

	if len(r.MainThemes) > 0 {
		fmt.Fprintf(&sb, "%s:\n%s\n\n", strings.ToUpper(l.Themes), strings.Join(r.MainThemes, ", "))
	}

	fmt.Fprintf(&sb, "%s:\n", strings.ToUpper(l.Insights))
	for i, p := range r.KeyPoints {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, p)
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "%s:\n", strings.ToUpper(l.Tasks))
	for _, item := range r.ActionItems {
		fmt.Fprintf(&sb, "[ ] %s\n", item)
	}

	fmt.Fprintf(&sb, "\n%s: %s\n", strings.ToUpper(l.Sentiment), r.Sentiment)
	return sb.String()
}
