package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/johnquangdev/voxly/internal/domain/entities"
)

// DocumentContentType is served with the .doc export
const DocumentContentType = "application/msword"

const bom = "\ufeff"

var documentTemplate = template.Must(template.New("doc").Parse(`<html xmlns:office="urn:schemas-microsoft-com:office:office" xmlns:word="urn:schemas-microsoft-com:office:word" xmlns="http://www.w3.org/TR/REC-html40">
<head><meta charset="utf-8"><title>{{.Labels.Title}}</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6;">
<h1 style="color: #059669; border-bottom: 2px solid #059669; padding-bottom: 10px;">{{.Labels.Title}}</h1>
<p><strong>{{.Labels.Sentiment}}:</strong> {{.Result.Sentiment}}</p>
<h2 style="color: #374151;">{{.Labels.Summary}}</h2>
<div style="background: #f0fdf4; padding: 15px; border-radius: 8px; border: 1px solid #d1fae5;">{{.Result.Summary}}</div>
{{- if .Result.MainThemes}}
<h2 style="color: #374151;">{{.Labels.Themes}}</h2>
<p>{{range $i, $t := .Result.MainThemes}}{{if $i}}, {{end}}#{{$t}}{{end}}</p>
{{- end}}
<h2 style="color: #374151;">{{.Labels.Insights}}</h2>
<ul>{{range .Result.KeyPoints}}<li style="margin-bottom: 8px;">{{.}}</li>{{end}}</ul>
<h2 style="color: #374151;">{{.Labels.Tasks}}</h2>
<ul>{{range .Result.ActionItems}}<li style="margin-bottom: 8px;">[ ] {{.}}</li>{{end}}</ul>
<hr style="margin-top: 30px; border: 0; border-top: 1px solid #eee;">
<p style="color: #9ca3af; font-size: 12px;">{{.Labels.GeneratedBy}}</p>
</body>
</html>
`))

// Document renders the downloadable Word-compatible HTML document, prefixed
// with a UTF-8 byte order mark. All fields are HTML-escaped.
func Document(r *entities.BriefingResult, locale string) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("no briefing to export")
	}
	var buf bytes.Buffer
	buf.WriteString(bom)
	err := documentTemplate.Execute(&buf, struct {
		Labels Labels
		Result *entities.BriefingResult
	}{LabelsFor(locale), r})
	if err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}
	return buf.Bytes(), nil
}

// DocumentFileName is the download name for a document generated at t
func DocumentFileName(t time.Time) string {
	return fmt.Sprintf("Voxly_Briefing_%s.doc", t.Format("2006-01-02"))
}
