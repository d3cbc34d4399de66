package capture

import (
	"context"

	"github.com/johnquangdev/voxly/internal/domain/entities"
)

// TextSource submits typed text verbatim
type TextSource struct {
	Text string
}

// Capture returns a text payload, or an InputError when only whitespace was entered
func (s TextSource) Capture(context.Context) (entities.InputPayload, error) {
	return entities.NewTextInput(s.Text)
}
