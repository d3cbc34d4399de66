package capture

import (
	"context"

	"github.com/johnquangdev/voxly/internal/domain/entities"
)

// Source produces a single pipeline input
type Source interface {
	Capture(ctx context.Context) (entities.InputPayload, error)
}

// Mode is an input acquisition mode
type Mode string

const (
	ModeVoice Mode = "voice"
	ModeFile  Mode = "file"
	ModeText  Mode = "text"
)
