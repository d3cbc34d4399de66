package entities

import "time"

// ProcessingStep is the pipeline stage
type ProcessingStep string

const (
	StepIdle         ProcessingStep = "idle"
	StepTranscribing ProcessingStep = "transcribing"
	StepAnalyzing    ProcessingStep = "analyzing"
	StepCompleted    ProcessingStep = "completed"
	StepError        ProcessingStep = "error"
)

// IsTerminal reports whether the step ends a run
func (s ProcessingStep) IsTerminal() bool {
	return s == StepCompleted || s == StepError
}

// IsProcessing reports whether a run is in flight
func (s ProcessingStep) IsProcessing() bool {
	return s == StepTranscribing || s == StepAnalyzing
}

// Progress returns the percentage shown for a step
func (s ProcessingStep) Progress() int {
	switch s {
	case StepTranscribing:
		return 35
	case StepAnalyzing:
		return 75
	case StepCompleted:
		return 100
	default:
		return 0
	}
}

// ProcessingStatus is the observable pipeline state
type ProcessingStatus struct {
	Step    ProcessingStep `json:"step"`
	Message string         `json:"message"`
}

// IdleStatus is the state before any run and after a reset
func IdleStatus() ProcessingStatus {
	return ProcessingStatus{Step: StepIdle}
}

// Snapshot is a point-in-time view of a pipeline.
// Result is non-nil exactly when Status.Step is StepCompleted.
type Snapshot struct {
	SessionID string           `json:"session_id,omitempty"`
	Status    ProcessingStatus `json:"status"`
	Progress  int              `json:"progress"`
	Result    *BriefingResult  `json:"result,omitempty"`
	UpdatedAt time.Time        `json:"updated_at"`
}
