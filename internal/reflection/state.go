package reflection

import (
	"github.com/google/uuid"

	"github.com/spacesedan/emotion-reflection/internal/models"
)

type Result = models.ClassificationResult

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseError
	PhaseSuccess
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// State is the workflow phase. Only the four types below implement it.
type State interface {
	Phase() Phase
	isState()
}

type Idle struct{}

type Loading struct {
	SubmissionID uuid.UUID
}

// Failed is the Error phase; Message is what the user sees.
type Failed struct {
	Message string
}

type Succeeded struct {
	Result Result
}

func (Idle) Phase() Phase      { return PhaseIdle }
func (Loading) Phase() Phase   { return PhaseLoading }
func (Failed) Phase() Phase    { return PhaseError }
func (Succeeded) Phase() Phase { return PhaseSuccess }

func (Idle) isState()      {}
func (Loading) isState()   {}
func (Failed) isState()    {}
func (Succeeded) isState() {}
