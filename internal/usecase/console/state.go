package console

import "github.com/futig/churn-console/internal/entity"

// Phase is the lifecycle of the console around a submit.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseSuccess    Phase = "success"
	PhaseError      Phase = "error"
)

// State is the whole interactive state of one console session. All
// transitions go through Controller methods so that impossible
// combinations (a stale answer visible while submitting, two modes
// active at once) cannot be constructed.
type State struct {
	Phase     Phase
	Query     string
	Mode      entity.Mode
	Retriever entity.RetrieverKind
	Backend   entity.BackendStatus

	// Answer and ErrorMessage are replaced wholesale on each submit,
	// never merged. At most one of them is meaningful at a time.
	Answer       *entity.Answer
	ErrorMessage string

	// CustomerID optionally scopes single-agent churn analysis.
	CustomerID string
}

// NewState returns the mount-time state: idle, plain-rag with the
// default retriever, backend reachability not yet known.
func NewState() State {
	return State{
		Phase:     PhaseIdle,
		Mode:      entity.ModePlainRAG,
		Retriever: entity.RetrieverParentDocument,
		Backend:   entity.BackendChecking,
	}
}
