package focus

import (
	"fmt"

	"github.com/firefly-engineering/devtriage/internal/runner"
)

// State is a step of the focus state machine.
type State int

const (
	StateSelectRunner State = iota
	StateSelectTargets
	StateAssemble
	StateDispatch
	StateAbort
)

func (s State) String() string {
	switch s {
	case StateSelectRunner:
		return "SELECT_RUNNER"
	case StateSelectTargets:
		return "SELECT_TARGETS"
	case StateAssemble:
		return "ASSEMBLE"
	case StateDispatch:
		return "DISPATCH"
	case StateAbort:
		return "ABORT"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// AbortReason identifies which precondition stopped the run.
type AbortReason string

const (
	ReasonNoStrategy  AbortReason = "no-strategy"
	ReasonNoTargets   AbortReason = "no-targets"
	ReasonUnsupported AbortReason = "unsupported-runner"
)

// AbortError ends a focus run without dispatching anything.
type AbortError struct {
	Reason AbortReason

	// From is the state that aborted.
	From State

	// Kind is the resolved runner, when one was resolved.
	Kind runner.Kind
}

func (e *AbortError) Error() string {
	switch e.Reason {
	case ReasonNoStrategy:
		return "No focus strategy selected. Use --runner/--pytest or enable --auto."
	case ReasonNoTargets:
		return "No changed tests detected. Run full suite or pass -k/--runner."
	case ReasonUnsupported:
		return fmt.Sprintf("No focus strategy implemented for runner '%s'.", e.Kind)
	default:
		return fmt.Sprintf("focus aborted in %s", e.From)
	}
}

func abort(reason AbortReason, from State, k runner.Kind) *AbortError {
	return &AbortError{Reason: reason, From: from, Kind: k}
}
