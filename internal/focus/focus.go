package focus

import (
	"context"
	"fmt"
	"strings"

	"github.com/firefly-engineering/devtriage/internal/capture"
	"github.com/firefly-engineering/devtriage/internal/errors"
	"github.com/firefly-engineering/devtriage/internal/logging"
	"github.com/firefly-engineering/devtriage/internal/runner"
	"github.com/firefly-engineering/devtriage/internal/system"
	"github.com/firefly-engineering/devtriage/internal/workspace"
)

// FullSuiteLabel is shown instead of targets when the runner will pick
// its own tests.
const FullSuiteLabel = "<full-suite>"

// Options are the caller's inputs to a focus run.
type Options struct {
	// Choice forces a runner or asks for auto-detection.
	Choice runner.Choice

	// Expression is the runner's name filter (-k, -m, --grep, ...).
	Expression string
}

// Plan is the result of the states before dispatch.
type Plan struct {
	Kind runner.Kind

	// Detection is set when the runner was auto-detected.
	Detection *runner.Detection

	// Changed is what version control reported.
	Changed []string

	Targets []string
	Command runner.FocusCommand
}

// AutoDetected reports whether the runner came from detection.
func (p *Plan) AutoDetected() bool {
	return p.Detection != nil
}

// TargetLabel renders the targets for display, or the full-suite marker
// when there are none.
func (p *Plan) TargetLabel() string {
	targets := p.Targets
	if len(targets) == 0 {
		targets = []string{FullSuiteLabel}
	}
	return "[" + strings.Join(targets, ", ") + "]"
}

// Planner drives the focus state machine for one repository.
type Planner struct {
	FS      system.FileSystem
	Backend workspace.Backend
	Root    string

	// OnState, when set, is called as each state is entered.
	OnState func(State)
}

// NewPlanner returns a Planner for the repository at root.
func NewPlanner(fsys system.FileSystem, backend workspace.Backend, root string) *Planner {
	return &Planner{FS: fsys, Backend: backend, Root: root}
}

// Plan resolves the runner, selects targets and assembles the command.
// It returns an *AbortError when a precondition fails.
func (p *Planner) Plan(ctx context.Context, opts Options) (*Plan, error) {
	p.enter(StateSelectRunner)
	plan := &Plan{}
	if opts.Choice.IsForced() {
		plan.Kind = opts.Choice.Kind()
	} else {
		det := runner.NewDetector(p.FS, p.Root).Explain()
		plan.Kind = det.Kind
		plan.Detection = &det
		fmt.Fprintf(logging.UserOut(), "Auto-detected test runner: %s\n", det.Kind)
	}
	if !plan.Kind.Valid() {
		return nil, p.abort(abort(ReasonNoStrategy, StateSelectRunner, plan.Kind))
	}

	p.enter(StateSelectTargets)
	plan.Changed = workspace.ChangedFiles(ctx, p.Backend, p.Root)
	plan.Targets = runner.NewMapper(p.FS, p.Root).Tests(plan.Kind, plan.Changed)
	logging.Debug("focus targets", "kind", plan.Kind, "changed", len(plan.Changed), "targets", plan.Targets)
	if len(plan.Targets) == 0 && opts.Expression == "" {
		return nil, p.abort(abort(ReasonNoTargets, StateSelectTargets, plan.Kind))
	}

	p.enter(StateAssemble)
	cmd, ok := runner.BuildCommand(plan.Kind, plan.Targets, opts.Expression)
	if !ok {
		return nil, p.abort(abort(ReasonUnsupported, StateAssemble, plan.Kind))
	}
	plan.Command = cmd

	return plan, nil
}

// Dispatch announces the plan and runs its command through cr, storing
// the output in outDir.
func (p *Planner) Dispatch(ctx context.Context, plan *Plan, cr *capture.Runner, outDir string) (*capture.Outcome, error) {
	p.enter(StateDispatch)
	fmt.Fprintf(logging.UserOut(), "Running %s with focus targets: %s\n", plan.Kind, plan.TargetLabel())
	return cr.Run(ctx, capture.Argv(plan.Command.Args...), outDir)
}

// Run plans and, unless the plan aborts, dispatches.
func (p *Planner) Run(ctx context.Context, opts Options, cr *capture.Runner, outDir string) (*Plan, *capture.Outcome, error) {
	plan, err := p.Plan(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	outcome, err := p.Dispatch(ctx, plan, cr, outDir)
	return plan, outcome, err
}

func (p *Planner) enter(s State) {
	logging.Debug("focus state", "state", s)
	if p.OnState != nil {
		p.OnState(s)
	}
}

func (p *Planner) abort(err *AbortError) *AbortError {
	p.enter(StateAbort)
	logging.Debug("focus aborted", "reason", err.Reason, "from", err.From)
	return err
}

// IsAbort reports whether err is an *AbortError and returns it.
func IsAbort(err error) (*AbortError, bool) {
	var ae *AbortError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
