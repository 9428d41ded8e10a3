package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/firefly-engineering/devtriage/internal/app"
	"github.com/firefly-engineering/devtriage/internal/audit"
	"github.com/firefly-engineering/devtriage/internal/errors"
	"github.com/firefly-engineering/devtriage/internal/focus"
	"github.com/firefly-engineering/devtriage/internal/logging"
	"github.com/firefly-engineering/devtriage/internal/runner"
	"github.com/firefly-engineering/devtriage/internal/tui"
)

var (
	focusRunner string
	focusPytest bool
	focusAuto   bool
	focusExpr   string
	focusOut    string
	focusPick   bool
	focusDryRun bool
)

// Seams for tests
var (
	isTerminal = func() bool {
		return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	}
	runPicker = tui.RunPicker
)

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Run tests only for changed files",
	Long: `Runs the test runner on the tests affected by uncommitted changes.

The runner is auto-detected unless --runner or --pytest is given:
  jest/mocha   package.json dependencies or scripts
  pytest       pytest.ini, conftest.py, or tox.ini/setup.cfg/pyproject.toml mentioning pytest
  nose         nose.cfg, setup.cfg or tox.ini mentioning nosetests

Changed files come from git (or jj) and are mapped to test files:
  src/foo.py   -> tests/test_foo.py, tests/foo_test.py
  src/app.ts   -> tests/app.test.ts

With -k and no changed tests, the filtered full suite runs instead.`,
	Example: `  devtriage focus
  devtriage focus --runner jest -k "renders button"
  devtriage focus --dry-run`,
	RunE: runFocus,
}

func init() {
	focusCmd.Flags().StringVar(&focusRunner, "runner", "", fmt.Sprintf("Force a test runner (%s)", runnerNames()))
	focusCmd.Flags().BoolVar(&focusPytest, "pytest", false, "Shortcut for --runner pytest (deprecated)")
	focusCmd.Flags().BoolVar(&focusAuto, "auto", false, "Auto-detect the runner (default when no --runner/--pytest)")
	focusCmd.Flags().StringVarP(&focusExpr, "expression", "k", "", "Name filter (-k, -m, --testNamePattern or --grep depending on runner)")
	focusCmd.Flags().StringVar(&focusOut, "out", "", "Output directory (default: <out_dir>/<UTC timestamp>)")
	focusCmd.Flags().BoolVar(&focusPick, "pick", false, "Choose the runner interactively")
	focusCmd.Flags().BoolVar(&focusDryRun, "dry-run", false, "Print the focused command without running it")
	_ = focusCmd.Flags().MarkDeprecated("pytest", "use --runner pytest")
	rootCmd.AddCommand(focusCmd)
}

func runFocus(cmd *cobra.Command, args []string) error {
	a := app.Default
	ctx := cmd.Context()

	choice, ok, err := focusChoice(a)
	if err != nil {
		return err
	}
	if !ok {
		logInfo("Cancelled")
		return nil
	}
	logging.Debug("focus runner choice", "choice", choice)

	planner, err := a.Planner()
	if err != nil {
		return errors.ConfigError("cannot query version control", err)
	}

	plan, err := planner.Plan(ctx, focus.Options{Choice: choice, Expression: focusExpr})
	if ae, isAbort := focus.IsAbort(err); isAbort {
		logWarning("%s", ae.Error())
		a.Record(audit.Event{Type: audit.EventAbort, Runner: string(ae.Kind), Details: string(ae.Reason)})
		return nil
	}
	if err != nil {
		return err
	}

	if focusDryRun {
		printf("Would run %s with focus targets: %s\n", plan.Kind, plan.TargetLabel())
		printf("%s\n", plan.Command.String())
		return nil
	}

	outDir, err := a.OutDir(focusOut)
	if err != nil {
		return err
	}

	outcome, err := planner.Dispatch(ctx, plan, a.CaptureRunner(logging.UserOut(), logging.UserErr()), outDir)
	if err != nil {
		a.Record(audit.Event{Type: audit.EventError, Runner: string(plan.Kind), Command: plan.Command.String(), Details: err.Error()})
		return err
	}

	a.Record(audit.Event{
		Type:     audit.EventFocus,
		RunID:    outcome.RunID,
		Runner:   string(plan.Kind),
		Command:  plan.Command.String(),
		ExitCode: audit.IntPtr(outcome.ExitCode),
		Dir:      outcome.Dir,
	})

	if outcome.ExitCode != 0 {
		return errors.CommandExit(outcome.ExitCode)
	}
	return nil
}

// focusChoice turns the runner flags into a runner choice. --auto wins
// over an explicit runner; without flags the config decides. ok is false
// when the user cancelled the picker.
func focusChoice(a *app.App) (choice runner.Choice, ok bool, err error) {
	name := focusRunner
	if focusPytest {
		name = string(runner.Pytest)
	}

	switch {
	case focusPick:
		return pickRunner(a)
	case focusAuto:
		return runner.AutoDetect(), true, nil
	case name != "":
		return runner.Forced(runner.Kind(name)), true, nil
	default:
		return a.Config.RunnerChoice(), true, nil
	}
}

func pickRunner(a *app.App) (runner.Choice, bool, error) {
	if !isTerminal() {
		logWarning("--pick needs a terminal, auto-detecting the runner instead")
		return runner.AutoDetect(), true, nil
	}

	detection := runner.NewDetector(a.FS, a.Root).Explain()
	result, err := runPicker(runner.Kinds(), &detection)
	if err != nil {
		return runner.Choice{}, false, fmt.Errorf("picker error: %w", err)
	}
	logging.Debug("picker result", "action", result.Action, "kind", result.Kind)

	choice, ok := result.Choice()
	return choice, ok, nil
}

func runnerNames() string {
	names := ""
	for i, k := range runner.Kinds() {
		if i > 0 {
			names += ", "
		}
		names += string(k)
	}
	return names
}
