package focus

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firefly-engineering/devtriage/internal/capture"
	"github.com/firefly-engineering/devtriage/internal/logging"
	"github.com/firefly-engineering/devtriage/internal/runner"
	"github.com/firefly-engineering/devtriage/internal/system"
	"github.com/firefly-engineering/devtriage/internal/workspace"
)

const diffCmd = "git -C /repo diff --name-only HEAD"

type fixture struct {
	fs      *system.MockFS
	exec    *system.MockExecutor
	planner *Planner
	states  []State
	out     *strings.Builder
}

func newFixture(t *testing.T, changed ...string) *fixture {
	t.Helper()

	out := &strings.Builder{}
	logging.SetUserOutput(out, out)
	t.Cleanup(func() { logging.SetUserOutput(nil, nil) })

	f := &fixture{
		fs:   system.NewMockFS(),
		exec: system.NewMockExecutor(),
		out:  out,
	}
	f.fs.AddDir("/repo/.git")
	f.exec.AddResponse(diffCmd, system.MockResponse{Stdout: []byte(strings.Join(changed, "\n") + "\n")})

	f.planner = NewPlanner(f.fs, workspace.Git(f.fs, f.exec), "/repo")
	f.planner.OnState = func(s State) { f.states = append(f.states, s) }
	return f
}

func TestPlan_PythonModuleToCompanionTest(t *testing.T) {
	f := newFixture(t, "src/foo.py", "README.md")
	f.fs.AddFile("/repo/pytest.ini", []byte("[pytest]\n"), 0644)
	f.fs.AddFile("/repo/tests/test_foo.py", []byte("def test_foo(): pass\n"), 0644)

	plan, err := f.planner.Plan(context.Background(), Options{Choice: runner.AutoDetect()})
	require.NoError(t, err)

	assert.Equal(t, runner.Pytest, plan.Kind)
	assert.True(t, plan.AutoDetected())
	assert.Equal(t, "pytest.ini", plan.Detection.Evidence)
	assert.Equal(t, []string{"src/foo.py", "README.md"}, plan.Changed)
	assert.Equal(t, []string{"tests/test_foo.py"}, plan.Targets)
	assert.Equal(t, []string{"pytest", "-q", "tests/test_foo.py"}, plan.Command.Args)
	assert.Equal(t, "Auto-detected test runner: pytest\n", f.out.String())
	assert.Equal(t, []State{StateSelectRunner, StateSelectTargets, StateAssemble}, f.states)
}

func TestPlan_ForcedRunnerSkipsDetection(t *testing.T) {
	f := newFixture(t, "web/button.test.js")
	f.fs.AddFile("/repo/pytest.ini", []byte("[pytest]\n"), 0644)

	plan, err := f.planner.Plan(context.Background(), Options{Choice: runner.Forced(runner.Jest), Expression: "renders"})
	require.NoError(t, err)

	assert.Equal(t, runner.Jest, plan.Kind)
	assert.False(t, plan.AutoDetected())
	assert.Equal(t, []string{"npx", "jest", "--testNamePattern", "renders", "web/button.test.js"}, plan.Command.Args)
	assert.Empty(t, f.out.String(), "forced runners are not announced")
}

func TestPlan_JestManifestWinsOverMarkers(t *testing.T) {
	f := newFixture(t, "src/app.ts")
	f.fs.AddFile("/repo/package.json", []byte(`{"devDependencies": {"jest": "^29.0.0"}}`), 0644)
	f.fs.AddFile("/repo/pytest.ini", []byte("[pytest]\n"), 0644)
	f.fs.AddFile("/repo/tests/app.test.ts", []byte("test('app', () => {})\n"), 0644)

	plan, err := f.planner.Plan(context.Background(), Options{})
	require.NoError(t, err)

	assert.Equal(t, runner.Jest, plan.Kind)
	assert.Equal(t, []string{"tests/app.test.ts"}, plan.Targets)
}

func TestPlan_NoChangesAborts(t *testing.T) {
	f := newFixture(t)

	plan, err := f.planner.Plan(context.Background(), Options{})
	require.Error(t, err)
	assert.Nil(t, plan)

	ae, ok := IsAbort(err)
	require.True(t, ok)
	assert.Equal(t, ReasonNoTargets, ae.Reason)
	assert.Equal(t, StateSelectTargets, ae.From)
	assert.Equal(t, "No changed tests detected. Run full suite or pass -k/--runner.", ae.Error())
	assert.Equal(t, StateAbort, f.states[len(f.states)-1])
}

func TestPlan_ExpressionRunsWithoutTargets(t *testing.T) {
	f := newFixture(t)

	plan, err := f.planner.Plan(context.Background(), Options{Choice: runner.Forced(runner.Mocha), Expression: "login"})
	require.NoError(t, err)

	assert.Empty(t, plan.Targets)
	assert.Equal(t, []string{"npx", "mocha", "--grep", "login"}, plan.Command.Args)
	assert.Equal(t, "["+FullSuiteLabel+"]", plan.TargetLabel())
}

func TestPlan_VCSFailureMeansNoChanges(t *testing.T) {
	f := newFixture(t)
	f.exec.AddResponse(diffCmd, system.MockResponse{ExitCode: 128, Stderr: []byte("fatal: bad revision 'HEAD'")})

	_, err := f.planner.Plan(context.Background(), Options{Choice: runner.Forced(runner.Pytest)})
	ae, ok := IsAbort(err)
	require.True(t, ok)
	assert.Equal(t, ReasonNoTargets, ae.Reason)
}

func TestPlan_InvalidForcedRunnerAborts(t *testing.T) {
	f := newFixture(t, "tests/test_foo.py")

	_, err := f.planner.Plan(context.Background(), Options{Choice: runner.Forced("ava")})
	ae, ok := IsAbort(err)
	require.True(t, ok)
	assert.Equal(t, ReasonNoStrategy, ae.Reason)
	assert.Equal(t, "No focus strategy selected. Use --runner/--pytest or enable --auto.", ae.Error())
	assert.Empty(t, f.exec.Commands, "version control must not be queried after an abort")
}

func TestAbortError_Unsupported(t *testing.T) {
	err := abort(ReasonUnsupported, StateAssemble, "ava")
	assert.Equal(t, "No focus strategy implemented for runner 'ava'.", err.Error())
}

func TestRun_Dispatches(t *testing.T) {
	f := newFixture(t, "pkg/util_test.py", "pkg/util_test.py", "tests/test_api.py")
	f.exec.AddResponse("pytest", system.MockResponse{Stdout: []byte("2 passed\n")})

	cr := capture.NewRunner(f.fs, f.exec, "/repo")
	cr.Now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	cr.NewID = func() string { return "run-42" }

	plan, outcome, err := f.planner.Run(context.Background(), Options{Choice: runner.Forced(runner.Pytest)}, cr, "/repo/.devtriage/run")
	require.NoError(t, err)

	assert.Equal(t, []string{"pkg/util_test.py", "tests/test_api.py"}, plan.Targets)
	assert.Equal(t, 0, outcome.ExitCode)
	assert.Equal(t, "run-42", outcome.RunID)

	last, ok := f.exec.LastCommand()
	require.True(t, ok)
	assert.Equal(t, "pytest", last.Name)
	assert.Equal(t, []string{"-q", "pkg/util_test.py", "tests/test_api.py"}, last.Args)

	assert.Contains(t, f.out.String(), "Running pytest with focus targets: [pkg/util_test.py, tests/test_api.py]\n")
	assert.Contains(t, f.out.String(), "Done. exit=0. Saved to /repo/.devtriage/run\n")
	assert.Equal(t, StateDispatch, f.states[len(f.states)-1])

	_, ok = f.fs.GetFile("/repo/.devtriage/run/stdout.txt")
	assert.True(t, ok)
}

func TestRun_AbortDoesNotDispatch(t *testing.T) {
	f := newFixture(t, "docs/index.md")
	cr := capture.NewRunner(f.fs, f.exec, "/repo")

	_, outcome, err := f.planner.Run(context.Background(), Options{Choice: runner.Forced(runner.Nose)}, cr, "/out")
	require.Error(t, err)
	assert.Nil(t, outcome)
	assert.Len(t, f.exec.Commands, 1, "only the version-control query runs")
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "SELECT_RUNNER", StateSelectRunner.String())
	assert.Equal(t, "ABORT", StateAbort.String())
	assert.Equal(t, "State(9)", State(9).String())
}
