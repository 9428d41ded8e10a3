package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firefly-engineering/devtriage/internal/errors"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line      string
		wantArgs  []string
		wantShell string
	}{
		{line: "pytest -q", wantArgs: []string{"pytest", "-q"}},
		{line: `  npx jest --testNamePattern "adds two"  `, wantArgs: []string{"npx", "jest", "--testNamePattern", "adds two"}},
		{line: "pytest -k 'not slow'", wantArgs: []string{"pytest", "-k", "not slow"}},
		{line: "make test | tee out.log", wantShell: "make test | tee out.log"},
		{line: "pytest > out.txt", wantShell: "pytest > out.txt"},
		{line: "cd web && npm test", wantShell: "cd web && npm test"},
		{line: "echo $HOME", wantShell: "echo $HOME"},
		{line: "pytest tests/*.py", wantShell: "pytest tests/*.py"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd, err := ParseCommand(tt.line)
			require.NoError(t, err)

			if tt.wantShell != "" {
				assert.True(t, cmd.IsShell())
				assert.Equal(t, tt.wantShell, cmd.Shell)
				assert.Equal(t, "sh", cmd.Program())
				assert.Equal(t, []string{"-c", tt.wantShell}, cmd.Arguments())
				return
			}
			assert.False(t, cmd.IsShell())
			assert.Equal(t, tt.wantArgs, cmd.Args)
		})
	}
}

func TestParseCommand_Invalid(t *testing.T) {
	for _, line := range []string{"", "   ", `pytest "unterminated`} {
		_, err := ParseCommand(line)
		require.Error(t, err, "line %q", line)
		assert.Equal(t, errors.ExitValidation, errors.GetExitCode(err))
	}
}

func TestCommand_String(t *testing.T) {
	assert.Equal(t, "pytest -q 'tests/test a.py'", Argv("pytest", "-q", "tests/test a.py").String())
	assert.Equal(t, "make test | tee log", Command{Shell: "make test | tee log"}.String())

	cmd := Argv("pytest")
	assert.Equal(t, "pytest", cmd.Program())
	assert.Nil(t, cmd.Arguments())
	assert.Equal(t, "", Command{}.Program())
}
