// Package testutil provides test utilities for command-level tests
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/firefly-engineering/devtriage/internal/app"
	"github.com/firefly-engineering/devtriage/internal/logging"
	"github.com/firefly-engineering/devtriage/internal/system"
)

// FixedTime is the clock used by TestEnv.
var FixedTime = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

// TestEnv holds the test environment: a repository on disk, a mock
// executor standing in for git and the test runners, and captured user
// output.
type TestEnv struct {
	T       *testing.T
	Root    string
	Exec    *system.MockExecutor
	App     *app.App
	Stdout  *bytes.Buffer
	Stderr  *bytes.Buffer
	cleanup func()
}

// NewTestEnv creates a new test environment around an empty git
// repository and installs its App as the default.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0755); err != nil {
		t.Fatalf("Failed to create .git: %v", err)
	}

	mockExec := system.NewMockExecutor()

	testApp := app.New(
		app.WithRoot(root),
		app.WithExecutor(mockExec),
		app.WithClock(func() time.Time { return FixedTime }),
	)

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	logging.SetUserOutput(stdout, stderr)

	// Save original default and set test app
	originalDefault := app.Default
	app.SetDefault(testApp)

	env := &TestEnv{
		T:      t,
		Root:   root,
		Exec:   mockExec,
		App:    testApp,
		Stdout: stdout,
		Stderr: stderr,
		cleanup: func() {
			app.SetDefault(originalDefault)
			logging.SetUserOutput(nil, nil)
		},
	}
	t.Cleanup(env.Cleanup)

	return env
}

// Cleanup restores the original app default and user output
func (e *TestEnv) Cleanup() {
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
}

// WriteFile writes a file relative to the repository root
func (e *TestEnv) WriteFile(rel, content string) string {
	e.T.Helper()

	path := filepath.Join(e.Root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.T.Fatalf("Failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.T.Fatalf("Failed to write %s: %v", rel, err)
	}
	return path
}

// UseRepo copies a repository fixture into the root
func (e *TestEnv) UseRepo(name string) {
	e.T.Helper()
	WriteRepo(e.T, name, e.Root)
}

// SetChanged makes the mocked `git diff --name-only HEAD` report files
func (e *TestEnv) SetChanged(files ...string) {
	out := ""
	if len(files) > 0 {
		out = strings.Join(files, "\n") + "\n"
	}
	e.Exec.AddResponse("git -C "+e.Root+" diff --name-only HEAD", system.MockResponse{Stdout: []byte(out)})
}

// CreateJJRepo marks the root as a jj repository
func (e *TestEnv) CreateJJRepo() {
	e.T.Helper()

	if err := os.MkdirAll(filepath.Join(e.Root, ".jj", "repo"), 0755); err != nil {
		e.T.Fatalf("Failed to create jj repo: %v", err)
	}
}

// ReadFile reads a file relative to the repository root
func (e *TestEnv) ReadFile(rel string) string {
	e.T.Helper()

	data, err := os.ReadFile(filepath.Join(e.Root, filepath.FromSlash(rel)))
	if err != nil {
		e.T.Fatalf("Failed to read %s: %v", rel, err)
	}
	return string(data)
}
