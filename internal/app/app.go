// Package app provides the application context for devtriage.
// It allows dependency injection for testing.
package app

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/firefly-engineering/devtriage/internal/audit"
	"github.com/firefly-engineering/devtriage/internal/capture"
	"github.com/firefly-engineering/devtriage/internal/config"
	"github.com/firefly-engineering/devtriage/internal/focus"
	"github.com/firefly-engineering/devtriage/internal/health"
	"github.com/firefly-engineering/devtriage/internal/logging"
	"github.com/firefly-engineering/devtriage/internal/system"
	"github.com/firefly-engineering/devtriage/internal/workspace"
)

// App holds the application dependencies
type App struct {
	// FS and Executor are the OS collaborators
	FS       system.FileSystem
	Executor system.CommandExecutor

	// Root is the repository root every lookup is relative to
	Root string

	// Config is the loaded project configuration
	Config *config.Config

	// Backend overrides version-control detection when set
	Backend workspace.Backend

	// Now is the clock used for default output directories
	Now func() time.Time
}

// Option is a function that configures the App
type Option func(*App)

// WithFS sets a custom file system
func WithFS(fsys system.FileSystem) Option {
	return func(a *App) {
		a.FS = fsys
	}
}

// WithExecutor sets a custom command executor
func WithExecutor(exec system.CommandExecutor) Option {
	return func(a *App) {
		a.Executor = exec
	}
}

// WithRoot sets the repository root
func WithRoot(root string) Option {
	return func(a *App) {
		a.Root = root
	}
}

// WithConfig sets a custom configuration
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.Config = cfg
	}
}

// WithBackend pins the version-control backend
func WithBackend(b workspace.Backend) Option {
	return func(a *App) {
		a.Backend = b
	}
}

// WithClock sets the clock
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.Now = now
	}
}

// New creates a new App with the given options.
// Unset dependencies use the real OS and the current directory.
func New(opts ...Option) *App {
	app := &App{}

	for _, opt := range opts {
		opt(app)
	}

	if app.FS == nil {
		app.FS = system.DefaultFS()
	}
	if app.Executor == nil {
		app.Executor = system.DefaultExecutor()
	}
	if app.Config == nil {
		app.Config = config.Default()
	}
	if app.Now == nil {
		app.Now = time.Now
	}
	if app.Root == "" {
		wd, err := os.Getwd()
		if err != nil {
			logging.Debug("failed to get working directory", "error", err)
			wd = "."
		}
		app.Root = wd
	}

	return app
}

// Paths returns the capture locations for the current config and root
func (a *App) Paths() *config.Paths {
	return a.Config.Paths(a.Root)
}

// VCS returns the version-control backend for the repository
func (a *App) VCS() (workspace.Backend, error) {
	if a.Backend != nil {
		return a.Backend, nil
	}
	return workspace.Resolve(workspace.Mode(a.Config.VCS), a.FS, a.Executor, a.Root)
}

// Planner returns a focus planner for the repository
func (a *App) Planner() (*focus.Planner, error) {
	b, err := a.VCS()
	if err != nil {
		return nil, err
	}
	return focus.NewPlanner(a.FS, b, a.Root), nil
}

// CaptureRunner returns a capture runner that executes in the repository
// root and streams output to stdout and stderr.
func (a *App) CaptureRunner(stdout, stderr io.Writer) *capture.Runner {
	r := capture.NewRunner(a.FS, a.Executor, a.Root)
	r.Stdout = stdout
	r.Stderr = stderr
	r.Now = a.Now
	return r
}

// OutDir resolves the output directory for a capture. An empty dir means
// a fresh timestamped directory under the capture base.
func (a *App) OutDir(dir string) (string, error) {
	if dir == "" {
		dir = capture.DefaultOutDir(a.Paths().CaptureBase, a.Now())
	}
	if rel, err := filepath.Rel(a.Root, dir); err == nil && filepath.IsAbs(dir) && filepath.IsLocal(rel) {
		dir = rel
	}
	return capture.ResolveOutDir(a.Root, dir)
}

// Health returns a checker for the tools used in the repository. A forced
// runner in the config is probed instead of the detected one.
func (a *App) Health() (*health.Checker, error) {
	b, err := a.VCS()
	if err != nil {
		return nil, err
	}
	c := &health.Checker{FS: a.FS, Exec: a.Executor, Root: a.Root, Backend: b, History: a.History()}
	if choice := a.Config.RunnerChoice(); choice.IsForced() {
		c.Runner = choice.Kind()
	}
	return c, nil
}

// History returns the history logger, or nil when history is disabled
func (a *App) History() *audit.Logger {
	if !a.Config.HistoryEnabled() {
		return nil
	}
	return audit.NewLogger(a.Paths().HistoryFile)
}

// Record appends event to the history if it is enabled. Failures are
// logged and otherwise ignored.
func (a *App) Record(event audit.Event) {
	h := a.History()
	if h == nil {
		return
	}
	if err := h.Log(event); err != nil {
		logging.Warn("failed to record history", "path", h.Path(), "error", err)
	}
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
