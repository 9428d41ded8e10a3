package capture

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/acarl005/stripansi"
	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/google/uuid"

	"github.com/firefly-engineering/devtriage/internal/errors"
	"github.com/firefly-engineering/devtriage/internal/logging"
	"github.com/firefly-engineering/devtriage/internal/system"
)

// Files written into every output directory.
const (
	PreMetaFile = "devtriage_meta.json"
	StdoutFile  = "stdout.txt"
	StderrFile  = "stderr.txt"
	MetaFile    = "meta.json"
)

// TimestampLayout is the compact UTC form used for directory names and
// meta timestamps.
const TimestampLayout = "20060102T150405Z"

// tailLines is how much of stderr is kept in meta.json.
const tailLines = 20

// Timestamp formats t in UTC with TimestampLayout.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// DefaultOutDir returns base/<timestamp of now>.
func DefaultOutDir(base string, now time.Time) string {
	return filepath.Join(base, Timestamp(now))
}

// ResolveOutDir anchors a relative output directory under root. The join
// is scoped so ".." and symlinks inside the repository cannot redirect the
// capture elsewhere; a warning names both paths when that happens.
// Absolute directories are used as given.
func ResolveOutDir(root, dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir), nil
	}
	resolved, err := securejoin.SecureJoin(root, dir)
	if err != nil {
		return "", errors.CaptureFailed("resolve output directory", err)
	}
	if requested := filepath.Join(root, dir); resolved != requested {
		logging.UserWarning("Output directory %s resolves outside the repository, writing to %s instead", requested, resolved)
	}
	return resolved, nil
}

// Meta is the record stored in meta.json.
type Meta struct {
	RunID      string `json:"run_id"`
	Command    string `json:"command"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at,omitempty"`
	ExitCode   *int   `json:"exit_code,omitempty"`
	StderrTail string `json:"stderr_tail,omitempty"`
}

// Outcome describes a finished capture.
type Outcome struct {
	RunID    string
	Dir      string
	ExitCode int
	Meta     Meta
}

// Runner executes commands and writes their output to a directory.
type Runner struct {
	FS   system.FileSystem
	Exec system.CommandExecutor

	// Dir is the working directory for the command.
	Dir string

	// Stdout and Stderr receive a live copy of the command's output.
	// Nil means the output is only captured.
	Stdout io.Writer
	Stderr io.Writer

	// Now and NewID are overridable for tests.
	Now   func() time.Time
	NewID func() string
}

// NewRunner returns a Runner that runs commands in dir.
func NewRunner(fsys system.FileSystem, exec system.CommandExecutor, dir string) *Runner {
	return &Runner{
		FS:    fsys,
		Exec:  exec,
		Dir:   dir,
		Now:   time.Now,
		NewID: uuid.NewString,
	}
}

// Run executes cmd and stores its output in outDir, which is created if
// needed. A non-zero exit status is not an error; it is reported in the
// Outcome. Errors are returned when the directory or files cannot be
// written or the command cannot be started.
func (r *Runner) Run(ctx context.Context, cmd Command, outDir string) (*Outcome, error) {
	if err := r.FS.MkdirAll(outDir, 0755); err != nil {
		return nil, errors.CaptureFailed("create output directory", err)
	}

	meta := Meta{
		RunID:     r.newID(),
		Command:   cmd.String(),
		StartedAt: Timestamp(r.now()),
	}
	if err := r.writeJSON(outDir, PreMetaFile, meta, false); err != nil {
		return nil, err
	}

	logging.Debug("capture started", "run_id", meta.RunID, "dir", outDir, "shell", cmd.IsShell())
	fmt.Fprintf(logging.UserOut(), "Running: %s\n", meta.Command)

	result, err := r.Exec.Run(ctx, system.Command{
		Name:   cmd.Program(),
		Args:   cmd.Arguments(),
		Dir:    r.Dir,
		Stdout: r.Stdout,
		Stderr: r.Stderr,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ExitGeneralError, "interrupted", err)
		}
		return nil, errors.CommandNotStarted(cmd.Program(), err)
	}

	code := result.ExitCode
	meta.ExitCode = &code
	meta.FinishedAt = Timestamp(r.now())
	meta.StderrTail = Tail(result.Stderr, tailLines)

	if err := r.write(outDir, StdoutFile, result.Stdout); err != nil {
		return nil, err
	}
	if err := r.write(outDir, StderrFile, result.Stderr); err != nil {
		return nil, err
	}
	if err := r.writeJSON(outDir, MetaFile, meta, true); err != nil {
		return nil, err
	}

	fmt.Fprintf(logging.UserOut(), "Done. exit=%d. Saved to %s\n", code, outDir)
	logging.Debug("capture finished", "run_id", meta.RunID, "exit_code", code)

	return &Outcome{RunID: meta.RunID, Dir: outDir, ExitCode: code, Meta: meta}, nil
}

// Tail returns the last n lines of output with ANSI escape
// sequences removed.
func Tail(output []byte, n int) string {
	text := strings.TrimRight(stripansi.Strip(string(bytes.ReplaceAll(output, []byte("\r\n"), []byte("\n")))), "\n")
	if text == "" || n <= 0 {
		return ""
	}
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

func (r *Runner) write(dir, name string, data []byte) error {
	if err := r.FS.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		return errors.CaptureFailed("write "+name, err)
	}
	return nil
}

func (r *Runner) writeJSON(dir, name string, meta Meta, indent bool) error {
	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(meta, "", "  ")
	} else {
		data, err = json.Marshal(meta)
	}
	if err != nil {
		return errors.CaptureFailed("encode "+name, err)
	}
	return r.write(dir, name, data)
}

func (r *Runner) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func (r *Runner) newID() string {
	if r.NewID == nil {
		return uuid.NewString()
	}
	return r.NewID()
}
