// Package workspace queries version control for the files changed in a
// working copy.
package workspace

import (
	"context"
	"fmt"
	"strings"

	"github.com/firefly-engineering/devtriage/internal/logging"
	"github.com/firefly-engineering/devtriage/internal/system"
)

// Backend answers version-control questions about a working copy.
type Backend interface {
	// Name returns the backend name ("git" or "jj")
	Name() string

	// IsRepo checks if path is a valid repository for this backend
	IsRepo(path string) bool

	// ChangedFiles lists paths changed relative to the last commit,
	// as reported by the VCS (repository-relative).
	ChangedFiles(ctx context.Context, repoPath string) ([]string, error)
}

// Mode selects how the backend is chosen.
type Mode string

const (
	ModeAuto Mode = "auto"
	ModeGit  Mode = "git"
	ModeJJ   Mode = "jj"
)

// Valid reports whether m is a known mode. The empty mode means auto.
func (m Mode) Valid() bool {
	switch m {
	case "", ModeAuto, ModeGit, ModeJJ:
		return true
	}
	return false
}

// DetectBackend returns the appropriate backend for the given path,
// or nil if no backend recognizes it as a repository.
// Checks jj first (since jj repos also contain .git).
func DetectBackend(fsys system.FileSystem, exec system.CommandExecutor, path string) Backend {
	jj := JJ(fsys, exec)
	if jj.IsRepo(path) {
		return jj
	}
	git := Git(fsys, exec)
	if git.IsRepo(path) {
		return git
	}
	return nil
}

// Resolve picks the backend for mode. Auto mode falls back to git when no
// repository marker is found, so a plain `git diff` is still attempted
// from subdirectories of a checkout.
func Resolve(mode Mode, fsys system.FileSystem, exec system.CommandExecutor, path string) (Backend, error) {
	switch mode {
	case ModeGit:
		return Git(fsys, exec), nil
	case ModeJJ:
		return JJ(fsys, exec), nil
	case "", ModeAuto:
		if b := DetectBackend(fsys, exec, path); b != nil {
			return b, nil
		}
		return Git(fsys, exec), nil
	default:
		return nil, fmt.Errorf("unknown vcs %q (must be auto, git, or jj)", mode)
	}
}

// ChangedFiles asks b for changed files and absorbs every failure: a path
// that is not a repository, a missing VCS binary, or a failing query all
// yield no files.
func ChangedFiles(ctx context.Context, b Backend, repoPath string) []string {
	if b == nil {
		return nil
	}
	files, err := b.ChangedFiles(ctx, repoPath)
	if err != nil {
		logging.Debug("changed-file query failed, treating as no changes", "backend", b.Name(), "path", repoPath, "error", err)
		return nil
	}
	logging.Debug("changed files", "backend", b.Name(), "count", len(files))
	return files
}

// query runs a VCS command in dir and splits its stdout into trimmed,
// non-empty lines. A non-zero exit status is an error.
func query(ctx context.Context, exec system.CommandExecutor, dir, name string, args ...string) ([]string, error) {
	result, err := exec.Run(ctx, system.Command{Name: name, Args: args, Dir: dir})
	if err != nil {
		return nil, err
	}
	if result.ExitCode != 0 {
		return nil, fmt.Errorf("%s exited with status %d: %s", name, result.ExitCode, strings.TrimSpace(string(result.Stderr)))
	}
	return splitLines(string(result.Stdout)), nil
}

func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
