package workspace

import (
	"context"
	"path/filepath"

	"github.com/firefly-engineering/devtriage/internal/system"
)

// GitBackend implements Backend for git repositories
type GitBackend struct {
	fs   system.FileSystem
	exec system.CommandExecutor
}

// Git returns a new git backend
func Git(fsys system.FileSystem, exec system.CommandExecutor) Backend {
	return &GitBackend{fs: fsys, exec: exec}
}

func (b *GitBackend) Name() string {
	return "git"
}

func (b *GitBackend) IsRepo(path string) bool {
	// .git can be a directory (normal repo) or a file (worktree, submodule)
	return b.fs.Exists(filepath.Join(path, ".git"))
}

// ChangedFiles runs `git diff --name-only HEAD`, which covers staged and
// unstaged edits to tracked files.
func (b *GitBackend) ChangedFiles(ctx context.Context, repoPath string) ([]string, error) {
	return query(ctx, b.exec, repoPath, "git", "-C", repoPath, "diff", "--name-only", "HEAD")
}
