package workspace

import (
	"context"
	"path/filepath"

	"github.com/firefly-engineering/devtriage/internal/system"
)

// JJBackend implements Backend for jj (Jujutsu) repositories
type JJBackend struct {
	fs   system.FileSystem
	exec system.CommandExecutor
}

// JJ returns a new jj backend
func JJ(fsys system.FileSystem, exec system.CommandExecutor) Backend {
	return &JJBackend{fs: fsys, exec: exec}
}

func (b *JJBackend) Name() string {
	return "jj"
}

func (b *JJBackend) IsRepo(path string) bool {
	return b.fs.IsDir(filepath.Join(path, ".jj", "repo"))
}

// ChangedFiles lists the files touched by the working-copy commit
// relative to its parent.
func (b *JJBackend) ChangedFiles(ctx context.Context, repoPath string) ([]string, error) {
	return query(ctx, b.exec, repoPath, "jj", "diff", "--name-only", "-R", repoPath)
}
