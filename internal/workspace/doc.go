// Package workspace queries version control for changed files.
//
// # Backend Interface
//
//	type Backend interface {
//	    Name() string                                                     // "jj" or "git"
//	    IsRepo(path string) bool                                          // Check for valid repo
//	    ChangedFiles(ctx context.Context, repoPath string) ([]string, error)
//	}
//
// # Backends
//
//	git -C <repo> diff --name-only HEAD   // GitBackend
//	jj diff --name-only -R <repo>         // JJBackend
//
// DetectBackend checks jj first because colocated jj repositories also
// contain a .git directory. Resolve applies the configured Mode and falls
// back to git in auto mode.
//
// # Soft Failure
//
// The package-level ChangedFiles wraps a backend and turns every error into
// an empty result, so focus selection never fails on a VCS problem.
package workspace
