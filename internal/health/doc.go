// Package health checks that the tools devtriage shells out to are usable.
//
// A check probes the version-control binary and the detected test runner
// with a --version invocation:
//
//	StatusOK      - tool started and exited 0
//	StatusFailing - tool started but exited non-zero
//	StatusMissing - tool could not be started (not on PATH)
//	StatusNoRepo  - VCS binary works but the root is not a repository
//
// Combined checks:
//
//	result := checker.Check(ctx)
//	status := result.Summary()
//
// Each probe is bounded by ProbeTimeout.
package health
