// Package logging provides logging utilities for devtriage.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("detected runner", "kind", kind, "rule", rule)
//	logging.Warn("config ignored", "path", path, "error", err)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Auto-detected test runner: %s", kind)
//	logging.UserSuccess("Done. exit=%d. Saved to %s", code, dir)
//	logging.UserWarning("No changed tests detected.")
//	logging.UserError("Failed to start %s: %v", name, err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// Both can be redirected with SetUserOutput, which the command tests use.
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
