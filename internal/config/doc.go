// Package config loads the optional per-repository devtriage settings.
//
// # Configuration Files
//
// Settings are read from the repository root, first match wins:
//
//   - .devtriage.toml
//   - .devtriage.yaml
//   - .devtriage.yml
//
// An explicit path (the --config flag) replaces the lookup; its format is
// taken from the extension. A repository without a config file gets the
// defaults.
//
// # Fields
//
//	runner   = "auto"       # or pytest, nose, jest, mocha
//	out_dir  = ".devtriage" # base directory for captured runs
//	vcs      = "auto"       # or git, jj
//	history  = true         # append run/focus events to history.jsonl
//
// # Validation
//
// Load validates after parsing and reports unknown runner or vcs values
// as configuration errors. Command-line flags override file values.
package config
