// Package errors provides typed errors with exit codes for devtriage.
//
// # Error Types
//
// TriageError is the base error type that wraps an error with an exit code:
//
//	type TriageError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess       = 0 // Success
//	ExitGeneralError  = 1 // General/unknown errors
//	ExitConfigError   = 2 // Project configuration could not be loaded
//	ExitCaptureFailed = 3 // Output directory or capture files could not be written
//	ExitCommandFailed = 4 // The command could not be started
//	ExitValidation    = 5 // Invalid flags or arguments
//
// A command that ran but failed is reported with CommandExit, whose code is
// the child's own exit status.
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
