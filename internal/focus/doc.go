// Package focus narrows a test run to the tests touched by the current
// change.
//
// An invocation is one pass through a small state machine:
//
//	SelectRunner -> SelectTargets -> Assemble -> Dispatch
//	      \               \              \
//	       +---------------+--------------+--> Abort
//
// The runner is forced or auto-detected, changed files come from the
// version-control backend, and the mapped targets are assembled into a
// runner invocation that is handed to the capture runner. Abort is a
// normal outcome carrying a one-line message for the user; it is returned
// as an *AbortError.
package focus
