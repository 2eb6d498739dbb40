package stm

import "github.com/pingcap/errors"

// AbortReason classifies why a transaction aborted. It never changes the
// boolean contract of Read/Write/End (§7: "aborts are silent to the
// operator"); it exists only so logging and metrics can say why.
type AbortReason string

const (
	AbortSpeculativeRead   AbortReason = "speculative_read"
	AbortAdmissionExceeded AbortReason = "admission"
	AbortLockContention    AbortReason = "write_conflict"
	AbortReadValidation    AbortReason = "read_validation"
)

// newCreateError wraps the underlying failure from creating a
// region's initial segment. The handle package maps this to an invalid
// handle; the core package still returns the real error so tests and logs
// can see the cause, matching the stack-trace-carrying wrap tinykv uses
// around allocation and I/O failures.
func newCreateError(cause error) error {
	return errors.Wrap(cause, "stm: failed to create region")
}
