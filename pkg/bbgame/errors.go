package bbgame

import "fmt"

// IllegalActionError reports an action that fails a rules-engine
// precondition. The caller must not apply it; state is never mutated when
// this is returned.
type IllegalActionError struct {
	Reason string
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("illegal action: %s", e.Reason)
}

// InvariantViolation reports a broken post-condition from the data model's
// invariants (§3). Per §7 this is always an engine bug, never a data bug,
// and the process must abort — Violate below panics rather than returning an
// error so that it cannot be silently swallowed by a caller that only checks
// for IllegalActionError.
type InvariantViolation struct {
	Reason string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Reason)
}

// Violate panics with an InvariantViolation. Only the CLI boundary
// (cmd/simulate) recovers from this, logs it, and exits non-zero.
func Violate(reason string) {
	panic(&InvariantViolation{Reason: reason})
}

// LoadError reports a malformed or shape-mismatched value-function or prior
// policy file. Returned to the caller; policy-builder code falls back to a
// uniform/constant baseline when one of these is encountered (§7).
type LoadError struct {
	Path   string
	Reason string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load error for %s: %s", e.Path, e.Reason)
}
