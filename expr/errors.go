package expr

import errors "gopkg.in/src-d/go-errors.v1"

// ErrUnresolvedOperand is returned when the Graph Store has no matrix for
// a requested operand label. Surfaced to the caller; never retried.
var ErrUnresolvedOperand = errors.NewKind("unresolved operand: %s")

// ErrMalformedTree is returned when a structural precondition on the tree
// is violated (wrong child count, identity as an Add operand, a non-
// Operation root passed to Evaluate). Per spec.md §7 this is a Tree
// Builder programmer error; this module returns it rather than aborting
// the process (see DESIGN.md's Open Question resolution).
var ErrMalformedTree = errors.NewKind("malformed expression tree: %s")
