// Package graphstore defines the Graph Store collaborator the evaluator
// consumes (spec.md §6: "matrix_for(label) → (handle | identity_sentinel |
// not_found)") and provides two reference implementations: an in-memory
// map for tests and small graphs, and a BoltDB-backed durable store.
//
// Neither implementation is required by the evaluator — eval and expr only
// depend on the Store interface — but both exist so the collaborator is
// concretely exercisable end to end rather than only specified.
package graphstore

import (
	"context"

	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/opencypher-go/algebra-eval/matrix"
)

// ErrNotFound is returned by a Store when no matrix is registered for a
// requested label. expr.Fetch turns this into expr.ErrUnresolvedOperand.
var ErrNotFound = errors.NewKind("no matrix for label %q")

// Store is the external collaborator the Operand Fetcher consults. A Store
// implementation must allow concurrent MatrixFor calls to share read-only
// access to the matrices it returns (spec.md §5's "read consistency
// guarantee").
type Store interface {
	// MatrixFor resolves label to a concrete matrix, to matrix.Identity if
	// label names the identity sentinel, or to ErrNotFound if unknown.
	MatrixFor(ctx context.Context, label string) (matrix.Matrix, error)
}
