package expr

import (
	"context"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/opentracing/opentracing-go"

	"github.com/opencypher-go/algebra-eval/graphstore"
)

// Fetch is the Operand Fetcher (spec.md §4.3). It is called exactly once
// per top-level evaluation, before recursion begins, and is idempotent on
// a tree it has already fetched (each *Operand tracks its own fetched
// flag, per spec.md §9's "one-shot flag ... on each operand" option).
//
// The walk order is unspecified, so every unresolved label encountered in
// one pass is collected (rather than failing on the first miss) and
// returned together as a single error wrapping all of them — a caller
// fixing a pattern's operand references gets every broken one in one
// round trip.
func Fetch(ctx context.Context, root Node, store graphstore.Store) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "expr.Fetch")
	defer span.Finish()

	var result *multierror.Error
	Inspect(root, func(n Node) bool {
		op, ok := n.(*Operand)
		if !ok || op.fetched {
			return true
		}
		m, err := store.MatrixFor(ctx, op.Label)
		if err != nil {
			result = multierror.Append(result, ErrUnresolvedOperand.New(op.Label))
			return true
		}
		op.m = m
		op.fetched = true
		return true
	})
	return result.ErrorOrNil()
}
