// Package eval implements the recursive Algebraic Expression Evaluator
// (spec.md §4.4–§4.6): the Descriptor Planner, the Scratch Manager, and the
// tree walk itself. Its three operator handlers — evalMultiply, evalAdd,
// evalTranspose — follow, function for function, the reference
// _Eval_MulArbitrary/_Eval_AddArbitrary/_Eval_TransposeArbitrary algorithm
// this module generalizes.
package eval

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"

	"github.com/opencypher-go/algebra-eval/expr"
	"github.com/opencypher-go/algebra-eval/graphstore"
	"github.com/opencypher-go/algebra-eval/matrix"
)

// Evaluator walks a fetched expression tree and writes its result into a
// caller-owned destination matrix, against one Backend and one Graph Store.
//
// Conceptually each activation of evalMultiply/evalAdd moves through the
// same four states regardless of operator: resolve the left operand,
// resolve the right operand (possibly allocating scratch), apply the
// Backend primitive into res, then fold any remaining operands — at every
// step querying Backend.NVals(res) after a Multiply step to short-circuit
// the moment the running product goes empty (spec.md §4.6.3).
type Evaluator struct {
	backend  matrix.Backend
	store    graphstore.Store
	log      *logrus.Logger
	tracer   opentracing.Tracer
	maxDepth int
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger overrides the evaluator's diagnostic logger.
func WithLogger(l *logrus.Logger) Option {
	return func(e *Evaluator) { e.log = l }
}

// WithTracer overrides the opentracing.Tracer used to start the root span
// of each Evaluate call. Defaults to opentracing.GlobalTracer().
func WithTracer(t opentracing.Tracer) Option {
	return func(e *Evaluator) { e.tracer = t }
}

// WithMaxDepth bounds the recursion depth Evaluate will walk before
// failing with ErrMalformedTree, guarding against a runaway or
// adversarially deep tree from the Tree Builder. n <= 0 disables the
// guard (the default).
func WithMaxDepth(n int) Option {
	return func(e *Evaluator) { e.maxDepth = n }
}

// New builds an Evaluator over backend and store.
func New(backend matrix.Backend, store graphstore.Store, opts ...Option) *Evaluator {
	e := &Evaluator{
		backend: backend,
		store:   store,
		log:     logrus.StandardLogger(),
		tracer:  opentracing.GlobalTracer(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Evaluate is the top-level entry point (spec.md §4.6): it runs the Operand
// Fetcher once, then recursively evaluates root into res. res must already
// be allocated by the same Backend at the shape the caller expects the
// result in; Evaluate never allocates or replaces it.
func (e *Evaluator) Evaluate(ctx context.Context, root expr.Node, res matrix.Matrix) error {
	if root == nil || root.Kind() != expr.OperationKind {
		return expr.ErrMalformedTree.New("evaluate: root must be a non-nil Operation node")
	}

	span, ctx := opentracing.StartSpanFromContextWithTracer(ctx, e.tracer, "eval.Evaluate")
	defer span.Finish()

	id := uuid.NewV4()
	fp, fpErr := expr.Fingerprint(root)
	fields := logrus.Fields{"evaluation_id": id.String()}
	if fpErr == nil {
		fields["fingerprint"] = fp
	}
	span.SetTag("evaluation_id", id.String())
	e.log.WithFields(fields).Debug("eval: starting evaluation")

	if err := expr.Fetch(ctx, root, e.store); err != nil {
		span.SetTag("error", true)
		e.log.WithFields(fields).WithError(err).Warn("eval: operand fetch failed")
		return err
	}

	if _, err := e.evalNode(ctx, root, res); err != nil {
		span.SetTag("error", true)
		e.log.WithFields(fields).WithError(err).Warn("eval: evaluation failed")
		return err
	}
	e.log.WithFields(fields).Debug("eval: evaluation complete")
	return nil
}

// depthKey is the context key under which evalNode threads the current
// recursion depth, so WithMaxDepth's guard doesn't require a parameter on
// every evalNode/evalMultiply/evalAdd/evalTranspose/scratch.resolve* call.
type depthKey struct{}

// evalNode dispatches on n's kind/operator. An Operand evaluates to its own
// (already-fetched) matrix; an Operation recurses into its handler.
func (e *Evaluator) evalNode(ctx context.Context, n expr.Node, res matrix.Matrix) (matrix.Matrix, error) {
	if e.maxDepth > 0 {
		depth, _ := ctx.Value(depthKey{}).(int)
		depth++
		if depth > e.maxDepth {
			return nil, expr.ErrMalformedTree.New("evaluate: tree depth exceeds configured maximum")
		}
		ctx = context.WithValue(ctx, depthKey{}, depth)
	}
	switch n.Kind() {
	case expr.OperandKind:
		return n.OperandMatrix(), nil
	case expr.OperationKind:
		switch n.Operator() {
		case expr.Multiply:
			return e.evalMultiply(ctx, n, res)
		case expr.Add:
			return e.evalAdd(ctx, n, res)
		case expr.Transpose:
			return e.evalTranspose(ctx, n, res)
		default:
			return nil, expr.ErrMalformedTree.New("unknown operator")
		}
	default:
		return nil, expr.ErrMalformedTree.New("unknown node kind")
	}
}

// evalMultiply implements _Eval_MulArbitrary: non-commutative left-to-right
// matrix product, with identity-operand short-circuiting (ApplyIdentity
// instead of a real MatMul) and early exit the moment the running product
// has no nonzero entries left.
func (e *Evaluator) evalMultiply(ctx context.Context, n expr.Node, res matrix.Matrix) (matrix.Matrix, error) {
	if n.ChildCount() < 2 {
		return nil, expr.ErrMalformedTree.New("multiply requires at least 2 children")
	}
	span, ctx := opentracing.StartSpanFromContextWithTracer(ctx, e.tracer, "eval.evalMultiply")
	span.SetTag("children", n.ChildCount())
	defer span.Finish()

	sc := &scratch{}
	defer sc.release(e)

	effLeft, effRight, desc := planBinary(n.ChildAt(0), n.ChildAt(1))

	A, err := sc.resolveLeft(ctx, e, effLeft, res)
	if err != nil {
		return nil, err
	}
	B, err := sc.resolveRight(ctx, e, effRight, res, A)
	if err != nil {
		return nil, err
	}

	if err := e.applyStep(res, A, B, &desc); err != nil {
		return nil, err
	}
	sc.resInUse = true

	for i := 2; i < n.ChildCount(); i++ {
		next := planNext(&desc, n.ChildAt(i))
		B, err = sc.resolveRight(ctx, e, next, res, res)
		if err != nil {
			return nil, err
		}
		if !matrix.IsIdentity(B) {
			if err := e.backend.MatMul(res, res, B, &desc); err != nil {
				return nil, err
			}
		}
		nv, err := e.backend.NVals(res)
		if err != nil {
			return nil, err
		}
		if nv == 0 {
			break
		}
	}
	return res, nil
}

// applyStep performs the one Backend call a Multiply's first two operands
// reduce to: a plain ApplyIdentity when either side is the identity
// sentinel, otherwise a real MatMul.
func (e *Evaluator) applyStep(res, a, b matrix.Matrix, desc *matrix.Descriptor) error {
	if matrix.IsIdentity(a) && matrix.IsIdentity(b) {
		return expr.ErrMalformedTree.New("multiply: both operands are identity")
	}
	if matrix.IsIdentity(b) {
		return e.backend.ApplyIdentity(res, a, desc)
	}
	if matrix.IsIdentity(a) {
		d := matrix.Descriptor{Input0: desc.Input1}
		return e.backend.ApplyIdentity(res, b, &d)
	}
	return e.backend.MatMul(res, a, b, desc)
}

// evalAdd implements _Eval_AddArbitrary: commutative, associative
// element-wise OR folded left to right over two or more children. Identity
// is never a legal Add operand (rejected at tree-construction time).
func (e *Evaluator) evalAdd(ctx context.Context, n expr.Node, res matrix.Matrix) (matrix.Matrix, error) {
	if n.ChildCount() < 2 {
		return nil, expr.ErrMalformedTree.New("add requires at least 2 children")
	}
	span, ctx := opentracing.StartSpanFromContextWithTracer(ctx, e.tracer, "eval.evalAdd")
	span.SetTag("children", n.ChildCount())
	defer span.Finish()

	sc := &scratch{}
	defer sc.release(e)

	effLeft, effRight, desc := planBinary(n.ChildAt(0), n.ChildAt(1))

	A, err := sc.resolveLeft(ctx, e, effLeft, res)
	if err != nil {
		return nil, err
	}
	B, err := sc.resolveRight(ctx, e, effRight, res, A)
	if err != nil {
		return nil, err
	}
	if err := e.backend.EWiseAdd(res, A, B, &desc); err != nil {
		return nil, err
	}
	sc.resInUse = true

	for i := 2; i < n.ChildCount(); i++ {
		next := planNext(&desc, n.ChildAt(i))
		B, err = sc.resolveRight(ctx, e, next, res, res)
		if err != nil {
			return nil, err
		}
		if err := e.backend.EWiseAdd(res, res, B, &desc); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// evalTranspose implements _Eval_TransposeArbitrary. The resolved Open
// Question (spec.md §9): the child is always evaluated (or copied) into res
// first, then res is transposed in place — well-defined whether Transpose
// sits at the tree root or anywhere descriptor absorption in planBinary
// didn't already consume it.
func (e *Evaluator) evalTranspose(ctx context.Context, n expr.Node, res matrix.Matrix) (matrix.Matrix, error) {
	if n.ChildCount() != 1 {
		return nil, expr.ErrMalformedTree.New("transpose requires exactly 1 child")
	}
	child := n.ChildAt(0)
	if child.Kind() == expr.OperationKind {
		if _, err := e.evalNode(ctx, child, res); err != nil {
			return nil, err
		}
	} else {
		m := child.OperandMatrix()
		if matrix.IsIdentity(m) {
			return nil, expr.ErrMalformedTree.New("transpose: identity is not a legal operand")
		}
		if err := e.backend.ApplyIdentity(res, m, &matrix.Descriptor{}); err != nil {
			return nil, err
		}
	}
	if err := e.backend.TransposeInPlace(res); err != nil {
		return nil, err
	}
	return res, nil
}
