package eval

import (
	"context"

	"github.com/opencypher-go/algebra-eval/expr"
	"github.com/opencypher-go/algebra-eval/matrix"
)

// scratch tracks the single auxiliary matrix a binary (or k-ary) operation
// activation may need, and whether res itself already holds a recursively
// evaluated subtree (spec.md §4.5). One scratch is created per Multiply or
// Add activation and released when that activation returns.
type scratch struct {
	resInUse bool
	inter    matrix.Matrix
}

// resolveLeft resolves an operation's first operand. An Operand resolves to
// its own matrix directly; an Operation recurses into res, becoming the
// accumulator for every later step of this activation.
func (s *scratch) resolveLeft(ctx context.Context, e *Evaluator, n expr.Node, res matrix.Matrix) (matrix.Matrix, error) {
	if n.Kind() == expr.OperandKind {
		return n.OperandMatrix(), nil
	}
	m, err := e.evalNode(ctx, n, res)
	if err != nil {
		return nil, err
	}
	s.resInUse = true
	return m, nil
}

// resolveRight resolves the operand that will be combined with the running
// accumulator. shapeOf supplies the shape to allocate inter with, the first
// time one is needed. Once resInUse is true (true from the first step
// onward, since res holds the accumulator from then on) every later call
// lazily allocates and reuses a single inter rather than touching res.
func (s *scratch) resolveRight(ctx context.Context, e *Evaluator, n expr.Node, res matrix.Matrix, shapeOf matrix.Matrix) (matrix.Matrix, error) {
	if n.Kind() == expr.OperandKind {
		return n.OperandMatrix(), nil
	}
	if !s.resInUse {
		m, err := e.evalNode(ctx, n, res)
		if err != nil {
			return nil, err
		}
		s.resInUse = true
		return m, nil
	}
	if s.inter == nil {
		m, err := e.backend.New(shapeOf.Rows(), shapeOf.Cols())
		if err != nil {
			return nil, err
		}
		s.inter = m
	}
	return e.evalNode(ctx, n, s.inter)
}

// release frees inter, if one was ever allocated. res is caller-owned and
// is never touched here.
func (s *scratch) release(e *Evaluator) {
	if s.inter != nil {
		_ = e.backend.Free(s.inter)
		s.inter = nil
	}
}
