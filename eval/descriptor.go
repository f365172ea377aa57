package eval

import (
	"github.com/opencypher-go/algebra-eval/expr"
	"github.com/opencypher-go/algebra-eval/matrix"
)

func isTranspose(n expr.Node) bool {
	return n.Kind() == expr.OperationKind && n.Operator() == expr.Transpose
}

// planBinary builds the descriptor for the first two operands of a binary
// (or k-ary) operation, absorbing a Transpose child into the
// corresponding descriptor slot instead of materializing Aᵀ/Bᵀ
// (spec.md §4.4, rules 1–3).
func planBinary(left, right expr.Node) (effLeft, effRight expr.Node, d matrix.Descriptor) {
	effLeft, effRight = left, right
	if isTranspose(left) {
		d.Input0 = matrix.Transposed
		effLeft = left.ChildAt(0)
	}
	if isTranspose(right) {
		d.Input1 = matrix.Transposed
		effRight = right.ChildAt(0)
	}
	return effLeft, effRight, d
}

// planNext resets d to (Default, Default) and re-derives Input1 for the
// i-th operand (i > 1) of a k-ary fold: the left slot stays Default
// because the running accumulator is always res from this point on
// (spec.md §4.4's k-ary rule).
func planNext(d *matrix.Descriptor, next expr.Node) expr.Node {
	d.Reset()
	if isTranspose(next) {
		d.Input1 = matrix.Transposed
		return next.ChildAt(0)
	}
	return next
}
