// Command example demonstrates building an algebraic expression tree by
// hand and evaluating it against an in-memory Graph Store, analogous to
// the teacher's own runnable server walkthrough.
//
// Build: (A * B) + transpose(C), where A, B, C are small adjacency
// matrices for a 3-node graph.
package main

import (
	"context"
	"fmt"

	"github.com/opencypher-go/algebra-eval/eval"
	"github.com/opencypher-go/algebra-eval/expr"
	"github.com/opencypher-go/algebra-eval/graphstore"
	"github.com/opencypher-go/algebra-eval/matrix"
)

func main() {
	backend := matrix.NewBitBackend()
	store := graphstore.NewMemStore()

	a, _ := backend.New(3, 3)
	am := a.(*matrix.BitMatrix)
	am.SetBit(0, 1)
	am.SetBit(1, 2)
	store.Put("A", a)

	b, _ := backend.New(3, 3)
	bm := b.(*matrix.BitMatrix)
	bm.SetBit(1, 2)
	bm.SetBit(2, 0)
	store.Put("B", b)

	c, _ := backend.New(3, 3)
	cm := c.(*matrix.BitMatrix)
	cm.SetBit(0, 2)
	store.Put("C", c)

	ab, err := expr.NewMultiply(expr.NewOperand("A", expr.Outgoing), expr.NewOperand("B", expr.Outgoing))
	if err != nil {
		panic(err)
	}
	trC, err := expr.NewTranspose(expr.NewOperand("C", expr.Outgoing))
	if err != nil {
		panic(err)
	}
	root, err := expr.NewAdd(ab, trC)
	if err != nil {
		panic(err)
	}

	res, err := backend.New(3, 3)
	if err != nil {
		panic(err)
	}

	evaluator := eval.New(backend, store)
	if err := evaluator.Evaluate(context.Background(), root, res); err != nil {
		panic(err)
	}

	bit := res.(*matrix.BitMatrix)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if bit.Contains(i, j) {
				fmt.Printf("(%d,%d)\n", i, j)
			}
		}
	}
}
