package expr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWalk(t *testing.T) {
	r := NewOperand("R", Outgoing)
	s := NewOperand("S", Incoming)
	mul, err := NewMultiply(r, s)
	require.NoError(t, err)
	tr, err := NewTranspose(mul)
	require.NoError(t, err)

	var visited []Node
	var f Visitor
	f = Inspector(func(n Node) bool {
		visited = append(visited, n)
		return true
	})

	Walk(f, tr)

	require.Equal(t, []Node{tr, mul, Node(r), Node(s)}, visited)
}

func TestInspectPrunesSubtree(t *testing.T) {
	r := NewOperand("R", Outgoing)
	s := NewOperand("S", Outgoing)
	mul, err := NewMultiply(r, s)
	require.NoError(t, err)

	var visited []Node
	Inspect(mul, func(n Node) bool {
		visited = append(visited, n)
		return n != Node(r)
	})

	require.Equal(t, []Node{mul, Node(r), Node(s)}, visited)
}
