package expr

import "github.com/mitchellh/hashstructure"

// fpNode is an exported mirror of Node, since Operand/Operation keep their
// resolved-matrix state unexported: hashstructure only sees exported
// fields, and the fingerprint is meant to capture tree shape and labels,
// not the (possibly not-yet-fetched) matrix handles.
type fpNode struct {
	Kind     Kind
	Operator Operator
	Label    string
	Dir      Direction
	Identity bool
	Children []fpNode
}

func snapshot(n Node) fpNode {
	if op, ok := n.(*Operand); ok {
		return fpNode{Kind: OperandKind, Label: op.Label, Dir: op.Direction, Identity: op.identity}
	}
	kids := make([]fpNode, n.ChildCount())
	for i := range kids {
		kids[i] = snapshot(n.ChildAt(i))
	}
	return fpNode{Kind: OperationKind, Operator: n.Operator(), Children: kids}
}

// Fingerprint returns a structural hash of the tree's shape (node kinds,
// operators, operand labels), stable across runs. eval logs it once per
// top-level Evaluate call so repeated identical trees are recognizable in
// logs and traces without comparing full String() output.
func Fingerprint(n Node) (uint64, error) {
	return hashstructure.Hash(snapshot(n), nil)
}
