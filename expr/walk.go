package expr

// Visitor visits nodes of an expression tree pre-order. Visit returns the
// Visitor to use for the node's children, or nil to stop descending —
// mirroring the teacher's sql.Walk/sql.Visitor contract (sql/expression/
// walk_test.go's TestWalk/TestInspect pin this exact shape).
type Visitor interface {
	Visit(node Node) Visitor
}

// Walk traverses n pre-order, calling v.Visit on every node reached. If
// Visit returns nil for a node, that node's children are not visited.
func Walk(v Visitor, n Node) {
	if n == nil {
		return
	}
	v = v.Visit(n)
	if v == nil {
		return
	}
	for i := 0; i < n.ChildCount(); i++ {
		Walk(v, n.ChildAt(i))
	}
}

// Inspector adapts a plain func(Node) bool into a Visitor: returning false
// prunes the subtree rooted at the node passed to it.
type Inspector func(Node) bool

// Visit implements Visitor.
func (f Inspector) Visit(n Node) Visitor {
	if f(n) {
		return f
	}
	return nil
}

// Inspect traverses n pre-order, calling f on every node until f returns
// false for a node (which prunes its subtree, not the whole walk).
func Inspect(n Node, f func(Node) bool) {
	Walk(Inspector(f), n)
}
