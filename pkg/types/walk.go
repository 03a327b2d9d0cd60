package types

import "fmt"

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Expression) bool

// Walk traverses an expression tree in depth-first, left-to-right pre-order.
func Walk(node Expression, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *Literal, *Variable:
	case *BinaryOp:
		Walk(n.lhs, v)
		Walk(n.rhs, v)
	default:
		panic(fmt.Sprintf("types: unexpected node %T", node))
	}
}

// Variables returns the distinct variable names referenced by node, in the
// order they are first reached by a left-to-right traversal.
func Variables(node Expression) []string {
	var names []string
	seen := make(map[string]struct{})
	Walk(node, func(n Expression) bool {
		if v, ok := n.(*Variable); ok {
			if _, dup := seen[v.name]; !dup {
				seen[v.name] = struct{}{}
				names = append(names, v.name)
			}
		}
		return true
	})
	return names
}

// Depth returns the height of the tree: 1 for a terminal node.
func Depth(node Expression) int {
	switch n := node.(type) {
	case nil:
		return 0
	case *Literal, *Variable:
		return 1
	case *BinaryOp:
		return 1 + max(Depth(n.lhs), Depth(n.rhs))
	default:
		panic(fmt.Sprintf("types: unexpected node %T", node))
	}
}

// Equal reports whether a and b have the same shape and contents.
func Equal(a, b Expression) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case *Literal:
		y, ok := b.(*Literal)
		return ok && x.value == y.value
	case *Variable:
		y, ok := b.(*Variable)
		return ok && x.name == y.name
	case *BinaryOp:
		y, ok := b.(*BinaryOp)
		return ok && x.op == y.op && Equal(x.lhs, y.lhs) && Equal(x.rhs, y.rhs)
	default:
		panic(fmt.Sprintf("types: unexpected node %T", a))
	}
}
