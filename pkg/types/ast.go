package types

import "fmt"

// NodeType identifies the type of an AST node.
type NodeType string

// AST node types.
const (
	NodeLiteral  NodeType = "literal"  // integer constant
	NodeVariable NodeType = "variable" // named reference resolved at evaluation time
	NodeBinary   NodeType = "binary"   // +, -
)

// Op identifies the operator of a binary node.
type Op uint8

// Binary operators.
const (
	OpAdd Op = iota + 1
	OpSub
)

// String returns the infix symbol of the operator.
func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	default:
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
}

// Valid reports whether o is one of the known operators.
func (o Op) Valid() bool {
	return o == OpAdd || o == OpSub
}

// Expression is a node of an immutable arithmetic expression tree.
//
// The set of implementations is closed: *Literal, *Variable and *BinaryOp.
// Consumers switch on the concrete type; an unknown type is a programming
// error. Nodes expose their contents through accessors only, so a tree
// never changes once constructed and may be read from any number of
// goroutines without coordination.
type Expression interface {
	// Type returns the node tag.
	Type() NodeType

	expressionNode()
}

// Literal is a terminal node holding an integer constant.
type Literal struct {
	value int64
}

// Variable is a terminal node naming a binding in the evaluation context.
// The name is not checked until the node is evaluated.
type Variable struct {
	name string
}

// BinaryOp is a non-terminal node combining two exclusively owned operands.
type BinaryOp struct {
	op  Op
	lhs Expression
	rhs Expression
}

// NewLiteral creates a literal node. Every int64 is accepted.
func NewLiteral(value int64) *Literal {
	return &Literal{value: value}
}

// NewVariable creates a variable reference. Every name, including the
// empty string, is accepted.
func NewVariable(name string) *Variable {
	return &Variable{name: name}
}

// NewBinary creates a binary node. It panics if op is unknown or an operand
// is nil.
func NewBinary(op Op, lhs, rhs Expression) *BinaryOp {
	if !op.Valid() {
		panic(fmt.Sprintf("types: NewBinary: invalid operator %v", op))
	}
	if lhs == nil || rhs == nil {
		panic("types: NewBinary: nil operand")
	}
	return &BinaryOp{op: op, lhs: lhs, rhs: rhs}
}

// NewAdd creates lhs + rhs.
func NewAdd(lhs, rhs Expression) *BinaryOp {
	return NewBinary(OpAdd, lhs, rhs)
}

// NewSub creates lhs - rhs.
func NewSub(lhs, rhs Expression) *BinaryOp {
	return NewBinary(OpSub, lhs, rhs)
}

// Value returns the literal's integer.
func (n *Literal) Value() int64 { return n.value }

// Name returns the referenced variable name.
func (n *Variable) Name() string { return n.name }

// Op returns the operator.
func (n *BinaryOp) Op() Op { return n.op }

// LHS returns the left operand.
func (n *BinaryOp) LHS() Expression { return n.lhs }

// RHS returns the right operand.
func (n *BinaryOp) RHS() Expression { return n.rhs }

func (*Literal) Type() NodeType  { return NodeLiteral }
func (*Variable) Type() NodeType { return NodeVariable }
func (*BinaryOp) Type() NodeType { return NodeBinary }

func (*Literal) expressionNode()  {}
func (*Variable) expressionNode() {}
func (*BinaryOp) expressionNode() {}

// String returns a short description of the node, not its rendering.
func (n *Literal) String() string  { return fmt.Sprintf("%s(%d)", NodeLiteral, n.value) }
func (n *Variable) String() string { return fmt.Sprintf("%s(%s)", NodeVariable, n.name) }
func (n *BinaryOp) String() string { return fmt.Sprintf("%s(%s)", NodeBinary, n.op) }
