// Package builder provides a fluent way to grow an expression tree from left
// to right.
//
// Every step wraps the tree built so far as the left operand of a new binary
// node, so the result always leans left:
//
//	expr := builder.Start(5).Plus(3).PlusVar("x").Build()
//	render.Render(expr) // "((5 + 3) + x)"
//
// A Builder is a small value. Methods never modify their receiver; they
// return a new Builder, so a tree returned by Build is never affected by
// later calls and a Builder can be branched freely.
package builder

import "github.com/sandrolain/goexpr/pkg/types"

// Builder accumulates an expression. The zero value behaves like Start(0).
type Builder struct {
	expr types.Expression
}

// Start returns a Builder whose current expression is Literal(value).
func Start(value int64) Builder {
	return Builder{expr: types.NewLiteral(value)}
}

// From returns a Builder whose current expression is expr.
// A nil expr is treated like Start(0).
func From(expr types.Expression) Builder {
	return Builder{expr: expr}
}

func (b Builder) current() types.Expression {
	if b.expr == nil {
		return types.NewLiteral(0)
	}
	return b.expr
}

func (b Builder) wrap(op types.Op, operand types.Expression) Builder {
	return Builder{expr: types.NewBinary(op, b.current(), operand)}
}

// Plus appends + Literal(value).
func (b Builder) Plus(value int64) Builder {
	return b.wrap(types.OpAdd, types.NewLiteral(value))
}

// PlusExpr appends + expr. It panics if expr is nil.
func (b Builder) PlusExpr(expr types.Expression) Builder {
	return b.wrap(types.OpAdd, expr)
}

// PlusVar appends + Variable(name).
func (b Builder) PlusVar(name string) Builder {
	return b.wrap(types.OpAdd, types.NewVariable(name))
}

// Minus appends - Literal(value).
func (b Builder) Minus(value int64) Builder {
	return b.wrap(types.OpSub, types.NewLiteral(value))
}

// MinusExpr appends - expr. It panics if expr is nil.
func (b Builder) MinusExpr(expr types.Expression) Builder {
	return b.wrap(types.OpSub, expr)
}

// MinusVar appends - Variable(name).
func (b Builder) MinusVar(name string) Builder {
	return b.wrap(types.OpSub, types.NewVariable(name))
}

// Build returns the accumulated tree.
func (b Builder) Build() types.Expression {
	return b.current()
}
