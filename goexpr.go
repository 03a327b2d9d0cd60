// Package goexpr builds, evaluates and renders immutable integer expression
// trees.
//
// An expression is a tree of literals, variable references and binary
// additions or subtractions. Trees are assembled bottom-up, usually with the
// left-leaning Builder, evaluated against a variable context and rendered as
// fully parenthesized infix text. Both traversals are pure: a tree never
// changes after construction and can be shared across goroutines.
//
// # Quick Start
//
//	expr := goexpr.Start(5).Plus(3).PlusVar("x").Build()
//
//	vars := goexpr.NewContext()
//	vars.Bind("x", 3)
//
//	result, err := goexpr.Eval(expr, vars) // 11
//	text := goexpr.Render(expr)            // "((5 + 3) + x)"
//
// # Errors
//
// Variables are resolved lazily. Evaluating a variable that the context does
// not bind fails with *types.UndefinedVariableError; building and rendering
// never fail.
//
// # More Information
//
// For detailed documentation, see:
//   - Types: github.com/sandrolain/goexpr/pkg/types
//   - Builder: github.com/sandrolain/goexpr/pkg/builder
//   - Evaluator: github.com/sandrolain/goexpr/pkg/evaluator
//   - Renderer: github.com/sandrolain/goexpr/pkg/render
//   - WebAssembly backend: github.com/sandrolain/goexpr/pkg/wasm
package goexpr

import (
	"fmt"

	"github.com/sandrolain/goexpr/pkg/builder"
	"github.com/sandrolain/goexpr/pkg/evaluator"
	"github.com/sandrolain/goexpr/pkg/render"
	"github.com/sandrolain/goexpr/pkg/types"
)

// Version returns the current version of goexpr.
func Version() string {
	return "v0.1.0-dev"
}

// Literal creates a literal node.
func Literal(value int64) types.Expression {
	return types.NewLiteral(value)
}

// Var creates a variable reference.
func Var(name string) types.Expression {
	return types.NewVariable(name)
}

// Add creates lhs + rhs.
func Add(lhs, rhs types.Expression) types.Expression {
	return types.NewAdd(lhs, rhs)
}

// Sub creates lhs - rhs.
func Sub(lhs, rhs types.Expression) types.Expression {
	return types.NewSub(lhs, rhs)
}

// Start returns a Builder whose current expression is Literal(value).
func Start(value int64) builder.Builder {
	return builder.Start(value)
}

// NewContext creates an empty variable context.
func NewContext() *evaluator.EvalContext {
	return evaluator.NewContext()
}

// Eval evaluates expr against vars.
//
// Example:
//
//	result, err := goexpr.Eval(expr, vars)
func Eval(expr types.Expression, vars *evaluator.EvalContext, opts ...evaluator.EvalOption) (int64, error) {
	if len(opts) == 0 {
		return evaluator.Evaluate(expr, vars)
	}
	return evaluator.New(opts...).Eval(expr, vars)
}

// MustEval is like Eval but panics if the expression cannot be evaluated.
func MustEval(expr types.Expression, vars *evaluator.EvalContext) int64 {
	result, err := Eval(expr, vars)
	if err != nil {
		panic(fmt.Sprintf("goexpr: Eval(%s): %v", Render(expr), err))
	}
	return result
}

// Render returns the fully parenthesized infix rendering of expr.
func Render(expr types.Expression) string {
	return render.Render(expr)
}
