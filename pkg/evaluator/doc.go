// Package evaluator implements the goexpr evaluation engine.
//
// The evaluator walks an expression tree post-order, left operand before
// right, resolving variables against an EvalContext. It supports:
//   - Literal, variable and binary (+, -) nodes
//   - Scoped contexts (NewChildContext) and YAML-loaded bindings
//   - Structured debug logging via log/slog
//
// # Example
//
//	ctx := evaluator.NewContext()
//	ctx.Bind("x", 3)
//	result, err := evaluator.Evaluate(expr, ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Concurrency
//
// Expression trees are immutable, so one tree may be evaluated from many
// goroutines at once, each with its own context. Arithmetic wraps around on
// int64 overflow.
package evaluator
