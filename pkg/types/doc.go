// Package types defines the core data model for goexpr.
//
// This package contains type definitions for:
//   - Expression: the immutable expression tree (Literal, Variable, BinaryOp)
//   - Op: the binary operators (OpAdd, OpSub)
//   - Walk: pre-order traversal shared by the evaluator, renderer and compiler
//   - Error types: structured errors with codes and UndefinedVariableError
package types
