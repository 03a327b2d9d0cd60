// Package wasm compiles expression trees to WebAssembly and runs them with
// wazero.
//
// A compiled Program is a self-contained module exporting one function,
// "eval", that takes one i64 parameter per distinct variable and returns the
// value of the tree. Literals become i64.const, variables local.get and the
// operators i64.add and i64.sub, so results (including wraparound on
// overflow) match the tree-walking evaluator exactly.
//
// # Example
//
//	r := wasm.NewRunner(ctx)
//	defer r.Close(ctx)
//	result, err := r.Eval(ctx, expr, vars)
package wasm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandrolain/goexpr/pkg/types"
)

// ExportName is the name of the function exported by every compiled module.
const ExportName = "eval"

// Program is a compiled expression.
// It is immutable and safe for concurrent use.
type Program struct {
	binary []byte
	params []string
	key    string
}

// Binary returns the encoded module. The caller must not modify it.
func (p *Program) Binary() []byte {
	return p.binary
}

// Params returns the variable names bound to the parameters of the exported
// function, in order.
func (p *Program) Params() []string {
	return p.params
}

// String returns a description of the program.
func (p *Program) String() string {
	return fmt.Sprintf("Program{params=%d, size=%d}", len(p.params), len(p.binary))
}

// Compile translates expr into a WebAssembly module.
func Compile(expr types.Expression) (*Program, error) {
	if expr == nil {
		return nil, types.NewError(types.ErrInvalidExpression, "invalid expression")
	}

	params := types.Variables(expr)
	index := make(map[string]uint64, len(params))
	for i, name := range params {
		index[name] = uint64(i)
	}

	code := emit(nil, expr, index)
	return &Program{
		binary: encodeModule(ExportName, len(params), code),
		params: params,
		key:    programKey(expr),
	}, nil
}

// emit appends the instructions leaving the value of node on the operand
// stack, left operand first.
func emit(code []byte, node types.Expression, index map[string]uint64) []byte {
	switch n := node.(type) {
	case *types.Literal:
		code = append(code, opI64Const)
		return appendSleb128(code, n.Value())
	case *types.Variable:
		code = append(code, opLocalGet)
		return appendUleb128(code, index[n.Name()])
	case *types.BinaryOp:
		code = emit(code, n.LHS(), index)
		code = emit(code, n.RHS(), index)
		switch n.Op() {
		case types.OpAdd:
			return append(code, opI64Add)
		case types.OpSub:
			return append(code, opI64Sub)
		default:
			panic(fmt.Sprintf("wasm: unexpected operator %v", n.Op()))
		}
	default:
		panic(fmt.Sprintf("wasm: unexpected node %T", node))
	}
}

// programKey returns an unambiguous prefix encoding of the tree. Unlike the
// infix rendering, quoted names keep a variable called "(1 + 2)" apart from
// the sum of two literals.
func programKey(expr types.Expression) string {
	var sb strings.Builder
	var write func(types.Expression)
	write = func(node types.Expression) {
		switch n := node.(type) {
		case *types.Literal:
			sb.WriteString(strconv.FormatInt(n.Value(), 10))
		case *types.Variable:
			sb.WriteString(strconv.Quote(n.Name()))
		case *types.BinaryOp:
			sb.WriteByte('(')
			sb.WriteString(n.Op().String())
			sb.WriteByte(' ')
			write(n.LHS())
			sb.WriteByte(' ')
			write(n.RHS())
			sb.WriteByte(')')
		default:
			panic(fmt.Sprintf("wasm: unexpected node %T", node))
		}
	}
	write(expr)
	return sb.String()
}
