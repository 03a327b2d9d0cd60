package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sandrolain/goexpr/pkg/types"
)

// FprintJSON writes an indented JSON representation of the tree to w:
//
//	{"type": "binary", "op": "+", "lhs": {...}, "rhs": {...}}
func FprintJSON(w io.Writer, expr types.Expression) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(expr))
}

func toJSON(node types.Expression) interface{} {
	switch n := node.(type) {
	case nil:
		return nil
	case *types.Literal:
		return map[string]interface{}{
			"type":  types.NodeLiteral,
			"value": n.Value(),
		}
	case *types.Variable:
		return map[string]interface{}{
			"type": types.NodeVariable,
			"name": n.Name(),
		}
	case *types.BinaryOp:
		return map[string]interface{}{
			"type": types.NodeBinary,
			"op":   n.Op().String(),
			"lhs":  toJSON(n.LHS()),
			"rhs":  toJSON(n.RHS()),
		}
	default:
		panic(fmt.Sprintf("render: unexpected node %T", node))
	}
}
