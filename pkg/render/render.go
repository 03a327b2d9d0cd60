// Package render converts expression trees to text.
//
// Render produces fully parenthesized infix notation that mirrors the tree
// exactly: every binary node gets its own pair of parentheses, literals are
// printed in decimal and variable names verbatim. Rendering never consults
// a context and never fails.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sandrolain/goexpr/pkg/types"
)

// Render returns the infix rendering of expr. A nil expr renders as "".
func Render(expr types.Expression) string {
	var sb strings.Builder
	writeNode(&sb, expr)
	return sb.String()
}

// Fprint writes the infix rendering of expr to w.
func Fprint(w io.Writer, expr types.Expression) error {
	bw := bufio.NewWriter(w)
	writeNode(bw, expr)
	return bw.Flush()
}

type textWriter interface {
	io.Writer
	WriteString(s string) (int, error)
	WriteByte(c byte) error
}

func writeNode(w textWriter, node types.Expression) {
	switch n := node.(type) {
	case nil:
	case *types.Literal:
		var buf [20]byte
		w.Write(strconv.AppendInt(buf[:0], n.Value(), 10))
	case *types.Variable:
		w.WriteString(n.Name())
	case *types.BinaryOp:
		w.WriteByte('(')
		writeNode(w, n.LHS())
		w.WriteByte(' ')
		w.WriteString(n.Op().String())
		w.WriteByte(' ')
		writeNode(w, n.RHS())
		w.WriteByte(')')
	default:
		panic(fmt.Sprintf("render: unexpected node %T", node))
	}
}
