package ast

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented dump of the tree rooted at n to w. Each
// line names the node's construct followed by its payload, with
// children indented beneath it.
func Fprint(w io.Writer, n Node) error {
	p := &printer{w: w}
	p.print(n, 0)
	return p.err
}

// Sprint returns the Fprint dump of n as a string.
func Sprint(n Node) string {
	var b strings.Builder
	_ = Fprint(&b, n)
	return b.String()
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(depth int, format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (p *printer) print(n Node, depth int) {
	if n == nil {
		p.line(depth, "<nil>")
		return
	}
	if b, ok := n.(*Block); ok && b == nil {
		p.line(depth, "<nil>")
		return
	}
	p.line(depth, "%s", p.describe(n))
	for _, c := range children(n) {
		p.print(c, depth+1)
	}
}

// describe renders one node's own line: its construct name plus any
// payload that is not a child node.
func (p *printer) describe(n Node) string {
	switch x := n.(type) {
	case *FunctionDef:
		names := make([]string, len(x.Params))
		for i, param := range x.Params {
			names[i] = param.Name
		}
		return fmt.Sprintf("FunctionDef %s(%s)", x.Name, strings.Join(names, ", "))
	case *BoolOp:
		return fmt.Sprintf("BoolOp %s", x.Op)
	case *BinOp:
		return fmt.Sprintf("BinOp %s", x.Op)
	case *UnaryOp:
		return fmt.Sprintf("UnaryOp %s", x.Op)
	case *Compare:
		ops := make([]string, len(x.Ops))
		for i, op := range x.Ops {
			ops[i] = op.String()
		}
		return fmt.Sprintf("Compare %s", strings.Join(ops, " "))
	case *Num:
		return fmt.Sprintf("Num %s", x.Raw)
	case *Str:
		return fmt.Sprintf("Str %q", x.Value)
	case *Bytes:
		return fmt.Sprintf("Bytes %q", x.Value)
	case *NameConstant:
		return fmt.Sprintf("NameConstant %s", x.Value)
	case *Ident:
		return fmt.Sprintf("Ident %s", x.Name)
	case *ListComp:
		return fmt.Sprintf("ListComp (%d generators)", len(x.Generators))
	}
	return n.Kind().String()
}
