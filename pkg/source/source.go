// Package source turns program text in the supported dialect into
// trees from the fixed grammar, and wraps them as fold subjects.
//
// A Program is a parsed file; each of its top-level defs is also
// available as a Function, a subject scoped to that one definition.
// Functions backed by runnable source implement fold.Invokable, so a
// carrier stacked on one still executes as the original.
package source

import (
	"fmt"
	"os"
	"strings"

	"go.starlark.net/syntax"

	"github.com/starfold-labs/starfold/pkg/ast"
)

// Program is a parsed source file. It is a fold.Subject whose tree is
// the whole module.
type Program struct {
	path  string
	src   []byte
	tree  *ast.Module
	funcs []*Function
}

// Parse parses src into a Program. The filename is used for error
// positions and execution only; src need not exist on disk.
func Parse(filename string, src []byte) (*Program, error) {
	f, err := syntax.Parse(filename, src, 0)
	if err != nil {
		return nil, &ParseError{File: filename, Err: err}
	}
	tree, err := convertFile(f)
	if err != nil {
		return nil, err
	}
	p := &Program{path: filename, src: src, tree: tree}
	for i, stmt := range tree.Body.Stmts {
		def, ok := stmt.(*ast.FunctionDef)
		if !ok {
			continue
		}
		p.funcs = append(p.funcs, &Function{
			prog: p,
			def:  def,
			line: defLine(f.Stmts, i),
		})
	}
	return p, nil
}

// ParseFile reads and parses the file at path.
func ParseFile(path string) (*Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(path, src)
}

// Tree returns the module tree for the whole file.
func (p *Program) Tree() *ast.Module { return p.tree }

// Path returns the filename the program was parsed from.
func (p *Program) Path() string { return p.path }

// Functions returns the top-level defs in source order.
func (p *Program) Functions() []*Function { return p.funcs }

// Function returns the top-level def with the given name.
func (p *Program) Function(name string) (*Function, error) {
	for _, f := range p.funcs {
		if f.def.Name == name {
			return f, nil
		}
	}
	return nil, &FunctionNotFoundError{Name: name, File: p.path}
}

// defLine recovers the source line of the i-th top-level statement.
// The converted tree carries no positions, so the line comes from the
// syntax tree the statement was converted from.
func defLine(stmts []syntax.Stmt, i int) int {
	if i >= len(stmts) {
		return 0
	}
	if def, ok := stmts[i].(*syntax.DefStmt); ok {
		return int(def.Name.NamePos.Line)
	}
	start, _ := stmts[i].Span()
	return int(start.Line)
}

// Function is one top-level def, usable as a fold subject in its own
// right: its tree is a module wrapping just that definition.
type Function struct {
	prog *Program
	def  *ast.FunctionDef
	line int
}

// Tree returns a module containing only this function's definition.
func (f *Function) Tree() *ast.Module {
	return &ast.Module{Body: &ast.Block{Stmts: []ast.Stmt{f.def}}}
}

// Def returns the underlying function definition node.
func (f *Function) Def() *ast.FunctionDef { return f.def }

// Name returns the function's name.
func (f *Function) Name() string { return f.def.Name }

// Line returns the 1-based source line of the definition.
func (f *Function) Line() int { return f.line }

// Params returns the parameter names, with defaults rendered as
// "name=value".
func (f *Function) Params() []string {
	out := make([]string, len(f.def.Params))
	for i, p := range f.def.Params {
		if p.Default != nil {
			out[i] = p.Name + "=" + exprString(p.Default)
			continue
		}
		out[i] = p.Name
	}
	return out
}

// Signature returns a human-readable signature, such as "f(x, y=1)".
func (f *Function) Signature() string {
	return f.def.Name + "(" + strings.Join(f.Params(), ", ") + ")"
}

// Docstring returns the function's docstring, or "" when it has none.
func (f *Function) Docstring() string {
	if len(f.def.Body.Stmts) == 0 {
		return ""
	}
	expr, ok := f.def.Body.Stmts[0].(*ast.ExprStmt)
	if !ok {
		return ""
	}
	str, ok := expr.Value.(*ast.Str)
	if !ok {
		return ""
	}
	return strings.TrimSpace(str.Value)
}

// exprString renders an expression compactly for signatures.
func exprString(e ast.Expr) string {
	switch x := e.(type) {
	case *ast.Num:
		return x.Raw
	case *ast.Str:
		return fmt.Sprintf("%q", x.Value)
	case *ast.NameConstant:
		return x.Value.String()
	case *ast.Ident:
		return x.Name
	case *ast.List:
		return "[]"
	case *ast.Tuple:
		return "()"
	case *ast.UnaryOp:
		if x.Op == ast.USub {
			return "-" + exprString(x.Operand)
		}
		return "..."
	default:
		return "..."
	}
}
