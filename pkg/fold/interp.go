package fold

import "github.com/starfold-labs/starfold/pkg/ast"

// Context is the opaque value threaded through a fold. Its meaning
// belongs entirely to the interpretation; nil is a valid context.
type Context = any

// Interp assigns semantics to the grammar: one optional handler per
// construct, each producing results of type R. A nil field means the
// construct has no handler and folding it fails with a
// MissingHandlerError.
//
// Every handler returns its result together with an outgoing context.
// Handlers that do not thread state return the context they were
// given.
type Interp[R any] struct {
	// Name labels results recorded by Apply. It must be non-empty to
	// apply the interpretation to a subject.
	Name string

	// Statement constructs.

	Module      func(m *ast.Module, body *Body[R], ctx Context) (R, Context, error)
	FunctionDef func(def *ast.FunctionDef, body *Body[R], ctx Context) (R, Context, error)

	// Block receives one view per statement, in order. It is the only
	// place context moves between statements; there is no default and
	// no fallback for it.
	Block func(stmts []*View[R], ctx Context) (R, Context, error)

	// Return's value view is nil for a bare return.
	Return   func(value *View[R], ctx Context) (R, Context, error)
	Assign   func(targets *ExprList[R], value *View[R], ctx Context) (R, Context, error)
	ExprStmt func(value *View[R], ctx Context) (R, Context, error)
	For      func(target, iter *View[R], body, orelse *Body[R], ctx Context) (R, Context, error)
	While    func(cond *View[R], body, orelse *Body[R], ctx Context) (R, Context, error)
	If       func(cond *View[R], body, orelse *Body[R], ctx Context) (R, Context, error)
	Pass     func(ctx Context) (R, Context, error)
	Break    func(ctx Context) (R, Context, error)
	Continue func(ctx Context) (R, Context, error)

	// Boolean operations: And/Or win over the BoolOp family handler.

	BoolOp func(op ast.BoolOpKind, values *ExprList[R], ctx Context) (R, Context, error)
	And    func(values *ExprList[R], ctx Context) (R, Context, error)
	Or     func(values *ExprList[R], ctx Context) (R, Context, error)

	// Binary operations: the operator-specific handler wins over the
	// BinOp family handler.

	BinOp    func(op ast.BinOpKind, left, right *View[R], ctx Context) (R, Context, error)
	Add      func(left, right *View[R], ctx Context) (R, Context, error)
	Sub      func(left, right *View[R], ctx Context) (R, Context, error)
	Mult     func(left, right *View[R], ctx Context) (R, Context, error)
	MatMult  func(left, right *View[R], ctx Context) (R, Context, error)
	Div      func(left, right *View[R], ctx Context) (R, Context, error)
	Mod      func(left, right *View[R], ctx Context) (R, Context, error)
	Pow      func(left, right *View[R], ctx Context) (R, Context, error)
	LShift   func(left, right *View[R], ctx Context) (R, Context, error)
	RShift   func(left, right *View[R], ctx Context) (R, Context, error)
	BitOr    func(left, right *View[R], ctx Context) (R, Context, error)
	BitXor   func(left, right *View[R], ctx Context) (R, Context, error)
	BitAnd   func(left, right *View[R], ctx Context) (R, Context, error)
	FloorDiv func(left, right *View[R], ctx Context) (R, Context, error)

	// Unary operations.

	UnaryOp func(op ast.UnaryOpKind, operand *View[R], ctx Context) (R, Context, error)
	Invert  func(operand *View[R], ctx Context) (R, Context, error)
	Not     func(operand *View[R], ctx Context) (R, Context, error)
	UAdd    func(operand *View[R], ctx Context) (R, Context, error)
	USub    func(operand *View[R], ctx Context) (R, Context, error)

	// Comparisons. The grammar admits a single operator per Compare
	// node, so handlers see one left and one right operand.

	Compare func(op ast.CmpOpKind, left, right *View[R], ctx Context) (R, Context, error)
	Eq      func(left, right *View[R], ctx Context) (R, Context, error)
	NotEq   func(left, right *View[R], ctx Context) (R, Context, error)
	Lt      func(left, right *View[R], ctx Context) (R, Context, error)
	LtE     func(left, right *View[R], ctx Context) (R, Context, error)
	Gt      func(left, right *View[R], ctx Context) (R, Context, error)
	GtE     func(left, right *View[R], ctx Context) (R, Context, error)
	Is      func(left, right *View[R], ctx Context) (R, Context, error)
	IsNot   func(left, right *View[R], ctx Context) (R, Context, error)
	In      func(left, right *View[R], ctx Context) (R, Context, error)
	NotIn   func(left, right *View[R], ctx Context) (R, Context, error)

	// Calls, literals, references, and displays.

	Call         func(fn *View[R], args *ExprList[R], ctx Context) (R, Context, error)
	Num          func(lit *ast.Num, ctx Context) (R, Context, error)
	Str          func(lit *ast.Str, ctx Context) (R, Context, error)
	Bytes        func(lit *ast.Bytes, ctx Context) (R, Context, error)
	NameConstant func(lit *ast.NameConstant, ctx Context) (R, Context, error)
	Ident        func(ref *ast.Ident, ctx Context) (R, Context, error)
	List         func(elts *ExprList[R], ctx Context) (R, Context, error)
	Tuple        func(elts *ExprList[R], ctx Context) (R, Context, error)
	ListComp     func(elt *View[R], generators []CompView[R], ctx Context) (R, Context, error)
}

// binSpecific returns the operator-specific handler for op, or nil.
func (in *Interp[R]) binSpecific(op ast.BinOpKind) func(left, right *View[R], ctx Context) (R, Context, error) {
	switch op {
	case ast.Add:
		return in.Add
	case ast.Sub:
		return in.Sub
	case ast.Mult:
		return in.Mult
	case ast.MatMult:
		return in.MatMult
	case ast.Div:
		return in.Div
	case ast.Mod:
		return in.Mod
	case ast.Pow:
		return in.Pow
	case ast.LShift:
		return in.LShift
	case ast.RShift:
		return in.RShift
	case ast.BitOr:
		return in.BitOr
	case ast.BitXor:
		return in.BitXor
	case ast.BitAnd:
		return in.BitAnd
	case ast.FloorDiv:
		return in.FloorDiv
	}
	return nil
}

func (in *Interp[R]) unarySpecific(op ast.UnaryOpKind) func(operand *View[R], ctx Context) (R, Context, error) {
	switch op {
	case ast.Invert:
		return in.Invert
	case ast.Not:
		return in.Not
	case ast.UAdd:
		return in.UAdd
	case ast.USub:
		return in.USub
	}
	return nil
}

func (in *Interp[R]) cmpSpecific(op ast.CmpOpKind) func(left, right *View[R], ctx Context) (R, Context, error) {
	switch op {
	case ast.Eq:
		return in.Eq
	case ast.NotEq:
		return in.NotEq
	case ast.Lt:
		return in.Lt
	case ast.LtE:
		return in.LtE
	case ast.Gt:
		return in.Gt
	case ast.GtE:
		return in.GtE
	case ast.Is:
		return in.Is
	case ast.IsNot:
		return in.IsNot
	case ast.In:
		return in.In
	case ast.NotIn:
		return in.NotIn
	}
	return nil
}

func (in *Interp[R]) boolSpecific(op ast.BoolOpKind) func(values *ExprList[R], ctx Context) (R, Context, error) {
	switch op {
	case ast.And:
		return in.And
	case ast.Or:
		return in.Or
	}
	return nil
}

func (in *Interp[R]) missing(construct string, tried ...string) error {
	if len(tried) == 0 {
		tried = []string{construct}
	}
	return &MissingHandlerError{Interp: in.Name, Construct: construct, Tried: tried}
}
