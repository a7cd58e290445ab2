package fold

import (
	"fmt"

	"github.com/starfold-labs/starfold/pkg/ast"
)

// Fold runs the interpretation over the tree rooted at n under ctx.
// It works on any node, not just a Module, so handlers and analyses
// can fold subtrees directly.
//
// Dispatch is deterministic: each construct goes to its handler, and
// operator constructs try the operator-specific handler before the
// family handler. A construct with no handler fails with a
// MissingHandlerError; a node outside the grammar, a nil node, or a
// chained comparison fails with a GrammarError. Errors from handlers
// and child folds propagate unchanged.
func (in *Interp[R]) Fold(n ast.Node, ctx Context) (R, Context, error) {
	var zero R
	if n == nil {
		return zero, ctx, &GrammarError{Construct: "nil", Detail: "cannot fold a nil node"}
	}

	switch x := n.(type) {
	case *ast.Module:
		if in.Module == nil {
			return zero, ctx, in.missing("Module")
		}
		return in.Module(x, in.bodyView(x.Body), ctx)

	case *ast.FunctionDef:
		if in.FunctionDef == nil {
			return zero, ctx, in.missing("FunctionDef")
		}
		return in.FunctionDef(x, in.bodyView(x.Body), ctx)

	case *ast.Block:
		if in.Block == nil {
			return zero, ctx, in.missing("Block")
		}
		stmts := make([]*View[R], len(x.Stmts))
		for i, s := range x.Stmts {
			stmts[i] = in.view(s)
		}
		return in.Block(stmts, ctx)

	case *ast.Return:
		if in.Return == nil {
			return zero, ctx, in.missing("Return")
		}
		var value *View[R]
		if x.Value != nil {
			value = in.view(x.Value)
		}
		return in.Return(value, ctx)

	case *ast.Assign:
		if in.Assign == nil {
			return zero, ctx, in.missing("Assign")
		}
		return in.Assign(in.exprList(x.Targets), in.view(x.Value), ctx)

	case *ast.ExprStmt:
		if in.ExprStmt == nil {
			return zero, ctx, in.missing("ExprStmt")
		}
		return in.ExprStmt(in.view(x.Value), ctx)

	case *ast.For:
		if in.For == nil {
			return zero, ctx, in.missing("For")
		}
		return in.For(in.view(x.Target), in.view(x.Iter), in.bodyView(x.Body), in.bodyView(x.OrElse), ctx)

	case *ast.While:
		if in.While == nil {
			return zero, ctx, in.missing("While")
		}
		return in.While(in.view(x.Cond), in.bodyView(x.Body), in.bodyView(x.OrElse), ctx)

	case *ast.If:
		if in.If == nil {
			return zero, ctx, in.missing("If")
		}
		return in.If(in.view(x.Cond), in.bodyView(x.Body), in.bodyView(x.OrElse), ctx)

	case *ast.Pass:
		if in.Pass == nil {
			return zero, ctx, in.missing("Pass")
		}
		return in.Pass(ctx)

	case *ast.Break:
		if in.Break == nil {
			return zero, ctx, in.missing("Break")
		}
		return in.Break(ctx)

	case *ast.Continue:
		if in.Continue == nil {
			return zero, ctx, in.missing("Continue")
		}
		return in.Continue(ctx)

	case *ast.BoolOp:
		if !x.Op.Valid() {
			return zero, ctx, &GrammarError{Construct: "BoolOp", Detail: fmt.Sprintf("unknown operator %s", x.Op)}
		}
		values := in.exprList(x.Values)
		if h := in.boolSpecific(x.Op); h != nil {
			return h(values, ctx)
		}
		if in.BoolOp != nil {
			return in.BoolOp(x.Op, values, ctx)
		}
		return zero, ctx, in.missing(x.Op.String(), x.Op.String(), "BoolOp")

	case *ast.BinOp:
		if !x.Op.Valid() {
			return zero, ctx, &GrammarError{Construct: "BinOp", Detail: fmt.Sprintf("unknown operator %s", x.Op)}
		}
		left, right := in.view(x.Left), in.view(x.Right)
		if h := in.binSpecific(x.Op); h != nil {
			return h(left, right, ctx)
		}
		if in.BinOp != nil {
			return in.BinOp(x.Op, left, right, ctx)
		}
		return zero, ctx, in.missing(x.Op.String(), x.Op.String(), "BinOp")

	case *ast.UnaryOp:
		if !x.Op.Valid() {
			return zero, ctx, &GrammarError{Construct: "UnaryOp", Detail: fmt.Sprintf("unknown operator %s", x.Op)}
		}
		operand := in.view(x.Operand)
		if h := in.unarySpecific(x.Op); h != nil {
			return h(operand, ctx)
		}
		if in.UnaryOp != nil {
			return in.UnaryOp(x.Op, operand, ctx)
		}
		return zero, ctx, in.missing(x.Op.String(), x.Op.String(), "UnaryOp")

	case *ast.Compare:
		if len(x.Ops) == 0 || len(x.Comparators) != len(x.Ops) {
			return zero, ctx, &GrammarError{
				Construct: "Compare",
				Detail:    fmt.Sprintf("malformed comparison: %d operators, %d comparators", len(x.Ops), len(x.Comparators)),
			}
		}
		if len(x.Ops) > 1 {
			return zero, ctx, &GrammarError{
				Construct: "Compare",
				Detail:    fmt.Sprintf("chained comparison with %d operators", len(x.Ops)),
			}
		}
		op := x.Ops[0]
		if !op.Valid() {
			return zero, ctx, &GrammarError{Construct: "Compare", Detail: fmt.Sprintf("unknown operator %s", op)}
		}
		left, right := in.view(x.Left), in.view(x.Comparators[0])
		if h := in.cmpSpecific(op); h != nil {
			return h(left, right, ctx)
		}
		if in.Compare != nil {
			return in.Compare(op, left, right, ctx)
		}
		return zero, ctx, in.missing(op.String(), op.String(), "Compare")

	case *ast.Call:
		if in.Call == nil {
			return zero, ctx, in.missing("Call")
		}
		return in.Call(in.view(x.Fn), in.exprList(x.Args), ctx)

	case *ast.Num:
		if in.Num == nil {
			return zero, ctx, in.missing("Num")
		}
		return in.Num(x, ctx)

	case *ast.Str:
		if in.Str == nil {
			return zero, ctx, in.missing("Str")
		}
		return in.Str(x, ctx)

	case *ast.Bytes:
		if in.Bytes == nil {
			return zero, ctx, in.missing("Bytes")
		}
		return in.Bytes(x, ctx)

	case *ast.NameConstant:
		if in.NameConstant == nil {
			return zero, ctx, in.missing("NameConstant")
		}
		return in.NameConstant(x, ctx)

	case *ast.Ident:
		if in.Ident == nil {
			return zero, ctx, in.missing("Ident")
		}
		return in.Ident(x, ctx)

	case *ast.List:
		if in.List == nil {
			return zero, ctx, in.missing("List")
		}
		return in.List(in.exprList(x.Elts), ctx)

	case *ast.Tuple:
		if in.Tuple == nil {
			return zero, ctx, in.missing("Tuple")
		}
		return in.Tuple(in.exprList(x.Elts), ctx)

	case *ast.ListComp:
		if in.ListComp == nil {
			return zero, ctx, in.missing("ListComp")
		}
		generators := make([]CompView[R], len(x.Generators))
		for i, g := range x.Generators {
			generators[i] = CompView[R]{
				Target: in.view(g.Target),
				Iter:   in.view(g.Iter),
				Ifs:    in.exprList(g.Ifs),
			}
		}
		return in.ListComp(in.view(x.Elt), generators, ctx)
	}

	return zero, ctx, &GrammarError{Construct: fmt.Sprintf("%T", n), Detail: "node outside the grammar"}
}
