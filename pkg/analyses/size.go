package analyses

import (
	"github.com/starfold-labs/starfold/pkg/ast"
	"github.com/starfold-labs/starfold/pkg/fold"
)

func init() {
	Register(Analysis{
		Name:  "size",
		Doc:   "Number of nodes in the function body.",
		Build: plain(Size()),
	})
}

// Size returns the node-count interpretation: every construct costs one
// plus its folded children, and a statement sequence is the sum of its
// statements.
func Size() *fold.Interp[int] {
	in := &fold.Interp[int]{Name: "size"}

	one := func(ctx fold.Context) (int, fold.Context, error) { return 1, ctx, nil }
	oneLeaf := func(views ...*fold.View[int]) func(fold.Context) (int, fold.Context, error) {
		return func(ctx fold.Context) (int, fold.Context, error) {
			total := 1
			for _, v := range views {
				if v == nil {
					continue
				}
				n, _, err := v.Post(ctx)
				if err != nil {
					return 0, ctx, err
				}
				total += n
			}
			return total, ctx, nil
		}
	}
	sumList := func(l *fold.ExprList[int], ctx fold.Context) (int, error) {
		vals, err := l.Post(ctx)
		if err != nil {
			return 0, err
		}
		total := 0
		for _, v := range vals {
			total += v
		}
		return total, nil
	}

	in.Block = func(stmts []*fold.View[int], ctx fold.Context) (int, fold.Context, error) {
		total := 0
		for _, v := range stmts {
			n, out, err := v.Post(ctx)
			if err != nil {
				return 0, ctx, err
			}
			ctx = out
			total += n
		}
		return total, ctx, nil
	}
	in.Return = func(value *fold.View[int], ctx fold.Context) (int, fold.Context, error) {
		return oneLeaf(value)(ctx)
	}
	in.Assign = func(targets *fold.ExprList[int], value *fold.View[int], ctx fold.Context) (int, fold.Context, error) {
		ts, err := sumList(targets, ctx)
		if err != nil {
			return 0, ctx, err
		}
		v, _, err := value.Post(ctx)
		return 1 + ts + v, ctx, err
	}
	in.ExprStmt = func(value *fold.View[int], ctx fold.Context) (int, fold.Context, error) {
		return oneLeaf(value)(ctx)
	}
	in.For = func(target, iter *fold.View[int], body, orelse *fold.Body[int], ctx fold.Context) (int, fold.Context, error) {
		t, _, err := target.Post(ctx)
		if err != nil {
			return 0, ctx, err
		}
		i, _, err := iter.Post(ctx)
		if err != nil {
			return 0, ctx, err
		}
		b, _, err := body.Post(ctx)
		if err != nil {
			return 0, ctx, err
		}
		o, _, err := orelse.Post(ctx)
		return 1 + t + i + b + o, ctx, err
	}
	in.While = func(cond *fold.View[int], body, orelse *fold.Body[int], ctx fold.Context) (int, fold.Context, error) {
		return branchSize(cond, body, orelse, ctx)
	}
	in.If = func(cond *fold.View[int], body, orelse *fold.Body[int], ctx fold.Context) (int, fold.Context, error) {
		return branchSize(cond, body, orelse, ctx)
	}
	in.Pass, in.Break, in.Continue = one, one, one

	in.BoolOp = func(_ ast.BoolOpKind, values *fold.ExprList[int], ctx fold.Context) (int, fold.Context, error) {
		s, err := sumList(values, ctx)
		return 1 + s, ctx, err
	}
	in.BinOp = func(_ ast.BinOpKind, left, right *fold.View[int], ctx fold.Context) (int, fold.Context, error) {
		return oneLeaf(left, right)(ctx)
	}
	in.UnaryOp = func(_ ast.UnaryOpKind, operand *fold.View[int], ctx fold.Context) (int, fold.Context, error) {
		return oneLeaf(operand)(ctx)
	}
	in.Compare = func(_ ast.CmpOpKind, left, right *fold.View[int], ctx fold.Context) (int, fold.Context, error) {
		return oneLeaf(left, right)(ctx)
	}
	in.Call = func(fn *fold.View[int], args *fold.ExprList[int], ctx fold.Context) (int, fold.Context, error) {
		f, _, err := fn.Post(ctx)
		if err != nil {
			return 0, ctx, err
		}
		s, err := sumList(args, ctx)
		return 1 + f + s, ctx, err
	}

	leaf := func(ctx fold.Context) (int, fold.Context, error) { return 1, ctx, nil }
	in.Num = func(_ *ast.Num, ctx fold.Context) (int, fold.Context, error) { return leaf(ctx) }
	in.Str = func(_ *ast.Str, ctx fold.Context) (int, fold.Context, error) { return leaf(ctx) }
	in.Bytes = func(_ *ast.Bytes, ctx fold.Context) (int, fold.Context, error) { return leaf(ctx) }
	in.NameConstant = func(_ *ast.NameConstant, ctx fold.Context) (int, fold.Context, error) { return leaf(ctx) }
	in.Ident = func(_ *ast.Ident, ctx fold.Context) (int, fold.Context, error) { return leaf(ctx) }

	in.List = func(elts *fold.ExprList[int], ctx fold.Context) (int, fold.Context, error) {
		s, err := sumList(elts, ctx)
		return 1 + s, ctx, err
	}
	in.Tuple = func(elts *fold.ExprList[int], ctx fold.Context) (int, fold.Context, error) {
		s, err := sumList(elts, ctx)
		return 1 + s, ctx, err
	}
	in.ListComp = func(elt *fold.View[int], generators []fold.CompView[int], ctx fold.Context) (int, fold.Context, error) {
		total, _, err := elt.Post(ctx)
		if err != nil {
			return 0, ctx, err
		}
		for _, g := range generators {
			t, _, err := g.Target.Post(ctx)
			if err != nil {
				return 0, ctx, err
			}
			i, _, err := g.Iter.Post(ctx)
			if err != nil {
				return 0, ctx, err
			}
			s, err := sumList(g.Ifs, ctx)
			if err != nil {
				return 0, ctx, err
			}
			total += t + i + s
		}
		return 1 + total, ctx, nil
	}

	return in.Conventional()
}

func branchSize(cond *fold.View[int], body, orelse *fold.Body[int], ctx fold.Context) (int, fold.Context, error) {
	c, _, err := cond.Post(ctx)
	if err != nil {
		return 0, ctx, err
	}
	b, _, err := body.Post(ctx)
	if err != nil {
		return 0, ctx, err
	}
	o, _, err := orelse.Post(ctx)
	return 1 + c + b + o, ctx, err
}
