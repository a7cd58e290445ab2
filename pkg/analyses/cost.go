package analyses

import (
	"github.com/starfold-labs/starfold/pkg/ast"
	"github.com/starfold-labs/starfold/pkg/fold"
)

func init() {
	Register(Analysis{
		Name:  "cost",
		Doc:   "Abstract step count; loops scale by the extent of their iterable.",
		Build: plain(Cost()),
	})
}

// Cost returns the step-count interpretation. Literals and references
// are free; every operation costs one plus its operands; a for loop
// costs the extent of its iterable times one plus the body.
func Cost() *fold.Interp[int] {
	in := &fold.Interp[int]{Name: "cost"}

	free := func(ctx fold.Context) (int, fold.Context, error) { return 0, ctx, nil }
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
	in.Assign = func(_ *fold.ExprList[int], value *fold.View[int], ctx fold.Context) (int, fold.Context, error) {
		v, _, err := value.Post(ctx)
		return 1 + v, ctx, err
	}
	in.For = func(_, iter *fold.View[int], body, orelse *fold.Body[int], ctx fold.Context) (int, fold.Context, error) {
		b, _, err := body.Post(ctx)
		if err != nil {
			return 0, ctx, err
		}
		o, _, err := orelse.Post(ctx)
		if err != nil {
			return 0, ctx, err
		}
		// The engine folds the body once; iteration scaling is this
		// interpretation's own model.
		return extentOf(iter.Pre())*(1+b) + o, ctx, nil
	}
	in.While = func(cond *fold.View[int], body, orelse *fold.Body[int], ctx fold.Context) (int, fold.Context, error) {
		c, _, err := cond.Post(ctx)
		if err != nil {
			return 0, ctx, err
		}
		b, _, err := body.Post(ctx)
		return c + b, ctx, err
	}
	in.If = func(cond *fold.View[int], body, _ *fold.Body[int], ctx fold.Context) (int, fold.Context, error) {
		c, _, err := cond.Post(ctx)
		if err != nil {
			return 0, ctx, err
		}
		b, _, err := body.Post(ctx)
		return c + b, ctx, err
	}
	in.Pass, in.Break, in.Continue = free, free, free

	in.BoolOp = func(_ ast.BoolOpKind, values *fold.ExprList[int], ctx fold.Context) (int, fold.Context, error) {
		s, err := sumList(values, ctx)
		return 1 + s, ctx, err
	}
	in.BinOp = func(_ ast.BinOpKind, left, right *fold.View[int], ctx fold.Context) (int, fold.Context, error) {
		return opCost(left, right, ctx)
	}
	in.UnaryOp = func(_ ast.UnaryOpKind, operand *fold.View[int], ctx fold.Context) (int, fold.Context, error) {
		v, _, err := operand.Post(ctx)
		return 1 + v, ctx, err
	}
	in.Compare = func(_ ast.CmpOpKind, left, right *fold.View[int], ctx fold.Context) (int, fold.Context, error) {
		return opCost(left, right, ctx)
	}
	in.Call = func(_ *fold.View[int], args *fold.ExprList[int], ctx fold.Context) (int, fold.Context, error) {
		s, err := sumList(args, ctx)
		return 1 + s, ctx, err
	}

	in.Num = func(_ *ast.Num, ctx fold.Context) (int, fold.Context, error) { return free(ctx) }
	in.Str = func(_ *ast.Str, ctx fold.Context) (int, fold.Context, error) { return free(ctx) }
	in.Bytes = func(_ *ast.Bytes, ctx fold.Context) (int, fold.Context, error) { return free(ctx) }
	in.NameConstant = func(_ *ast.NameConstant, ctx fold.Context) (int, fold.Context, error) { return free(ctx) }
	in.Ident = func(_ *ast.Ident, ctx fold.Context) (int, fold.Context, error) { return free(ctx) }

	in.List = func(elts *fold.ExprList[int], ctx fold.Context) (int, fold.Context, error) {
		s, err := sumList(elts, ctx)
		return s, ctx, err
	}
	in.Tuple = func(elts *fold.ExprList[int], ctx fold.Context) (int, fold.Context, error) {
		s, err := sumList(elts, ctx)
		return s, ctx, err
	}
	in.ListComp = func(elt *fold.View[int], generators []fold.CompView[int], ctx fold.Context) (int, fold.Context, error) {
		// Each generator is a nested loop over its iterable; filters
		// run over everything generated so far, and the element
		// expression runs once per final combination.
		size := 1
		total := 0
		for _, g := range generators {
			size *= extentOf(g.Iter.Pre())
			ifs, err := sumList(g.Ifs, ctx)
			if err != nil {
				return 0, ctx, err
			}
			total += size * ifs
		}
		e, _, err := elt.Post(ctx)
		return total + e*size, ctx, err
	}

	return in.Conventional()
}

func opCost(left, right *fold.View[int], ctx fold.Context) (int, fold.Context, error) {
	l, _, err := left.Post(ctx)
	if err != nil {
		return 0, ctx, err
	}
	r, _, err := right.Post(ctx)
	return 1 + l + r, ctx, err
}

// extentOf estimates how many elements an iterable expression yields
// from its unfolded form alone: displays count their elements, string
// and bytes literals their length. Anything else counts as one pass.
func extentOf(n ast.Node) int {
	switch x := n.(type) {
	case *ast.List:
		return len(x.Elts)
	case *ast.Tuple:
		return len(x.Elts)
	case *ast.Str:
		return len(x.Value)
	case *ast.Bytes:
		return len(x.Value)
	}
	return 1
}
