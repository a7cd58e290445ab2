package fold_test

import (
	"testing"

	"github.com/starfold-labs/starfold/pkg/ast"
	"github.com/starfold-labs/starfold/pkg/fold"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func num(v int64) *ast.Num {
	return &ast.Num{Raw: "n", Value: v}
}

// countingInterp counts every node it folds, using family handlers
// only. Statement handlers thread the context through unchanged.
func countingInterp() *fold.Interp[int] {
	in := &fold.Interp[int]{Name: "count"}

	sum1 := func(views ...*fold.View[int]) func(fold.Context) (int, fold.Context, error) {
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
	listSum := func(l *fold.ExprList[int], ctx fold.Context) (int, error) {
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

	in.Module = func(_ *ast.Module, body *fold.Body[int], ctx fold.Context) (int, fold.Context, error) {
		n, ctx, err := body.Post(ctx)
		return 1 + n, ctx, err
	}
	in.FunctionDef = func(_ *ast.FunctionDef, body *fold.Body[int], ctx fold.Context) (int, fold.Context, error) {
		n, ctx, err := body.Post(ctx)
		return 1 + n, ctx, err
	}
	in.Block = func(stmts []*fold.View[int], ctx fold.Context) (int, fold.Context, error) {
		total := 1
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
		return sum1(value)(ctx)
	}
	in.Assign = func(targets *fold.ExprList[int], value *fold.View[int], ctx fold.Context) (int, fold.Context, error) {
		ts, err := listSum(targets, ctx)
		if err != nil {
			return 0, ctx, err
		}
		v, _, err := value.Post(ctx)
		return 1 + ts + v, ctx, err
	}
	in.ExprStmt = func(value *fold.View[int], ctx fold.Context) (int, fold.Context, error) {
		return sum1(value)(ctx)
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
	in.If = func(cond *fold.View[int], body, orelse *fold.Body[int], ctx fold.Context) (int, fold.Context, error) {
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
	leaf := func(ctx fold.Context) (int, fold.Context, error) { return 1, ctx, nil }
	in.Pass = leaf
	in.Break = leaf
	in.Continue = leaf

	in.BoolOp = func(_ ast.BoolOpKind, values *fold.ExprList[int], ctx fold.Context) (int, fold.Context, error) {
		s, err := listSum(values, ctx)
		return 1 + s, ctx, err
	}
	in.BinOp = func(_ ast.BinOpKind, left, right *fold.View[int], ctx fold.Context) (int, fold.Context, error) {
		return sum1(left, right)(ctx)
	}
	in.UnaryOp = func(_ ast.UnaryOpKind, operand *fold.View[int], ctx fold.Context) (int, fold.Context, error) {
		return sum1(operand)(ctx)
	}
	in.Compare = func(_ ast.CmpOpKind, left, right *fold.View[int], ctx fold.Context) (int, fold.Context, error) {
		return sum1(left, right)(ctx)
	}
	in.Call = func(fn *fold.View[int], args *fold.ExprList[int], ctx fold.Context) (int, fold.Context, error) {
		f, _, err := fn.Post(ctx)
		if err != nil {
			return 0, ctx, err
		}
		s, err := listSum(args, ctx)
		return 1 + f + s, ctx, err
	}
	in.Num = func(_ *ast.Num, ctx fold.Context) (int, fold.Context, error) { return 1, ctx, nil }
	in.Str = func(_ *ast.Str, ctx fold.Context) (int, fold.Context, error) { return 1, ctx, nil }
	in.Bytes = func(_ *ast.Bytes, ctx fold.Context) (int, fold.Context, error) { return 1, ctx, nil }
	in.NameConstant = func(_ *ast.NameConstant, ctx fold.Context) (int, fold.Context, error) { return 1, ctx, nil }
	in.Ident = func(_ *ast.Ident, ctx fold.Context) (int, fold.Context, error) { return 1, ctx, nil }
	in.List = func(elts *fold.ExprList[int], ctx fold.Context) (int, fold.Context, error) {
		s, err := listSum(elts, ctx)
		return 1 + s, ctx, err
	}
	in.Tuple = func(elts *fold.ExprList[int], ctx fold.Context) (int, fold.Context, error) {
		s, err := listSum(elts, ctx)
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
			s, err := listSum(g.Ifs, ctx)
			if err != nil {
				return 0, ctx, err
			}
			total += t + i + s
		}
		return 1 + total, ctx, nil
	}
	return in
}

// grammarTree builds a module exercising every construct in the
// catalog, with empty else blocks made explicit.
func grammarTree() *ast.Module {
	return &ast.Module{Body: &ast.Block{Stmts: []ast.Stmt{
		&ast.FunctionDef{
			Name:   "f",
			Params: []ast.Param{{Name: "xs"}},
			Body: &ast.Block{Stmts: []ast.Stmt{
				&ast.ExprStmt{Value: &ast.Str{Value: "doc"}},
				&ast.Assign{
					Targets: []ast.Expr{&ast.Tuple{Elts: []ast.Expr{&ast.Ident{Name: "a"}, &ast.Ident{Name: "b"}}}},
					Value: &ast.ListComp{
						Elt: &ast.BinOp{Op: ast.Pow, Left: &ast.Ident{Name: "x"}, Right: num(2)},
						Generators: []ast.Comprehension{{
							Target: &ast.Ident{Name: "x"},
							Iter:   &ast.Ident{Name: "xs"},
							Ifs:    []ast.Expr{&ast.Compare{Left: &ast.Ident{Name: "x"}, Ops: []ast.CmpOpKind{ast.Gt}, Comparators: []ast.Expr{num(0)}}},
						}},
					},
				},
				&ast.For{
					Target: &ast.Ident{Name: "x"},
					Iter:   &ast.List{Elts: []ast.Expr{num(1), num(2)}},
					Body:   &ast.Block{Stmts: []ast.Stmt{&ast.Continue{}}},
					OrElse: &ast.Block{Stmts: []ast.Stmt{&ast.Pass{}}},
				},
				&ast.While{
					Cond:   &ast.BoolOp{Op: ast.And, Values: []ast.Expr{&ast.NameConstant{Value: ast.True}, &ast.Ident{Name: "a"}}},
					Body:   &ast.Block{Stmts: []ast.Stmt{&ast.Break{}}},
					OrElse: &ast.Block{},
				},
				&ast.If{
					Cond:   &ast.UnaryOp{Op: ast.Not, Operand: &ast.Ident{Name: "b"}},
					Body:   &ast.Block{Stmts: []ast.Stmt{&ast.ExprStmt{Value: &ast.Call{Fn: &ast.Ident{Name: "len"}, Args: []ast.Expr{&ast.Bytes{Value: []byte("z")}}}}}},
					OrElse: &ast.Block{Stmts: []ast.Stmt{&ast.Pass{}}},
				},
				&ast.Return{Value: &ast.BinOp{Op: ast.Add, Left: &ast.Ident{Name: "a"}, Right: num(1)}},
			}},
		},
	}}}
}

func TestFoldCoversWholeGrammar(t *testing.T) {
	tree := grammarTree()

	want := 0
	ast.Walk(tree, func(ast.Node) bool {
		want++
		return true
	})

	got, _, err := countingInterp().Fold(tree, nil)
	require.NoError(t, err)
	assert.Equal(t, want, got, "fold should visit every node exactly once")
}

func TestMissingHandlerNamesOperator(t *testing.T) {
	in := &fold.Interp[int]{
		Name: "size",
		Num:  func(_ *ast.Num, ctx fold.Context) (int, fold.Context, error) { return 1, ctx, nil },
	}
	expr := &ast.BinOp{Op: ast.Mult, Left: num(3), Right: num(4)}

	_, _, err := in.Fold(expr, nil)
	require.Error(t, err)

	var missing *fold.MissingHandlerError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "size", missing.Interp)
	assert.Equal(t, "Mult", missing.Construct)
	assert.Equal(t, []string{"Mult", "BinOp"}, missing.Tried)
	assert.Contains(t, err.Error(), "no handler for Mult")
	assert.Contains(t, err.Error(), "tried Mult, then BinOp")
}

func TestSpecificHandlerBeatsFamily(t *testing.T) {
	var familyOp ast.BinOpKind = -1
	in := &fold.Interp[int]{
		Name: "pick",
		Add: func(_, _ *fold.View[int], ctx fold.Context) (int, fold.Context, error) {
			return 100, ctx, nil
		},
		BinOp: func(op ast.BinOpKind, _, _ *fold.View[int], ctx fold.Context) (int, fold.Context, error) {
			familyOp = op
			return -1, ctx, nil
		},
	}

	got, _, err := in.Fold(&ast.BinOp{Op: ast.Add, Left: num(1), Right: num(2)}, nil)
	require.NoError(t, err)
	assert.Equal(t, 100, got, "specific handler should win over the family handler")

	got, _, err = in.Fold(&ast.BinOp{Op: ast.Sub, Left: num(1), Right: num(2)}, nil)
	require.NoError(t, err)
	assert.Equal(t, -1, got, "family handler should cover operators without specific handlers")
	assert.Equal(t, ast.Sub, familyOp, "family handler should receive the operator")
}

func TestFamilyHandlerFoldsOperands(t *testing.T) {
	in := &fold.Interp[int]{
		Name: "eval",
		Num: func(lit *ast.Num, ctx fold.Context) (int, fold.Context, error) {
			v, _ := lit.Int64()
			return int(v), ctx, nil
		},
		BinOp: func(op ast.BinOpKind, left, right *fold.View[int], ctx fold.Context) (int, fold.Context, error) {
			l, _, err := left.Post(ctx)
			if err != nil {
				return 0, ctx, err
			}
			r, _, err := right.Post(ctx)
			if err != nil {
				return 0, ctx, err
			}
			if op == ast.Mult {
				return l * r, ctx, nil
			}
			return l + r, ctx, nil
		},
	}

	got, _, err := in.Fold(&ast.BinOp{Op: ast.Mult, Left: num(3), Right: num(4)}, nil)
	require.NoError(t, err)
	assert.Equal(t, 12, got)
}

func TestUnaryAndCompareDispatch(t *testing.T) {
	in := &fold.Interp[bool]{
		Name: "truth",
		Num: func(_ *ast.Num, ctx fold.Context) (bool, fold.Context, error) {
			return true, ctx, nil
		},
		Not: func(operand *fold.View[bool], ctx fold.Context) (bool, fold.Context, error) {
			v, _, err := operand.Post(ctx)
			return !v, ctx, err
		},
		Compare: func(op ast.CmpOpKind, left, right *fold.View[bool], ctx fold.Context) (bool, fold.Context, error) {
			return op == ast.Lt, ctx, nil
		},
	}

	got, _, err := in.Fold(&ast.UnaryOp{Op: ast.Not, Operand: num(1)}, nil)
	require.NoError(t, err)
	assert.False(t, got)

	got, _, err = in.Fold(&ast.Compare{Left: num(1), Ops: []ast.CmpOpKind{ast.Lt}, Comparators: []ast.Expr{num(2)}}, nil)
	require.NoError(t, err)
	assert.True(t, got)

	_, _, err = in.Fold(&ast.UnaryOp{Op: ast.USub, Operand: num(1)}, nil)
	var missing *fold.MissingHandlerError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"USub", "UnaryOp"}, missing.Tried)
}

func TestBlockHandlerRequired(t *testing.T) {
	in := (&fold.Interp[int]{
		Name: "noblock",
		Num:  func(_ *ast.Num, ctx fold.Context) (int, fold.Context, error) { return 1, ctx, nil },
	}).Conventional()

	tree := &ast.Module{Body: &ast.Block{Stmts: []ast.Stmt{&ast.Return{Value: num(1)}}}}
	_, _, err := in.Fold(tree, nil)

	var missing *fold.MissingHandlerError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Block", missing.Construct, "the sequence construct needs its own handler")
}

func TestGrammarErrors(t *testing.T) {
	in := countingInterp()

	_, _, err := in.Fold(nil, nil)
	var gram *fold.GrammarError
	require.ErrorAs(t, err, &gram)

	chained := &ast.Compare{
		Left:        num(1),
		Ops:         []ast.CmpOpKind{ast.Lt, ast.Lt},
		Comparators: []ast.Expr{num(2), num(3)},
	}
	_, _, err = in.Fold(chained, nil)
	require.ErrorAs(t, err, &gram)
	assert.Equal(t, "Compare", gram.Construct)
	assert.Contains(t, gram.Detail, "chained comparison")

	malformed := &ast.Compare{Left: num(1)}
	_, _, err = in.Fold(malformed, nil)
	require.ErrorAs(t, err, &gram)
	assert.Contains(t, gram.Detail, "malformed")

	badOp := &ast.BinOp{Op: ast.BinOpKind(99), Left: num(1), Right: num(2)}
	_, _, err = in.Fold(badOp, nil)
	require.ErrorAs(t, err, &gram)
	assert.Equal(t, "BinOp", gram.Construct)
}

func TestContextThreadsThroughStatements(t *testing.T) {
	var seen []int
	var branchEntry int

	in := &fold.Interp[int]{
		Name: "threading",
		Module: func(_ *ast.Module, body *fold.Body[int], ctx fold.Context) (int, fold.Context, error) {
			return body.Post(ctx)
		},
		Block: func(stmts []*fold.View[int], ctx fold.Context) (int, fold.Context, error) {
			for _, v := range stmts {
				var err error
				_, ctx, err = v.Post(ctx)
				if err != nil {
					return 0, ctx, err
				}
			}
			return 0, ctx, nil
		},
		Pass: func(ctx fold.Context) (int, fold.Context, error) {
			n := ctx.(int)
			seen = append(seen, n)
			return 0, n + 1, nil
		},
		NameConstant: func(_ *ast.NameConstant, ctx fold.Context) (int, fold.Context, error) {
			return 0, ctx, nil
		},
		If: func(cond *fold.View[int], body, orelse *fold.Body[int], ctx fold.Context) (int, fold.Context, error) {
			branchEntry = ctx.(int)
			if _, _, err := cond.Post(ctx); err != nil {
				return 0, ctx, err
			}
			// Both branches see the context as of entry.
			_, bodyCtx, err := body.Post(ctx)
			if err != nil {
				return 0, ctx, err
			}
			if _, _, err := orelse.Post(ctx); err != nil {
				return 0, ctx, err
			}
			return 0, bodyCtx, nil
		},
	}

	tree := &ast.Module{Body: &ast.Block{Stmts: []ast.Stmt{
		&ast.Pass{},
		&ast.Pass{},
		&ast.If{
			Cond:   &ast.NameConstant{Value: ast.True},
			Body:   &ast.Block{Stmts: []ast.Stmt{&ast.Pass{}}},
			OrElse: &ast.Block{},
		},
		&ast.Pass{},
	}}}

	_, out, err := in.Fold(tree, 10)
	require.NoError(t, err)

	assert.Equal(t, []int{10, 11, 12, 13}, seen, "each statement should observe the previous statement's outgoing context")
	assert.Equal(t, 12, branchEntry, "the branch should observe the context as of entry")
	assert.Equal(t, 14, out)
}

func TestPreDoesNotFoldChildren(t *testing.T) {
	folds := 0
	in := &fold.Interp[int]{
		Name: "peek",
		Return: func(value *fold.View[int], ctx fold.Context) (int, fold.Context, error) {
			binop, ok := value.Pre().(*ast.BinOp)
			if !ok {
				return 0, ctx, nil
			}
			_ = binop.Op
			return 42, ctx, nil
		},
		Num: func(_ *ast.Num, ctx fold.Context) (int, fold.Context, error) {
			folds++
			return 0, ctx, nil
		},
	}

	// The operands have no handlers in this interpretation, so folding
	// them would fail; inspecting them through Pre must not.
	stmt := &ast.Return{Value: &ast.BinOp{
		Op:    ast.MatMult,
		Left:  &ast.ListComp{Elt: num(1)},
		Right: &ast.Compare{Left: num(1), Ops: []ast.CmpOpKind{ast.Is}, Comparators: []ast.Expr{num(2)}},
	}}

	got, _, err := in.Fold(stmt, nil)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Zero(t, folds, "Pre must not fold anything")
}

func TestPostRecomputesEveryCall(t *testing.T) {
	folds := 0
	in := &fold.Interp[int]{
		Name: "recompute",
		Num: func(_ *ast.Num, ctx fold.Context) (int, fold.Context, error) {
			folds++
			return folds, ctx, nil
		},
		Return: func(value *fold.View[int], ctx fold.Context) (int, fold.Context, error) {
			first, _, err := value.Post(ctx)
			if err != nil {
				return 0, ctx, err
			}
			second, _, err := value.Post(ctx)
			if err != nil {
				return 0, ctx, err
			}
			return first*10 + second, ctx, nil
		},
	}

	got, _, err := in.Fold(&ast.Return{Value: num(7)}, nil)
	require.NoError(t, err)
	assert.Equal(t, 12, got, "each Post call should recompute")
	assert.Equal(t, 2, folds)
}

func TestConventionalDefaults(t *testing.T) {
	base := func() *fold.Interp[int] {
		return &fold.Interp[int]{
			Name: "conv",
			Block: func(stmts []*fold.View[int], ctx fold.Context) (int, fold.Context, error) {
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
			},
			Num: func(lit *ast.Num, ctx fold.Context) (int, fold.Context, error) {
				v, _ := lit.Int64()
				return int(v), ctx, nil
			},
		}
	}

	in := base().Conventional()
	tree := &ast.Module{Body: &ast.Block{Stmts: []ast.Stmt{
		&ast.FunctionDef{Name: "f", Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.Return{Value: num(5)},
		}}},
	}}}
	got, _, err := in.Fold(tree, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, got)

	in = base().Conventional()
	got, _, err = in.Fold(&ast.Return{}, nil)
	require.NoError(t, err)
	assert.Zero(t, got, "a bare return should default to the zero result")

	in = base()
	in.Module = func(_ *ast.Module, _ *fold.Body[int], ctx fold.Context) (int, fold.Context, error) {
		return 99, ctx, nil
	}
	got, _, err = in.Conventional().Fold(tree, nil)
	require.NoError(t, err)
	assert.Equal(t, 99, got, "Conventional must not replace explicit handlers")
}

func TestFoldWorksOnSubtrees(t *testing.T) {
	in := &fold.Interp[int]{
		Name: "leafy",
		Num: func(lit *ast.Num, ctx fold.Context) (int, fold.Context, error) {
			v, _ := lit.Int64()
			return int(v), ctx, nil
		},
		Add: func(left, right *fold.View[int], ctx fold.Context) (int, fold.Context, error) {
			l, _, err := left.Post(ctx)
			if err != nil {
				return 0, ctx, err
			}
			r, _, err := right.Post(ctx)
			return l + r, ctx, err
		},
	}

	got, _, err := in.Fold(&ast.BinOp{Op: ast.Add, Left: num(20), Right: num(22)}, nil)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestNilElseBlockFoldsAsEmpty(t *testing.T) {
	in := countingInterp()

	stmt := &ast.If{
		Cond: num(1),
		Body: &ast.Block{Stmts: []ast.Stmt{&ast.Pass{}}},
		// OrElse left nil on purpose.
	}

	got, _, err := in.Fold(stmt, nil)
	require.NoError(t, err)
	// If + cond + body block + pass + implicit empty else block.
	assert.Equal(t, 5, got)
}
