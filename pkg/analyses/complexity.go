package analyses

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/starfold-labs/starfold/pkg/ast"
	"github.com/starfold-labs/starfold/pkg/fold"
)

func init() {
	Register(Analysis{
		Name: "complexity",
		Doc:  "Symbolic asymptotic bound over named input sizes.",
		Defaults: map[string]any{
			"symbols":   map[string]string{},
			"functions": map[string]string{},
		},
		Build: buildComplexity,
	})
}

// Class is the growth class assigned to a known callee.
type Class string

const (
	ClassConstant    Class = "constant"
	ClassLog         Class = "log"
	ClassLinear      Class = "linear"
	ClassQuadratic   Class = "quadratic"
	ClassExponential Class = "exponential"
)

// Valid reports whether the class is one of the recognized names.
func (c Class) Valid() bool {
	switch c {
	case ClassConstant, ClassLog, ClassLinear, ClassQuadratic, ClassExponential:
		return true
	}
	return false
}

func (c Class) bound(sym string) Bound {
	switch c {
	case ClassLog:
		return Log(sym)
	case ClassLinear:
		return Linear(sym)
	case ClassQuadratic:
		return Poly(sym, 2)
	case ClassExponential:
		return Exponential(sym)
	}
	return Constant()
}

// Env is the complexity analysis context: which identifiers stand for
// symbolic input sizes and which callees have a known growth class.
type Env struct {
	Symbols map[string]string
	Funcs   map[string]Class
}

type complexityOptions struct {
	Symbols   map[string]string `mapstructure:"symbols"`
	Functions map[string]string `mapstructure:"functions"`
}

// buildComplexity decodes the symbols and functions tables from the
// options map. The returned applier supplies the decoded Env as the
// fold context when the caller passes none, so config-driven runs need
// no context plumbing.
func buildComplexity(opts map[string]any) (fold.Applier, error) {
	var decoded complexityOptions
	if err := mapstructure.Decode(opts, &decoded); err != nil {
		return nil, fmt.Errorf("decode complexity options: %w", err)
	}
	env := &Env{Symbols: decoded.Symbols, Funcs: make(map[string]Class, len(decoded.Functions))}
	for name, class := range decoded.Functions {
		c := Class(class)
		if !c.Valid() {
			return nil, fmt.Errorf("complexity: function %q has unknown class %q", name, class)
		}
		env.Funcs[name] = c
	}
	return &envApplier{env: env, inner: Complexity().Applier()}, nil
}

type envApplier struct {
	env   *Env
	inner fold.Applier
}

func (a *envApplier) Name() string { return a.inner.Name() }

func (a *envApplier) ApplyTo(s fold.Subject, ctx fold.Context) (*fold.Carrier, error) {
	if ctx == nil {
		ctx = a.env
	}
	return a.inner.ApplyTo(s, ctx)
}

// Complexity returns the asymptotic-bound interpretation. The context
// must be a *Env; a nil context reads as an empty environment, under
// which everything is O(1).
//
// A for loop over an identifier mapped to a symbol contributes a
// linear factor in that symbol; loops over literal displays are
// constant. A call to a callee with a known class contributes that
// class applied to the first symbol-mapped argument; unknown callees
// contribute only their argument bounds.
func Complexity() *fold.Interp[Bound] {
	in := &fold.Interp[Bound]{Name: "complexity"}

	constant := func(ctx fold.Context) (Bound, fold.Context, error) { return Constant(), ctx, nil }
	sumList := func(l *fold.ExprList[Bound], ctx fold.Context) (Bound, error) {
		vals, err := l.Post(ctx)
		if err != nil {
			return Bound{}, err
		}
		total := Constant()
		for _, v := range vals {
			total = total.Add(v)
		}
		return total, nil
	}
	pair := func(left, right *fold.View[Bound], ctx fold.Context) (Bound, fold.Context, error) {
		l, _, err := left.Post(ctx)
		if err != nil {
			return Bound{}, ctx, err
		}
		r, _, err := right.Post(ctx)
		return l.Add(r), ctx, err
	}

	in.Block = func(stmts []*fold.View[Bound], ctx fold.Context) (Bound, fold.Context, error) {
		total := Constant()
		for _, v := range stmts {
			b, out, err := v.Post(ctx)
			if err != nil {
				return Bound{}, ctx, err
			}
			ctx = out
			total = total.Add(b)
		}
		return total, ctx, nil
	}
	in.Assign = func(_ *fold.ExprList[Bound], value *fold.View[Bound], ctx fold.Context) (Bound, fold.Context, error) {
		return value.Post(ctx)
	}
	in.For = func(_, iter *fold.View[Bound], body, orelse *fold.Body[Bound], ctx fold.Context) (Bound, fold.Context, error) {
		b, _, err := body.Post(ctx)
		if err != nil {
			return Bound{}, ctx, err
		}
		o, _, err := orelse.Post(ctx)
		if err != nil {
			return Bound{}, ctx, err
		}
		return iterBound(iter.Pre(), ctx).Mul(b.Add(Constant())).Add(o), ctx, nil
	}
	in.While = func(cond *fold.View[Bound], body, orelse *fold.Body[Bound], ctx fold.Context) (Bound, fold.Context, error) {
		c, _, err := cond.Post(ctx)
		if err != nil {
			return Bound{}, ctx, err
		}
		b, _, err := body.Post(ctx)
		if err != nil {
			return Bound{}, ctx, err
		}
		o, _, err := orelse.Post(ctx)
		return c.Add(b).Add(o), ctx, err
	}
	in.If = func(cond *fold.View[Bound], body, orelse *fold.Body[Bound], ctx fold.Context) (Bound, fold.Context, error) {
		c, _, err := cond.Post(ctx)
		if err != nil {
			return Bound{}, ctx, err
		}
		b, _, err := body.Post(ctx)
		if err != nil {
			return Bound{}, ctx, err
		}
		o, _, err := orelse.Post(ctx)
		return c.Add(b).Add(o), ctx, err
	}
	in.Pass, in.Break, in.Continue = constant, constant, constant

	in.BoolOp = func(_ ast.BoolOpKind, values *fold.ExprList[Bound], ctx fold.Context) (Bound, fold.Context, error) {
		s, err := sumList(values, ctx)
		return s, ctx, err
	}
	in.BinOp = func(_ ast.BinOpKind, left, right *fold.View[Bound], ctx fold.Context) (Bound, fold.Context, error) {
		return pair(left, right, ctx)
	}
	in.UnaryOp = func(_ ast.UnaryOpKind, operand *fold.View[Bound], ctx fold.Context) (Bound, fold.Context, error) {
		return operand.Post(ctx)
	}
	in.Compare = func(_ ast.CmpOpKind, left, right *fold.View[Bound], ctx fold.Context) (Bound, fold.Context, error) {
		return pair(left, right, ctx)
	}
	in.Call = func(fn *fold.View[Bound], args *fold.ExprList[Bound], ctx fold.Context) (Bound, fold.Context, error) {
		s, err := sumList(args, ctx)
		if err != nil {
			return Bound{}, ctx, err
		}
		return callBound(fn.Pre(), args.Pre(), ctx).Add(s), ctx, nil
	}

	in.Num = func(_ *ast.Num, ctx fold.Context) (Bound, fold.Context, error) { return constant(ctx) }
	in.Str = func(_ *ast.Str, ctx fold.Context) (Bound, fold.Context, error) { return constant(ctx) }
	in.Bytes = func(_ *ast.Bytes, ctx fold.Context) (Bound, fold.Context, error) { return constant(ctx) }
	in.NameConstant = func(_ *ast.NameConstant, ctx fold.Context) (Bound, fold.Context, error) { return constant(ctx) }
	in.Ident = func(_ *ast.Ident, ctx fold.Context) (Bound, fold.Context, error) { return constant(ctx) }

	in.List = func(elts *fold.ExprList[Bound], ctx fold.Context) (Bound, fold.Context, error) {
		s, err := sumList(elts, ctx)
		return s, ctx, err
	}
	in.Tuple = func(elts *fold.ExprList[Bound], ctx fold.Context) (Bound, fold.Context, error) {
		s, err := sumList(elts, ctx)
		return s, ctx, err
	}
	in.ListComp = func(elt *fold.View[Bound], generators []fold.CompView[Bound], ctx fold.Context) (Bound, fold.Context, error) {
		e, _, err := elt.Post(ctx)
		if err != nil {
			return Bound{}, ctx, err
		}
		total := e.Add(Constant())
		for _, g := range generators {
			ifs, err := sumList(g.Ifs, ctx)
			if err != nil {
				return Bound{}, ctx, err
			}
			total = iterBound(g.Iter.Pre(), ctx).Mul(total.Add(ifs))
		}
		return total, ctx, nil
	}

	return in.Conventional()
}

func envFrom(ctx fold.Context) *Env {
	if env, ok := ctx.(*Env); ok && env != nil {
		return env
	}
	return &Env{}
}

// iterBound is the number of iterations a loop over the given iterable
// contributes: linear in the mapped symbol for a symbol-mapped
// identifier, constant otherwise.
func iterBound(iter ast.Node, ctx fold.Context) Bound {
	if id, ok := iter.(*ast.Ident); ok {
		if sym, ok := envFrom(ctx).Symbols[id.Name]; ok {
			return Linear(sym)
		}
	}
	return Constant()
}

// callBound is the intrinsic cost of calling the given callee. A known
// callee's class applies to the first symbol-mapped argument; a class
// with no such argument, and any unknown callee, costs nothing beyond
// its arguments.
func callBound(fn ast.Node, args []ast.Expr, ctx fold.Context) Bound {
	id, ok := fn.(*ast.Ident)
	if !ok {
		return Constant()
	}
	env := envFrom(ctx)
	class, ok := env.Funcs[id.Name]
	if !ok || class == ClassConstant {
		return Constant()
	}
	for _, arg := range args {
		if aid, ok := arg.(*ast.Ident); ok {
			if sym, ok := env.Symbols[aid.Name]; ok {
				return class.bound(sym)
			}
		}
	}
	return Constant()
}
