package fold

import "github.com/starfold-labs/starfold/pkg/ast"

// View is a handler's window onto one child node. Pre returns the raw
// child and never computes anything; Post folds the child under the
// given context. Post recomputes on every call: results are a function
// of the context, so they are never cached.
type View[R any] struct {
	in   *Interp[R]
	node ast.Node
}

// Pre returns the raw child node without folding it.
func (v *View[R]) Pre() ast.Node { return v.node }

// Post folds the child under ctx and returns its result with the
// outgoing context.
func (v *View[R]) Post(ctx Context) (R, Context, error) {
	return v.in.Fold(v.node, ctx)
}

// ExprList is a handler's window onto an ordered list of expression
// children, such as call arguments or list elements.
type ExprList[R any] struct {
	in    *Interp[R]
	exprs []ast.Expr
}

// Pre returns the raw expressions without folding them.
func (l *ExprList[R]) Pre() []ast.Expr { return l.exprs }

// Len returns the number of expressions in the list.
func (l *ExprList[R]) Len() int { return len(l.exprs) }

// Post folds every expression under the same incoming context and
// returns the results in order. Expression positions never thread
// context between siblings; outgoing contexts are discarded.
func (l *ExprList[R]) Post(ctx Context) ([]R, error) {
	out := make([]R, len(l.exprs))
	for i, e := range l.exprs {
		r, _, err := l.in.Fold(e, ctx)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

// Body is a handler's window onto a statement sequence child. Post
// folds the sequence through the Block handler, which controls both
// aggregation and context threading. A source construct without a
// block (a loop with no else, say) is represented as an empty one.
type Body[R any] struct {
	in    *Interp[R]
	block *ast.Block
}

// Pre returns the raw statements without folding them.
func (b *Body[R]) Pre() []ast.Stmt { return b.block.Stmts }

// Post folds the sequence under ctx via the Block handler.
func (b *Body[R]) Post(ctx Context) (R, Context, error) {
	return b.in.Fold(b.block, ctx)
}

// CompView is the view of one comprehension clause: its loop target,
// its iterable, and its filters.
type CompView[R any] struct {
	Target *View[R]
	Iter   *View[R]
	Ifs    *ExprList[R]
}

func (in *Interp[R]) view(n ast.Node) *View[R] {
	return &View[R]{in: in, node: n}
}

func (in *Interp[R]) exprList(es []ast.Expr) *ExprList[R] {
	return &ExprList[R]{in: in, exprs: es}
}

func (in *Interp[R]) bodyView(b *ast.Block) *Body[R] {
	if b == nil {
		b = &ast.Block{}
	}
	return &Body[R]{in: in, block: b}
}
