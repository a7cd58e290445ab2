package fold

import "github.com/starfold-labs/starfold/pkg/ast"

// Conventional fills in pass-through defaults for the wrapper
// constructs whose conventional meaning is "the meaning of what they
// wrap": Module and FunctionDef fold their body, Return and ExprStmt
// fold their value, and a bare return yields the zero result. Only nil
// fields are filled, so explicit handlers always win.
//
// Block is deliberately never defaulted. How a sequence aggregates and
// how context flows through it is the core of an interpretation's
// semantics, so leaving it out stays an error.
func (in *Interp[R]) Conventional() *Interp[R] {
	if in.Module == nil {
		in.Module = func(_ *ast.Module, body *Body[R], ctx Context) (R, Context, error) {
			return body.Post(ctx)
		}
	}
	if in.FunctionDef == nil {
		in.FunctionDef = func(_ *ast.FunctionDef, body *Body[R], ctx Context) (R, Context, error) {
			return body.Post(ctx)
		}
	}
	if in.Return == nil {
		in.Return = func(value *View[R], ctx Context) (R, Context, error) {
			if value == nil {
				var zero R
				return zero, ctx, nil
			}
			return value.Post(ctx)
		}
	}
	if in.ExprStmt == nil {
		in.ExprStmt = func(value *View[R], ctx Context) (R, Context, error) {
			return value.Post(ctx)
		}
	}
	return in
}
