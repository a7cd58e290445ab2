// Package fold runs semantics-directed folds over the node catalog in
// pkg/ast. An interpretation assigns one handler per construct; the
// engine walks a tree bottom-up on demand, dispatching each node to
// its handler and threading an opaque context value through statement
// sequences.
//
// # Interpretations
//
// An Interp[R] is a struct of optional handler funcs producing results
// of type R. A handler is present when its field is non-nil; there is
// no reflection and no error-driven probing. Operator constructs
// dispatch in exactly two steps: the specific handler for the node's
// operator (Add, USub, Lt, ...) wins when present, otherwise the
// family handler (BinOp, UnaryOp, Compare, BoolOp) runs with the
// operator as an argument, otherwise the fold fails with a
// MissingHandlerError naming both handlers it tried.
//
// # Views
//
// Handlers never receive folded children. They receive views: Pre
// returns the raw child without computing anything, Post folds it
// under a context of the handler's choosing. Post never memoizes; the
// result depends on the context argument, so every call recomputes.
// A handler that only inspects Pre pays nothing for subtrees it
// ignores, even ones whose constructs have no handlers.
//
// # Context
//
// The context is an arbitrary value owned by the semantics author. The
// engine passes it along unchanged and never merges or invents
// contexts. Sequencing is the Block handler's job: it alone decides
// how the context coming out of one statement feeds the next. Branch
// and expression positions receive the context as of their parent's
// entry unless the parent's handler chooses otherwise.
//
// # Carriers
//
// Apply folds an interpretation over a subject's tree and records the
// result in a Carrier under the interpretation's name. Carriers are
// themselves subjects, so applications stack; each interpretation
// still folds the pristine original tree. A carrier answers for its
// subject: Tree delegates, and Invoke delegates when the subject can
// execute.
//
//	size := &fold.Interp[int]{
//		Name: "size",
//		Num:  func(lit *ast.Num, ctx fold.Context) (int, fold.Context, error) { return 1, ctx, nil },
//		Add: func(l, r *fold.View[int], ctx fold.Context) (int, fold.Context, error) {
//			lv, _, err := l.Post(ctx)
//			if err != nil {
//				return 0, ctx, err
//			}
//			rv, _, err := r.Post(ctx)
//			return 1 + lv + rv, ctx, err
//		},
//		// ...
//	}
//	carrier, err := fold.Apply(size, subject, nil)
package fold
