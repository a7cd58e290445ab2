package analyses

import (
	"github.com/starfold-labs/starfold/pkg/ast"
	"github.com/starfold-labs/starfold/pkg/fold"
)

func init() {
	Register(Analysis{
		Name:  "typecheck",
		Doc:   "Propagates simple type tags; mismatches tag as Error.",
		Build: plain(Typecheck()),
	})
}

// TypeTag is the abstract type a typecheck fold assigns to a subtree.
type TypeTag string

const (
	TagInt     TypeTag = "Int"
	TagFloat   TypeTag = "Float"
	TagBool    TypeTag = "Bool"
	TagStr     TypeTag = "Str"
	TagBytes   TypeTag = "Bytes"
	TagNone    TypeTag = "None"
	TagList    TypeTag = "List"
	TagTuple   TypeTag = "Tuple"
	TagError   TypeTag = "Error"
	TagUnknown TypeTag = "Unknown"
)

// Typecheck returns the type-tagging interpretation. Integer
// arithmetic propagates Int; boolean operators demand Bool operands;
// comparisons yield Bool; anything inconsistent tags as Error.
func Typecheck() *fold.Interp[TypeTag] {
	in := &fold.Interp[TypeTag]{Name: "typecheck"}

	intPair := func(left, right *fold.View[TypeTag], ctx fold.Context) (TypeTag, fold.Context, error) {
		l, _, err := left.Post(ctx)
		if err != nil {
			return TagError, ctx, err
		}
		r, _, err := right.Post(ctx)
		if err != nil {
			return TagError, ctx, err
		}
		if l == TagInt && r == TagInt {
			return TagInt, ctx, nil
		}
		return TagError, ctx, nil
	}

	in.Block = func(stmts []*fold.View[TypeTag], ctx fold.Context) (TypeTag, fold.Context, error) {
		result := TagNone
		for _, v := range stmts {
			tag, out, err := v.Post(ctx)
			if err != nil {
				return TagError, ctx, err
			}
			ctx = out
			result = joinTags(result, tag)
		}
		return result, ctx, nil
	}
	in.Assign = func(_ *fold.ExprList[TypeTag], value *fold.View[TypeTag], ctx fold.Context) (TypeTag, fold.Context, error) {
		tag, _, err := value.Post(ctx)
		if err != nil {
			return TagError, ctx, err
		}
		if tag == TagError {
			return TagError, ctx, nil
		}
		return TagNone, ctx, nil
	}
	none := func(ctx fold.Context) (TypeTag, fold.Context, error) { return TagNone, ctx, nil }
	in.Pass, in.Break, in.Continue = none, none, none
	in.If = func(cond *fold.View[TypeTag], body, orelse *fold.Body[TypeTag], ctx fold.Context) (TypeTag, fold.Context, error) {
		return branchTags(cond, body, orelse, ctx)
	}
	in.While = func(cond *fold.View[TypeTag], body, orelse *fold.Body[TypeTag], ctx fold.Context) (TypeTag, fold.Context, error) {
		return branchTags(cond, body, orelse, ctx)
	}
	in.For = func(_, iter *fold.View[TypeTag], body, orelse *fold.Body[TypeTag], ctx fold.Context) (TypeTag, fold.Context, error) {
		if tag, _, err := iter.Post(ctx); err != nil {
			return TagError, ctx, err
		} else if tag == TagError {
			return TagError, ctx, nil
		}
		b, _, err := body.Post(ctx)
		if err != nil {
			return TagError, ctx, err
		}
		o, _, err := orelse.Post(ctx)
		if err != nil {
			return TagError, ctx, err
		}
		return joinTags(b, o), ctx, nil
	}

	// Integer arithmetic propagates Int through the operators the
	// checker understands; the family handler covers the rest.
	in.Add, in.Sub, in.Mult = intPair, intPair, intPair
	in.BinOp = func(_ ast.BinOpKind, left, right *fold.View[TypeTag], ctx fold.Context) (TypeTag, fold.Context, error) {
		return intPair(left, right, ctx)
	}
	in.USub = func(operand *fold.View[TypeTag], ctx fold.Context) (TypeTag, fold.Context, error) {
		tag, _, err := operand.Post(ctx)
		if err != nil {
			return TagError, ctx, err
		}
		if tag == TagInt {
			return TagInt, ctx, nil
		}
		return TagError, ctx, nil
	}
	in.Not = func(operand *fold.View[TypeTag], ctx fold.Context) (TypeTag, fold.Context, error) {
		tag, _, err := operand.Post(ctx)
		if err != nil {
			return TagError, ctx, err
		}
		if tag == TagBool {
			return TagBool, ctx, nil
		}
		return TagError, ctx, nil
	}
	in.UnaryOp = func(_ ast.UnaryOpKind, operand *fold.View[TypeTag], ctx fold.Context) (TypeTag, fold.Context, error) {
		tag, _, err := operand.Post(ctx)
		if err != nil {
			return TagError, ctx, err
		}
		if tag == TagInt {
			return TagInt, ctx, nil
		}
		return TagError, ctx, nil
	}
	in.BoolOp = func(_ ast.BoolOpKind, values *fold.ExprList[TypeTag], ctx fold.Context) (TypeTag, fold.Context, error) {
		tags, err := values.Post(ctx)
		if err != nil {
			return TagError, ctx, err
		}
		for _, tag := range tags {
			if tag != TagBool {
				return TagError, ctx, nil
			}
		}
		return TagBool, ctx, nil
	}
	in.Compare = func(_ ast.CmpOpKind, left, right *fold.View[TypeTag], ctx fold.Context) (TypeTag, fold.Context, error) {
		l, _, err := left.Post(ctx)
		if err != nil {
			return TagError, ctx, err
		}
		r, _, err := right.Post(ctx)
		if err != nil {
			return TagError, ctx, err
		}
		if l == TagError || r == TagError {
			return TagError, ctx, nil
		}
		return TagBool, ctx, nil
	}

	in.Num = func(lit *ast.Num, ctx fold.Context) (TypeTag, fold.Context, error) {
		if lit.IsInt() {
			return TagInt, ctx, nil
		}
		return TagFloat, ctx, nil
	}
	in.Str = func(_ *ast.Str, ctx fold.Context) (TypeTag, fold.Context, error) { return TagStr, ctx, nil }
	in.Bytes = func(_ *ast.Bytes, ctx fold.Context) (TypeTag, fold.Context, error) { return TagBytes, ctx, nil }
	in.NameConstant = func(lit *ast.NameConstant, ctx fold.Context) (TypeTag, fold.Context, error) {
		if lit.Value == ast.None {
			return TagNone, ctx, nil
		}
		return TagBool, ctx, nil
	}
	in.Ident = func(_ *ast.Ident, ctx fold.Context) (TypeTag, fold.Context, error) { return TagUnknown, ctx, nil }

	in.Call = func(_ *fold.View[TypeTag], args *fold.ExprList[TypeTag], ctx fold.Context) (TypeTag, fold.Context, error) {
		tags, err := args.Post(ctx)
		if err != nil {
			return TagError, ctx, err
		}
		for _, tag := range tags {
			if tag == TagError {
				return TagError, ctx, nil
			}
		}
		return TagUnknown, ctx, nil
	}
	in.List = func(elts *fold.ExprList[TypeTag], ctx fold.Context) (TypeTag, fold.Context, error) {
		return displayTag(TagList, elts, ctx)
	}
	in.Tuple = func(elts *fold.ExprList[TypeTag], ctx fold.Context) (TypeTag, fold.Context, error) {
		return displayTag(TagTuple, elts, ctx)
	}
	in.ListComp = func(elt *fold.View[TypeTag], _ []fold.CompView[TypeTag], ctx fold.Context) (TypeTag, fold.Context, error) {
		tag, _, err := elt.Post(ctx)
		if err != nil {
			return TagError, ctx, err
		}
		if tag == TagError {
			return TagError, ctx, nil
		}
		return TagList, ctx, nil
	}

	return in.Conventional()
}

// joinTags merges the tags of sibling statements: None is neutral,
// agreement keeps the tag, disagreement is an Error.
func joinTags(a, b TypeTag) TypeTag {
	switch {
	case a == TagError || b == TagError:
		return TagError
	case a == TagNone:
		return b
	case b == TagNone:
		return a
	case a == b:
		return a
	}
	return TagError
}

func branchTags(cond *fold.View[TypeTag], body, orelse *fold.Body[TypeTag], ctx fold.Context) (TypeTag, fold.Context, error) {
	if tag, _, err := cond.Post(ctx); err != nil {
		return TagError, ctx, err
	} else if tag == TagError {
		return TagError, ctx, nil
	}
	b, _, err := body.Post(ctx)
	if err != nil {
		return TagError, ctx, err
	}
	o, _, err := orelse.Post(ctx)
	if err != nil {
		return TagError, ctx, err
	}
	return joinTags(b, o), ctx, nil
}

func displayTag(tag TypeTag, elts *fold.ExprList[TypeTag], ctx fold.Context) (TypeTag, fold.Context, error) {
	tags, err := elts.Post(ctx)
	if err != nil {
		return TagError, ctx, err
	}
	for _, t := range tags {
		if t == TagError {
			return TagError, ctx, nil
		}
	}
	return tag, ctx, nil
}
