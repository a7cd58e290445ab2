package source

import (
	"go.starlark.net/syntax"

	"github.com/starfold-labs/starfold/pkg/ast"
)

// convert maps the starlark syntax tree onto the fixed grammar in
// pkg/ast. Anything the grammar has no node for fails with an
// UnsupportedError naming the construct and its position.

func convertFile(f *syntax.File) (*ast.Module, error) {
	body, err := convertStmts(f.Stmts)
	if err != nil {
		return nil, err
	}
	return &ast.Module{Body: body}, nil
}

func convertStmts(stmts []syntax.Stmt) (*ast.Block, error) {
	out := &ast.Block{Stmts: make([]ast.Stmt, 0, len(stmts))}
	for _, s := range stmts {
		conv, err := convertStmt(s)
		if err != nil {
			return nil, err
		}
		out.Stmts = append(out.Stmts, conv)
	}
	return out, nil
}

func convertStmt(s syntax.Stmt) (ast.Stmt, error) {
	switch x := s.(type) {
	case *syntax.DefStmt:
		return convertDef(x)

	case *syntax.AssignStmt:
		return convertAssign(x)

	case *syntax.ReturnStmt:
		var value ast.Expr
		if x.Result != nil {
			var err error
			value, err = convertExpr(x.Result)
			if err != nil {
				return nil, err
			}
		}
		return &ast.Return{Value: value}, nil

	case *syntax.ExprStmt:
		value, err := convertExpr(x.X)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Value: value}, nil

	case *syntax.BranchStmt:
		switch x.Token {
		case syntax.PASS:
			return &ast.Pass{}, nil
		case syntax.BREAK:
			return &ast.Break{}, nil
		case syntax.CONTINUE:
			return &ast.Continue{}, nil
		}
		return nil, unsupported(s, "branch statement "+x.Token.String())

	case *syntax.ForStmt:
		target, err := convertExpr(x.Vars)
		if err != nil {
			return nil, err
		}
		iter, err := convertExpr(x.X)
		if err != nil {
			return nil, err
		}
		body, err := convertStmts(x.Body)
		if err != nil {
			return nil, err
		}
		return &ast.For{Target: target, Iter: iter, Body: body, OrElse: &ast.Block{}}, nil

	case *syntax.WhileStmt:
		cond, err := convertExpr(x.Cond)
		if err != nil {
			return nil, err
		}
		body, err := convertStmts(x.Body)
		if err != nil {
			return nil, err
		}
		return &ast.While{Cond: cond, Body: body, OrElse: &ast.Block{}}, nil

	case *syntax.IfStmt:
		cond, err := convertExpr(x.Cond)
		if err != nil {
			return nil, err
		}
		body, err := convertStmts(x.True)
		if err != nil {
			return nil, err
		}
		orelse, err := convertStmts(x.False)
		if err != nil {
			return nil, err
		}
		return &ast.If{Cond: cond, Body: body, OrElse: orelse}, nil

	case *syntax.LoadStmt:
		return nil, unsupported(s, "load statement")
	}
	return nil, unsupported(s, "statement")
}

func convertDef(def *syntax.DefStmt) (*ast.FunctionDef, error) {
	params := make([]ast.Param, 0, len(def.Params))
	for _, p := range def.Params {
		switch param := p.(type) {
		case *syntax.Ident:
			params = append(params, ast.Param{Name: param.Name})
		case *syntax.BinaryExpr:
			// def f(x=1)
			ident, ok := param.X.(*syntax.Ident)
			if param.Op != syntax.EQ || !ok {
				return nil, unsupported(p, "parameter form")
			}
			dflt, err := convertExpr(param.Y)
			if err != nil {
				return nil, err
			}
			params = append(params, ast.Param{Name: ident.Name, Default: dflt})
		case *syntax.UnaryExpr:
			return nil, unsupported(p, "star parameter")
		default:
			return nil, unsupported(p, "parameter form")
		}
	}
	body, err := convertStmts(def.Body)
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDef{Name: def.Name.Name, Params: params, Body: body}, nil
}

// augmentedOps maps augmented-assignment tokens to the binary operator
// they desugar into: target <op>= value becomes target = target <op> value.
var augmentedOps = map[syntax.Token]ast.BinOpKind{
	syntax.PLUS_EQ:       ast.Add,
	syntax.MINUS_EQ:      ast.Sub,
	syntax.STAR_EQ:       ast.Mult,
	syntax.SLASH_EQ:      ast.Div,
	syntax.SLASHSLASH_EQ: ast.FloorDiv,
	syntax.PERCENT_EQ:    ast.Mod,
	syntax.AMP_EQ:        ast.BitAnd,
	syntax.PIPE_EQ:       ast.BitOr,
	syntax.CIRCUMFLEX_EQ: ast.BitXor,
	syntax.LTLT_EQ:       ast.LShift,
	syntax.GTGT_EQ:       ast.RShift,
}

func convertAssign(x *syntax.AssignStmt) (ast.Stmt, error) {
	target, err := convertExpr(x.LHS)
	if err != nil {
		return nil, err
	}
	value, err := convertExpr(x.RHS)
	if err != nil {
		return nil, err
	}
	if x.Op == syntax.EQ {
		return &ast.Assign{Targets: []ast.Expr{target}, Value: value}, nil
	}
	op, ok := augmentedOps[x.Op]
	if !ok {
		return nil, unsupported(x, "assignment operator "+x.Op.String())
	}
	// Conversion is pure, so the target doubles as the left operand.
	operand, err := convertExpr(x.LHS)
	if err != nil {
		return nil, err
	}
	return &ast.Assign{
		Targets: []ast.Expr{target},
		Value:   &ast.BinOp{Op: op, Left: operand, Right: value},
	}, nil
}

var binaryOps = map[syntax.Token]ast.BinOpKind{
	syntax.PLUS:       ast.Add,
	syntax.MINUS:      ast.Sub,
	syntax.STAR:       ast.Mult,
	syntax.SLASH:      ast.Div,
	syntax.SLASHSLASH: ast.FloorDiv,
	syntax.PERCENT:    ast.Mod,
	syntax.STARSTAR:   ast.Pow,
	syntax.LTLT:       ast.LShift,
	syntax.GTGT:       ast.RShift,
	syntax.PIPE:       ast.BitOr,
	syntax.CIRCUMFLEX: ast.BitXor,
	syntax.AMP:        ast.BitAnd,
}

var compareOps = map[syntax.Token]ast.CmpOpKind{
	syntax.EQL:    ast.Eq,
	syntax.NEQ:    ast.NotEq,
	syntax.LT:     ast.Lt,
	syntax.LE:     ast.LtE,
	syntax.GT:     ast.Gt,
	syntax.GE:     ast.GtE,
	syntax.IN:     ast.In,
	syntax.NOT_IN: ast.NotIn,
}

func convertExpr(e syntax.Expr) (ast.Expr, error) {
	switch x := e.(type) {
	case *syntax.ParenExpr:
		return convertExpr(x.X)

	case *syntax.Ident:
		switch x.Name {
		case "None":
			return &ast.NameConstant{Value: ast.None}, nil
		case "True":
			return &ast.NameConstant{Value: ast.True}, nil
		case "False":
			return &ast.NameConstant{Value: ast.False}, nil
		}
		return &ast.Ident{Name: x.Name}, nil

	case *syntax.Literal:
		switch x.Token {
		case syntax.INT, syntax.FLOAT:
			return &ast.Num{Raw: x.Raw, Value: x.Value}, nil
		case syntax.STRING:
			return &ast.Str{Value: x.Value.(string)}, nil
		case syntax.BYTES:
			return &ast.Bytes{Value: []byte(x.Value.(string))}, nil
		}
		return nil, unsupported(e, "literal "+x.Token.String())

	case *syntax.BinaryExpr:
		return convertBinary(x)

	case *syntax.UnaryExpr:
		var op ast.UnaryOpKind
		switch x.Op {
		case syntax.NOT:
			op = ast.Not
		case syntax.MINUS:
			op = ast.USub
		case syntax.PLUS:
			op = ast.UAdd
		case syntax.TILDE:
			op = ast.Invert
		default:
			return nil, unsupported(e, "unary operator "+x.Op.String())
		}
		operand, err := convertExpr(x.X)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: op, Operand: operand}, nil

	case *syntax.CallExpr:
		return convertCall(x)

	case *syntax.ListExpr:
		elts, err := convertExprs(x.List)
		if err != nil {
			return nil, err
		}
		return &ast.List{Elts: elts}, nil

	case *syntax.TupleExpr:
		elts, err := convertExprs(x.List)
		if err != nil {
			return nil, err
		}
		return &ast.Tuple{Elts: elts}, nil

	case *syntax.Comprehension:
		return convertComprehension(x)

	case *syntax.CondExpr:
		return nil, unsupported(e, "conditional expression")
	case *syntax.DictExpr:
		return nil, unsupported(e, "dict literal")
	case *syntax.DotExpr:
		return nil, unsupported(e, "attribute access")
	case *syntax.IndexExpr:
		return nil, unsupported(e, "index expression")
	case *syntax.SliceExpr:
		return nil, unsupported(e, "slice expression")
	case *syntax.LambdaExpr:
		return nil, unsupported(e, "lambda expression")
	}
	return nil, unsupported(e, "expression")
}

func convertBinary(x *syntax.BinaryExpr) (ast.Expr, error) {
	if op, ok := binaryOps[x.Op]; ok {
		left, err := convertExpr(x.X)
		if err != nil {
			return nil, err
		}
		right, err := convertExpr(x.Y)
		if err != nil {
			return nil, err
		}
		return &ast.BinOp{Op: op, Left: left, Right: right}, nil
	}

	if op, ok := compareOps[x.Op]; ok {
		left, err := convertExpr(x.X)
		if err != nil {
			return nil, err
		}
		right, err := convertExpr(x.Y)
		if err != nil {
			return nil, err
		}
		return &ast.Compare{Left: left, Ops: []ast.CmpOpKind{op}, Comparators: []ast.Expr{right}}, nil
	}

	if x.Op == syntax.AND || x.Op == syntax.OR {
		op := ast.And
		if x.Op == syntax.OR {
			op = ast.Or
		}
		left, err := convertExpr(x.X)
		if err != nil {
			return nil, err
		}
		right, err := convertExpr(x.Y)
		if err != nil {
			return nil, err
		}
		// The parser is left-associative, so `a and b and c` arrives as
		// (a and b) and c. Chains of one operator collapse into a
		// single n-ary node.
		if chain, ok := left.(*ast.BoolOp); ok && chain.Op == op {
			chain.Values = append(chain.Values, right)
			return chain, nil
		}
		return &ast.BoolOp{Op: op, Values: []ast.Expr{left, right}}, nil
	}

	return nil, unsupported(x, "binary operator "+x.Op.String())
}

func convertCall(x *syntax.CallExpr) (ast.Expr, error) {
	fn, err := convertExpr(x.Fn)
	if err != nil {
		return nil, err
	}
	args := make([]ast.Expr, 0, len(x.Args))
	for _, a := range x.Args {
		if bin, ok := a.(*syntax.BinaryExpr); ok && bin.Op == syntax.EQ {
			return nil, unsupported(a, "keyword argument")
		}
		if un, ok := a.(*syntax.UnaryExpr); ok && (un.Op == syntax.STAR || un.Op == syntax.STARSTAR) {
			return nil, unsupported(a, "star argument")
		}
		arg, err := convertExpr(a)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return &ast.Call{Fn: fn, Args: args}, nil
}

func convertComprehension(x *syntax.Comprehension) (ast.Expr, error) {
	if x.Curly {
		return nil, unsupported(x, "dict or set comprehension")
	}
	elt, err := convertExpr(x.Body)
	if err != nil {
		return nil, err
	}
	var generators []ast.Comprehension
	for _, clause := range x.Clauses {
		switch c := clause.(type) {
		case *syntax.ForClause:
			target, err := convertExpr(c.Vars)
			if err != nil {
				return nil, err
			}
			iter, err := convertExpr(c.X)
			if err != nil {
				return nil, err
			}
			generators = append(generators, ast.Comprehension{Target: target, Iter: iter})
		case *syntax.IfClause:
			if len(generators) == 0 {
				return nil, unsupported(clause, "comprehension filter before generator")
			}
			cond, err := convertExpr(c.Cond)
			if err != nil {
				return nil, err
			}
			last := &generators[len(generators)-1]
			last.Ifs = append(last.Ifs, cond)
		default:
			return nil, unsupported(clause, "comprehension clause")
		}
	}
	return &ast.ListComp{Elt: elt, Generators: generators}, nil
}

func convertExprs(es []syntax.Expr) ([]ast.Expr, error) {
	out := make([]ast.Expr, len(es))
	for i, e := range es {
		conv, err := convertExpr(e)
		if err != nil {
			return nil, err
		}
		out[i] = conv
	}
	return out, nil
}

func unsupported(n syntax.Node, construct string) error {
	start, _ := n.Span()
	return &UnsupportedError{Construct: construct, Pos: start}
}
