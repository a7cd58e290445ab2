package ast

// Walk traverses the tree rooted at n in preorder, calling f for each
// node. If f returns false for a node, its children are skipped. Nil
// children are never visited.
func Walk(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range children(n) {
		Walk(c, f)
	}
}

// children returns the direct child nodes of n in syntactic order.
func children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if c == nil {
			return
		}
		if b, ok := c.(*Block); ok && b == nil {
			return
		}
		out = append(out, c)
	}

	switch x := n.(type) {
	case *Module:
		add(x.Body)
	case *FunctionDef:
		for _, p := range x.Params {
			if p.Default != nil {
				add(p.Default)
			}
		}
		add(x.Body)
	case *Block:
		for _, s := range x.Stmts {
			add(s)
		}
	case *Return:
		add(x.Value)
	case *Assign:
		for _, t := range x.Targets {
			add(t)
		}
		add(x.Value)
	case *ExprStmt:
		add(x.Value)
	case *For:
		add(x.Target)
		add(x.Iter)
		add(x.Body)
		add(x.OrElse)
	case *While:
		add(x.Cond)
		add(x.Body)
		add(x.OrElse)
	case *If:
		add(x.Cond)
		add(x.Body)
		add(x.OrElse)
	case *BoolOp:
		for _, v := range x.Values {
			add(v)
		}
	case *BinOp:
		add(x.Left)
		add(x.Right)
	case *UnaryOp:
		add(x.Operand)
	case *Compare:
		add(x.Left)
		for _, c := range x.Comparators {
			add(c)
		}
	case *Call:
		add(x.Fn)
		for _, a := range x.Args {
			add(a)
		}
	case *List:
		for _, e := range x.Elts {
			add(e)
		}
	case *Tuple:
		for _, e := range x.Elts {
			add(e)
		}
	case *ListComp:
		add(x.Elt)
		for _, g := range x.Generators {
			add(g.Target)
			add(g.Iter)
			for _, cond := range g.Ifs {
				add(cond)
			}
		}
	}
	return out
}
