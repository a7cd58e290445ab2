// Package ast defines the node catalog for the fixed Python-style
// grammar that folds operate on.
//
// The catalog is closed: every node type implements unexported marker
// methods, so no package outside this one can add kinds. Nodes carry no
// behavior beyond identifying themselves; all semantics live in the
// interpretations that fold over them. Nodes are treated as immutable
// once a provider returns them.
package ast

import "math/big"

// Node is implemented by every node in the catalog.
type Node interface {
	Kind() Kind
	node()
}

// Stmt is the interface implemented by all statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is the interface implemented by all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Module is the root of every tree handed to a fold.
type Module struct {
	Body *Block
}

func (*Module) node()      {}
func (*Module) Kind() Kind { return KindModule }

// Param is a single formal parameter of a FunctionDef. Default is nil
// when the parameter has none.
type Param struct {
	Name    string
	Default Expr
}

// FunctionDef is a named function definition.
type FunctionDef struct {
	Name   string
	Params []Param
	Body   *Block
}

func (*FunctionDef) node()      {}
func (*FunctionDef) stmtNode()  {}
func (*FunctionDef) Kind() Kind { return KindFunctionDef }

// Block is an ordered statement sequence. It is a distinct node, not a
// bare slice, so sequencing gets its own fold semantics: how results
// aggregate and how context moves from one statement to the next is
// decided by the Block handler alone.
type Block struct {
	Stmts []Stmt
}

func (*Block) node()      {}
func (*Block) Kind() Kind { return KindBlock }

// Return is a return statement. Value is nil for a bare return.
type Return struct {
	Value Expr
}

func (*Return) node()      {}
func (*Return) stmtNode()  {}
func (*Return) Kind() Kind { return KindReturn }

// Assign binds the value to one or more targets.
type Assign struct {
	Targets []Expr
	Value   Expr
}

func (*Assign) node()      {}
func (*Assign) stmtNode()  {}
func (*Assign) Kind() Kind { return KindAssign }

// ExprStmt is an expression evaluated in statement position, such as a
// docstring or a call whose result is discarded.
type ExprStmt struct {
	Value Expr
}

func (*ExprStmt) node()      {}
func (*ExprStmt) stmtNode()  {}
func (*ExprStmt) Kind() Kind { return KindExprStmt }

// For is a for loop. OrElse is the loop's else block, empty when the
// source had none.
type For struct {
	Target Expr
	Iter   Expr
	Body   *Block
	OrElse *Block
}

func (*For) node()      {}
func (*For) stmtNode()  {}
func (*For) Kind() Kind { return KindFor }

// While is a while loop. OrElse is the loop's else block, empty when
// the source had none.
type While struct {
	Cond   Expr
	Body   *Block
	OrElse *Block
}

func (*While) node()      {}
func (*While) stmtNode()  {}
func (*While) Kind() Kind { return KindWhile }

// If is a conditional statement. OrElse holds the else branch, which
// may itself start with another If when the source used elif.
type If struct {
	Cond   Expr
	Body   *Block
	OrElse *Block
}

func (*If) node()      {}
func (*If) stmtNode()  {}
func (*If) Kind() Kind { return KindIf }

// Pass is the no-op statement.
type Pass struct{}

func (*Pass) node()      {}
func (*Pass) stmtNode()  {}
func (*Pass) Kind() Kind { return KindPass }

// Break exits the innermost loop.
type Break struct{}

func (*Break) node()      {}
func (*Break) stmtNode()  {}
func (*Break) Kind() Kind { return KindBreak }

// Continue advances the innermost loop.
type Continue struct{}

func (*Continue) node()      {}
func (*Continue) stmtNode()  {}
func (*Continue) Kind() Kind { return KindContinue }

// BoolOp is an n-ary boolean operation. Chains of the same operator
// collapse into a single node, so `a and b and c` has three Values.
type BoolOp struct {
	Op     BoolOpKind
	Values []Expr
}

func (*BoolOp) node()      {}
func (*BoolOp) exprNode()  {}
func (*BoolOp) Kind() Kind { return KindBoolOp }

// BinOp is a binary arithmetic or bitwise operation.
type BinOp struct {
	Op    BinOpKind
	Left  Expr
	Right Expr
}

func (*BinOp) node()      {}
func (*BinOp) exprNode()  {}
func (*BinOp) Kind() Kind { return KindBinOp }

// UnaryOp is a unary operation.
type UnaryOp struct {
	Op      UnaryOpKind
	Operand Expr
}

func (*UnaryOp) node()      {}
func (*UnaryOp) exprNode()  {}
func (*UnaryOp) Kind() Kind { return KindUnaryOp }

// Compare is a comparison. Ops and Comparators are parallel slices;
// the grammar admits exactly one operator, and folds reject anything
// longer.
type Compare struct {
	Left        Expr
	Ops         []CmpOpKind
	Comparators []Expr
}

func (*Compare) node()      {}
func (*Compare) exprNode()  {}
func (*Compare) Kind() Kind { return KindCompare }

// Call applies Fn to positional Args.
type Call struct {
	Fn   Expr
	Args []Expr
}

func (*Call) node()      {}
func (*Call) exprNode()  {}
func (*Call) Kind() Kind { return KindCall }

// Num is a numeric literal. Value holds int64, *big.Int, or float64,
// matching the parser's representation; Raw preserves the source text.
type Num struct {
	Raw   string
	Value any
}

func (*Num) node()      {}
func (*Num) exprNode()  {}
func (*Num) Kind() Kind { return KindNum }

// IsInt reports whether the literal holds an integral value.
func (n *Num) IsInt() bool {
	switch n.Value.(type) {
	case int64, *big.Int:
		return true
	}
	return false
}

// Int64 returns the literal as an int64 when it holds an integral
// value that fits in one.
func (n *Num) Int64() (int64, bool) {
	switch v := n.Value.(type) {
	case int64:
		return v, true
	case *big.Int:
		if v.IsInt64() {
			return v.Int64(), true
		}
	}
	return 0, false
}

// Float64 returns the literal as a float64, converting integral values
// and rounding values outside float64 range.
func (n *Num) Float64() (float64, bool) {
	switch v := n.Value.(type) {
	case int64:
		return float64(v), true
	case *big.Int:
		f, _ := new(big.Float).SetInt(v).Float64()
		return f, true
	case float64:
		return v, true
	}
	return 0, false
}

// Str is a string literal.
type Str struct {
	Value string
}

func (*Str) node()      {}
func (*Str) exprNode()  {}
func (*Str) Kind() Kind { return KindStr }

// Bytes is a bytes literal.
type Bytes struct {
	Value []byte
}

func (*Bytes) node()      {}
func (*Bytes) exprNode()  {}
func (*Bytes) Kind() Kind { return KindBytes }

// NameConstant is a literal reference to one of the named constants
// None, True, or False.
type NameConstant struct {
	Value Singleton
}

func (*NameConstant) node()      {}
func (*NameConstant) exprNode()  {}
func (*NameConstant) Kind() Kind { return KindNameConstant }

// Ident is a reference to a name in expression or target position.
type Ident struct {
	Name string
}

func (*Ident) node()      {}
func (*Ident) exprNode()  {}
func (*Ident) Kind() Kind { return KindIdent }

// List is a list display.
type List struct {
	Elts []Expr
}

func (*List) node()      {}
func (*List) exprNode()  {}
func (*List) Kind() Kind { return KindList }

// Tuple is a tuple display.
type Tuple struct {
	Elts []Expr
}

func (*Tuple) node()      {}
func (*Tuple) exprNode()  {}
func (*Tuple) Kind() Kind { return KindTuple }

// Comprehension is one `for target in iter` clause of a ListComp,
// together with its trailing `if` filters.
type Comprehension struct {
	Target Expr
	Iter   Expr
	Ifs    []Expr
}

// ListComp is a list comprehension.
type ListComp struct {
	Elt        Expr
	Generators []Comprehension
}

func (*ListComp) node()      {}
func (*ListComp) exprNode()  {}
func (*ListComp) Kind() Kind { return KindListComp }
