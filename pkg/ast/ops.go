package ast

import "fmt"

// BinOpKind enumerates the binary operators.
type BinOpKind int

const (
	Add BinOpKind = iota
	Sub
	Mult
	MatMult
	Div
	Mod
	Pow
	LShift
	RShift
	BitOr
	BitXor
	BitAnd
	FloorDiv
)

var binOpNames = map[BinOpKind]string{
	Add:      "Add",
	Sub:      "Sub",
	Mult:     "Mult",
	MatMult:  "MatMult",
	Div:      "Div",
	Mod:      "Mod",
	Pow:      "Pow",
	LShift:   "LShift",
	RShift:   "RShift",
	BitOr:    "BitOr",
	BitXor:   "BitXor",
	BitAnd:   "BitAnd",
	FloorDiv: "FloorDiv",
}

func (op BinOpKind) String() string {
	if name, ok := binOpNames[op]; ok {
		return name
	}
	return fmt.Sprintf("BinOpKind(%d)", int(op))
}

// Valid reports whether op is one of the defined binary operators.
func (op BinOpKind) Valid() bool {
	_, ok := binOpNames[op]
	return ok
}

// UnaryOpKind enumerates the unary operators.
type UnaryOpKind int

const (
	Invert UnaryOpKind = iota
	Not
	UAdd
	USub
)

var unaryOpNames = map[UnaryOpKind]string{
	Invert: "Invert",
	Not:    "Not",
	UAdd:   "UAdd",
	USub:   "USub",
}

func (op UnaryOpKind) String() string {
	if name, ok := unaryOpNames[op]; ok {
		return name
	}
	return fmt.Sprintf("UnaryOpKind(%d)", int(op))
}

// Valid reports whether op is one of the defined unary operators.
func (op UnaryOpKind) Valid() bool {
	_, ok := unaryOpNames[op]
	return ok
}

// CmpOpKind enumerates the comparison operators.
type CmpOpKind int

const (
	Eq CmpOpKind = iota
	NotEq
	Lt
	LtE
	Gt
	GtE
	Is
	IsNot
	In
	NotIn
)

var cmpOpNames = map[CmpOpKind]string{
	Eq:    "Eq",
	NotEq: "NotEq",
	Lt:    "Lt",
	LtE:   "LtE",
	Gt:    "Gt",
	GtE:   "GtE",
	Is:    "Is",
	IsNot: "IsNot",
	In:    "In",
	NotIn: "NotIn",
}

func (op CmpOpKind) String() string {
	if name, ok := cmpOpNames[op]; ok {
		return name
	}
	return fmt.Sprintf("CmpOpKind(%d)", int(op))
}

// Valid reports whether op is one of the defined comparison operators.
func (op CmpOpKind) Valid() bool {
	_, ok := cmpOpNames[op]
	return ok
}

// BoolOpKind enumerates the boolean operators.
type BoolOpKind int

const (
	And BoolOpKind = iota
	Or
)

func (op BoolOpKind) String() string {
	switch op {
	case And:
		return "And"
	case Or:
		return "Or"
	}
	return fmt.Sprintf("BoolOpKind(%d)", int(op))
}

// Valid reports whether op is one of the defined boolean operators.
func (op BoolOpKind) Valid() bool {
	return op == And || op == Or
}
