package ast

import "fmt"

// Kind identifies a node's construct.
type Kind int

const (
	KindModule Kind = iota
	KindFunctionDef
	KindBlock
	KindReturn
	KindAssign
	KindExprStmt
	KindFor
	KindWhile
	KindIf
	KindPass
	KindBreak
	KindContinue
	KindBoolOp
	KindBinOp
	KindUnaryOp
	KindCompare
	KindCall
	KindNum
	KindStr
	KindBytes
	KindNameConstant
	KindIdent
	KindList
	KindTuple
	KindListComp
)

var kindNames = map[Kind]string{
	KindModule:       "Module",
	KindFunctionDef:  "FunctionDef",
	KindBlock:        "Block",
	KindReturn:       "Return",
	KindAssign:       "Assign",
	KindExprStmt:     "ExprStmt",
	KindFor:          "For",
	KindWhile:        "While",
	KindIf:           "If",
	KindPass:         "Pass",
	KindBreak:        "Break",
	KindContinue:     "Continue",
	KindBoolOp:       "BoolOp",
	KindBinOp:        "BinOp",
	KindUnaryOp:      "UnaryOp",
	KindCompare:      "Compare",
	KindCall:         "Call",
	KindNum:          "Num",
	KindStr:          "Str",
	KindBytes:        "Bytes",
	KindNameConstant: "NameConstant",
	KindIdent:        "Ident",
	KindList:         "List",
	KindTuple:        "Tuple",
	KindListComp:     "ListComp",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Singleton enumerates the named constants None, True, and False.
type Singleton int

const (
	None Singleton = iota
	True
	False
)

func (s Singleton) String() string {
	switch s {
	case None:
		return "None"
	case True:
		return "True"
	case False:
		return "False"
	}
	return fmt.Sprintf("Singleton(%d)", int(s))
}
