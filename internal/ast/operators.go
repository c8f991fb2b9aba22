package ast

// BinaryOp identifies an infix operator.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNotEq
	OpLess
	OpGreater
	OpLessEq
	OpGreaterEq
	OpAnd
	OpOr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
)

var binaryOpNames = [...]string{
	OpAdd:       "Add",
	OpSub:       "Sub",
	OpMul:       "Mul",
	OpDiv:       "Div",
	OpMod:       "Mod",
	OpEq:        "Eq",
	OpNotEq:     "NotEq",
	OpLess:      "Less",
	OpGreater:   "Greater",
	OpLessEq:    "LessEq",
	OpGreaterEq: "GreaterEq",
	OpAnd:       "And",
	OpOr:        "Or",
	OpBitAnd:    "BitAnd",
	OpBitOr:     "BitOr",
	OpBitXor:    "BitXor",
	OpShl:       "Shl",
	OpShr:       "Shr",
}

var binaryOpSymbols = [...]string{
	OpAdd:       "+",
	OpSub:       "-",
	OpMul:       "*",
	OpDiv:       "/",
	OpMod:       "%",
	OpEq:        "==",
	OpNotEq:     "!=",
	OpLess:      "<",
	OpGreater:   ">",
	OpLessEq:    "<=",
	OpGreaterEq: ">=",
	OpAnd:       "&&",
	OpOr:        "||",
	OpBitAnd:    "&",
	OpBitOr:     "|",
	OpBitXor:    "^",
	OpShl:       "<<",
	OpShr:       ">>",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "BinaryOp(?)"
}

// Symbol returns the operator as written in source.
func (op BinaryOp) Symbol() string {
	if int(op) < len(binaryOpSymbols) {
		return binaryOpSymbols[op]
	}
	return "?"
}

// UnaryOp identifies a prefix operator.
type UnaryOp int

const (
	OpNeg    UnaryOp = iota // -x
	OpNot                   // !x
	OpBitNot                // ~x
	OpDeref                 // *x
	OpRef                   // &x
	OpRefMut                // &mut x
)

var unaryOpNames = [...]string{
	OpNeg:    "Neg",
	OpNot:    "Not",
	OpBitNot: "BitNot",
	OpDeref:  "Deref",
	OpRef:    "Ref",
	OpRefMut: "RefMut",
}

func (op UnaryOp) String() string {
	if int(op) < len(unaryOpNames) {
		return unaryOpNames[op]
	}
	return "UnaryOp(?)"
}
