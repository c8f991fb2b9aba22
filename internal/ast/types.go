package ast

import "github.com/haiman1024/Contractus/internal/lexer"

// PrimitiveKind enumerates the built-in scalar types.
type PrimitiveKind int

const (
	I8 PrimitiveKind = iota
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	Isize
	Usize
	F32
	F64
	Bool
	Char
	String
	Unit
)

var primitiveNames = [...]string{
	I8:     "I8",
	I16:    "I16",
	I32:    "I32",
	I64:    "I64",
	U8:     "U8",
	U16:    "U16",
	U32:    "U32",
	U64:    "U64",
	Isize:  "Isize",
	Usize:  "Usize",
	F32:    "F32",
	F64:    "F64",
	Bool:   "Bool",
	Char:   "Char",
	String: "String",
	Unit:   "Unit",
}

func (k PrimitiveKind) String() string {
	if int(k) < len(primitiveNames) {
		return primitiveNames[k]
	}
	return "Primitive(?)"
}

// PrimitiveType represents a built-in type such as i32, bool or ().
type PrimitiveType struct {
	Kind PrimitiveKind
	span lexer.Span
}

// NewPrimitiveType constructs a primitive type node.
func NewPrimitiveType(kind PrimitiveKind, span lexer.Span) *PrimitiveType {
	return &PrimitiveType{Kind: kind, span: span}
}

func (t *PrimitiveType) Span() lexer.Span        { return t.span }
func (t *PrimitiveType) SetSpan(span lexer.Span) { t.span = span }
func (*PrimitiveType) typeNode()                 {}

// NamedType represents a user-defined type referenced by name.
type NamedType struct {
	Name *Ident
	span lexer.Span
}

// NewNamedType constructs a named type node.
func NewNamedType(name *Ident, span lexer.Span) *NamedType {
	return &NamedType{Name: name, span: span}
}

func (t *NamedType) Span() lexer.Span        { return t.span }
func (t *NamedType) SetSpan(span lexer.Span) { t.span = span }
func (*NamedType) typeNode()                 {}

// GenericType represents an instantiation such as Vec<i32>.
type GenericType struct {
	Name *Ident
	Args []TypeExpr
	span lexer.Span
}

// NewGenericType constructs a generic type node.
func NewGenericType(name *Ident, args []TypeExpr, span lexer.Span) *GenericType {
	return &GenericType{Name: name, Args: args, span: span}
}

func (t *GenericType) Span() lexer.Span        { return t.span }
func (t *GenericType) SetSpan(span lexer.Span) { t.span = span }
func (*GenericType) typeNode()                 {}

// FunctionType represents fn(A, B) -> R.
type FunctionType struct {
	Params []TypeExpr
	Return TypeExpr
	span   lexer.Span
}

// NewFunctionType constructs a function type node.
func NewFunctionType(params []TypeExpr, ret TypeExpr, span lexer.Span) *FunctionType {
	return &FunctionType{Params: params, Return: ret, span: span}
}

func (t *FunctionType) Span() lexer.Span        { return t.span }
func (t *FunctionType) SetSpan(span lexer.Span) { t.span = span }
func (*FunctionType) typeNode()                 {}

// NeverType represents `!`.
type NeverType struct {
	span lexer.Span
}

func NewNeverType(span lexer.Span) *NeverType { return &NeverType{span: span} }

func (t *NeverType) Span() lexer.Span        { return t.span }
func (t *NeverType) SetSpan(span lexer.Span) { t.span = span }
func (*NeverType) typeNode()                 {}

// InferType represents the `_` placeholder.
type InferType struct {
	span lexer.Span
}

func NewInferType(span lexer.Span) *InferType { return &InferType{span: span} }

func (t *InferType) Span() lexer.Span        { return t.span }
func (t *InferType) SetSpan(span lexer.Span) { t.span = span }
func (*InferType) typeNode()                 {}
