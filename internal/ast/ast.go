package ast

import "github.com/haiman1024/Contractus/internal/lexer"

// Node represents any AST node with an associated source span.
type Node interface {
	Span() lexer.Span
}

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Decl represents a top-level item.
type Decl interface {
	Node
	declNode()
}

// TypeExpr represents a type annotation expression.
type TypeExpr interface {
	Node
	typeNode()
}

// Visibility records whether an item or field was marked `pub`.
type Visibility int

const (
	Private Visibility = iota
	Public
)

func (v Visibility) String() string {
	if v == Public {
		return "pub"
	}
	return "priv"
}

// Program represents a parsed compilation unit.
type Program struct {
	Items []Decl
	span  lexer.Span
}

// NewProgram constructs a program node with the provided span.
func NewProgram(items []Decl, span lexer.Span) *Program {
	return &Program{Items: items, span: span}
}

// Span returns the span covering the entire program.
func (p *Program) Span() lexer.Span { return p.span }

// SetSpan updates the program span.
func (p *Program) SetSpan(span lexer.Span) { p.span = span }

// Ident represents an identifier.
type Ident struct {
	Name string
	span lexer.Span
}

// NewIdent constructs an identifier node.
func NewIdent(name string, span lexer.Span) *Ident {
	return &Ident{
		Name: name,
		span: span,
	}
}

// Span returns the identifier span.
func (i *Ident) Span() lexer.Span { return i.span }

// SetSpan updates the identifier span.
func (i *Ident) SetSpan(span lexer.Span) { i.span = span }

// exprNode marks Ident as an expression.
func (*Ident) exprNode() {}
