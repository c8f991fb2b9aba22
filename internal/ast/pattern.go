package ast

import "github.com/haiman1024/Contractus/internal/lexer"

// Pattern represents a pattern in let bindings, parameters, for loops and match arms.
type Pattern interface {
	Node
	patternNode()
}

// PatternWild represents the `_` wildcard.
type PatternWild struct {
	span lexer.Span
}

// NewPatternWild constructs a wildcard pattern.
func NewPatternWild(span lexer.Span) *PatternWild {
	return &PatternWild{span: span}
}

// Span returns the wildcard span.
func (p *PatternWild) Span() lexer.Span { return p.span }

// SetSpan updates the wildcard span.
func (p *PatternWild) SetSpan(span lexer.Span) { p.span = span }

func (*PatternWild) patternNode() {}

// PatternIdent represents an identifier binding (`foo`, `mut foo`).
type PatternIdent struct {
	Name    *Ident
	Mutable bool
	span    lexer.Span
}

// NewPatternIdent constructs an identifier pattern.
func NewPatternIdent(name *Ident, mutable bool, span lexer.Span) *PatternIdent {
	return &PatternIdent{
		Name:    name,
		Mutable: mutable,
		span:    span,
	}
}

// Span returns the identifier span.
func (p *PatternIdent) Span() lexer.Span { return p.span }

// SetSpan updates the identifier span.
func (p *PatternIdent) SetSpan(span lexer.Span) { p.span = span }

func (*PatternIdent) patternNode() {}

// PatternLiteral matches a literal value. Value is an *IntegerLit, *BoolLit,
// *CharLit, *StringLit, or a negated *IntegerLit.
type PatternLiteral struct {
	Value Expr
	span  lexer.Span
}

// NewPatternLiteral constructs a literal pattern.
func NewPatternLiteral(value Expr, span lexer.Span) *PatternLiteral {
	return &PatternLiteral{
		Value: value,
		span:  span,
	}
}

// Span returns the literal span.
func (p *PatternLiteral) Span() lexer.Span { return p.span }

// SetSpan updates the literal span.
func (p *PatternLiteral) SetSpan(span lexer.Span) { p.span = span }

func (*PatternLiteral) patternNode() {}

// PatternTuple represents `(p1, p2, ...)`.
type PatternTuple struct {
	Elements []Pattern
	span     lexer.Span
}

// NewPatternTuple constructs a tuple pattern.
func NewPatternTuple(elements []Pattern, span lexer.Span) *PatternTuple {
	return &PatternTuple{
		Elements: elements,
		span:     span,
	}
}

// Span returns the tuple pattern span.
func (p *PatternTuple) Span() lexer.Span { return p.span }

// SetSpan updates the tuple pattern span.
func (p *PatternTuple) SetSpan(span lexer.Span) { p.span = span }

func (*PatternTuple) patternNode() {}

// PatternTupleStruct represents a constructor pattern such as `Some(x)`.
type PatternTupleStruct struct {
	Name     *Ident
	Elements []Pattern
	span     lexer.Span
}

// NewPatternTupleStruct constructs a tuple-struct pattern.
func NewPatternTupleStruct(name *Ident, elements []Pattern, span lexer.Span) *PatternTupleStruct {
	return &PatternTupleStruct{
		Name:     name,
		Elements: elements,
		span:     span,
	}
}

// Span returns the pattern span.
func (p *PatternTupleStruct) Span() lexer.Span { return p.span }

// SetSpan updates the pattern span.
func (p *PatternTupleStruct) SetSpan(span lexer.Span) { p.span = span }

func (*PatternTupleStruct) patternNode() {}

// PatternStructField represents `field: pattern` inside a struct pattern. A bare
// field name is shorthand for binding an identifier of the same name.
type PatternStructField struct {
	Name      *Ident
	Pattern   Pattern
	Shorthand bool
	span      lexer.Span
}

// NewPatternStructField constructs a struct pattern field.
func NewPatternStructField(name *Ident, pat Pattern, shorthand bool, span lexer.Span) *PatternStructField {
	return &PatternStructField{
		Name:      name,
		Pattern:   pat,
		Shorthand: shorthand,
		span:      span,
	}
}

// Span returns the field span.
func (f *PatternStructField) Span() lexer.Span { return f.span }

// SetSpan updates the field span.
func (f *PatternStructField) SetSpan(span lexer.Span) { f.span = span }

// PatternStruct represents `Name { field: pat, other }`.
type PatternStruct struct {
	Name   *Ident
	Fields []*PatternStructField
	span   lexer.Span
}

// NewPatternStruct constructs a struct pattern.
func NewPatternStruct(name *Ident, fields []*PatternStructField, span lexer.Span) *PatternStruct {
	return &PatternStruct{
		Name:   name,
		Fields: fields,
		span:   span,
	}
}

// Span returns the struct pattern span.
func (p *PatternStruct) Span() lexer.Span { return p.span }

// SetSpan updates the struct pattern span.
func (p *PatternStruct) SetSpan(span lexer.Span) { p.span = span }

func (*PatternStruct) patternNode() {}

// PatternOr represents `p1 | p2 | ...`.
type PatternOr struct {
	Alternatives []Pattern
	span         lexer.Span
}

// NewPatternOr constructs an or-pattern.
func NewPatternOr(alternatives []Pattern, span lexer.Span) *PatternOr {
	return &PatternOr{
		Alternatives: alternatives,
		span:         span,
	}
}

// Span returns the or-pattern span.
func (p *PatternOr) Span() lexer.Span { return p.span }

// SetSpan updates the or-pattern span.
func (p *PatternOr) SetSpan(span lexer.Span) { p.span = span }

func (*PatternOr) patternNode() {}
