package ast

import "github.com/haiman1024/Contractus/internal/lexer"

// FnDecl represents a function declaration.
type FnDecl struct {
	Visibility Visibility
	Name       *Ident
	Generics   *Generics
	Params     []*Param
	ReturnType TypeExpr
	Body       *BlockExpr
	span       lexer.Span
}

// NewFnDecl constructs a function declaration node.
func NewFnDecl(vis Visibility, name *Ident, generics *Generics, params []*Param, returnType TypeExpr, body *BlockExpr, span lexer.Span) *FnDecl {
	return &FnDecl{
		Visibility: vis,
		Name:       name,
		Generics:   generics,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
		span:       span,
	}
}

// Span returns the declaration span.
func (d *FnDecl) Span() lexer.Span { return d.span }

// SetSpan updates the function declaration span.
func (d *FnDecl) SetSpan(span lexer.Span) { d.span = span }

// declNode marks FnDecl as a declaration.
func (*FnDecl) declNode() {}

// Param represents a function or closure parameter. Type is nil for closure
// parameters written without an annotation.
type Param struct {
	Pattern Pattern
	Type    TypeExpr
	span    lexer.Span
}

// NewParam constructs a parameter node.
func NewParam(pat Pattern, typ TypeExpr, span lexer.Span) *Param {
	return &Param{
		Pattern: pat,
		Type:    typ,
		span:    span,
	}
}

// Span returns the parameter span.
func (p *Param) Span() lexer.Span { return p.span }

// SetSpan updates the parameter span.
func (p *Param) SetSpan(span lexer.Span) { p.span = span }

// Generics represents a `<T: A + B, U>` parameter list.
type Generics struct {
	Params []*GenericParam
	span   lexer.Span
}

// NewGenerics constructs a generic parameter list.
func NewGenerics(params []*GenericParam, span lexer.Span) *Generics {
	return &Generics{Params: params, span: span}
}

// Span returns the generics span.
func (g *Generics) Span() lexer.Span { return g.span }

// SetSpan updates the generics span.
func (g *Generics) SetSpan(span lexer.Span) { g.span = span }

// GenericParam represents a single type parameter with its trait bounds.
type GenericParam struct {
	Name   *Ident
	Bounds []*Ident
	span   lexer.Span
}

// NewGenericParam constructs a generic parameter.
func NewGenericParam(name *Ident, bounds []*Ident, span lexer.Span) *GenericParam {
	return &GenericParam{
		Name:   name,
		Bounds: bounds,
		span:   span,
	}
}

// Span returns the parameter span.
func (g *GenericParam) Span() lexer.Span { return g.span }

// SetSpan updates the parameter span.
func (g *GenericParam) SetSpan(span lexer.Span) { g.span = span }

// StructDecl represents a struct declaration.
type StructDecl struct {
	Visibility Visibility
	Name       *Ident
	Generics   *Generics
	Fields     []*StructField
	span       lexer.Span
}

// NewStructDecl constructs a struct declaration node.
func NewStructDecl(vis Visibility, name *Ident, generics *Generics, fields []*StructField, span lexer.Span) *StructDecl {
	return &StructDecl{
		Visibility: vis,
		Name:       name,
		Generics:   generics,
		Fields:     fields,
		span:       span,
	}
}

// Span returns the declaration span.
func (d *StructDecl) Span() lexer.Span { return d.span }

// SetSpan updates the struct declaration span.
func (d *StructDecl) SetSpan(span lexer.Span) { d.span = span }

// declNode marks StructDecl as a declaration.
func (*StructDecl) declNode() {}

// StructField represents a named struct field.
type StructField struct {
	Visibility Visibility
	Name       *Ident
	Type       TypeExpr
	span       lexer.Span
}

// NewStructField constructs a struct field node.
func NewStructField(vis Visibility, name *Ident, typ TypeExpr, span lexer.Span) *StructField {
	return &StructField{
		Visibility: vis,
		Name:       name,
		Type:       typ,
		span:       span,
	}
}

// Span returns the field span.
func (f *StructField) Span() lexer.Span { return f.span }

// SetSpan updates the field span.
func (f *StructField) SetSpan(span lexer.Span) { f.span = span }

// EnumDecl represents an enum declaration.
type EnumDecl struct {
	Visibility Visibility
	Name       *Ident
	Generics   *Generics
	Variants   []*EnumVariant
	span       lexer.Span
}

// NewEnumDecl constructs an enum declaration node.
func NewEnumDecl(vis Visibility, name *Ident, generics *Generics, variants []*EnumVariant, span lexer.Span) *EnumDecl {
	return &EnumDecl{
		Visibility: vis,
		Name:       name,
		Generics:   generics,
		Variants:   variants,
		span:       span,
	}
}

// Span returns the declaration span.
func (d *EnumDecl) Span() lexer.Span { return d.span }

// SetSpan updates the enum declaration span.
func (d *EnumDecl) SetSpan(span lexer.Span) { d.span = span }

// declNode marks EnumDecl as a declaration.
func (*EnumDecl) declNode() {}

// EnumVariant represents an enum variant. Tuple is set when the variant was
// written with a parenthesized payload, even an empty one.
type EnumVariant struct {
	Name   *Ident
	Fields []TypeExpr
	Tuple  bool
	span   lexer.Span
}

// NewEnumVariant constructs an enum variant node.
func NewEnumVariant(name *Ident, fields []TypeExpr, tuple bool, span lexer.Span) *EnumVariant {
	return &EnumVariant{
		Name:   name,
		Fields: fields,
		Tuple:  tuple,
		span:   span,
	}
}

// Span returns the variant span.
func (v *EnumVariant) Span() lexer.Span { return v.span }

// SetSpan updates the variant span.
func (v *EnumVariant) SetSpan(span lexer.Span) { v.span = span }

// ConstDecl represents `const NAME: T = value;`.
type ConstDecl struct {
	Visibility Visibility
	Name       *Ident
	Type       TypeExpr
	Value      Expr
	span       lexer.Span
}

// NewConstDecl constructs a const declaration node.
func NewConstDecl(vis Visibility, name *Ident, typ TypeExpr, value Expr, span lexer.Span) *ConstDecl {
	return &ConstDecl{
		Visibility: vis,
		Name:       name,
		Type:       typ,
		Value:      value,
		span:       span,
	}
}

// Span returns the declaration span.
func (d *ConstDecl) Span() lexer.Span { return d.span }

// SetSpan updates the const declaration span.
func (d *ConstDecl) SetSpan(span lexer.Span) { d.span = span }

// declNode marks ConstDecl as a declaration.
func (*ConstDecl) declNode() {}

// StaticDecl represents `static [mut] NAME: T = value;`.
type StaticDecl struct {
	Visibility Visibility
	Mutable    bool
	Name       *Ident
	Type       TypeExpr
	Value      Expr
	span       lexer.Span
}

// NewStaticDecl constructs a static declaration node.
func NewStaticDecl(vis Visibility, mutable bool, name *Ident, typ TypeExpr, value Expr, span lexer.Span) *StaticDecl {
	return &StaticDecl{
		Visibility: vis,
		Mutable:    mutable,
		Name:       name,
		Type:       typ,
		Value:      value,
		span:       span,
	}
}

// Span returns the declaration span.
func (d *StaticDecl) Span() lexer.Span { return d.span }

// SetSpan updates the static declaration span.
func (d *StaticDecl) SetSpan(span lexer.Span) { d.span = span }

// declNode marks StaticDecl as a declaration.
func (*StaticDecl) declNode() {}

// ImportDecl represents `import a::b::c [as d];`.
type ImportDecl struct {
	Visibility Visibility
	Path       []*Ident
	Alias      *Ident
	span       lexer.Span
}

// NewImportDecl constructs an import declaration node.
func NewImportDecl(vis Visibility, path []*Ident, alias *Ident, span lexer.Span) *ImportDecl {
	return &ImportDecl{
		Visibility: vis,
		Path:       path,
		Alias:      alias,
		span:       span,
	}
}

// Span returns the declaration span.
func (d *ImportDecl) Span() lexer.Span { return d.span }

// SetSpan updates the import declaration span.
func (d *ImportDecl) SetSpan(span lexer.Span) { d.span = span }

// declNode marks ImportDecl as a declaration.
func (*ImportDecl) declNode() {}

// ExportDecl represents `export { a, b };`.
type ExportDecl struct {
	Visibility Visibility
	Names      []*Ident
	span       lexer.Span
}

// NewExportDecl constructs an export declaration node.
func NewExportDecl(vis Visibility, names []*Ident, span lexer.Span) *ExportDecl {
	return &ExportDecl{
		Visibility: vis,
		Names:      names,
		span:       span,
	}
}

// Span returns the declaration span.
func (d *ExportDecl) Span() lexer.Span { return d.span }

// SetSpan updates the export declaration span.
func (d *ExportDecl) SetSpan(span lexer.Span) { d.span = span }

// declNode marks ExportDecl as a declaration.
func (*ExportDecl) declNode() {}
