package parser

import (
	"github.com/haiman1024/Contractus/internal/ast"
	"github.com/haiman1024/Contractus/internal/diag"
	"github.com/haiman1024/Contractus/internal/lexer"
)

// parseItem parses one top-level item, including its optional `pub` marker.
// It returns nil after reporting an error.
func (p *Parser) parseItem() ast.Decl {
	start := p.curTok().Span

	vis := ast.Private
	if p.accept(lexer.PUB) {
		vis = ast.Public
	}

	switch p.curTok().Type {
	case lexer.FN:
		return p.parseFnDecl(vis, start)
	case lexer.STRUCT:
		return p.parseStructDecl(vis, start)
	case lexer.ENUM:
		return p.parseEnumDecl(vis, start)
	case lexer.CONST:
		return p.parseConstDecl(vis, start)
	case lexer.STATIC:
		return p.parseStaticDecl(vis, start)
	case lexer.IMPORT:
		return p.parseImportDecl(vis, start)
	case lexer.EXPORT:
		return p.parseExportDecl(vis, start)
	}

	p.reportExpectedCode(diag.CodeParseExpectedItem, "item declaration", p.curTok())
	return nil
}

func (p *Parser) parseIdent() *ast.Ident {
	tok, ok := p.expect(lexer.IDENT)
	if !ok {
		return nil
	}
	return ast.NewIdent(tok.Value, tok.Span)
}

// fn name<generics>(params) -> ret { body }
func (p *Parser) parseFnDecl(vis ast.Visibility, start lexer.Span) ast.Decl {
	p.nextToken() // fn

	name := p.parseIdent()
	if name == nil {
		return nil
	}

	var generics *ast.Generics
	if p.check(lexer.LT) {
		if generics = p.parseGenerics(); generics == nil {
			return nil
		}
	}

	open, ok := p.expect(lexer.LPAREN)
	if !ok {
		return nil
	}
	params, ok := parseDelimited(p, delimitedConfig{Opener: open, Closing: lexer.RPAREN}, func(int) (*ast.Param, bool) {
		param := p.parseParam(true)
		return param, param != nil
	})
	if !ok {
		return nil
	}

	var ret ast.TypeExpr
	if p.accept(lexer.ARROW) {
		if ret = p.parseType(); ret == nil {
			return nil
		}
	}

	body := p.parseBlock()
	if body == nil {
		return nil
	}

	return ast.NewFnDecl(vis, name, generics, params, ret, body, p.spanFrom(start))
}

// parseParam parses `pattern: Type`. Closure parameters may omit the type.
func (p *Parser) parseParam(typeRequired bool) *ast.Param {
	start := p.curTok().Span

	pat := p.parseSinglePattern()
	if pat == nil {
		return nil
	}

	var typ ast.TypeExpr
	if typeRequired || p.check(lexer.COLON) {
		if _, ok := p.expect(lexer.COLON); !ok {
			return nil
		}
		if typ = p.parseType(); typ == nil {
			return nil
		}
	}

	return ast.NewParam(pat, typ, p.spanFrom(start))
}

// struct Name<generics> { pub field: Type, ... }
func (p *Parser) parseStructDecl(vis ast.Visibility, start lexer.Span) ast.Decl {
	p.nextToken() // struct

	name := p.parseIdent()
	if name == nil {
		return nil
	}

	var generics *ast.Generics
	if p.check(lexer.LT) {
		if generics = p.parseGenerics(); generics == nil {
			return nil
		}
	}

	open, ok := p.expect(lexer.LBRACE)
	if !ok {
		return nil
	}
	fields, ok := parseDelimited(p, delimitedConfig{Opener: open, Closing: lexer.RBRACE}, func(int) (*ast.StructField, bool) {
		field := p.parseStructField()
		return field, field != nil
	})
	if !ok {
		return nil
	}

	return ast.NewStructDecl(vis, name, generics, fields, p.spanFrom(start))
}

func (p *Parser) parseStructField() *ast.StructField {
	start := p.curTok().Span

	vis := ast.Private
	if p.accept(lexer.PUB) {
		vis = ast.Public
	}

	name := p.parseIdent()
	if name == nil {
		return nil
	}
	if _, ok := p.expect(lexer.COLON); !ok {
		return nil
	}
	typ := p.parseType()
	if typ == nil {
		return nil
	}

	return ast.NewStructField(vis, name, typ, p.spanFrom(start))
}

// enum Name<generics> { Unit, Tuple(T, U), ... }
func (p *Parser) parseEnumDecl(vis ast.Visibility, start lexer.Span) ast.Decl {
	p.nextToken() // enum

	name := p.parseIdent()
	if name == nil {
		return nil
	}

	var generics *ast.Generics
	if p.check(lexer.LT) {
		if generics = p.parseGenerics(); generics == nil {
			return nil
		}
	}

	open, ok := p.expect(lexer.LBRACE)
	if !ok {
		return nil
	}
	variants, ok := parseDelimited(p, delimitedConfig{Opener: open, Closing: lexer.RBRACE}, func(int) (*ast.EnumVariant, bool) {
		variant := p.parseEnumVariant()
		return variant, variant != nil
	})
	if !ok {
		return nil
	}

	return ast.NewEnumDecl(vis, name, generics, variants, p.spanFrom(start))
}

func (p *Parser) parseEnumVariant() *ast.EnumVariant {
	start := p.curTok().Span

	name := p.parseIdent()
	if name == nil {
		return nil
	}

	if !p.check(lexer.LPAREN) {
		return ast.NewEnumVariant(name, nil, false, p.spanFrom(start))
	}

	open := p.nextToken()
	fields, ok := parseDelimited(p, delimitedConfig{Opener: open, Closing: lexer.RPAREN}, func(int) (ast.TypeExpr, bool) {
		typ := p.parseType()
		return typ, typ != nil
	})
	if !ok {
		return nil
	}

	return ast.NewEnumVariant(name, fields, true, p.spanFrom(start))
}

// const NAME: Type = value;
func (p *Parser) parseConstDecl(vis ast.Visibility, start lexer.Span) ast.Decl {
	p.nextToken() // const

	name, typ, value := p.parseBinding()
	if value == nil {
		return nil
	}

	return ast.NewConstDecl(vis, name, typ, value, p.spanFrom(start))
}

// static mut? NAME: Type = value;
func (p *Parser) parseStaticDecl(vis ast.Visibility, start lexer.Span) ast.Decl {
	p.nextToken() // static

	mutable := p.accept(lexer.MUT)

	name, typ, value := p.parseBinding()
	if value == nil {
		return nil
	}

	return ast.NewStaticDecl(vis, mutable, name, typ, value, p.spanFrom(start))
}

// parseBinding parses the `NAME: Type = value;` tail shared by const and
// static. value is nil on failure.
func (p *Parser) parseBinding() (*ast.Ident, ast.TypeExpr, ast.Expr) {
	name := p.parseIdent()
	if name == nil {
		return nil, nil, nil
	}
	if _, ok := p.expect(lexer.COLON); !ok {
		return nil, nil, nil
	}
	typ := p.parseType()
	if typ == nil {
		return nil, nil, nil
	}
	if _, ok := p.expect(lexer.ASSIGN); !ok {
		return nil, nil, nil
	}
	value := p.parseExpr()
	if value == nil {
		return nil, nil, nil
	}
	if _, ok := p.expect(lexer.SEMICOLON); !ok {
		return nil, nil, nil
	}
	return name, typ, value
}

// import a::b::c as d;
func (p *Parser) parseImportDecl(vis ast.Visibility, start lexer.Span) ast.Decl {
	p.nextToken() // import

	var path []*ast.Ident
	for {
		segment := p.parseIdent()
		if segment == nil {
			return nil
		}
		path = append(path, segment)
		if !p.accept(lexer.DOUBLE_COLON) {
			break
		}
	}

	var alias *ast.Ident
	if p.accept(lexer.AS) {
		if alias = p.parseIdent(); alias == nil {
			return nil
		}
	}

	if _, ok := p.expect(lexer.SEMICOLON); !ok {
		return nil
	}

	return ast.NewImportDecl(vis, path, alias, p.spanFrom(start))
}

// export { a, b };
func (p *Parser) parseExportDecl(vis ast.Visibility, start lexer.Span) ast.Decl {
	p.nextToken() // export

	open, ok := p.expect(lexer.LBRACE)
	if !ok {
		return nil
	}
	names, ok := parseDelimited(p, delimitedConfig{Opener: open, Closing: lexer.RBRACE}, func(int) (*ast.Ident, bool) {
		name := p.parseIdent()
		return name, name != nil
	})
	if !ok {
		return nil
	}

	if _, ok := p.expect(lexer.SEMICOLON); !ok {
		return nil
	}

	return ast.NewExportDecl(vis, names, p.spanFrom(start))
}
