package parser

import (
	"github.com/haiman1024/Contractus/internal/ast"
	"github.com/haiman1024/Contractus/internal/diag"
	"github.com/haiman1024/Contractus/internal/lexer"
)

var primitiveTypes = map[lexer.TokenType]ast.PrimitiveKind{
	lexer.TYPE_I8:     ast.I8,
	lexer.TYPE_I16:    ast.I16,
	lexer.TYPE_I32:    ast.I32,
	lexer.TYPE_I64:    ast.I64,
	lexer.TYPE_U8:     ast.U8,
	lexer.TYPE_U16:    ast.U16,
	lexer.TYPE_U32:    ast.U32,
	lexer.TYPE_U64:    ast.U64,
	lexer.TYPE_ISIZE:  ast.Isize,
	lexer.TYPE_USIZE:  ast.Usize,
	lexer.TYPE_F32:    ast.F32,
	lexer.TYPE_F64:    ast.F64,
	lexer.TYPE_BOOL:   ast.Bool,
	lexer.TYPE_CHAR:   ast.Char,
	lexer.TYPE_STRING: ast.String,
}

// parseType parses a type expression. At the outermost level it also rejects
// a `>` left over from splitting a `>>` that no argument list consumed.
func (p *Parser) parseType() ast.TypeExpr {
	p.typeDepth++
	typ := p.parseTypeInner()
	p.typeDepth--

	if p.typeDepth == 0 && p.pendingGreater {
		p.pendingGreater = false
		if typ != nil {
			p.reportError(diag.CodeParseExpectedToken, "unexpected `>` after type", secondByte(p.prevTok().Span))
		}
		return nil
	}
	return typ
}

func (p *Parser) parseTypeInner() ast.TypeExpr {
	tok := p.curTok()

	if kind, ok := primitiveTypes[tok.Type]; ok {
		p.nextToken()
		return ast.NewPrimitiveType(kind, tok.Span)
	}

	switch tok.Type {
	case lexer.IDENT:
		p.nextToken()
		name := ast.NewIdent(tok.Value, tok.Span)
		if p.check(lexer.LT) {
			return p.parseGenericType(name)
		}
		return ast.NewNamedType(name, tok.Span)

	case lexer.LBRACKET:
		return p.parseArrayType()

	case lexer.ASTERISK:
		p.nextToken()
		mutable := p.accept(lexer.MUT)
		elem := p.parseType()
		if elem == nil {
			return nil
		}
		return ast.NewPointerType(mutable, elem, p.spanFrom(tok.Span))

	case lexer.AMPERSAND:
		p.nextToken()
		return p.parseReferenceType(tok.Span)

	case lexer.AND:
		p.nextToken()
		inner := p.parseReferenceType(secondByte(tok.Span))
		if inner == nil {
			return nil
		}
		return ast.NewReferenceType(false, inner, p.spanFrom(tok.Span))

	case lexer.LPAREN:
		return p.parseParenType()

	case lexer.FN:
		return p.parseFnType()

	case lexer.BANG:
		p.nextToken()
		return ast.NewNeverType(tok.Span)

	case lexer.UNDERSCORE:
		p.nextToken()
		return ast.NewInferType(tok.Span)
	}

	p.reportExpectedCode(diag.CodeParseExpectedType, "type", tok)
	return nil
}

// parseReferenceType parses the rest of `&T` or `&mut T` after the `&`.
func (p *Parser) parseReferenceType(start lexer.Span) ast.TypeExpr {
	mutable := p.accept(lexer.MUT)
	elem := p.parseType()
	if elem == nil {
		return nil
	}
	return ast.NewReferenceType(mutable, elem, start.Merge(elem.Span()))
}

// Name<A, B>. A `>>` closing two nested lists is split in two.
func (p *Parser) parseGenericType(name *ast.Ident) ast.TypeExpr {
	open := p.nextToken() // <

	var args []ast.TypeExpr
	for !p.pendingGreater && !p.check(lexer.GT) && !p.check(lexer.SHR) {
		arg := p.parseType()
		if arg == nil {
			return nil
		}
		args = append(args, arg)

		if p.pendingGreater || !p.accept(lexer.COMMA) {
			break
		}
	}

	if len(args) == 0 {
		p.reportExpectedCode(diag.CodeParseExpectedType, "type", p.curTok())
		return nil
	}
	if !p.expectGreater(open) {
		return nil
	}

	return ast.NewGenericType(name, args, p.spanFrom(name.Span()))
}

// expectGreater closes a generic argument list.
func (p *Parser) expectGreater(open lexer.Token) bool {
	switch {
	case p.pendingGreater:
		p.pendingGreater = false
		return true
	case p.check(lexer.GT):
		p.nextToken()
		return true
	case p.check(lexer.SHR):
		p.nextToken()
		p.pendingGreater = true
		return true
	}
	p.reportUnclosed(lexer.GT, open, p.curTok())
	return false
}

// [T; N] or [T]
func (p *Parser) parseArrayType() ast.TypeExpr {
	open := p.nextToken() // [

	elem := p.parseType()
	if elem == nil {
		return nil
	}

	if !p.accept(lexer.SEMICOLON) {
		if !p.expectClosing(lexer.RBRACKET, open) {
			return nil
		}
		return ast.NewSliceType(elem, p.spanFrom(open.Span))
	}

	size, ok := p.expect(lexer.INT)
	if !ok {
		return nil
	}
	if !p.expectClosing(lexer.RBRACKET, open) {
		return nil
	}
	return ast.NewArrayType(elem, int(size.Int), p.spanFrom(open.Span))
}

// () is unit, (T, U) a tuple; either followed by `->` is a function type.
func (p *Parser) parseParenType() ast.TypeExpr {
	open := p.nextToken() // (

	elems, ok := parseDelimited(p, delimitedConfig{Opener: open, Closing: lexer.RPAREN}, func(int) (ast.TypeExpr, bool) {
		typ := p.parseType()
		return typ, typ != nil
	})
	if !ok {
		return nil
	}

	if p.accept(lexer.ARROW) {
		ret := p.parseType()
		if ret == nil {
			return nil
		}
		return ast.NewFunctionType(elems, ret, p.spanFrom(open.Span))
	}

	if len(elems) == 0 {
		return ast.NewPrimitiveType(ast.Unit, p.spanFrom(open.Span))
	}
	return ast.NewTupleType(elems, p.spanFrom(open.Span))
}

// fn(A, B) -> R. A missing return type means unit.
func (p *Parser) parseFnType() ast.TypeExpr {
	start := p.nextToken().Span // fn

	open, ok := p.expect(lexer.LPAREN)
	if !ok {
		return nil
	}
	params, ok := parseDelimited(p, delimitedConfig{Opener: open, Closing: lexer.RPAREN}, func(int) (ast.TypeExpr, bool) {
		typ := p.parseType()
		return typ, typ != nil
	})
	if !ok {
		return nil
	}

	var ret ast.TypeExpr
	if p.accept(lexer.ARROW) {
		if ret = p.parseType(); ret == nil {
			return nil
		}
	} else {
		ret = ast.NewPrimitiveType(ast.Unit, emptyAfter(p.prevTok().Span))
	}

	return ast.NewFunctionType(params, ret, p.spanFrom(start))
}

// emptyAfter returns the zero-width span directly after span.
func emptyAfter(span lexer.Span) lexer.Span {
	return lexer.Span{
		Filename: span.Filename,
		Line:     span.Line,
		Column:   span.Column + span.Len(),
		Start:    span.End,
		End:      span.End,
	}
}
