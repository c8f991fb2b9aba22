package parser

import (
	"github.com/haiman1024/Contractus/internal/ast"
	"github.com/haiman1024/Contractus/internal/diag"
	"github.com/haiman1024/Contractus/internal/lexer"
)

// parsePattern parses a pattern including or-alternatives `p1 | p2 | ...`.
func (p *Parser) parsePattern() ast.Pattern {
	first := p.parseSinglePattern()
	if first == nil {
		return nil
	}
	if !p.check(lexer.PIPE) {
		return first
	}

	alts := []ast.Pattern{first}
	for p.accept(lexer.PIPE) {
		alt := p.parseSinglePattern()
		if alt == nil {
			return nil
		}
		alts = append(alts, alt)
	}

	return ast.NewPatternOr(alts, first.Span().Merge(alts[len(alts)-1].Span()))
}

// parseSinglePattern parses one pattern without or-alternatives. Closure
// parameters use it directly since `|` closes their list.
func (p *Parser) parseSinglePattern() ast.Pattern {
	tok := p.curTok()

	switch tok.Type {
	case lexer.UNDERSCORE:
		p.nextToken()
		return ast.NewPatternWild(tok.Span)

	case lexer.MUT:
		p.nextToken()
		name := p.parseIdent()
		if name == nil {
			return nil
		}
		return ast.NewPatternIdent(name, true, p.spanFrom(tok.Span))

	case lexer.IDENT:
		p.nextToken()
		name := ast.NewIdent(tok.Value, tok.Span)
		switch {
		case p.check(lexer.LPAREN):
			return p.parseTupleStructPattern(name)
		case p.check(lexer.LBRACE):
			return p.parseStructPattern(name)
		}
		return ast.NewPatternIdent(name, false, tok.Span)

	case lexer.LPAREN:
		open := p.nextToken()
		elems, ok := parseDelimited(p, delimitedConfig{Opener: open, Closing: lexer.RPAREN}, p.parsePatternElem)
		if !ok {
			return nil
		}
		return ast.NewPatternTuple(elems, p.spanFrom(open.Span))

	case lexer.INT:
		p.nextToken()
		return ast.NewPatternLiteral(ast.NewIntegerLit(tok.Int, tok.Raw, tok.Span), tok.Span)

	case lexer.MINUS:
		if !p.checkAt(1, lexer.INT) {
			break
		}
		p.nextToken()
		lit := p.nextToken()
		span := tok.Span.Merge(lit.Span)
		neg := ast.NewPrefixExpr(ast.OpNeg, ast.NewIntegerLit(lit.Int, lit.Raw, lit.Span), span)
		return ast.NewPatternLiteral(neg, span)

	case lexer.TRUE, lexer.FALSE:
		p.nextToken()
		return ast.NewPatternLiteral(ast.NewBoolLit(tok.Bool(), tok.Span), tok.Span)

	case lexer.CHAR:
		p.nextToken()
		return ast.NewPatternLiteral(ast.NewCharLit(tok.Char, tok.Span), tok.Span)

	case lexer.STRING:
		p.nextToken()
		return ast.NewPatternLiteral(ast.NewStringLit(tok.Value, tok.Span), tok.Span)
	}

	p.reportExpectedCode(diag.CodeParseExpectedPattern, "pattern", tok)
	return nil
}

func (p *Parser) parsePatternElem(int) (ast.Pattern, bool) {
	pat := p.parsePattern()
	return pat, pat != nil
}

// Name(p1, p2, ...)
func (p *Parser) parseTupleStructPattern(name *ast.Ident) ast.Pattern {
	open := p.nextToken() // (

	elems, ok := parseDelimited(p, delimitedConfig{Opener: open, Closing: lexer.RPAREN}, p.parsePatternElem)
	if !ok {
		return nil
	}

	return ast.NewPatternTupleStruct(name, elems, p.spanFrom(name.Span()))
}

// Name { field: pattern, shorthand, ... }
func (p *Parser) parseStructPattern(name *ast.Ident) ast.Pattern {
	open := p.nextToken() // {

	fields, ok := parseDelimited(p, delimitedConfig{Opener: open, Closing: lexer.RBRACE}, func(int) (*ast.PatternStructField, bool) {
		field := p.parseStructPatternField()
		return field, field != nil
	})
	if !ok {
		return nil
	}

	return ast.NewPatternStruct(name, fields, p.spanFrom(name.Span()))
}

func (p *Parser) parseStructPatternField() *ast.PatternStructField {
	name := p.parseIdent()
	if name == nil {
		return nil
	}

	if !p.accept(lexer.COLON) {
		binding := ast.NewPatternIdent(ast.NewIdent(name.Name, name.Span()), false, name.Span())
		return ast.NewPatternStructField(name, binding, true, name.Span())
	}

	pat := p.parsePattern()
	if pat == nil {
		return nil
	}
	return ast.NewPatternStructField(name, pat, false, p.spanFrom(name.Span()))
}
