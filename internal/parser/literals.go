package parser

import (
	"fmt"

	"github.com/haiman1024/Contractus/internal/ast"
	"github.com/haiman1024/Contractus/internal/diag"
	"github.com/haiman1024/Contractus/internal/lexer"
)

func (p *Parser) parsePrimaryExpr() ast.Expr {
	tok := p.curTok()

	switch tok.Type {
	case lexer.INT:
		p.nextToken()
		return ast.NewIntegerLit(tok.Int, tok.Raw, tok.Span)
	case lexer.TRUE, lexer.FALSE:
		p.nextToken()
		return ast.NewBoolLit(tok.Bool(), tok.Span)
	case lexer.CHAR:
		p.nextToken()
		return ast.NewCharLit(tok.Char, tok.Span)
	case lexer.STRING:
		p.nextToken()
		return ast.NewStringLit(tok.Value, tok.Span)
	case lexer.IDENT:
		return p.parseIdentOrStructLiteral()
	case lexer.LPAREN:
		return p.parseParenExpr()
	case lexer.LBRACKET:
		return p.parseArrayLiteral()
	case lexer.LBRACE:
		if block := p.parseBlock(); block != nil {
			return block
		}
		return nil
	case lexer.IF:
		if e := p.parseIfExpr(); e != nil {
			return e
		}
		return nil
	case lexer.WHILE:
		if e := p.parseWhileExpr(); e != nil {
			return e
		}
		return nil
	case lexer.FOR:
		if e := p.parseForExpr(); e != nil {
			return e
		}
		return nil
	case lexer.MATCH:
		if e := p.parseMatchExpr(); e != nil {
			return e
		}
		return nil
	case lexer.BREAK:
		return p.parseBreakExpr()
	case lexer.CONTINUE:
		return p.parseContinueExpr()
	case lexer.RETURN:
		return p.parseReturnExpr()
	case lexer.PIPE:
		return p.parsePipeClosure()
	case lexer.OR:
		p.nextToken()
		return p.parseClosureTail(tok.Span, nil)
	}

	p.reportExpectedCode(diag.CodeParseExpectedExpression, "expression", tok)
	return nil
}

// parseIdentOrStructLiteral parses an identifier, or a struct literal when the
// identifier is followed by a brace that cannot open a block.
func (p *Parser) parseIdentOrStructLiteral() ast.Expr {
	tok := p.nextToken()
	name := ast.NewIdent(tok.Value, tok.Span)

	if !p.atStructLiteralBody() {
		return name
	}

	open := p.nextToken() // {
	defer p.allowStructLit()()

	fields, ok := parseDelimited(p, delimitedConfig{Opener: open, Closing: lexer.RBRACE}, func(int) (*ast.StructLiteralField, bool) {
		field := p.parseStructLiteralField()
		return field, field != nil
	})
	if !ok {
		return nil
	}

	return ast.NewStructLiteral(name, fields, p.spanFrom(tok.Span))
}

// atStructLiteralBody reports whether the cursor sits on a `{` that opens a
// struct literal body: `{}`, `{ a: ...`, `{ a, ...` or `{ a }`.
func (p *Parser) atStructLiteralBody() bool {
	if p.noStructLit || !p.check(lexer.LBRACE) {
		return false
	}
	if p.checkAt(1, lexer.RBRACE) {
		return true
	}
	if !p.checkAt(1, lexer.IDENT) {
		return false
	}
	switch p.peekTokenAt(2).Type {
	case lexer.COLON, lexer.COMMA, lexer.RBRACE:
		return true
	}
	return false
}

// field: value, or the shorthand `field` for `field: field`.
func (p *Parser) parseStructLiteralField() *ast.StructLiteralField {
	name := p.parseIdent()
	if name == nil {
		return nil
	}

	if !p.accept(lexer.COLON) {
		value := ast.NewIdent(name.Name, name.Span())
		return ast.NewStructLiteralField(name, value, true, name.Span())
	}

	value := p.parseExpr()
	if value == nil {
		return nil
	}
	return ast.NewStructLiteralField(name, value, false, p.spanFrom(name.Span()))
}

// parseParenExpr parses everything that starts with `(`: the unit value,
// grouped expressions, tuples and closures with a parenthesised parameter
// list.
func (p *Parser) parseParenExpr() ast.Expr {
	open := p.nextToken() // (

	if p.atParenClosure() {
		return p.parseParenClosure(open)
	}

	defer p.allowStructLit()()

	if p.accept(lexer.RPAREN) {
		return ast.NewTupleLiteral(nil, p.spanFrom(open.Span))
	}

	first := p.parseExpr()
	if first == nil {
		return nil
	}

	if p.accept(lexer.COMMA) {
		rest, ok := parseDelimited(p, delimitedConfig{Opener: open, Closing: lexer.RPAREN}, func(int) (ast.Expr, bool) {
			elem := p.parseExpr()
			return elem, elem != nil
		})
		if !ok {
			return nil
		}
		return ast.NewTupleLiteral(append([]ast.Expr{first}, rest...), p.spanFrom(open.Span))
	}

	if !p.expectClosing(lexer.RPAREN, open) {
		return nil
	}

	if grouped, ok := first.(spanSetter); ok {
		grouped.SetSpan(p.spanFrom(open.Span))
	}
	return first
}

// atParenClosure looks past an already consumed `(` for `) ->`, `name :` or
// `mut name :`, which only a closure parameter list can start with.
func (p *Parser) atParenClosure() bool {
	switch {
	case p.check(lexer.RPAREN):
		return p.checkAt(1, lexer.ARROW)
	case p.check(lexer.IDENT):
		return p.checkAt(1, lexer.COLON)
	case p.check(lexer.MUT):
		return p.checkAt(1, lexer.IDENT) && p.checkAt(2, lexer.COLON)
	}
	return false
}

// (x: T, y: U) -> R body
func (p *Parser) parseParenClosure(open lexer.Token) ast.Expr {
	params, ok := parseDelimited(p, delimitedConfig{Opener: open, Closing: lexer.RPAREN}, func(int) (*ast.Param, bool) {
		param := p.parseParam(true)
		return param, param != nil
	})
	if !ok {
		return nil
	}

	return p.parseClosureTail(open.Span, params)
}

// |x, y: T| body
func (p *Parser) parsePipeClosure() ast.Expr {
	open := p.nextToken() // |

	params, ok := parseDelimited(p, delimitedConfig{Opener: open, Closing: lexer.PIPE}, func(int) (*ast.Param, bool) {
		param := p.parseParam(false)
		return param, param != nil
	})
	if !ok {
		return nil
	}

	return p.parseClosureTail(open.Span, params)
}

// parseClosureTail parses the optional `-> Type` and the body of a closure
// whose parameter list has been consumed. `break` and `continue` inside the
// body do not see loops enclosing the closure.
func (p *Parser) parseClosureTail(start lexer.Span, params []*ast.Param) ast.Expr {
	var ret ast.TypeExpr
	if p.accept(lexer.ARROW) {
		if ret = p.parseType(); ret == nil {
			return nil
		}
	}

	savedDepth := p.loopDepth
	p.loopDepth = 0
	defer func() { p.loopDepth = savedDepth }()

	body := p.parseExpr()
	if body == nil {
		return nil
	}

	return ast.NewClosureExpr(params, ret, body, p.spanFrom(start))
}

// parseArrayLiteral parses `[a, b, ...]` and the repetition form `[e; N]`,
// which is expanded into N deep copies of e.
func (p *Parser) parseArrayLiteral() ast.Expr {
	open := p.nextToken() // [
	defer p.allowStructLit()()

	if p.accept(lexer.RBRACKET) {
		return ast.NewArrayLiteral(nil, p.spanFrom(open.Span))
	}

	first := p.parseExpr()
	if first == nil {
		return nil
	}

	if p.accept(lexer.SEMICOLON) {
		return p.parseArrayRepeat(open, first)
	}

	elems := []ast.Expr{first}
	if p.accept(lexer.COMMA) {
		rest, ok := parseDelimited(p, delimitedConfig{Opener: open, Closing: lexer.RBRACKET}, func(int) (ast.Expr, bool) {
			elem := p.parseExpr()
			return elem, elem != nil
		})
		if !ok {
			return nil
		}
		elems = append(elems, rest...)
	} else if !p.expectClosing(lexer.RBRACKET, open) {
		return nil
	}

	return ast.NewArrayLiteral(elems, p.spanFrom(open.Span))
}

func (p *Parser) parseArrayRepeat(open lexer.Token, elem ast.Expr) ast.Expr {
	countTok, ok := p.expect(lexer.INT)
	if !ok {
		return nil
	}
	if !p.expectClosing(lexer.RBRACKET, open) {
		return nil
	}

	count := int(countTok.Int)
	if count > p.maxRepeat {
		p.reportError(diag.CodeParseRepeatTooLarge,
			fmt.Sprintf("array repetition count %d exceeds limit %d", count, p.maxRepeat), countTok.Span)
		return nil
	}

	// Each copy carries the elements already expanded inside elem, so nested
	// repetitions are charged their product against the per-parse budget.
	per := max(arrayElements(elem), 1)
	if count > 0 && per > p.repeatBudget/count {
		p.reportError(diag.CodeParseRepeatTooLarge,
			fmt.Sprintf("array repetitions expand to more than %d elements", p.maxRepeat), countTok.Span)
		return nil
	}
	p.repeatBudget -= count * per

	elems := make([]ast.Expr, count)
	for i := range elems {
		if i == 0 {
			elems[i] = elem
			continue
		}
		elems[i] = ast.CloneExpr(elem)
	}

	return ast.NewArrayLiteral(elems, p.spanFrom(open.Span))
}

// arrayElements counts the elements of every array literal inside e.
func arrayElements(e ast.Expr) int {
	n := 0
	ast.Walk(e, func(node ast.Node) bool {
		if arr, ok := node.(*ast.ArrayLiteral); ok {
			n += len(arr.Elements)
		}
		return true
	})
	return n
}
