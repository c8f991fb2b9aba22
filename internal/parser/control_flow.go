package parser

import (
	"github.com/haiman1024/Contractus/internal/ast"
	"github.com/haiman1024/Contractus/internal/diag"
	"github.com/haiman1024/Contractus/internal/lexer"
)

// parseHeadExpr parses the condition or scrutinee of if/while/for/match.
// Struct literals are disabled there so that `if x == y {` opens the body.
func (p *Parser) parseHeadExpr() ast.Expr {
	saved := p.noStructLit
	p.noStructLit = true
	defer func() { p.noStructLit = saved }()

	return p.parseExpr()
}

// allowStructLit re-enables struct literals inside a nested delimiter and
// returns a func restoring the previous setting.
func (p *Parser) allowStructLit() func() {
	saved := p.noStructLit
	p.noStructLit = false
	return func() { p.noStructLit = saved }
}

// parseLoopBody parses the body of a while/for loop one loop level deeper.
func (p *Parser) parseLoopBody() *ast.BlockExpr {
	p.loopDepth++
	defer func() { p.loopDepth-- }()

	return p.parseBlock()
}

// if cond { ... } (else if ... | else { ... })?
func (p *Parser) parseIfExpr() *ast.IfExpr {
	start := p.nextToken().Span // if

	cond := p.parseHeadExpr()
	if cond == nil {
		return nil
	}

	then := p.parseBlock()
	if then == nil {
		return nil
	}

	var els ast.Expr
	if p.accept(lexer.ELSE) {
		if p.check(lexer.IF) {
			nested := p.parseIfExpr()
			if nested == nil {
				return nil
			}
			els = nested
		} else {
			block := p.parseBlock()
			if block == nil {
				return nil
			}
			els = block
		}
	}

	return ast.NewIfExpr(cond, then, els, p.spanFrom(start))
}

func (p *Parser) parseWhileExpr() *ast.WhileExpr {
	start := p.nextToken().Span // while

	cond := p.parseHeadExpr()
	if cond == nil {
		return nil
	}

	body := p.parseLoopBody()
	if body == nil {
		return nil
	}

	return ast.NewWhileExpr(cond, body, p.spanFrom(start))
}

// for pattern in iterable { ... }
func (p *Parser) parseForExpr() *ast.ForExpr {
	start := p.nextToken().Span // for

	pat := p.parsePattern()
	if pat == nil {
		return nil
	}

	if _, ok := p.expect(lexer.IN); !ok {
		return nil
	}

	iterable := p.parseHeadExpr()
	if iterable == nil {
		return nil
	}

	body := p.parseLoopBody()
	if body == nil {
		return nil
	}

	return ast.NewForExpr(pat, iterable, body, p.spanFrom(start))
}

// match subject { pattern (if guard)? => body, ... }
//
// The comma after an arm may be left out when the arm body is a block.
func (p *Parser) parseMatchExpr() *ast.MatchExpr {
	start := p.nextToken().Span // match

	subject := p.parseHeadExpr()
	if subject == nil {
		return nil
	}

	open, ok := p.expect(lexer.LBRACE)
	if !ok {
		return nil
	}
	defer p.allowStructLit()()

	var arms []*ast.MatchArm
	for !p.check(lexer.RBRACE) {
		if p.atEOF() {
			p.reportUnclosed(lexer.RBRACE, open, p.curTok())
			return nil
		}
		arm := p.parseMatchArm()
		if arm == nil {
			return nil
		}
		arms = append(arms, arm)

		if p.accept(lexer.COMMA) || p.check(lexer.RBRACE) {
			continue
		}
		if _, isBlock := arm.Body.(*ast.BlockExpr); isBlock {
			continue
		}

		p.reportUnclosedList(lexer.COMMA, lexer.RBRACE, open)
		return nil
	}
	p.nextToken() // }

	return ast.NewMatchExpr(subject, arms, p.spanFrom(start))
}

func (p *Parser) parseMatchArm() *ast.MatchArm {
	start := p.curTok().Span

	pat := p.parsePattern()
	if pat == nil {
		return nil
	}

	var guard ast.Expr
	if p.accept(lexer.IF) {
		if guard = p.parseExpr(); guard == nil {
			return nil
		}
	}

	if _, ok := p.expect(lexer.FATARROW); !ok {
		return nil
	}

	var body ast.Expr
	if p.check(lexer.LBRACE) {
		block := p.parseBlock()
		if block == nil {
			return nil
		}
		body = block
	} else if body = p.parseExpr(); body == nil {
		return nil
	}

	return ast.NewMatchArm(pat, guard, body, p.spanFrom(start))
}

// atValueEnd reports whether the cursor sits on a token that cannot start the
// optional value of break/return.
func (p *Parser) atValueEnd() bool {
	switch p.curTok().Type {
	case lexer.SEMICOLON, lexer.RBRACE, lexer.COMMA, lexer.RPAREN, lexer.RBRACKET, lexer.EOF:
		return true
	}
	return false
}

// parseBreakParts parses `break label? value?`. An identifier directly after
// `break` is taken as the label.
func (p *Parser) parseBreakParts() (*ast.Ident, ast.Expr, bool) {
	tok := p.nextToken() // break

	if p.loopDepth == 0 {
		p.reportErrorWithHelp(diag.CodeParseBreakOutsideLoop, "`break` outside of loop", tok.Span,
			"`break` can only be used inside `while` or `for` loops")
		return nil, nil, false
	}

	var label *ast.Ident
	if p.check(lexer.IDENT) {
		labelTok := p.nextToken()
		label = ast.NewIdent(labelTok.Value, labelTok.Span)
	}

	var value ast.Expr
	if !p.atValueEnd() {
		if value = p.parseExpr(); value == nil {
			return nil, nil, false
		}
	}

	return label, value, true
}

func (p *Parser) parseContinueParts() (*ast.Ident, bool) {
	tok := p.nextToken() // continue

	if p.loopDepth == 0 {
		p.reportErrorWithHelp(diag.CodeParseContinueOutside, "`continue` outside of loop", tok.Span,
			"`continue` can only be used inside `while` or `for` loops")
		return nil, false
	}

	var label *ast.Ident
	if p.check(lexer.IDENT) {
		labelTok := p.nextToken()
		label = ast.NewIdent(labelTok.Value, labelTok.Span)
	}

	return label, true
}

func (p *Parser) parseBreakExpr() ast.Expr {
	start := p.curTok().Span

	label, value, ok := p.parseBreakParts()
	if !ok {
		return nil
	}

	return ast.NewBreakExpr(label, value, p.spanFrom(start))
}

func (p *Parser) parseContinueExpr() ast.Expr {
	start := p.curTok().Span

	label, ok := p.parseContinueParts()
	if !ok {
		return nil
	}

	return ast.NewContinueExpr(label, p.spanFrom(start))
}

func (p *Parser) parseReturnExpr() ast.Expr {
	start := p.nextToken().Span // return

	var value ast.Expr
	if !p.atValueEnd() {
		if value = p.parseExpr(); value == nil {
			return nil
		}
	}

	return ast.NewReturnExpr(value, p.spanFrom(start))
}
