package parser

import (
	"github.com/haiman1024/Contractus/internal/ast"
	"github.com/haiman1024/Contractus/internal/lexer"
)

// parseBlock parses `{ stmt* }`. A statement that fails to parse is dropped
// and the block resynchronises at the next statement boundary, so several
// independent errors can be reported from one block.
func (p *Parser) parseBlock() *ast.BlockExpr {
	open, ok := p.expect(lexer.LBRACE)
	if !ok {
		return nil
	}
	defer p.allowStructLit()()

	var stmts []ast.Stmt
	for !p.check(lexer.RBRACE) && !p.atEOF() && !isItemStart(p.curTok().Type) {
		startPos := p.pos
		stmt := p.parseStmt()
		if stmt == nil {
			p.recoverStatement(startPos)
			continue
		}
		stmts = append(stmts, stmt)
	}

	if !p.expectClosing(lexer.RBRACE, open) {
		return nil
	}

	return ast.NewBlockExpr(stmts, p.spanFrom(open.Span))
}

func (p *Parser) parseStmt() ast.Stmt {
	start := p.curTok().Span

	switch p.curTok().Type {
	case lexer.LET:
		return p.parseLetStmt()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.BREAK:
		return p.parseBreakStmt()
	case lexer.CONTINUE:
		return p.parseContinueStmt()
	case lexer.IF:
		ifExpr := p.parseIfExpr()
		if ifExpr == nil {
			return nil
		}
		p.accept(lexer.SEMICOLON)
		return ast.NewIfStmt(ifExpr, p.spanFrom(start))
	case lexer.WHILE:
		loop := p.parseWhileExpr()
		if loop == nil {
			return nil
		}
		p.accept(lexer.SEMICOLON)
		return ast.NewWhileStmt(loop, p.spanFrom(start))
	case lexer.FOR:
		loop := p.parseForExpr()
		if loop == nil {
			return nil
		}
		p.accept(lexer.SEMICOLON)
		return ast.NewForStmt(loop, p.spanFrom(start))
	case lexer.MATCH:
		match := p.parseMatchExpr()
		if match == nil {
			return nil
		}
		p.accept(lexer.SEMICOLON)
		return ast.NewMatchStmt(match, p.spanFrom(start))
	case lexer.LBRACE:
		block := p.parseBlock()
		if block == nil {
			return nil
		}
		p.accept(lexer.SEMICOLON)
		return ast.NewBlockStmt(block, p.spanFrom(start))
	}

	expr := p.parseExpr()
	if expr == nil {
		return nil
	}
	semicolon := p.accept(lexer.SEMICOLON)
	return ast.NewExprStmt(expr, semicolon, p.spanFrom(start))
}

// let mut? pattern (: Type)? (= expr)? ;
func (p *Parser) parseLetStmt() ast.Stmt {
	start := p.nextToken().Span // let

	mutable := p.accept(lexer.MUT)

	pat := p.parsePattern()
	if pat == nil {
		return nil
	}

	var typ ast.TypeExpr
	if p.accept(lexer.COLON) {
		if typ = p.parseType(); typ == nil {
			return nil
		}
	}

	var value ast.Expr
	if p.accept(lexer.ASSIGN) {
		if value = p.parseExpr(); value == nil {
			return nil
		}
	}

	if _, ok := p.expect(lexer.SEMICOLON); !ok {
		return nil
	}

	return ast.NewLetStmt(mutable, pat, typ, value, p.spanFrom(start))
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.nextToken().Span // return

	var value ast.Expr
	if !p.atValueEnd() {
		if value = p.parseExpr(); value == nil {
			return nil
		}
	}

	if !p.expectStmtEnd() {
		return nil
	}

	return ast.NewReturnStmt(value, p.spanFrom(start))
}

func (p *Parser) parseBreakStmt() ast.Stmt {
	start := p.curTok().Span

	label, value, ok := p.parseBreakParts()
	if !ok || !p.expectStmtEnd() {
		return nil
	}

	return ast.NewBreakStmt(label, value, p.spanFrom(start))
}

func (p *Parser) parseContinueStmt() ast.Stmt {
	start := p.curTok().Span

	label, ok := p.parseContinueParts()
	if !ok || !p.expectStmtEnd() {
		return nil
	}

	return ast.NewContinueStmt(label, p.spanFrom(start))
}

// expectStmtEnd consumes the `;` ending a jump statement. The semicolon may be
// left out directly before the closing brace of a block.
func (p *Parser) expectStmtEnd() bool {
	if p.check(lexer.RBRACE) {
		return true
	}
	_, ok := p.expect(lexer.SEMICOLON)
	return ok
}
