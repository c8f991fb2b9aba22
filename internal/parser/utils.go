package parser

import (
	"github.com/haiman1024/Contractus/internal/lexer"
)

// isItemStart reports whether tt can begin a top-level item.
func isItemStart(tt lexer.TokenType) bool {
	switch tt {
	case lexer.FN, lexer.STRUCT, lexer.ENUM, lexer.CONST, lexer.STATIC,
		lexer.IMPORT, lexer.EXPORT, lexer.PUB:
		return true
	}
	return false
}

// isStatementStart reports whether tt begins a statement that only makes
// sense at statement position.
func isStatementStart(tt lexer.TokenType) bool {
	switch tt {
	case lexer.LET, lexer.RETURN, lexer.IF, lexer.WHILE, lexer.FOR, lexer.MATCH:
		return true
	}
	return false
}

func isSyncPoint(tt lexer.TokenType) bool {
	return isItemStart(tt) || isStatementStart(tt)
}

// recoverItem skips tokens after a failed item until the parser has just
// consumed a `;` or sits on a token that can start an item or statement. At
// least one token is consumed when the failed item made no progress, so the
// top-level loop always terminates.
func (p *Parser) recoverItem(startPos int) {
	defer func() { p.panicking = false }()

	if p.pos == startPos {
		p.nextToken()
	}

	for !p.atEOF() {
		if p.prevTok().Type == lexer.SEMICOLON || isSyncPoint(p.curTok().Type) {
			return
		}
		p.nextToken()
	}
}

// recoverStatement is the block-level counterpart of recoverItem. It also
// stops in front of `}` so the enclosing block can close normally.
func (p *Parser) recoverStatement(startPos int) {
	defer func() { p.panicking = false }()

	if p.pos == startPos && !p.check(lexer.RBRACE) {
		p.nextToken()
	}

	for !p.atEOF() {
		if p.prevTok().Type == lexer.SEMICOLON || p.check(lexer.RBRACE) || isSyncPoint(p.curTok().Type) {
			return
		}
		p.nextToken()
	}
}
