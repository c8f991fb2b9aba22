package parser

import (
	"strings"

	"github.com/haiman1024/Contractus/internal/lexer"
)

// curTok returns the token under examination.
func (p *Parser) curTok() lexer.Token {
	return p.tokens[p.pos]
}

// peekTokenAt returns the token n positions after the cursor, clamped to EOF.
func (p *Parser) peekTokenAt(n int) lexer.Token {
	if i := p.pos + n; i < len(p.tokens) {
		return p.tokens[i]
	}
	return p.tokens[len(p.tokens)-1]
}

// prevTok returns the most recently consumed token. Before anything has been
// consumed it returns the first token.
func (p *Parser) prevTok() lexer.Token {
	if p.pos == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.pos-1]
}

func (p *Parser) atEOF() bool {
	return p.tokens[p.pos].Type == lexer.EOF
}

// nextToken consumes the current token and returns it. The cursor stays on EOF
// once it is reached.
func (p *Parser) nextToken() lexer.Token {
	tok := p.tokens[p.pos]
	if tok.Type != lexer.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) check(tt lexer.TokenType) bool {
	return p.curTok().Type == tt
}

func (p *Parser) checkAt(n int, tt lexer.TokenType) bool {
	return p.peekTokenAt(n).Type == tt
}

// accept consumes the current token when it has type tt.
func (p *Parser) accept(tt lexer.TokenType) bool {
	if p.check(tt) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes a token of type tt or reports "expected X, found `Y`".
// On failure the cursor does not move.
func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, bool) {
	if p.check(tt) {
		return p.nextToken(), true
	}
	p.reportExpected(describeType(tt), p.curTok())
	return p.curTok(), false
}

// expectClosing is expect for a closing delimiter; the error also points at
// the unclosed opener.
func (p *Parser) expectClosing(tt lexer.TokenType, opener lexer.Token) bool {
	if p.check(tt) {
		p.nextToken()
		return true
	}
	p.reportUnclosed(tt, opener, p.curTok())
	return false
}

// spanFrom merges start with the last consumed token.
func (p *Parser) spanFrom(start lexer.Span) lexer.Span {
	return start.Merge(p.prevTok().Span)
}

func describeType(tt lexer.TokenType) string {
	switch tt {
	case lexer.IDENT:
		return "identifier"
	case lexer.INT:
		return "integer literal"
	case lexer.STRING:
		return "string literal"
	case lexer.CHAR:
		return "character literal"
	case lexer.EOF:
		return "end of file"
	}
	if tt.IsKeyword() {
		return "`" + strings.ToLower(string(tt)) + "`"
	}
	return "`" + string(tt) + "`"
}
