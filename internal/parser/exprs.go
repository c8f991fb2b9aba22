package parser

import (
	"github.com/haiman1024/Contractus/internal/ast"
	"github.com/haiman1024/Contractus/internal/diag"
	"github.com/haiman1024/Contractus/internal/lexer"
)

// Binary operator tiers, loosest first. Assignment sits above all of them and
// is handled separately because it is right-associative; cast, unary and
// postfix bind tighter than any entry here.
const (
	precedenceLowest = iota
	precedenceOr
	precedenceAnd
	precedenceBitOr
	precedenceBitXor
	precedenceBitAnd
	precedenceEquality
	precedenceComparison
	precedenceShift
	precedenceRange
	precedenceSum
	precedenceProduct
)

type binaryOp struct {
	precedence int
	op         ast.BinaryOp
}

var binaryOps = map[lexer.TokenType]binaryOp{
	lexer.OR:        {precedenceOr, ast.OpOr},
	lexer.AND:       {precedenceAnd, ast.OpAnd},
	lexer.PIPE:      {precedenceBitOr, ast.OpBitOr},
	lexer.CARET:     {precedenceBitXor, ast.OpBitXor},
	lexer.AMPERSAND: {precedenceBitAnd, ast.OpBitAnd},
	lexer.EQ:        {precedenceEquality, ast.OpEq},
	lexer.NOT_EQ:    {precedenceEquality, ast.OpNotEq},
	lexer.LT:        {precedenceComparison, ast.OpLess},
	lexer.GT:        {precedenceComparison, ast.OpGreater},
	lexer.LE:        {precedenceComparison, ast.OpLessEq},
	lexer.GE:        {precedenceComparison, ast.OpGreaterEq},
	lexer.SHL:       {precedenceShift, ast.OpShl},
	lexer.SHR:       {precedenceShift, ast.OpShr},
	lexer.PLUS:      {precedenceSum, ast.OpAdd},
	lexer.MINUS:     {precedenceSum, ast.OpSub},
	lexer.ASTERISK:  {precedenceProduct, ast.OpMul},
	lexer.SLASH:     {precedenceProduct, ast.OpDiv},
	lexer.PERCENT:   {precedenceProduct, ast.OpMod},
}

var compoundAssignOps = map[lexer.TokenType]ast.BinaryOp{
	lexer.PLUS_ASSIGN:  ast.OpAdd,
	lexer.MINUS_ASSIGN: ast.OpSub,
	lexer.STAR_ASSIGN:  ast.OpMul,
	lexer.SLASH_ASSIGN: ast.OpDiv,
}

type spanSetter interface {
	SetSpan(lexer.Span)
}

// parseExpr parses a full expression, assignment included.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseAssignExpr()
}

// parseAssignExpr parses `target = value` and `target op= value`, both
// right-associative.
func (p *Parser) parseAssignExpr() ast.Expr {
	left := p.parseBinaryExpr(precedenceOr)
	if left == nil {
		return nil
	}

	tok := p.curTok()
	compoundOp, compound := compoundAssignOps[tok.Type]
	if tok.Type != lexer.ASSIGN && !compound {
		return left
	}

	if !isAssignable(left) {
		p.reportError(diag.CodeParseInvalidAssignment, "invalid assignment target", left.Span())
		return nil
	}
	p.nextToken()

	right := p.parseAssignExpr()
	if right == nil {
		return nil
	}

	span := left.Span().Merge(right.Span())
	if compound {
		return ast.NewCompoundAssignExpr(compoundOp, left, right, span)
	}
	return ast.NewAssignExpr(left, right, span)
}

// isAssignable reports whether e denotes a place that can be assigned to.
func isAssignable(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.Ident, *ast.FieldExpr, *ast.IndexExpr:
		return true
	case *ast.PrefixExpr:
		return n.Op == ast.OpDeref
	}
	return false
}

// parseBinaryExpr is the precedence-climbing loop over binaryOps. Operands are
// cast expressions; operators at or above minPrec are folded left to right.
func (p *Parser) parseBinaryExpr(minPrec int) ast.Expr {
	left := p.parseCastExpr()
	if left == nil {
		return nil
	}

	ranged := false
	for {
		tok := p.curTok()

		if tok.Type == lexer.DOTDOT || tok.Type == lexer.DOTDOT_EQ {
			if precedenceRange < minPrec {
				return left
			}
			if ranged {
				p.reportError(diag.CodeParseNonAssociative, "range operators cannot be chained", tok.Span)
				return nil
			}
			if left = p.parseRangeTail(left); left == nil {
				return nil
			}
			ranged = true
			continue
		}

		info, ok := binaryOps[tok.Type]
		if !ok || info.precedence < minPrec {
			return left
		}
		p.nextToken()

		right := p.parseBinaryExpr(info.precedence + 1)
		if right == nil {
			return nil
		}
		left = ast.NewInfixExpr(info.op, left, right, left.Span().Merge(right.Span()))
	}
}

// parseRangeTail parses `..end` or `..=end` after start.
func (p *Parser) parseRangeTail(start ast.Expr) ast.Expr {
	inclusive := p.nextToken().Type == lexer.DOTDOT_EQ

	end := p.parseBinaryExpr(precedenceRange + 1)
	if end == nil {
		return nil
	}

	return ast.NewRangeExpr(start, end, inclusive, start.Span().Merge(end.Span()))
}

// parseCastExpr parses `operand as Type`, which may repeat.
func (p *Parser) parseCastExpr() ast.Expr {
	expr := p.parseUnaryExpr()
	if expr == nil {
		return nil
	}

	for p.accept(lexer.AS) {
		typ := p.parseType()
		if typ == nil {
			return nil
		}
		expr = ast.NewCastExpr(expr, typ, expr.Span().Merge(typ.Span()))
	}

	return expr
}

var unaryOps = map[lexer.TokenType]ast.UnaryOp{
	lexer.MINUS:    ast.OpNeg,
	lexer.BANG:     ast.OpNot,
	lexer.TILDE:    ast.OpBitNot,
	lexer.ASTERISK: ast.OpDeref,
}

// parseUnaryExpr parses prefix operators, right-associative by recursion.
// `&&x` is read as two reference operators.
func (p *Parser) parseUnaryExpr() ast.Expr {
	tok := p.curTok()

	if tok.Type == lexer.AND {
		p.nextToken()
		inner := p.parseReference(secondByte(tok.Span))
		if inner == nil {
			return nil
		}
		return ast.NewPrefixExpr(ast.OpRef, inner, tok.Span.Merge(inner.Span()))
	}

	if tok.Type == lexer.AMPERSAND {
		p.nextToken()
		return p.parseReference(tok.Span)
	}

	op, ok := unaryOps[tok.Type]
	if !ok {
		return p.parsePostfixExpr()
	}
	p.nextToken()

	operand := p.parseUnaryExpr()
	if operand == nil {
		return nil
	}
	return ast.NewPrefixExpr(op, operand, tok.Span.Merge(operand.Span()))
}

// parseReference parses the operand of a `&` or `&mut` whose `&` has already
// been consumed.
func (p *Parser) parseReference(start lexer.Span) ast.Expr {
	op := ast.OpRef
	if p.accept(lexer.MUT) {
		op = ast.OpRefMut
	}

	operand := p.parseUnaryExpr()
	if operand == nil {
		return nil
	}
	return ast.NewPrefixExpr(op, operand, start.Merge(operand.Span()))
}

// secondByte returns the span of the second byte of a two-byte token.
func secondByte(span lexer.Span) lexer.Span {
	return lexer.Span{
		Filename: span.Filename,
		Line:     span.Line,
		Column:   span.Column + 1,
		Start:    span.Start + 1,
		End:      span.End,
	}
}

// parsePostfixExpr parses calls, method calls, field access and indexing,
// chained left to right.
func (p *Parser) parsePostfixExpr() ast.Expr {
	expr := p.parsePrimaryExpr()
	if expr == nil {
		return nil
	}

	for {
		switch p.curTok().Type {
		case lexer.LPAREN:
			args, ok := p.parseCallArgs()
			if !ok {
				return nil
			}
			expr = ast.NewCallExpr(expr, args, p.spanFrom(expr.Span()))

		case lexer.DOT:
			p.nextToken()
			tok := p.curTok()
			if tok.Type != lexer.IDENT && tok.Type != lexer.INT {
				p.reportExpected("field or method name", tok)
				return nil
			}
			p.nextToken()
			name := ast.NewIdent(tok.Raw, tok.Span)

			if tok.Type == lexer.IDENT && p.check(lexer.LPAREN) {
				args, ok := p.parseCallArgs()
				if !ok {
					return nil
				}
				expr = ast.NewMethodCallExpr(expr, name, args, p.spanFrom(expr.Span()))
				continue
			}
			expr = ast.NewFieldExpr(expr, name, p.spanFrom(expr.Span()))

		case lexer.LBRACKET:
			open := p.nextToken()
			index := p.parseNestedExpr()
			if index == nil {
				return nil
			}
			if !p.expectClosing(lexer.RBRACKET, open) {
				return nil
			}
			expr = ast.NewIndexExpr(expr, index, p.spanFrom(expr.Span()))

		default:
			return expr
		}
	}
}

// parseCallArgs parses `(arg, ...)` starting at the opening paren.
func (p *Parser) parseCallArgs() ([]ast.Expr, bool) {
	open := p.nextToken() // (
	defer p.allowStructLit()()

	return parseDelimited(p, delimitedConfig{Opener: open, Closing: lexer.RPAREN}, func(int) (ast.Expr, bool) {
		arg := p.parseExpr()
		return arg, arg != nil
	})
}

// parseNestedExpr parses an expression inside brackets or parens, where
// struct literals are always allowed.
func (p *Parser) parseNestedExpr() ast.Expr {
	defer p.allowStructLit()()
	return p.parseExpr()
}
