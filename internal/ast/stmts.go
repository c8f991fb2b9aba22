package ast

import "github.com/haiman1024/Contractus/internal/lexer"

// LetStmt represents a let binding statement.
type LetStmt struct {
	Mutable bool
	Pattern Pattern
	Type    TypeExpr
	Value   Expr
	span    lexer.Span
}

// NewLetStmt constructs a let statement node.
func NewLetStmt(mutable bool, pat Pattern, typ TypeExpr, value Expr, span lexer.Span) *LetStmt {
	return &LetStmt{
		Mutable: mutable,
		Pattern: pat,
		Type:    typ,
		Value:   value,
		span:    span,
	}
}

func (s *LetStmt) Span() lexer.Span        { return s.span }
func (s *LetStmt) SetSpan(span lexer.Span) { s.span = span }
func (*LetStmt) stmtNode()                 {}

// ExprStmt represents an expression statement. Semicolon records whether the
// expression was terminated; an unterminated final statement is the value of
// its block.
type ExprStmt struct {
	Expr      Expr
	Semicolon bool
	span      lexer.Span
}

func NewExprStmt(expr Expr, semicolon bool, span lexer.Span) *ExprStmt {
	return &ExprStmt{Expr: expr, Semicolon: semicolon, span: span}
}

func (s *ExprStmt) Span() lexer.Span        { return s.span }
func (s *ExprStmt) SetSpan(span lexer.Span) { s.span = span }
func (*ExprStmt) stmtNode()                 {}

// ReturnStmt represents a return statement.
type ReturnStmt struct {
	Value Expr
	span  lexer.Span
}

func NewReturnStmt(value Expr, span lexer.Span) *ReturnStmt {
	return &ReturnStmt{Value: value, span: span}
}

func (s *ReturnStmt) Span() lexer.Span        { return s.span }
func (s *ReturnStmt) SetSpan(span lexer.Span) { s.span = span }
func (*ReturnStmt) stmtNode()                 {}

// IfStmt is an if expression in statement position.
type IfStmt struct {
	If   *IfExpr
	span lexer.Span
}

func NewIfStmt(ifExpr *IfExpr, span lexer.Span) *IfStmt {
	return &IfStmt{If: ifExpr, span: span}
}

func (s *IfStmt) Span() lexer.Span        { return s.span }
func (s *IfStmt) SetSpan(span lexer.Span) { s.span = span }
func (*IfStmt) stmtNode()                 {}

// WhileStmt is a while loop in statement position.
type WhileStmt struct {
	Loop *WhileExpr
	span lexer.Span
}

func NewWhileStmt(loop *WhileExpr, span lexer.Span) *WhileStmt {
	return &WhileStmt{Loop: loop, span: span}
}

func (s *WhileStmt) Span() lexer.Span        { return s.span }
func (s *WhileStmt) SetSpan(span lexer.Span) { s.span = span }
func (*WhileStmt) stmtNode()                 {}

// ForStmt is a for loop in statement position.
type ForStmt struct {
	Loop *ForExpr
	span lexer.Span
}

func NewForStmt(loop *ForExpr, span lexer.Span) *ForStmt {
	return &ForStmt{Loop: loop, span: span}
}

func (s *ForStmt) Span() lexer.Span        { return s.span }
func (s *ForStmt) SetSpan(span lexer.Span) { s.span = span }
func (*ForStmt) stmtNode()                 {}

// MatchStmt is a match expression in statement position.
type MatchStmt struct {
	Match *MatchExpr
	span  lexer.Span
}

func NewMatchStmt(match *MatchExpr, span lexer.Span) *MatchStmt {
	return &MatchStmt{Match: match, span: span}
}

func (s *MatchStmt) Span() lexer.Span        { return s.span }
func (s *MatchStmt) SetSpan(span lexer.Span) { s.span = span }
func (*MatchStmt) stmtNode()                 {}

// BreakStmt represents `break [label] [value];`. Labels are recorded but not
// resolved against enclosing loops.
type BreakStmt struct {
	Label *Ident
	Value Expr
	span  lexer.Span
}

func NewBreakStmt(label *Ident, value Expr, span lexer.Span) *BreakStmt {
	return &BreakStmt{Label: label, Value: value, span: span}
}

func (s *BreakStmt) Span() lexer.Span        { return s.span }
func (s *BreakStmt) SetSpan(span lexer.Span) { s.span = span }
func (*BreakStmt) stmtNode()                 {}

// ContinueStmt represents `continue [label];`.
type ContinueStmt struct {
	Label *Ident
	span  lexer.Span
}

func NewContinueStmt(label *Ident, span lexer.Span) *ContinueStmt {
	return &ContinueStmt{Label: label, span: span}
}

func (s *ContinueStmt) Span() lexer.Span        { return s.span }
func (s *ContinueStmt) SetSpan(span lexer.Span) { s.span = span }
func (*ContinueStmt) stmtNode()                 {}

// BlockStmt is a nested block in statement position.
type BlockStmt struct {
	Block *BlockExpr
	span  lexer.Span
}

func NewBlockStmt(block *BlockExpr, span lexer.Span) *BlockStmt {
	return &BlockStmt{Block: block, span: span}
}

func (s *BlockStmt) Span() lexer.Span        { return s.span }
func (s *BlockStmt) SetSpan(span lexer.Span) { s.span = span }
func (*BlockStmt) stmtNode()                 {}
