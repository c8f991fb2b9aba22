package ast

import "github.com/haiman1024/Contractus/internal/lexer"

// IntegerLit represents an integer literal. Text keeps the source spelling
// (`0xff`, `1_000`).
type IntegerLit struct {
	Value int32
	Text  string
	span  lexer.Span
}

// NewIntegerLit constructs an integer literal node.
func NewIntegerLit(value int32, text string, span lexer.Span) *IntegerLit {
	return &IntegerLit{Value: value, Text: text, span: span}
}

func (l *IntegerLit) Span() lexer.Span        { return l.span }
func (l *IntegerLit) SetSpan(span lexer.Span) { l.span = span }
func (*IntegerLit) exprNode()                 {}

// BoolLit represents `true` or `false`.
type BoolLit struct {
	Value bool
	span  lexer.Span
}

// NewBoolLit constructs a boolean literal node.
func NewBoolLit(value bool, span lexer.Span) *BoolLit {
	return &BoolLit{Value: value, span: span}
}

func (l *BoolLit) Span() lexer.Span        { return l.span }
func (l *BoolLit) SetSpan(span lexer.Span) { l.span = span }
func (*BoolLit) exprNode()                 {}

// CharLit represents a character literal.
type CharLit struct {
	Value rune
	span  lexer.Span
}

// NewCharLit constructs a character literal node.
func NewCharLit(value rune, span lexer.Span) *CharLit {
	return &CharLit{Value: value, span: span}
}

func (l *CharLit) Span() lexer.Span        { return l.span }
func (l *CharLit) SetSpan(span lexer.Span) { l.span = span }
func (*CharLit) exprNode()                 {}

// StringLit represents a string literal with escapes already decoded.
type StringLit struct {
	Value string
	span  lexer.Span
}

// NewStringLit constructs a string literal node.
func NewStringLit(value string, span lexer.Span) *StringLit {
	return &StringLit{Value: value, span: span}
}

func (l *StringLit) Span() lexer.Span        { return l.span }
func (l *StringLit) SetSpan(span lexer.Span) { l.span = span }
func (*StringLit) exprNode()                 {}

// PrefixExpr represents a prefix expression.
type PrefixExpr struct {
	Op   UnaryOp
	Expr Expr
	span lexer.Span
}

// NewPrefixExpr constructs a prefix expression node.
func NewPrefixExpr(op UnaryOp, expr Expr, span lexer.Span) *PrefixExpr {
	return &PrefixExpr{Op: op, Expr: expr, span: span}
}

func (e *PrefixExpr) Span() lexer.Span        { return e.span }
func (e *PrefixExpr) SetSpan(span lexer.Span) { e.span = span }
func (*PrefixExpr) exprNode()                 {}

// InfixExpr represents a binary expression.
type InfixExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	span  lexer.Span
}

// NewInfixExpr constructs an infix expression node.
func NewInfixExpr(op BinaryOp, left, right Expr, span lexer.Span) *InfixExpr {
	return &InfixExpr{Op: op, Left: left, Right: right, span: span}
}

func (e *InfixExpr) Span() lexer.Span        { return e.span }
func (e *InfixExpr) SetSpan(span lexer.Span) { e.span = span }
func (*InfixExpr) exprNode()                 {}

// AssignExpr represents `target = value`.
type AssignExpr struct {
	Target Expr
	Value  Expr
	span   lexer.Span
}

// NewAssignExpr constructs an assignment node.
func NewAssignExpr(target, value Expr, span lexer.Span) *AssignExpr {
	return &AssignExpr{Target: target, Value: value, span: span}
}

func (e *AssignExpr) Span() lexer.Span        { return e.span }
func (e *AssignExpr) SetSpan(span lexer.Span) { e.span = span }
func (*AssignExpr) exprNode()                 {}

// CompoundAssignExpr represents `target op= value`.
type CompoundAssignExpr struct {
	Op     BinaryOp
	Target Expr
	Value  Expr
	span   lexer.Span
}

// NewCompoundAssignExpr constructs a compound assignment node.
func NewCompoundAssignExpr(op BinaryOp, target, value Expr, span lexer.Span) *CompoundAssignExpr {
	return &CompoundAssignExpr{Op: op, Target: target, Value: value, span: span}
}

func (e *CompoundAssignExpr) Span() lexer.Span        { return e.span }
func (e *CompoundAssignExpr) SetSpan(span lexer.Span) { e.span = span }
func (*CompoundAssignExpr) exprNode()                 {}

// CallExpr represents a function call.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	span   lexer.Span
}

// NewCallExpr constructs a call expression node.
func NewCallExpr(callee Expr, args []Expr, span lexer.Span) *CallExpr {
	return &CallExpr{Callee: callee, Args: args, span: span}
}

func (e *CallExpr) Span() lexer.Span        { return e.span }
func (e *CallExpr) SetSpan(span lexer.Span) { e.span = span }
func (*CallExpr) exprNode()                 {}

// MethodCallExpr represents `receiver.method(args)`.
type MethodCallExpr struct {
	Receiver Expr
	Method   *Ident
	Args     []Expr
	span     lexer.Span
}

// NewMethodCallExpr constructs a method call node.
func NewMethodCallExpr(receiver Expr, method *Ident, args []Expr, span lexer.Span) *MethodCallExpr {
	return &MethodCallExpr{Receiver: receiver, Method: method, Args: args, span: span}
}

func (e *MethodCallExpr) Span() lexer.Span        { return e.span }
func (e *MethodCallExpr) SetSpan(span lexer.Span) { e.span = span }
func (*MethodCallExpr) exprNode()                 {}

// FieldExpr represents a field access. Tuple element access (`t.0`) uses the
// decimal index as the field name.
type FieldExpr struct {
	Target Expr
	Field  *Ident
	span   lexer.Span
}

// NewFieldExpr constructs a field access node.
func NewFieldExpr(target Expr, field *Ident, span lexer.Span) *FieldExpr {
	return &FieldExpr{Target: target, Field: field, span: span}
}

func (e *FieldExpr) Span() lexer.Span        { return e.span }
func (e *FieldExpr) SetSpan(span lexer.Span) { e.span = span }
func (*FieldExpr) exprNode()                 {}

// IndexExpr represents `target[index]`.
type IndexExpr struct {
	Target Expr
	Index  Expr
	span   lexer.Span
}

// NewIndexExpr constructs an index expression node.
func NewIndexExpr(target, index Expr, span lexer.Span) *IndexExpr {
	return &IndexExpr{Target: target, Index: index, span: span}
}

func (e *IndexExpr) Span() lexer.Span        { return e.span }
func (e *IndexExpr) SetSpan(span lexer.Span) { e.span = span }
func (*IndexExpr) exprNode()                 {}

// StructLiteral represents `Name { field: value, ... }`.
type StructLiteral struct {
	Name   *Ident
	Fields []*StructLiteralField
	span   lexer.Span
}

// NewStructLiteral constructs a struct literal node.
func NewStructLiteral(name *Ident, fields []*StructLiteralField, span lexer.Span) *StructLiteral {
	return &StructLiteral{Name: name, Fields: fields, span: span}
}

func (e *StructLiteral) Span() lexer.Span        { return e.span }
func (e *StructLiteral) SetSpan(span lexer.Span) { e.span = span }
func (*StructLiteral) exprNode()                 {}

// StructLiteralField is one `name: value` entry. Shorthand entries (`Point { x }`)
// carry an Ident value with the field's own name.
type StructLiteralField struct {
	Name      *Ident
	Value     Expr
	Shorthand bool
	span      lexer.Span
}

// NewStructLiteralField constructs a struct literal field.
func NewStructLiteralField(name *Ident, value Expr, shorthand bool, span lexer.Span) *StructLiteralField {
	return &StructLiteralField{Name: name, Value: value, Shorthand: shorthand, span: span}
}

func (f *StructLiteralField) Span() lexer.Span        { return f.span }
func (f *StructLiteralField) SetSpan(span lexer.Span) { f.span = span }

// ArrayLiteral represents `[a, b, c]`. The `[e; n]` form is expanded into n
// elements while parsing.
type ArrayLiteral struct {
	Elements []Expr
	span     lexer.Span
}

// NewArrayLiteral constructs an array literal node.
func NewArrayLiteral(elements []Expr, span lexer.Span) *ArrayLiteral {
	return &ArrayLiteral{Elements: elements, span: span}
}

func (e *ArrayLiteral) Span() lexer.Span        { return e.span }
func (e *ArrayLiteral) SetSpan(span lexer.Span) { e.span = span }
func (*ArrayLiteral) exprNode()                 {}

// TupleLiteral represents `(a, b)`. The unit value `()` is a tuple with no elements.
type TupleLiteral struct {
	Elements []Expr
	span     lexer.Span
}

// NewTupleLiteral constructs a tuple literal node.
func NewTupleLiteral(elements []Expr, span lexer.Span) *TupleLiteral {
	return &TupleLiteral{Elements: elements, span: span}
}

func (e *TupleLiteral) Span() lexer.Span        { return e.span }
func (e *TupleLiteral) SetSpan(span lexer.Span) { e.span = span }
func (*TupleLiteral) exprNode()                 {}

// RangeExpr represents `start..end` or `start..=end`.
type RangeExpr struct {
	Start     Expr
	End       Expr
	Inclusive bool
	span      lexer.Span
}

// NewRangeExpr constructs a range expression node.
func NewRangeExpr(start, end Expr, inclusive bool, span lexer.Span) *RangeExpr {
	return &RangeExpr{Start: start, End: end, Inclusive: inclusive, span: span}
}

func (e *RangeExpr) Span() lexer.Span        { return e.span }
func (e *RangeExpr) SetSpan(span lexer.Span) { e.span = span }
func (*RangeExpr) exprNode()                 {}

// CastExpr represents `expr as Type`.
type CastExpr struct {
	Expr Expr
	Type TypeExpr
	span lexer.Span
}

// NewCastExpr constructs a cast expression node.
func NewCastExpr(expr Expr, typ TypeExpr, span lexer.Span) *CastExpr {
	return &CastExpr{Expr: expr, Type: typ, span: span}
}

func (e *CastExpr) Span() lexer.Span        { return e.span }
func (e *CastExpr) SetSpan(span lexer.Span) { e.span = span }
func (*CastExpr) exprNode()                 {}

// BlockExpr represents a braced sequence of statements.
type BlockExpr struct {
	Stmts []Stmt
	span  lexer.Span
}

// NewBlockExpr constructs a block expression node.
func NewBlockExpr(stmts []Stmt, span lexer.Span) *BlockExpr {
	return &BlockExpr{Stmts: stmts, span: span}
}

func (b *BlockExpr) Span() lexer.Span        { return b.span }
func (b *BlockExpr) SetSpan(span lexer.Span) { b.span = span }
func (*BlockExpr) exprNode()                 {}

// Tail returns the block's value expression: the final statement when it is an
// expression without a trailing semicolon. It returns nil otherwise.
func (b *BlockExpr) Tail() Expr {
	if len(b.Stmts) == 0 {
		return nil
	}
	if stmt, ok := b.Stmts[len(b.Stmts)-1].(*ExprStmt); ok && !stmt.Semicolon {
		return stmt.Expr
	}
	return nil
}

// IfExpr represents an if expression. Else is nil, a *BlockExpr or, for
// `else if`, another *IfExpr.
type IfExpr struct {
	Cond Expr
	Then *BlockExpr
	Else Expr
	span lexer.Span
}

// NewIfExpr constructs an if expression node.
func NewIfExpr(cond Expr, then *BlockExpr, els Expr, span lexer.Span) *IfExpr {
	return &IfExpr{Cond: cond, Then: then, Else: els, span: span}
}

func (e *IfExpr) Span() lexer.Span        { return e.span }
func (e *IfExpr) SetSpan(span lexer.Span) { e.span = span }
func (*IfExpr) exprNode()                 {}

// MatchExpr represents a match expression.
type MatchExpr struct {
	Subject Expr
	Arms    []*MatchArm
	span    lexer.Span
}

// NewMatchExpr constructs a match expression node.
func NewMatchExpr(subject Expr, arms []*MatchArm, span lexer.Span) *MatchExpr {
	return &MatchExpr{Subject: subject, Arms: arms, span: span}
}

func (e *MatchExpr) Span() lexer.Span        { return e.span }
func (e *MatchExpr) SetSpan(span lexer.Span) { e.span = span }
func (*MatchExpr) exprNode()                 {}

// MatchArm represents `pattern [if guard] => body`.
type MatchArm struct {
	Pattern Pattern
	Guard   Expr
	Body    Expr
	span    lexer.Span
}

// NewMatchArm constructs a match arm.
func NewMatchArm(pat Pattern, guard, body Expr, span lexer.Span) *MatchArm {
	return &MatchArm{Pattern: pat, Guard: guard, Body: body, span: span}
}

func (a *MatchArm) Span() lexer.Span        { return a.span }
func (a *MatchArm) SetSpan(span lexer.Span) { a.span = span }

// WhileExpr represents a while loop.
type WhileExpr struct {
	Cond Expr
	Body *BlockExpr
	span lexer.Span
}

// NewWhileExpr constructs a while loop node.
func NewWhileExpr(cond Expr, body *BlockExpr, span lexer.Span) *WhileExpr {
	return &WhileExpr{Cond: cond, Body: body, span: span}
}

func (e *WhileExpr) Span() lexer.Span        { return e.span }
func (e *WhileExpr) SetSpan(span lexer.Span) { e.span = span }
func (*WhileExpr) exprNode()                 {}

// ForExpr represents `for pattern in iterable { body }`.
type ForExpr struct {
	Pattern  Pattern
	Iterable Expr
	Body     *BlockExpr
	span     lexer.Span
}

// NewForExpr constructs a for loop node.
func NewForExpr(pat Pattern, iterable Expr, body *BlockExpr, span lexer.Span) *ForExpr {
	return &ForExpr{Pattern: pat, Iterable: iterable, Body: body, span: span}
}

func (e *ForExpr) Span() lexer.Span        { return e.span }
func (e *ForExpr) SetSpan(span lexer.Span) { e.span = span }
func (*ForExpr) exprNode()                 {}

// BreakExpr represents `break` in expression position.
type BreakExpr struct {
	Label *Ident
	Value Expr
	span  lexer.Span
}

// NewBreakExpr constructs a break expression node.
func NewBreakExpr(label *Ident, value Expr, span lexer.Span) *BreakExpr {
	return &BreakExpr{Label: label, Value: value, span: span}
}

func (e *BreakExpr) Span() lexer.Span        { return e.span }
func (e *BreakExpr) SetSpan(span lexer.Span) { e.span = span }
func (*BreakExpr) exprNode()                 {}

// ContinueExpr represents `continue` in expression position.
type ContinueExpr struct {
	Label *Ident
	span  lexer.Span
}

// NewContinueExpr constructs a continue expression node.
func NewContinueExpr(label *Ident, span lexer.Span) *ContinueExpr {
	return &ContinueExpr{Label: label, span: span}
}

func (e *ContinueExpr) Span() lexer.Span        { return e.span }
func (e *ContinueExpr) SetSpan(span lexer.Span) { e.span = span }
func (*ContinueExpr) exprNode()                 {}

// ReturnExpr represents `return` in expression position.
type ReturnExpr struct {
	Value Expr
	span  lexer.Span
}

// NewReturnExpr constructs a return expression node.
func NewReturnExpr(value Expr, span lexer.Span) *ReturnExpr {
	return &ReturnExpr{Value: value, span: span}
}

func (e *ReturnExpr) Span() lexer.Span        { return e.span }
func (e *ReturnExpr) SetSpan(span lexer.Span) { e.span = span }
func (*ReturnExpr) exprNode()                 {}

// ClosureExpr represents `|params| body` or `(params) -> T { body }`.
type ClosureExpr struct {
	Params     []*Param
	ReturnType TypeExpr
	Body       Expr
	span       lexer.Span
}

// NewClosureExpr constructs a closure node.
func NewClosureExpr(params []*Param, returnType TypeExpr, body Expr, span lexer.Span) *ClosureExpr {
	return &ClosureExpr{Params: params, ReturnType: returnType, Body: body, span: span}
}

func (e *ClosureExpr) Span() lexer.Span        { return e.span }
func (e *ClosureExpr) SetSpan(span lexer.Span) { e.span = span }
func (*ClosureExpr) exprNode()                 {}
