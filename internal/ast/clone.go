package ast

import "fmt"

// CloneExpr returns a deep copy of e. Every node in the result is freshly
// allocated, so the copy shares nothing with the original.
func CloneExpr(e Expr) Expr {
	if e == nil {
		return nil
	}

	switch n := e.(type) {
	case *Ident:
		return cloneIdent(n)
	case *IntegerLit:
		c := *n
		return &c
	case *BoolLit:
		c := *n
		return &c
	case *CharLit:
		c := *n
		return &c
	case *StringLit:
		c := *n
		return &c
	case *PrefixExpr:
		return NewPrefixExpr(n.Op, CloneExpr(n.Expr), n.span)
	case *InfixExpr:
		return NewInfixExpr(n.Op, CloneExpr(n.Left), CloneExpr(n.Right), n.span)
	case *AssignExpr:
		return NewAssignExpr(CloneExpr(n.Target), CloneExpr(n.Value), n.span)
	case *CompoundAssignExpr:
		return NewCompoundAssignExpr(n.Op, CloneExpr(n.Target), CloneExpr(n.Value), n.span)
	case *CallExpr:
		return NewCallExpr(CloneExpr(n.Callee), cloneExprs(n.Args), n.span)
	case *MethodCallExpr:
		return NewMethodCallExpr(CloneExpr(n.Receiver), cloneIdent(n.Method), cloneExprs(n.Args), n.span)
	case *FieldExpr:
		return NewFieldExpr(CloneExpr(n.Target), cloneIdent(n.Field), n.span)
	case *IndexExpr:
		return NewIndexExpr(CloneExpr(n.Target), CloneExpr(n.Index), n.span)
	case *StructLiteral:
		fields := make([]*StructLiteralField, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = NewStructLiteralField(cloneIdent(f.Name), CloneExpr(f.Value), f.Shorthand, f.span)
		}
		return NewStructLiteral(cloneIdent(n.Name), fields, n.span)
	case *ArrayLiteral:
		return NewArrayLiteral(cloneExprs(n.Elements), n.span)
	case *TupleLiteral:
		return NewTupleLiteral(cloneExprs(n.Elements), n.span)
	case *RangeExpr:
		return NewRangeExpr(CloneExpr(n.Start), CloneExpr(n.End), n.Inclusive, n.span)
	case *CastExpr:
		return NewCastExpr(CloneExpr(n.Expr), CloneType(n.Type), n.span)
	case *BlockExpr:
		return cloneBlock(n)
	case *IfExpr:
		return NewIfExpr(CloneExpr(n.Cond), cloneBlock(n.Then), CloneExpr(n.Else), n.span)
	case *MatchExpr:
		return cloneMatch(n)
	case *WhileExpr:
		return NewWhileExpr(CloneExpr(n.Cond), cloneBlock(n.Body), n.span)
	case *ForExpr:
		return NewForExpr(ClonePattern(n.Pattern), CloneExpr(n.Iterable), cloneBlock(n.Body), n.span)
	case *BreakExpr:
		return NewBreakExpr(cloneIdent(n.Label), CloneExpr(n.Value), n.span)
	case *ContinueExpr:
		return NewContinueExpr(cloneIdent(n.Label), n.span)
	case *ReturnExpr:
		return NewReturnExpr(CloneExpr(n.Value), n.span)
	case *ClosureExpr:
		return NewClosureExpr(cloneParams(n.Params), CloneType(n.ReturnType), CloneExpr(n.Body), n.span)
	default:
		panic(fmt.Sprintf("ast: CloneExpr: unhandled expression %T", e))
	}
}

// CloneStmt returns a deep copy of s.
func CloneStmt(s Stmt) Stmt {
	if s == nil {
		return nil
	}

	switch n := s.(type) {
	case *LetStmt:
		return NewLetStmt(n.Mutable, ClonePattern(n.Pattern), CloneType(n.Type), CloneExpr(n.Value), n.span)
	case *ExprStmt:
		return NewExprStmt(CloneExpr(n.Expr), n.Semicolon, n.span)
	case *ReturnStmt:
		return NewReturnStmt(CloneExpr(n.Value), n.span)
	case *IfStmt:
		return NewIfStmt(CloneExpr(n.If).(*IfExpr), n.span)
	case *WhileStmt:
		return NewWhileStmt(CloneExpr(n.Loop).(*WhileExpr), n.span)
	case *ForStmt:
		return NewForStmt(CloneExpr(n.Loop).(*ForExpr), n.span)
	case *MatchStmt:
		return NewMatchStmt(cloneMatch(n.Match), n.span)
	case *BreakStmt:
		return NewBreakStmt(cloneIdent(n.Label), CloneExpr(n.Value), n.span)
	case *ContinueStmt:
		return NewContinueStmt(cloneIdent(n.Label), n.span)
	case *BlockStmt:
		return NewBlockStmt(cloneBlock(n.Block), n.span)
	default:
		panic(fmt.Sprintf("ast: CloneStmt: unhandled statement %T", s))
	}
}

// ClonePattern returns a deep copy of p.
func ClonePattern(p Pattern) Pattern {
	if p == nil {
		return nil
	}

	switch n := p.(type) {
	case *PatternWild:
		return NewPatternWild(n.span)
	case *PatternIdent:
		return NewPatternIdent(cloneIdent(n.Name), n.Mutable, n.span)
	case *PatternLiteral:
		return NewPatternLiteral(CloneExpr(n.Value), n.span)
	case *PatternTuple:
		return NewPatternTuple(clonePatterns(n.Elements), n.span)
	case *PatternTupleStruct:
		return NewPatternTupleStruct(cloneIdent(n.Name), clonePatterns(n.Elements), n.span)
	case *PatternStruct:
		fields := make([]*PatternStructField, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = NewPatternStructField(cloneIdent(f.Name), ClonePattern(f.Pattern), f.Shorthand, f.span)
		}
		return NewPatternStruct(cloneIdent(n.Name), fields, n.span)
	case *PatternOr:
		return NewPatternOr(clonePatterns(n.Alternatives), n.span)
	default:
		panic(fmt.Sprintf("ast: ClonePattern: unhandled pattern %T", p))
	}
}

// CloneType returns a deep copy of t.
func CloneType(t TypeExpr) TypeExpr {
	if t == nil {
		return nil
	}

	switch n := t.(type) {
	case *PrimitiveType:
		return NewPrimitiveType(n.Kind, n.span)
	case *NamedType:
		return NewNamedType(cloneIdent(n.Name), n.span)
	case *GenericType:
		return NewGenericType(cloneIdent(n.Name), cloneTypes(n.Args), n.span)
	case *ArrayType:
		return NewArrayType(CloneType(n.Elem), n.Size, n.span)
	case *SliceType:
		return NewSliceType(CloneType(n.Elem), n.span)
	case *TupleType:
		return NewTupleType(cloneTypes(n.Elems), n.span)
	case *PointerType:
		return NewPointerType(n.Mutable, CloneType(n.Elem), n.span)
	case *ReferenceType:
		return NewReferenceType(n.Mutable, CloneType(n.Elem), n.span)
	case *FunctionType:
		return NewFunctionType(cloneTypes(n.Params), CloneType(n.Return), n.span)
	case *NeverType:
		return NewNeverType(n.span)
	case *InferType:
		return NewInferType(n.span)
	default:
		panic(fmt.Sprintf("ast: CloneType: unhandled type %T", t))
	}
}

func cloneIdent(id *Ident) *Ident {
	if id == nil {
		return nil
	}
	return NewIdent(id.Name, id.span)
}

func cloneBlock(b *BlockExpr) *BlockExpr {
	if b == nil {
		return nil
	}
	stmts := make([]Stmt, len(b.Stmts))
	for i, s := range b.Stmts {
		stmts[i] = CloneStmt(s)
	}
	return NewBlockExpr(stmts, b.span)
}

func cloneMatch(m *MatchExpr) *MatchExpr {
	arms := make([]*MatchArm, len(m.Arms))
	for i, arm := range m.Arms {
		arms[i] = NewMatchArm(ClonePattern(arm.Pattern), CloneExpr(arm.Guard), CloneExpr(arm.Body), arm.span)
	}
	return NewMatchExpr(CloneExpr(m.Subject), arms, m.span)
}

func cloneParams(params []*Param) []*Param {
	if params == nil {
		return nil
	}
	out := make([]*Param, len(params))
	for i, p := range params {
		out[i] = NewParam(ClonePattern(p.Pattern), CloneType(p.Type), p.span)
	}
	return out
}

func cloneExprs(exprs []Expr) []Expr {
	if exprs == nil {
		return nil
	}
	out := make([]Expr, len(exprs))
	for i, e := range exprs {
		out[i] = CloneExpr(e)
	}
	return out
}

func clonePatterns(pats []Pattern) []Pattern {
	if pats == nil {
		return nil
	}
	out := make([]Pattern, len(pats))
	for i, p := range pats {
		out[i] = ClonePattern(p)
	}
	return out
}

func cloneTypes(types []TypeExpr) []TypeExpr {
	if types == nil {
		return nil
	}
	out := make([]TypeExpr, len(types))
	for i, t := range types {
		out[i] = CloneType(t)
	}
	return out
}
