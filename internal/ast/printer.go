package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Sprint renders a node as a compact S-expression. Expressions and statements
// use prefix form (`(Add 1 (Mul 2 3))`); patterns and types are printed the
// way they are written in source.
func Sprint(node Node) string {
	var p printer
	p.node(node)
	return p.String()
}

type printer struct {
	strings.Builder
}

func (p *printer) printf(format string, args ...any) {
	fmt.Fprintf(p, format, args...)
}

func (p *printer) node(node Node) {
	switch n := node.(type) {
	case nil:
		p.WriteString("<nil>")
	case *Program:
		p.WriteString("(program")
		for _, item := range n.Items {
			p.WriteByte(' ')
			p.node(item)
		}
		p.WriteByte(')')
	case Decl:
		p.decl(n)
	case Stmt:
		p.stmt(n)
	case Expr:
		p.expr(n)
	case Pattern:
		p.pattern(n)
	case TypeExpr:
		p.typ(n)
	case *Param:
		p.param(n)
	case *MatchArm:
		p.arm(n)
	case *Generics:
		p.generics(n)
	default:
		p.printf("<%T>", node)
	}
}

func (p *printer) open(vis Visibility, keyword string) {
	p.WriteByte('(')
	if vis == Public {
		p.WriteString("pub ")
	}
	p.WriteString(keyword)
}

func (p *printer) decl(d Decl) {
	switch n := d.(type) {
	case *FnDecl:
		p.open(n.Visibility, "fn ")
		p.WriteString(n.Name.Name)
		p.generics(n.Generics)
		p.WriteString(" (params")
		for _, param := range n.Params {
			p.WriteByte(' ')
			p.param(param)
		}
		p.WriteByte(')')
		if n.ReturnType != nil {
			p.WriteString(" -> ")
			p.typ(n.ReturnType)
		}
		p.WriteByte(' ')
		p.expr(n.Body)
		p.WriteByte(')')
	case *StructDecl:
		p.open(n.Visibility, "struct ")
		p.WriteString(n.Name.Name)
		p.generics(n.Generics)
		for _, f := range n.Fields {
			p.WriteString(" (")
			if f.Visibility == Public {
				p.WriteString("pub ")
			}
			p.WriteString(f.Name.Name)
			p.WriteByte(' ')
			p.typ(f.Type)
			p.WriteByte(')')
		}
		p.WriteByte(')')
	case *EnumDecl:
		p.open(n.Visibility, "enum ")
		p.WriteString(n.Name.Name)
		p.generics(n.Generics)
		for _, v := range n.Variants {
			p.WriteByte(' ')
			p.WriteString(v.Name.Name)
			if v.Tuple {
				p.WriteByte('(')
				p.types(v.Fields)
				p.WriteByte(')')
			}
		}
		p.WriteByte(')')
	case *ConstDecl:
		p.open(n.Visibility, "const ")
		p.WriteString(n.Name.Name)
		p.WriteByte(' ')
		p.typ(n.Type)
		p.WriteByte(' ')
		p.expr(n.Value)
		p.WriteByte(')')
	case *StaticDecl:
		p.open(n.Visibility, "static ")
		if n.Mutable {
			p.WriteString("mut ")
		}
		p.WriteString(n.Name.Name)
		p.WriteByte(' ')
		p.typ(n.Type)
		p.WriteByte(' ')
		p.expr(n.Value)
		p.WriteByte(')')
	case *ImportDecl:
		p.open(n.Visibility, "import ")
		p.WriteString(identPath(n.Path))
		if n.Alias != nil {
			p.WriteString(" as ")
			p.WriteString(n.Alias.Name)
		}
		p.WriteByte(')')
	case *ExportDecl:
		p.open(n.Visibility, "export")
		for _, name := range n.Names {
			p.WriteByte(' ')
			p.WriteString(name.Name)
		}
		p.WriteByte(')')
	default:
		p.printf("<%T>", d)
	}
}

func (p *printer) generics(g *Generics) {
	if g == nil {
		return
	}
	p.WriteByte('<')
	for i, param := range g.Params {
		if i > 0 {
			p.WriteString(", ")
		}
		p.WriteString(param.Name.Name)
		for j, bound := range param.Bounds {
			if j == 0 {
				p.WriteString(": ")
			} else {
				p.WriteString(" + ")
			}
			p.WriteString(bound.Name)
		}
	}
	p.WriteByte('>')
}

func (p *printer) param(param *Param) {
	p.WriteByte('(')
	p.pattern(param.Pattern)
	if param.Type != nil {
		p.WriteByte(' ')
		p.typ(param.Type)
	}
	p.WriteByte(')')
}

func (p *printer) stmt(s Stmt) {
	switch n := s.(type) {
	case *LetStmt:
		p.WriteString("(let ")
		if n.Mutable {
			p.WriteString("mut ")
		}
		p.pattern(n.Pattern)
		if n.Type != nil {
			p.WriteString(" : ")
			p.typ(n.Type)
		}
		if n.Value != nil {
			p.WriteString(" = ")
			p.expr(n.Value)
		}
		p.WriteByte(')')
	case *ExprStmt:
		if n.Semicolon {
			p.WriteString("(; ")
			p.expr(n.Expr)
			p.WriteByte(')')
			return
		}
		p.expr(n.Expr)
	case *ReturnStmt:
		p.keywordWithValue("return", nil, n.Value)
	case *IfStmt:
		p.expr(n.If)
	case *WhileStmt:
		p.expr(n.Loop)
	case *ForStmt:
		p.expr(n.Loop)
	case *MatchStmt:
		p.expr(n.Match)
	case *BreakStmt:
		p.keywordWithValue("break", n.Label, n.Value)
	case *ContinueStmt:
		p.keywordWithValue("continue", n.Label, nil)
	case *BlockStmt:
		p.expr(n.Block)
	default:
		p.printf("<%T>", s)
	}
}

func (p *printer) keywordWithValue(keyword string, label *Ident, value Expr) {
	p.WriteByte('(')
	p.WriteString(keyword)
	if label != nil {
		p.WriteByte(' ')
		p.WriteString(label.Name)
	}
	if value != nil {
		p.WriteByte(' ')
		p.expr(value)
	}
	p.WriteByte(')')
}

func (p *printer) list(head string, exprs ...Expr) {
	p.WriteByte('(')
	p.WriteString(head)
	for _, e := range exprs {
		p.WriteByte(' ')
		p.expr(e)
	}
	p.WriteByte(')')
}

func (p *printer) expr(e Expr) {
	switch n := e.(type) {
	case nil:
		p.WriteString("<nil>")
	case *Ident:
		p.WriteString(n.Name)
	case *IntegerLit:
		p.WriteString(strconv.FormatInt(int64(n.Value), 10))
	case *BoolLit:
		p.WriteString(strconv.FormatBool(n.Value))
	case *CharLit:
		p.WriteString(strconv.QuoteRune(n.Value))
	case *StringLit:
		p.WriteString(strconv.Quote(n.Value))
	case *PrefixExpr:
		p.list(n.Op.String(), n.Expr)
	case *InfixExpr:
		p.list(n.Op.String(), n.Left, n.Right)
	case *AssignExpr:
		p.list("=", n.Target, n.Value)
	case *CompoundAssignExpr:
		p.list(n.Op.Symbol()+"=", n.Target, n.Value)
	case *CallExpr:
		p.list("call", append([]Expr{n.Callee}, n.Args...)...)
	case *MethodCallExpr:
		p.list("method "+n.Method.Name, append([]Expr{n.Receiver}, n.Args...)...)
	case *FieldExpr:
		p.list("field "+n.Field.Name, n.Target)
	case *IndexExpr:
		p.list("index", n.Target, n.Index)
	case *StructLiteral:
		p.WriteString("(struct ")
		p.WriteString(n.Name.Name)
		for _, f := range n.Fields {
			p.WriteString(" (")
			p.WriteString(f.Name.Name)
			p.WriteByte(' ')
			p.expr(f.Value)
			p.WriteByte(')')
		}
		p.WriteByte(')')
	case *ArrayLiteral:
		p.list("array", n.Elements...)
	case *TupleLiteral:
		p.list("tuple", n.Elements...)
	case *RangeExpr:
		head := "range"
		if n.Inclusive {
			head = "range="
		}
		p.list(head, n.Start, n.End)
	case *CastExpr:
		p.WriteString("(as ")
		p.expr(n.Expr)
		p.WriteByte(' ')
		p.typ(n.Type)
		p.WriteByte(')')
	case *BlockExpr:
		p.WriteString("(block")
		for _, s := range n.Stmts {
			p.WriteByte(' ')
			p.stmt(s)
		}
		p.WriteByte(')')
	case *IfExpr:
		p.WriteString("(if ")
		p.expr(n.Cond)
		p.WriteByte(' ')
		p.expr(n.Then)
		if n.Else != nil {
			p.WriteByte(' ')
			p.expr(n.Else)
		}
		p.WriteByte(')')
	case *MatchExpr:
		p.WriteString("(match ")
		p.expr(n.Subject)
		for _, arm := range n.Arms {
			p.WriteByte(' ')
			p.arm(arm)
		}
		p.WriteByte(')')
	case *WhileExpr:
		p.list("while", n.Cond, n.Body)
	case *ForExpr:
		p.WriteString("(for ")
		p.pattern(n.Pattern)
		p.WriteByte(' ')
		p.expr(n.Iterable)
		p.WriteByte(' ')
		p.expr(n.Body)
		p.WriteByte(')')
	case *BreakExpr:
		p.keywordWithValue("break", n.Label, n.Value)
	case *ContinueExpr:
		p.keywordWithValue("continue", n.Label, nil)
	case *ReturnExpr:
		p.keywordWithValue("return", nil, n.Value)
	case *ClosureExpr:
		p.WriteString("(closure (params")
		for _, param := range n.Params {
			p.WriteByte(' ')
			p.param(param)
		}
		p.WriteByte(')')
		if n.ReturnType != nil {
			p.WriteString(" -> ")
			p.typ(n.ReturnType)
		}
		p.WriteByte(' ')
		p.expr(n.Body)
		p.WriteByte(')')
	default:
		p.printf("<%T>", e)
	}
}

func (p *printer) arm(arm *MatchArm) {
	p.WriteString("(arm ")
	p.pattern(arm.Pattern)
	if arm.Guard != nil {
		p.WriteString(" if ")
		p.expr(arm.Guard)
	}
	p.WriteByte(' ')
	p.expr(arm.Body)
	p.WriteByte(')')
}

func (p *printer) pattern(pat Pattern) {
	switch n := pat.(type) {
	case nil:
		p.WriteString("<nil>")
	case *PatternWild:
		p.WriteByte('_')
	case *PatternIdent:
		if n.Mutable {
			p.WriteString("mut ")
		}
		p.WriteString(n.Name.Name)
	case *PatternLiteral:
		if neg, ok := n.Value.(*PrefixExpr); ok && neg.Op == OpNeg {
			p.WriteByte('-')
			p.expr(neg.Expr)
			return
		}
		p.expr(n.Value)
	case *PatternTuple:
		p.WriteByte('(')
		p.patterns(n.Elements, ", ")
		p.WriteByte(')')
	case *PatternTupleStruct:
		p.WriteString(n.Name.Name)
		p.WriteByte('(')
		p.patterns(n.Elements, ", ")
		p.WriteByte(')')
	case *PatternStruct:
		p.WriteString(n.Name.Name)
		p.WriteString(" {")
		for i, f := range n.Fields {
			if i > 0 {
				p.WriteByte(',')
			}
			p.WriteByte(' ')
			p.WriteString(f.Name.Name)
			if !f.Shorthand {
				p.WriteString(": ")
				p.pattern(f.Pattern)
			}
		}
		p.WriteString(" }")
	case *PatternOr:
		p.patterns(n.Alternatives, " | ")
	default:
		p.printf("<%T>", pat)
	}
}

func (p *printer) patterns(pats []Pattern, sep string) {
	for i, pat := range pats {
		if i > 0 {
			p.WriteString(sep)
		}
		p.pattern(pat)
	}
}

func (p *printer) typ(t TypeExpr) {
	switch n := t.(type) {
	case nil:
		p.WriteString("<nil>")
	case *PrimitiveType:
		if n.Kind == Unit {
			p.WriteString("()")
			return
		}
		p.WriteString(strings.ToLower(n.Kind.String()))
	case *NamedType:
		p.WriteString(n.Name.Name)
	case *GenericType:
		p.WriteString(n.Name.Name)
		p.WriteByte('<')
		p.types(n.Args)
		p.WriteByte('>')
	case *ArrayType:
		p.WriteByte('[')
		p.typ(n.Elem)
		p.printf("; %d]", n.Size)
	case *SliceType:
		p.WriteByte('[')
		p.typ(n.Elem)
		p.WriteByte(']')
	case *TupleType:
		p.WriteByte('(')
		p.types(n.Elems)
		p.WriteByte(')')
	case *PointerType:
		p.WriteByte('*')
		if n.Mutable {
			p.WriteString("mut ")
		}
		p.typ(n.Elem)
	case *ReferenceType:
		p.WriteByte('&')
		if n.Mutable {
			p.WriteString("mut ")
		}
		p.typ(n.Elem)
	case *FunctionType:
		p.WriteString("fn(")
		p.types(n.Params)
		p.WriteString(") -> ")
		p.typ(n.Return)
	case *NeverType:
		p.WriteByte('!')
	case *InferType:
		p.WriteByte('_')
	default:
		p.printf("<%T>", t)
	}
}

func (p *printer) types(types []TypeExpr) {
	for i, t := range types {
		if i > 0 {
			p.WriteString(", ")
		}
		p.typ(t)
	}
}

func identPath(path []*Ident) string {
	parts := make([]string, len(path))
	for i, id := range path {
		parts[i] = id.Name
	}
	return strings.Join(parts, "::")
}
