package ast

// Walk traverses the AST starting from node, calling fn for each node.
// If fn returns false, Walk stops traversing that branch.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, item := range n.Items {
			Walk(item, fn)
		}

	// Declarations
	case *FnDecl:
		Walk(n.Name, fn)
		walkGenerics(n.Generics, fn)
		for _, param := range n.Params {
			Walk(param, fn)
		}
		walkType(n.ReturnType, fn)
		walkBlock(n.Body, fn)
	case *Param:
		walkPattern(n.Pattern, fn)
		walkType(n.Type, fn)
	case *Generics:
		for _, param := range n.Params {
			Walk(param, fn)
		}
	case *GenericParam:
		Walk(n.Name, fn)
		for _, bound := range n.Bounds {
			Walk(bound, fn)
		}
	case *StructDecl:
		Walk(n.Name, fn)
		walkGenerics(n.Generics, fn)
		for _, field := range n.Fields {
			Walk(field, fn)
		}
	case *StructField:
		Walk(n.Name, fn)
		walkType(n.Type, fn)
	case *EnumDecl:
		Walk(n.Name, fn)
		walkGenerics(n.Generics, fn)
		for _, variant := range n.Variants {
			Walk(variant, fn)
		}
	case *EnumVariant:
		Walk(n.Name, fn)
		for _, field := range n.Fields {
			Walk(field, fn)
		}
	case *ConstDecl:
		Walk(n.Name, fn)
		walkType(n.Type, fn)
		walkExpr(n.Value, fn)
	case *StaticDecl:
		Walk(n.Name, fn)
		walkType(n.Type, fn)
		walkExpr(n.Value, fn)
	case *ImportDecl:
		for _, segment := range n.Path {
			Walk(segment, fn)
		}
		if n.Alias != nil {
			Walk(n.Alias, fn)
		}
	case *ExportDecl:
		for _, name := range n.Names {
			Walk(name, fn)
		}

	// Statements
	case *LetStmt:
		walkPattern(n.Pattern, fn)
		walkType(n.Type, fn)
		walkExpr(n.Value, fn)
	case *ExprStmt:
		walkExpr(n.Expr, fn)
	case *ReturnStmt:
		walkExpr(n.Value, fn)
	case *IfStmt:
		Walk(n.If, fn)
	case *WhileStmt:
		Walk(n.Loop, fn)
	case *ForStmt:
		Walk(n.Loop, fn)
	case *MatchStmt:
		Walk(n.Match, fn)
	case *BreakStmt:
		if n.Label != nil {
			Walk(n.Label, fn)
		}
		walkExpr(n.Value, fn)
	case *ContinueStmt:
		if n.Label != nil {
			Walk(n.Label, fn)
		}
	case *BlockStmt:
		walkBlock(n.Block, fn)

	// Expressions
	case *Ident, *IntegerLit, *BoolLit, *CharLit, *StringLit:
		// leaves
	case *PrefixExpr:
		walkExpr(n.Expr, fn)
	case *InfixExpr:
		walkExpr(n.Left, fn)
		walkExpr(n.Right, fn)
	case *AssignExpr:
		walkExpr(n.Target, fn)
		walkExpr(n.Value, fn)
	case *CompoundAssignExpr:
		walkExpr(n.Target, fn)
		walkExpr(n.Value, fn)
	case *CallExpr:
		walkExpr(n.Callee, fn)
		for _, arg := range n.Args {
			walkExpr(arg, fn)
		}
	case *MethodCallExpr:
		walkExpr(n.Receiver, fn)
		Walk(n.Method, fn)
		for _, arg := range n.Args {
			walkExpr(arg, fn)
		}
	case *FieldExpr:
		walkExpr(n.Target, fn)
		Walk(n.Field, fn)
	case *IndexExpr:
		walkExpr(n.Target, fn)
		walkExpr(n.Index, fn)
	case *StructLiteral:
		Walk(n.Name, fn)
		for _, field := range n.Fields {
			Walk(field, fn)
		}
	case *StructLiteralField:
		Walk(n.Name, fn)
		walkExpr(n.Value, fn)
	case *ArrayLiteral:
		for _, elem := range n.Elements {
			walkExpr(elem, fn)
		}
	case *TupleLiteral:
		for _, elem := range n.Elements {
			walkExpr(elem, fn)
		}
	case *RangeExpr:
		walkExpr(n.Start, fn)
		walkExpr(n.End, fn)
	case *CastExpr:
		walkExpr(n.Expr, fn)
		walkType(n.Type, fn)
	case *BlockExpr:
		for _, stmt := range n.Stmts {
			Walk(stmt, fn)
		}
	case *IfExpr:
		walkExpr(n.Cond, fn)
		walkBlock(n.Then, fn)
		walkExpr(n.Else, fn)
	case *MatchExpr:
		walkExpr(n.Subject, fn)
		for _, arm := range n.Arms {
			Walk(arm, fn)
		}
	case *MatchArm:
		walkPattern(n.Pattern, fn)
		walkExpr(n.Guard, fn)
		walkExpr(n.Body, fn)
	case *WhileExpr:
		walkExpr(n.Cond, fn)
		walkBlock(n.Body, fn)
	case *ForExpr:
		walkPattern(n.Pattern, fn)
		walkExpr(n.Iterable, fn)
		walkBlock(n.Body, fn)
	case *BreakExpr:
		if n.Label != nil {
			Walk(n.Label, fn)
		}
		walkExpr(n.Value, fn)
	case *ContinueExpr:
		if n.Label != nil {
			Walk(n.Label, fn)
		}
	case *ReturnExpr:
		walkExpr(n.Value, fn)
	case *ClosureExpr:
		for _, param := range n.Params {
			Walk(param, fn)
		}
		walkType(n.ReturnType, fn)
		walkExpr(n.Body, fn)

	// Patterns
	case *PatternWild:
		// leaf
	case *PatternLiteral:
		walkExpr(n.Value, fn)
	case *PatternIdent:
		Walk(n.Name, fn)
	case *PatternTuple:
		for _, elem := range n.Elements {
			walkPattern(elem, fn)
		}
	case *PatternTupleStruct:
		Walk(n.Name, fn)
		for _, elem := range n.Elements {
			walkPattern(elem, fn)
		}
	case *PatternStruct:
		Walk(n.Name, fn)
		for _, field := range n.Fields {
			Walk(field, fn)
		}
	case *PatternStructField:
		Walk(n.Name, fn)
		walkPattern(n.Pattern, fn)
	case *PatternOr:
		for _, alt := range n.Alternatives {
			walkPattern(alt, fn)
		}

	// Types
	case *PrimitiveType, *NeverType, *InferType:
		// leaves
	case *NamedType:
		Walk(n.Name, fn)
	case *GenericType:
		Walk(n.Name, fn)
		for _, arg := range n.Args {
			walkType(arg, fn)
		}
	case *ArrayType:
		walkType(n.Elem, fn)
	case *SliceType:
		walkType(n.Elem, fn)
	case *TupleType:
		for _, elem := range n.Elems {
			walkType(elem, fn)
		}
	case *PointerType:
		walkType(n.Elem, fn)
	case *ReferenceType:
		walkType(n.Elem, fn)
	case *FunctionType:
		for _, param := range n.Params {
			walkType(param, fn)
		}
		walkType(n.Return, fn)
	}
}

// The helpers below skip absent optional children.

func walkExpr(e Expr, fn func(Node) bool) {
	if e != nil {
		Walk(e, fn)
	}
}

func walkType(t TypeExpr, fn func(Node) bool) {
	if t != nil {
		Walk(t, fn)
	}
}

func walkPattern(p Pattern, fn func(Node) bool) {
	if p != nil {
		Walk(p, fn)
	}
}

func walkBlock(b *BlockExpr, fn func(Node) bool) {
	if b != nil {
		Walk(b, fn)
	}
}

func walkGenerics(g *Generics, fn func(Node) bool) {
	if g != nil {
		Walk(g, fn)
	}
}
