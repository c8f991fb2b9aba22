package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/haiman1024/Contractus/internal/ast"
	"github.com/haiman1024/Contractus/internal/diag"
)

func TestTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want string
	}{
		{"i32", "i32"},
		{"usize", "usize"},
		{"str", "string"},
		{"Point", "Point"},
		{"Vec<i32>", "Vec<i32>"},
		{"Vec<Vec<i32>>", "Vec<Vec<i32>>"},
		{"Map<string, Vec<Vec<i32>>>", "Map<string, Vec<Vec<i32>>>"},
		{"Pair<A, B,>", "Pair<A, B>"},
		{"[i32; 4]", "[i32; 4]"},
		{"[T]", "[T]"},
		{"*bool", "*bool"},
		{"*mut u8", "*mut u8"},
		{"&T", "&T"},
		{"&mut T", "&mut T"},
		{"&&T", "&&T"},
		{"()", "()"},
		{"(i32, bool)", "(i32, bool)"},
		{"(i32)", "(i32)"},
		{"(i32) -> bool", "fn(i32) -> bool"},
		{"fn(i32) -> bool", "fn(i32) -> bool"},
		{"fn()", "fn() -> ()"},
		{"fn(&mut [T], *[bool; 4], Vec<(_, !)>) -> ()", "fn(&mut [T], *[bool; 4], Vec<(_, !)>) -> ()"},
		{"!", "!"},
		{"_", "_"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()

			stmts := parseFnBody(t, "let v: "+tt.src+";")
			require.Len(t, stmts, 1)
			let := stmts[0].(*ast.LetStmt)
			require.NotNil(t, let.Type)
			require.Equal(t, tt.want, ast.Sprint(let.Type))
		})
	}
}

func TestNestedGenericsSplitShift(t *testing.T) {
	t.Parallel()

	stmts := parseFnBody(t, "let v: Vec<Vec<i32>> = x;")
	outer, ok := stmts[0].(*ast.LetStmt).Type.(*ast.GenericType)
	require.True(t, ok)
	require.Equal(t, "Vec", outer.Name.Name)
	require.Len(t, outer.Args, 1)

	inner, ok := outer.Args[0].(*ast.GenericType)
	require.True(t, ok)
	require.Equal(t, ast.I32, inner.Args[0].(*ast.PrimitiveType).Kind)
	require.True(t, outer.Span().Contains(inner.Span()))
}

func TestFnTypeWithoutArrowReturnsUnit(t *testing.T) {
	t.Parallel()

	stmts := parseFnBody(t, "let f: fn(i32);")
	fn, ok := stmts[0].(*ast.LetStmt).Type.(*ast.FunctionType)
	require.True(t, ok)
	ret, ok := fn.Return.(*ast.PrimitiveType)
	require.True(t, ok)
	require.Equal(t, ast.Unit, ret.Kind)
}

func TestTypeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		code diag.Code
		msg  string
	}{
		{"missing", "let v: ;", diag.CodeParseExpectedType, "expected type, found `;`"},
		{"empty generic list", "let v: Vec<>;", diag.CodeParseExpectedType, "expected type, found `>`"},
		{"stray closing angle", "let v: Vec<i32>>;", diag.CodeParseExpectedToken, "unexpected `>` after type"},
		{"unclosed generic", "let v: Vec<i32;", diag.CodeParseExpectedToken, "expected `>`, found `;`"},
		{"array size", "let v: [i32; n];", diag.CodeParseExpectedToken, "expected integer literal, found `n`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, errs := parse(t, "fn main() { "+tt.src+" }")
			require.Len(t, errs, 1)
			require.Equal(t, tt.code, errs[0].Code)
			require.Equal(t, tt.msg, errs[0].Message)
		})
	}
}

func TestPatterns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want string
	}{
		{"_", "_"},
		{"x", "x"},
		{"(mut a, b)", "(mut a, b)"},
		{"(a, (b, _))", "(a, (b, _))"},
		{"Some(_)", "Some(_)"},
		{"Point { x, y: -2 }", "Point { x, y: -2 }"},
		{"Empty {}", "Empty { }"},
		{"1 | 2 | 3", "1 | 2 | 3"},
		{"Some(_) | P { x, y: -2 } | (mut a)", "Some(_) | P { x, y: -2 } | (mut a)"},
		{"'a'", "'a'"},
		{"true", "true"},
		{`"s"`, `"s"`},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()

			stmts := parseFnBody(t, "let "+tt.src+" = v;")
			require.Len(t, stmts, 1)
			require.Equal(t, tt.want, ast.Sprint(stmts[0].(*ast.LetStmt).Pattern))
		})
	}
}

func TestStructPatternShorthandBindsField(t *testing.T) {
	t.Parallel()

	stmts := parseFnBody(t, "let P { x, y: z } = v;")
	pat, ok := stmts[0].(*ast.LetStmt).Pattern.(*ast.PatternStruct)
	require.True(t, ok)
	require.Len(t, pat.Fields, 2)

	require.True(t, pat.Fields[0].Shorthand)
	require.Equal(t, "x", pat.Fields[0].Pattern.(*ast.PatternIdent).Name.Name)
	require.False(t, pat.Fields[1].Shorthand)
	require.Equal(t, "z", pat.Fields[1].Pattern.(*ast.PatternIdent).Name.Name)
}

func TestPatternErrors(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"let = 1;", "let - = 1;", "let (a, = v;"} {
		_, errs := parse(t, "fn main() { "+src+" }")
		require.NotEmpty(t, errs, src)
		require.Equal(t, diag.CodeParseExpectedPattern, errs[0].Code, src)
	}
}
