package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/haiman1024/Contractus/internal/ast"
	"github.com/haiman1024/Contractus/internal/diag"
)

func TestMissingExpressionInLet(t *testing.T) {
	t.Parallel()

	program, errs := parse(t, "fn main() { let x = ; }")
	require.Len(t, errs, 1)
	require.Equal(t, diag.CodeParseExpectedExpression, errs[0].Code)
	require.Equal(t, "expected expression, found `;`", errs[0].Message)
	require.Equal(t, 20, errs[0].Span.Start)

	// The failed statement is dropped; the function itself survives.
	require.Len(t, program.Items, 1)
	require.Empty(t, program.Items[0].(*ast.FnDecl).Body.Stmts)
}

func TestRecoveryReportsIndependentErrors(t *testing.T) {
	t.Parallel()

	src := "fn a() { let = 1; }\nfn b(x i32) {}\nstruct S { x: }\nfn ok() {}"
	program, errs := parse(t, src)

	require.Len(t, errs, 3)
	require.Equal(t, "expected pattern, found `=`", errs[0].Message)
	require.Equal(t, 1, errs[0].Span.Line)
	require.Equal(t, "expected `:`, found `i32`", errs[1].Message)
	require.Equal(t, 2, errs[1].Span.Line)
	require.Equal(t, "expected type, found `}`", errs[2].Message)
	require.Equal(t, 3, errs[2].Span.Line)

	var names []string
	for _, item := range program.Items {
		names = append(names, item.(*ast.FnDecl).Name.Name)
	}
	require.Equal(t, []string{"a", "ok"}, names)
}

func TestOneErrorPerStatement(t *testing.T) {
	t.Parallel()

	_, errs := parse(t, "fn f() {\n  let x = (1 + ;\n  let y = 2;\n  let = 3;\n}")
	require.Len(t, errs, 2)
	require.Equal(t, 2, errs[0].Span.Line)
	require.Equal(t, 4, errs[1].Span.Line)
}

func TestUnclosedDelimiters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		msg     string
		related int // byte offset of the unclosed opener
	}{
		{"block before next item", "fn main() {\n  let x = 1;\n\nfn next() {}", "expected `}`, found `fn`", 10},
		{"block at end of file", "fn f() {", "expected `}`, found end of file", 7},
		{"call arguments", "fn f() { g(1 2); }", "expected `,` or `)`, found `2`", 10},
		{"parameter list", "fn f(a: i32 b: i32) {}", "expected `,` or `)`, found `b`", 4},
		{"match arms", "fn f() { match x { _ => 1 2 } }", "expected `,` or `}`, found `2`", 17},
		{"array literal", "fn f() { let a = [1, 2; }", "expected `,` or `]`, found `;`", 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, errs := parse(t, tt.src)
			require.NotEmpty(t, errs)
			require.Equal(t, tt.msg, errs[0].Message)
			require.Len(t, errs[0].Related, 1)
			require.Equal(t, "unclosed delimiter", errs[0].Related[0].Label)
			require.Equal(t, tt.related, errs[0].Related[0].Span.Start)

			d := errs[0].ToDiagnostic()
			require.Len(t, d.LabeledSpans, 1)
			require.Equal(t, "secondary", d.LabeledSpans[0].Style)
		})
	}
}

func TestUnclosedBlockKeepsFollowingItems(t *testing.T) {
	t.Parallel()

	program, errs := parse(t, "fn main() {\n  let x = 1;\n\nfn next() {}")
	require.Len(t, errs, 1)
	require.Len(t, program.Items, 1)
	require.Equal(t, "next", program.Items[0].(*ast.FnDecl).Name.Name)
}

func TestSingleErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		code diag.Code
		msg  string
	}{
		{"let at top level", "let x = 1;", diag.CodeParseExpectedItem, "expected item declaration, found `let`"},
		{"stray token", "fn f() {}\n42", diag.CodeParseExpectedItem, "expected item declaration, found `42`"},
		{"pub without item", "pub 1", diag.CodeParseExpectedItem, "expected item declaration, found `1`"},
		{"literal target", "fn f() { 1 = 2; }", diag.CodeParseInvalidAssignment, "invalid assignment target"},
		{"binary target", "fn f() { a + b = c; }", diag.CodeParseInvalidAssignment, "invalid assignment target"},
		{"call target", "fn f() { g() += 1; }", diag.CodeParseInvalidAssignment, "invalid assignment target"},
		{"chained range", "fn f() { let r = 0..1..2; }", diag.CodeParseNonAssociative, "range operators cannot be chained"},
		{"missing field name", "fn f() { x.; }", diag.CodeParseExpectedToken, "expected field or method name, found `;`"},
		{"missing fn name", "fn (x: i32) {}", diag.CodeParseExpectedToken, "expected identifier, found `(`"},
		{"empty generics", "fn f<>() {}", diag.CodeParseExpectedToken, "expected generic parameter, found `>`"},
		{"missing in", "fn f() { for x xs }", diag.CodeParseExpectedToken, "expected `in`, found `xs`"},
		{"missing fat arrow", "fn f() { match x { _ 1 } }", diag.CodeParseExpectedToken, "expected `=>`, found `1`"},
		{"const without type", "const N = 1;", diag.CodeParseExpectedToken, "expected `:`, found `=`"},
		{"import without semicolon", "import a::b\nfn f() {}", diag.CodeParseExpectedToken, "expected `;`, found `fn`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, errs := parse(t, tt.src)
			require.NotEmpty(t, errs)
			require.Equal(t, tt.code, errs[0].Code)
			require.Equal(t, tt.msg, errs[0].Message)
		})
	}
}

func TestInvalidAssignmentSpan(t *testing.T) {
	t.Parallel()

	_, errs := parse(t, "fn f() { a + b = c; }")
	require.Len(t, errs, 1)
	require.Equal(t, 9, errs[0].Span.Start)
	require.Equal(t, 14, errs[0].Span.End)
}

func TestArrayRepeatLimit(t *testing.T) {
	t.Parallel()

	_, errs := parse(t, "fn f() { let a = [0; 3]; }", WithMaxArrayRepeat(3))
	require.Empty(t, errs)

	_, errs = parse(t, "fn f() { let a = [0; 4]; }", WithMaxArrayRepeat(3))
	require.Len(t, errs, 1)
	require.Equal(t, diag.CodeParseRepeatTooLarge, errs[0].Code)
	require.Equal(t, "array repetition count 4 exceeds limit 3", errs[0].Message)

	_, errs = parse(t, "fn f() { let a = [0; 65537]; }")
	require.Len(t, errs, 1)
	require.Equal(t, "array repetition count 65537 exceeds limit 65536", errs[0].Message)
}

func TestNestedArrayRepeatSharesBudget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		opts []Option
	}{
		{"nested levels multiply", "fn f() { let a = [[0; 1000]; 1000]; }", []Option{WithMaxArrayRepeat(1000)}},
		{"separate literals add up", "fn f() { let a = [0; 2]; let b = [0; 2]; }", []Option{WithMaxArrayRepeat(3)}},
		{"three levels under the default limit", "fn f() { let x = [[[0; 300]; 300]; 300]; }", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, errs := parse(t, tt.src, tt.opts...)
			require.NotEmpty(t, errs)
			require.Equal(t, diag.CodeParseRepeatTooLarge, errs[0].Code)
			require.Contains(t, errs[0].Message, "array repetitions expand to more than")
		})
	}

	program, errs := parse(t, "fn f() { let a = [[0; 10]; 50]; }", WithMaxArrayRepeat(1000))
	require.Empty(t, errs)
	outer := program.Items[0].(*ast.FnDecl).Body.Stmts[0].(*ast.LetStmt).Value.(*ast.ArrayLiteral)
	require.Len(t, outer.Elements, 50)
	require.Len(t, outer.Elements[49].(*ast.ArrayLiteral).Elements, 10)
}

func TestLoopControlOutsideLoop(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"break in function body", "fn f() { break; }", diag.CodeParseBreakOutsideLoop},
		{"continue in function body", "fn f() { continue; }", diag.CodeParseContinueOutside},
		{"break after loop", "fn f() { while a { } break; }", diag.CodeParseBreakOutsideLoop},
		{"break in closure inside loop", "fn f() { while a { let c = || { break; }; } }", diag.CodeParseBreakOutsideLoop},
		{"continue in closure inside loop", "fn f() { for x in xs { let g = |y| continue; } }", diag.CodeParseContinueOutside},
		{"break in match arm", "fn f() { match x { _ => break } }", diag.CodeParseBreakOutsideLoop},
		{"break in if", "fn f() { if a { break; } }", diag.CodeParseBreakOutsideLoop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, errs := parse(t, tt.src)
			require.NotEmpty(t, errs)
			require.Equal(t, tt.code, errs[0].Code)
			require.Contains(t, errs[0].Help, "inside `while` or `for` loops")
		})
	}
}

func TestLoopControlInsideLoop(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		"fn f() { for i in 0..3 { if i == 1 { continue; } } }",
		"fn f() { while a { match x { _ => break, } } }",
		"fn f() { while a { { continue; } } }",
		"fn f() { while a { let c = || 1; break; } }",
		"fn f() { while a { while b { break; } continue; } }",
		"fn f() { for x in xs { let g = || { while y { break; } }; continue } }",
	} {
		parseOK(t, src)
	}
}

func TestLoopDepthRestoredAfterError(t *testing.T) {
	t.Parallel()

	_, errs := parse(t, "fn f() { while a { let = 1; } break; }")
	require.Len(t, errs, 2)
	require.Equal(t, diag.CodeParseExpectedPattern, errs[0].Code)
	require.Equal(t, diag.CodeParseBreakOutsideLoop, errs[1].Code)
}
