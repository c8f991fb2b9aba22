package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/haiman1024/Contractus/internal/diag"
)

type tokenCase struct {
	typ TokenType
	raw string
}

func requireTokens(t *testing.T, input string, want []tokenCase) []Token {
	t.Helper()

	tokens, errs := Tokenize(input)
	require.Empty(t, errs)
	require.Len(t, tokens, len(want), "tokens: %v", tokens)
	for i, w := range want {
		require.Equal(t, w.typ, tokens[i].Type, "token %d", i)
		require.Equal(t, w.raw, tokens[i].Raw, "token %d", i)
	}
	return tokens
}

func TestNextToken_Basic(t *testing.T) {
	t.Parallel()

	requireTokens(t, `let x = 10;`, []tokenCase{
		{LET, "let"},
		{IDENT, "x"},
		{ASSIGN, "="},
		{INT, "10"},
		{SEMICOLON, ";"},
		{EOF, ""},
	})
}

func TestNextToken_Operators(t *testing.T) {
	t.Parallel()

	input := `= += -= *= /= => + - ! ~ & | ^ * / % && || << >> ? < > == != <= >= , ; : :: . .. ..= _ ( ) { } [ ] ->`
	requireTokens(t, input, []tokenCase{
		{ASSIGN, "="}, {PLUS_ASSIGN, "+="}, {MINUS_ASSIGN, "-="}, {STAR_ASSIGN, "*="},
		{SLASH_ASSIGN, "/="}, {FATARROW, "=>"}, {PLUS, "+"}, {MINUS, "-"},
		{BANG, "!"}, {TILDE, "~"}, {AMPERSAND, "&"}, {PIPE, "|"},
		{CARET, "^"}, {ASTERISK, "*"}, {SLASH, "/"}, {PERCENT, "%"},
		{AND, "&&"}, {OR, "||"}, {SHL, "<<"}, {SHR, ">>"},
		{QUESTION, "?"}, {LT, "<"}, {GT, ">"}, {EQ, "=="},
		{NOT_EQ, "!="}, {LE, "<="}, {GE, ">="}, {COMMA, ","},
		{SEMICOLON, ";"}, {COLON, ":"}, {DOUBLE_COLON, "::"}, {DOT, "."},
		{DOTDOT, ".."}, {DOTDOT_EQ, "..="}, {UNDERSCORE, "_"},
		{LPAREN, "("}, {RPAREN, ")"}, {LBRACE, "{"}, {RBRACE, "}"},
		{LBRACKET, "["}, {RBRACKET, "]"}, {ARROW, "->"},
		{EOF, ""},
	})
}

func TestNextToken_LongestMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  []tokenCase
	}{
		{"a<=b", []tokenCase{{IDENT, "a"}, {LE, "<="}, {IDENT, "b"}, {EOF, ""}}},
		{"0..=9", []tokenCase{{INT, "0"}, {DOTDOT_EQ, "..="}, {INT, "9"}, {EOF, ""}}},
		{"x...y", []tokenCase{{IDENT, "x"}, {DOTDOT, ".."}, {DOT, "."}, {IDENT, "y"}, {EOF, ""}}},
		{"&&&", []tokenCase{{AND, "&&"}, {AMPERSAND, "&"}, {EOF, ""}}},
		{">>=", []tokenCase{{SHR, ">>"}, {ASSIGN, "="}, {EOF, ""}}},
		{"a->b", []tokenCase{{IDENT, "a"}, {ARROW, "->"}, {IDENT, "b"}, {EOF, ""}}},
		{"t.0", []tokenCase{{IDENT, "t"}, {DOT, "."}, {INT, "0"}, {EOF, ""}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			requireTokens(t, tt.input, tt.want)
		})
	}
}

func TestKeywords(t *testing.T) {
	t.Parallel()

	for word, typ := range keywords {
		t.Run(word, func(t *testing.T) {
			t.Parallel()

			tokens, errs := Tokenize(word)
			require.Empty(t, errs)
			require.Equal(t, typ, tokens[0].Type)
			require.True(t, typ.IsKeyword())
		})
	}

	require.Equal(t, TYPE_STRING, LookupIdent("str"))
	require.Equal(t, IDENT, LookupIdent("loop"))
	require.Equal(t, IDENT, LookupIdent("_x"))
	require.False(t, IDENT.IsKeyword())
}

func TestIsTypeKeyword(t *testing.T) {
	t.Parallel()

	require.True(t, TYPE_I32.IsTypeKeyword())
	require.True(t, TYPE_STRING.IsTypeKeyword())
	require.False(t, FN.IsTypeKeyword())
	require.False(t, IDENT.IsTypeKeyword())
}

func TestKeywordsSorted(t *testing.T) {
	t.Parallel()

	kws := Keywords()
	require.IsIncreasing(t, kws)
	require.Contains(t, kws, "fn")
	require.Contains(t, kws, "str")
	for _, kw := range kws {
		require.NotEqual(t, IDENT, LookupIdent(kw), kw)
	}
}

func TestConcatenationKeepsTokens(t *testing.T) {
	t.Parallel()

	a := "fn a() -> i32 { return 1 << 2; } // tail"
	b := "struct S { x: u8 }\nconst C: char = '\\n';"

	lexemes := func(src string) []string {
		tokens, errs := Tokenize(src)
		require.Empty(t, errs)
		out := make([]string, 0, len(tokens))
		for _, tok := range tokens {
			out = append(out, string(tok.Type)+" "+tok.Raw)
		}
		return out
	}

	left, right := lexemes(a), lexemes(b)
	joined := lexemes(a + "\n" + b)
	require.Equal(t, append(left[:len(left)-1:len(left)-1], right...), joined)
}

func TestIntegerLiterals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  int32
	}{
		{"0", 0},
		{"42", 42},
		{"1_000_000", 1000000},
		{"0xff", 255},
		{"0XFF", 255},
		{"0b1010", 10},
		{"0B1_1", 3},
		{"2147483647", 2147483647},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			tokens, errs := Tokenize(tt.input)
			require.Empty(t, errs)
			require.Equal(t, INT, tokens[0].Type)
			require.Equal(t, tt.want, tokens[0].Int)
			require.Equal(t, tt.input, tokens[0].Raw)
		})
	}
}

func TestStringAndCharLiterals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		typ   TokenType
		value string
		char  rune
	}{
		{`"hello"`, STRING, "hello", 0},
		{`""`, STRING, "", 0},
		{`"a\nb\t\"c\"\\"`, STRING, "a\nb\t\"c\"\\", 0},
		{`"nul\0"`, STRING, "nul\x00", 0},
		{`"héllo"`, STRING, "héllo", 0},
		{`'a'`, CHAR, "a", 'a'},
		{`'\n'`, CHAR, "\n", '\n'},
		{`'\''`, CHAR, "'", '\''},
		{`'é'`, CHAR, "é", 'é'},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			tokens, errs := Tokenize(tt.input)
			require.Empty(t, errs)
			require.Len(t, tokens, 2)
			require.Equal(t, tt.typ, tokens[0].Type)
			require.Equal(t, tt.value, tokens[0].Value)
			require.Equal(t, tt.input, tokens[0].Raw)
			require.Equal(t, tt.char, tokens[0].Char)
		})
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	t.Parallel()

	input := "// line comment\nlet /* block\ncomment */ x /* a /* b */ ;"
	tokens := requireTokens(t, input, []tokenCase{
		{LET, "let"},
		{IDENT, "x"},
		{SEMICOLON, ";"},
		{EOF, ""},
	})
	require.Equal(t, 2, tokens[0].Span.Line)
	require.Equal(t, 3, tokens[1].Span.Line)
	require.Equal(t, 12, tokens[1].Span.Column)
}

func TestSpans(t *testing.T) {
	t.Parallel()

	input := "fn main() {\n\tlet x = 1;\n}"
	tokens, errs := Tokenize(input, WithFilename("main.ctr"))
	require.Empty(t, errs)

	let := tokens[5]
	require.Equal(t, LET, let.Type)
	require.Equal(t, Span{Filename: "main.ctr", Line: 2, Column: 2, Start: 13, End: 16}, let.Span)
	require.Equal(t, "let", input[let.Span.Start:let.Span.End])

	eof := tokens[len(tokens)-1]
	require.Equal(t, EOF, eof.Type)
	require.Equal(t, 3, eof.Span.Line)
	require.Equal(t, 2, eof.Span.Column)
	require.Equal(t, len(input), eof.Span.Start)
	require.Zero(t, eof.Span.Len())
}

func TestLexerErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		kind    LexerErrorKind
		message string
		span    Span
	}{
		{"unexpected character", "a @ b", ErrUnexpectedCharacter, "unexpected character '@'", Span{Line: 1, Column: 3, Start: 2, End: 3}},
		{"control byte", "\x01", ErrUnexpectedCharacter, `unexpected character '\x01'`, Span{Line: 1, Column: 1, Start: 0, End: 1}},
		{"unterminated string", `"hello`, ErrUnterminatedString, "unterminated string literal", Span{Line: 1, Column: 1, Start: 0, End: 6}},
		{"invalid escape", `"a\qb"`, ErrInvalidEscape, `invalid escape sequence '\q'`, Span{Line: 1, Column: 3, Start: 2, End: 4}},
		{"unterminated char", "'a", ErrUnterminatedChar, "unterminated character literal", Span{Line: 1, Column: 1, Start: 0, End: 2}},
		{"char at newline", "'a\nb", ErrUnterminatedChar, "unterminated character literal", Span{Line: 1, Column: 1, Start: 0, End: 2}},
		{"empty char", "''", ErrInvalidCharLiteral, "character literal must be exactly one character", Span{Line: 1, Column: 1, Start: 0, End: 2}},
		{"long char", "'ab'", ErrInvalidCharLiteral, "character literal must be exactly one character", Span{Line: 1, Column: 1, Start: 0, End: 4}},
		{"overflow", "2147483648", ErrInvalidNumber, "invalid number '2147483648'", Span{Line: 1, Column: 1, Start: 0, End: 10}},
		{"empty hex", "0x", ErrInvalidNumber, "invalid hexadecimal number '0x'", Span{Line: 1, Column: 1, Start: 0, End: 2}},
		{"empty binary", "0b_", ErrInvalidNumber, "invalid binary number '0b_'", Span{Line: 1, Column: 1, Start: 0, End: 3}},
		{"float", "3.14", ErrUnsupportedFloat, "float literals are not yet supported", Span{Line: 1, Column: 1, Start: 0, End: 4}},
		{"unterminated block comment", "x /* never", ErrUnterminatedBlockComment, "unterminated block comment", Span{Line: 1, Column: 3, Start: 2, End: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens, errs := Tokenize(tt.input)
			require.Len(t, errs, 1)
			require.Equal(t, tt.kind, errs[0].Kind)
			require.Equal(t, tt.message, errs[0].Message)
			require.Equal(t, tt.span, errs[0].Span)

			require.Equal(t, EOF, tokens[len(tokens)-1].Type)
			for _, tok := range tokens {
				require.NotEqual(t, ILLEGAL, tok.Type)
			}
		})
	}
}

func TestLexerContinuesAfterErrors(t *testing.T) {
	t.Parallel()

	tokens, errs := Tokenize("let $ x = '' ; # y")
	require.Len(t, errs, 3)
	require.Equal(t, ErrUnexpectedCharacter, errs[0].Kind)
	require.Equal(t, ErrInvalidCharLiteral, errs[1].Kind)
	require.Equal(t, ErrUnexpectedCharacter, errs[2].Kind)

	var types []TokenType
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	require.Equal(t, []TokenType{LET, IDENT, ASSIGN, SEMICOLON, IDENT, EOF}, types)
}

func TestLexerErrorToDiagnostic(t *testing.T) {
	t.Parallel()

	_, errs := Tokenize("\n  @", WithFilename("a.ctr"))
	require.Len(t, errs, 1)
	require.Equal(t, "a.ctr:2:3: unexpected character '@'", errs[0].Error())

	d := errs[0].ToDiagnostic()
	require.Equal(t, diag.StageLexer, d.Stage)
	require.Equal(t, diag.SeverityError, d.Severity)
	require.Equal(t, diag.CodeLexerUnexpectedCharacter, d.Code)
	require.Equal(t, diag.Span{Filename: "a.ctr", Line: 2, Column: 3, Start: 3, End: 4}, d.Span)
}

func TestEmptyInput(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "   \n\t", "// only a comment"} {
		tokens, errs := Tokenize(input)
		require.Empty(t, errs)
		require.Len(t, tokens, 1)
		require.Equal(t, EOF, tokens[0].Type)
	}
}
