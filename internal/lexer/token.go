package lexer

import (
	"fmt"
	"maps"
	"slices"
)

// TokenType represents the type of a token
type TokenType string

// Token represents a lexical token.
//
// Literal payloads live next to the lexeme: Value holds the decoded text of
// identifiers and strings (and the message of an ILLEGAL token), Int the value
// of an integer literal and Char the value of a character literal.
type Token struct {
	Type  TokenType
	Raw   string // exact bytes from source
	Value string
	Int   int32
	Char  rune
	Span  Span
}

// Token type constants
const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL" // malformed token marker, Value carries the message
	EOF     TokenType = "EOF"

	// Identifiers and literals
	IDENT  TokenType = "IDENT"  // add, foobar, x, y, ...
	INT    TokenType = "INT"    // 1343456, 0xff, 0b1010
	CHAR   TokenType = "CHAR"   // 'a'
	STRING TokenType = "STRING" // "hello"

	// Operators
	ASSIGN       TokenType = "="
	PLUS_ASSIGN  TokenType = "+="
	MINUS_ASSIGN TokenType = "-="
	STAR_ASSIGN  TokenType = "*="
	SLASH_ASSIGN TokenType = "/="
	FATARROW     TokenType = "=>"
	PLUS         TokenType = "+"
	MINUS        TokenType = "-"
	BANG         TokenType = "!"
	TILDE        TokenType = "~"
	AMPERSAND    TokenType = "&"
	PIPE         TokenType = "|"
	CARET        TokenType = "^"
	ASTERISK     TokenType = "*"
	SLASH        TokenType = "/"
	PERCENT      TokenType = "%"
	AND          TokenType = "&&"
	OR           TokenType = "||"
	SHL          TokenType = "<<"
	SHR          TokenType = ">>"
	QUESTION     TokenType = "?"

	LT     TokenType = "<"
	GT     TokenType = ">"
	EQ     TokenType = "=="
	NOT_EQ TokenType = "!="
	LE     TokenType = "<="
	GE     TokenType = ">="

	// Delimiters
	COMMA        TokenType = ","
	SEMICOLON    TokenType = ";"
	COLON        TokenType = ":"
	DOUBLE_COLON TokenType = "::"
	DOT          TokenType = "."
	DOTDOT       TokenType = ".."
	DOTDOT_EQ    TokenType = "..="
	UNDERSCORE   TokenType = "_"

	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"

	ARROW TokenType = "->"

	// Keywords
	FN       TokenType = "FN"
	LET      TokenType = "LET"
	MUT      TokenType = "MUT"
	CONST    TokenType = "CONST"
	STATIC   TokenType = "STATIC"
	STRUCT   TokenType = "STRUCT"
	ENUM     TokenType = "ENUM"
	PUB      TokenType = "PUB"
	IMPORT   TokenType = "IMPORT"
	EXPORT   TokenType = "EXPORT"
	AS       TokenType = "AS"
	IF       TokenType = "IF"
	ELSE     TokenType = "ELSE"
	MATCH    TokenType = "MATCH"
	WHILE    TokenType = "WHILE"
	FOR      TokenType = "FOR"
	IN       TokenType = "IN"
	BREAK    TokenType = "BREAK"
	CONTINUE TokenType = "CONTINUE"
	RETURN   TokenType = "RETURN"
	TRUE     TokenType = "TRUE"
	FALSE    TokenType = "FALSE"

	// Type keywords
	TYPE_I8     TokenType = "i8"
	TYPE_I16    TokenType = "i16"
	TYPE_I32    TokenType = "i32"
	TYPE_I64    TokenType = "i64"
	TYPE_U8     TokenType = "u8"
	TYPE_U16    TokenType = "u16"
	TYPE_U32    TokenType = "u32"
	TYPE_U64    TokenType = "u64"
	TYPE_ISIZE  TokenType = "isize"
	TYPE_USIZE  TokenType = "usize"
	TYPE_F32    TokenType = "f32"
	TYPE_F64    TokenType = "f64"
	TYPE_BOOL   TokenType = "bool"
	TYPE_CHAR   TokenType = "char"
	TYPE_STRING TokenType = "string"
)

var keywords = map[string]TokenType{
	"fn":       FN,
	"let":      LET,
	"mut":      MUT,
	"const":    CONST,
	"static":   STATIC,
	"struct":   STRUCT,
	"enum":     ENUM,
	"pub":      PUB,
	"import":   IMPORT,
	"export":   EXPORT,
	"as":       AS,
	"if":       IF,
	"else":     ELSE,
	"match":    MATCH,
	"while":    WHILE,
	"for":      FOR,
	"in":       IN,
	"break":    BREAK,
	"continue": CONTINUE,
	"return":   RETURN,
	"true":     TRUE,
	"false":    FALSE,
	"_":        UNDERSCORE,

	"i8":     TYPE_I8,
	"i16":    TYPE_I16,
	"i32":    TYPE_I32,
	"i64":    TYPE_I64,
	"u8":     TYPE_U8,
	"u16":    TYPE_U16,
	"u32":    TYPE_U32,
	"u64":    TYPE_U64,
	"isize":  TYPE_ISIZE,
	"usize":  TYPE_USIZE,
	"f32":    TYPE_F32,
	"f64":    TYPE_F64,
	"bool":   TYPE_BOOL,
	"char":   TYPE_CHAR,
	"string": TYPE_STRING,
	"str":    TYPE_STRING,
}

var keywordTypes = func() map[TokenType]bool {
	set := make(map[TokenType]bool, len(keywords))
	for _, typ := range keywords {
		set[typ] = true
	}
	return set
}()

// LookupIdent checks if the identifier is a keyword
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Keywords returns every reserved word, type keywords included, in sorted order.
func Keywords() []string {
	return slices.Sorted(maps.Keys(keywords))
}

// IsKeyword reports whether t is a reserved word, type keywords included.
func (t TokenType) IsKeyword() bool {
	return keywordTypes[t]
}

// IsTypeKeyword reports whether t names a primitive type.
func (t TokenType) IsTypeKeyword() bool {
	switch t {
	case TYPE_I8, TYPE_I16, TYPE_I32, TYPE_I64,
		TYPE_U8, TYPE_U16, TYPE_U32, TYPE_U64,
		TYPE_ISIZE, TYPE_USIZE, TYPE_F32, TYPE_F64,
		TYPE_BOOL, TYPE_CHAR, TYPE_STRING:
		return true
	}
	return false
}

// Bool returns the value of a TRUE or FALSE token.
func (t Token) Bool() bool {
	return t.Type == TRUE
}

// Describe renders the token the way parse errors quote it.
func (t Token) Describe() string {
	switch t.Type {
	case EOF:
		return "end of file"
	case ILLEGAL:
		return "invalid token"
	}
	if t.Raw != "" {
		return t.Raw
	}
	return string(t.Type)
}

func (t Token) String() string {
	switch t.Type {
	case IDENT, INT, CHAR, STRING:
		return fmt.Sprintf("%s(%s)", t.Type, t.Raw)
	case ILLEGAL:
		return fmt.Sprintf("%s(%s)", t.Type, t.Value)
	}
	return string(t.Type)
}
