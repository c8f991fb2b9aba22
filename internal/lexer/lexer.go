package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/haiman1024/Contractus/internal/diag"
)

type LexerErrorKind int

const (
	ErrUnexpectedCharacter LexerErrorKind = iota
	ErrInvalidEscape
	ErrUnterminatedString
	ErrUnterminatedChar
	ErrInvalidCharLiteral
	ErrInvalidNumber
	ErrUnsupportedFloat
	ErrUnterminatedBlockComment
)

type LexerError struct {
	Kind    LexerErrorKind
	Message string
	Span    Span
}

func (e LexerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Span, e.Message)
}

func (k LexerErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrUnexpectedCharacter:
		return diag.CodeLexerUnexpectedCharacter
	case ErrInvalidEscape:
		return diag.CodeLexerInvalidEscape
	case ErrUnterminatedString:
		return diag.CodeLexerUnterminatedString
	case ErrUnterminatedChar:
		return diag.CodeLexerUnterminatedChar
	case ErrInvalidCharLiteral:
		return diag.CodeLexerInvalidCharLiteral
	case ErrInvalidNumber:
		return diag.CodeLexerInvalidNumber
	case ErrUnsupportedFloat:
		return diag.CodeLexerUnsupportedFloat
	case ErrUnterminatedBlockComment:
		return diag.CodeLexerUnterminatedBlockComment
	default:
		return diag.Code("LEXER_UNKNOWN_ERROR")
	}
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e LexerError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span:     e.Span.ToDiag(),
	}
}

// ToDiag converts a lexer span into the diagnostic span type.
func (s Span) ToDiag() diag.Span {
	return diag.Span{
		Filename: s.Filename,
		Line:     s.Line,
		Column:   s.Column,
		Start:    s.Start,
		End:      s.End,
	}
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithFilename stamps every produced span with filename.
func WithFilename(filename string) Option {
	return func(l *Lexer) {
		l.filename = filename
	}
}

// Lexer represents the lexer state. It scans bytes, not runes: every
// syntax-significant character is ASCII and literal contents are copied
// through unchanged.
type Lexer struct {
	input    string
	filename string
	pos      int  // offset of the current byte
	ch       byte // current byte (0 at end of input)
	line     int  // current line number (1-based)
	column   int  // current column number (1-based)

	Errors []LexerError
}

// position marks where a token starts.
type position struct {
	offset int
	line   int
	column int
}

// New creates a new lexer for the given input.
func New(input string, opts ...Option) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 1,
	}
	for _, opt := range opts {
		opt(l)
	}
	if len(input) > 0 {
		l.ch = input[0]
	}
	return l
}

// Tokenize scans the whole input. The returned slice always ends with exactly
// one EOF token, even when errors were collected.
func Tokenize(input string, opts ...Option) ([]Token, []LexerError) {
	l := New(input, opts...)
	tokens := make([]Token, 0, len(input)/6+1)
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			break
		}
	}
	return tokens, l.Errors
}

func (l *Lexer) addError(kind LexerErrorKind, msg string, span Span) {
	l.Errors = append(l.Errors, LexerError{
		Kind:    kind,
		Message: msg,
		Span:    span,
	})
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// advance moves to the next byte, keeping line and column in step.
func (l *Lexer) advance() {
	if l.atEOF() {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos++
	if l.atEOF() {
		l.ch = 0
	} else {
		l.ch = l.input[l.pos]
	}
}

// peek returns the byte after the current one without advancing
func (l *Lexer) peek() byte {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *Lexer) mark() position {
	return position{offset: l.pos, line: l.line, column: l.column}
}

func (l *Lexer) spanFrom(start position) Span {
	return Span{
		Filename: l.filename,
		Line:     start.line,
		Column:   start.column,
		Start:    start.offset,
		End:      l.pos,
	}
}

func (l *Lexer) makeToken(tokType TokenType, start position) Token {
	raw := l.input[start.offset:l.pos]
	return Token{
		Type:  tokType,
		Raw:   raw,
		Value: raw,
		Span:  l.spanFrom(start),
	}
}

// skipTrivia skips whitespace and comments. Block comments do not nest: the
// first `*/` closes the comment.
func (l *Lexer) skipTrivia() {
	for !l.atEOF() {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.advance()
		case l.ch == '/' && l.peek() == '/':
			for !l.atEOF() && l.ch != '\n' {
				l.advance()
			}
		case l.ch == '/' && l.peek() == '*':
			start := l.mark()
			l.advance() // consume '/'
			l.advance() // consume '*'
			for {
				if l.atEOF() {
					l.addError(ErrUnterminatedBlockComment, "unterminated block comment", l.spanFrom(start))
					return
				}
				if l.ch == '*' && l.peek() == '/' {
					l.advance()
					l.advance()
					break
				}
				l.advance()
			}
		default:
			return
		}
	}
}

// NextToken returns the next well-formed token. Malformed input is recorded in
// Errors and skipped, so the caller only ever sees valid tokens and, finally, EOF.
func (l *Lexer) NextToken() Token {
	for {
		l.skipTrivia()
		start := l.mark()

		if l.atEOF() {
			return Token{Type: EOF, Span: l.spanFrom(start)}
		}

		if tok, ok := l.scan(start); ok {
			return tok
		}
	}
}

// scan lexes one token starting at the current byte. It reports false when
// the input at this position was malformed; the error has already been
// recorded and the bad bytes consumed.
func (l *Lexer) scan(start position) (Token, bool) {
	switch ch := l.ch; ch {
	case '(', ')', '{', '}', '[', ']', ';', ',', '?', '~', '^', '%':
		l.advance()
		return l.makeToken(TokenType(string(ch)), start), true

	case '+':
		return l.either('=', PLUS_ASSIGN, PLUS, start), true
	case '*':
		return l.either('=', STAR_ASSIGN, ASTERISK, start), true
	case '/':
		return l.either('=', SLASH_ASSIGN, SLASH, start), true
	case '!':
		return l.either('=', NOT_EQ, BANG, start), true
	case '&':
		return l.either('&', AND, AMPERSAND, start), true
	case '|':
		return l.either('|', OR, PIPE, start), true
	case ':':
		return l.either(':', DOUBLE_COLON, COLON, start), true

	case '-':
		l.advance()
		switch l.ch {
		case '>':
			l.advance()
			return l.makeToken(ARROW, start), true
		case '=':
			l.advance()
			return l.makeToken(MINUS_ASSIGN, start), true
		}
		return l.makeToken(MINUS, start), true

	case '=':
		l.advance()
		switch l.ch {
		case '=':
			l.advance()
			return l.makeToken(EQ, start), true
		case '>':
			l.advance()
			return l.makeToken(FATARROW, start), true
		}
		return l.makeToken(ASSIGN, start), true

	case '<':
		l.advance()
		switch l.ch {
		case '=':
			l.advance()
			return l.makeToken(LE, start), true
		case '<':
			l.advance()
			return l.makeToken(SHL, start), true
		}
		return l.makeToken(LT, start), true

	case '>':
		l.advance()
		switch l.ch {
		case '=':
			l.advance()
			return l.makeToken(GE, start), true
		case '>':
			l.advance()
			return l.makeToken(SHR, start), true
		}
		return l.makeToken(GT, start), true

	case '.':
		l.advance()
		if l.ch != '.' {
			return l.makeToken(DOT, start), true
		}
		l.advance()
		if l.ch == '=' {
			l.advance()
			return l.makeToken(DOTDOT_EQ, start), true
		}
		return l.makeToken(DOTDOT, start), true

	case '"':
		return l.readString(start)

	case '\'':
		return l.readChar(start)
	}

	switch {
	case isLetter(l.ch):
		literal := l.readIdentifier()
		return l.makeToken(LookupIdent(literal), start), true
	case isDigit(l.ch):
		return l.readNumber(start)
	}

	l.advance()
	l.addError(
		ErrUnexpectedCharacter,
		fmt.Sprintf("unexpected character '%s'", printable(l.input[start.offset])),
		l.spanFrom(start),
	)
	return Token{}, false
}

// either lexes a one-byte operator that may be extended by next into a
// two-byte operator.
func (l *Lexer) either(next byte, two, one TokenType, start position) Token {
	l.advance()
	if l.ch == next {
		l.advance()
		return l.makeToken(two, start)
	}
	return l.makeToken(one, start)
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.advance()
	}
	return l.input[start:l.pos]
}

// readNumber reads an integer literal (decimal, hex 0x..., binary 0b...).
// Underscores are separators and are stripped before conversion. Values must
// fit in a signed 32-bit integer.
func (l *Lexer) readNumber(start position) (Token, bool) {
	if l.ch == '0' {
		switch l.peek() {
		case 'x', 'X':
			l.advance() // consume '0'
			l.advance() // consume 'x'
			digits := l.readDigits(isHexDigit)
			return l.intToken(start, digits, 16, "invalid hexadecimal number")
		case 'b', 'B':
			l.advance()
			l.advance()
			digits := l.readDigits(isBinaryDigit)
			return l.intToken(start, digits, 2, "invalid binary number")
		}
	}

	digits := l.readDigits(isDigit)

	if l.ch == '.' && isDigit(l.peek()) {
		l.advance() // consume '.'
		l.readDigits(isDigit)
		l.addError(ErrUnsupportedFloat, "float literals are not yet supported", l.spanFrom(start))
		return Token{}, false
	}

	return l.intToken(start, digits, 10, "invalid number")
}

func (l *Lexer) readDigits(accept func(byte) bool) string {
	start := l.pos
	for accept(l.ch) || l.ch == '_' {
		l.advance()
	}
	return l.input[start:l.pos]
}

func (l *Lexer) intToken(start position, digits string, base int, msg string) (Token, bool) {
	clean := strings.ReplaceAll(digits, "_", "")
	value, err := strconv.ParseInt(clean, base, 32)
	if clean == "" || err != nil {
		span := l.spanFrom(start)
		l.addError(ErrInvalidNumber, fmt.Sprintf("%s '%s'", msg, l.input[span.Start:span.End]), span)
		return Token{}, false
	}
	tok := l.makeToken(INT, start)
	tok.Int = int32(value)
	return tok, true
}

// decodeEscape maps the byte after a backslash to the character it denotes.
func decodeEscape(ch byte) (byte, bool) {
	switch ch {
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case '\\':
		return '\\', true
	case '"':
		return '"', true
	case '\'':
		return '\'', true
	case '0':
		return 0, true
	}
	return 0, false
}

// readEscape consumes a backslash escape and appends its value to buf. Invalid
// escapes are recorded and reported as false.
func (l *Lexer) readEscape(buf []byte) ([]byte, bool) {
	escStart := l.mark()
	l.advance() // consume '\'
	if l.atEOF() {
		return buf, true
	}
	decoded, ok := decodeEscape(l.ch)
	l.advance()
	if !ok {
		l.addError(
			ErrInvalidEscape,
			fmt.Sprintf("invalid escape sequence '\\%s'", printable(l.input[l.pos-1])),
			l.spanFrom(escStart),
		)
		return buf, false
	}
	return append(buf, decoded), true
}

// readString reads a string literal. Scanning continues past an invalid escape
// so the rest of the literal does not produce follow-up errors.
func (l *Lexer) readString(start position) (Token, bool) {
	l.advance() // skip opening quote

	var value []byte
	valid := true
	for {
		if l.atEOF() {
			l.addError(ErrUnterminatedString, "unterminated string literal", l.spanFrom(start))
			return Token{}, false
		}
		if l.ch == '"' {
			l.advance()
			break
		}
		if l.ch == '\\' {
			var ok bool
			value, ok = l.readEscape(value)
			valid = valid && ok
			continue
		}
		value = append(value, l.ch)
		l.advance()
	}

	if !valid {
		return Token{}, false
	}
	tok := l.makeToken(STRING, start)
	tok.Value = string(value)
	return tok, true
}

// readChar reads a character literal. The content must decode to exactly one
// character; multi-byte UTF-8 sequences count as one.
func (l *Lexer) readChar(start position) (Token, bool) {
	l.advance() // skip opening quote

	var content []byte
	valid := true
	for {
		if l.atEOF() || l.ch == '\n' {
			l.addError(ErrUnterminatedChar, "unterminated character literal", l.spanFrom(start))
			return Token{}, false
		}
		if l.ch == '\'' {
			l.advance()
			break
		}
		if l.ch == '\\' {
			var ok bool
			content, ok = l.readEscape(content)
			valid = valid && ok
			continue
		}
		content = append(content, l.ch)
		l.advance()
	}

	if !valid {
		return Token{}, false
	}

	ch, ok := decodeSingleChar(content)
	if !ok {
		l.addError(ErrInvalidCharLiteral, "character literal must be exactly one character", l.spanFrom(start))
		return Token{}, false
	}
	tok := l.makeToken(CHAR, start)
	tok.Char = ch
	tok.Value = string(content)
	return tok, true
}

func decodeSingleChar(content []byte) (rune, bool) {
	switch len(content) {
	case 0:
		return 0, false
	case 1:
		return rune(content[0]), true
	}
	r, size := utf8.DecodeRune(content)
	if r == utf8.RuneError || size != len(content) {
		return 0, false
	}
	return r, true
}

// printable renders a byte for an error message.
func printable(b byte) string {
	if b >= 0x20 && b < 0x7f {
		return string(rune(b))
	}
	return fmt.Sprintf("\\x%02x", b)
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// isHexDigit checks if a byte is a hexadecimal digit
func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') ||
		(ch >= 'a' && ch <= 'f') ||
		(ch >= 'A' && ch <= 'F')
}

func isBinaryDigit(ch byte) bool {
	return ch == '0' || ch == '1'
}
