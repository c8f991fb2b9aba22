package parser

import (
	"fmt"

	"github.com/haiman1024/Contractus/internal/diag"
	"github.com/haiman1024/Contractus/internal/lexer"
)

// ParseError captures a recoverable parsing error with location context.
type ParseError struct {
	Message string
	Help    string
	Code    diag.Code
	Span    lexer.Span
	// Related points at a second location, such as the opener of an
	// unclosed delimiter.
	Related []RelatedSpan
}

// RelatedSpan is a secondary location attached to a ParseError.
type RelatedSpan struct {
	Span  lexer.Span
	Label string
}

func (e ParseError) Error() string {
	if e.Span.Filename != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.Span.Filename, e.Span.Line, e.Span.Column, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s", e.Span.Line, e.Span.Column, e.Message)
}

// ToDiagnostic converts a parse error into a shared diagnostic structure.
func (e ParseError) ToDiagnostic() diag.Diagnostic {
	code := e.Code
	if code == "" {
		code = diag.CodeParseExpectedToken
	}

	d := diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: diag.SeverityError,
		Code:     code,
		Message:  e.Message,
		Span:     e.Span.ToDiag(),
	}
	for _, rel := range e.Related {
		d = d.WithSecondarySpan(rel.Span.ToDiag(), rel.Label)
	}
	if e.Help != "" {
		d = d.WithHelp(e.Help)
	}
	return d
}

// emitParseDiagnostic records err unless the parser is already panicking, then
// enters panic mode. All call sites must supply the best-effort span available
// at the failure site.
func (p *Parser) emitParseDiagnostic(err ParseError) {
	if p.panicking {
		return
	}
	p.panicking = true

	if err.Span.Filename == "" && p.filename != "" {
		err.Span.Filename = p.filename
	}
	for i := range err.Related {
		if err.Related[i].Span.Filename == "" && p.filename != "" {
			err.Related[i].Span.Filename = p.filename
		}
	}
	p.errors = append(p.errors, err)
}

func (p *Parser) reportError(code diag.Code, msg string, span lexer.Span) {
	p.emitParseDiagnostic(ParseError{Message: msg, Code: code, Span: span})
}

func (p *Parser) reportErrorWithHelp(code diag.Code, msg string, span lexer.Span, help string) {
	p.emitParseDiagnostic(ParseError{Message: msg, Code: code, Span: span, Help: help})
}

// reportExpected reports "expected <what>, found `<tok>`".
func (p *Parser) reportExpected(what string, found lexer.Token) {
	p.reportExpectedCode(diag.CodeParseExpectedToken, what, found)
}

func (p *Parser) reportExpectedCode(code diag.Code, what string, found lexer.Token) {
	p.reportError(code, fmt.Sprintf("expected %s, found %s", what, quoteFound(found)), found.Span)
}

func (p *Parser) reportUnclosed(closing lexer.TokenType, opener, found lexer.Token) {
	p.emitParseDiagnostic(ParseError{
		Message: fmt.Sprintf("expected %s, found %s", describeType(closing), quoteFound(found)),
		Code:    diag.CodeParseExpectedToken,
		Span:    found.Span,
		Related: []RelatedSpan{{Span: opener.Span, Label: "unclosed delimiter"}},
	})
}

func quoteFound(tok lexer.Token) string {
	if tok.Type == lexer.EOF {
		return "end of file"
	}
	return "`" + tok.Describe() + "`"
}

// reportUnclosedList reports a list element that is followed by neither the
// separator nor the closing delimiter.
func (p *Parser) reportUnclosedList(sep, closing lexer.TokenType, opener lexer.Token) {
	found := p.curTok()
	p.emitParseDiagnostic(ParseError{
		Message: fmt.Sprintf("expected %s or %s, found %s", describeType(sep), describeType(closing), quoteFound(found)),
		Code:    diag.CodeParseExpectedToken,
		Span:    found.Span,
		Related: []RelatedSpan{{Span: opener.Span, Label: "unclosed delimiter"}},
	})
}
