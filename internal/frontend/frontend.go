// Package frontend wires the lexer and parser into a single source-to-tree
// entry point that reports every problem as a diag.Diagnostic.
package frontend

import (
	"fmt"

	"github.com/haiman1024/Contractus/internal/ast"
	"github.com/haiman1024/Contractus/internal/diag"
	"github.com/haiman1024/Contractus/internal/lexer"
	"github.com/haiman1024/Contractus/internal/parser"
)

// DefaultMaxSourceBytes is the largest input accepted when no limit is configured.
const DefaultMaxSourceBytes = 8 << 20

type Option func(*options)

type options struct {
	filename       string
	maxSourceBytes int
	maxRepeat      int
}

// WithFilename attributes spans and diagnostics to name.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// WithMaxSourceBytes rejects inputs larger than n bytes before lexing.
// Values below one disable the check.
func WithMaxSourceBytes(n int) Option {
	return func(o *options) {
		o.maxSourceBytes = n
	}
}

// WithMaxArrayRepeat is forwarded to parser.WithMaxArrayRepeat.
func WithMaxArrayRepeat(n int) Option {
	return func(o *options) {
		o.maxRepeat = n
	}
}

func buildOptions(opts []Option) options {
	cfg := options{
		maxSourceBytes: DefaultMaxSourceBytes,
		maxRepeat:      parser.DefaultMaxArrayRepeat,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Tokenize lexes src. The token slice always ends with EOF; diagnostics hold
// every lexical error in source order.
func Tokenize(src string, opts ...Option) ([]lexer.Token, []diag.Diagnostic) {
	cfg := buildOptions(opts)
	if d, ok := checkSize(src, cfg); !ok {
		return []lexer.Token{{Type: lexer.EOF, Span: lexer.Span{Filename: cfg.filename, Line: 1, Column: 1}}}, []diag.Diagnostic{d}
	}

	tokens, lexErrs := lexer.Tokenize(src, lexer.WithFilename(cfg.filename))
	return tokens, lexerDiagnostics(lexErrs)
}

// Parse runs the lexer and the parser over src. It returns either a program
// and no diagnostics, or a nil program and at least one diagnostic. Lexical
// errors stop the pipeline before parsing.
func Parse(src string, opts ...Option) (*ast.Program, []diag.Diagnostic) {
	cfg := buildOptions(opts)
	if d, ok := checkSize(src, cfg); !ok {
		return nil, []diag.Diagnostic{d}
	}

	tokens, lexErrs := lexer.Tokenize(src, lexer.WithFilename(cfg.filename))
	if len(lexErrs) > 0 {
		return nil, lexerDiagnostics(lexErrs)
	}

	p := parser.New(tokens,
		parser.WithFilename(cfg.filename),
		parser.WithMaxArrayRepeat(cfg.maxRepeat),
	)
	program := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		diags := make([]diag.Diagnostic, len(errs))
		for i, err := range errs {
			diags[i] = err.ToDiagnostic()
		}
		return nil, diags
	}

	return program, nil
}

func checkSize(src string, cfg options) (diag.Diagnostic, bool) {
	if cfg.maxSourceBytes < 1 || len(src) <= cfg.maxSourceBytes {
		return diag.Diagnostic{}, true
	}
	return InputTooLarge(cfg.filename, int64(len(src)), cfg.maxSourceBytes), false
}

// InputTooLarge is the diagnostic for a source over the size limit. Callers
// that stop reading at the limit pass a negative size.
func InputTooLarge(filename string, size int64, limit int) diag.Diagnostic {
	msg := fmt.Sprintf("source is %d bytes, larger than the limit of %d bytes", size, limit)
	if size < 0 {
		msg = fmt.Sprintf("source is larger than the limit of %d bytes", limit)
	}
	return diag.Diagnostic{
		Stage:    diag.StageInput,
		Severity: diag.SeverityError,
		Code:     diag.CodeInputTooLarge,
		Message:  msg,
		Span:     diag.Span{Filename: filename},
	}
}

func lexerDiagnostics(errs []lexer.LexerError) []diag.Diagnostic {
	if len(errs) == 0 {
		return nil
	}
	diags := make([]diag.Diagnostic, len(errs))
	for i, err := range errs {
		diags[i] = err.ToDiagnostic()
	}
	return diags
}
