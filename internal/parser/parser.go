package parser

import (
	"github.com/haiman1024/Contractus/internal/ast"
	"github.com/haiman1024/Contractus/internal/lexer"
)

// DefaultMaxArrayRepeat bounds the count accepted by the `[expr; N]` array form.
const DefaultMaxArrayRepeat = 65536

type Option func(*options)

type options struct {
	filename  string
	maxRepeat int
}

// WithFilename configures the parser to attribute all emitted spans to the provided filename.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// WithMaxArrayRepeat caps the element count of `[expr; N]` literals and the
// total number of elements their expansion may produce in one parse. Values
// below one fall back to DefaultMaxArrayRepeat.
func WithMaxArrayRepeat(n int) Option {
	return func(o *options) {
		o.maxRepeat = n
	}
}

// Parser implements a recursive descent parser with precedence climbing for
// expressions.
//
// Invariants:
//   - Cursor: tokens always ends with an EOF token and pos never moves past it.
//     Lookahead is done by index; the parser never re-lexes.
//   - Diagnostics: errors is append-only. While panicking is set, further
//     errors are dropped until a recovery point clears the flag.
//   - Spans: every production stamps its node with the merge of its first and
//     last consumed token, so a parent span always covers its children.
//   - loopDepth counts enclosing `while`/`for` bodies and is restored on every
//     exit path of a loop body parse.
type Parser struct {
	tokens []lexer.Token
	pos    int

	errors    []ParseError
	panicking bool

	filename  string
	maxRepeat int

	// repeatBudget is the number of elements `[e; N]` expansion may still
	// produce in this parse. It starts at maxRepeat.
	repeatBudget int

	loopDepth int

	// noStructLit is set while parsing the head of if/while/for/match, where
	// `Name {` opens the body rather than a struct literal.
	noStructLit bool

	// pendingGreater records the second half of a `>>` token that closed a
	// nested generic argument list.
	pendingGreater bool
	typeDepth      int
}

// New returns a parser over tokens. A missing trailing EOF token is supplied.
func New(tokens []lexer.Token, opts ...Option) *Parser {
	cfg := options{maxRepeat: DefaultMaxArrayRepeat}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxRepeat < 1 {
		cfg.maxRepeat = DefaultMaxArrayRepeat
	}

	if n := len(tokens); n == 0 || tokens[n-1].Type != lexer.EOF {
		var eofSpan lexer.Span
		if n > 0 {
			eofSpan = emptyAfter(tokens[n-1].Span)
		} else {
			eofSpan = lexer.Span{Filename: cfg.filename, Line: 1, Column: 1}
		}
		tokens = append(tokens[:n:n], lexer.Token{Type: lexer.EOF, Span: eofSpan})
	}

	return &Parser{
		tokens:       tokens,
		filename:     cfg.filename,
		maxRepeat:    cfg.maxRepeat,
		repeatBudget: cfg.maxRepeat,
	}
}

// Errors returns all parse errors collected so far.
func (p *Parser) Errors() []ParseError {
	return p.errors
}

// ParseProgram parses the whole token stream. The returned program is always
// non-nil; callers must consult Errors to learn whether it is complete.
func (p *Parser) ParseProgram() *ast.Program {
	start := p.curTok().Span
	var items []ast.Decl

	for !p.atEOF() {
		startPos := p.pos
		item := p.parseItem()
		if item == nil {
			p.recoverItem(startPos)
			continue
		}
		items = append(items, item)
	}

	return ast.NewProgram(items, start.Merge(p.curTok().Span))
}
