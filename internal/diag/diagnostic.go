package diag

import "fmt"

// Stage identifies which front-end phase produced the diagnostic.
type Stage string

const (
	StageInput  Stage = "input"
	StageLexer  Stage = "lexer"
	StageParser Stage = "parser"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// LabeledSpan represents a span with an optional label.
type LabeledSpan struct {
	Span  Span   `json:"span" yaml:"span"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Style string `json:"style" yaml:"style"` // "primary" or "secondary"
}

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Input errors
	CodeInputTooLarge Code = "INPUT_TOO_LARGE"

	// Lexer errors
	CodeLexerUnexpectedCharacter      Code = "LEXER_UNEXPECTED_CHARACTER"
	CodeLexerInvalidEscape            Code = "LEXER_INVALID_ESCAPE"
	CodeLexerUnterminatedString       Code = "LEXER_UNTERMINATED_STRING"
	CodeLexerUnterminatedChar         Code = "LEXER_UNTERMINATED_CHAR"
	CodeLexerInvalidCharLiteral       Code = "LEXER_INVALID_CHAR_LITERAL"
	CodeLexerInvalidNumber            Code = "LEXER_INVALID_NUMBER"
	CodeLexerUnsupportedFloat         Code = "LEXER_UNSUPPORTED_FLOAT"
	CodeLexerUnterminatedBlockComment Code = "LEXER_UNTERMINATED_BLOCK_COMMENT"

	// Parser errors
	CodeParseExpectedToken      Code = "PARSE_EXPECTED_TOKEN"
	CodeParseExpectedItem       Code = "PARSE_EXPECTED_ITEM"
	CodeParseExpectedExpression Code = "PARSE_EXPECTED_EXPRESSION"
	CodeParseExpectedPattern    Code = "PARSE_EXPECTED_PATTERN"
	CodeParseExpectedType       Code = "PARSE_EXPECTED_TYPE"
	CodeParseBreakOutsideLoop   Code = "PARSE_BREAK_OUTSIDE_LOOP"
	CodeParseContinueOutside    Code = "PARSE_CONTINUE_OUTSIDE_LOOP"
	CodeParseInvalidAssignment  Code = "PARSE_INVALID_ASSIGNMENT_TARGET"
	CodeParseRepeatTooLarge     Code = "PARSE_ARRAY_REPEAT_TOO_LARGE"
	CodeParseNonAssociative     Code = "PARSE_NON_ASSOCIATIVE"
)

// Span represents a location in source code.
type Span struct {
	Filename string `json:"filename,omitempty" yaml:"filename,omitempty"`
	Line     int    `json:"line" yaml:"line"`
	Column   int    `json:"column" yaml:"column"`
	Start    int    `json:"start" yaml:"start"`
	End      int    `json:"end" yaml:"end"`
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Diagnostic is a front-end diagnostic surfaced to end-users.
type Diagnostic struct {
	Stage    Stage    `json:"stage" yaml:"stage"`
	Severity Severity `json:"severity" yaml:"severity"`
	Code     Code     `json:"code" yaml:"code"`
	Message  string   `json:"message" yaml:"message"`
	Span     Span     `json:"span" yaml:"span"`
	// LabeledSpans are rendered in addition to Span; the first primary span
	// replaces Span in the snippet when present.
	LabeledSpans []LabeledSpan `json:"labels,omitempty" yaml:"labels,omitempty"`
	Notes        []string      `json:"notes,omitempty" yaml:"notes,omitempty"`
	Help         string        `json:"help,omitempty" yaml:"help,omitempty"`
}

// Error implements the error interface so a diagnostic can travel as an error value.
func (d Diagnostic) Error() string {
	if d.Span.IsValid() {
		return fmt.Sprintf("%s: %s: %s", d.Span, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// WithLabeledSpan adds a labeled span to the diagnostic.
func (d Diagnostic) WithLabeledSpan(span Span, label string, style string) Diagnostic {
	if style == "" {
		style = "primary"
	}
	d.LabeledSpans = append(d.LabeledSpans, LabeledSpan{
		Span:  span,
		Label: label,
		Style: style,
	})
	return d
}

// WithPrimarySpan adds a primary labeled span.
func (d Diagnostic) WithPrimarySpan(span Span, label string) Diagnostic {
	return d.WithLabeledSpan(span, label, "primary")
}

// WithSecondarySpan adds a secondary labeled span.
func (d Diagnostic) WithSecondarySpan(span Span, label string) Diagnostic {
	return d.WithLabeledSpan(span, label, "secondary")
}

// WithNote adds a note to the diagnostic.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp adds help text to the diagnostic.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

// HasErrors reports whether any diagnostic in ds is an error.
func HasErrors(ds []Diagnostic) bool {
	for _, d := range ds {
		if d.Severity == SeverityError || d.Severity == "" {
			return true
		}
	}
	return false
}
