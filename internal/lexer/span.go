package lexer

import "fmt"

// Span represents the source location of a token or AST node.
type Span struct {
	Filename string // optional source filename for diagnostics
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Start    int    // byte offset of the first byte
	End      int    // exclusive end byte offset
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsZero reports whether the span carries no location at all.
func (s Span) IsZero() bool {
	return s == Span{}
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Merge returns the smallest span covering both s and other.
//
// Offsets take the min start and max end. The position comes from the span on
// the smaller line; when both begin on the same line the smaller column wins.
func (s Span) Merge(other Span) Span {
	if s.IsZero() {
		return other
	}
	if other.IsZero() {
		return s
	}

	merged := Span{
		Filename: s.Filename,
		Start:    min(s.Start, other.Start),
		End:      max(s.End, other.End),
	}
	if merged.Filename == "" {
		merged.Filename = other.Filename
	}

	switch {
	case s.Line == other.Line:
		merged.Line = s.Line
		merged.Column = min(s.Column, other.Column)
	case s.Line < other.Line:
		merged.Line = s.Line
		merged.Column = s.Column
	default:
		merged.Line = other.Line
		merged.Column = other.Column
	}
	return merged
}

func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}
