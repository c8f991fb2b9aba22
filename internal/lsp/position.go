package lsp

import (
	"strings"
	"unicode/utf16"
)

// Positions count characters in UTF-16 code units, the LSP default encoding.
// Offsets are byte offsets into the document.

// positionToOffset converts a zero-based line/character position into a byte
// offset, clamped to the end of the addressed line.
func positionToOffset(content string, pos Position) int {
	offset := 0
	for line := 0; line < pos.Line; line++ {
		i := strings.IndexByte(content[offset:], '\n')
		if i < 0 {
			return len(content)
		}
		offset += i + 1
	}

	end := len(content)
	if i := strings.IndexByte(content[offset:], '\n'); i >= 0 {
		end = offset + i
	}

	units := 0
	for i, r := range content[offset:end] {
		if units >= pos.Character {
			return offset + i
		}
		units += utf16Len(r)
	}
	return end
}

func offsetToPosition(content string, offset int) Position {
	offset = min(max(offset, 0), len(content))
	before := content[:offset]
	lineStart := strings.LastIndexByte(before, '\n') + 1

	units := 0
	for _, r := range before[lineStart:] {
		units += utf16Len(r)
	}
	return Position{
		Line:      strings.Count(before, "\n"),
		Character: units,
	}
}

func utf16Len(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}

func rangeOf(content string, start, end int) Range {
	return Range{
		Start: offsetToPosition(content, start),
		End:   offsetToPosition(content, end),
	}
}
