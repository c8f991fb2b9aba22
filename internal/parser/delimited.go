package parser

import (
	"fmt"

	"github.com/haiman1024/Contractus/internal/diag"
	"github.com/haiman1024/Contractus/internal/lexer"
)

type delimitedConfig struct {
	// Opener is the already-consumed opening token; it is quoted when the
	// list is never closed.
	Opener    lexer.Token
	Closing   lexer.TokenType
	Separator lexer.TokenType

	// RequireOne rejects an empty list with MissingElementMsg.
	RequireOne        bool
	MissingElementMsg string
}

// parseDelimited parses `item (sep item)* sep? closing` with the opener
// already consumed. A trailing separator is always accepted. It returns false
// after reporting an error; parseItem must report its own failures.
func parseDelimited[T any](p *Parser, cfg delimitedConfig, parseItem func(idx int) (T, bool)) ([]T, bool) {
	if cfg.Separator == "" {
		cfg.Separator = lexer.COMMA
	}
	if cfg.Closing == "" {
		panic("parseDelimited requires a closing token")
	}

	var items []T

	for {
		if p.check(cfg.Closing) {
			if len(items) == 0 && cfg.RequireOne {
				msg := cfg.MissingElementMsg
				if msg == "" {
					msg = "expected element"
				}
				p.reportError(diag.CodeParseExpectedToken, fmt.Sprintf("%s, found %s", msg, quoteFound(p.curTok())), p.curTok().Span)
				return items, false
			}
			p.nextToken()
			return items, true
		}

		item, ok := parseItem(len(items))
		if !ok {
			return items, false
		}
		items = append(items, item)

		if p.accept(cfg.Separator) {
			continue
		}
		if p.accept(cfg.Closing) {
			return items, true
		}

		p.reportUnclosedList(cfg.Separator, cfg.Closing, cfg.Opener)
		return items, false
	}
}
