package parser

import (
	"github.com/haiman1024/Contractus/internal/ast"
	"github.com/haiman1024/Contractus/internal/lexer"
)

// parseGenerics parses a declaration's generic parameter list `<T: A + B, U>`.
func (p *Parser) parseGenerics() *ast.Generics {
	open := p.nextToken() // <

	params, ok := parseDelimited(p, delimitedConfig{
		Opener:            open,
		Closing:           lexer.GT,
		RequireOne:        true,
		MissingElementMsg: "expected generic parameter",
	}, func(int) (*ast.GenericParam, bool) {
		param := p.parseGenericParam()
		return param, param != nil
	})
	if !ok {
		return nil
	}

	return ast.NewGenerics(params, p.spanFrom(open.Span))
}

func (p *Parser) parseGenericParam() *ast.GenericParam {
	start := p.curTok().Span

	name := p.parseIdent()
	if name == nil {
		return nil
	}

	var bounds []*ast.Ident
	if p.accept(lexer.COLON) {
		for {
			bound := p.parseIdent()
			if bound == nil {
				return nil
			}
			bounds = append(bounds, bound)
			if !p.accept(lexer.PLUS) {
				break
			}
		}
	}

	return ast.NewGenericParam(name, bounds, p.spanFrom(start))
}
