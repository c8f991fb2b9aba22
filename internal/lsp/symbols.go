package lsp

import (
	"encoding/json"
	"strings"

	"github.com/haiman1024/Contractus/internal/ast"
)

// LSP SymbolKind values.
const (
	symbolKindModule     = 2
	symbolKindField      = 8
	symbolKindEnum       = 10
	symbolKindFunction   = 12
	symbolKindVariable   = 13
	symbolKindConstant   = 14
	symbolKindEnumMember = 22
	symbolKindStruct     = 23
)

// DocumentSymbol is one entry of a textDocument/documentSymbol response.
type DocumentSymbol struct {
	Name           string           `json:"name"`
	Detail         string           `json:"detail,omitempty"`
	Kind           int              `json:"kind"`
	Range          Range            `json:"range"`
	SelectionRange Range            `json:"selectionRange"`
	Children       []DocumentSymbol `json:"children,omitempty"`
}

func (s *Server) handleDocumentSymbol(msg *jsonrpcMessage) *jsonrpcResponse {
	var params struct {
		TextDocument TextDocumentIdentifier `json:"textDocument"`
	}
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return invalidParams(msg.ID, err)
	}

	doc, ok := s.Document(params.TextDocument.URI)
	if !ok || doc.Program == nil {
		return result(msg.ID, []DocumentSymbol{})
	}

	symbols := make([]DocumentSymbol, 0, len(doc.Program.Items))
	for _, item := range doc.Program.Items {
		if sym, ok := documentSymbol(doc.source, item); ok {
			symbols = append(symbols, sym)
		}
	}
	return result(msg.ID, symbols)
}

func documentSymbol(src string, item ast.Decl) (DocumentSymbol, bool) {
	name := itemName(item)
	if name == nil {
		return DocumentSymbol{}, false
	}

	sym := DocumentSymbol{
		Name:           name.Name,
		Detail:         itemKeyword(item),
		Kind:           itemSymbolKind(item),
		Range:          rangeOf(src, item.Span().Start, item.Span().End),
		SelectionRange: rangeOf(src, name.Span().Start, name.Span().End),
	}

	switch d := item.(type) {
	case *ast.StructDecl:
		for _, f := range d.Fields {
			sym.Children = append(sym.Children, DocumentSymbol{
				Name:           f.Name.Name,
				Detail:         ast.Sprint(f.Type),
				Kind:           symbolKindField,
				Range:          rangeOf(src, f.Span().Start, f.Span().End),
				SelectionRange: rangeOf(src, f.Name.Span().Start, f.Name.Span().End),
			})
		}
	case *ast.EnumDecl:
		for _, v := range d.Variants {
			sym.Children = append(sym.Children, DocumentSymbol{
				Name:           v.Name.Name,
				Kind:           symbolKindEnumMember,
				Range:          rangeOf(src, v.Span().Start, v.Span().End),
				SelectionRange: rangeOf(src, v.Name.Span().Start, v.Name.Span().End),
			})
		}
	}
	return sym, true
}

// itemName returns the name an item binds at the top level, or nil for
// exports, which bind nothing.
func itemName(item ast.Decl) *ast.Ident {
	switch d := item.(type) {
	case *ast.FnDecl:
		return d.Name
	case *ast.StructDecl:
		return d.Name
	case *ast.EnumDecl:
		return d.Name
	case *ast.ConstDecl:
		return d.Name
	case *ast.StaticDecl:
		return d.Name
	case *ast.ImportDecl:
		if d.Alias != nil {
			return d.Alias
		}
		return d.Path[len(d.Path)-1]
	}
	return nil
}

func itemKeyword(item ast.Decl) string {
	switch item.(type) {
	case *ast.FnDecl:
		return "fn"
	case *ast.StructDecl:
		return "struct"
	case *ast.EnumDecl:
		return "enum"
	case *ast.ConstDecl:
		return "const"
	case *ast.StaticDecl:
		return "static"
	case *ast.ImportDecl:
		return "import"
	}
	return ""
}

func itemSymbolKind(item ast.Decl) int {
	switch item.(type) {
	case *ast.FnDecl:
		return symbolKindFunction
	case *ast.StructDecl:
		return symbolKindStruct
	case *ast.EnumDecl:
		return symbolKindEnum
	case *ast.ConstDecl:
		return symbolKindConstant
	case *ast.ImportDecl:
		return symbolKindModule
	}
	return symbolKindVariable
}

// lookupItem finds the top-level item binding name.
func lookupItem(program *ast.Program, name string) ast.Decl {
	for _, item := range program.Items {
		if id := itemName(item); id != nil && id.Name == name {
			return item
		}
	}
	return nil
}

// signature renders the header of an item from its source text: everything
// before the body for functions, the whole declaration otherwise.
func signature(src string, item ast.Decl) string {
	span := item.Span()
	end := span.End
	if fn, ok := item.(*ast.FnDecl); ok {
		end = fn.Body.Span().Start
	}
	if span.Start < 0 || end > len(src) || span.Start > end {
		return ""
	}
	return strings.TrimSpace(src[span.Start:end])
}

// identAt returns the identifier covering offset.
func identAt(program *ast.Program, offset int) *ast.Ident {
	var found *ast.Ident
	ast.Walk(program, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		if ident, ok := n.(*ast.Ident); ok {
			span := ident.Span()
			if offset >= span.Start && offset < span.End {
				found = ident
			}
		}
		return true
	})
	return found
}
