package lsp

import (
	"encoding/json"

	"github.com/haiman1024/Contractus/internal/ast"
	"github.com/haiman1024/Contractus/internal/lexer"
)

// CompletionList represents a list of completion items.
type CompletionList struct {
	IsIncomplete bool             `json:"isIncomplete"`
	Items        []CompletionItem `json:"items"`
}

type CompletionItem struct {
	Label  string `json:"label"`
	Kind   int    `json:"kind"`
	Detail string `json:"detail,omitempty"`
}

const (
	completionKindFunction = 3
	completionKindVariable = 6
	completionKindClass    = 7
	completionKindModule   = 9
	completionKindEnum     = 13
	completionKindKeyword  = 14
	completionKindConstant = 21
	completionKindStruct   = 22
)

func (s *Server) handleCompletion(msg *jsonrpcMessage) *jsonrpcResponse {
	var params TextDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return invalidParams(msg.ID, err)
	}

	doc, ok := s.Document(params.TextDocument.URI)
	if !ok {
		return result(msg.ID, CompletionList{Items: []CompletionItem{}})
	}

	return result(msg.ID, CompletionList{Items: completions(doc)})
}

// completions offers the document's top-level items followed by every
// keyword. Primitive type names are marked as such.
func completions(doc Document) []CompletionItem {
	var items []CompletionItem

	if doc.Program != nil {
		for _, item := range doc.Program.Items {
			name := itemName(item)
			if name == nil {
				continue
			}
			detail := itemKeyword(item)
			if _, ok := item.(*ast.FnDecl); ok {
				detail = signature(doc.source, item)
			}
			items = append(items, CompletionItem{
				Label:  name.Name,
				Kind:   completionKind(item),
				Detail: detail,
			})
		}
	}

	for _, kw := range lexer.Keywords() {
		item := CompletionItem{Label: kw, Kind: completionKindKeyword}
		if lexer.LookupIdent(kw).IsTypeKeyword() {
			item.Detail = "primitive type"
		}
		items = append(items, item)
	}
	return items
}

func completionKind(item ast.Decl) int {
	switch item.(type) {
	case *ast.FnDecl:
		return completionKindFunction
	case *ast.StructDecl:
		return completionKindStruct
	case *ast.EnumDecl:
		return completionKindEnum
	case *ast.ConstDecl:
		return completionKindConstant
	case *ast.ImportDecl:
		return completionKindModule
	}
	return completionKindVariable
}
