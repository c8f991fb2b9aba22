package lsp

import (
	"encoding/json"
)

// Location represents a location in a document.
type Location struct {
	URI   string `json:"uri"`
	Range Range  `json:"range"`
}

func (s *Server) handleDefinition(msg *jsonrpcMessage) *jsonrpcResponse {
	var params TextDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return invalidParams(msg.ID, err)
	}

	doc, ok := s.Document(params.TextDocument.URI)
	if !ok || doc.Program == nil {
		return result(msg.ID, nil)
	}

	return result(msg.ID, definitionAt(doc, params.Position))
}

// definitionAt resolves the identifier under pos against the document's
// top-level items. Local bindings are not resolved.
func definitionAt(doc Document, pos Position) *Location {
	offset := positionToOffset(doc.source, pos)

	ident := identAt(doc.Program, offset)
	if ident == nil {
		return nil
	}
	item := lookupItem(doc.Program, ident.Name)
	if item == nil {
		return nil
	}

	name := itemName(item).Span()
	return &Location{
		URI:   doc.URI,
		Range: rangeOf(doc.source, name.Start, name.End),
	}
}
