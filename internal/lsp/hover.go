package lsp

import (
	"encoding/json"
)

// Hover represents hover information.
type Hover struct {
	Contents MarkupContent `json:"contents"`
	Range    *Range        `json:"range,omitempty"`
}

type MarkupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

func (s *Server) handleHover(msg *jsonrpcMessage) *jsonrpcResponse {
	var params TextDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return invalidParams(msg.ID, err)
	}

	doc, ok := s.Document(params.TextDocument.URI)
	if !ok || doc.Program == nil {
		return result(msg.ID, nil)
	}

	return result(msg.ID, hoverAt(doc, params.Position))
}

// hoverAt shows the header of the top-level item named by the identifier
// under pos.
func hoverAt(doc Document, pos Position) *Hover {
	offset := positionToOffset(doc.source, pos)

	ident := identAt(doc.Program, offset)
	if ident == nil {
		return nil
	}
	item := lookupItem(doc.Program, ident.Name)
	if item == nil {
		return nil
	}

	span := ident.Span()
	r := rangeOf(doc.source, span.Start, span.End)
	return &Hover{
		Contents: MarkupContent{
			Kind:  "markdown",
			Value: "```contractus\n" + signature(doc.source, item) + "\n```",
		},
		Range: &r,
	}
}
