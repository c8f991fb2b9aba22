package lsp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/haiman1024/Contractus/internal/diag"
	"github.com/haiman1024/Contractus/internal/frontend"
)

const (
	testURI = "file:///work/main.ctr"
	testSrc = "struct Point { x: i32, y: i32 }\n" +
		"fn add(a: i32, b: i32) -> i32 { a + b }\n" +
		"fn main() { let p = add(1, 2); }\n"
)

type outFrame struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
	Result json.RawMessage `json:"result"`
	Error  *jsonrpcError   `json:"error"`
}

func frame(t *testing.T, id int, method string, params any) string {
	t.Helper()

	msg := map[string]any{"jsonrpc": "2.0", "method": method}
	if id > 0 {
		msg["id"] = id
	}
	if params != nil {
		msg["params"] = params
	}
	data, err := json.Marshal(msg)
	require.NoError(t, err)
	return fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(data), data)
}

func docParams(uri string) map[string]any {
	return map[string]any{"textDocument": map[string]any{"uri": uri}}
}

func posParams(uri string, line, char int) map[string]any {
	return map[string]any{
		"textDocument": map[string]any{"uri": uri},
		"position":     map[string]any{"line": line, "character": char},
	}
}

func openParams(uri, text string) map[string]any {
	return map[string]any{"textDocument": map[string]any{
		"uri": uri, "languageId": "contractus", "version": 1, "text": text,
	}}
}

// run feeds the framed input to a fresh server and decodes everything it wrote.
func run(t *testing.T, s *Server, input ...string) []outFrame {
	t.Helper()

	var out bytes.Buffer
	err := s.Run(context.Background(), strings.NewReader(strings.Join(input, "")), &out)
	require.NoError(t, err)

	var frames []outFrame
	r := bufio.NewReader(&out)
	for {
		body, err := readMessage(r)
		if errors.Is(err, io.EOF) {
			return frames
		}
		require.NoError(t, err)

		var f outFrame
		require.NoError(t, json.Unmarshal(body, &f))
		frames = append(frames, f)
	}
}

func response(t *testing.T, frames []outFrame, id int) outFrame {
	t.Helper()

	want := fmt.Sprint(id)
	for _, f := range frames {
		if string(f.ID) == want {
			return f
		}
	}
	require.FailNowf(t, "missing response", "no response with id %d", id)
	return outFrame{}
}

func notifications(frames []outFrame) []PublishDiagnosticsParams {
	var out []PublishDiagnosticsParams
	for _, f := range frames {
		if f.Method != "textDocument/publishDiagnostics" {
			continue
		}
		var p PublishDiagnosticsParams
		if err := json.Unmarshal(f.Params, &p); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestInitialize(t *testing.T) {
	t.Parallel()

	frames := run(t, NewServer(WithVersion("1.2.3")),
		frame(t, 1, "initialize", map[string]any{"rootUri": "file:///work"}),
		frame(t, 0, "initialized", map[string]any{}),
	)
	require.Len(t, frames, 1)

	res := decode[InitializeResult](t, response(t, frames, 1).Result)
	require.Equal(t, textDocumentSyncFull, res.Capabilities.TextDocumentSync)
	require.Equal(t, "utf-16", res.Capabilities.PositionEncoding)
	require.True(t, res.Capabilities.HoverProvider)
	require.True(t, res.Capabilities.DefinitionProvider)
	require.True(t, res.Capabilities.DocumentSymbolProvider)
	require.Equal(t, ServerInfo{Name: "contractus-lsp", Version: "1.2.3"}, res.ServerInfo)
}

func TestDidOpenPublishesDiagnostics(t *testing.T) {
	t.Parallel()

	s := NewServer()
	frames := run(t, s,
		frame(t, 0, "textDocument/didOpen", openParams(testURI, testSrc)),
		frame(t, 0, "textDocument/didChange", map[string]any{
			"textDocument":   map[string]any{"uri": testURI, "version": 2},
			"contentChanges": []map[string]any{{"text": "fn main() { let = 1; }"}},
		}),
	)

	published := notifications(frames)
	require.Len(t, published, 2)

	require.Equal(t, testURI, published[0].URI)
	require.NotNil(t, published[0].Diagnostics)
	require.Empty(t, published[0].Diagnostics)

	require.Len(t, published[1].Diagnostics, 1)
	d := published[1].Diagnostics[0]
	require.Equal(t, string(diag.CodeParseExpectedPattern), d.Code)
	require.Equal(t, 1, d.Severity)
	require.Equal(t, "contractus", d.Source)
	require.Equal(t, Position{Line: 0, Character: 16}, d.Range.Start)

	doc, ok := s.Document(testURI)
	require.True(t, ok)
	require.Equal(t, 2, doc.Version)
	require.Equal(t, "fn main() { let = 1; }", doc.Content)
	require.NotNil(t, doc.Program, "last clean tree is kept")
	require.Len(t, doc.Program.Items, 3)
}

func TestDidClosePublishesEmptyDiagnostics(t *testing.T) {
	t.Parallel()

	s := NewServer()
	frames := run(t, s,
		frame(t, 0, "textDocument/didOpen", openParams(testURI, "fn main() { break; }")),
		frame(t, 0, "textDocument/didClose", docParams(testURI)),
	)

	published := notifications(frames)
	require.Len(t, published, 2)
	require.Len(t, published[0].Diagnostics, 1)
	require.Equal(t, string(diag.CodeParseBreakOutsideLoop), published[0].Diagnostics[0].Code)
	require.Empty(t, published[1].Diagnostics)

	_, ok := s.Document(testURI)
	require.False(t, ok)
}

func TestFrontendOptionsApply(t *testing.T) {
	t.Parallel()

	s := NewServer(WithFrontendOptions(frontend.WithMaxSourceBytes(10)))
	frames := run(t, s, frame(t, 0, "textDocument/didOpen", openParams(testURI, testSrc)))

	published := notifications(frames)
	require.Len(t, published, 1)
	require.Len(t, published[0].Diagnostics, 1)
	require.Equal(t, string(diag.CodeInputTooLarge), published[0].Diagnostics[0].Code)
}

func TestHover(t *testing.T) {
	t.Parallel()

	frames := run(t, NewServer(),
		frame(t, 0, "textDocument/didOpen", openParams(testURI, testSrc)),
		frame(t, 1, "textDocument/hover", posParams(testURI, 2, 21)),
		frame(t, 2, "textDocument/hover", posParams(testURI, 2, 11)),
		frame(t, 3, "textDocument/hover", posParams("file:///missing.ctr", 0, 0)),
	)

	hover := decode[Hover](t, response(t, frames, 1).Result)
	require.Equal(t, "markdown", hover.Contents.Kind)
	require.Equal(t, "```contractus\nfn add(a: i32, b: i32) -> i32\n```", hover.Contents.Value)
	require.Equal(t, &Range{
		Start: Position{Line: 2, Character: 20},
		End:   Position{Line: 2, Character: 23},
	}, hover.Range)

	require.JSONEq(t, "null", string(response(t, frames, 2).Result))
	require.JSONEq(t, "null", string(response(t, frames, 3).Result))
}

func TestDefinition(t *testing.T) {
	t.Parallel()

	frames := run(t, NewServer(),
		frame(t, 0, "textDocument/didOpen", openParams(testURI, testSrc)),
		frame(t, 1, "textDocument/definition", posParams(testURI, 2, 22)),
		frame(t, 2, "textDocument/definition", posParams(testURI, 1, 32)),
	)

	loc := decode[Location](t, response(t, frames, 1).Result)
	require.Equal(t, Location{
		URI: testURI,
		Range: Range{
			Start: Position{Line: 1, Character: 3},
			End:   Position{Line: 1, Character: 6},
		},
	}, loc)

	// `a` is a parameter, not a top-level item.
	require.JSONEq(t, "null", string(response(t, frames, 2).Result))
}

func TestCompletion(t *testing.T) {
	t.Parallel()

	frames := run(t, NewServer(),
		frame(t, 0, "textDocument/didOpen", openParams(testURI, testSrc)),
		frame(t, 1, "textDocument/completion", posParams(testURI, 2, 0)),
	)

	list := decode[CompletionList](t, response(t, frames, 1).Result)
	require.False(t, list.IsIncomplete)
	require.GreaterOrEqual(t, len(list.Items), 3)
	require.Equal(t, []CompletionItem{
		{Label: "Point", Kind: completionKindStruct, Detail: "struct"},
		{Label: "add", Kind: completionKindFunction, Detail: "fn add(a: i32, b: i32) -> i32"},
		{Label: "main", Kind: completionKindFunction, Detail: "fn main()"},
	}, list.Items[:3])
	require.Contains(t, list.Items, CompletionItem{Label: "fn", Kind: completionKindKeyword})
	require.Contains(t, list.Items, CompletionItem{Label: "match", Kind: completionKindKeyword})
	require.Contains(t, list.Items, CompletionItem{Label: "i32", Kind: completionKindKeyword, Detail: "primitive type"})
	require.Contains(t, list.Items, CompletionItem{Label: "string", Kind: completionKindKeyword, Detail: "primitive type"})
}

func TestDocumentSymbol(t *testing.T) {
	t.Parallel()

	frames := run(t, NewServer(),
		frame(t, 0, "textDocument/didOpen", openParams(testURI, testSrc)),
		frame(t, 1, "textDocument/documentSymbol", docParams(testURI)),
		frame(t, 2, "textDocument/documentSymbol", docParams("file:///missing.ctr")),
	)

	symbols := decode[[]DocumentSymbol](t, response(t, frames, 1).Result)
	require.Len(t, symbols, 3)

	point := symbols[0]
	require.Equal(t, "Point", point.Name)
	require.Equal(t, symbolKindStruct, point.Kind)
	require.Equal(t, Range{End: Position{Character: 31}}, point.Range)
	require.Equal(t, Range{Start: Position{Character: 7}, End: Position{Character: 12}}, point.SelectionRange)
	require.Len(t, point.Children, 2)
	require.Equal(t, "x", point.Children[0].Name)
	require.Equal(t, "i32", point.Children[0].Detail)
	require.Equal(t, symbolKindField, point.Children[0].Kind)

	require.Equal(t, "add", symbols[1].Name)
	require.Equal(t, symbolKindFunction, symbols[1].Kind)
	require.Equal(t, "main", symbols[2].Name)

	require.JSONEq(t, "[]", string(response(t, frames, 2).Result))
}

func TestProtocolErrors(t *testing.T) {
	t.Parallel()

	malformed := "Content-Length: 1\r\n\r\n{"
	frames := run(t, NewServer(),
		malformed,
		frame(t, 1, "workspace/unknown", nil),
		frame(t, 0, "$/cancelRequest", map[string]any{"id": 1}),
		frame(t, 2, "textDocument/hover", "not an object"),
		frame(t, 3, "shutdown", nil),
		frame(t, 4, "textDocument/hover", posParams(testURI, 0, 0)),
		frame(t, 0, "exit", nil),
		frame(t, 5, "textDocument/hover", posParams(testURI, 0, 0)),
	)
	require.Len(t, frames, 5)

	require.JSONEq(t, "null", string(frames[0].ID))
	require.Equal(t, codeParseError, frames[0].Error.Code)

	require.Equal(t, codeMethodNotFound, response(t, frames, 1).Error.Code)
	require.Equal(t, "method not found: workspace/unknown", response(t, frames, 1).Error.Message)

	require.Equal(t, codeInvalidParams, response(t, frames, 2).Error.Code)

	shutdown := response(t, frames, 3)
	require.Nil(t, shutdown.Error)
	require.JSONEq(t, "null", string(shutdown.Result))

	require.Equal(t, codeInvalidRequest, response(t, frames, 4).Error.Code)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := NewServer().Run(ctx, strings.NewReader(frame(t, 1, "initialize", map[string]any{})), &out)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, out.Len())
}

func TestReadMessageErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		err   string
	}{
		{"missing length", "X-Other: 1\r\n\r\n{}", "missing Content-Length header"},
		{"bad length", "Content-Length: abc\r\n\r\n", `invalid Content-Length "abc"`},
		{"short body", "Content-Length: 10\r\n\r\n{}", "read message body"},
		{"truncated header", "Content-Length: 2", "read header"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := readMessage(bufio.NewReader(strings.NewReader(tt.input)))
			require.ErrorContains(t, err, tt.err)
		})
	}
}

func TestPositionConversion(t *testing.T) {
	t.Parallel()

	content := "ab\ncde\n\nf"

	tests := []struct {
		pos    Position
		offset int
	}{
		{Position{0, 0}, 0},
		{Position{0, 2}, 2},
		{Position{1, 0}, 3},
		{Position{1, 3}, 6},
		{Position{2, 0}, 7},
		{Position{3, 1}, 9},
	}
	for _, tt := range tests {
		require.Equal(t, tt.offset, positionToOffset(content, tt.pos), "%+v", tt.pos)
		require.Equal(t, tt.pos, offsetToPosition(content, tt.offset), "offset %d", tt.offset)
	}

	// Characters past the end of a line clamp to the line end.
	require.Equal(t, 2, positionToOffset(content, Position{0, 40}))
	require.Equal(t, len(content), positionToOffset(content, Position{9, 0}))
	require.Equal(t, Position{3, 1}, offsetToPosition(content, 100))
}

func TestPositionsCountUTF16Units(t *testing.T) {
	t.Parallel()

	// é is two bytes and one unit, 😀 is four bytes and two units.
	content := "let s = \"é😀\";\nx"

	tests := []struct {
		pos    Position
		offset int
	}{
		{Position{Line: 0, Character: 9}, 9},
		{Position{Line: 0, Character: 10}, 11},
		{Position{Line: 0, Character: 12}, 15},
		{Position{Line: 0, Character: 14}, 17},
		{Position{Line: 1, Character: 0}, 18},
	}
	for _, tt := range tests {
		require.Equal(t, tt.offset, positionToOffset(content, tt.pos), "%+v", tt.pos)
		require.Equal(t, tt.pos, offsetToPosition(content, tt.offset), "offset %d", tt.offset)
	}
}

func TestHoverAfterNonASCIIText(t *testing.T) {
	t.Parallel()

	src := "fn main() { let s = \"é😀\"; g(); }\nfn g() {}\n"
	frames := run(t, NewServer(),
		frame(t, 0, "textDocument/didOpen", openParams(testURI, src)),
		frame(t, 1, "textDocument/hover", posParams(testURI, 0, 27)),
	)

	hover := decode[Hover](t, response(t, frames, 1).Result)
	require.Equal(t, "```contractus\nfn g()\n```", hover.Contents.Value)
	require.Equal(t, &Range{
		Start: Position{Line: 0, Character: 27},
		End:   Position{Line: 0, Character: 28},
	}, hover.Range)
}

func TestURIToPath(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/work/main.ctr", uriToPath("file:///work/main.ctr"))
	require.Equal(t, "C:/src/main.ctr", uriToPath("file:///C:/src/main.ctr"))
	require.Equal(t, "untitled:1", uriToPath("untitled:1"))
}
