// Package lsp implements a language server for Contractus sources. Every
// change re-runs the front end over the whole document and publishes the
// resulting diagnostics.
package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/haiman1024/Contractus/internal/ast"
	"github.com/haiman1024/Contractus/internal/diag"
	"github.com/haiman1024/Contractus/internal/frontend"
)

// JSON-RPC error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

// Server represents the LSP server.
type Server struct {
	mu        sync.RWMutex
	documents map[string]*Document

	log      *slog.Logger
	frontend []frontend.Option
	version  string

	outMu sync.Mutex
	out   io.Writer

	rootPath string
	shutdown bool
}

// Document is an open text document.
type Document struct {
	URI         string
	Content     string
	Version     int
	Diagnostics []diag.Diagnostic

	// Program is the last tree that parsed without errors and source the
	// text it was parsed from. Both lag behind Content while it has errors.
	Program *ast.Program
	source  string
}

type Option func(*Server)

// WithLogger sets the logger for protocol and parse events.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// WithFrontendOptions applies opts to every document parse.
func WithFrontendOptions(opts ...frontend.Option) Option {
	return func(s *Server) {
		s.frontend = append(s.frontend, opts...)
	}
}

// WithVersion sets the version reported in the initialize response.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// NewServer creates a new LSP server.
func NewServer(opts ...Option) *Server {
	s := &Server{
		documents: make(map[string]*Document),
		log:       slog.New(slog.DiscardHandler),
		version:   "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Document returns a snapshot of the open document with the given URI.
func (s *Server) Document(uri string) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[uri]
	if !ok {
		return Document{}, false
	}
	return *doc, true
}

// Run serves requests read from r and writes responses and notifications to
// w until the client sends `exit`, r is exhausted or ctx is cancelled.
func (s *Server) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	s.out = w
	reader := bufio.NewReader(r)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		body, err := readMessage(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		var msg jsonrpcMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			s.log.Warn("malformed message", "err", err)
			if err := s.send(errorResponse(nil, codeParseError, err.Error())); err != nil {
				return err
			}
			continue
		}

		if msg.Method == "exit" {
			return nil
		}

		if resp := s.handleMessage(ctx, &msg); resp != nil {
			if err := s.send(resp); err != nil {
				return err
			}
		}
	}
}

// readMessage reads one Content-Length framed message body.
func readMessage(r *bufio.Reader) ([]byte, error) {
	length := -1
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) && line == "" && length < 0 {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("read header: %w", err)
		}

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			continue
		}
		length, err = strconv.Atoi(strings.TrimSpace(value))
		if err != nil || length < 0 {
			return nil, fmt.Errorf("invalid Content-Length %q", strings.TrimSpace(value))
		}
	}

	if length < 0 {
		return nil, errors.New("missing Content-Length header")
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("read message body: %w", err)
	}
	return body, nil
}

// jsonrpcMessage represents an incoming JSON-RPC 2.0 request or notification.
type jsonrpcMessage struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type jsonrpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *jsonrpcError   `json:"error,omitempty"`
}

type jsonrpcNotification struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

type jsonrpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func result(id json.RawMessage, v any) *jsonrpcResponse {
	data, err := json.Marshal(v)
	if err != nil {
		return errorResponse(id, codeParseError, err.Error())
	}
	return &jsonrpcResponse{JSONRPC: "2.0", ID: id, Result: data}
}

func errorResponse(id json.RawMessage, code int, msg string) *jsonrpcResponse {
	if id == nil {
		id = json.RawMessage("null")
	}
	return &jsonrpcResponse{JSONRPC: "2.0", ID: id, Error: &jsonrpcError{Code: code, Message: msg}}
}

func invalidParams(id json.RawMessage, err error) *jsonrpcResponse {
	return errorResponse(id, codeInvalidParams, fmt.Sprintf("invalid params: %v", err))
}

// handleMessage processes a JSON-RPC message and returns a response.
func (s *Server) handleMessage(ctx context.Context, msg *jsonrpcMessage) *jsonrpcResponse {
	s.log.DebugContext(ctx, "request", "method", msg.Method)

	if s.shutdown && msg.ID != nil {
		return errorResponse(msg.ID, codeInvalidRequest, "server is shutting down")
	}

	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return nil
	case "textDocument/didOpen":
		s.handleDidOpen(msg)
		return nil
	case "textDocument/didChange":
		s.handleDidChange(msg)
		return nil
	case "textDocument/didClose":
		s.handleDidClose(msg)
		return nil
	case "textDocument/completion":
		return s.handleCompletion(msg)
	case "textDocument/hover":
		return s.handleHover(msg)
	case "textDocument/definition":
		return s.handleDefinition(msg)
	case "textDocument/documentSymbol":
		return s.handleDocumentSymbol(msg)
	case "shutdown":
		s.shutdown = true
		return result(msg.ID, nil)
	}

	if msg.ID == nil {
		return nil
	}
	return errorResponse(msg.ID, codeMethodNotFound, "method not found: "+msg.Method)
}

// send writes one framed message.
func (s *Server) send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	s.outMu.Lock()
	defer s.outMu.Unlock()

	if _, err := fmt.Fprintf(s.out, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := s.out.Write(data); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	return nil
}

// InitializeParams represents the initialize request parameters.
type InitializeParams struct {
	ProcessID int    `json:"processId,omitempty"`
	RootPath  string `json:"rootPath,omitempty"`
	RootURI   string `json:"rootUri,omitempty"`
}

// InitializeResult represents the initialize response.
type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   ServerInfo         `json:"serverInfo"`
}

type ServerCapabilities struct {
	PositionEncoding       string             `json:"positionEncoding"`
	TextDocumentSync       int                `json:"textDocumentSync"`
	CompletionProvider     *CompletionOptions `json:"completionProvider,omitempty"`
	HoverProvider          bool               `json:"hoverProvider"`
	DefinitionProvider     bool               `json:"definitionProvider"`
	DocumentSymbolProvider bool               `json:"documentSymbolProvider"`
}

type CompletionOptions struct {
	TriggerCharacters []string `json:"triggerCharacters,omitempty"`
}

type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// textDocumentSyncFull asks clients to send the whole document on change.
const textDocumentSyncFull = 1

func (s *Server) handleInitialize(msg *jsonrpcMessage) *jsonrpcResponse {
	var params InitializeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return invalidParams(msg.ID, err)
	}

	if params.RootURI != "" {
		s.rootPath = uriToPath(params.RootURI)
	} else if params.RootPath != "" {
		s.rootPath = params.RootPath
	}
	s.log.Info("initialize", "root", s.rootPath, "client_pid", params.ProcessID)

	return result(msg.ID, InitializeResult{
		Capabilities: ServerCapabilities{
			PositionEncoding:       "utf-16",
			TextDocumentSync:       textDocumentSyncFull,
			CompletionProvider:     &CompletionOptions{TriggerCharacters: []string{":"}},
			HoverProvider:          true,
			DefinitionProvider:     true,
			DocumentSymbolProvider: true,
		},
		ServerInfo: ServerInfo{
			Name:    "contractus-lsp",
			Version: s.version,
		},
	})
}

// DidOpenTextDocumentParams represents didOpen notification parameters.
type DidOpenTextDocumentParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

type TextDocumentItem struct {
	URI        string `json:"uri"`
	LanguageID string `json:"languageId"`
	Version    int    `json:"version"`
	Text       string `json:"text"`
}

func (s *Server) handleDidOpen(msg *jsonrpcMessage) {
	var params DidOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.log.Warn("bad didOpen params", "err", err)
		return
	}

	doc := &Document{
		URI:     params.TextDocument.URI,
		Content: params.TextDocument.Text,
		Version: params.TextDocument.Version,
	}

	s.mu.Lock()
	s.update(doc)
	s.documents[doc.URI] = doc
	s.mu.Unlock()

	s.publishDiagnostics(doc.URI, doc.Content, doc.Diagnostics)
}

// DidChangeTextDocumentParams represents didChange notification parameters.
type DidChangeTextDocumentParams struct {
	TextDocument   VersionedTextDocumentIdentifier  `json:"textDocument"`
	ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
}

type VersionedTextDocumentIdentifier struct {
	URI     string `json:"uri"`
	Version int    `json:"version"`
}

type TextDocumentContentChangeEvent struct {
	Text string `json:"text"`
}

func (s *Server) handleDidChange(msg *jsonrpcMessage) {
	var params DidChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.log.Warn("bad didChange params", "err", err)
		return
	}
	if len(params.ContentChanges) == 0 {
		return
	}

	s.mu.Lock()
	doc, ok := s.documents[params.TextDocument.URI]
	if !ok {
		s.mu.Unlock()
		return
	}
	// Full sync: the last change carries the whole text.
	doc.Content = params.ContentChanges[len(params.ContentChanges)-1].Text
	doc.Version = params.TextDocument.Version
	s.update(doc)
	content, diags := doc.Content, doc.Diagnostics
	s.mu.Unlock()

	s.publishDiagnostics(doc.URI, content, diags)
}

func (s *Server) handleDidClose(msg *jsonrpcMessage) {
	var params struct {
		TextDocument TextDocumentIdentifier `json:"textDocument"`
	}
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.log.Warn("bad didClose params", "err", err)
		return
	}

	s.mu.Lock()
	delete(s.documents, params.TextDocument.URI)
	s.mu.Unlock()

	s.publishDiagnostics(params.TextDocument.URI, "", nil)
}

type TextDocumentIdentifier struct {
	URI string `json:"uri"`
}

// TextDocumentPositionParams represents a position in a text document.
type TextDocumentPositionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

// update re-parses doc. Callers hold s.mu.
func (s *Server) update(doc *Document) {
	opts := append([]frontend.Option{frontend.WithFilename(uriToPath(doc.URI))}, s.frontend...)
	program, diags := frontend.Parse(doc.Content, opts...)

	doc.Diagnostics = diags
	if program != nil {
		doc.Program = program
		doc.source = doc.Content
	}

	s.log.Debug("parsed document", "uri", doc.URI, "version", doc.Version, "diagnostics", len(diags))
}

// PublishDiagnosticsParams is the payload of textDocument/publishDiagnostics.
type PublishDiagnosticsParams struct {
	URI         string       `json:"uri"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Diagnostic represents an LSP diagnostic.
type Diagnostic struct {
	Range    Range  `json:"range"`
	Severity int    `json:"severity"`
	Code     string `json:"code,omitempty"`
	Source   string `json:"source"`
	Message  string `json:"message"`
}

type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

func (s *Server) publishDiagnostics(uri, content string, diags []diag.Diagnostic) {
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		msg := d.Message
		if d.Help != "" {
			msg += "\nhelp: " + d.Help
		}
		out = append(out, Diagnostic{
			Range:    rangeOf(content, d.Span.Start, d.Span.End),
			Severity: diagnosticSeverity(d.Severity),
			Code:     string(d.Code),
			Source:   "contractus",
			Message:  msg,
		})
	}

	err := s.send(jsonrpcNotification{
		JSONRPC: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params:  PublishDiagnosticsParams{URI: uri, Diagnostics: out},
	})
	if err != nil {
		s.log.Error("publish diagnostics", "uri", uri, "err", err)
	}
}

func diagnosticSeverity(sev diag.Severity) int {
	switch sev {
	case diag.SeverityWarning:
		return 2
	case diag.SeverityNote:
		return 3
	}
	return 1
}

// uriToPath converts a file:// URI to a file path.
func uriToPath(uri string) string {
	path, ok := strings.CutPrefix(uri, "file://")
	if !ok {
		return uri
	}
	// file:///C:/x on Windows
	if len(path) > 2 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	return path
}
