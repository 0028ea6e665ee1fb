// Package lsp exposes the linter to editors as a minimal language server:
// full-text document sync plus pushed diagnostics, nothing else.
package lsp

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"os"

	"go.lsp.dev/jsonrpc2"

	"github.com/sensei-lua/lualint/internal/lint"
)

// Server lints open documents and pushes diagnostics to the client.
type Server struct {
	cfg   lint.Config
	store *DocumentStore
	conn  jsonrpc2.Conn
}

// NewServer creates a language server with the given analysis config.
func NewServer(cfg lint.Config) *Server {
	return &Server{
		cfg:   cfg,
		store: NewDocumentStore(),
	}
}

// Serve starts the server on the given reader/writer (normally stdio).
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stream := jsonrpc2.NewStream(&readWriteCloser{in, out})
	s.conn = jsonrpc2.NewConn(stream)

	s.conn.Go(ctx, s.handler)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.conn.Done():
		return s.conn.Err()
	}
}

func (s *Server) handler(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	log.Printf("LSP request: %s", req.Method())

	switch req.Method() {
	case "initialize":
		return s.handleInitialize(ctx, reply, req)
	case "initialized":
		return reply(ctx, nil, nil)
	case "shutdown":
		return reply(ctx, nil, nil)
	case "exit":
		return nil
	case "textDocument/didOpen":
		return s.handleDidOpen(ctx, reply, req)
	case "textDocument/didChange":
		return s.handleDidChange(ctx, reply, req)
	case "textDocument/didSave":
		return s.handleDidSave(ctx, reply, req)
	case "textDocument/didClose":
		return s.handleDidClose(ctx, reply, req)
	default:
		return reply(ctx, nil, &jsonrpc2.Error{
			Code:    jsonrpc2.MethodNotFound,
			Message: "method not supported: " + req.Method(),
		})
	}
}

func (s *Server) handleInitialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	result := InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: &TextDocumentSyncOptions{
				OpenClose: true,
				Change:    TextDocumentSyncKindFull,
				Save:      true,
			},
		},
		ServerInfo: &ServerInfo{
			Name:    "lualint",
			Version: "0.1.0",
		},
	}
	return reply(ctx, result, nil)
}

func (s *Server) handleDidOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params DidOpenTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, err)
	}

	doc := params.TextDocument
	s.store.Open(doc.URI, doc.Version, doc.Text)
	s.publish(ctx, doc.URI, doc.Text)
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidChange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params DidChangeTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, err)
	}

	if len(params.ContentChanges) > 0 {
		// Full sync mode - the last change carries the whole document
		text := params.ContentChanges[len(params.ContentChanges)-1].Text
		uri := params.TextDocument.URI
		s.store.Update(uri, params.TextDocument.Version, text)
		s.publish(ctx, uri, text)
	}
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidSave(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params DidSaveTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, err)
	}

	uri := params.TextDocument.URI
	text := params.Text
	if text == "" {
		var ok bool
		if text, ok = s.store.Get(uri); !ok {
			content, err := os.ReadFile(uriToPath(uri))
			if err != nil {
				log.Printf("failed to read %s: %v", uriToPath(uri), err)
				return reply(ctx, nil, nil)
			}
			text = string(content)
		}
	}
	s.publish(ctx, uri, text)
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params DidCloseTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, err)
	}

	uri := params.TextDocument.URI
	s.store.Close(uri)
	// Clear any remaining diagnostics for the closed document
	s.notifyDiagnostics(ctx, uri, nil)
	return reply(ctx, nil, nil)
}

// publish analyzes a document and pushes the findings to the client.
func (s *Server) publish(ctx context.Context, uri, text string) {
	ds := lint.Analyze(text, s.cfg)
	s.notifyDiagnostics(ctx, uri, toLSPDiagnostics(ds))
}

func (s *Server) notifyDiagnostics(ctx context.Context, uri string, diagnostics []Diagnostic) {
	if s.conn == nil {
		return
	}
	if diagnostics == nil {
		diagnostics = []Diagnostic{}
	}
	params := PublishDiagnosticsParams{URI: uri, Diagnostics: diagnostics}
	if err := s.conn.Notify(ctx, "textDocument/publishDiagnostics", params); err != nil {
		log.Printf("failed to publish diagnostics for %s: %v", uri, err)
	}
}

// readWriteCloser wraps reader and writer into a ReadWriteCloser
type readWriteCloser struct {
	io.Reader
	io.Writer
}

func (rwc *readWriteCloser) Close() error {
	return nil
}
