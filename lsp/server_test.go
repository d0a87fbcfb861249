package lsp

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const goSource = `package main

func main() {}

type T struct {
	A int
}
`

func newTestServer(t *testing.T, path, content string) *Server {
	t.Helper()
	s := NewServer("test", nil)
	t.Cleanup(s.ws.Close)
	require.NoError(t, s.ws.UpdateFile(context.Background(), path, []byte(content)))
	return s
}

func pos(line, char int) protocol.Position {
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(char)}
}

func rng(l1, c1, l2, c2 int) protocol.Range {
	return protocol.Range{Start: pos(l1, c1), End: pos(l2, c2)}
}

func TestLineIndex(t *testing.T) {
	li := newLineIndex([]byte("a\néx\n\U0001D11Ey"))
	assert.Equal(t, pos(0, 0), li.position(0))
	assert.Equal(t, pos(1, 0), li.position(2))
	assert.Equal(t, pos(1, 1), li.position(4))
	assert.Equal(t, pos(2, 2), li.position(10))
	assert.Equal(t, pos(2, 3), li.position(100))

	assert.Equal(t, uint32(4), li.offset(pos(1, 1)))
	assert.Equal(t, uint32(10), li.offset(pos(2, 2)))
}

func TestDocumentSymbols(t *testing.T) {
	s := newTestServer(t, "main.go", goSource)

	symbols, err := s.documentSymbols("main.go")
	require.NoError(t, err)
	require.Len(t, symbols, 2)

	assert.Equal(t, "main", symbols[0].Name)
	assert.Equal(t, protocol.SymbolKindFunction, symbols[0].Kind)
	assert.Equal(t, rng(2, 0, 2, 14), symbols[0].Range)
	assert.Equal(t, rng(2, 5, 2, 9), symbols[0].SelectionRange)

	assert.Equal(t, "T", symbols[1].Name)
	assert.Equal(t, protocol.SymbolKindClass, symbols[1].Kind)
	require.Len(t, symbols[1].Children, 1)
	assert.Equal(t, "A", symbols[1].Children[0].Name)
	assert.Equal(t, protocol.SymbolKindField, symbols[1].Children[0].Kind)
	assert.Equal(t, rng(5, 1, 5, 6), symbols[1].Children[0].Range)
}

func TestDocumentSymbolsUnknownFile(t *testing.T) {
	s := newTestServer(t, "main.go", goSource)
	symbols, err := s.documentSymbols("other.go")
	require.NoError(t, err)
	assert.Nil(t, symbols)
}

func TestSelectionRanges(t *testing.T) {
	s := newTestServer(t, "main.go", goSource)

	ranges, err := s.selectionRanges("main.go", []protocol.Position{pos(2, 6)})
	require.NoError(t, err)
	require.Len(t, ranges, 1)

	sel := ranges[0]
	assert.Equal(t, rng(2, 5, 2, 9), sel.Range)
	require.NotNil(t, sel.Parent)
	assert.Equal(t, rng(2, 0, 2, 14), sel.Parent.Range)
	require.NotNil(t, sel.Parent.Parent)
	assert.Equal(t, pos(0, 0), sel.Parent.Parent.Range.Start)
	assert.Nil(t, sel.Parent.Parent.Parent)
}

func TestSelectionRangesSexp(t *testing.T) {
	s := newTestServer(t, "t.sexp", `(call function: (identifier "f") arguments: (args (number "1") (number "2")))`)

	// source: "f 1 2"
	ranges, err := s.selectionRanges("t.sexp", []protocol.Position{pos(0, 4)})
	require.NoError(t, err)
	require.Len(t, ranges, 1)

	var got []protocol.Range
	for sel := &ranges[0]; sel != nil; sel = sel.Parent {
		got = append(got, sel.Range)
	}
	assert.Equal(t, []protocol.Range{rng(0, 4, 0, 5), rng(0, 2, 0, 5), rng(0, 0, 0, 5)}, got)
}

func TestHover(t *testing.T) {
	s := newTestServer(t, "main.go", goSource)

	h, err := s.hover("main.go", pos(2, 6))
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, rng(2, 5, 2, 9), *h.Range)

	content, ok := h.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Equal(t, protocol.MarkupKindMarkdown, content.Kind)
	assert.True(t, strings.HasPrefix(content.Value, "**identifier** (field `name`)"), content.Value)
	assert.Contains(t, content.Value, "source_file > function_declaration > identifier")
	assert.Contains(t, content.Value, "```\nmain\n```")
}

func TestDidOpenAndClose(t *testing.T) {
	s := NewServer("test", nil)
	defer s.ws.Close()

	err := s.textDocumentDidOpen(nil, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: "file:///tmp/x/main.go", Text: goSource},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/tmp/x/main.go"}, s.ws.Paths())

	err = s.textDocumentDidChange(nil, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: "file:///tmp/x/main.go"},
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "package x\n"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "package x\n", string(s.ws.GetFile("/tmp/x/main.go").Content))

	err = s.textDocumentDidClose(nil, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///tmp/x/main.go"},
	})
	require.NoError(t, err)
	assert.Empty(t, s.ws.Paths())
}

func TestURIToPath(t *testing.T) {
	p, err := uriToPath("file:///home/u/a%20b.go")
	require.NoError(t, err)
	assert.Equal(t, "/home/u/a b.go", p)

	p, err = uriToPath("relative.go")
	require.NoError(t, err)
	assert.Equal(t, "relative.go", p)
}
