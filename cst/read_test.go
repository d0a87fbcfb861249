package cst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/tsc/syntax"
)

const goLike = `(source_file
  (function_declaration "func" name: (identifier "main")
    parameters: (parameter_list "(" ")")
    body: (block "{" (return_statement "return") "}")))`

func TestReadLayout(t *testing.T) {
	tree, err := Read(goLike, nil)
	require.NoError(t, err)
	assert.Equal(t, "func main ( ) { return }", tree.Source())

	fn := tree.Root().Children[0]
	require.Len(t, fn.Children, 4)
	name := fn.Children[1]
	assert.Equal(t, "identifier", name.Kind)
	assert.Equal(t, "main", name.Text)
	assert.True(t, name.Named)
	assert.True(t, name.IsTerminal())
	assert.Equal(t, 5, name.Span.Start.Offset)
	assert.Equal(t, 9, name.Span.End.Offset)

	lang := tree.Language().(*Language)
	id, ok := lang.FieldID("name")
	require.True(t, ok)
	assert.Equal(t, id, name.Field)
	assert.Equal(t, "body", lang.FieldNameForID(fn.Children[3].Field))
	assert.Equal(t, 3, lang.FieldCount())

	body := fn.Children[3]
	assert.Equal(t, 14, body.Span.Start.Offset)
	assert.Equal(t, 24, body.Span.End.Offset)
	assert.Equal(t, 0, fn.Span.Start.Offset)
	assert.Equal(t, 24, tree.Root().Span.End.Offset)
}

func TestReadRoundTrip(t *testing.T) {
	tests := []string{
		`(source_file (function_declaration "func" name: (identifier "main") parameters: (parameter_list "(" ")") body: (block "{" (return_statement "return") "}")))`,
		`(program (ERROR "?") (expr (MISSING ";")))`,
		`(program (MISSING identifier))`,
		`(program (string "say \"hi\"\n"))`,
		`(empty)`,
		`(x "")`,
		`(call (args "(" "" ")"))`,
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			tree, err := Read(src, nil)
			require.NoError(t, err)
			assert.Equal(t, src, tree.String())
		})
	}
}

func TestReadEmptyAnonymousToken(t *testing.T) {
	tree, err := Read(`(x "")`, nil)
	require.NoError(t, err)

	root := tree.Root()
	assert.Empty(t, root.Text)
	require.Len(t, root.Children, 1)
	assert.False(t, root.Children[0].Named)
	assert.Empty(t, root.Children[0].Kind)
	assert.Equal(t, `(x "")`, tree.String())
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"only comment", "; nothing here"},
		{"unclosed", "(a (b)"},
		{"trailing", "(a) (b)"},
		{"no kind", `("x")`},
		{"field without node", "(a name:)"},
		{"bad char", "(a #)"},
		{"missing without kind", "(MISSING)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(tt.src, nil)
			assert.ErrorIs(t, err, ErrSyntax)
		})
	}
}

func TestErrorsAndMissing(t *testing.T) {
	tree, err := Read(`(program (ERROR "?") (expr "x" (MISSING ";")) (ok "y"))`, nil)
	require.NoError(t, err)
	assert.Equal(t, "? x y", tree.Source())

	root := tree.Root()
	assert.True(t, root.HasError())
	errNode := root.Children[0]
	assert.True(t, errNode.IsError())
	assert.Equal(t, "?", errNode.Text)

	expr := root.Children[1]
	assert.False(t, expr.IsError())
	assert.True(t, expr.HasError())
	missing := expr.Children[1]
	assert.True(t, missing.Missing)
	assert.False(t, missing.Named)
	assert.Equal(t, missing.Span.Start, missing.Span.End)
	assert.Equal(t, 3, missing.Span.Start.Offset)

	assert.False(t, root.Children[2].HasError())
}

func TestExtrasAndComments(t *testing.T) {
	lang := NewLanguage("toy", []string{"value"}, []string{"comment"})
	tree, err := Read(`
; a comment in the notation itself
(program
  (comment "# note")
  (pair key: (name "a") value: (name "b")))`, lang)
	require.NoError(t, err)

	root := tree.Root()
	assert.True(t, root.Children[0].Extra)
	assert.False(t, root.Children[1].Extra)

	id, _ := lang.FieldID("value")
	assert.Equal(t, syntax.FieldID(1), id, "declared fields keep their ids")
	key, ok := lang.FieldID("key")
	assert.True(t, ok)
	assert.Equal(t, syntax.FieldID(2), key)
}

func TestPoints(t *testing.T) {
	tree, err := Read(`(doc (line "a\nb") (line "c"))`, nil)
	require.NoError(t, err)
	assert.Equal(t, "a\nb c", tree.Source())

	second := tree.RootNode().Walk()
	require.True(t, second.GotoFirstChild())
	require.True(t, second.GotoNextSibling())
	n := second.Node()
	assert.Equal(t, uint32(4), n.StartByte())
	assert.Equal(t, syntax.Point{Row: 1, Column: 2}, n.StartPoint())
	assert.Equal(t, syntax.Point{Row: 1, Column: 3}, n.EndPoint())
}
