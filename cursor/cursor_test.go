package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/tsc/cst"
	"github.com/dhamidi/tsc/shared"
	"github.com/dhamidi/tsc/syntax"
)

const goLike = `(source_file
  (function_declaration "func" name: (identifier "main")
    parameters: (parameter_list "(" ")")
    body: (block "{" (return_statement "return") "}")))`

func readTree(t *testing.T, src string) (*shared.Handle, *cst.Tree) {
	t.Helper()
	tree, err := cst.Read(src, nil)
	require.NoError(t, err)
	return shared.New(tree), tree
}

func TestCursorMoves(t *testing.T) {
	h, _ := readTree(t, goLike)
	defer h.Release()

	c, err := Make(Tree(h))
	require.NoError(t, err)
	defer c.Close()

	ok, err := c.GotoParent()
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = c.GotoFirstChild()
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = c.GotoFirstChild()
	assert.True(t, ok)
	ok, _ = c.GotoNextSibling()
	assert.True(t, ok)

	n, err := c.CurrentNode()
	require.NoError(t, err)
	defer n.Release()
	kind, err := n.Kind()
	require.NoError(t, err)
	assert.Equal(t, "identifier", kind)
	r, err := n.ByteRange()
	require.NoError(t, err)
	assert.Equal(t, syntax.ByteRange{Start: 5, End: 9}, r)

	field, err := c.CurrentField()
	require.NoError(t, err)
	assert.Equal(t, "name", field)
	id, err := c.CurrentFieldID()
	require.NoError(t, err)
	assert.NotZero(t, id)

	ok, _ = c.GotoParent()
	require.True(t, ok)
	field, err = c.CurrentField()
	require.NoError(t, err)
	assert.Empty(t, field)

	i, ok, err := c.GotoFirstChildForByte(15)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, i)
	field, _ = c.CurrentField()
	assert.Equal(t, "body", field)

	_, ok, err = c.GotoFirstChildForByte(100)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMakeInvalidArgument(t *testing.T) {
	_, err := Make(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Make((*Node)(nil))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Make(Tree(nil))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "make-cursor", cerr.Op)
}

func TestCursorOutlivesCreator(t *testing.T) {
	h, tree := readTree(t, goLike)
	c, err := Make(Tree(h))
	require.NoError(t, err)
	assert.Equal(t, 2, h.Refs())

	h.Release()
	assert.Zero(t, tree.Closed())

	ok, err := c.GotoFirstChild()
	require.NoError(t, err)
	assert.True(t, ok)

	extra := c.CloneTree()
	c.Close()
	c.Close()
	assert.Zero(t, tree.Closed())
	extra.Release()
	assert.Equal(t, 1, tree.Closed())

	_, err = c.CurrentNode()
	assert.ErrorIs(t, err, shared.ErrClosed)
}

func TestCursorNodeKeepsTreeAlive(t *testing.T) {
	h, tree := readTree(t, goLike)
	c, err := Make(Tree(h))
	require.NoError(t, err)
	n, err := c.CurrentNode()
	require.NoError(t, err)

	c.Close()
	h.Release()
	assert.Zero(t, tree.Closed())

	vals, err := n.Project([]Prop{PropType}, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{"source_file"}, vals)

	n.Release()
	n.Release()
	assert.Equal(t, 1, tree.Closed())
}

func TestBorrowConflict(t *testing.T) {
	h, _ := readTree(t, goLike)
	defer h.Release()
	c, err := Make(Tree(h))
	require.NoError(t, err)
	defer c.Close()

	m, err := h.BorrowMut()
	require.NoError(t, err)
	_, err = c.CurrentNode()
	assert.ErrorIs(t, err, shared.ErrBorrowConflict)
	_, err = c.GotoFirstChild()
	assert.ErrorIs(t, err, shared.ErrBorrowConflict)
	_, err = Make(Tree(h))
	assert.ErrorIs(t, err, shared.ErrBorrowConflict)
	m.Release()

	r, err := h.Borrow()
	require.NoError(t, err)
	_, err = c.Project([]Prop{PropType}, nil)
	assert.NoError(t, err, "reads share the tree")
	_, err = c.GotoFirstChild()
	assert.ErrorIs(t, err, shared.ErrBorrowConflict)
	r.Release()

	ok, err := c.GotoFirstChild()
	require.NoError(t, err)
	assert.True(t, ok, "a failed move does not change the position")
}

func TestReset(t *testing.T) {
	h, _ := readTree(t, goLike)
	defer h.Release()
	other, _ := readTree(t, `(x "y")`)
	defer other.Release()

	c, err := Make(Tree(h))
	require.NoError(t, err)
	defer c.Close()

	oc, err := Make(Tree(other))
	require.NoError(t, err)
	foreign, err := oc.CurrentNode()
	require.NoError(t, err)
	oc.Close()
	defer foreign.Release()

	err = c.Reset(foreign)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, c.Reset(nil), ErrInvalidArgument)

	c.GotoFirstChild()
	c.GotoFirstChild()
	c.GotoNextSibling()
	c.GotoNextSibling()
	params, err := c.CurrentNode()
	require.NoError(t, err)
	defer params.Release()

	c2, err := Make(Tree(h))
	require.NoError(t, err)
	defer c2.Close()
	require.NoError(t, c2.Reset(params))

	n, err := c2.CurrentNode()
	require.NoError(t, err)
	defer n.Release()
	assert.True(t, n.Equal(params))
	ok, err := c2.GotoParent()
	require.NoError(t, err)
	assert.False(t, ok, "a reset cursor cannot leave its new root")
	field, _ := c2.CurrentField()
	assert.Empty(t, field)
}
