package cst

import (
	"sync/atomic"

	"github.com/dhamidi/tsc/syntax"
)

// Tree is an immutable tree over a synthesized source text.
type Tree struct {
	root   *Node
	lang   *Language
	source string
	closed atomic.Int32
}

func NewTree(root *Node, lang *Language, source string) *Tree {
	return &Tree{root: root, lang: lang, source: source}
}

func (t *Tree) Root() *Node { return t.root }

// Source returns the text the tree's byte offsets index into.
func (t *Tree) Source() string { return t.source }

func (t *Tree) RootNode() syntax.Node { return nodeRef{tree: t, n: t.root} }

func (t *Tree) Walk() syntax.Walker { return newWalker(t, t.root) }

func (t *Tree) Language() syntax.Language { return t.lang }

// Close records that the owner released the tree.
func (t *Tree) Close() { t.closed.Add(1) }

// Closed returns how many times Close was called.
func (t *Tree) Closed() int { return int(t.closed.Load()) }

// NodeOf returns the cst node behind a syntax.Node from this package.
func NodeOf(n syntax.Node) (*Node, bool) {
	r, ok := n.(nodeRef)
	return r.n, ok
}

type nodeRef struct {
	tree *Tree
	n    *Node
}

func (r nodeRef) Kind() string      { return r.n.Kind }
func (r nodeRef) IsNamed() bool     { return r.n.Named }
func (r nodeRef) IsExtra() bool     { return r.n.Extra }
func (r nodeRef) IsError() bool     { return r.n.IsError() }
func (r nodeRef) IsMissing() bool   { return r.n.Missing }
func (r nodeRef) HasError() bool    { return r.n.HasError() }
func (r nodeRef) StartByte() uint32 { return uint32(r.n.Span.Start.Offset) }
func (r nodeRef) EndByte() uint32   { return uint32(r.n.Span.End.Offset) }

func (r nodeRef) StartPoint() syntax.Point { return point(r.n.Span.Start) }
func (r nodeRef) EndPoint() syntax.Point   { return point(r.n.Span.End) }

func (r nodeRef) Walk() syntax.Walker { return newWalker(r.tree, r.n) }

func (r nodeRef) Equal(other syntax.Node) bool {
	o, ok := other.(nodeRef)
	return ok && o.n == r.n
}

type frame struct {
	node  *Node
	index int
}

// walker keeps the path from its start node; it cannot leave that node.
type walker struct {
	tree  *Tree
	stack []frame
}

func newWalker(t *Tree, n *Node) *walker {
	return &walker{tree: t, stack: []frame{{node: n, index: -1}}}
}

func (w *walker) top() *frame { return &w.stack[len(w.stack)-1] }

func (w *walker) Node() syntax.Node { return nodeRef{tree: w.tree, n: w.top().node} }

func (w *walker) FieldID() syntax.FieldID {
	if len(w.stack) == 1 {
		return 0
	}
	return w.top().node.Field
}

func (w *walker) GotoFirstChild() bool {
	n := w.top().node
	if len(n.Children) == 0 {
		return false
	}
	w.stack = append(w.stack, frame{node: n.Children[0], index: 0})
	return true
}

func (w *walker) GotoParent() bool {
	if len(w.stack) == 1 {
		return false
	}
	w.stack = w.stack[:len(w.stack)-1]
	return true
}

func (w *walker) GotoNextSibling() bool {
	if len(w.stack) == 1 {
		return false
	}
	parent := w.stack[len(w.stack)-2].node
	top := w.top()
	i := top.index + 1
	if i >= len(parent.Children) {
		return false
	}
	*top = frame{node: parent.Children[i], index: i}
	return true
}

func (w *walker) GotoFirstChildForByte(offset uint32) (int, bool) {
	for i, c := range w.top().node.Children {
		if uint32(c.Span.End.Offset) > offset {
			w.stack = append(w.stack, frame{node: c, index: i})
			return i, true
		}
	}
	return 0, false
}

func (w *walker) Reset(n syntax.Node) {
	r := n.(nodeRef)
	w.tree = r.tree
	w.stack = append(w.stack[:0], frame{node: r.n, index: -1})
}

func (w *walker) Close() {
	w.stack = nil
}
