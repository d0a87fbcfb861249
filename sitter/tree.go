package sitter

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/dhamidi/tsc/syntax"
)

type tree struct {
	t    *ts.Tree
	lang *Language
}

func (t *tree) RootNode() syntax.Node     { return node{n: *t.t.RootNode()} }
func (t *tree) Walk() syntax.Walker       { return &walker{c: t.t.Walk()} }
func (t *tree) Language() syntax.Language { return t.lang }
func (t *tree) Close()                    { t.t.Close() }

type node struct {
	n ts.Node
}

func (n node) Kind() string      { return n.n.Kind() }
func (n node) IsNamed() bool     { return n.n.IsNamed() }
func (n node) IsExtra() bool     { return n.n.IsExtra() }
func (n node) IsError() bool     { return n.n.IsError() }
func (n node) IsMissing() bool   { return n.n.IsMissing() }
func (n node) HasError() bool    { return n.n.HasError() }
func (n node) StartByte() uint32 { return uint32(n.n.StartByte()) }
func (n node) EndByte() uint32   { return uint32(n.n.EndByte()) }

func (n node) StartPoint() syntax.Point { return point(n.n.StartPosition()) }
func (n node) EndPoint() syntax.Point   { return point(n.n.EndPosition()) }

func (n node) Walk() syntax.Walker { return &walker{c: n.n.Walk()} }

func (n node) Equal(other syntax.Node) bool {
	o, ok := other.(node)
	return ok && n.n.Equals(o.n)
}

func point(p ts.Point) syntax.Point {
	return syntax.Point{Row: uint32(p.Row), Column: uint32(p.Column)}
}

type walker struct {
	c *ts.TreeCursor
}

func (w *walker) Node() syntax.Node       { return node{n: *w.c.Node()} }
func (w *walker) FieldID() syntax.FieldID { return syntax.FieldID(w.c.FieldId()) }
func (w *walker) GotoFirstChild() bool    { return w.c.GotoFirstChild() }
func (w *walker) GotoParent() bool        { return w.c.GotoParent() }
func (w *walker) GotoNextSibling() bool   { return w.c.GotoNextSibling() }

func (w *walker) GotoFirstChildForByte(offset uint32) (int, bool) {
	i := w.c.GotoFirstChildForByte(offset)
	if i == nil {
		return 0, false
	}
	return int(*i), true
}

func (w *walker) Reset(n syntax.Node) {
	w.c.Reset(n.(node).n)
}

func (w *walker) Close() {
	w.c.Close()
}
