// Package cursor walks shared syntax trees. A Cursor owns a share of its
// tree, so it stays valid however long it is kept, and every operation
// borrows the tree only for its own duration.
package cursor

import (
	"fmt"
	"runtime"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/tsc/shared"
	"github.com/dhamidi/tsc/syntax"
)

var log = commonlog.GetLogger("tsc.cursor")

// TreeOrNode is where a cursor or traversal starts: a whole tree (see Tree)
// or a *Node.
type TreeOrNode interface {
	source() (*shared.Handle, syntax.Node)
}

type treeSource struct {
	h *shared.Handle
}

func (s treeSource) source() (*shared.Handle, syntax.Node) { return s.h, nil }

// Tree starts at the root of the tree behind h.
func Tree(h *shared.Handle) TreeOrNode {
	return treeSource{h: h}
}

// Cursor is a position in a tree that keeps the tree alive. A cleanup
// releases an unclosed cursor once it is unreachable, so every method keeps
// c alive until the walker is no longer in use.
type Cursor struct {
	tree    *shared.Handle
	walker  syntax.Walker
	cleanup runtime.Cleanup
}

type cursorState struct {
	tree   *shared.Handle
	walker syntax.Walker
}

func releaseCursor(s cursorState) {
	log.Debug("releasing unclosed cursor")
	s.walker.Close()
	s.tree.Release()
}

// New creates a cursor over tree. position receives the borrowed tree and
// returns the walker the cursor takes over.
func New(tree *shared.Handle, position func(syntax.Tree) syntax.Walker) (*Cursor, error) {
	if tree == nil || position == nil {
		return nil, &Error{Op: "make-cursor", Err: ErrInvalidArgument}
	}
	ref, err := tree.Borrow()
	if err != nil {
		return nil, &Error{Op: "make-cursor", Err: err}
	}
	w := position(ref.Tree())
	ref.Release()

	c := &Cursor{tree: tree.Clone(), walker: w}
	c.cleanup = runtime.AddCleanup(c, releaseCursor, cursorState{tree: c.tree, walker: w})
	return c, nil
}

// Make creates a cursor at the root of a tree or at a node.
func Make(src TreeOrNode) (*Cursor, error) {
	if src == nil {
		return nil, &Error{Op: "make-cursor", Err: fmt.Errorf("%w: want a tree or a node", ErrInvalidArgument)}
	}
	defer runtime.KeepAlive(src)
	h, n := src.source()
	if h == nil {
		return nil, &Error{Op: "make-cursor", Err: fmt.Errorf("%w: want a tree or a node", ErrInvalidArgument)}
	}
	return New(h, func(t syntax.Tree) syntax.Walker {
		if n == nil {
			return t.Walk()
		}
		return n.Walk()
	})
}

// CloneTree returns a new share of the cursor's tree. The caller releases it.
func (c *Cursor) CloneTree() *shared.Handle {
	return c.tree.Clone()
}

func (c *Cursor) read(op string) (*shared.Ref, error) {
	ref, err := c.tree.Borrow()
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	return ref, nil
}

func (c *Cursor) write(op string) (*shared.RefMut, error) {
	ref, err := c.tree.BorrowMut()
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	return ref, nil
}

// CurrentNode returns the node at the cursor.
func (c *Cursor) CurrentNode() (*Node, error) {
	defer runtime.KeepAlive(c)
	ref, err := c.read("current-node")
	if err != nil {
		return nil, err
	}
	defer ref.Release()
	return newNode(c.tree, c.walker.Node()), nil
}

// CurrentFieldID returns the field id of the current node in its parent,
// or 0.
func (c *Cursor) CurrentFieldID() (syntax.FieldID, error) {
	defer runtime.KeepAlive(c)
	ref, err := c.read("current-field")
	if err != nil {
		return 0, err
	}
	defer ref.Release()
	return c.walker.FieldID(), nil
}

// CurrentField returns the field name of the current node in its parent,
// or "".
func (c *Cursor) CurrentField() (string, error) {
	defer runtime.KeepAlive(c)
	ref, err := c.read("current-field")
	if err != nil {
		return "", err
	}
	defer ref.Release()
	return c.fieldName(ref.Tree()), nil
}

func (c *Cursor) fieldName(t syntax.Tree) string {
	name, _ := syntax.DefaultRegistry.FieldName(t.Language(), c.walker.FieldID())
	return name
}

func (c *Cursor) move(op string, f func(w syntax.Walker) bool) (bool, error) {
	defer runtime.KeepAlive(c)
	ref, err := c.write(op)
	if err != nil {
		return false, err
	}
	defer ref.Release()
	return f(c.walker), nil
}

// GotoFirstChild moves to the first child of the current node.
func (c *Cursor) GotoFirstChild() (bool, error) {
	return c.move("goto-first-child", syntax.Walker.GotoFirstChild)
}

// GotoParent moves to the parent of the current node. It fails at the node
// the cursor was created at.
func (c *Cursor) GotoParent() (bool, error) {
	return c.move("goto-parent", syntax.Walker.GotoParent)
}

// GotoNextSibling moves to the next sibling of the current node.
func (c *Cursor) GotoNextSibling() (bool, error) {
	return c.move("goto-next-sibling", syntax.Walker.GotoNextSibling)
}

// GotoFirstChildForByte moves to the first child that ends after offset
// and returns its index.
func (c *Cursor) GotoFirstChildForByte(offset uint32) (int, bool, error) {
	defer runtime.KeepAlive(c)
	ref, err := c.write("goto-first-child-for-byte")
	if err != nil {
		return 0, false, err
	}
	defer ref.Release()
	i, ok := c.walker.GotoFirstChildForByte(offset)
	return i, ok, nil
}

// Reset moves the cursor to n, which must belong to the cursor's tree.
// Afterwards the cursor cannot move above n.
func (c *Cursor) Reset(n *Node) error {
	defer runtime.KeepAlive(c)
	defer runtime.KeepAlive(n)
	if _, node := n.source(); node == nil {
		return &Error{Op: "reset", Err: fmt.Errorf("%w: nil or released node", ErrInvalidArgument)}
	}
	if !n.tree.Same(c.tree) {
		return &Error{Op: "reset", Err: fmt.Errorf("%w: node belongs to another tree", ErrInvalidArgument)}
	}
	ref, err := c.write("reset")
	if err != nil {
		return err
	}
	defer ref.Release()
	c.walker.Reset(n.node)
	return nil
}

// Project writes the requested properties of the current node into out,
// allocating it when out is nil.
func (c *Cursor) Project(props []Prop, out []any) ([]any, error) {
	defer runtime.KeepAlive(c)
	out, err := prepare(props, out)
	if err != nil {
		return nil, err
	}
	ref, err := c.read("project")
	if err != nil {
		return nil, err
	}
	defer ref.Release()

	t := ref.Tree()
	project(c.walker.Node(), props, out, func() any {
		if name := c.fieldName(t); name != "" {
			return name
		}
		return nil
	})
	return out, nil
}

// Close releases the cursor's walker and its share of the tree.
func (c *Cursor) Close() {
	if c.walker == nil {
		return
	}
	c.cleanup.Stop()
	c.walker.Close()
	c.walker = nil
	c.tree.Release()
}
