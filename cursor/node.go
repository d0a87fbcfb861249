package cursor

import (
	"fmt"
	"runtime"

	"github.com/dhamidi/tsc/shared"
	"github.com/dhamidi/tsc/syntax"
)

// Node describes one position in a tree. It holds its own share of the
// tree until Release is called or the Node is garbage collected.
type Node struct {
	tree     *shared.Handle
	node     syntax.Node
	cleanup  runtime.Cleanup
	released bool
}

func newNode(tree *shared.Handle, n syntax.Node) *Node {
	nd := &Node{tree: tree.Clone(), node: n}
	nd.cleanup = runtime.AddCleanup(nd, (*shared.Handle).Release, nd.tree)
	return nd
}

func (n *Node) source() (*shared.Handle, syntax.Node) {
	if n == nil || n.released {
		return nil, nil
	}
	return n.tree, n.node
}

// Tree returns a new share of the node's tree. The caller releases it.
func (n *Node) Tree() *shared.Handle {
	return n.tree.Clone()
}

// read borrows the node's tree. It fails once the node is released.
func (n *Node) read(op string) (*shared.Ref, error) {
	if n == nil || n.released {
		return nil, &Error{Op: op, Err: shared.ErrClosed}
	}
	ref, err := n.tree.Borrow()
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	return ref, nil
}

// Equal reports whether both describe the same node of the same tree.
// Released nodes are only equal to themselves.
func (n *Node) Equal(other *Node) bool {
	if n == other {
		return true
	}
	if n == nil || other == nil || !n.tree.Same(other.tree) {
		return false
	}
	ref, err := n.read("equal")
	if err != nil {
		return false
	}
	defer ref.Release()
	defer runtime.KeepAlive(n)
	defer runtime.KeepAlive(other)
	if other.released {
		return false
	}
	return n.node.Equal(other.node)
}

// Project writes the requested properties into out, allocating it when out
// is nil. A standalone node does not know its parent, so its field is nil.
func (n *Node) Project(props []Prop, out []any) ([]any, error) {
	out, err := prepare(props, out)
	if err != nil {
		return nil, err
	}
	ref, err := n.read("project")
	if err != nil {
		return nil, err
	}
	defer ref.Release()
	defer runtime.KeepAlive(n)
	project(n.node, props, out, func() any { return nil })
	return out, nil
}

// Kind returns the node's type.
func (n *Node) Kind() (string, error) {
	ref, err := n.read("kind")
	if err != nil {
		return "", err
	}
	defer ref.Release()
	defer runtime.KeepAlive(n)
	return n.node.Kind(), nil
}

// ByteRange returns the node's byte span.
func (n *Node) ByteRange() (syntax.ByteRange, error) {
	ref, err := n.read("byte-range")
	if err != nil {
		return syntax.ByteRange{}, err
	}
	defer ref.Release()
	defer runtime.KeepAlive(n)
	return syntax.ByteRange{Start: n.node.StartByte(), End: n.node.EndByte()}, nil
}

// Range returns the node's row/column span.
func (n *Node) Range() (syntax.PointRange, error) {
	ref, err := n.read("row-column-range")
	if err != nil {
		return syntax.PointRange{}, err
	}
	defer ref.Release()
	defer runtime.KeepAlive(n)
	return syntax.PointRange{Start: n.node.StartPoint(), End: n.node.EndPoint()}, nil
}

func (n *Node) String() string {
	kind, err := n.Kind()
	if err != nil {
		return "(released)"
	}
	r, _ := n.ByteRange()
	return fmt.Sprintf("(%s %s)", kind, r)
}

// Release drops the node's share of the tree. Reading a released node
// fails with shared.ErrClosed.
func (n *Node) Release() {
	if n.released {
		return
	}
	n.released = true
	n.cleanup.Stop()
	n.tree.Release()
}
