package cursor

import "iter"

type state int

const (
	stateStart state = iota
	stateDown
	stateRight
	stateDone
)

var stateNames = map[state]string{
	stateStart: "start",
	stateDown:  "down",
	stateRight: "right",
	stateDone:  "done",
}

func (s state) String() string {
	return stateNames[s]
}

// Iterator visits the nodes under its start node in depth-first pre-order.
// Depth is relative to the start node, which has depth 0.
//
//	for it.Next() {
//		vals, err := it.Current(props, vals)
//		...
//	}
//	if err := it.Err(); err != nil { ... }
type Iterator struct {
	cursor *Cursor
	state  state
	depth  int
	err    error
}

// NewIterator starts a traversal at the root of a tree or at a node.
func NewIterator(src TreeOrNode) (*Iterator, error) {
	c, err := Make(src)
	if err != nil {
		return nil, err
	}
	return &Iterator{cursor: c}, nil
}

// Next advances to the next node in pre-order. It returns false once the
// traversal is exhausted, closed, or a move failed; see Err.
func (it *Iterator) Next() bool {
	for {
		switch it.state {
		case stateStart:
			it.state = stateDown
			return true

		case stateDown:
			ok, err := it.cursor.GotoFirstChild()
			if err != nil {
				return it.fail(err)
			}
			if ok {
				it.depth++
				return true
			}
			it.state = stateRight

		case stateRight:
			ok, err := it.cursor.GotoNextSibling()
			if err != nil {
				return it.fail(err)
			}
			if ok {
				it.state = stateDown
				return true
			}
			ok, err = it.cursor.GotoParent()
			if err != nil {
				return it.fail(err)
			}
			if !ok {
				it.state = stateDone
				return false
			}
			it.depth--

		default:
			return false
		}
	}
}

func (it *Iterator) fail(err error) bool {
	it.err = &Error{Op: "iter-next", Err: err}
	it.state = stateDone
	return false
}

// Err returns the error that ended the traversal, if any.
func (it *Iterator) Err() error {
	return it.err
}

// Depth returns the depth of the current node.
func (it *Iterator) Depth() int {
	return it.depth
}

// Node returns the current node.
func (it *Iterator) Node() (*Node, error) {
	return it.cursor.CurrentNode()
}

// Current projects the current node. Depth properties are filled from the
// traversal.
func (it *Iterator) Current(props []Prop, out []any) ([]any, error) {
	out, err := it.cursor.Project(props, out)
	if err != nil {
		return nil, err
	}
	for i, p := range props {
		if p == PropDepth {
			out[i] = it.depth
		}
	}
	return out, nil
}

// NextNode advances and projects the node it lands on. ok is false when the
// traversal is over.
func (it *Iterator) NextNode(props []Prop, out []any) (values []any, ok bool, err error) {
	if !it.Next() {
		return nil, false, it.err
	}
	values, err = it.Current(props, out)
	if err != nil {
		return nil, false, err
	}
	return values, true, nil
}

// All yields every remaining node with its depth. Iteration stops early if a
// node cannot be read; the error is then reported by Err.
func (it *Iterator) All() iter.Seq2[*Node, int] {
	return func(yield func(*Node, int) bool) {
		for it.Next() {
			n, err := it.Node()
			if err != nil {
				it.err = err
				it.state = stateDone
				return
			}
			if !yield(n, it.depth) {
				return
			}
		}
	}
}

// Close ends the traversal and releases the iterator's cursor.
func (it *Iterator) Close() {
	it.state = stateDone
	it.cursor.Close()
}
