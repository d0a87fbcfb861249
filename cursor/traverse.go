package cursor

import "errors"

// Traverse calls fn with the projected properties of every node under src
// in depth-first pre-order. values is reused between calls and must not be
// retained. If fn returns ErrStop the traversal ends and Traverse returns
// nil; any other error is returned unchanged.
func Traverse(src TreeOrNode, props []Prop, fn func(values []any) error) error {
	it, err := NewIterator(src)
	if err != nil {
		return err
	}
	defer it.Close()

	values := make([]any, len(props))
	var depthAt []int
	for i, p := range props {
		if p == PropDepth {
			depthAt = append(depthAt, i)
		}
	}

	visited := 0
	for it.Next() {
		if _, err := it.cursor.Project(props, values); err != nil {
			return err
		}
		for _, i := range depthAt {
			values[i] = it.depth
		}
		visited++
		if err := fn(values); err != nil {
			if errors.Is(err, ErrStop) {
				log.Debugf("traversal stopped after %d nodes", visited)
				return nil
			}
			return err
		}
	}
	log.Debugf("traversal visited %d nodes", visited)
	return it.Err()
}

// TraverseNodes is Traverse without projection: fn receives each node. The
// nodes stay valid after the traversal; release them when done.
func TraverseNodes(src TreeOrNode, fn func(n *Node, depth int) error) error {
	it, err := NewIterator(src)
	if err != nil {
		return err
	}
	defer it.Close()

	for n, depth := range it.All() {
		if err := fn(n, depth); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
	return it.Err()
}
