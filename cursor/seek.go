package cursor

import "errors"

// Seek calls fn for src's start node and then for each descendant on the
// path to the innermost node containing offset, outermost first. Depth
// properties are filled as in Traverse. ErrStop ends the descent early.
func Seek(src TreeOrNode, offset uint32, props []Prop, fn func(values []any) error) error {
	c, err := Make(src)
	if err != nil {
		return err
	}
	defer c.Close()

	// The start byte decides whether a child really contains offset, so it
	// is always projected, after the caller's properties.
	all := append(append(make([]Prop, 0, len(props)+1), props...), PropStartByte)
	values := make([]any, len(all))
	depth := 0
	for {
		if _, err := c.Project(all, values); err != nil {
			return err
		}
		if depth > 0 && values[len(props)].(uint32) > offset {
			return nil
		}
		for i, p := range props {
			if p == PropDepth {
				values[i] = depth
			}
		}
		if err := fn(values[:len(props)]); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
		_, ok, err := c.GotoFirstChildForByte(offset)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		depth++
	}
}
