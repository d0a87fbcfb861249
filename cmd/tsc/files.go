package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dhamidi/tsc/cursor"
	"github.com/dhamidi/tsc/workspace"
)

// loadFile reads and parses path. The caller releases f.Tree.
func (a *app) loadFile(ctx context.Context, path string) (*workspace.File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return workspace.Parse(ctx, path, content, a.cfg.Languages)
}

// nodeAt returns the innermost node of f's tree that contains offset.
func nodeAt(f *workspace.File, offset uint32) (*cursor.Node, error) {
	c, err := cursor.Make(cursor.Tree(f.Tree))
	if err != nil {
		return nil, err
	}
	defer c.Close()

	for {
		if _, ok, err := c.GotoFirstChildForByte(offset); err != nil {
			return nil, err
		} else if !ok {
			break
		}
		n, err := c.CurrentNode()
		if err != nil {
			return nil, err
		}
		r, err := n.ByteRange()
		n.Release()
		if err != nil {
			return nil, err
		}
		if r.Start > offset {
			if _, err := c.GotoParent(); err != nil {
				return nil, err
			}
			break
		}
	}
	return c.CurrentNode()
}
