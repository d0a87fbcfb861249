// Package shared provides reference-counted ownership of immutable syntax
// trees with runtime-checked, non-blocking borrows.
package shared

import (
	"errors"
	"sync/atomic"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/tsc/syntax"
)

var (
	// ErrBorrowConflict is returned when a borrow would overlap an
	// incompatible outstanding borrow.
	ErrBorrowConflict = errors.New("tree is already borrowed")
	// ErrClosed is returned when borrowing through a released handle.
	ErrClosed = errors.New("tree handle released")
)

var log = commonlog.GetLogger("tsc.shared")

// exclusive marks an outstanding mutable borrow in cell.borrow.
const exclusive = -1

type cell struct {
	tree   syntax.Tree
	refs   atomic.Int64
	borrow atomic.Int32 // >0 shared borrows, exclusive for a mutable borrow
}

// Handle is one owning share of a tree. The tree is closed when the last
// share is released.
type Handle struct {
	c        *cell
	released atomic.Bool
}

// New takes ownership of t and returns its first share.
func New(t syntax.Tree) *Handle {
	c := &cell{tree: t}
	c.refs.Store(1)
	return &Handle{c: c}
}

// Clone returns a new share of the same tree.
func (h *Handle) Clone() *Handle {
	if h.released.Load() {
		nh := &Handle{c: h.c}
		nh.released.Store(true)
		return nh
	}
	h.c.refs.Add(1)
	return &Handle{c: h.c}
}

// Release drops this share. Releasing twice is a no-op.
func (h *Handle) Release() {
	if h == nil || !h.released.CompareAndSwap(false, true) {
		return
	}
	if h.c.refs.Add(-1) == 0 {
		log.Debug("closing tree")
		h.c.tree.Close()
	}
}

// Refs returns the number of live shares of the tree.
func (h *Handle) Refs() int {
	return int(h.c.refs.Load())
}

// Released reports whether this share has been released.
func (h *Handle) Released() bool {
	return h.released.Load()
}

// Same reports whether both handles share one tree.
func (h *Handle) Same(other *Handle) bool {
	return h != nil && other != nil && h.c == other.c
}

// Borrow takes a shared borrow of the tree.
func (h *Handle) Borrow() (*Ref, error) {
	if h.released.Load() {
		return nil, ErrClosed
	}
	for {
		n := h.c.borrow.Load()
		if n == exclusive {
			return nil, ErrBorrowConflict
		}
		if h.c.borrow.CompareAndSwap(n, n+1) {
			return &Ref{c: h.c}, nil
		}
	}
}

// BorrowMut takes an exclusive borrow of the tree.
func (h *Handle) BorrowMut() (*RefMut, error) {
	if h.released.Load() {
		return nil, ErrClosed
	}
	if !h.c.borrow.CompareAndSwap(0, exclusive) {
		return nil, ErrBorrowConflict
	}
	return &RefMut{c: h.c}, nil
}

// Ref is an outstanding shared borrow.
type Ref struct {
	c    *cell
	done bool
}

// Tree returns the borrowed tree. It must not be used after Release.
func (r *Ref) Tree() syntax.Tree { return r.c.tree }

// Release ends the borrow. Releasing twice is a no-op.
func (r *Ref) Release() {
	if r.done {
		return
	}
	r.done = true
	r.c.borrow.Add(-1)
}

// RefMut is an outstanding exclusive borrow.
type RefMut struct {
	c    *cell
	done bool
}

// Tree returns the borrowed tree. It must not be used after Release.
func (r *RefMut) Tree() syntax.Tree { return r.c.tree }

// Release ends the borrow. Releasing twice is a no-op.
func (r *RefMut) Release() {
	if r.done {
		return
	}
	r.done = true
	r.c.borrow.Store(0)
}
