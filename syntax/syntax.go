// Package syntax defines the read-only view of a parsed syntax tree that the
// cursor engine walks. Parser backends (cst, sitter) implement these
// interfaces.
package syntax

import "fmt"

// FieldID names the role a node plays in its parent. Zero means no field.
type FieldID uint16

// Point is a zero-based row and byte column.
type Point struct {
	Row    uint32 `json:"row"`
	Column uint32 `json:"column"`
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Column)
}

// ByteRange is the half-open byte span [Start, End).
type ByteRange struct {
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

func (r ByteRange) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Contains reports whether offset falls inside the range.
func (r ByteRange) Contains(offset uint32) bool {
	return offset >= r.Start && offset < r.End
}

// PointRange is the row/column counterpart of ByteRange.
type PointRange struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

func (r PointRange) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// Tree is an immutable parsed tree. Close releases backend resources and is
// called exactly once, by the last owner.
type Tree interface {
	RootNode() Node
	Walk() Walker
	Language() Language
	Close()
}

// Node is a value describing one position in a tree.
type Node interface {
	Kind() string
	IsNamed() bool
	IsExtra() bool
	IsError() bool
	IsMissing() bool
	HasError() bool
	StartByte() uint32
	EndByte() uint32
	StartPoint() Point
	EndPoint() Point
	// Walk returns a walker rooted at this node. The walker never moves
	// above it.
	Walk() Walker
	Equal(other Node) bool
}

// Walker is a stateful position inside a tree. Moves report success and leave
// the position unchanged on failure.
type Walker interface {
	Node() Node
	FieldID() FieldID
	GotoFirstChild() bool
	GotoParent() bool
	GotoNextSibling() bool
	// GotoFirstChildForByte moves to the first child whose end byte is
	// greater than offset and returns that child's index.
	GotoFirstChildForByte(offset uint32) (int, bool)
	Reset(n Node)
	Close()
}

// Language carries the metadata shared by all trees of one grammar.
type Language interface {
	FieldCount() int
	FieldNameForID(id FieldID) string
}
