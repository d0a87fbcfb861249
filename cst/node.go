// Package cst is a pure-Go concrete syntax tree backend. Trees are built from
// an s-expression notation and expose the syntax interfaces.
package cst

import (
	"github.com/dhamidi/tsc/ebnflex"
	"github.com/dhamidi/tsc/syntax"
)

// Span represents a range in source code.
type Span struct {
	Start ebnflex.Position
	End   ebnflex.Position
}

// Node represents a node in the concrete syntax tree.
type Node struct {
	Kind     string         // Node kind; for anonymous leaves also the token text
	Children []*Node        // Child nodes in source order
	Field    syntax.FieldID // Role in the parent, 0 for none
	Span     Span           // Source span covering this node
	Text     string         // Source text of a leaf
	Named    bool
	Extra    bool
	Missing  bool
	Error    string // Non-empty if this is an error node

	hasError bool
}

// IsError returns true if this node represents a parse error.
func (n *Node) IsError() bool {
	return n.Error != ""
}

// IsTerminal returns true if this is a leaf node.
func (n *Node) IsTerminal() bool {
	return len(n.Children) == 0
}

// HasError reports whether this node or any descendant is an error or
// missing node.
func (n *Node) HasError() bool {
	return n.hasError || n.IsError() || n.Missing
}

// AddChild appends a child node and updates the span.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	n.Children = append(n.Children, child)
	if len(n.Children) == 1 {
		n.Span.Start = child.Span.Start
	}
	n.Span.End = child.Span.End
	if child.HasError() {
		n.hasError = true
	}
}

// NewTerminal creates a leaf node.
func NewTerminal(kind, text string, named bool) *Node {
	return &Node{Kind: kind, Text: text, Named: named}
}

// NewNonTerminal creates a named interior node.
func NewNonTerminal(kind string) *Node {
	return &Node{Kind: kind, Named: true}
}

// NewError creates an error node with the given message.
func NewError(msg string) *Node {
	return &Node{Kind: "ERROR", Named: true, Error: msg}
}

// NewMissing creates a zero-width node the parser inserted to recover.
func NewMissing(kind string, named bool) *Node {
	return &Node{Kind: kind, Named: named, Missing: true}
}

func point(p ebnflex.Position) syntax.Point {
	return syntax.Point{Row: uint32(p.Line - 1), Column: uint32(p.Column - 1)}
}
