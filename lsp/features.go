package lsp

import (
	"fmt"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/tsc/cursor"
	"github.com/dhamidi/tsc/syntax"
)

var symbolKinds = map[string]protocol.SymbolKind{
	"function_declaration": protocol.SymbolKindFunction,
	"method_declaration":   protocol.SymbolKindMethod,
	"method_elem":          protocol.SymbolKindMethod,
	"type_spec":            protocol.SymbolKindClass,
	"type_alias":           protocol.SymbolKindClass,
	"const_spec":           protocol.SymbolKindConstant,
	"var_spec":             protocol.SymbolKindVariable,
	"field_declaration":    protocol.SymbolKindField,
}

var symbolProps = []cursor.Prop{cursor.PropType, cursor.PropDepth, cursor.PropField, cursor.PropByteRange}

type symbolNode struct {
	kind      protocol.SymbolKind
	typ       string
	name      string
	rng       syntax.ByteRange
	nameRange syntax.ByteRange
	depth     int
	children  []*symbolNode
}

func (n *symbolNode) documentSymbol(li *lineIndex) protocol.DocumentSymbol {
	name, selection := n.name, n.nameRange
	if name == "" {
		name, selection = n.typ, n.rng
	}
	detail := n.typ
	sym := protocol.DocumentSymbol{
		Name:           name,
		Detail:         &detail,
		Kind:           n.kind,
		Range:          li.rangeOf(n.rng),
		SelectionRange: li.rangeOf(selection),
	}
	for _, c := range n.children {
		sym.Children = append(sym.Children, c.documentSymbol(li))
	}
	return sym
}

// documentSymbols lists declarations in path. A declaration is named by
// the text of its child in the "name" field.
func (s *Server) documentSymbols(path string) ([]protocol.DocumentSymbol, error) {
	file, tree := s.ws.Acquire(path)
	if tree == nil {
		return nil, nil
	}
	defer tree.Release()

	var roots []*symbolNode
	var stack []*symbolNode
	err := cursor.Traverse(cursor.Tree(tree), symbolProps, func(values []any) error {
		typ := values[0].(string)
		depth := values[1].(int)
		rng := values[3].(syntax.ByteRange)
		for len(stack) > 0 && stack[len(stack)-1].depth >= depth {
			stack = stack[:len(stack)-1]
		}

		if field, _ := values[2].(string); field == "name" && len(stack) > 0 {
			if top := stack[len(stack)-1]; top.depth == depth-1 && top.name == "" {
				top.name = file.Text(rng.Start, rng.End)
				top.nameRange = rng
			}
		}

		kind, ok := symbolKinds[typ]
		if !ok {
			return nil
		}
		n := &symbolNode{kind: kind, typ: typ, rng: rng, depth: depth}
		if len(stack) > 0 {
			top := stack[len(stack)-1]
			top.children = append(top.children, n)
		} else {
			roots = append(roots, n)
		}
		stack = append(stack, n)
		return nil
	})
	if err != nil {
		return nil, err
	}

	li := newLineIndex(file.Source)
	symbols := make([]protocol.DocumentSymbol, 0, len(roots))
	for _, n := range roots {
		symbols = append(symbols, n.documentSymbol(li))
	}
	return symbols, nil
}

// selectionRanges returns, for each position, the chain of node ranges
// from the innermost node at the position outwards.
func (s *Server) selectionRanges(path string, positions []protocol.Position) ([]protocol.SelectionRange, error) {
	file, tree := s.ws.Acquire(path)
	if tree == nil {
		return nil, nil
	}
	defer tree.Release()

	li := newLineIndex(file.Source)
	props := []cursor.Prop{cursor.PropByteRange}
	result := make([]protocol.SelectionRange, 0, len(positions))
	for _, pos := range positions {
		var chain []syntax.ByteRange
		err := cursor.Seek(cursor.Tree(tree), li.offset(pos), props, func(values []any) error {
			rng := values[0].(syntax.ByteRange)
			if len(chain) == 0 || chain[len(chain)-1] != rng {
				chain = append(chain, rng)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		var sel *protocol.SelectionRange
		for _, rng := range chain {
			sel = &protocol.SelectionRange{Range: li.rangeOf(rng), Parent: sel}
		}
		if sel == nil {
			sel = &protocol.SelectionRange{Range: protocol.Range{Start: pos, End: pos}}
		}
		result = append(result, *sel)
	}
	return result, nil
}

var hoverProps = []cursor.Prop{cursor.PropType, cursor.PropField, cursor.PropByteRange, cursor.PropRange, cursor.PropHasError}

const maxHoverText = 80

// hover describes the innermost node at pos and the kinds of its ancestors.
func (s *Server) hover(path string, pos protocol.Position) (*protocol.Hover, error) {
	file, tree := s.ws.Acquire(path)
	if tree == nil {
		return nil, nil
	}
	defer tree.Release()

	li := newLineIndex(file.Source)
	var kinds []string
	last := make([]any, len(hoverProps))
	err := cursor.Seek(cursor.Tree(tree), li.offset(pos), hoverProps, func(values []any) error {
		kinds = append(kinds, values[0].(string))
		copy(last, values)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(kinds) == 0 {
		return nil, nil
	}

	rng := last[2].(syntax.ByteRange)
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**", kinds[len(kinds)-1])
	if field, ok := last[1].(string); ok {
		fmt.Fprintf(&b, " (field `%s`)", field)
	}
	if last[4].(bool) {
		b.WriteString(" contains errors")
	}
	fmt.Fprintf(&b, "\n\n%s\n\n%s %s", strings.Join(kinds, " > "), rng, last[3])
	if text := file.Text(rng.Start, rng.End); text != "" && len(text) <= maxHoverText && !strings.Contains(text, "\n") {
		fmt.Fprintf(&b, "\n\n```\n%s\n```", text)
	}

	r := li.rangeOf(rng)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: b.String(),
		},
		Range: &r,
	}, nil
}
