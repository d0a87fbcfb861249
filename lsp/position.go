package lsp

import (
	"sort"
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/tsc/syntax"
)

// lineIndex converts between byte offsets and LSP positions, whose
// characters count UTF-16 code units.
type lineIndex struct {
	src    []byte
	starts []int
}

func newLineIndex(src []byte) *lineIndex {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{src: src, starts: starts}
}

func (li *lineIndex) position(offset uint32) protocol.Position {
	o := min(int(offset), len(li.src))
	line := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > o }) - 1
	char := 0
	for _, r := range string(li.src[li.starts[line]:o]) {
		char += utf16.RuneLen(r)
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(char)}
}

func (li *lineIndex) rangeOf(r syntax.ByteRange) protocol.Range {
	return protocol.Range{Start: li.position(r.Start), End: li.position(r.End)}
}

func (li *lineIndex) offset(p protocol.Position) uint32 {
	return uint32(p.IndexIn(string(li.src)))
}
