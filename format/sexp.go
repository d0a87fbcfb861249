package format

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/tsc/cst"
	"github.com/dhamidi/tsc/cursor"
)

// ErrMissingProps is returned when a format needs properties the rows do
// not carry.
var ErrMissingProps = errors.New("missing properties")

// SexpEncoder rebuilds the tree shape from pre-order rows and writes it as
// an indented s-expression. Rows must carry type, depth, field and named?.
type SexpEncoder struct {
	w                        io.Writer
	typ, depth, field, named int
	open                     []bool // per depth on the current path: whether a paren was opened
	started                  bool
}

// SexpProps are the properties the sexp format needs.
var SexpProps = []string{"type", "depth", "field", "named?"}

func NewSexpEncoder(w io.Writer, names []string) (*SexpEncoder, error) {
	e := &SexpEncoder{w: w, typ: -1, depth: -1, field: -1, named: -1}
	for i, name := range names {
		switch cursor.ParseProp(name) {
		case cursor.PropType:
			e.typ = i
		case cursor.PropDepth:
			e.depth = i
		case cursor.PropField:
			e.field = i
		case cursor.PropNamed:
			e.named = i
		}
	}
	if e.typ < 0 || e.depth < 0 || e.field < 0 || e.named < 0 {
		return nil, fmt.Errorf("%w: sexp needs %s", ErrMissingProps, strings.Join(SexpProps, ", "))
	}
	return e, nil
}

func (e *SexpEncoder) Encode(values []any) error {
	kind, _ := values[e.typ].(string)
	depth, _ := values[e.depth].(int)
	named, _ := values[e.named].(bool)

	var sb strings.Builder
	e.closeTo(&sb, depth)
	if e.started {
		sb.WriteByte('\n')
	}
	e.started = true
	sb.WriteString(strings.Repeat("  ", depth))
	if field, ok := values[e.field].(string); ok {
		sb.WriteString(field)
		sb.WriteString(": ")
	}
	if named {
		sb.WriteString("(")
		sb.WriteString(kind)
	} else {
		sb.WriteString(cst.Quote(kind))
	}
	e.open = append(e.open, named)

	_, err := io.WriteString(e.w, sb.String())
	return err
}

// closeTo closes every node on the current path at depth or deeper.
func (e *SexpEncoder) closeTo(sb *strings.Builder, depth int) {
	for len(e.open) > depth {
		if e.open[len(e.open)-1] {
			sb.WriteByte(')')
		}
		e.open = e.open[:len(e.open)-1]
	}
}

func (e *SexpEncoder) Flush() error {
	if !e.started {
		return nil
	}
	var sb strings.Builder
	e.closeTo(&sb, 0)
	sb.WriteByte('\n')
	_, err := io.WriteString(e.w, sb.String())
	return err
}
