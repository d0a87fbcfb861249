package cursor

import (
	"fmt"
	"strings"

	"github.com/dhamidi/tsc/syntax"
)

// Prop names one projectable node property.
type Prop int

const (
	PropUnknown Prop = iota
	PropType
	PropNamed
	PropExtra
	PropError
	PropMissing
	PropHasError
	PropStartByte
	PropStartPoint
	PropEndByte
	PropEndPoint
	PropByteRange
	PropRange
	PropField
	PropDepth
)

var propNames = map[Prop]string{
	PropType:       "type",
	PropNamed:      "named?",
	PropExtra:      "extra?",
	PropError:      "error?",
	PropMissing:    "missing?",
	PropHasError:   "has-error?",
	PropStartByte:  "start-byte",
	PropStartPoint: "start-point",
	PropEndByte:    "end-byte",
	PropEndPoint:   "end-point",
	PropByteRange:  "byte-range",
	PropRange:      "row-column-range",
	PropField:      "field",
	PropDepth:      "depth",
}

var propsByName = map[string]Prop{"range": PropRange}

func init() {
	for p, name := range propNames {
		propsByName[name] = p
	}
}

func (p Prop) String() string {
	if name, ok := propNames[p]; ok {
		return name
	}
	return "unknown"
}

// ParseProp looks up a property by name. A leading colon is ignored.
// Unknown names give PropUnknown, which always projects to nil.
func ParseProp(name string) Prop {
	return propsByName[strings.TrimPrefix(name, ":")]
}

// ParseProps parses each name with ParseProp.
func ParseProps(names []string) []Prop {
	props := make([]Prop, len(names))
	for i, name := range names {
		props[i] = ParseProp(name)
	}
	return props
}

// PropNames returns the canonical names of all known properties in
// declaration order.
func PropNames() []string {
	names := make([]string, 0, len(propNames))
	for p := PropType; p <= PropDepth; p++ {
		names = append(names, propNames[p])
	}
	return names
}

func prepare(props []Prop, out []any) ([]any, error) {
	if out == nil {
		return make([]any, len(props)), nil
	}
	if len(out) < len(props) {
		return nil, &Error{
			Op:  "project",
			Err: fmt.Errorf("%w: output holds %d values, %d requested", ErrInvalidArgument, len(out), len(props)),
		}
	}
	return out, nil
}

// project fills out positionally. field is only called when requested.
// Depth is left nil; only a traversal knows it.
func project(n syntax.Node, props []Prop, out []any, field func() any) {
	for i, p := range props {
		switch p {
		case PropType:
			out[i] = n.Kind()
		case PropNamed:
			out[i] = n.IsNamed()
		case PropExtra:
			out[i] = n.IsExtra()
		case PropError:
			out[i] = n.IsError()
		case PropMissing:
			out[i] = n.IsMissing()
		case PropHasError:
			out[i] = n.HasError()
		case PropStartByte:
			out[i] = n.StartByte()
		case PropStartPoint:
			out[i] = n.StartPoint()
		case PropEndByte:
			out[i] = n.EndByte()
		case PropEndPoint:
			out[i] = n.EndPoint()
		case PropByteRange:
			out[i] = syntax.ByteRange{Start: n.StartByte(), End: n.EndByte()}
		case PropRange:
			out[i] = syntax.PointRange{Start: n.StartPoint(), End: n.EndPoint()}
		case PropField:
			out[i] = field()
		default:
			out[i] = nil
		}
	}
}
