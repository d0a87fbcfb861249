// Package format writes traversal rows in several output formats.
package format

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Encoder writes one row per visited node. Rows passed to Encode may be
// reused by the caller after it returns. Flush must be called once at the
// end.
type Encoder interface {
	Encode(values []any) error
	Flush() error
}

var ErrUnknownFormat = errors.New("unknown format")

type constructor func(w io.Writer, names []string) (Encoder, error)

var formats = map[string]constructor{
	"line":  func(w io.Writer, names []string) (Encoder, error) { return NewLineEncoder(w), nil },
	"json":  func(w io.Writer, names []string) (Encoder, error) { return NewJSONEncoder(w, names), nil },
	"yaml":  func(w io.Writer, names []string) (Encoder, error) { return NewYAMLEncoder(w, names), nil },
	"table": func(w io.Writer, names []string) (Encoder, error) { return NewTableEncoder(w, names), nil },
	"sexp":  func(w io.Writer, names []string) (Encoder, error) { return NewSexpEncoder(w, names) },
}

// New returns the encoder called name. names are the property names, in
// row order.
func New(name string, w io.Writer, names []string) (Encoder, error) {
	c, ok := formats[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, name, strings.Join(Names(), ", "))
	}
	return c(w, names)
}

// Names returns the known format names.
func Names() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// text renders a value for the line and table formats.
func text(v any) string {
	switch v := v.(type) {
	case nil:
		return "-"
	case string:
		if v == "" || strings.ContainsAny(v, " \t\n\r\"") {
			return strconv.Quote(v)
		}
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
