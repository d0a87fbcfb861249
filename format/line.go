package format

import (
	"io"
	"strings"
)

// LineEncoder writes each row as tab-separated values.
type LineEncoder struct {
	w      io.Writer
	values []any
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(values []any) error {
	e.values = values
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for i, v := range e.values {
		if i > 0 {
			sb.WriteByte('\t')
		}
		sb.WriteString(text(v))
	}
	sb.WriteByte('\n')
	return []byte(sb.String()), nil
}

func (e *LineEncoder) Flush() error { return nil }
