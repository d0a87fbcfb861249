package format

import (
	"bytes"
	"encoding/json"
	"io"
)

// JSONEncoder writes one JSON object per row, keys in property order.
type JSONEncoder struct {
	w      io.Writer
	names  []string
	values []any
}

func NewJSONEncoder(w io.Writer, names []string) *JSONEncoder {
	return &JSONEncoder{w: w, names: names}
}

func (e *JSONEncoder) Encode(values []any) error {
	e.values = values
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range e.values {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.names[i])
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func (e *JSONEncoder) Flush() error { return nil }
