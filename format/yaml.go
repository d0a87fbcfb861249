package format

import (
	"io"

	"github.com/goccy/go-yaml"
)

// YAMLEncoder collects rows and writes them as one YAML sequence on Flush.
type YAMLEncoder struct {
	w     io.Writer
	names []string
	rows  []yaml.MapSlice
}

func NewYAMLEncoder(w io.Writer, names []string) *YAMLEncoder {
	return &YAMLEncoder{w: w, names: names}
}

func (e *YAMLEncoder) Encode(values []any) error {
	row := make(yaml.MapSlice, len(values))
	for i, v := range values {
		row[i] = yaml.MapItem{Key: e.names[i], Value: v}
	}
	e.rows = append(e.rows, row)
	return nil
}

func (e *YAMLEncoder) MarshalText() ([]byte, error) {
	if len(e.rows) == 0 {
		return []byte("[]\n"), nil
	}
	return yaml.Marshal(e.rows)
}

func (e *YAMLEncoder) Flush() error {
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}
