package format

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// TableEncoder renders all rows as a table on Flush.
type TableEncoder struct {
	table *tablewriter.Table
}

func NewTableEncoder(w io.Writer, names []string) *TableEncoder {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(names)
	return &TableEncoder{table: table}
}

func (e *TableEncoder) Encode(values []any) error {
	row := make([]string, len(values))
	for i, v := range values {
		row[i] = text(v)
	}
	e.table.Append(row)
	return nil
}

func (e *TableEncoder) Flush() error {
	e.table.Render()
	return nil
}
