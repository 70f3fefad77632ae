package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSV writes the table as comma separated values.
func CSV(t Table, name string) (*File, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Header); err != nil {
		return nil, err
	}
	for _, r := range t.Rows {
		if err := w.Write(stringCells(r)); err != nil {
			return nil, err
		}
	}
	if err := w.Write(stringCells(t.Totals)); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return &File{Name: name, ContentType: ContentTypeCSV, Data: buf.Bytes()}, nil
}

func stringCells(r []any) []string {
	out := make([]string, len(r))
	for i, v := range r {
		out[i] = fmt.Sprint(v)
	}
	return out
}
