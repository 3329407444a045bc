package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// table reads a headed CSV and looks fields up by column name.
type table struct {
	r      *csv.Reader
	header map[string]int
	line   int
}

func newTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty CSV: no header")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	t := &table{r: cr, header: make(map[string]int, len(head)), line: 1}
	for i, name := range head {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := t.header[name]; !dup {
			t.header[name] = i
		}
	}
	return t, nil
}

func (t *table) has(column string) bool {
	_, ok := t.header[column]
	return ok
}

func (t *table) require(columns ...string) error {
	for _, c := range columns {
		if !t.has(c) {
			return &MissingColumnError{Column: c}
		}
	}
	return nil
}

// next returns the following row or io.EOF.
func (t *table) next() (row, error) {
	rec, err := t.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return row{}, io.EOF
		}
		return row{}, fmt.Errorf("read line %d: %w", t.line+1, err)
	}
	t.line++
	return row{t: t, rec: rec}, nil
}

type row struct {
	t   *table
	rec []string
}

// get returns the trimmed field of column, or "" when the column or field is absent.
func (r row) get(column string) string {
	i, ok := r.t.header[column]
	if !ok || i >= len(r.rec) {
		return ""
	}
	return strings.TrimSpace(r.rec[i])
}
