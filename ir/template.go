package ir

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/carbocation/pfx"
	vasttools "github.com/wenbinmei/vast-tools"
)

// MetaColumns is the number of leading descriptive columns in the junction
// template. Their content is opaque to the merger and is copied through to
// every output table unchanged.
const MetaColumns = 6

// Template is the junction universe for one species. It fixes the row set and
// row order of every output table: results for a sample are scattered into
// template row positions by junction ID, and IDs missing from a sample stay
// NA.
type Template struct {
	// Header holds the column names of the 6 metadata columns.
	Header []string

	// Meta holds the metadata columns for each junction row, in file order.
	Meta [][]string

	// IDs holds the junction identifier of each row, in file order.
	IDs []string

	index map[string]int
}

// LoadTemplate reads a tab-delimited junction template. The header row is
// required; the first 6 columns are descriptive metadata and the following
// column is the junction identifier used to align sample results.
func LoadTemplate(path string) (*Template, error) {
	f, err := vasttools.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	return ReadTemplate(f)
}

// ReadTemplate parses template rows from r. See LoadTemplate.
func ReadTemplate(r io.Reader) (*Template, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("ir: template is empty")
	} else if err != nil {
		return nil, pfx.Err(err)
	}
	if len(header) < MetaColumns+1 {
		return nil, fmt.Errorf("ir: template has %d columns, expected at least %d metadata columns plus a junction ID", len(header), MetaColumns)
	}

	t := &Template{
		Header: append([]string{}, header[:MetaColumns]...),
		index:  make(map[string]int),
	}

	for i := 0; ; i++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("ir: template row %d: %w", i, err)
		}
		if len(row) < MetaColumns+1 {
			return nil, fmt.Errorf("ir: template row %d has %d columns, expected at least %d", i, len(row), MetaColumns+1)
		}

		id := row[MetaColumns]
		t.Meta = append(t.Meta, append([]string{}, row[:MetaColumns]...))
		t.IDs = append(t.IDs, id)

		// First occurrence wins if the template itself repeats an ID.
		if _, seen := t.index[id]; !seen {
			t.index[id] = len(t.IDs) - 1
		}
	}

	return t, nil
}

// Len returns the number of junction rows.
func (t *Template) Len() int {
	return len(t.IDs)
}

// Row returns the row index for a junction ID.
func (t *Template) Row(id string) (int, bool) {
	i, ok := t.index[id]
	return i, ok
}
