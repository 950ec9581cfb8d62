// Package psiplot renders per-event inclusion (PSI) or expression (cRPKM)
// values across samples as charts, one image per event.
package psiplot

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
	vasttools "github.com/wenbinmei/vast-tools"
)

// Mode selects how the event table's sample columns are interpreted.
type Mode int

const (
	// ModePSI expects paired value and quality columns per sample and a
	// fixed 0-100 y axis.
	ModePSI Mode = iota

	// ModeExpr expects one cRPKM column per sample and an automatic y axis.
	ModeExpr
)

func (m Mode) String() string {
	if m == ModeExpr {
		return "cRPKM"
	}
	return "PSI"
}

// Event is one table row: an event identifier, its gene, and one value per
// sample. Missing values are NaN.
type Event struct {
	Gene   string
	ID     string
	Values []float64
}

// Table is a parsed PSI or cRPKM event table. Values[i] of every event lines
// up with Samples[i].
type Table struct {
	Mode    Mode
	Samples []string
	Events  []Event
}

// qualitySuffix marks a PSI quality-score column belonging to the sample
// column immediately before it.
const qualitySuffix = "-Q"

// LoadTable reads an event table from disk. The delimiter is detected from
// the file contents, so both tab- and comma-delimited tables are accepted.
func LoadTable(path string, mode Mode) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	delim := vasttools.DetectDelimiter(bytes.NewReader(b))

	return ReadTable(bytes.NewReader(b), delim, mode)
}

// ReadTable parses an event table from r. The header must start with GENE and
// EVENT columns; every following column is a sample, except that in PSI mode
// columns named <sample>-Q attach to the preceding sample as quality scores
// and are skipped.
func ReadTable(r io.Reader, delim rune, mode Mode) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("psiplot: event table is empty")
	} else if err != nil {
		return nil, pfx.Err(err)
	}
	if len(header) < 3 {
		return nil, fmt.Errorf("psiplot: event table needs GENE, EVENT and at least one sample column, got %d columns", len(header))
	}

	t := &Table{Mode: mode}
	var valueCols []int
	for i := 2; i < len(header); i++ {
		if mode == ModePSI && strings.HasSuffix(header[i], qualitySuffix) {
			continue
		}
		t.Samples = append(t.Samples, header[i])
		valueCols = append(valueCols, i)
	}
	if len(t.Samples) == 0 {
		return nil, fmt.Errorf("psiplot: event table has no sample columns")
	}

	for i := 0; ; i++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("psiplot: event table row %d: %w", i, err)
		}
		if len(row) < 2 {
			continue
		}

		ev := Event{
			Gene:   row[0],
			ID:     row[1],
			Values: make([]float64, len(valueCols)),
		}
		for vi, col := range valueCols {
			ev.Values[vi] = parseValue(row, col)
		}
		t.Events = append(t.Events, ev)
	}

	return t, nil
}

// parseValue reads the col-th field as a measurement; empty fields and the
// literal NA are missing.
func parseValue(row []string, col int) float64 {
	if col >= len(row) {
		return math.NaN()
	}
	field := strings.TrimSpace(row[col])
	if field == "" || field == "NA" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return math.NaN()
	}

	return v
}
