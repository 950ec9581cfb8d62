package psiplot

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// SampleConfig is one row of the optional plot configuration table. It picks
// a sample out of the event table, assigns it a plotting position and group,
// and optionally a group color as a comma-separated R,G,B triple.
type SampleConfig struct {
	Order      int    `csv:"Order"`
	SampleName string `csv:"SampleName"`
	GroupName  string `csv:"GroupName"`
	RGB        string `csv:"RGB"`
}

// LoadConfig reads a tab-delimited plot configuration table.
func LoadConfig(path string) ([]SampleConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = '\t'
		r.LazyQuotes = true
		return r
	})

	records := []*SampleConfig{}
	if err := gocsv.UnmarshalBytes(b, &records); err != nil {
		return nil, pfx.Err(err)
	}

	out := make([]SampleConfig, 0, len(records))
	for _, r := range records {
		out = append(out, *r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })

	return out, nil
}

// Reorder restricts and reorders the table's sample columns to the
// configuration, in Order. Config entries naming samples absent from the
// table are a configuration error.
func (t *Table) Reorder(cfg []SampleConfig) error {
	if len(cfg) == 0 {
		return nil
	}

	index := make(map[string]int, len(t.Samples))
	for i, s := range t.Samples {
		index[s] = i
	}

	picks := make([]int, 0, len(cfg))
	samples := make([]string, 0, len(cfg))
	for _, c := range cfg {
		i, ok := index[c.SampleName]
		if !ok {
			return fmt.Errorf("psiplot: config sample %q not present in the event table", c.SampleName)
		}
		picks = append(picks, i)
		samples = append(samples, c.SampleName)
	}

	for ei := range t.Events {
		values := make([]float64, len(picks))
		for vi, p := range picks {
			values[vi] = t.Events[ei].Values[p]
		}
		t.Events[ei].Values = values
	}
	t.Samples = samples

	return nil
}

// Color parses the RGB field into a drawing color. Empty or malformed fields
// fall back to the given default.
func (c SampleConfig) Color(fallback drawing.Color) drawing.Color {
	parts := strings.Split(c.RGB, ",")
	if len(parts) != 3 {
		return fallback
	}

	var rgb [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return fallback
		}
		rgb[i] = uint8(v)
	}

	return drawing.Color{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
}
