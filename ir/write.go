package ir

import (
	"bufio"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/carbocation/pfx"
)

// WriteAll persists the four merged tables into outDir, overwriting any
// previous run for the same species.
func (t *Tables) WriteAll(outDir, species string) error {
	for _, out := range []struct {
		name string
		cols [][]float64
	}{
		{"PIR.raw_" + species + ".tab", t.RawPIR},
		{"Coverage_" + species + ".tab", t.Coverage},
		{"Balance-pval_" + species + ".tab", t.Balance},
		{"PIR_" + species + ".tab", t.CleanPIR},
	} {
		if err := t.writeTable(filepath.Join(outDir, out.name), out.cols); err != nil {
			return err
		}
	}

	return nil
}

// writeTable emits one tab-delimited table: the template's metadata columns
// followed by one numeric column per sample, rows in template order, NA as an
// empty field.
func (t *Tables) writeTable(path string, cols [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	buf := bufio.NewWriter(f)
	w := csv.NewWriter(buf)
	w.Comma = '\t'

	header := append([]string{}, t.Template.Header...)
	for _, s := range t.Samples {
		header = append(header, s.Name)
	}
	if err := w.Write(header); err != nil {
		return pfx.Err(err)
	}

	row := make([]string, 0, len(header))
	for r := 0; r < t.Template.Len(); r++ {
		row = row[:0]
		row = append(row, t.Template.Meta[r]...)
		for si := range t.Samples {
			row = append(row, formatValue(cols[si][r]))
		}
		if err := w.Write(row); err != nil {
			return pfx.Err(err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return pfx.Err(err)
	}
	return buf.Flush()
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}
