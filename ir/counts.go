package ir

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
	vasttools "github.com/wenbinmei/vast-tools"
)

// HeaderLiteral is the first header field of a headered count file. Files
// whose first line does not start with this literal are parsed positionally
// with no header row.
const HeaderLiteral = "Event"

// Sample pairs a sample name with the count file it came from. The name is
// the file name truncated at the count-file pattern.
type Sample struct {
	Name string
	Path string
}

// Counts holds one sample's read counts for a single junction. EIJ1 and EIJ2
// are the two flanking exclusion-junction counts, EEJ the exon-exon junction
// count, and I the intron body count. Counts that failed numeric parsing are
// NaN and propagate as NA through every derived metric.
type Counts struct {
	EIJ1, EIJ2, EEJ, I float64
}

// DiscoverSamples lists count files in dir, in directory-read order. A file
// participates when its name contains CountFilePattern, ignoring a trailing
// .gz. Zero matches is an error: a merge run with no samples has nothing to
// emit.
func DiscoverSamples(dir string) ([]Sample, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, pfx.Err(err)
	}

	var samples []Sample
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".gz")
		at := strings.Index(name, CountFilePattern)
		if at < 0 {
			continue
		}

		samples = append(samples, Sample{
			Name: strings.TrimRight(name[:at], "._-"),
			Path: filepath.Join(dir, e.Name()),
		})
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("ir: no count files matching *%s* found in %s", CountFilePattern, dir)
	}

	return samples, nil
}

// ReadCounts loads one sample's count file, keyed by junction ID. Junction
// IDs that occur more than once within the file are ambiguous and every
// occurrence is dropped; the number of distinct dropped IDs is returned for
// reporting. Compressed files are decompressed transparently.
func ReadCounts(path string) (map[string]Counts, int, error) {
	f, err := vasttools.Open(path)
	if err != nil {
		return nil, 0, pfx.Err(err)
	}
	defer f.Close()

	return ParseCounts(f)
}

// ParseCounts parses count rows from r, tolerating both the headered layout
// (Event, EIJ1, EIJ2, EEJ, I) and the headerless positional layout with the
// same column order.
func ParseCounts(r io.Reader) (map[string]Counts, int, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	first, err := cr.Read()
	if err == io.EOF {
		return map[string]Counts{}, 0, nil
	} else if err != nil {
		return nil, 0, pfx.Err(err)
	}

	out := make(map[string]Counts)
	seen := make(map[string]int)

	// Header sniff: a first field of exactly "Event" marks a headered file,
	// otherwise the first line is already data.
	if len(first) > 0 && first[0] != HeaderLiteral {
		addCountRow(out, seen, first)
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, 0, pfx.Err(err)
		}
		addCountRow(out, seen, row)
	}

	// Duplicated junction IDs are ambiguous; drop every occurrence rather
	// than picking one.
	dropped := 0
	for id, n := range seen {
		if n > 1 {
			delete(out, id)
			dropped++
		}
	}

	return out, dropped, nil
}

func addCountRow(out map[string]Counts, seen map[string]int, row []string) {
	if len(row) == 0 || row[0] == "" {
		return
	}

	id := row[0]
	seen[id]++

	c := Counts{
		EIJ1: parseCount(row, 1),
		EIJ2: parseCount(row, 2),
		EEJ:  parseCount(row, 3),
		I:    parseCount(row, 4),
	}
	out[id] = c
}

// parseCount reads the i-th field as a non-negative count. Missing or
// non-numeric fields become NaN so the junction surfaces as NA downstream
// instead of halting the run.
func parseCount(row []string, i int) float64 {
	if i >= len(row) {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
	if err != nil || v < 0 {
		return math.NaN()
	}

	return v
}
