package ir

import (
	"log"
	"math"
	"os"

	"github.com/aybabtme/uniplot/histogram"
	"golang.org/x/sync/errgroup"
)

// Tables holds the four merged result matrices. Values are stored
// column-major: table[sample][templateRow]. NaN marks NA and is written as an
// empty field.
type Tables struct {
	Template *Template
	Samples  []Sample

	RawPIR   [][]float64
	Coverage [][]float64
	Balance  [][]float64
	CleanPIR [][]float64
}

// Merge runs the full aggregation: validate inputs, discover samples, compute
// one column per sample, apply the reliability filter, and write the four
// output tables. Nothing is written until validation and discovery succeed.
func Merge(cfg Config) error {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	tables, err := Aggregate(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDir, os.ModePerm); err != nil {
		return err
	}

	if cfg.Verbose {
		tables.logCleanSummary()
	}

	return tables.WriteAll(cfg.OutputDir, cfg.Species)
}

// Aggregate computes the four tables in memory without touching the output
// directory. Samples are processed in discovery order; when cfg.Workers > 1
// they run concurrently, each writing only its own column.
func Aggregate(cfg Config) (*Tables, error) {
	cfg.ApplyDefaults()

	template, err := LoadTemplate(cfg.TemplateFile)
	if err != nil {
		return nil, err
	}

	samples, err := DiscoverSamples(cfg.CountDir)
	if err != nil {
		return nil, err
	}

	if cfg.Verbose {
		log.Printf("Merging %d samples over %d template junctions", len(samples), template.Len())
	}

	t := newTables(template, samples)

	g := new(errgroup.Group)
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for si := range samples {
		si := si
		g.Go(func() error {
			return t.computeSample(si, cfg.Verbose)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	t.applyCleanFilter(cfg)

	return t, nil
}

func newTables(template *Template, samples []Sample) *Tables {
	t := &Tables{
		Template: template,
		Samples:  samples,
		RawPIR:   naColumns(len(samples), template.Len()),
		Coverage: naColumns(len(samples), template.Len()),
		Balance:  naColumns(len(samples), template.Len()),
		CleanPIR: naColumns(len(samples), template.Len()),
	}

	return t
}

func naColumns(nsamples, nrows int) [][]float64 {
	cols := make([][]float64, nsamples)
	for i := range cols {
		col := make([]float64, nrows)
		for j := range col {
			col[j] = math.NaN()
		}
		cols[i] = col
	}

	return cols
}

// computeSample fills column si of the raw PIR, coverage, and balance tables
// from one sample's count file. Junctions absent from the template are
// ignored; template junctions absent from the sample stay NA.
func (t *Tables) computeSample(si int, verbose bool) error {
	sample := t.Samples[si]

	counts, dropped, err := ReadCounts(sample.Path)
	if err != nil {
		return err
	}

	matched := 0
	for id, c := range counts {
		row, ok := t.Template.Row(id)
		if !ok {
			continue
		}
		matched++

		t.RawPIR[si][row] = PIR(c)
		t.Coverage[si][row] = Coverage(c)
		t.Balance[si][row] = Balance(c)
	}

	if verbose {
		log.Printf("Sample %s: %d junctions matched, %d missing from counts, %d duplicate IDs dropped",
			sample.Name, matched, t.Template.Len()-matched, dropped)
	}

	return nil
}

// logCleanSummary prints a terminal histogram of the non-NA filtered PIR
// values to stderr.
func (t *Tables) logCleanSummary() {
	var vals []float64
	for _, col := range t.CleanPIR {
		for _, v := range col {
			if !math.IsNaN(v) {
				vals = append(vals, v)
			}
		}
	}

	log.Printf("%d PIR values passed the coverage and balance filters", len(vals))
	if len(vals) == 0 {
		return
	}

	hist := histogram.Hist(20, vals)
	histogram.Fprint(os.Stderr, hist, histogram.Linear(40))
}
