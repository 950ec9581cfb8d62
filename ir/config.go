// Package ir merges per-sample intron-retention read counts into genome-wide
// percent-intron-retention (PIR) tables. One column per sample is computed for
// raw PIR, read coverage, and junction-balance p-values, and a filtered PIR
// table is derived from the three.
package ir

import (
	"fmt"
	"os"
	"path/filepath"
)

// Default reliability thresholds. A junction's PIR estimate is discarded when
// its read coverage or flanking-junction balance falls below these.
const (
	DefaultMinCoverage = 10
	DefaultMinBalance  = 0.05
	DefaultHighPIR     = 95
)

// CountFilePattern is the substring that identifies a per-sample read-count
// file within the count directory. The sample name is the file name truncated
// at this pattern.
const CountFilePattern = "cReadcount"

// Config carries all paths and thresholds for one merge run. Zero-valued
// fields are populated by ApplyDefaults; thresholds may be overridden before
// calling Merge.
type Config struct {
	// SpeciesDir is the root directory of the species database. Required.
	SpeciesDir string

	// Species is the species label used in output file names. Defaults to
	// the base name of SpeciesDir.
	Species string

	// CountDir holds the per-sample read-count files. Defaults to
	// SpeciesDir/IRcounts.
	CountDir string

	// OutputDir receives the four merged tables. Defaults to
	// SpeciesDir/IRtables and is created if absent.
	OutputDir string

	// TemplateFile is the junction template that fixes the row set and row
	// order of every output table. Defaults to
	// SpeciesDir/TEMPLATES/<Species>.IR.template.tab.
	TemplateFile string

	// RemoveHighPIR nulls whole junction rows whose filtered PIR exceeds
	// HighPIR in every sample with data.
	RemoveHighPIR bool

	// Workers bounds how many samples are computed concurrently. Values
	// below 2 mean sequential processing.
	Workers int

	Verbose bool

	MinCoverage float64
	MinBalance  float64
	HighPIR     float64
}

// DefaultConfig returns a Config for the given species directory with every
// optional field at its default.
func DefaultConfig(speciesDir string) Config {
	cfg := Config{SpeciesDir: speciesDir, RemoveHighPIR: true}
	cfg.ApplyDefaults()

	return cfg
}

// ApplyDefaults fills in every unset derived field from SpeciesDir.
func (c *Config) ApplyDefaults() {
	if c.Species == "" {
		c.Species = filepath.Base(c.SpeciesDir)
	}
	if c.CountDir == "" {
		c.CountDir = filepath.Join(c.SpeciesDir, "IRcounts")
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.SpeciesDir, "IRtables")
	}
	if c.TemplateFile == "" {
		c.TemplateFile = filepath.Join(c.SpeciesDir, "TEMPLATES", c.Species+".IR.template.tab")
	}
	if c.MinCoverage == 0 {
		c.MinCoverage = DefaultMinCoverage
	}
	if c.MinBalance == 0 {
		c.MinBalance = DefaultMinBalance
	}
	if c.HighPIR == 0 {
		c.HighPIR = DefaultHighPIR
	}
}

// Validate confirms the inputs exist before any computation starts. It does
// not create the output directory; Merge does that only after validation
// passes.
func (c Config) Validate() error {
	if c.SpeciesDir == "" {
		return fmt.Errorf("ir: species directory is required")
	}
	if fi, err := os.Stat(c.SpeciesDir); err != nil || !fi.IsDir() {
		return fmt.Errorf("ir: species directory %s does not exist", c.SpeciesDir)
	}
	if _, err := os.Stat(c.TemplateFile); err != nil {
		return fmt.Errorf("ir: template file %s does not exist", c.TemplateFile)
	}

	return nil
}
