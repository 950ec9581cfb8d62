// mergeir merges per-sample intron-retention read-count files into four
// genome-wide PIR tables: raw PIR, read coverage, junction-balance p-values,
// and PIR filtered for coverage, balance, and always-retained introns.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/carbocation/pfx"
	vasttools "github.com/wenbinmei/vast-tools"
	"github.com/wenbinmei/vast-tools/compileinfo"
	"github.com/wenbinmei/vast-tools/ir"
)

func main() {
	compileinfo.PrintToStdErr()

	var cfg ir.Config

	flag.StringVar(&cfg.SpeciesDir, "sp", "", "Path to the species directory. Required.")
	flag.StringVar(&cfg.Species, "species", "", "Species label used in output file names. Defaults to the base name of -sp.")
	flag.StringVar(&cfg.CountDir, "counts", "", "Directory holding the per-sample *cReadcount* files. Defaults to <sp>/IRcounts.")
	flag.StringVar(&cfg.OutputDir, "output", "", "Directory for the merged tables, created if absent. Defaults to <sp>/IRtables.")
	flag.StringVar(&cfg.TemplateFile, "template", "", "Junction template file. Defaults to <sp>/TEMPLATES/<species>.IR.template.tab.")
	flag.BoolVar(&cfg.RemoveHighPIR, "removehigh", true, "Null junction rows whose filtered PIR exceeds 95 in every sample with data.")
	flag.IntVar(&cfg.Workers, "workers", 1, "Number of samples to process concurrently.")
	flag.BoolVar(&cfg.Verbose, "v", false, "Report per-sample progress and a summary histogram.")
	flag.Parse()

	if cfg.SpeciesDir == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}
	cfg.SpeciesDir = vasttools.ExpandHome(cfg.SpeciesDir)

	if err := ir.Merge(cfg); err != nil {
		log.Fatalln(pfx.Err(err))
	}
}
