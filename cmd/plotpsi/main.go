// plotpsi renders per-event PSI or cRPKM values across samples, one chart
// image per event. An optional config table selects and orders the samples
// and colors them by group.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/carbocation/pfx"
	vasttools "github.com/wenbinmei/vast-tools"
	"github.com/wenbinmei/vast-tools/compileinfo"
	"github.com/wenbinmei/vast-tools/psiplot"
)

func main() {
	compileinfo.PrintToStdErr()

	var input, config, output string
	var expr, verbose bool
	var maxEvents int

	flag.StringVar(&input, "input", "", "Path to the PSI or cRPKM event table. Required.")
	flag.StringVar(&config, "config", "", "(Optional) Tab-delimited plot config with Order, SampleName, GroupName, RGB columns.")
	flag.StringVar(&output, "output", "plots", "Directory for the rendered charts, created if absent.")
	flag.BoolVar(&expr, "expr", false, "Treat the input as a cRPKM expression table instead of a PSI table.")
	flag.IntVar(&maxEvents, "max-events", psiplot.DefaultMaxEvents, "Refuse to plot tables with more events than this.")
	flag.BoolVar(&verbose, "v", false, "Report each event as it is plotted.")
	flag.Parse()

	if input == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}
	input = vasttools.ExpandHome(input)

	mode := psiplot.ModePSI
	if expr {
		mode = psiplot.ModeExpr
	}

	table, err := psiplot.LoadTable(input, mode)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}

	var cfg []psiplot.SampleConfig
	if config != "" {
		cfg, err = psiplot.LoadConfig(config)
		if err != nil {
			log.Fatalln(pfx.Err(err))
		}
		if err := table.Reorder(cfg); err != nil {
			log.Fatalln(pfx.Err(err))
		}
	}

	if verbose {
		log.Printf("Plotting %d %s events for %d samples into %s", len(table.Events), table.Mode, len(table.Samples), output)
	}

	if err := psiplot.Plot(table, cfg, psiplot.PlotOptions{
		OutputDir: output,
		MaxEvents: maxEvents,
		Verbose:   verbose,
	}); err != nil {
		log.Fatalln(pfx.Err(err))
	}
}
