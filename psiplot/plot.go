package psiplot

import (
	"bytes"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// DefaultMaxEvents caps how many charts one run will write. Event tables are
// genome-wide; rendering one image per row of an unfiltered table is almost
// always a mistake.
const DefaultMaxEvents = 500

// PlotOptions control chart output.
type PlotOptions struct {
	// OutputDir receives one <EVENT>.png per event. Created if absent.
	OutputDir string

	// MaxEvents aborts the run before rendering anything when the table
	// has more events. Zero means DefaultMaxEvents.
	MaxEvents int

	Verbose bool
}

// Plot renders every event of the table into opts.OutputDir. The sample
// config, when non-empty, must already have been applied with Reorder; here
// it only supplies group colors.
func Plot(t *Table, cfg []SampleConfig, opts PlotOptions) error {
	max := opts.MaxEvents
	if max == 0 {
		max = DefaultMaxEvents
	}
	if len(t.Events) > max {
		return fmt.Errorf("psiplot: table has %d events, above the limit of %d; filter the table or raise -max-events", len(t.Events), max)
	}

	if err := os.MkdirAll(opts.OutputDir, os.ModePerm); err != nil {
		return pfx.Err(err)
	}

	for _, ev := range t.Events {
		if err := renderEvent(t, ev, cfg, opts.OutputDir); err != nil {
			return err
		}
		if opts.Verbose {
			log.Printf("Plotted %s", ev.ID)
		}
	}

	return nil
}

func renderEvent(t *Table, ev Event, cfg []SampleConfig, outDir string) error {
	graph := chart.Chart{
		Width:  900,
		Height: 400,
		Title:  fmt.Sprintf("%s (%s)", ev.ID, ev.Gene),
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(t.Samples)) - 0.5},
		},
		YAxis: chart.YAxis{
			Name: t.Mode.String(),
		},
		Series: eventSeries(t, ev, cfg),
	}
	if t.Mode == ModePSI {
		graph.YAxis.Range = &chart.ContinuousRange{Min: 0, Max: 100}
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return fmt.Errorf("psiplot: rendering %s: %w", ev.ID, err)
	}

	outFile, err := os.Create(filepath.Join(outDir, safeFilename(ev.ID)+".png"))
	if err != nil {
		return pfx.Err(err)
	}
	if _, err := buffer.WriteTo(outFile); err != nil {
		outFile.Close()
		return pfx.Err(err)
	}

	return outFile.Close()
}

// eventSeries builds one dot series per sample group, plus an invisible
// baseline series: the chart library refuses to render unless at least one
// series carries two points, and an event can legitimately be NA in every
// sample.
func eventSeries(t *Table, ev Event, cfg []SampleConfig) []chart.Series {
	groups := sampleGroups(t, cfg)

	var series []chart.Series
	for _, g := range groups {
		var xs, ys []float64
		for _, si := range g.samples {
			if v := ev.Values[si]; !math.IsNaN(v) {
				xs = append(xs, float64(si))
				ys = append(ys, v)
			}
		}
		if len(xs) == 0 {
			continue
		}

		series = append(series, chart.ContinuousSeries{
			Name:    g.name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    5,
				DotColor:    g.color,
			},
		})
	}

	series = append(series, chart.ContinuousSeries{
		XValues: []float64{0, float64(len(t.Samples) - 1)},
		YValues: []float64{0, 0},
		Style: chart.Style{
			StrokeColor: chart.ColorTransparent,
			DotColor:    chart.ColorTransparent,
		},
	})

	return series
}

type sampleGroup struct {
	name    string
	color   drawing.Color
	samples []int
}

// sampleGroups maps configured groups onto sample column indices. Without a
// config every sample lands in one default group.
func sampleGroups(t *Table, cfg []SampleConfig) []sampleGroup {
	if len(cfg) == 0 {
		all := sampleGroup{name: "samples", color: chart.ColorBlue}
		for i := range t.Samples {
			all.samples = append(all.samples, i)
		}
		return []sampleGroup{all}
	}

	index := make(map[string]int, len(t.Samples))
	for i, s := range t.Samples {
		index[s] = i
	}

	var groups []sampleGroup
	byName := make(map[string]int)
	for _, c := range cfg {
		si, ok := index[c.SampleName]
		if !ok {
			continue
		}

		gi, ok := byName[c.GroupName]
		if !ok {
			gi = len(groups)
			byName[c.GroupName] = gi
			groups = append(groups, sampleGroup{
				name:  c.GroupName,
				color: c.Color(chart.ColorBlue),
			})
		}
		groups[gi].samples = append(groups[gi].samples, si)
	}

	return groups
}

// safeFilename keeps event IDs usable as file names.
func safeFilename(id string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '_'
		}
		return r
	}, id)
}
