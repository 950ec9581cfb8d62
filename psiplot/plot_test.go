package psiplot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPlotWritesOneImagePerEvent(t *testing.T) {
	tab, err := ReadTable(strings.NewReader(psiTable), '\t', ModePSI)
	if err != nil {
		t.Fatal(err)
	}

	outDir := filepath.Join(t.TempDir(), "plots")
	if err := Plot(tab, nil, PlotOptions{OutputDir: outDir}); err != nil {
		t.Fatal(err)
	}

	// Event 2 is NA in every sample and must still produce a chart.
	for _, name := range []string{"HsaEX0001.png", "HsaEX0002.png"} {
		fi, err := os.Stat(filepath.Join(outDir, name))
		if err != nil {
			t.Fatalf("missing plot %s: %v", name, err)
		}
		if fi.Size() == 0 {
			t.Errorf("plot %s is empty", name)
		}
	}
}

func TestPlotMaxEventsGuard(t *testing.T) {
	tab, err := ReadTable(strings.NewReader(psiTable), '\t', ModePSI)
	if err != nil {
		t.Fatal(err)
	}

	outDir := filepath.Join(t.TempDir(), "plots")
	err = Plot(tab, nil, PlotOptions{OutputDir: outDir, MaxEvents: 1})
	if err == nil {
		t.Fatal("expected the event-count guard to trip")
	}
	if _, statErr := os.Stat(outDir); !os.IsNotExist(statErr) {
		t.Error("output directory must not be created when the guard trips")
	}
}

func TestSafeFilename(t *testing.T) {
	if got := safeFilename("chr1:100-200/+"); strings.ContainsAny(got, "/:") {
		t.Errorf("safeFilename left path separators in %q", got)
	}
}
