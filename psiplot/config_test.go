package psiplot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

func TestLoadConfig(t *testing.T) {
	body := "Order\tSampleName\tGroupName\tRGB\n" +
		"2\tBrain\tNeural\t0,0,255\n" +
		"1\tLiver\tDigestive\t255,0,0\n"
	path := filepath.Join(t.TempDir(), "config.tab")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg) != 2 {
		t.Fatalf("parsed %d config rows, expected 2", len(cfg))
	}
	if cfg[0].SampleName != "Liver" || cfg[1].SampleName != "Brain" {
		t.Errorf("config not sorted by Order: %+v", cfg)
	}
	if c := cfg[0].Color(drawing.Color{}); c.R != 255 || c.G != 0 || c.B != 0 || c.A != 255 {
		t.Errorf("Liver color = %+v", c)
	}
}

func TestColorFallback(t *testing.T) {
	fallback := drawing.Color{R: 1, G: 2, B: 3, A: 255}
	for _, rgb := range []string{"", "1,2", "a,b,c", "300,0,0"} {
		c := SampleConfig{RGB: rgb}
		if got := c.Color(fallback); got != fallback {
			t.Errorf("Color(%q) = %+v, expected fallback", rgb, got)
		}
	}
}

func TestReorder(t *testing.T) {
	tab, err := ReadTable(strings.NewReader(psiTable), '\t', ModePSI)
	if err != nil {
		t.Fatal(err)
	}

	cfg := []SampleConfig{
		{Order: 1, SampleName: "Brain", GroupName: "Neural"},
		{Order: 2, SampleName: "Liver", GroupName: "Digestive"},
	}
	if err := tab.Reorder(cfg); err != nil {
		t.Fatal(err)
	}

	if got := strings.Join(tab.Samples, ","); got != "Brain,Liver" {
		t.Fatalf("samples after reorder = %s", got)
	}
	if v := tab.Events[0].Values; v[0] != 12 || v[1] != 85.5 {
		t.Errorf("values after reorder = %v", v)
	}
}

func TestReorderUnknownSample(t *testing.T) {
	tab, err := ReadTable(strings.NewReader(psiTable), '\t', ModePSI)
	if err != nil {
		t.Fatal(err)
	}

	err = tab.Reorder([]SampleConfig{{Order: 1, SampleName: "Kidney"}})
	if err == nil {
		t.Fatal("expected an error for a config sample absent from the table")
	}
}
