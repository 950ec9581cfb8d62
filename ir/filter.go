package ir

import "math"

// applyCleanFilter builds the CleanPIR table from RawPIR. A cell survives
// only when its coverage exceeds MinCoverage and its balance p-value is at
// least MinBalance. With RemoveHighPIR set, junction rows whose surviving
// values are all above HighPIR are nulled across every sample: an intron that
// is always retained is indistinguishable from an annotation artifact.
func (t *Tables) applyCleanFilter(cfg Config) {
	nrows := t.Template.Len()

	for si := range t.Samples {
		for row := 0; row < nrows; row++ {
			cov := t.Coverage[si][row]
			bal := t.Balance[si][row]
			if math.IsNaN(cov) || math.IsNaN(bal) || cov <= cfg.MinCoverage || bal < cfg.MinBalance {
				t.CleanPIR[si][row] = math.NaN()
				continue
			}
			t.CleanPIR[si][row] = t.RawPIR[si][row]
		}
	}

	if !cfg.RemoveHighPIR {
		return
	}

	for row := 0; row < nrows; row++ {
		min := math.Inf(1)
		any := false
		for si := range t.Samples {
			if v := t.CleanPIR[si][row]; !math.IsNaN(v) {
				any = true
				if v < min {
					min = v
				}
			}
		}

		// An all-NA row carries no evidence either way and is left alone.
		if !any || min <= cfg.HighPIR {
			continue
		}

		for si := range t.Samples {
			t.CleanPIR[si][row] = math.NaN()
		}
	}
}
