package ir

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// balanceP is the null inclusion probability of the junction-balance test: a
// junction whose weakest measurement carries less than 1/3.5 of the
// min+max read mass is considered imbalanced.
const balanceP = 1 / 3.5

// PIR computes percent intron retention from one junction's counts:
// 100*(EIJ1+EIJ2)/(EIJ1+EIJ2+2*I). A zero denominator means the junction was
// unobserved and yields NaN.
func PIR(c Counts) float64 {
	num := c.EIJ1 + c.EIJ2
	denom := num + 2*c.I
	if denom == 0 {
		return math.NaN()
	}

	return 100 * num / denom
}

// Coverage summarizes read depth at a junction as I plus the median of the
// three junction counts. Any NaN count makes the depth unknowable, not
// merely low, so it propagates.
func Coverage(c Counts) float64 {
	if math.IsNaN(c.EIJ1) || math.IsNaN(c.EIJ2) || math.IsNaN(c.EEJ) || math.IsNaN(c.I) {
		return math.NaN()
	}

	med, err := stats.Median([]float64{c.EIJ1, c.EIJ2, c.EEJ})
	if err != nil {
		return math.NaN()
	}

	return c.I + med
}

// Balance is a one-sided binomial test p-value for whether the three junction
// measurements are mutually consistent. With mn and mx the smallest and
// largest of (EIJ1, EIJ2, EEJ), the test observes round(mn) successes in
// round(mn)+round(mx-mn) trials and asks whether the success fraction is
// below 1/3.5. Zero trials means no evidence of imbalance and is defined as
// p=1. NaN counts yield NaN.
func Balance(c Counts) float64 {
	mn := math.Min(c.EIJ1, math.Min(c.EIJ2, c.EEJ))
	mx := math.Max(c.EIJ1, math.Max(c.EIJ2, c.EEJ))
	if math.IsNaN(mn) || math.IsNaN(mx) {
		return math.NaN()
	}

	successes := math.Round(mn)
	trials := successes + math.Round(mx-mn)
	if trials == 0 {
		return 1
	}

	b := distuv.Binomial{N: trials, P: balanceP}

	return b.CDF(successes)
}
