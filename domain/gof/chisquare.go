package gof

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"

	"rocfit/domain/core"
	"rocfit/domain/histogram"
)

// DefaultMinCount is the default per-bin inclusion threshold: any bin with a
// strictly positive observed count enters the sum. Callers may raise it to
// exclude sparse bins where the Gaussian approximation behind Pearson's
// statistic breaks down; the right value is domain-dependent, so it is an
// explicit argument, never a hidden constant.
const DefaultMinCount = 0.0

// Result is one goodness-of-fit evaluation, created fresh per call.
//
// INVARIANT: DegreesOfFreedom == BinsUsed - FreeParameters, always >= 0.
type Result struct {
	Statistic        float64 `json:"statistic"`
	BinsUsed         int     `json:"bins_used"`
	FreeParameters   int     `json:"free_parameters"`
	DegreesOfFreedom int     `json:"degrees_of_freedom"`
	TailProbability  float64 `json:"tail_probability"`
}

// Contribution is one bin's share of the Pearson statistic. Excluded bins are
// reported with Included false and Value 0 so diagnostics stay index-aligned.
type Contribution struct {
	Index    int     `json:"index"`
	Observed float64 `json:"observed"`
	Expected float64 `json:"expected"`
	Value    float64 `json:"value"`
	Included bool    `json:"included"`
}

// ChiSquare computes Pearson's chi-square between observed and expected binned
// counts, using the observed count as each bin's variance estimate.
//
// freeParams is required, never defaulted: pass 0 when comparing against a
// known un-fit distribution, or the number of just-fitted parameters otherwise.
// Silently assuming either is the classic source of wrong p-values.
func ChiSquare(observed, expected histogram.Sample, freeParams int, minCount float64) (Result, error) {
	if freeParams < 0 {
		return Result{}, fmt.Errorf("free parameter count must be >= 0, got %d", freeParams)
	}
	if !observed.SameEdges(expected) {
		return Result{}, core.NewShapeMismatchError(observed.Name(), expected.Name(), "chi-square requires identical bin edges")
	}

	statistic := 0.0
	binsUsed := 0
	for _, c := range Contributions(observed, expected, minCount) {
		if !c.Included {
			continue
		}
		statistic += c.Value
		binsUsed++
	}

	dof := binsUsed - freeParams
	if dof < 0 {
		return Result{}, core.NewInsufficientDOFError(binsUsed, freeParams)
	}

	return Result{
		Statistic:        statistic,
		BinsUsed:         binsUsed,
		FreeParameters:   freeParams,
		DegreesOfFreedom: dof,
		TailProbability:  survival(statistic, dof),
	}, nil
}

// Contributions returns the per-bin terms the statistic folds over, one entry
// per bin in index order. A bin is included iff its observed count exceeds
// minCount, which also guarantees a non-zero denominator.
func Contributions(observed, expected histogram.Sample, minCount float64) []Contribution {
	obs := observed.Counts()
	exp := expected.Counts()

	out := make([]Contribution, len(obs))
	for i := range obs {
		c := Contribution{Index: i, Observed: obs[i], Expected: exp[i]}
		if obs[i] > minCount {
			d := obs[i] - exp[i]
			c.Value = d * d / obs[i]
			c.Included = true
		}
		out[i] = c
	}
	return out
}

// survival is the upper-tail probability of the chi-square distribution.
// Zero degrees of freedom is a valid degenerate case: the distribution is a
// point mass at zero, so any positive statistic has no tail mass at all.
func survival(statistic float64, dof int) float64 {
	if dof == 0 {
		if statistic <= 0 {
			return 1
		}
		return 0
	}
	dist := distuv.ChiSquared{K: float64(dof)}
	return dist.Survival(statistic)
}
