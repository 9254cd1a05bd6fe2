// Package fitting drives a nonlinear optimizer over binned data: it minimizes
// the Pearson statistic between the observed sample and a model expectation,
// and hands back exactly what a goodness-of-fit evaluation needs afterwards -
// the fitted expectation and the free-parameter count.
package fitting

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"

	"rocfit/domain/core"
	"rocfit/domain/gof"
	"rocfit/domain/histogram"
	"rocfit/internal/binning"
)

// Outcome is the result of one binned fit.
type Outcome struct {
	Params         []float64
	Expected       histogram.Sample
	FreeParameters int
	Statistic      float64
}

// FitBinned fits model to the observed sample by minimizing the Pearson
// chi-square over the model parameters, starting from initial. The model
// expectation is normalized to the observed total at every evaluation, so the
// fit shapes the distribution rather than its overall scale.
func FitBinned(observed histogram.Sample, model Model, initial []float64) (Outcome, error) {
	if len(initial) != model.NumParams() {
		return Outcome{}, fmt.Errorf("model takes %d parameters, got %d initial values", model.NumParams(), len(initial))
	}
	total := observed.Total()
	if total <= 0 {
		return Outcome{}, core.NewDegenerateSampleError(observed.Name())
	}
	edges := observed.Edges()

	expectation := func(params []float64) (histogram.Sample, error) {
		return binning.FromModel(observed.Name()+"_expected", edges, func(x float64) float64 {
			return model.Eval(x, params)
		}, total)
	}

	objective := func(params []float64) float64 {
		expected, err := expectation(params)
		if err != nil {
			return math.Inf(1)
		}
		res, err := gof.ChiSquare(observed, expected, model.NumParams(), gof.DefaultMinCount)
		if err != nil {
			return math.Inf(1)
		}
		return res.Statistic
	}

	problem := optimize.Problem{Func: objective}
	start := make([]float64, len(initial))
	copy(start, initial)

	result, err := optimize.Minimize(problem, start, nil, &optimize.NelderMead{})
	if err != nil {
		return Outcome{}, fmt.Errorf("minimization failed: %w", err)
	}
	if math.IsInf(result.F, 1) {
		return Outcome{}, fmt.Errorf("minimization never reached the model's valid parameter domain")
	}

	expected, err := expectation(result.X)
	if err != nil {
		return Outcome{}, fmt.Errorf("evaluating fitted expectation: %w", err)
	}

	return Outcome{
		Params:         result.X,
		Expected:       expected,
		FreeParameters: model.NumParams(),
		Statistic:      result.F,
	}, nil
}
