package fitting

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// Model is a parameterized density shape evaluated at bin centers. Eval must
// return a non-negative density; returning 0 for out-of-domain parameters
// (e.g. a non-positive width) lets the fit driver steer away from them.
type Model interface {
	Eval(x float64, params []float64) float64
	NumParams() int
}

// Gaussian is a normal density with params [mu, sigma].
type Gaussian struct{}

func (Gaussian) NumParams() int { return 2 }

func (Gaussian) Eval(x float64, params []float64) float64 {
	mu, sigma := params[0], params[1]
	if sigma <= 0 {
		return 0
	}
	return distuv.Normal{Mu: mu, Sigma: sigma}.Prob(x)
}

// Exponential is a decay density with params [tau], the mean lifetime.
type Exponential struct{}

func (Exponential) NumParams() int { return 1 }

func (Exponential) Eval(x float64, params []float64) float64 {
	tau := params[0]
	if tau <= 0 || x < 0 {
		return 0
	}
	return distuv.Exponential{Rate: 1 / tau}.Prob(x)
}
