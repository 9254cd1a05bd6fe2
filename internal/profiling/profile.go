// Package profiling screens raw measurement samples before binning: summary
// moments, shape, outlier load, and a coarse normality check.
package profiling

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Report summarizes one raw sample. Created fresh per Profile call.
type Report struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`

	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"` // excess kurtosis: 0 for a normal sample

	OutlierCount int     `json:"outlier_count"`
	NormalP      float64 `json:"normal_p"`
	LooksNormal  bool    `json:"looks_normal"`
}

// Profile computes the full report for a raw sample.
func Profile(values []float64) (Report, error) {
	if len(values) < 3 {
		return Report{}, fmt.Errorf("need at least 3 values to profile, got %d", len(values))
	}

	r := Report{N: len(values)}

	var err error
	if r.Mean, err = stats.Mean(values); err != nil {
		return Report{}, err
	}
	if r.StdDev, err = stats.StandardDeviation(values); err != nil {
		return Report{}, err
	}
	if r.Min, err = stats.Min(values); err != nil {
		return Report{}, err
	}
	if r.Max, err = stats.Max(values); err != nil {
		return Report{}, err
	}
	if r.Median, err = stats.Median(values); err != nil {
		return Report{}, err
	}
	if r.Q25, err = stats.Percentile(values, 25); err != nil {
		return Report{}, err
	}
	if r.Q75, err = stats.Percentile(values, 75); err != nil {
		return Report{}, err
	}

	r.Skewness, r.Kurtosis = shapeMoments(values, r.Mean, r.StdDev)
	r.OutlierCount = countOutliers(values, r.Q25, r.Q75)
	r.NormalP = normalTail(r.Skewness, r.Kurtosis)
	r.LooksNormal = r.NormalP > 0.05

	return r, nil
}

// shapeMoments returns sample skewness and excess kurtosis. A zero-variance
// sample has no defined shape; both moments report 0.
func shapeMoments(values []float64, mean, stdDev float64) (skew, kurt float64) {
	if stdDev == 0 {
		return 0, 0
	}

	n := float64(len(values))
	var m3, m4 float64
	for _, v := range values {
		z := (v - mean) / stdDev
		z3 := z * z * z
		m3 += z3
		m4 += z3 * z
	}
	return m3 / n, m4/n - 3
}

// countOutliers applies the 1.5-IQR fence.
func countOutliers(values []float64, q25, q75 float64) int {
	iqr := q75 - q25
	lo := q25 - 1.5*iqr
	hi := q75 + 1.5*iqr

	count := 0
	for _, v := range values {
		if v < lo || v > hi {
			count++
		}
	}
	return count
}

// normalTail screens for normality from the shape moments alone: under
// normality both vanish, so their combined squared magnitude behaves roughly
// like a chi-square with 2 degrees of freedom. A coarse screen, not a
// substitute for a proper Shapiro-Wilk or Anderson-Darling test.
func normalTail(skew, kurt float64) float64 {
	stat := math.Abs(skew) + math.Abs(kurt)/2
	dist := distuv.ChiSquared{K: 2}
	return dist.Survival(stat * stat)
}
