// Package binning constructs histogram samples from raw measurements or from
// model expectations, so the pure comparators only ever see validated bins.
package binning

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"rocfit/domain/histogram"
)

// Linear returns n+1 equally spaced edges spanning [min, max].
func Linear(min, max float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("need at least 1 bin, got %d", n)
	}
	if !(min < max) {
		return nil, fmt.Errorf("invalid range [%g, %g]", min, max)
	}

	edges := make([]float64, n+1)
	width := (max - min) / float64(n)
	for i := range edges {
		edges[i] = min + float64(i)*width
	}
	// Guard the last edge against accumulation error so max itself lands in-range
	edges[n] = max
	return edges, nil
}

// AutoRange picks a fill range covering all values. A constant sample gets a
// unit pad on both sides so it still spans a non-empty axis.
func AutoRange(values []float64) (min, max float64, err error) {
	min, err = stats.Min(values)
	if err != nil {
		return 0, 0, fmt.Errorf("auto range: %w", err)
	}
	max, err = stats.Max(values)
	if err != nil {
		return 0, 0, fmt.Errorf("auto range: %w", err)
	}
	if min == max {
		min, max = min-0.5, max+0.5
	}
	return min, max, nil
}

// Fill counts values into the given edges with unit weight each.
func Fill(name string, edges, values []float64) (histogram.Sample, error) {
	return FillWeighted(name, edges, values, nil)
}

// FillWeighted counts values into the given edges. Bins are half-open
// [lo, hi) with the last bin closed on both sides; out-of-range values are
// dropped. A nil weights slice means unit weights.
func FillWeighted(name string, edges, values, weights []float64) (histogram.Sample, error) {
	if len(edges) < 2 {
		return histogram.Sample{}, fmt.Errorf("need at least 2 edges, got %d", len(edges))
	}
	if weights != nil && len(weights) != len(values) {
		return histogram.Sample{}, fmt.Errorf("%d weights for %d values", len(weights), len(values))
	}

	counts := make([]float64, len(edges)-1)
	for i, v := range values {
		bin := locate(edges, v)
		if bin < 0 {
			continue
		}
		if weights == nil {
			counts[bin]++
		} else {
			counts[bin] += weights[i]
		}
	}
	return histogram.New(name, edges, counts)
}

// FromModel evaluates a density model at each bin center, scales by bin width,
// and normalizes the resulting expectation so its total equals norm. Pass
// norm <= 0 to keep the raw center-times-width evaluation unscaled.
func FromModel(name string, edges []float64, model func(x float64) float64, norm float64) (histogram.Sample, error) {
	if len(edges) < 2 {
		return histogram.Sample{}, fmt.Errorf("need at least 2 edges, got %d", len(edges))
	}

	counts := make([]float64, len(edges)-1)
	total := 0.0
	for i := range counts {
		center := (edges[i] + edges[i+1]) / 2
		counts[i] = model(center) * (edges[i+1] - edges[i])
		total += counts[i]
	}

	if norm > 0 {
		if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
			return histogram.Sample{}, fmt.Errorf("model yields no expectation over the given edges")
		}
		scale := norm / total
		for i := range counts {
			counts[i] *= scale
		}
	}
	return histogram.New(name, edges, counts)
}

// locate returns the bin index for v, or -1 when v falls outside the edges.
func locate(edges []float64, v float64) int {
	if math.IsNaN(v) || v < edges[0] || v > edges[len(edges)-1] {
		return -1
	}
	if v == edges[len(edges)-1] {
		return len(edges) - 2
	}
	idx := sort.SearchFloat64s(edges, v)
	if edges[idx] == v {
		// Exactly on an interior edge: half-open bins put it in the right bin
		return idx
	}
	return idx - 1
}
