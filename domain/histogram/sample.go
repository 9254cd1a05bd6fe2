package histogram

import (
	"fmt"
	"math"

	"rocfit/domain/core"
)

// Sample pairs ordered bin edges with per-bin counts over a fixed axis.
//
// INVARIANTS:
// - len(counts) == len(edges) - 1
// - edges strictly increasing, all finite
// - counts[i] >= 0 and finite (floats allowed for weighted or model-expected counts)
//
// A Sample is immutable after construction: the constructor copies its inputs
// and accessors return copies, so no caller can alias the internal state.
type Sample struct {
	name   string
	edges  []float64
	counts []float64
}

// New validates and constructs a Sample. The name travels into error messages
// so callers of joint computations can tell which of two samples was rejected.
func New(name string, edges, counts []float64) (Sample, error) {
	if len(edges) < 2 {
		return Sample{}, core.NewInvalidSampleError(name, -1, fmt.Sprintf("need at least 2 bin edges, got %d", len(edges)))
	}
	if len(counts) != len(edges)-1 {
		return Sample{}, core.NewInvalidSampleError(name, -1, fmt.Sprintf("%d counts for %d edges, want %d", len(counts), len(edges), len(edges)-1))
	}
	for i, e := range edges {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return Sample{}, core.NewInvalidSampleError(name, i, "non-finite bin edge")
		}
		if i > 0 && e <= edges[i-1] {
			return Sample{}, core.NewInvalidSampleError(name, i, fmt.Sprintf("edges not strictly increasing: %g after %g", e, edges[i-1]))
		}
	}
	for i, c := range counts {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return Sample{}, core.NewInvalidSampleError(name, i, "non-finite count")
		}
		if c < 0 {
			return Sample{}, core.NewInvalidSampleError(name, i, fmt.Sprintf("negative count %g", c))
		}
	}

	s := Sample{
		name:   name,
		edges:  make([]float64, len(edges)),
		counts: make([]float64, len(counts)),
	}
	copy(s.edges, edges)
	copy(s.counts, counts)
	return s, nil
}

// Name returns the caller-assigned sample name.
func (s Sample) Name() string { return s.name }

// Bins returns the number of bins.
func (s Sample) Bins() int { return len(s.counts) }

// Edges returns a copy of the N+1 bin boundaries.
func (s Sample) Edges() []float64 {
	out := make([]float64, len(s.edges))
	copy(out, s.edges)
	return out
}

// Counts returns a copy of the N per-bin counts.
func (s Sample) Counts() []float64 {
	out := make([]float64, len(s.counts))
	copy(out, s.counts)
	return out
}

// Count returns the count of bin i.
func (s Sample) Count(i int) float64 { return s.counts[i] }

// Total returns the sum of all counts. Derived, never stored.
func (s Sample) Total() float64 {
	total := 0.0
	for _, c := range s.counts {
		total += c
	}
	return total
}

// Centers returns the N bin midpoints, index-aligned with Counts.
func (s Sample) Centers() []float64 {
	centers := make([]float64, len(s.counts))
	for i := range centers {
		centers[i] = (s.edges[i] + s.edges[i+1]) / 2
	}
	return centers
}

// Width returns the width of bin i.
func (s Sample) Width(i int) float64 { return s.edges[i+1] - s.edges[i] }

// SameEdges reports whether both samples share the exact same binning.
// Joint computations require this, not merely equal bin counts.
func (s Sample) SameEdges(other Sample) bool {
	if len(s.edges) != len(other.edges) {
		return false
	}
	for i := range s.edges {
		if s.edges[i] != other.edges[i] {
			return false
		}
	}
	return true
}
