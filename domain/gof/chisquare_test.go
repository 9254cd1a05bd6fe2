package gof

import (
	"math"
	"testing"

	"rocfit/domain/core"
	"rocfit/domain/histogram"
)

func mustSample(t *testing.T, name string, edges, counts []float64) histogram.Sample {
	t.Helper()
	s, err := histogram.New(name, edges, counts)
	if err != nil {
		t.Fatalf("building sample %s: %v", name, err)
	}
	return s
}

func linearEdges(n int) []float64 {
	edges := make([]float64, n+1)
	for i := range edges {
		edges[i] = float64(i)
	}
	return edges
}

func TestChiSquareSelfFitIsExactlyZero(t *testing.T) {
	counts := []float64{5, 12, 30, 12, 5}
	observed := mustSample(t, "observed", linearEdges(5), counts)
	expected := mustSample(t, "expected", linearEdges(5), counts)

	res, err := ChiSquare(observed, expected, 0, DefaultMinCount)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Statistic != 0.0 {
		t.Errorf("expected statistic exactly 0, got %g", res.Statistic)
	}
	if res.TailProbability != 1.0 {
		t.Errorf("expected tail probability 1, got %g", res.TailProbability)
	}
	if res.BinsUsed != 5 || res.DegreesOfFreedom != 5 {
		t.Errorf("expected 5 bins used and 5 dof, got %d and %d", res.BinsUsed, res.DegreesOfFreedom)
	}
}

func TestChiSquareKnownStatistic(t *testing.T) {
	observed := mustSample(t, "observed", linearEdges(2), []float64{10, 20})
	expected := mustSample(t, "expected", linearEdges(2), []float64{12, 18})

	res, err := ChiSquare(observed, expected, 0, DefaultMinCount)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// (10-12)^2/10 + (20-18)^2/20 = 0.4 + 0.2
	if math.Abs(res.Statistic-0.6) > 1e-12 {
		t.Errorf("expected statistic 0.6, got %g", res.Statistic)
	}
	// Survival of chi-square with k=2 is exp(-x/2)
	want := math.Exp(-0.3)
	if math.Abs(res.TailProbability-want) > 1e-9 {
		t.Errorf("expected tail probability %g, got %g", want, res.TailProbability)
	}
}

func TestChiSquareDegreesOfFreedomBookkeeping(t *testing.T) {
	counts := make([]float64, 10)
	for i := range counts {
		counts[i] = float64(10 + i)
	}
	observed := mustSample(t, "observed", linearEdges(10), counts)
	expected := mustSample(t, "expected", linearEdges(10), counts)

	res, err := ChiSquare(observed, expected, 3, DefaultMinCount)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.BinsUsed != 10 {
		t.Errorf("expected 10 bins used, got %d", res.BinsUsed)
	}
	if res.DegreesOfFreedom != 7 {
		t.Errorf("expected 7 degrees of freedom, got %d", res.DegreesOfFreedom)
	}
}

func TestChiSquareSkipsBinsAtOrBelowMinCount(t *testing.T) {
	observed := mustSample(t, "observed", linearEdges(5), []float64{0, 2, 50, 2, 0})
	expected := mustSample(t, "expected", linearEdges(5), []float64{1, 2, 48, 2, 1})

	res, err := ChiSquare(observed, expected, 0, DefaultMinCount)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.BinsUsed != 3 {
		t.Errorf("default rule: expected 3 bins used, got %d", res.BinsUsed)
	}

	res, err = ChiSquare(observed, expected, 0, 5.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.BinsUsed != 1 {
		t.Errorf("minCount 5: expected 1 bin used, got %d", res.BinsUsed)
	}
	// Only the central bin contributes: (50-48)^2/50
	if math.Abs(res.Statistic-0.08) > 1e-12 {
		t.Errorf("expected statistic 0.08, got %g", res.Statistic)
	}
}

func TestChiSquareInsufficientDegreesOfFreedom(t *testing.T) {
	counts := make([]float64, 8)
	for i := range counts {
		counts[i] = 5
	}
	observed := mustSample(t, "observed", linearEdges(8), counts)
	expected := mustSample(t, "expected", linearEdges(8), counts)

	_, err := ChiSquare(observed, expected, 12, DefaultMinCount)
	if !core.IsInsufficientDOF(err) {
		t.Errorf("expected ErrInsufficientDOF, got %v", err)
	}
}

func TestChiSquareZeroDegreesOfFreedomIsValid(t *testing.T) {
	observed := mustSample(t, "observed", linearEdges(2), []float64{10, 20})

	// Perfect agreement at dof 0: tail probability stays 1
	res, err := ChiSquare(observed, observed, 2, DefaultMinCount)
	if err != nil {
		t.Fatalf("dof 0 must not be an error: %v", err)
	}
	if res.DegreesOfFreedom != 0 || res.TailProbability != 1.0 {
		t.Errorf("expected dof 0 with tail 1, got dof %d tail %g", res.DegreesOfFreedom, res.TailProbability)
	}

	// Any discrepancy at dof 0 exhausts the tail
	expected := mustSample(t, "expected", linearEdges(2), []float64{12, 18})
	res, err = ChiSquare(observed, expected, 2, DefaultMinCount)
	if err != nil {
		t.Fatalf("dof 0 must not be an error: %v", err)
	}
	if res.TailProbability != 0.0 {
		t.Errorf("expected tail 0 for positive statistic at dof 0, got %g", res.TailProbability)
	}
}

func TestChiSquareRejectsBadPreconditions(t *testing.T) {
	observed := mustSample(t, "observed", linearEdges(2), []float64{10, 20})
	shifted := mustSample(t, "shifted", []float64{0, 1, 3}, []float64{10, 20})

	if _, err := ChiSquare(observed, shifted, 0, DefaultMinCount); !core.IsShapeMismatch(err) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
	if _, err := ChiSquare(observed, observed, -1, DefaultMinCount); err == nil {
		t.Error("negative free parameter count must be rejected")
	}
}

func TestContributionsIndexAligned(t *testing.T) {
	observed := mustSample(t, "observed", linearEdges(3), []float64{0, 10, 20})
	expected := mustSample(t, "expected", linearEdges(3), []float64{2, 10, 25})

	contribs := Contributions(observed, expected, DefaultMinCount)
	if len(contribs) != 3 {
		t.Fatalf("expected 3 contributions, got %d", len(contribs))
	}
	if contribs[0].Included || contribs[0].Value != 0 {
		t.Errorf("empty bin must be excluded with zero value: %+v", contribs[0])
	}
	if !contribs[1].Included || contribs[1].Value != 0 {
		t.Errorf("exact bin must be included with zero value: %+v", contribs[1])
	}
	if math.Abs(contribs[2].Value-1.25) > 1e-12 {
		t.Errorf("expected contribution 1.25, got %g", contribs[2].Value)
	}
}
