package separation

import (
	"sort"

	"gonum.org/v1/gonum/integrate"

	"rocfit/domain/core"
	"rocfit/domain/histogram"
)

// Point is one threshold position on a ROC curve.
type Point struct {
	FPR float64 `json:"fpr"`
	TPR float64 `json:"tpr"`
}

// Curve is the ROC curve of a signal/background pair, index-aligned with the
// input binning: point i corresponds to the cut "classify as signal iff bin >= i".
// TPR and FPR are non-increasing in index (the threshold tightens rightward).
type Curve []Point

// ComputeROC sweeps a decision threshold across the shared binning of signal
// and background and returns one (FPR, TPR) point per bin index.
//
// The sweep is a single backward suffix-sum pass per sample; rates divide
// against the precomputed totals, so TP+FN and FP+TN match their denominators
// exactly with no independent re-summation drift. Bins that are empty in both
// samples still emit a point, keeping the curve index-aligned with bin centers.
func ComputeROC(signal, background histogram.Sample) (Curve, error) {
	if !signal.SameEdges(background) {
		return nil, core.NewShapeMismatchError(signal.Name(), background.Name(), "ROC sweep requires identical bin edges")
	}

	sigTotal := signal.Total()
	if sigTotal <= 0 {
		return nil, core.NewDegenerateSampleError(signal.Name())
	}
	bkgTotal := background.Total()
	if bkgTotal <= 0 {
		return nil, core.NewDegenerateSampleError(background.Name())
	}

	sig := signal.Counts()
	bkg := background.Counts()

	// Running suffix sums: at index i they hold the counts in bins >= i,
	// i.e. TP (signal kept) and FP (background kept) for that cut.
	curve := make(Curve, len(sig))
	sigAbove, bkgAbove := sigTotal, bkgTotal
	for i := range sig {
		curve[i] = Point{
			FPR: bkgAbove / bkgTotal,
			TPR: sigAbove / sigTotal,
		}
		sigAbove -= sig[i]
		bkgAbove -= bkg[i]
	}
	return curve, nil
}

// AUC reduces the curve to the trapezoidal area under it, integrating over
// points ordered by ascending FPR.
//
// A threshold sweep yields FPR monotone in index (ascending or descending);
// reversing a descending curve preserves its geometry. If the points are not
// FPR-monotone at all - possible only with caller-supplied unsorted bins -
// they are sorted by FPR first and reordered reports true, flagging that the
// integration order no longer matches bin-index alignment.
func (c Curve) AUC() (area float64, reordered bool) {
	if len(c) < 2 {
		return 0, false
	}

	pts := make(Curve, len(c))
	copy(pts, c)

	switch {
	case fprSorted(pts, false):
		// already ascending
	case fprSorted(pts, true):
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	default:
		reordered = true
		sort.SliceStable(pts, func(i, j int) bool { return pts[i].FPR < pts[j].FPR })
	}

	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.FPR
		ys[i] = p.TPR
	}
	return integrate.Trapezoidal(xs, ys), reordered
}

func fprSorted(pts Curve, descending bool) bool {
	for i := 1; i < len(pts); i++ {
		if descending {
			if pts[i].FPR > pts[i-1].FPR {
				return false
			}
		} else if pts[i].FPR < pts[i-1].FPR {
			return false
		}
	}
	return true
}
