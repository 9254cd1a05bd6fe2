// Package eval batches independent signal/background evaluations. The domain
// computations are synchronous and pure, so the engine's only job is bounded
// fan-out and collecting index-aligned reports.
package eval

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"rocfit/domain/core"
	"rocfit/domain/gof"
	"rocfit/domain/histogram"
	"rocfit/domain/separation"
	"rocfit/internal/profiling"
)

// Pair is one independent evaluation job.
type Pair struct {
	Label      string
	Signal     histogram.Sample
	Background histogram.Sample

	// Optional goodness-of-fit input: the model expectation for the signal
	// sample and how many parameters were fitted to produce it.
	Expected       *histogram.Sample
	FreeParameters int
	MinCount       float64

	// Optional raw signal measurements; when present the report carries a
	// pre-binning profile of them.
	RawSignal []float64
}

// Report is the artifact emitted for one pair.
type Report struct {
	ID        core.ReportID  `json:"id"`
	Label     string         `json:"label"`
	CreatedAt core.Timestamp `json:"created_at"`

	Curve     separation.Curve `json:"curve,omitempty"`
	AUC       float64          `json:"auc"`
	Reordered bool             `json:"reordered"`

	Fit     *gof.Result       `json:"fit,omitempty"`
	Profile *profiling.Report `json:"profile,omitempty"`

	// Err records a per-pair precondition failure; other pairs in the same
	// batch are unaffected.
	Err error `json:"-"`
}

// Engine runs evaluations with bounded concurrency.
type Engine struct {
	sem *semaphore.Weighted
}

// NewEngine creates an engine allowing up to maxConcurrent evaluations in flight.
func NewEngine(maxConcurrent int64) *Engine {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Engine{sem: semaphore.NewWeighted(maxConcurrent)}
}

// EvaluateAll evaluates every pair and returns reports index-aligned with the
// input. Per-pair input errors land in Report.Err; the returned error is
// non-nil only when ctx is cancelled before all work could be admitted.
func (e *Engine) EvaluateAll(ctx context.Context, pairs []Pair) ([]Report, error) {
	reports := make([]Report, len(pairs))
	var wg sync.WaitGroup

	for i := range pairs {
		if err := e.sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer e.sem.Release(1)
			reports[idx] = e.evaluate(pairs[idx])
		}(i)
	}

	wg.Wait()
	return reports, nil
}

// Evaluate runs a single pair synchronously.
func (e *Engine) Evaluate(pair Pair) Report {
	return e.evaluate(pair)
}

func (e *Engine) evaluate(pair Pair) Report {
	report := Report{
		ID:        core.NewReportID(),
		Label:     pair.Label,
		CreatedAt: core.Now(),
	}

	curve, err := separation.ComputeROC(pair.Signal, pair.Background)
	if err != nil {
		report.Err = err
		return report
	}
	report.Curve = curve
	report.AUC, report.Reordered = curve.AUC()

	if pair.Expected != nil {
		res, err := gof.ChiSquare(pair.Signal, *pair.Expected, pair.FreeParameters, pair.MinCount)
		if err != nil {
			report.Err = err
			return report
		}
		report.Fit = &res
	}

	if len(pair.RawSignal) > 0 {
		profile, err := profiling.Profile(pair.RawSignal)
		if err != nil {
			report.Err = err
			return report
		}
		report.Profile = &profile
	}

	return report
}
