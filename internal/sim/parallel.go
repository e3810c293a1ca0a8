package sim

import (
	"context"
	"sync"

	"github.com/san-kum/planar/internal/metrics"
	"github.com/san-kum/planar/internal/world"
)

// Factory builds a fresh world for one ensemble run. Worlds are not safe
// for concurrent use, so each run gets its own.
type Factory func(run int) (*world.World, error)

// MetricFactory builds fresh metric sets per run for the same reason.
type MetricFactory func() []metrics.Metric

// Ensemble runs the same scene configuration many times in parallel,
// one goroutine per run.
type Ensemble struct {
	factory Factory
	metrics MetricFactory
	numRuns int
}

func NewEnsemble(factory Factory, numRuns int) *Ensemble {
	return &Ensemble{factory: factory, numRuns: numRuns}
}

func (e *Ensemble) WithMetrics(mf MetricFactory) *Ensemble {
	e.metrics = mf
	return e
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			w, err := e.factory(idx)
			if err != nil {
				errs[idx] = err
				return
			}

			runner := NewRunner(w)
			if e.metrics != nil {
				for _, m := range e.metrics() {
					runner.AddMetric(m)
				}
			}

			results[idx], errs[idx] = runner.Run(ctx, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
