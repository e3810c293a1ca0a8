// Package sim runs worlds headlessly for a fixed duration, recording
// frames and metric summaries.
package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/planar/internal/metrics"
	"github.com/san-kum/planar/internal/world"
)

type Config struct {
	Dt       float64
	Duration float64
}

// Observer is called after every step with the fresh snapshot.
type Observer interface {
	OnStep(states []world.BodyState, t float64)
}

type Result struct {
	Frames     [][]world.BodyState
	Rods       [][]world.RodState
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
}

type Runner struct {
	world     *world.World
	metrics   []metrics.Metric
	observers []Observer
}

func NewRunner(w *world.World) *Runner {
	return &Runner{world: w}
}

func (r *Runner) AddMetric(m metrics.Metric) { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer)     { r.observers = append(r.observers, o) }

// Run steps the world for cfg.Duration at fixed cfg.Dt, recording a frame
// after every step plus the initial one. Cancelling the context returns
// the partial result with ctx.Err().
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Frames:  make([][]world.BodyState, 0, steps+1),
		Rods:    make([][]world.RodState, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	t := 0.0
	result.Frames = append(result.Frames, r.world.Bodies())
	result.Rods = append(result.Rods, r.world.Rods())
	result.Times = append(result.Times, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		r.world.Step(cfg.Dt)
		t += cfg.Dt
		result.StepsTaken++

		states := r.world.Bodies()
		for _, m := range r.metrics {
			m.Observe(states, t)
		}
		for _, obs := range r.observers {
			obs.OnStep(states, t)
		}

		result.Frames = append(result.Frames, states)
		result.Rods = append(result.Rods, r.world.Rods())
		result.Times = append(result.Times, t)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
