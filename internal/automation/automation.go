// Package automation runs scripted batches of scenes headlessly.
package automation

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/planar/internal/config"
	"github.com/san-kum/planar/internal/metrics"
	"github.com/san-kum/planar/internal/scene"
	"github.com/san-kum/planar/internal/sim"
)

// Scenario defines a scripted simulation sequence.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep runs one scene. Scene is a preset name or a yaml scene
// file path; Dt and Duration of zero fall back to the scene's own values.
type ScenarioStep struct {
	Scene    string  `yaml:"scene"`
	Dt       float64 `yaml:"dt"`
	Duration float64 `yaml:"duration"`
}

// StepResult pairs a step with its run output.
type StepResult struct {
	Scene  string
	Config sim.Config
	Result *sim.Result
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", path)
	}
	return &scenario, nil
}

// RunScenario executes every step in order, with the standard metric set
// attached to each run.
func RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := scene.FromPresetOrFile(step.Scene)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		w, err := scene.Build(cfg)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		runCfg := sim.Config{Dt: cfg.Dt, Duration: cfg.Duration}
		if step.Dt > 0 {
			runCfg.Dt = step.Dt
		}
		if step.Duration > 0 {
			runCfg.Duration = step.Duration
		}

		runner := sim.NewRunner(w)
		runner.AddMetric(metrics.NewKineticEnergy())
		runner.AddMetric(metrics.NewMomentum())
		runner.AddMetric(metrics.NewMaxSpeed())

		result, err := runner.Run(ctx, runCfg)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Scene: step.Scene, Config: runCfg, Result: result})
	}

	return results, nil
}

// Sweep reruns one scene while varying a single body's mass, reporting
// the standard metrics per value. Useful for quick stability studies.
type Sweep struct {
	Scene    string
	Body     int
	MassMin  float64
	MassMax  float64
	NumSteps int
	Dt       float64
	Duration float64
}

type SweepResult struct {
	Mass    float64
	Metrics map[string]float64
}

func RunSweep(ctx context.Context, sweep *Sweep) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}

	base, err := scene.FromPresetOrFile(sweep.Scene)
	if err != nil {
		return nil, err
	}
	if sweep.Body < 0 || sweep.Body >= len(base.Bodies) {
		return nil, fmt.Errorf("sweep body %d out of range", sweep.Body)
	}
	if base.Bodies[sweep.Body].Pinned {
		return nil, fmt.Errorf("sweep body %d is pinned", sweep.Body)
	}

	runCfg := sim.Config{Dt: base.Dt, Duration: base.Duration}
	if sweep.Dt > 0 {
		runCfg.Dt = sweep.Dt
	}
	if sweep.Duration > 0 {
		runCfg.Duration = sweep.Duration
	}

	massStep := (sweep.MassMax - sweep.MassMin) / float64(sweep.NumSteps-1)
	results := make([]SweepResult, 0, sweep.NumSteps)

	for i := 0; i < sweep.NumSteps; i++ {
		mass := sweep.MassMin + float64(i)*massStep

		cfg := cloneConfig(base)
		cfg.Bodies[sweep.Body].Mass = mass

		w, err := scene.Build(cfg)
		if err != nil {
			return results, fmt.Errorf("mass %.3f: %w", mass, err)
		}

		runner := sim.NewRunner(w)
		runner.AddMetric(metrics.NewKineticEnergy())
		runner.AddMetric(metrics.NewMaxSpeed())

		result, err := runner.Run(ctx, runCfg)
		if err != nil {
			return results, fmt.Errorf("mass %.3f: %w", mass, err)
		}

		results = append(results, SweepResult{Mass: mass, Metrics: result.Metrics})
	}

	return results, nil
}

func cloneConfig(cfg *config.Config) *config.Config {
	cp := *cfg
	cp.Bodies = append([]config.BodyConfig(nil), cfg.Bodies...)
	cp.Rods = append([]config.RodConfig(nil), cfg.Rods...)
	return &cp
}
