package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/planar/internal/automation"
	"github.com/san-kum/planar/internal/config"
	"github.com/san-kum/planar/internal/export"
	"github.com/san-kum/planar/internal/metrics"
	"github.com/san-kum/planar/internal/scene"
	"github.com/san-kum/planar/internal/sim"
	"github.com/san-kum/planar/internal/storage"
	"github.com/san-kum/planar/internal/tui"
	"github.com/san-kum/planar/internal/world"
)

var (
	dataDir  string
	dt       float64
	duration float64
	jsonOut  string
	svgOut   string
	// sweep parameters
	sweepBody int
	massMin   float64
	massMax   float64
	numSteps  int
	// ensemble size
	numRuns int
	// trajectory body for svg export
	trailBody int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "planar",
		Short: "2d rigid body sandbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the live view of the drop scene
			return tui.Run(config.GetPreset("drop"))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".planar", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run a scene headless and save the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runScene,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep (0 uses the scene's)")
	runCmd.Flags().Float64Var(&duration, "time", 0, "duration (0 uses the scene's)")
	runCmd.Flags().StringVar(&jsonOut, "json", "", "also dump full frames to a json file")

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "interactive live view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := scene.FromPresetOrFile(args[0])
			if err != nil {
				return err
			}
			return tui.Run(cfg)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot body heights over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [scene]",
		Short: "run a scene and render the final frame to svg",
		Args:  cobra.ExactArgs(1),
		RunE:  renderSVG,
	}
	svgCmd.Flags().Float64Var(&dt, "dt", 0, "timestep (0 uses the scene's)")
	svgCmd.Flags().Float64Var(&duration, "time", 0, "duration (0 uses the scene's)")
	svgCmd.Flags().StringVar(&svgOut, "out", "frame.svg", "output file")
	svgCmd.Flags().IntVar(&trailBody, "trail", -1, "also draw this body's trajectory")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenes",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("%-10s %d bodies, %d rods\n", name, len(p.Bodies), len(p.Rods))
			}
			return nil
		},
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [scene]",
		Short: "rerun a scene across a mass range",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&sweepBody, "body", 1, "index of the body to vary")
	sweepCmd.Flags().Float64Var(&massMin, "mass-min", 0.5, "lowest mass")
	sweepCmd.Flags().Float64Var(&massMax, "mass-max", 4.0, "highest mass")
	sweepCmd.Flags().IntVar(&numSteps, "steps", 8, "number of mass values")
	sweepCmd.Flags().Float64Var(&duration, "time", 0, "duration per run (0 uses the scene's)")

	benchCmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "time parallel runs of a scene",
		Args:  cobra.ExactArgs(1),
		RunE:  benchScene,
	}
	benchCmd.Flags().IntVar(&numRuns, "runs", 8, "parallel runs")
	benchCmd.Flags().Float64Var(&duration, "time", 0, "duration per run (0 uses the scene's)")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, svgCmd, presetsCmd, batchCmd, sweepCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func resolveRunConfig(cfg *config.Config) sim.Config {
	runCfg := sim.Config{Dt: cfg.Dt, Duration: cfg.Duration}
	if dt > 0 {
		runCfg.Dt = dt
	}
	if duration > 0 {
		runCfg.Duration = duration
	}
	return runCfg
}

func runScene(cmd *cobra.Command, args []string) error {
	cfg, err := scene.FromPresetOrFile(args[0])
	if err != nil {
		return err
	}
	w, err := scene.Build(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := sim.NewRunner(w)
	runner.AddMetric(metrics.NewKineticEnergy())
	runner.AddMetric(metrics.NewMomentum())
	runner.AddMetric(metrics.NewMaxSpeed())

	runCfg := resolveRunConfig(cfg)

	fmt.Printf("running %s...\n", cfg.Name)
	start := time.Now()
	result, err := runner.Run(context.Background(), runCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Name, runCfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	if jsonOut != "" {
		if err := export.ResultToJSON(jsonOut, result); err != nil {
			return err
		}
		fmt.Printf("frames written to %s\n", jsonOut)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tDURATION\tDT\tBODIES\tRODS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Bodies,
			run.Rods,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, _, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d\n\n", len(frames))

	// Each body contributes x, y, rot columns; plot the heights.
	for b := 0; b < meta.Bodies; b++ {
		col := b*3 + 1
		data := make([]float64, len(frames))
		for i := range frames {
			if col < len(frames[i]) {
				data[i] = frames[i][col]
			}
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("body %d height", b)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func renderSVG(cmd *cobra.Command, args []string) error {
	cfg, err := scene.FromPresetOrFile(args[0])
	if err != nil {
		return err
	}
	w, err := scene.Build(cfg)
	if err != nil {
		return err
	}

	result, err := sim.NewRunner(w).Run(context.Background(), resolveRunConfig(cfg))
	if err != nil {
		return err
	}

	last := len(result.Frames) - 1
	svg := export.SnapshotToSVG(result.Frames[last], result.Rods[last], 800, 600)
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("frame written to %s\n", svgOut)

	if trailBody >= 0 {
		if trailBody >= len(result.Frames[0]) {
			return fmt.Errorf("trail body %d out of range", trailBody)
		}
		xs := make([]float64, len(result.Frames))
		ys := make([]float64, len(result.Frames))
		for i, frame := range result.Frames {
			xs[i] = frame[trailBody].Position.X
			ys[i] = frame[trailBody].Position.Y
		}
		trailPath := svgOut + ".trail.svg"
		if err := os.WriteFile(trailPath, []byte(export.TrajectoryToSVG(xs, ys, 800, 600, "#00ccff")), 0644); err != nil {
			return err
		}
		fmt.Printf("trajectory written to %s\n", trailPath)
	}

	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}

	results, err := automation.RunScenario(context.Background(), scenario)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENE\tSTEPS\tKINETIC\tMOMENTUM\tMAX SPEED")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%.4f\t%.4f\t%.4f\n",
			r.Scene,
			r.Result.StepsTaken,
			r.Result.Metrics["kinetic_energy"],
			r.Result.Metrics["momentum"],
			r.Result.Metrics["max_speed"],
		)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	sweep := &automation.Sweep{
		Scene:    args[0],
		Body:     sweepBody,
		MassMin:  massMin,
		MassMax:  massMax,
		NumSteps: numSteps,
		Duration: duration,
	}

	results, err := automation.RunSweep(context.Background(), sweep)
	if err != nil {
		return err
	}

	data := make([]float64, len(results))
	for i, r := range results {
		data[i] = r.Metrics["kinetic_energy"]
		fmt.Printf("mass %.3f: kinetic %.4f, max speed %.4f\n",
			r.Mass, r.Metrics["kinetic_energy"], r.Metrics["max_speed"])
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Caption("kinetic energy vs mass"),
	))
	return nil
}

func benchScene(cmd *cobra.Command, args []string) error {
	cfg, err := scene.FromPresetOrFile(args[0])
	if err != nil {
		return err
	}

	factory := func(run int) (*world.World, error) {
		return scene.Build(cfg)
	}

	ensemble := sim.NewEnsemble(factory, numRuns)
	runCfg := resolveRunConfig(cfg)

	start := time.Now()
	results, err := ensemble.Run(context.Background(), runCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	totalSteps := 0
	for _, r := range results {
		totalSteps += r.StepsTaken
	}
	fmt.Printf("%d runs, %d total steps in %v\n", numRuns, totalSteps, elapsed)
	fmt.Printf("%.0f steps/sec\n", float64(totalSteps)/elapsed.Seconds())
	return nil
}
