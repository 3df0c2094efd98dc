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

	"github.com/avosk/flightsim/internal/analysis"
	"github.com/avosk/flightsim/internal/config"
	"github.com/avosk/flightsim/internal/geomag"
	"github.com/avosk/flightsim/internal/metrics"
	"github.com/avosk/flightsim/internal/models"
	"github.com/avosk/flightsim/internal/pilot"
	"github.com/avosk/flightsim/internal/sim"
	"github.com/avosk/flightsim/internal/storage"
	"github.com/avosk/flightsim/internal/terrain"
	"github.com/avosk/flightsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	duration   float64
	rateHz     float64
	speedup    float64
	seed       int64
	targetAlt  float64
	windSpeed  float64
	windDir    float64
	windTurb   float64
	terrainStr string
	column     string
	stride     int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "flightsim",
		Short: "flight dynamics simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".flightsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [airframe]",
		Short: "fly a simulated mission and record telemetry",
		Args:  cobra.ExactArgs(1),
		RunE:  runFlight,
	}
	addFlightFlags(runCmd)
	runCmd.Flags().IntVar(&stride, "stride", 12, "record every Nth tick")

	liveCmd := &cobra.Command{
		Use:   "live [airframe]",
		Short: "fly with a live terminal cockpit",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addFlightFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a telemetry column",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&column, "column", "alt", "telemetry column")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a telemetry column",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&column, "column", "alt", "telemetry column")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "dump run telemetry as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [airframe]",
		Short: "list presets for an airframe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for airframe: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	airframesCmd := &cobra.Command{
		Use:   "airframes",
		Short: "list available airframes",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range models.List() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd,
		exportCmd, exportCSVCmd, presetsCmd, airframesCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addFlightFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&duration, "time", 30.0, "flight duration seconds")
	cmd.Flags().Float64Var(&rateHz, "rate", 1200.0, "physics rate hz")
	cmd.Flags().Float64Var(&speedup, "speedup", 1.0, "sim time per wall second")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().Float64Var(&targetAlt, "alt", 50.0, "pilot target altitude m")
	cmd.Flags().Float64Var(&windSpeed, "wind-speed", 0, "wind speed m/s")
	cmd.Flags().Float64Var(&windDir, "wind-dir", 0, "wind direction deg")
	cmd.Flags().Float64Var(&windTurb, "wind-turb", 0, "turbulence level")
	cmd.Flags().StringVar(&terrainStr, "terrain", "", "terrain model (flat, rolling)")
}

// buildConfig merges preset, config file and flags into one Config.
func buildConfig(cmd *cobra.Command, airframe string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(airframe, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)",
				preset, config.ListPresets(airframe))
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.Airframe = airframe
	if cmd.Flags().Changed("time") || cfg.Duration <= 0 {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("rate") {
		cfg.RateHz = rateHz
	}
	if cmd.Flags().Changed("speedup") {
		cfg.Speedup = speedup
	}
	if cmd.Flags().Changed("alt") || cfg.TargetAltM <= 0 {
		cfg.TargetAltM = targetAlt
	}
	if cmd.Flags().Changed("wind-speed") {
		cfg.Wind.Speed = windSpeed
	}
	if cmd.Flags().Changed("wind-dir") {
		cfg.Wind.Direction = windDir
	}
	if cmd.Flags().Changed("wind-turb") {
		cfg.Wind.Turbulence = windTurb
	}
	if cmd.Flags().Changed("terrain") {
		cfg.Terrain = terrainStr
	}
	cfg.Seed = seed

	return cfg, nil
}

type printTelemetry struct{}

func (printTelemetry) Notice(msg string) {
	fmt.Fprintf(os.Stderr, "sim: %s\n", msg)
}

// buildVehicle assembles an aircraft, its pilot and its environment from
// a merged configuration.
func buildVehicle(cfg *config.Config) (*sim.Aircraft, sim.Pilot, error) {
	a, err := models.New(cfg.Airframe)
	if err != nil {
		return nil, nil, err
	}

	a.SetParamSource(cfg)
	a.SetSeed(cfg.Seed)
	a.SetGeomag(geomag.NewDipole())
	a.SetTelemetry(printTelemetry{})
	if src, ok := terrain.New(cfg.Terrain); ok {
		a.SetTerrain(src)
	}

	targetAbs := cfg.Origin.Alt + cfg.TargetAltM
	return a, pilot.ForAirframe(cfg.Airframe, targetAbs), nil
}

func runFlight(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	a, p, err := buildVehicle(cfg)
	if err != nil {
		return err
	}

	runner := sim.NewRunner(a, p)
	for _, m := range metrics.Default() {
		runner.AddMetric(m)
	}

	fmt.Printf("flying %s for %.0fs at %.0f Hz\n", cfg.Airframe, cfg.Duration, cfg.RateHz)

	result, err := runner.Run(context.Background(), sim.RunConfig{
		Duration:    time.Duration(cfg.Duration * float64(time.Second)),
		FastForward: !cfg.RealTime,
		BaseInput:   sim.Input{Wind: cfg.WindInput()},
		Stride:      stride,
	})
	if err != nil {
		return err
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(cfg.Airframe, preset, cfg.RateHz, cfg.Duration, cfg.Seed, result)
	if err != nil {
		return err
	}

	fmt.Printf("run saved: %s (%d ticks)\n", runID, result.Ticks)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for name, value := range result.Metrics {
		fmt.Fprintf(w, "  %s\t%.3f\n", name, value)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	cfg.RealTime = true

	a, p, err := buildVehicle(cfg)
	if err != nil {
		return err
	}

	frames := make(chan viz.Frame, 16)
	runner := sim.NewRunner(a, p)
	runner.AddObserver(frameSender{frames})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		defer close(frames)
		_, err := runner.Run(ctx, sim.RunConfig{
			Duration:  time.Duration(cfg.Duration * float64(time.Second)),
			BaseInput: sim.Input{Wind: cfg.WindInput()},
			Stride:    int(cfg.RateHz / 30), // ~30 fps to the cockpit
		})
		errCh <- err
	}()

	if err := viz.RunLive(cfg.Airframe, cfg.Duration, frames); err != nil {
		return err
	}
	cancel()
	if err := <-errCh; err != nil && err != context.Canceled {
		return err
	}
	return nil
}

type frameSender struct {
	frames chan<- viz.Frame
}

func (f frameSender) OnTick(snap sim.Snapshot) {
	frame := viz.Frame{Snap: snap, Elapsed: float64(snap.TimestampUS) * 1e-6}
	select {
	case f.frames <- frame:
	default:
		// cockpit is behind; drop the frame rather than stall physics
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tAIRFRAME\tDURATION\tPRESET\tWHEN")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.0fs\t%s\t%s\n",
			run.ID, run.Airframe, run.Duration, run.Preset,
			run.Timestamp.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	_, values, err := store.Column(args[0], column)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return fmt.Errorf("no samples in run %s", args[0])
	}

	graph := asciigraph.Plot(values,
		asciigraph.Height(15),
		asciigraph.Width(72),
		asciigraph.Caption(fmt.Sprintf("%s · %s", args[0], column)),
	)
	fmt.Println(graph)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	times, values, err := store.Column(args[0], column)
	if err != nil {
		return err
	}
	if len(values) < 4 {
		return fmt.Errorf("not enough samples in run %s", args[0])
	}

	dt := (times[len(times)-1] - times[0]) / float64(len(times)-1)
	freq := analysis.DominantFrequency(values, dt)

	fmt.Printf("column: %s\n", column)
	fmt.Printf("samples: %d at %.4fs spacing\n", len(values), dt)
	if freq == 0 {
		fmt.Println("no dominant oscillation")
		return nil
	}
	fmt.Printf("dominant frequency: %.2f Hz (period %.2fs)\n", freq, 1/freq)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	series, err := store.LoadSeries(args[0])
	if err != nil {
		return err
	}
	times := series["time"]
	if len(times) == 0 {
		return fmt.Errorf("no samples in run %s", args[0])
	}

	cols := []string{"time", "lat", "lng", "alt", "roll", "pitch", "yaw", "vn", "ve", "vd", "airspeed"}
	for i, c := range cols {
		if i > 0 {
			fmt.Print(",")
		}
		fmt.Print(c)
	}
	fmt.Println()
	for i := range times {
		for j, c := range cols {
			if j > 0 {
				fmt.Print(",")
			}
			fmt.Printf("%.6f", series[c][i])
		}
		fmt.Println()
	}
	return nil
}
