package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/stringsim/internal/config"
	"github.com/san-kum/stringsim/internal/fdm"
	"github.com/san-kum/stringsim/internal/integrators"
	"github.com/san-kum/stringsim/internal/metrics"
	"github.com/san-kum/stringsim/internal/sim"
	"github.com/san-kum/stringsim/internal/storage"
	"github.com/san-kum/stringsim/internal/strmode"
)

var (
	runName      string
	sweepSteps   int
	sweepAt      string
	integrator   string
	cflFraction  float64
	compareUntil float64
	checkpoints  int
)

// model is everything a command needs to evaluate the configured pluck.
type model struct {
	cfg   *config.Config
	p     strmode.Params
	g     strmode.Grid
	shape strmode.Shape
	amps  strmode.Amplitudes
}

func buildModel(cmd *cobra.Command) (*model, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	p, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	g := cfg.Grid(p)
	shape, err := cfg.Shape(p, g)
	if err != nil {
		return nil, err
	}
	amps, err := strmode.Decompose(p, g, shape)
	if err != nil {
		return nil, err
	}
	return &model{cfg: cfg, p: p, g: g, shape: shape, amps: amps}, nil
}

func newModesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "print mode frequencies and amplitudes of the configured pluck",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := buildModel(cmd)
			if err != nil {
				return err
			}

			fmt.Printf("wave speed: %.3f m/s\n", m.p.WaveSpeed())
			fmt.Printf("fundamental: %.3f hz\n", m.p.Fundamental())
			fmt.Printf("energy: %.6g J\n\n", strmode.ModalEnergy(m.p, m.amps, 0))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "N\tFREQ (HZ)\tAMPLITUDE (M)\tRELATIVE")
			peak := 0.0
			for _, a := range m.amps {
				peak = math.Max(peak, math.Abs(a))
			}
			for _, row := range storage.ModeTable(m.p, m.amps) {
				rel := 0.0
				if peak > 0 {
					rel = math.Abs(row.Amplitude) / peak
				}
				fmt.Fprintf(w, "%d\t%.2f\t%+.6e\t%s\n", row.N, row.Frequency, row.Amplitude, bar(rel, 20))
			}
			return w.Flush()
		},
	}
}

func bar(frac float64, width int) string {
	n := int(frac*float64(width) + 0.5)
	return strings.Repeat("█", n) + strings.Repeat("·", width-n)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "run a pluck offline and store the trace",
		RunE:  runSimulation,
	}
	cmd.Flags().StringVar(&runName, "name", "", "run name (defaults to the preset name)")
	return cmd
}

// progressLog reports run progress at debug level.
type progressLog struct {
	every int
	step  int
}

func (p *progressLog) OnStep(s sim.Sample) {
	p.step++
	if p.every > 0 && p.step%p.every == 0 {
		slog.Debug("step", "t", s.Time, "energy", s.Energy, "pickup", s.Pickup)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	m, err := buildModel(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	simCfg := m.cfg.SimConfig(m.p)
	s := sim.New(m.p, m.g)
	for _, metric := range metrics.Defaults() {
		s.AddMetric(metric)
	}
	steps := int(simCfg.Duration / simCfg.Dt)
	s.AddObserver(&progressLog{every: max(steps/10, 1)})

	slog.Info("run started", "f1", m.p.Fundamental(), "modes", m.p.Modes(), "dt", simCfg.Dt, "duration", simCfg.Duration)
	start := time.Now()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	result, err := s.Run(ctx, m.shape, simCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	name := runName
	if name == "" {
		name = "run"
		if preset != "" {
			name = strings.ReplaceAll(preset, "/", "-")
		}
	}
	meta := storage.NewMetadata(name, m.p, simCfg, result)
	meta.PluckPosition = m.cfg.Pluck.Position
	meta.PluckHeight = m.cfg.Pluck.Height
	meta.Harmonic = m.cfg.Pluck.Harmonic

	runID, err := st.Save(meta, storage.ModeTable(m.p, m.amps), result)
	if err != nil {
		return err
	}
	slog.Info("run saved", "id", runID, "dir", st.Dir(), "elapsed", elapsed)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	if result.Stopped {
		fmt.Printf("stopped at ceiling (%.2fs)\n", simCfg.Ceiling)
	}
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(values map[string]float64) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, values[name])
	}
}

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "compare pluck positions along the string",
		RunE:  runSweep,
	}
	cmd.Flags().IntVar(&sweepSteps, "steps", 9, "evenly spaced pluck positions")
	cmd.Flags().StringVar(&sweepAt, "at", "", "comma separated pluck fractions (overrides --steps)")
	return cmd
}

func sweepPositions(length float64) ([]float64, error) {
	var fracs []float64
	if sweepAt != "" {
		for _, f := range strings.Split(sweepAt, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid position %q: %w", f, err)
			}
			fracs = append(fracs, v)
		}
	} else {
		if sweepSteps < 1 {
			return nil, fmt.Errorf("--steps must be at least 1")
		}
		for i := 1; i <= sweepSteps; i++ {
			fracs = append(fracs, float64(i)/float64(sweepSteps+1))
		}
	}

	positions := make([]float64, len(fracs))
	for i, f := range fracs {
		positions[i] = f * length
	}
	return positions, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	m, err := buildModel(cmd)
	if err != nil {
		return err
	}
	positions, err := sweepPositions(m.p.Length())
	if err != nil {
		return err
	}

	simCfg := m.cfg.SimConfig(m.p)
	slog.Info("sweep started", "positions", len(positions))
	points, err := sim.Sweep(cmd.Context(), m.p, m.g, positions, m.cfg.Pluck.Height, simCfg, metrics.Defaults)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLUCK\tA1\tA2\tA3\tPICKUP RMS\tT60")
	for _, pt := range points {
		a := pt.Amplitudes
		fmt.Fprintf(w, "%.3f\t%+.2e\t%+.2e\t%+.2e\t%.4g\t%.3fs\n",
			pt.Position/m.p.Length(), a.Mode(1), a.Mode(2), a.Mode(3),
			pt.Result.Metrics["pickup_rms"], pt.Result.Metrics["t60"])
	}
	return w.Flush()
}

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "check the modal solution against a finite-difference solver",
		RunE:  runCompare,
	}
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", fmt.Sprintf("integrator %v", integrators.Names()))
	cmd.Flags().Float64Var(&cflFraction, "cfl", 0.5, "finite-difference timestep as a fraction of dx/c")
	cmd.Flags().Float64Var(&compareUntil, "until", 0.01, "simulated time to compare over (s)")
	cmd.Flags().IntVar(&checkpoints, "checkpoints", 5, "number of comparison points")
	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	m, err := buildModel(cmd)
	if err != nil {
		return err
	}
	integ, err := integrators.ByName(integrator)
	if err != nil {
		return err
	}
	if cflFraction <= 0 || compareUntil <= 0 || checkpoints < 1 {
		return fmt.Errorf("--cfl, --until and --checkpoints must be positive")
	}

	str := fdm.NewString(m.p, m.g.Len(), fdm.MatchDamping(m.p))
	x, err := str.Initial(m.shape)
	if err != nil {
		return err
	}
	step := cflFraction * str.StableDt()
	xs := m.g.Positions()
	slog.Info("compare started", "integrator", integrator, "nodes", str.Nodes(), "dt", step)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tMAX |Δy|\tRMS Δy\tRELATIVE\tE MODAL\tE FDM")
	prev := 0.0
	for i := 1; i <= checkpoints; i++ {
		t := compareUntil * float64(i) / float64(checkpoints)
		x, err = fdm.Simulate(str, integ, x, step, t-prev)
		if err != nil {
			return err
		}
		prev = t

		fd := str.Displacement(x)
		modal := strmode.Displacement(m.p, m.amps, t, xs)
		maxDiff, sumSq := 0.0, 0.0
		for j := range fd {
			d := fd[j] - modal[j]
			maxDiff = math.Max(maxDiff, math.Abs(d))
			sumSq += d * d
		}
		rel := 0.0
		if h := m.shape.Peak(); h > 0 {
			rel = maxDiff / h
		}
		fmt.Fprintf(w, "%.5fs\t%.3e\t%.3e\t%.2f%%\t%.4g\t%.4g\n",
			t, maxDiff, math.Sqrt(sumSq/float64(len(fd))), 100*rel,
			strmode.ModalEnergy(m.p, m.amps, t), str.Energy(x))
	}
	return w.Flush()
}
