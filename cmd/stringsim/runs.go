package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/stringsim/internal/analysis"
	"github.com/san-kum/stringsim/internal/config"
	"github.com/san-kum/stringsim/internal/sim"
	"github.com/san-kum/stringsim/internal/storage"
)

const plotWidth = 80

var harmonicCount int

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE: func(cmd *cobra.Command, args []string) error {
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
			fmt.Fprintln(w, "ID\tTIME\tF1\tMODES\tPLUCK\tDURATION\tDT")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%.1fhz\t%d\t%.2f\t%.2fs\t%.1es\n",
					run.ID,
					run.Timestamp.Format("2006-01-02 15:04:05"),
					run.Fundamental,
					run.Modes,
					run.PluckPosition,
					run.Duration,
					run.Dt,
				)
			}
			return w.Flush()
		},
	}
}

func loadTrace(runID string) (*storage.RunMetadata, []sim.Sample, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(trace) == 0 {
		return nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, trace, nil
}

func newPlotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the probe, pickup and energy traces of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, trace, err := loadTrace(args[0])
			if err != nil {
				return err
			}
			result := &sim.Result{Samples: trace}
			energy := make([]float64, len(trace))
			for i, s := range trace {
				energy[i] = s.Energy
			}

			fmt.Printf("run: %s\n", meta.ID)
			fmt.Printf("f1: %.2f hz, samples: %d\n\n", meta.Fundamental, len(trace))

			series := []struct {
				caption string
				data    []float64
			}{
				{"displacement at probe (m)", result.ProbeSignal()},
				{"pickup velocity (m/s)", result.PickupSignal()},
				{"modal energy (J)", energy},
			}
			for _, s := range series {
				graph := asciigraph.Plot(analysis.Downsample(s.data, 4*plotWidth),
					asciigraph.Height(10),
					asciigraph.Width(plotWidth),
					asciigraph.Caption(s.caption),
				)
				fmt.Println(graph)
				fmt.Println()
			}
			return nil
		},
	}
}

func newSpectrumCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spectrum [run_id]",
		Short: "frequency analysis of the pickup signal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, trace, err := loadTrace(args[0])
			if err != nil {
				return err
			}
			if meta.Dt <= 0 {
				return fmt.Errorf("run %s has no timestep", meta.ID)
			}
			result := &sim.Result{Samples: trace}
			spec, err := analysis.NewSpectrum(result.PickupSignal(), 1/meta.Dt)
			if err != nil {
				return err
			}

			// show up to just past the last requested harmonic
			upper := int(float64(harmonicCount+1)*meta.Fundamental/spec.Resolution) + 1
			upper = min(max(upper, 2), len(spec.Mags))
			graph := asciigraph.Plot(analysis.Downsample(spec.Mags[:upper], 4*plotWidth),
				asciigraph.Height(15),
				asciigraph.Width(plotWidth),
				asciigraph.Caption(fmt.Sprintf("pickup spectrum, 0-%.0f hz", spec.Frequency(upper-1))),
			)
			fmt.Printf("spectrum: %s\n\n", meta.ID)
			fmt.Println(graph)
			fmt.Println()

			f, mag := spec.Dominant()
			fmt.Printf("dominant frequency: %.2f hz (magnitude %.3g)\n", f, mag)
			fmt.Printf("expected f1: %.2f hz, resolution %.2f hz\n\n", meta.Fundamental, spec.Resolution)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "N\tFREQ (HZ)\tRELATIVE")
			for i, rel := range spec.Harmonics(meta.Fundamental, harmonicCount) {
				fmt.Fprintf(w, "%d\t%.1f\t%.3f\t%s\n", i+1, float64(i+1)*meta.Fundamental, rel, bar(rel, 20))
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&harmonicCount, "harmonics", 8, "harmonics to report")
	return cmd
}

func newExportCSVCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run trace to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, trace, err := loadTrace(args[0])
			if err != nil {
				return err
			}
			return storage.WriteTrace(os.Stdout, trace)
		},
	}
}

func newExportJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a whole run to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, trace, err := loadTrace(args[0])
			if err != nil {
				return err
			}
			modes, err := storage.New(dataDir).LoadModes(args[0])
			if err != nil {
				return err
			}
			return storage.ExportJSON(os.Stdout, *meta, modes, trace)
		},
	}
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [instrument]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			instruments := config.Instruments()
			if len(args) == 1 {
				if config.ListPresets(args[0]) == nil {
					return fmt.Errorf("no presets for instrument: %s (available: %v)", args[0], instruments)
				}
				instruments = args
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tF1 (HZ)\tLENGTH\tTENSION\tMODES")
			for _, inst := range instruments {
				for _, name := range config.ListPresets(inst) {
					cfg := config.GetPreset(inst, name)
					p, err := cfg.Params()
					if err != nil {
						return err
					}
					fmt.Fprintf(w, "%s/%s\t%.2f\t%.3fm\t%.1fN\t%d\n", inst, name, p.Fundamental(), p.Length(), p.Tension(), p.Modes())
				}
			}
			return w.Flush()
		},
	}
}

func newInitConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}
}
