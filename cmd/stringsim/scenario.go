package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/stringsim/internal/scenario"
	"github.com/san-kum/stringsim/internal/storage"
)

func newScenarioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenario [file]",
		Short: "run and store every step of a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			st := storage.New(dataDir)
			if err := st.Init(); err != nil {
				return err
			}

			slog.Info("scenario started", "name", sc.Name, "steps", len(sc.Steps))
			results, runErr := scenario.Run(cmd.Context(), sc)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STEP\tRUN ID\tF1\tPICKUP RMS\tT60")
			for _, r := range results {
				meta := storage.NewMetadata(r.Name, r.Params, r.SimConfig, r.Result)
				meta.PluckPosition = r.Config.Pluck.Position
				meta.PluckHeight = r.Config.Pluck.Height
				meta.Harmonic = r.Config.Pluck.Harmonic
				runID, err := st.Save(meta, storage.ModeTable(r.Params, r.Amplitudes), r.Result)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%.2fhz\t%.4g\t%.3fs\n", r.Name, runID, r.Params.Fundamental(),
					r.Result.Metrics["pickup_rms"], r.Result.Metrics["t60"])
			}
			if err := w.Flush(); err != nil {
				return err
			}
			return runErr
		},
	}
}
