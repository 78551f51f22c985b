package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/stringsim/internal/audio"
	"github.com/san-kum/stringsim/internal/export"
	"github.com/san-kum/stringsim/internal/strmode"
)

var (
	wavPath    string
	svgPath    string
	seconds    float64
	sampleRate int
	svgAt      float64
	svgWidth   int
	svgHeight  int
	svgStroke  string
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "render the pickup signal of the configured pluck to WAV",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := buildModel(cmd)
			if err != nil {
				return err
			}
			rate := m.cfg.Run.SampleRate
			if cmd.Flags().Changed("rate") {
				rate = sampleRate
			}
			pickup := m.cfg.Pickup.Position * m.p.Length()

			data, err := audio.RenderPickup(m.p, m.amps, pickup, rate, seconds)
			if err != nil {
				return err
			}
			if err := audio.WriteWAV(wavPath, data, rate); err != nil {
				return err
			}
			slog.Info("wav written", "path", wavPath, "samples", len(data), "rate", rate)
			fmt.Printf("wrote %s (%.2fs at %d hz, f1 %.2f hz)\n", wavPath, seconds, rate, m.p.Fundamental())
			return nil
		},
	}
	cmd.Flags().StringVarP(&wavPath, "out", "o", "pluck.wav", "output file")
	cmd.Flags().Float64Var(&seconds, "seconds", 2.0, "length of the rendered audio (s)")
	cmd.Flags().IntVar(&sampleRate, "rate", audio.SampleRate, "sample rate (hz)")
	return cmd
}

func newSVGCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "svg",
		Short: "write the string shape at a given time as SVG",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := buildModel(cmd)
			if err != nil {
				return err
			}
			xs := m.g.Positions()
			ys := strmode.Displacement(m.p, m.amps, svgAt, xs)
			svg, err := export.ShapeToSVG(xs, ys, svgWidth, svgHeight, svgStroke)
			if err != nil {
				return err
			}
			if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
				return err
			}
			fmt.Printf("wrote %s (t=%.4fs)\n", svgPath, svgAt)
			return nil
		},
	}
	cmd.Flags().StringVarP(&svgPath, "out", "o", "string.svg", "output file")
	cmd.Flags().Float64Var(&svgAt, "at", 0, "time of the snapshot (s)")
	cmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	cmd.Flags().IntVar(&svgHeight, "height-px", 200, "image height")
	cmd.Flags().StringVar(&svgStroke, "stroke", "#00ffff", "line colour")
	return cmd
}
