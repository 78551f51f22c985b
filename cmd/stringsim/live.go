package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/stringsim/internal/sim"
	"github.com/san-kum/stringsim/internal/viz"
)

var (
	frameRate int
	theme     string
	timeScale float64
)

func addLiveFlags(cmd *cobra.Command) {
	def := viz.DefaultOptions()
	cmd.Flags().IntVar(&frameRate, "fps", def.FPS, "frame rate")
	cmd.Flags().StringVar(&theme, "theme", def.Theme, "colour theme")
	cmd.Flags().Float64Var(&timeScale, "scale", def.TimeScale, "simulated seconds per wall second")
}

func newLiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "live",
		Short: "pluck the string interactively in the terminal",
		RunE:  runLive,
	}
	addLiveFlags(cmd)
	return cmd
}

func runLive(cmd *cobra.Command, args []string) error {
	m, err := buildModel(cmd)
	if err != nil {
		return err
	}

	player := newPlayer(m)

	opts := viz.Options{
		FPS:       m.cfg.View.FrameRate,
		Theme:     m.cfg.View.Theme,
		Pluck:     m.cfg.Pluck.Position,
		Height:    m.cfg.Pluck.Height,
		Pickup:    m.cfg.Pickup.Position,
		TimeScale: timeScale,
	}
	if cmd.Flags().Changed("fps") {
		opts.FPS = frameRate
	}
	if cmd.Flags().Changed("theme") {
		opts.Theme = theme
	}

	p := tea.NewProgram(viz.NewModel(player, opts))
	_, err = p.Run()
	return err
}

// newPlayer builds the live player. A ceiling of zero keeps it ringing.
func newPlayer(m *model) *sim.Player {
	player := sim.NewPlayer(m.p, m.g)
	player.SetCeiling(m.cfg.Run.Ceiling)
	return player
}
