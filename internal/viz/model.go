package viz

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/stringsim/internal/sim"
	"github.com/san-kum/stringsim/internal/strmode"
)

const (
	defaultCols = 72
	canvasRows  = 8
	cursorStep  = 0.02
	pickupStep  = 0.05
	maxHarmonic = 8
	dampingStep = 0.005
	maxDamping  = 0.2
	maxModes    = 64
	tensionStep = 1.1
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	frameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
)

type tickMsg time.Time

type Options struct {
	FPS       int
	Theme     string
	Pluck     float64 // fraction of the length
	Height    float64
	Pickup    float64 // fraction of the length
	TimeScale float64 // simulated seconds per wall second
}

func DefaultOptions() Options {
	return Options{FPS: 30, Theme: "cyberpunk", Pluck: 0.2, Height: 0.005, Pickup: 0.1, TimeScale: 0.01}
}

// Model is the Bubble Tea model for the live view.
type Model struct {
	player *sim.Player
	frame  []float64
	canvas *Canvas

	keys   keyMap
	help   help.Model
	energy progress.Model
	meter  progress.Model

	spring             harmonica.Spring
	meterPos, meterVel float64

	opts        Options
	theme       int
	maxHeight   float64
	harmonic    int
	pluckEnergy float64
	status      string
}

func NewModel(player *sim.Player, opts Options) Model {
	def := DefaultOptions()
	if opts.FPS <= 0 {
		opts.FPS = def.FPS
	}
	if opts.TimeScale <= 0 {
		opts.TimeScale = def.TimeScale
	}
	if opts.Height == 0 {
		opts.Height = def.Height
	}
	if opts.Pluck <= 0 || opts.Pluck >= 1 {
		opts.Pluck = def.Pluck
	}
	if opts.Pickup <= 0 || opts.Pickup >= 1 {
		opts.Pickup = def.Pickup
	}

	m := Model{
		player:    player,
		frame:     make([]float64, player.Grid().Len()),
		canvas:    NewCanvas(defaultCols, canvasRows),
		keys:      defaultKeys(),
		help:      help.New(),
		spring:    harmonica.NewSpring(harmonica.FPS(opts.FPS), 6.0, 0.6),
		opts:      opts,
		theme:     ThemeIndex(opts.Theme),
		maxHeight: 2 * math.Abs(opts.Height),
	}
	m.applyTheme()
	m.setWidth(defaultCols)
	return m
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setWidth(msg.Width - 4)
		return m, nil

	case tickMsg:
		m.step()
		return m, m.tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Left):
			m.opts.Pluck = math.Max(cursorStep, m.opts.Pluck-cursorStep)
		case key.Matches(msg, m.keys.Right):
			m.opts.Pluck = math.Min(1-cursorStep, m.opts.Pluck+cursorStep)
		case key.Matches(msg, m.keys.Up):
			m.opts.Height = math.Min(m.maxHeight, m.opts.Height+m.maxHeight/10)
		case key.Matches(msg, m.keys.Down):
			m.opts.Height = math.Max(-m.maxHeight, m.opts.Height-m.maxHeight/10)
		case key.Matches(msg, m.keys.Pluck):
			m.harmonic = 0
			m.pluck()
		case key.Matches(msg, m.keys.Harmonic):
			m.harmonic = m.harmonic%min(maxHarmonic, m.player.Params().Modes()) + 1
			m.pluck()
		case key.Matches(msg, m.keys.Play):
			m.togglePlay()
		case key.Matches(msg, m.keys.Reset):
			m.player.Reset()
			m.status = ""
		case key.Matches(msg, m.keys.Pickup):
			m.opts.Pickup += pickupStep
			if m.opts.Pickup >= 1-pickupStep/2 {
				m.opts.Pickup = pickupStep
			}
		case key.Matches(msg, m.keys.Theme):
			m.theme = (m.theme + 1) % len(Themes)
			m.applyTheme()
		case key.Matches(msg, m.keys.DampLess):
			m.retune(func(p strmode.Params) (strmode.Params, error) {
				return p.WithDamping(math.Max(0, p.Damping()-dampingStep))
			})
		case key.Matches(msg, m.keys.DampMore):
			m.retune(func(p strmode.Params) (strmode.Params, error) {
				return p.WithDamping(math.Min(maxDamping, p.Damping()+dampingStep))
			})
		case key.Matches(msg, m.keys.FewerModes):
			m.retune(func(p strmode.Params) (strmode.Params, error) {
				return p.WithModes(max(1, p.Modes()-1))
			})
		case key.Matches(msg, m.keys.MoreModes):
			m.retune(func(p strmode.Params) (strmode.Params, error) {
				return p.WithModes(min(maxModes, p.Modes()+1))
			})
		case key.Matches(msg, m.keys.Slacken):
			m.retune(func(p strmode.Params) (strmode.Params, error) {
				return p.WithTension(p.Tension() / tensionStep)
			})
		case key.Matches(msg, m.keys.Tighten):
			m.retune(func(p strmode.Params) (strmode.Params, error) {
				return p.WithTension(p.Tension() * tensionStep)
			})
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m *Model) step() {
	if m.player.Status() == sim.Running {
		m.player.Advance(m.opts.TimeScale / float64(m.opts.FPS))
	}

	target := 0.0
	if scale := m.velocityScale(); scale > 0 {
		target = math.Min(1, math.Abs(m.pickupVelocity())/scale)
	}
	m.meterPos, m.meterVel = m.spring.Update(m.meterPos, m.meterVel, target)
}

func (m *Model) pluck() {
	p, g := m.player.Params(), m.player.Grid()
	var (
		shape strmode.Shape
		err   error
	)
	if m.harmonic > 0 {
		shape, err = strmode.ModeShape(p, g, m.harmonic, m.opts.Height)
	} else {
		shape, err = strmode.PluckShape(p, g, m.opts.Pluck*p.Length(), m.opts.Height)
	}
	if err == nil {
		err = m.player.Pluck(shape)
	}
	if err != nil {
		m.status = err.Error()
		return
	}
	m.pluckEnergy = m.player.Energy()
	m.status = ""
}

// retune swaps the string constants in place. The current pluck is kept
// and re-decomposed, so the clock keeps running on the new string.
func (m *Model) retune(change func(strmode.Params) (strmode.Params, error)) {
	p, err := change(m.player.Params())
	if err == nil {
		err = m.player.SetParams(p)
	}
	if err != nil {
		m.status = err.Error()
		return
	}
	if amps := m.player.Amplitudes(); amps != nil {
		m.pluckEnergy = strmode.ModalEnergy(p, amps, 0)
	}
	m.status = ""
}

func (m *Model) togglePlay() {
	if m.player.Status() == sim.Running {
		m.player.Pause()
		return
	}
	if err := m.player.Play(); err != nil {
		if errors.Is(err, sim.ErrNotPlucked) {
			m.status = "pluck first (enter)"
		} else {
			m.status = err.Error()
		}
		return
	}
	m.status = ""
}

func (m *Model) pickupVelocity() float64 {
	return m.player.PickupVelocity(m.opts.Pickup * m.player.Params().Length())
}

// velocityScale is the largest pickup speed the current pluck height can
// produce in the fundamental.
func (m *Model) velocityScale() float64 {
	return math.Abs(m.opts.Height) * m.player.Params().AngularFrequency(1)
}

func (m *Model) energyRatio() float64 {
	if m.pluckEnergy <= 0 {
		return 0
	}
	return math.Min(1, m.player.Energy()/m.pluckEnergy)
}

func (m *Model) setWidth(cols int) {
	cols = max(cols, 20)
	m.canvas.Resize(cols, canvasRows)
	m.energy.Width = min(cols-labelStyle.GetWidth(), 50)
	m.meter.Width = m.energy.Width
	m.help.Width = cols
}

func (m *Model) applyTheme() {
	t := Themes[m.theme]
	m.energy = progress.New(progress.WithScaledGradient(t.BarFrom, t.BarTo), progress.WithoutPercentage())
	m.meter = progress.New(progress.WithScaledGradient(t.BarTo, t.BarFrom), progress.WithoutPercentage())
	m.setWidth(m.canvas.Cols())
}

func (m Model) View() string {
	t := Themes[m.theme]
	p := m.player.Params()

	frame := m.player.Frame(m.frame)
	m.canvas.Clear()
	m.canvas.Trace(frame, m.maxHeight)
	w, _ := m.canvas.Dots()
	m.canvas.Column(int(m.opts.Pickup * float64(w-1)))

	var s strings.Builder
	s.WriteString(titleStyle.Foreground(t.Text).Render(fmt.Sprintf("STRING  %.1f Hz", p.Fundamental())) + "\n")
	s.WriteString(frameStyle.BorderForeground(t.Muted).Render(lipgloss.NewStyle().Foreground(t.String).Render(m.canvas.String())) + "\n")
	s.WriteString(m.markers(t) + "\n\n")

	state := strings.ToUpper(m.player.Status().String())
	s.WriteString(labelStyle.Render("State") + lipgloss.NewStyle().Foreground(t.Text).Bold(true).Render(state))
	s.WriteString(fmt.Sprintf("   t=%.4fs   height=%.4fm", m.player.Elapsed(), m.opts.Height))
	if m.harmonic > 0 {
		s.WriteString(fmt.Sprintf("   mode %d", m.harmonic))
	}
	s.WriteString("\n")
	s.WriteString(labelStyle.Render("String") +
		fmt.Sprintf("T=%.0fN   d=%.3f   %d modes", p.Tension(), p.Damping(), p.Modes()) + "\n")
	s.WriteString(labelStyle.Render("Energy") + m.energy.ViewAs(m.energyRatio()) + "\n")
	s.WriteString(labelStyle.Render("Pickup") + m.meter.ViewAs(clampUnit(m.meterPos)) +
		fmt.Sprintf("  %+.3f m/s", m.pickupVelocity()) + "\n")
	if m.status != "" {
		s.WriteString(lipgloss.NewStyle().Foreground(t.Cursor).Render(m.status) + "\n")
	}
	s.WriteString("\n" + m.help.View(m.keys))
	return s.String()
}

// markers draws the pluck cursor and pickup position under the canvas.
func (m Model) markers(t Theme) string {
	cols := m.canvas.Cols()
	row := []rune(strings.Repeat(" ", cols+2))
	at := func(frac float64) int { return 1 + int(frac*float64(cols-1)+0.5) }
	row[at(m.opts.Pickup)] = 'P'
	row[at(m.opts.Pluck)] = '▲'

	var b strings.Builder
	cursor := lipgloss.NewStyle().Foreground(t.Cursor)
	pickup := lipgloss.NewStyle().Foreground(t.Pickup)
	for _, r := range row {
		switch r {
		case '▲':
			b.WriteString(cursor.Render(string(r)))
		case 'P':
			b.WriteString(pickup.Render(string(r)))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func clampUnit(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
