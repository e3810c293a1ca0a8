// Package tui is the interactive terminal front end: a live-stepping
// world view with pause, reset, and speed controls.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/planar/internal/config"
	"github.com/san-kum/planar/internal/metrics"
	"github.com/san-kum/planar/internal/scene"
	"github.com/san-kum/planar/internal/viz"
	"github.com/san-kum/planar/internal/world"
)

const (
	canvasWidth     = 70
	canvasHeight    = 20
	historyCapacity = 120
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	canvasStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).MarginTop(1)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model steps a world in real time and renders it on a Braille canvas.
type Model struct {
	cfg      *config.Config
	world    *world.World
	renderer *viz.Renderer

	t       float64
	speed   int
	history []float64

	width, height int
	err           error
}

func NewModel(cfg *config.Config) (*Model, error) {
	w, err := scene.Build(cfg)
	if err != nil {
		return nil, err
	}
	return &Model{
		cfg:      cfg,
		world:    w,
		renderer: viz.NewRenderer(canvasWidth, canvasHeight, viz.DefaultView()),
		speed:    1,
		history:  make([]float64, 0, historyCapacity),
	}, nil
}

func (m *Model) Init() tea.Cmd { return tick() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.world.SetRunning(!m.world.Running())
		case "r":
			w, err := scene.Build(m.cfg)
			if err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.world = w
			m.t = 0
			m.history = m.history[:0]
		case "+", "=":
			if m.speed < 8 {
				m.speed++
			}
		case "-":
			if m.speed > 1 {
				m.speed--
			}
		}
		return m, nil

	case tickMsg:
		if m.world.Running() {
			for i := 0; i < m.speed; i++ {
				m.world.Step(m.cfg.Dt)
				m.t += m.cfg.Dt
			}
			m.history = append(m.history, metrics.KineticEnergyOf(m.world.Bodies()))
			if len(m.history) > historyCapacity {
				m.history = m.history[1:]
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) View() string {
	bodies := m.world.Bodies()
	frame := canvasStyle.Render(m.renderer.Render(bodies, m.world.Rods()))

	var stats strings.Builder
	stats.WriteString(titleStyle.Render(m.cfg.Name) + "\n\n")
	stats.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("time"), valueStyle.Render(fmt.Sprintf("%7.2fs", m.t))))
	stats.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("bodies"), valueStyle.Render(fmt.Sprintf("%d", len(bodies)))))
	stats.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("rods"), valueStyle.Render(fmt.Sprintf("%d", m.world.NumRods()))))
	stats.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("speed"), valueStyle.Render(fmt.Sprintf("%dx", m.speed))))
	stats.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("energy"), valueStyle.Render(fmt.Sprintf("%.3f", metrics.KineticEnergyOf(bodies)))))
	if !m.world.Running() {
		stats.WriteString("\n" + pausedStyle.Render("PAUSED"))
	}

	view := lipgloss.JoinHorizontal(lipgloss.Top, frame, "  "+strings.ReplaceAll(stats.String(), "\n", "\n  "))

	if len(m.history) > 2 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(6),
			asciigraph.Width(canvasWidth),
			asciigraph.Caption("kinetic energy"),
		)
		view += graphStyle.Render(graph)
	}

	view += helpStyle.Render("\nspace pause · r reset · +/- speed · q quit")
	return view
}

// Run launches the live view for a scene config and blocks until quit.
func Run(cfg *config.Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return m.err
}
