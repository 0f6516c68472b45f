// Package tui shows a bar and a ring indicator side by side in a bubbletea
// program. Both indicators run on manual clocks advanced from the program's
// own tick message, so the event loop is the only goroutine touching them.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sonemaro/pulsebar/pkg/clock"
	"github.com/sonemaro/pulsebar/pkg/logger"
	"github.com/sonemaro/pulsebar/pkg/progress"
)

const (
	defaultWidth = 60
	minBarCells  = 10
	ringCells    = 16

	// PercentStep is how far + and - move the percent
	PercentStep = 5.0
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	litStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	unlitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	labelStyle = lipgloss.NewStyle().Width(6)
	helpStyle  = lipgloss.NewStyle().Faint(true)
)

// Config describes the indicators shown by the model
type Config struct {
	// Indicator is applied to both indicators; Shape is overridden
	Indicator progress.Config

	// Interval between animation ticks (default: Indicator.Interval)
	Interval time.Duration

	// Width of the bar row in columns (0 = 60 until the window reports a size)
	Width int
}

type tickMsg time.Time

// Model is a tea.Model driving one bar and one ring
type Model struct {
	bar       *progress.Indicator
	ring      *progress.Indicator
	barClock  *clock.Manual
	ringClock *clock.Manual

	log      logger.Logger
	interval time.Duration
	width    int
	percent  float64
	quitting bool
}

// NewModel creates both indicators and mounts them
func NewModel(config Config, log logger.Logger) Model {
	if log == nil {
		log = logger.Nop()
	}

	barCfg := config.Indicator
	barCfg.Shape = progress.ShapeBar
	ringCfg := config.Indicator
	ringCfg.Shape = progress.ShapeRing

	m := Model{
		barClock:  clock.NewManual(),
		ringClock: clock.NewManual(),
		log:       log,
		width:     config.Width,
	}
	m.bar = progress.New(barCfg, log, progress.WithClock(m.barClock))
	m.ring = progress.New(ringCfg, log, progress.WithClock(m.ringClock))
	m.percent = m.bar.Frame().Percent

	m.interval = config.Interval
	if m.interval <= 0 {
		m.interval = clock.DefaultInterval
	}
	if m.width <= 0 {
		m.width = defaultWidth
	}

	m.bar.Mount()
	m.ring.Mount()

	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.stop()
			return m, tea.Quit
		case "r":
			m.setPercent(m.percent)
		case "+", "=", "right":
			m.setPercent(m.percent + PercentStep)
		case "-", "_", "left":
			m.setPercent(m.percent - PercentStep)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		if m.quitting {
			return m, nil
		}
		m.barClock.Advance(1)
		m.ringClock.Advance(1)
		return m, m.tick()
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	barFrame := m.bar.Frame()
	ringFrame := m.ring.Frame()

	var b strings.Builder
	b.WriteString(titleStyle.Render("pulsebar"))
	b.WriteString(fmt.Sprintf("  %s  percent %.0f  tick %d\n\n", barFrame.Mode, m.percent, barFrame.Tick))

	n := m.width - 10
	if n < minBarCells {
		n = minBarCells
	}
	b.WriteString(labelStyle.Render("bar"))
	b.WriteString(renderCells(progress.Cells(barFrame, n), progress.BarLit, progress.BarUnlit))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("ring"))
	b.WriteString(renderCells(progress.Cells(ringFrame, ringCells), progress.RingLit, progress.RingUnlit))
	b.WriteString(fmt.Sprintf("  %s\n\n", ringFrame.Arc.DashArray()))

	b.WriteString(helpStyle.Render("r reset • +/- percent • q quit"))
	b.WriteString("\n")

	return b.String()
}

// Percent returns the percent last applied with r, + or -
func (m Model) Percent() float64 {
	return m.percent
}

// Frames returns the current bar and ring frames
func (m Model) Frames() (bar, ring progress.Frame) {
	return m.bar.Frame(), m.ring.Frame()
}

func (m *Model) setPercent(p float64) {
	m.percent = progress.ClampPercent(p)
	m.bar.SetProgressAmount(m.percent)
	m.ring.SetProgressAmount(m.percent)

	m.log.WithFields(logger.Fields{
		"percent": m.percent,
	}).Debug("Indicators reset")
}

func (m *Model) stop() {
	m.quitting = true
	m.bar.Unmount()
	m.ring.Unmount()
}

func renderCells(cells []bool, lit, unlit string) string {
	var b strings.Builder
	for _, on := range cells {
		if on {
			b.WriteString(litStyle.Render(lit))
		} else {
			b.WriteString(unlitStyle.Render(unlit))
		}
	}
	return b.String()
}

// Run starts the bubbletea program and blocks until the user quits
func Run(config Config, log logger.Logger, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(NewModel(config, log), opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}
