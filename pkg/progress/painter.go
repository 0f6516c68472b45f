package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
	"golang.org/x/time/rate"
)

// PainterConfig holds the options of a TerminalPainter
type PainterConfig struct {
	// Writer defaults to os.Stdout
	Writer io.Writer

	// Width is the line width in columns (0 = auto-detect)
	Width int

	// RingCells is the number of sample points drawn for a ring
	RingCells int

	// NoColor disables ANSI colour
	NoColor bool

	// MaxFPS caps how often animated frames are written (0 = unlimited).
	// Determinate and final frames are never dropped.
	MaxFPS int

	// Label is printed after the indicator
	Label string
}

// TerminalPainter redraws a single terminal line per frame
type TerminalPainter struct {
	config  PainterConfig
	writer  io.Writer
	width   int
	limiter *rate.Limiter
	lit     *color.Color
	unlit   *color.Color

	mu      sync.Mutex
	closed  bool
	painted int
	dropped int
}

// NewTerminalPainter creates a painter writing to config.Writer
func NewTerminalPainter(config PainterConfig) *TerminalPainter {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}
	if config.RingCells <= 0 {
		config.RingCells = 12
	}

	p := &TerminalPainter{
		config: config,
		writer: config.Writer,
		lit:    color.New(color.FgCyan, color.Bold),
		unlit:  color.New(color.FgHiBlack),
	}

	if config.MaxFPS > 0 {
		p.limiter = rate.NewLimiter(rate.Limit(config.MaxFPS), 1)
	}

	if config.NoColor {
		p.lit.DisableColor()
		p.unlit.DisableColor()
	} else {
		p.lit.EnableColor()
		p.unlit.EnableColor()
	}

	if config.Width > 0 {
		p.width = config.Width
	} else {
		p.width = p.terminalWidth()
	}

	return p
}

func (p *TerminalPainter) Paint(f Frame) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	if f.Mode == ModeIndeterminate && !f.Final && p.limiter != nil && !p.limiter.Allow() {
		p.dropped++
		return
	}

	p.clearLine()
	fmt.Fprint(p.writer, p.line(f))
	if f.Final {
		fmt.Fprint(p.writer, "\n")
	}
	p.painted++
}

func (p *TerminalPainter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

// Stats returns how many frames were written and how many were dropped by
// the frame-rate limiter
func (p *TerminalPainter) Stats() (painted, dropped int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.painted, p.dropped
}

// IsSupportedTerminal reports whether the writer is an interactive terminal
func (p *TerminalPainter) IsSupportedTerminal() bool {
	if f, ok := p.writer.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

func (p *TerminalPainter) line(f Frame) string {
	var out strings.Builder

	suffix := ""
	if f.Mode == ModeDeterminate {
		suffix = fmt.Sprintf(" %3.0f%%", f.Percent)
	}
	if p.config.Label != "" {
		suffix += " " + p.config.Label
	}

	left, right, lit, unlit := "[", "]", BarLit, BarUnlit
	n := p.width - 2 - runewidth.StringWidth(suffix)
	if f.Shape == ShapeRing {
		left, right, lit, unlit = "(", ")", RingLit, RingUnlit
		n = p.config.RingCells
	}
	if n < 10 && f.Shape == ShapeBar {
		n = 10
	}

	out.WriteString(left)
	for _, on := range Cells(f, n) {
		if on {
			out.WriteString(p.lit.Sprint(lit))
		} else {
			out.WriteString(p.unlit.Sprint(unlit))
		}
	}
	out.WriteString(right)
	out.WriteString(suffix)

	return out.String()
}

func (p *TerminalPainter) clearLine() {
	if p.IsSupportedTerminal() {
		fmt.Fprint(p.writer, "\r\033[K")
	} else {
		fmt.Fprint(p.writer, "\r")
	}
}

func (p *TerminalPainter) terminalWidth() int {
	if f, ok := p.writer.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return 80
}
