package progress

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonemaro/pulsebar/pkg/band"
	"github.com/sonemaro/pulsebar/pkg/clock"
)

type testWriter struct {
	buffer bytes.Buffer
	mu     sync.Mutex
}

func (w *testWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buffer.Write(p)
}

func (w *testWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buffer.String()
}

func TestTerminalPainter(t *testing.T) {
	tests := []struct {
		name   string
		config PainterConfig
		frame  Frame
		verify func(*testing.T, string)
	}{
		{
			name:   "determinate bar",
			config: PainterConfig{Width: 27, NoColor: true},
			frame: Frame{
				Mode:     ModeDeterminate,
				Shape:    ShapeBar,
				Percent:  50,
				Segments: RenderDeterminate(50).Segments(),
			},
			verify: func(t *testing.T, out string) {
				want := "[" + strings.Repeat(BarLit, 10) + strings.Repeat(BarUnlit, 10) + "]  50%"
				assert.Equal(t, "\r"+want, out)
			},
		},
		{
			name:   "indeterminate split bar",
			config: PainterConfig{Width: 22, NoColor: true},
			frame: Frame{
				Mode:  ModeIndeterminate,
				Shape: ShapeBar,
				Segments: RenderSegments(band.Bounds{
					Start: 59.5, End: 99.5, Split: true,
				}),
			},
			verify: func(t *testing.T, out string) {
				want := "[" + strings.Repeat(BarLit, 12) + strings.Repeat(BarUnlit, 8) + "]"
				assert.Equal(t, "\r"+want, out)
			},
		},
		{
			name:   "ring with label",
			config: PainterConfig{RingCells: 4, NoColor: true, Label: "syncing"},
			frame: Frame{
				Mode:  ModeIndeterminate,
				Shape: ShapeRing,
				Arc:   Arc{Circumference: 100, Highlighted: 50, Remaining: 50, Offset: 75},
			},
			verify: func(t *testing.T, out string) {
				assert.Equal(t, "\r("+RingLit+RingUnlit+RingUnlit+RingLit+") syncing", out)
			},
		},
		{
			name:   "wide label is measured in columns",
			config: PainterConfig{Width: 30, NoColor: true, Label: "同步"},
			frame: Frame{
				Mode:     ModeDeterminate,
				Shape:    ShapeBar,
				Percent:  50,
				Segments: RenderDeterminate(50).Segments(),
			},
			verify: func(t *testing.T, out string) {
				cells := strings.Count(out, BarLit) + strings.Count(out, BarUnlit)
				assert.Equal(t, 18, cells, "30 columns minus brackets, percent and label")
				assert.True(t, strings.HasSuffix(out, "]  50% 同步"))
			},
		},
		{
			name:   "final frame ends the line",
			config: PainterConfig{Width: 27, NoColor: true},
			frame: Frame{
				Mode:     ModeDeterminate,
				Shape:    ShapeBar,
				Percent:  100,
				Segments: RenderDeterminate(100).Segments(),
				Final:    true,
			},
			verify: func(t *testing.T, out string) {
				assert.True(t, strings.HasSuffix(out, "100%\n"))
			},
		},
		{
			name:   "colour output wraps glyphs in escapes",
			config: PainterConfig{Width: 27},
			frame: Frame{
				Mode:     ModeDeterminate,
				Shape:    ShapeBar,
				Percent:  50,
				Segments: RenderDeterminate(50).Segments(),
			},
			verify: func(t *testing.T, out string) {
				assert.Contains(t, out, "\x1b[")
				assert.Equal(t, 10, strings.Count(out, BarLit))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &testWriter{}
			tt.config.Writer = w

			p := NewTerminalPainter(tt.config)
			p.Paint(tt.frame)

			tt.verify(t, w.String())
		})
	}
}

func TestTerminalPainterFrameRate(t *testing.T) {
	w := &testWriter{}
	p := NewTerminalPainter(PainterConfig{Writer: w, Width: 40, NoColor: true, MaxFPS: 1})

	animated := Frame{Mode: ModeIndeterminate, Shape: ShapeBar, Segments: RenderSegments(band.New(50).Bounds())}
	for i := 0; i < 5; i++ {
		p.Paint(animated)
	}

	painted, dropped := p.Stats()
	assert.Equal(t, 1, painted)
	assert.Equal(t, 4, dropped)

	// determinate and final frames bypass the limiter
	p.Paint(Frame{Mode: ModeDeterminate, Shape: ShapeBar, Segments: RenderDeterminate(10).Segments()})
	animated.Final = true
	p.Paint(animated)

	painted, dropped = p.Stats()
	assert.Equal(t, 3, painted)
	assert.Equal(t, 4, dropped)
}

func TestTerminalPainterClosed(t *testing.T) {
	w := &testWriter{}
	p := NewTerminalPainter(PainterConfig{Writer: w, Width: 40, NoColor: true})
	p.Close()

	p.Paint(Frame{Mode: ModeDeterminate, Shape: ShapeBar})

	assert.Empty(t, w.String())
	assert.False(t, p.IsSupportedTerminal())
}

func TestIndicatorPaintsThroughTerminalPainter(t *testing.T) {
	w := &testWriter{}
	m := clock.NewManual()

	ind := New(Config{PercentCompleted: 50}, &mockLogger{},
		WithClock(m),
		WithPainter(NewTerminalPainter(PainterConfig{Writer: w, Width: 42, NoColor: true})),
	)
	ind.Mount()
	m.Advance(3)
	ind.Unmount()

	out := w.String()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\r")
	require.Len(t, lines, 6, "empty prefix, mount, three ticks and the final frame")

	for _, line := range lines[1:] {
		cells := strings.Count(line, BarLit) + strings.Count(line, BarUnlit)
		assert.Equal(t, 40, cells)
	}
	assert.True(t, strings.HasSuffix(out, "\n"))
}
