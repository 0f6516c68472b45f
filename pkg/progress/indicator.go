/*
Package progress turns a percent or an animated busy band into renderable
proportions and drives the animation clock.

An Indicator is the composition root. It owns the band state, the clock and
an optional Painter:

	ind := progress.New(progress.Config{
		Shape:            progress.ShapeRing,
		PercentCompleted: 50,
	}, log, progress.WithPainter(progress.NewTerminalPainter(progress.PainterConfig{})))

	ind.Mount()
	defer ind.Unmount()

	ind.SetProgressAmount(65) // restarts the band phase

Ticks and SetProgressAmount are serialised by a mutex, so the state a
painter sees is always the result of whole transitions.
*/
package progress

import (
	"sync"

	"github.com/creasty/defaults"

	"github.com/sonemaro/pulsebar/pkg/band"
	"github.com/sonemaro/pulsebar/pkg/clock"
	"github.com/sonemaro/pulsebar/pkg/logger"
)

// Option customises an Indicator at construction
type Option func(*Indicator)

// WithClock replaces the default time.Ticker based clock
func WithClock(c clock.Clock) Option {
	return func(ind *Indicator) {
		ind.clock = c
	}
}

// WithPainter attaches an output surface. Without one, frames are only
// available through Frame.
func WithPainter(p Painter) Option {
	return func(ind *Indicator) {
		ind.painter = p
	}
}

// Indicator is one mounted progress indicator
type Indicator struct {
	config   Config
	mode     Mode
	params   band.Params
	geometry Geometry
	log      logger.Logger
	clock    clock.Clock

	mu      sync.Mutex
	painter Painter
	percent float64
	state   band.State
	ticks   uint64
	mounted bool
	frame   Frame
}

// New builds an unmounted indicator. Out-of-range percents are clamped and
// an unknown shape falls back to a bar.
func New(config Config, log logger.Logger, opts ...Option) *Indicator {
	if log == nil {
		log = logger.Nop()
	}
	if err := defaults.Set(&config); err != nil {
		log.WithFields(logger.Fields{
			"error": err,
		}).Warn("Failed to apply indicator defaults")
	}
	if config.Shape != ShapeBar && config.Shape != ShapeRing {
		config.Shape = ShapeBar
	}
	config.PercentCompleted = ClampPercent(config.PercentCompleted)

	ind := &Indicator{
		config: config,
		mode:   config.Mode(),
		params: band.Params{
			Speed:        config.Speed,
			RotateFactor: config.RotateFactor,
		},
		geometry: RingGeometry(config.Size, config.StrokeWidthRatio),
		log:      log,
		percent:  config.PercentCompleted,
		state:    band.New(config.PercentCompleted),
	}

	for _, opt := range opts {
		opt(ind)
	}
	if ind.clock == nil {
		ind.clock = clock.NewTicker(config.Interval)
	}

	ind.frame = ind.compose()

	ind.log.WithFields(logger.Fields{
		"mode":     ind.mode,
		"shape":    config.Shape,
		"percent":  config.PercentCompleted,
		"speed":    config.Speed,
		"rotate":   config.RotateFactor,
		"interval": config.Interval,
	}).Debug("Created indicator")

	return ind
}

// Mode returns the mode fixed at construction
func (ind *Indicator) Mode() Mode {
	return ind.mode
}

// Shape returns the shape fixed at construction
func (ind *Indicator) Shape() Shape {
	return ind.config.Shape
}

// Geometry returns the ring geometry derived from Size and StrokeWidthRatio
func (ind *Indicator) Geometry() Geometry {
	return ind.geometry
}

// Mount paints the first frame and, in indeterminate mode, starts the clock
func (ind *Indicator) Mount() {
	ind.mu.Lock()
	if ind.mounted {
		ind.mu.Unlock()
		return
	}
	ind.mounted = true
	ind.paint()
	ind.mu.Unlock()

	if ind.mode == ModeIndeterminate {
		ind.clock.Start(ind.tick)

		// an Unmount that ran before Start could not stop this clock
		if !ind.Mounted() {
			ind.clock.Stop()
			return
		}
	}

	ind.log.WithFields(logger.Fields{
		"mode":  ind.mode,
		"shape": ind.config.Shape,
	}).Debug("Mounted indicator")
}

// SetProgressAmount clamps percent into [0,100]. In indeterminate mode it
// becomes the band width and the rotation restarts at 0; in determinate
// mode it replaces percentCompleted.
func (ind *Indicator) SetProgressAmount(percent float64) {
	percent = ClampPercent(percent)

	ind.mu.Lock()
	defer ind.mu.Unlock()

	if ind.mode == ModeIndeterminate {
		ind.state.Reset(percent)
	}
	ind.percent = percent

	ind.log.WithFields(logger.Fields{
		"percent": percent,
		"mode":    ind.mode,
	}).Debug("Progress amount set")

	ind.paint()
}

// Frame returns the most recent frame
func (ind *Indicator) Frame() Frame {
	ind.mu.Lock()
	defer ind.mu.Unlock()
	return ind.frame
}

// Mounted reports whether the indicator is between Mount and Unmount
func (ind *Indicator) Mounted() bool {
	ind.mu.Lock()
	defer ind.mu.Unlock()
	return ind.mounted
}

// Unmount stops the clock, paints a final frame and releases the painter.
// Ticks that arrive once mounted is cleared are ignored, and the clock is
// stopped outside the lock so an in-flight tick can finish; no tick runs
// once Unmount returns.
func (ind *Indicator) Unmount() {
	ind.mu.Lock()
	if !ind.mounted {
		ind.mu.Unlock()
		return
	}
	ind.mounted = false
	ind.mu.Unlock()

	ind.clock.Stop()

	ind.mu.Lock()
	defer ind.mu.Unlock()

	ind.frame.Final = true
	if ind.painter != nil {
		ind.painter.Paint(ind.frame)
		ind.painter.Close()
		ind.painter = nil
	}

	ind.log.WithFields(logger.Fields{
		"ticks": ind.ticks,
	}).Debug("Unmounted indicator")
}

func (ind *Indicator) tick() {
	ind.mu.Lock()
	defer ind.mu.Unlock()

	if !ind.mounted {
		return
	}

	ind.state = ind.state.Step(ind.params)
	ind.percent = ind.state.Width
	ind.ticks++

	ind.log.WithFields(logger.Fields{
		"tick":     ind.ticks,
		"width":    ind.state.Width,
		"rotation": ind.state.Rotation,
	}).Trace("Indicator tick")

	ind.paint()
}

// paint must be called with mu held
func (ind *Indicator) paint() {
	ind.frame = ind.compose()
	if ind.mounted && ind.painter != nil {
		ind.painter.Paint(ind.frame)
	}
}

// compose must be called with mu held
func (ind *Indicator) compose() Frame {
	f := Frame{
		Mode:    ind.mode,
		Shape:   ind.config.Shape,
		Tick:    ind.ticks,
		Percent: ind.percent,
	}

	if ind.mode == ModeDeterminate {
		split := RenderDeterminate(ind.percent)
		if f.Shape == ShapeRing {
			f.Arc = split.Arc(ind.geometry)
		} else {
			f.Segments = split.Segments()
		}
		return f
	}

	f.Band = ind.state
	f.Bounds = ind.state.Bounds()
	if f.Shape == ShapeRing {
		f.Arc = RenderArc(f.Bounds, ind.geometry)
	} else {
		f.Segments = RenderSegments(f.Bounds)
	}
	return f
}
