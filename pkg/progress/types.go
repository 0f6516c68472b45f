package progress

import (
	"time"

	"github.com/sonemaro/pulsebar/pkg/band"
)

// Mode selects between a known percent and an animated busy band
type Mode string

const (
	// ModeDeterminate shows a fixed percent and runs no clock
	ModeDeterminate Mode = "determinate"

	// ModeIndeterminate animates a band around the loop
	ModeIndeterminate Mode = "indeterminate"
)

// Shape selects the rendering target
type Shape string

const (
	// ShapeBar renders three linear segments
	ShapeBar Shape = "bar"

	// ShapeRing renders two arc lengths on a circle
	ShapeRing Shape = "ring"
)

// Config holds the construction options of an Indicator. Zero fields are
// filled from the default tags.
type Config struct {
	// Determinate selects ModeDeterminate
	Determinate bool

	// Shape is bar or ring
	Shape Shape `default:"bar"`

	// PercentCompleted is clamped into [0,100]. In indeterminate mode it
	// seeds the band width.
	PercentCompleted float64

	// Size is the ring diameter in pixels
	Size float64 `default:"48"`

	// StrokeWidthRatio is the ring stroke width as a fraction of Size
	StrokeWidthRatio float64 `default:"0.1"`

	// Speed is the band's per-tick width change
	Speed float64 `default:"0.1"`

	// RotateFactor scales Speed into the per-tick sweep
	RotateFactor float64 `default:"3"`

	// Interval is the tick period of the default clock
	Interval time.Duration `default:"16ms"`
}

// Mode derives the indicator mode from Determinate
func (c Config) Mode() Mode {
	if c.Determinate {
		return ModeDeterminate
	}
	return ModeIndeterminate
}

// Segment is one block of the linear track
type Segment struct {
	Weight      float64 `json:"weight" yaml:"weight"`
	Highlighted bool    `json:"highlighted" yaml:"highlighted"`
}

// Segments is the bar output. Weights always sum to band.LoopSpan.
type Segments struct {
	First  Segment `json:"first" yaml:"first"`
	Second Segment `json:"second" yaml:"second"`
	Third  Segment `json:"third" yaml:"third"`
}

// All returns the segments in track order
func (s Segments) All() []Segment {
	return []Segment{s.First, s.Second, s.Third}
}

// Sum returns the total weight
func (s Segments) Sum() float64 {
	return s.First.Weight + s.Second.Weight + s.Third.Weight
}

// HighlightedWeight returns the weight of the highlighted segments
func (s Segments) HighlightedWeight() float64 {
	var w float64
	for _, seg := range s.All() {
		if seg.Highlighted {
			w += seg.Weight
		}
	}
	return w
}

// Frame is a snapshot of everything a painter needs to draw an indicator
type Frame struct {
	Mode  Mode
	Shape Shape

	// Tick counts clock ticks applied since Mount
	Tick uint64

	// Percent is percentCompleted in determinate mode and the band width
	// in indeterminate mode
	Percent float64

	// Band and Bounds are only meaningful in indeterminate mode
	Band   band.State
	Bounds band.Bounds

	// Segments is set for ShapeBar
	Segments Segments

	// Arc is set for ShapeRing
	Arc Arc

	// Final marks the last frame painted before Unmount
	Final bool
}

// Painter draws frames onto some output surface
type Painter interface {
	// Paint draws a frame. It is called with the indicator lock held and
	// must not call back into the indicator.
	Paint(Frame)

	// Close releases the surface
	Close()
}
