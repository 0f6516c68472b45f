package config

import "time"

// Shape names accepted for PULSEBAR_SHAPE
const (
	ShapeBar  = "bar"
	ShapeRing = "ring"
)

// Constants for configuration limits and defaults
const (
	// DefaultPercent seeds the indicator when nothing is given
	DefaultPercent = 50.0

	// DefaultSize is the ring diameter in pixels
	DefaultSize = 48.0

	// DefaultStrokeWidthRatio is the ring stroke as a fraction of its size
	DefaultStrokeWidthRatio = 0.1

	// MaxStrokeWidthRatio keeps the ring radius positive
	MaxStrokeWidthRatio = 0.5

	// DefaultInterval is the animation tick period
	DefaultInterval = 16 * time.Millisecond

	// MinInterval bounds how fast the clock may tick
	MinInterval = time.Millisecond

	// DefaultMaxFPS caps terminal repaints
	DefaultMaxFPS = 30
)
