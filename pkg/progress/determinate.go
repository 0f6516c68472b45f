package progress

import (
	"math"

	"github.com/sonemaro/pulsebar/pkg/band"
)

// Split is the output of a determinate indicator
type Split struct {
	Completed  float64 `json:"completed" yaml:"completed"`
	Incomplete float64 `json:"incomplete" yaml:"incomplete"`
}

// RenderDeterminate splits the loop at percent, which must already be clamped
func RenderDeterminate(percent float64) Split {
	return Split{
		Completed:  percent,
		Incomplete: band.LoopSpan - percent,
	}
}

// Segments lays the split out on the bar track. The third block is empty.
func (s Split) Segments() Segments {
	return Segments{
		First:  Segment{Weight: s.Completed, Highlighted: true},
		Second: Segment{Weight: s.Incomplete},
		Third:  Segment{Weight: 0},
	}
}

// Arc lays the split out on a ring starting at the origin
func (s Split) Arc(g Geometry) Arc {
	lit := s.Completed * g.Circumference / band.LoopSpan
	return Arc{
		Circumference: g.Circumference,
		Highlighted:   lit,
		Remaining:     g.Circumference - lit,
		Offset:        0,
	}
}

// ClampPercent forces v into [0,100]. NaN becomes 0.
func ClampPercent(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(band.LoopSpan, v))
}
