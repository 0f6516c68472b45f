package progress

import (
	"math"
	"strconv"

	"github.com/sonemaro/pulsebar/pkg/band"
)

// Geometry describes a ring track
type Geometry struct {
	Size          float64
	StrokeWidth   float64
	Radius        float64
	Circumference float64
}

// RingGeometry derives the stroke path of a ring of the given diameter
func RingGeometry(size, strokeWidthRatio float64) Geometry {
	stroke := size * strokeWidthRatio
	radius := (size - stroke) / 2
	if radius < 0 {
		radius = 0
	}
	return Geometry{
		Size:          size,
		StrokeWidth:   stroke,
		Radius:        radius,
		Circumference: 2 * math.Pi * radius,
	}
}

// Arc is the ring output. Lengths are in stroke units, so Highlighted plus
// Remaining equals Circumference.
type Arc struct {
	Circumference float64 `json:"circumference" yaml:"circumference"`
	Highlighted   float64 `json:"highlighted" yaml:"highlighted"`
	Remaining     float64 `json:"remaining" yaml:"remaining"`

	// Offset is the stroke distance from the ring origin to where the
	// highlighted arc begins
	Offset float64 `json:"offset" yaml:"offset"`
}

// RenderArc maps the band onto a ring. A split band is drawn as one arc
// starting at End and wrapping past the origin to Start.
func RenderArc(b band.Bounds, g Geometry) Arc {
	scale := g.Circumference / band.LoopSpan

	var lit, from float64
	if b.Split {
		lit = (band.LoopSpan - b.End) + b.Start
		from = b.End
	} else {
		lit = b.End - b.Start
		from = b.Start
	}

	return Arc{
		Circumference: g.Circumference,
		Highlighted:   lit * scale,
		Remaining:     g.Circumference - lit*scale,
		Offset:        from * scale,
	}
}

// Covers reports whether the point at fraction (0..1) of the way around
// the ring lies inside the highlighted arc
func (a Arc) Covers(fraction float64) bool {
	if a.Circumference <= 0 {
		return false
	}
	d := fraction*a.Circumference - a.Offset
	d = math.Mod(d, a.Circumference)
	if d < 0 {
		d += a.Circumference
	}
	return d < a.Highlighted
}

// DashArray is the SVG stroke-dasharray value for the arc
func (a Arc) DashArray() string {
	return formatLength(a.Highlighted) + " " + formatLength(a.Remaining)
}

// DashOffset is the SVG stroke-dashoffset value for the arc
func (a Arc) DashOffset() string {
	return formatLength(-a.Offset)
}

func formatLength(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}
