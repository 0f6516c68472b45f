package progress

import (
	"math"

	"github.com/sonemaro/pulsebar/pkg/band"
)

// Glyphs used by the text painters
const (
	BarLit    = "█"
	BarUnlit  = "░"
	RingLit   = "●"
	RingUnlit = "○"
)

// BarCells quantises the segments onto width terminal cells. Cell edges are
// rounded from cumulative weights so the cells always add up to width.
func BarCells(s Segments, width int) []bool {
	if width <= 0 {
		return nil
	}

	cells := make([]bool, width)
	var cum float64
	from := 0
	for _, seg := range s.All() {
		cum += seg.Weight
		to := edge(cum, width)
		for i := from; i < to; i++ {
			cells[i] = seg.Highlighted
		}
		if to > from {
			from = to
		}
	}
	// float drift may leave the tail short of width
	last := s.Third.Highlighted
	for i := from; i < width; i++ {
		cells[i] = last
	}
	return cells
}

// RingCells samples the arc at n evenly spaced points around the ring
func RingCells(a Arc, n int) []bool {
	if n <= 0 {
		return nil
	}

	cells := make([]bool, n)
	for i := range cells {
		cells[i] = a.Covers((float64(i) + 0.5) / float64(n))
	}
	return cells
}

// Cells picks the layout matching the frame's shape
func Cells(f Frame, n int) []bool {
	if f.Shape == ShapeRing {
		return RingCells(f.Arc, n)
	}
	return BarCells(f.Segments, n)
}

// CountLit returns the number of highlighted cells
func CountLit(cells []bool) int {
	n := 0
	for _, c := range cells {
		if c {
			n++
		}
	}
	return n
}

func edge(cum float64, width int) int {
	e := int(math.Round(cum / band.LoopSpan * float64(width)))
	if e < 0 {
		return 0
	}
	if e > width {
		return width
	}
	return e
}
