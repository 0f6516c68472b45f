package progress

import "github.com/sonemaro/pulsebar/pkg/band"

// RenderSegments lays the band out on a three-block linear track. A band
// that wraps past the seam lights the two outer blocks instead of the
// middle one, so the highlight stays continuous around the loop.
func RenderSegments(b band.Bounds) Segments {
	return Segments{
		First:  Segment{Weight: b.Start, Highlighted: b.Split},
		Second: Segment{Weight: b.End - b.Start, Highlighted: !b.Split},
		Third:  Segment{Weight: band.LoopSpan - b.End, Highlighted: b.Split},
	}
}
