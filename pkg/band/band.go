/*
Package band models the highlighted band of an indeterminate progress
indicator: a region of breathing width that sweeps forward around a closed
loop of 100 units.

The model is pure. Step returns the next state and never touches a clock,
a writer or any shared memory, so renderers and tests can drive it directly:

	s := band.New(50)
	p := band.DefaultParams()
	for i := 0; i < 10; i++ {
		s = s.Step(p)
	}
	b := s.Bounds() // b.Start, b.End, b.Split
*/
package band

import "math"

const (
	// LoopSpan is the total length of the closed loop the band sweeps around
	LoopSpan = 100.0

	// MinWidth is the lower breathing bound; below it the direction flips
	MinWidth = 30.0

	// MaxWidth is the upper breathing bound; above it the direction flips
	MaxWidth = 70.0

	// DefaultSpeed is the base increment applied per tick
	DefaultSpeed = 0.1

	// DefaultRotateFactor multiplies Speed to get the per-tick sweep
	DefaultRotateFactor = 3.0
)

// Direction is the sign of the width oscillation
type Direction int

const (
	Shrinking Direction = -1
	Growing   Direction = 1
)

// Params holds the constants of the per-tick transition
type Params struct {
	// Speed is the width change per tick
	Speed float64

	// RotateFactor scales Speed into the rotation advance per tick
	RotateFactor float64
}

// DefaultParams returns Speed 0.1 and RotateFactor 3
func DefaultParams() Params {
	return Params{
		Speed:        DefaultSpeed,
		RotateFactor: DefaultRotateFactor,
	}
}

// State is the animated part of an indeterminate indicator
type State struct {
	// Width is the band width. It breathes between MinWidth and MaxWidth
	// but may overshoot either bound by up to one Speed before reversing.
	Width float64

	// Direction is the sign of the next width change
	Direction Direction

	// Rotation is the position of the band's leading edge, always in [0, LoopSpan)
	Rotation float64
}

// Bounds is the band projected onto the loop
type Bounds struct {
	// Start is where the highlighted run begins when not split, or where
	// the trailing part of a split band ends
	Start float64

	// End is where the highlighted run ends when not split, or where the
	// leading part of a split band begins
	End float64

	// Split is true when the band straddles the loop's 0/100 seam
	Split bool
}

// New seeds a band of the given width at rotation 0, growing
func New(width float64) State {
	return State{
		Width:     width,
		Direction: Growing,
		Rotation:  0,
	}
}

// Step applies one tick. The reversal check looks at the width before it
// is updated, so the band can overshoot a bound by one step.
func (s State) Step(p Params) State {
	if s.Width > MaxWidth || s.Width < MinWidth {
		s.Direction = -s.Direction
	}
	s.Width += p.Speed * float64(s.Direction)
	s.Rotation = wrap(s.Rotation + p.Speed*p.RotateFactor)
	return s
}

// Reset restarts the animation phase with a new width. Direction is kept.
func (s *State) Reset(width float64) {
	s.Width = width
	s.Rotation = 0
}

// Bounds projects the state onto the loop
func (s State) Bounds() Bounds {
	width := clamp(s.Width, 0, LoopSpan)
	if s.Rotation+width >= LoopSpan {
		return Bounds{
			Start: s.Rotation + width - LoopSpan,
			End:   s.Rotation,
			Split: true,
		}
	}
	return Bounds{
		Start: s.Rotation,
		End:   s.Rotation + width,
		Split: false,
	}
}

func wrap(v float64) float64 {
	v = math.Mod(v, LoopSpan)
	if v < 0 {
		v += LoopSpan
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
