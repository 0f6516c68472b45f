package frames

import (
	"math"

	"github.com/sonemaro/pulsebar/pkg/logger"
	"github.com/sonemaro/pulsebar/pkg/progress"
)

// record is the serialised form of one frame
type record struct {
	Tick      uint64             `json:"tick" yaml:"tick"`
	Mode      progress.Mode      `json:"mode" yaml:"mode"`
	Shape     progress.Shape     `json:"shape" yaml:"shape"`
	Percent   float64            `json:"percent" yaml:"percent"`
	Width     float64            `json:"bandWidth,omitempty" yaml:"bandWidth,omitempty"`
	Direction int                `json:"direction,omitempty" yaml:"direction,omitempty"`
	Rotation  float64            `json:"rotation" yaml:"rotation"`
	Split     bool               `json:"split" yaml:"split"`
	Segments  *progress.Segments `json:"segments,omitempty" yaml:"segments,omitempty"`
	Arc       *arcRecord         `json:"arc,omitempty" yaml:"arc,omitempty"`
	Final     bool               `json:"final,omitempty" yaml:"final,omitempty"`
}

type arcRecord struct {
	progress.Arc `yaml:",inline"`
	DashArray    string `json:"dashArray" yaml:"dashArray"`
	DashOffset   string `json:"dashOffset" yaml:"dashOffset"`
}

// stats summarises a frame sequence
type stats struct {
	Frames   int     `json:"frames" yaml:"frames"`
	Ticks    uint64  `json:"ticks" yaml:"ticks"`
	Splits   int     `json:"splitFrames" yaml:"splitFrames"`
	Flips    int     `json:"directionFlips" yaml:"directionFlips"`
	MinWidth float64 `json:"minBandWidth" yaml:"minBandWidth"`
	MaxWidth float64 `json:"maxBandWidth" yaml:"maxBandWidth"`
}

type document struct {
	Frames     []record `json:"frames" yaml:"frames"`
	Statistics *stats   `json:"statistics,omitempty" yaml:"statistics,omitempty"`
}

func (f *formatter) toRecord(fr progress.Frame) record {
	f.log.WithFields(logger.Fields{
		"tick": fr.Tick,
	}).Trace("Converting frame")

	r := record{
		Tick:    fr.Tick,
		Mode:    fr.Mode,
		Shape:   fr.Shape,
		Percent: fr.Percent,
		Final:   fr.Final,
	}

	if fr.Mode == progress.ModeIndeterminate {
		r.Width = fr.Band.Width
		r.Direction = int(fr.Band.Direction)
		r.Rotation = fr.Band.Rotation
		r.Split = fr.Bounds.Split
	}

	if fr.Shape == progress.ShapeRing {
		r.Arc = &arcRecord{
			Arc:        fr.Arc,
			DashArray:  fr.Arc.DashArray(),
			DashOffset: fr.Arc.DashOffset(),
		}
	} else {
		seg := fr.Segments
		r.Segments = &seg
	}

	return r
}

func (f *formatter) document(frames []progress.Frame) document {
	doc := document{Frames: make([]record, len(frames))}
	for i, fr := range frames {
		doc.Frames[i] = f.toRecord(fr)
	}
	if f.config.WithStats {
		doc.Statistics = f.calculateStats(frames)
	}
	return doc
}

func (f *formatter) calculateStats(frames []progress.Frame) *stats {
	f.log.Debug("Calculating frame statistics")

	s := &stats{
		Frames:   len(frames),
		MinWidth: math.Inf(1),
		MaxWidth: math.Inf(-1),
	}

	for i, fr := range frames {
		if fr.Tick > s.Ticks {
			s.Ticks = fr.Tick
		}
		if fr.Mode != progress.ModeIndeterminate {
			continue
		}
		if fr.Bounds.Split {
			s.Splits++
		}
		if i > 0 && frames[i-1].Mode == progress.ModeIndeterminate && frames[i-1].Band.Direction != fr.Band.Direction {
			s.Flips++
		}
		s.MinWidth = math.Min(s.MinWidth, fr.Band.Width)
		s.MaxWidth = math.Max(s.MaxWidth, fr.Band.Width)
	}

	if math.IsInf(s.MinWidth, 1) {
		s.MinWidth, s.MaxWidth = 0, 0
	}

	f.log.WithFields(logger.Fields{
		"frames": s.Frames,
		"splits": s.Splits,
		"flips":  s.Flips,
	}).Debug("Statistics calculated")

	return s
}
