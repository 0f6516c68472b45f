package frames

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/sonemaro/pulsebar/pkg/progress"
)

// previewCells is the width of the inline preview column
const previewCells = 20

func (f *formatter) formatTable(frames []progress.Frame) (string, error) {
	f.log.Debug("Formatting table output")

	header := color.New(color.Bold)
	lit := color.New(color.FgCyan)
	if f.config.WithColors {
		f.log.Debug("Applying color formatting")
		header.EnableColor()
		lit.EnableColor()
	} else {
		header.DisableColor()
		lit.DisableColor()
	}

	var b strings.Builder
	shape := frames[0].Shape

	if shape == progress.ShapeRing {
		b.WriteString(header.Sprintf("%6s %8s %4s %8s %5s %10s %10s %10s  %s",
			"tick", "width", "dir", "rotation", "split", "lit", "remaining", "offset", "preview"))
	} else {
		b.WriteString(header.Sprintf("%6s %8s %4s %8s %5s %9s %9s %9s  %s",
			"tick", "width", "dir", "rotation", "split", "seg1", "seg2", "seg3", "preview"))
	}
	b.WriteString("\n")

	for _, fr := range frames {
		r := f.toRecord(fr)
		b.WriteString(fmt.Sprintf("%6d %8.2f %4d %8.2f %5t ", r.Tick, r.Width, r.Direction, r.Rotation, r.Split))

		if r.Arc != nil {
			b.WriteString(fmt.Sprintf("%10.3f %10.3f %10.3f", r.Arc.Highlighted, r.Arc.Remaining, r.Arc.Offset))
		} else {
			for _, seg := range r.Segments.All() {
				b.WriteString(fmt.Sprintf(" %8.2f", seg.Weight))
				if seg.Highlighted {
					b.WriteString("*")
				} else {
					b.WriteString(" ")
				}
			}
		}

		b.WriteString("  ")
		for _, on := range progress.Cells(fr, previewCells) {
			if on {
				b.WriteString(lit.Sprint(glyph(fr.Shape, true)))
			} else {
				b.WriteString(glyph(fr.Shape, false))
			}
		}
		b.WriteString("\n")
	}

	if f.config.WithStats {
		f.log.Debug("Adding statistics to output")
		s := f.calculateStats(frames)
		b.WriteString("\nStatistics:\n")
		b.WriteString(fmt.Sprintf("  Frames: %d\n", s.Frames))
		b.WriteString(fmt.Sprintf("  Ticks: %d\n", s.Ticks))
		b.WriteString(fmt.Sprintf("  Split Frames: %d\n", s.Splits))
		b.WriteString(fmt.Sprintf("  Direction Flips: %d\n", s.Flips))
		b.WriteString(fmt.Sprintf("  Band Width: %.2f..%.2f\n", s.MinWidth, s.MaxWidth))
	}

	return b.String(), nil
}

func glyph(shape progress.Shape, on bool) string {
	switch {
	case shape == progress.ShapeRing && on:
		return progress.RingLit
	case shape == progress.ShapeRing:
		return progress.RingUnlit
	case on:
		return progress.BarLit
	default:
		return progress.BarUnlit
	}
}
