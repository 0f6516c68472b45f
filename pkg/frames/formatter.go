/*
Package frames records the frames an indicator paints and formats them as a
table, JSON or YAML. It backs the `pulsebar frames` command, which steps an
indicator with a manual clock and dumps every frame for inspection.

Basic usage:

	rec := frames.NewRecorder()
	ind := progress.New(cfg, log, progress.WithClock(m), progress.WithPainter(rec))
	ind.Mount()
	m.Advance(100)
	ind.Unmount()

	out, err := frames.NewFormatter(frames.Config{Format: frames.FormatJSON}, log).Format(rec.Frames())
*/
package frames

import (
	"fmt"

	"github.com/sonemaro/pulsebar/pkg/logger"
	"github.com/sonemaro/pulsebar/pkg/progress"
)

// Format represents the output format type
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Config holds formatter configuration
type Config struct {
	Format     Format
	WithStats  bool
	WithColors bool
}

// Formatter renders a frame sequence
type Formatter interface {
	Format([]progress.Frame) (string, error)
}

type formatter struct {
	config Config
	log    logger.Logger
}

// NewFormatter creates a new formatter instance
func NewFormatter(config Config, log logger.Logger) Formatter {
	return &formatter{
		config: config,
		log:    log,
	}
}

// Format renders frames according to the configured format
func (f *formatter) Format(frames []progress.Frame) (string, error) {
	if len(frames) == 0 {
		msg := "no frames to format"
		f.log.Error(msg)
		return "", fmt.Errorf("%s", msg)
	}

	f.log.WithFields(logger.Fields{
		"format":     f.config.Format,
		"frames":     len(frames),
		"withStats":  f.config.WithStats,
		"withColors": f.config.WithColors,
	}).Debug("Starting format operation")

	switch f.config.Format {
	case FormatTable:
		return f.formatTable(frames)
	case FormatJSON:
		return f.formatJSON(frames)
	case FormatYAML:
		return f.formatYAML(frames)
	default:
		msg := fmt.Sprintf("unsupported format: %s", f.config.Format)
		f.log.Error(msg)
		return "", fmt.Errorf("%s", msg)
	}
}

// IsValidFormat reports whether format names a supported output
func IsValidFormat(format Format) bool {
	switch format {
	case FormatTable, FormatJSON, FormatYAML:
		return true
	}
	return false
}
