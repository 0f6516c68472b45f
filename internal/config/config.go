/*
Package config loads pulsebar settings from the environment and validates
them. Command-line flags override what is loaded here.

Environment Variables:

	PULSEBAR_DETERMINATE          Show a fixed percent instead of the animated band
	PULSEBAR_SHAPE                bar|ring
	PULSEBAR_PERCENT              Initial percent, also the initial band width
	PULSEBAR_SIZE                 Ring diameter in pixels
	PULSEBAR_STROKE_WIDTH_RATIO   Ring stroke width as a fraction of size
	PULSEBAR_SPEED                Band width change per tick
	PULSEBAR_ROTATE_FACTOR        Rotation multiplier applied to speed
	PULSEBAR_INTERVAL             Tick interval (Go duration, e.g. 16ms)
	PULSEBAR_WIDTH                Terminal columns (0 = detect)
	PULSEBAR_MAX_FPS              Repaint limit (0 = unlimited)
	PULSEBAR_NO_COLOR             Disable coloured output
	PULSEBAR_LOG_FORMAT           json|console
	PULSEBAR_VERBOSE              Verbosity level (number of 'v's)

Percent is deliberately not validated: the indicator clamps it into [0,100].
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration parameters for the application
type Config struct {
	Determinate      bool
	Shape            string
	Percent          float64
	Size             float64
	StrokeWidthRatio float64
	Speed            float64
	RotateFactor     float64
	Interval         time.Duration

	// Width is the painter line width (0 = auto-detect)
	Width int

	// MaxFPS caps animated repaints (0 = unlimited)
	MaxFPS int

	NoColor   bool
	LogFormat string
	Verbose   int
}

var validShapes = map[string]bool{
	ShapeBar:  true,
	ShapeRing: true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Load reads configuration from environment variables and validates it
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("determinate", false)
	v.SetDefault("shape", ShapeBar)
	v.SetDefault("percent", DefaultPercent)
	v.SetDefault("size", DefaultSize)
	v.SetDefault("stroke_width_ratio", DefaultStrokeWidthRatio)
	v.SetDefault("speed", 0.1)
	v.SetDefault("rotate_factor", 3.0)
	v.SetDefault("interval", DefaultInterval)
	v.SetDefault("width", 0)
	v.SetDefault("max_fps", DefaultMaxFPS)
	v.SetDefault("no_color", false)
	v.SetDefault("log_format", "json")
	v.SetDefault("verbose", "")

	v.SetEnvPrefix("PULSEBAR")
	v.AutomaticEnv()

	for _, key := range []string{
		"determinate", "shape", "percent", "size", "stroke_width_ratio",
		"speed", "rotate_factor", "interval", "width", "max_fps",
		"no_color", "log_format", "verbose",
	} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	cfg := Config{
		Determinate:      v.GetBool("determinate"),
		Shape:            strings.ToLower(strings.TrimSpace(v.GetString("shape"))),
		Percent:          v.GetFloat64("percent"),
		Size:             v.GetFloat64("size"),
		StrokeWidthRatio: v.GetFloat64("stroke_width_ratio"),
		Speed:            v.GetFloat64("speed"),
		RotateFactor:     v.GetFloat64("rotate_factor"),
		Interval:         v.GetDuration("interval"),
		Width:            v.GetInt("width"),
		MaxFPS:           v.GetInt("max_fps"),
		NoColor:          v.GetBool("no_color"),
		LogFormat:        strings.ToLower(v.GetString("log_format")),
		Verbose:          strings.Count(v.GetString("verbose"), "v"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	if !validShapes[c.Shape] {
		return fmt.Errorf("invalid shape: must be one of [bar ring]")
	}

	if c.Size <= 0 {
		return fmt.Errorf("size must be positive")
	}

	if c.StrokeWidthRatio <= 0 || c.StrokeWidthRatio > MaxStrokeWidthRatio {
		return fmt.Errorf("stroke width ratio must be in (0, 0.5]")
	}

	if c.Speed <= 0 {
		return fmt.Errorf("speed must be positive")
	}

	if c.RotateFactor <= 0 {
		return fmt.Errorf("rotate factor must be positive")
	}

	if c.Interval < MinInterval {
		return fmt.Errorf("interval must be at least 1ms")
	}

	if c.Width < 0 {
		return fmt.Errorf("width must be non-negative")
	}

	if c.MaxFPS < 0 {
		return fmt.Errorf("max fps must be non-negative")
	}

	if !validLogFormats[c.LogFormat] {
		return fmt.Errorf("invalid log format: must be one of [json console]")
	}

	return nil
}

// String returns a string representation of the configuration
func (c Config) String() string {
	return fmt.Sprintf(
		"Config{Determinate: %v, Shape: %s, Percent: %.2f, Size: %.1f, "+
			"StrokeWidthRatio: %.2f, Speed: %.3f, RotateFactor: %.2f, "+
			"Interval: %s, Width: %d, MaxFPS: %d, NoColor: %v, Verbose: %d}",
		c.Determinate, c.Shape, c.Percent, c.Size,
		c.StrokeWidthRatio, c.Speed, c.RotateFactor,
		c.Interval, c.Width, c.MaxFPS, c.NoColor, c.Verbose,
	)
}
