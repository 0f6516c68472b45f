/*
Package commands implements the CLI command structure for pulsebar. It
provides the root command and the run, frames, watch and version
subcommands. Settings come from PULSEBAR_* environment variables first and
explicitly set flags override them.
*/
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sonemaro/pulsebar/cmd/pulsebar/app"
	"github.com/sonemaro/pulsebar/internal/config"
	"github.com/sonemaro/pulsebar/internal/version"
)

// Options holds command-line options that apply to all commands
type Options struct {
	Config *config.Config

	// appOptions are passed to every App; tests use them to capture output
	appOptions []app.Option

	verbose   int
	noColor   bool
	logFormat string
}

// indicatorFlags are shared by run, frames and watch
type indicatorFlags struct {
	determinate bool
	shape       string
	percent     float64
	speed       float64
	interval    time.Duration
	width       int
}

// NewRootCommand creates the root command for the application
func NewRootCommand() *cobra.Command {
	return newRootCommand(&Options{})
}

func newRootCommand(opts *Options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "pulsebar [command] [flags]",
		Short:   "Determinate and indeterminate progress indicators for the terminal",
		Version: version.Version,
		Long: `pulsebar renders progress indicators as a three-segment bar or a ring.

In determinate mode it shows a fixed percent. In indeterminate mode a
highlight band grows, shrinks and rotates around the track on every tick.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeCommand(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbose, "verbose", "v",
		"verbose output (can be used multiple times)")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false,
		"disable colored output")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "json",
		"log format: json|console")

	rootCmd.AddCommand(
		newRunCommand(opts),
		newFramesCommand(opts),
		newWatchCommand(opts),
		newVersionCommand(opts),
	)

	return rootCmd
}

// initializeCommand loads the environment configuration and applies the
// persistent flags that were set explicitly
func initializeCommand(cmd *cobra.Command, opts *Options) error {
	if cmd.Name() == "version" {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}
	if flags.Changed("no-color") {
		cfg.NoColor = opts.noColor
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = opts.logFormat
	}

	opts.Config = &cfg
	return nil
}

func addIndicatorFlags(cmd *cobra.Command, f *indicatorFlags) {
	cmd.Flags().BoolVarP(&f.determinate, "determinate", "d", false,
		"show a fixed percent instead of the animated band")
	cmd.Flags().StringVarP(&f.shape, "shape", "s", config.ShapeBar,
		"indicator shape: bar|ring")
	cmd.Flags().Float64VarP(&f.percent, "percent", "p", config.DefaultPercent,
		"percent completed, or the initial band width")
	cmd.Flags().Float64Var(&f.speed, "speed", 0.1,
		"band width change per tick")
	cmd.Flags().DurationVar(&f.interval, "interval", config.DefaultInterval,
		"tick interval")
	cmd.Flags().IntVarP(&f.width, "width", "w", 0,
		"line width in columns (0 = detect)")
}

// applyIndicatorFlags overrides the loaded config with explicitly set flags
// and validates the result
func applyIndicatorFlags(cmd *cobra.Command, cfg *config.Config, f *indicatorFlags) error {
	flags := cmd.Flags()

	if flags.Changed("determinate") {
		cfg.Determinate = f.determinate
	}
	if flags.Changed("shape") {
		cfg.Shape = f.shape
	}
	if flags.Changed("percent") {
		cfg.Percent = f.percent
	}
	if flags.Changed("speed") {
		cfg.Speed = f.speed
	}
	if flags.Changed("interval") {
		cfg.Interval = f.interval
	}
	if flags.Changed("width") {
		cfg.Width = f.width
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
