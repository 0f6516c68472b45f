/*
Package app provides the application container for the pulsebar CLI. It
wires configuration, logging, the live indicator, the worker pool and the
frame formatter, and handles graceful shutdown.

Usage:

	a := app.New(cfg)
	defer a.Shutdown()

	if err := a.Run(&app.RunOptions{Tasks: 20, Workers: 4}); err != nil {
	    log.Fatal(err)
	}
*/
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/sonemaro/pulsebar/internal/config"
	"github.com/sonemaro/pulsebar/pkg/clock"
	"github.com/sonemaro/pulsebar/pkg/frames"
	"github.com/sonemaro/pulsebar/pkg/logger"
	"github.com/sonemaro/pulsebar/pkg/progress"
	"github.com/sonemaro/pulsebar/pkg/tui"
	"github.com/sonemaro/pulsebar/pkg/worker"
)

// RunOptions defines a live indicator session
type RunOptions struct {
	// Duration bounds an idle session (0 = until interrupted)
	Duration time.Duration

	// Tasks is the number of simulated tasks (0 = no worker pool)
	Tasks int

	// Workers is the pool size
	Workers int

	// RateLimit caps task starts per second (0 = unlimited)
	RateLimit int

	// TaskDuration is how long each simulated task works
	TaskDuration time.Duration

	// Label is printed after the indicator
	Label string
}

// FramesOptions defines an offline frame dump
type FramesOptions struct {
	// Ticks is the number of clock ticks to record
	Ticks int

	// Format of the dump (table, json, yaml)
	Format frames.Format

	// OutputPath is the destination file (empty for stdout)
	OutputPath string

	// WithStats appends a statistics block
	WithStats bool
}

// Option customises an App
type Option func(*App)

// WithFs replaces the OS filesystem used for output files
func WithFs(fs afero.Fs) Option {
	return func(a *App) {
		a.fs = fs
	}
}

// WithOutput replaces os.Stdout as the destination of painted frames and dumps
func WithOutput(w io.Writer) Option {
	return func(a *App) {
		a.stdout = w
	}
}

// WithLogger replaces the logger built from the configuration
func WithLogger(log logger.Logger) Option {
	return func(a *App) {
		a.log = log
	}
}

// App represents the main application container
type App struct {
	config *config.Config
	log    logger.Logger
	fs     afero.Fs
	stdout io.Writer

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu        sync.Mutex
	indicator *progress.Indicator
	closed    bool
}

// New creates a new application instance
func New(cfg *config.Config, opts ...Option) *App {
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		config: cfg,
		fs:     afero.NewOsFs(),
		stdout: os.Stdout,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.log == nil {
		a.initLogger()
	}
	a.setupSignalHandling()

	a.log.WithFields(logger.Fields{
		"config": cfg.String(),
	}).Debug("Application initialized")

	return a
}

// Context is cancelled on Shutdown or on the first interrupt signal
func (a *App) Context() context.Context {
	return a.ctx
}

// Run mounts a live indicator on stdout. With Tasks set, a worker pool runs
// simulated tasks and drives the indicator; otherwise the indicator animates
// until Duration elapses or the context is cancelled.
func (a *App) Run(opts *RunOptions) (err error) {
	defer func() {
		if r := recover(); r != nil {
			a.log.WithFields(logger.Fields{
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("Recovered from panic")
			err = fmt.Errorf("run aborted: %v", r)
		}
	}()

	ind := progress.New(a.indicatorConfig(), a.log, progress.WithPainter(
		progress.NewTerminalPainter(progress.PainterConfig{
			Writer:  a.stdout,
			Width:   a.config.Width,
			NoColor: a.config.NoColor,
			MaxFPS:  a.config.MaxFPS,
			Label:   opts.Label,
		}),
	))

	a.mu.Lock()
	a.indicator = ind
	a.mu.Unlock()

	ind.Mount()
	defer ind.Unmount()

	a.log.WithFields(logger.Fields{
		"mode":     ind.Mode(),
		"shape":    ind.Shape(),
		"tasks":    opts.Tasks,
		"duration": opts.Duration,
	}).Info("Starting indicator")

	if opts.Tasks > 0 {
		return a.runTasks(ind, opts)
	}

	ctx := a.ctx
	if opts.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(a.ctx, opts.Duration)
		defer cancel()
	}
	<-ctx.Done()

	a.log.Info("Indicator stopped")
	return nil
}

func (a *App) runTasks(ind *progress.Indicator, opts *RunOptions) error {
	pool, err := worker.NewPool(worker.Config{
		Workers:   opts.Workers,
		RateLimit: opts.RateLimit,
	})
	if err != nil {
		a.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to initialize worker pool")
		return fmt.Errorf("failed to initialize worker pool: %w", err)
	}

	tasks := make([]worker.Task, opts.Tasks)
	for i := range tasks {
		tasks[i] = worker.Task{ID: i + 1, Execute: simulatedTask(opts.TaskDuration)}
	}

	stats, err := pool.Run(a.ctx, tasks, func(done, total int, taskErr error) {
		if ind.Mode() == progress.ModeDeterminate {
			ind.SetProgressAmount(float64(done) * 100 / float64(total))
		} else {
			ind.SetProgressAmount(a.config.Percent)
		}

		if taskErr != nil {
			a.log.WithFields(logger.Fields{
				"error": taskErr,
			}).Warn("Task failed")
		}
	})

	a.log.WithFields(logger.Fields{
		"completed": stats.Completed,
		"failed":    stats.Failed,
		"duration":  stats.Duration,
	}).Info("Tasks finished")

	if err != nil {
		return fmt.Errorf("task run failed: %w", err)
	}
	return nil
}

func simulatedTask(d time.Duration) func(context.Context) error {
	return func(ctx context.Context) error {
		if d <= 0 {
			return ctx.Err()
		}
		t := time.NewTimer(d)
		defer t.Stop()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			return nil
		}
	}
}

// Frames steps an indicator on a manual clock and writes every painted frame
// in the requested format
func (a *App) Frames(opts *FramesOptions) error {
	if !frames.IsValidFormat(opts.Format) {
		return fmt.Errorf("invalid output format: %s", opts.Format)
	}
	if opts.Ticks < 0 {
		return fmt.Errorf("ticks must be non-negative")
	}

	m := clock.NewManual()
	rec := frames.NewRecorder()

	ind := progress.New(a.indicatorConfig(), a.log, progress.WithClock(m), progress.WithPainter(rec))
	ind.Mount()
	advanced := m.Advance(opts.Ticks)
	ind.Unmount()

	a.log.WithFields(logger.Fields{
		"ticks":  advanced,
		"frames": len(rec.Frames()),
		"format": opts.Format,
	}).Debug("Recorded frames")

	out, err := frames.NewFormatter(frames.Config{
		Format:     opts.Format,
		WithStats:  opts.WithStats,
		WithColors: !a.config.NoColor && opts.OutputPath == "",
	}, a.log).Format(rec.Frames())
	if err != nil {
		return fmt.Errorf("output formatting failed: %w", err)
	}

	if err := a.writeOutput(out, opts.OutputPath); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// Watch runs the interactive bar and ring view until the user quits
func (a *App) Watch() error {
	return tui.Run(tui.Config{
		Indicator: a.indicatorConfig(),
		Interval:  a.config.Interval,
		Width:     a.config.Width,
	}, a.log)
}

// Shutdown performs a graceful shutdown of the application
func (a *App) Shutdown() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	ind := a.indicator
	a.mu.Unlock()

	a.log.Debug("Initiating graceful shutdown")

	a.cancel()
	if ind != nil {
		ind.Unmount()
	}
	close(a.done)

	a.log.Debug("Shutdown complete")
	return nil
}

func (a *App) initLogger() {
	a.log = logger.NewLogger(logger.Config{
		Verbosity: a.config.Verbose,
		Format:    logger.Format(a.config.LogFormat),
	})

	a.log.WithFields(logger.Fields{
		"verbosity": a.config.Verbose,
	}).Debug("Logger initialized")
}

func (a *App) indicatorConfig() progress.Config {
	return progress.Config{
		Determinate:      a.config.Determinate,
		Shape:            progress.Shape(a.config.Shape),
		PercentCompleted: a.config.Percent,
		Size:             a.config.Size,
		StrokeWidthRatio: a.config.StrokeWidthRatio,
		Speed:            a.config.Speed,
		RotateFactor:     a.config.RotateFactor,
		Interval:         a.config.Interval,
	}
}

// writeOutput writes the formatted output to the specified destination
func (a *App) writeOutput(content string, outputPath string) error {
	a.log.WithFields(logger.Fields{
		"path": outputPath,
	}).Debug("Writing output")

	if outputPath == "" {
		_, err := fmt.Fprintln(a.stdout, content)
		if err != nil {
			a.log.WithFields(logger.Fields{
				"error": err,
			}).Error("Failed to write to stdout")
		}
		return err
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := a.fs.MkdirAll(dir, 0755); err != nil {
			a.log.WithFields(logger.Fields{
				"error": err,
				"path":  dir,
			}).Error("Failed to create output directory")
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := afero.WriteFile(a.fs, outputPath, []byte(content), 0644); err != nil {
		a.log.WithFields(logger.Fields{
			"error": err,
			"path":  outputPath,
		}).Error("Failed to write output file")
		return fmt.Errorf("failed to write output file: %w", err)
	}

	a.log.WithFields(logger.Fields{
		"path": outputPath,
	}).Info("Output written successfully")
	return nil
}
