package commands

import (
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/sonemaro/pulsebar/cmd/pulsebar/app"
)

type runOptions struct {
	*Options
	indicator indicatorFlags

	duration     time.Duration
	tasks        int
	workers      int
	rateLimit    int
	taskDuration time.Duration
	label        string
}

func newRunCommand(opts *Options) *cobra.Command {
	ro := &runOptions{
		Options: opts,
	}

	cmd := &cobra.Command{
		Use:   "run [flags]",
		Short: "Render a live indicator",
		Long: `Render a live indicator on stdout.

Without --tasks the indicator animates until --duration elapses or the
process is interrupted. With --tasks a worker pool runs simulated tasks:
a determinate indicator shows the share of finished tasks and an
indeterminate one restarts its band every time a task finishes.`,
		Example: `  pulsebar run --duration 5s
  pulsebar run -d --tasks 40 --workers 4 --rate-limit 10
  pulsebar run -s ring --label syncing`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyIndicatorFlags(cmd, ro.Config, &ro.indicator); err != nil {
				return err
			}
			return runIndicator(ro)
		},
	}

	addIndicatorFlags(cmd, &ro.indicator)
	cmd.Flags().DurationVar(&ro.duration, "duration", 0,
		"stop after this long (0 = until interrupted)")
	cmd.Flags().IntVarP(&ro.tasks, "tasks", "t", 0,
		"number of simulated tasks to run")
	cmd.Flags().IntVar(&ro.workers, "workers", runtime.NumCPU(),
		"number of concurrent workers")
	cmd.Flags().IntVarP(&ro.rateLimit, "rate-limit", "r", 0,
		"task starts per second (0 = unlimited)")
	cmd.Flags().DurationVar(&ro.taskDuration, "task-duration", 200*time.Millisecond,
		"how long each simulated task works")
	cmd.Flags().StringVarP(&ro.label, "label", "l", "",
		"text printed after the indicator")

	return cmd
}

func runIndicator(opts *runOptions) error {
	application := app.New(opts.Config, opts.appOptions...)
	defer application.Shutdown()

	return application.Run(&app.RunOptions{
		Duration:     opts.duration,
		Tasks:        opts.tasks,
		Workers:      opts.workers,
		RateLimit:    opts.rateLimit,
		TaskDuration: opts.taskDuration,
		Label:        opts.label,
	})
}

