package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sonemaro/pulsebar/cmd/pulsebar/app"
	"github.com/sonemaro/pulsebar/pkg/frames"
)

type framesOptions struct {
	*Options
	indicator indicatorFlags

	ticks      int
	output     string
	outputFile string
	noStats    bool
}

func newFramesCommand(opts *Options) *cobra.Command {
	fo := &framesOptions{
		Options: opts,
	}

	cmd := &cobra.Command{
		Use:   "frames [flags]",
		Short: "Dump the frames of a simulated run",
		Long: `Step an indicator on a manual clock and print every frame it paints:
the band state, the three bar segments or the ring arc with its dash
hooks. Nothing is timed, so the output is deterministic.`,
		Example: `  pulsebar frames --ticks 400
  pulsebar frames -s ring -o json -f frames.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyIndicatorFlags(cmd, fo.Config, &fo.indicator); err != nil {
				return err
			}
			if !frames.IsValidFormat(frames.Format(fo.output)) {
				return fmt.Errorf("invalid output format: must be one of [table json yaml]")
			}
			return dumpFrames(fo)
		},
	}

	addIndicatorFlags(cmd, &fo.indicator)
	cmd.Flags().IntVarP(&fo.ticks, "ticks", "n", 100,
		"number of clock ticks to record")
	cmd.Flags().StringVarP(&fo.output, "output", "o", string(frames.FormatTable),
		"output format: table|json|yaml")
	cmd.Flags().StringVarP(&fo.outputFile, "output-file", "f", "",
		"write output to file instead of stdout")
	cmd.Flags().BoolVar(&fo.noStats, "no-stats", false,
		"omit the statistics block")

	return cmd
}

func dumpFrames(opts *framesOptions) error {
	application := app.New(opts.Config, opts.appOptions...)
	defer application.Shutdown()

	return application.Frames(&app.FramesOptions{
		Ticks:      opts.ticks,
		Format:     frames.Format(opts.output),
		OutputPath: opts.outputFile,
		WithStats:  !opts.noStats,
	})
}
