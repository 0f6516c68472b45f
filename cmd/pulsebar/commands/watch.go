package commands

import (
	"github.com/spf13/cobra"

	"github.com/sonemaro/pulsebar/cmd/pulsebar/app"
)

func newWatchCommand(opts *Options) *cobra.Command {
	var flags indicatorFlags

	cmd := &cobra.Command{
		Use:   "watch [flags]",
		Short: "Show a bar and a ring in an interactive view",
		Long: `Open a full-screen view with a bar and a ring driven by the same
settings. Keys: r restarts the band, + and - change the percent by 5,
q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyIndicatorFlags(cmd, opts.Config, &flags); err != nil {
				return err
			}

			application := app.New(opts.Config, opts.appOptions...)
			defer application.Shutdown()

			return application.Watch()
		},
	}

	addIndicatorFlags(cmd, &flags)

	return cmd
}
