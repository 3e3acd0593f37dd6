package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/runner/report"
	"tableflip.dev/agenda/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	var last string
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Display recently completed items grouped by category",
		Long: `Report lists completed items grouped by category within the specified time window.

Examples:
  agenda report
  agenda report --last 3d
  agenda report --last 1w2d`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := open(cmd)
			if err != nil {
				return oo.HandleError(err)
			}
			s := report.Report{
				Window:  last,
				Until:   svc.Now(),
				Service: svc,
				Output:  oo,
			}
			err = s.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&last, "last", timeutil.DefaultWindow, "time window to include (for example 3d, 1w)")
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
