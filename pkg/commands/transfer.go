package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/category"
	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/runner/transfer"
)

func addExport(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}

	cmd := &cobra.Command{
		Use:   "export [file.ics]",
		Short: "Export items as an iCalendar file",
		Long: `Export writes every item, or those of one category, as VEVENTs. With no
file, or "-", the calendar is written to stdout.`,
		Example: `
agenda export agenda.ics
agenda export -c work > work.ics
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := open(cmd)
			if err != nil {
				return err
			}
			s := transfer.Export{
				Filter:  vo.Filter,
				Out:     cmd.OutOrStdout(),
				Service: svc,
			}
			if len(args) == 1 {
				s.Path = args[0]
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddFilterArgs(cmd, vo)

	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	var (
		fallback string
		limit    int
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "import <file.ics|->",
		Short: "Import events from an iCalendar file",
		Long: `Import creates one item per event. Recurring events are expanded into one
item per occurrence. Nothing is stored when any event fails validation.`,
		Example: `
agenda import holidays.ics --category personal
curl -s https://example.com/team.ics | agenda import - --dry-run
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			id, err := category.Parse(fallback)
			if err != nil {
				return err
			}
			svc, err := open(cmd)
			if err != nil {
				return err
			}
			s := transfer.Import{
				Path:     args[0],
				In:       cmd.InOrStdin(),
				Category: id,
				Limit:    limit,
				DryRun:   dryRun,
				Out:      cmd.OutOrStdout(),
				Service:  svc,
			}
			return s.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&fallback, "category", "c", string(category.Other),
		"Category for events whose CATEGORIES names none of ours.")
	cmd.Flags().IntVar(&limit, "limit", 0,
		"Maximum occurrences per recurring event (default 366, negative disables expansion).")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"Print what would be imported without storing it.")

	topLevel.AddCommand(cmd)
}
