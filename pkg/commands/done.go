package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/runner/complete"
)

func addDone(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "done <item id>",
		Aliases: []string{"complete", "toggle"},
		Short:   "Toggle the completion of an item",
		Example: `
agenda done 0192f1c4-...
`,
		ValidArgsFunction: itemIDCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			id, err := ido.Resolve(args)
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := open(cmd)
			if err != nil {
				return oo.HandleError(err)
			}
			s := complete.Complete{
				ID:      id,
				Service: svc,
				Output:  oo,
			}
			err = s.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	options.AddIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
