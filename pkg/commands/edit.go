package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/runner/edit"
	"tableflip.dev/agenda/pkg/runner/remove"
)

func addEdit(topLevel *cobra.Command) {
	io := &options.ItemOptions{}
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "edit <item id>",
		Short: "Change the fields of an item",
		Long: `Edit loads an item and replaces only the fields given as flags. The id
and completion state are kept.`,
		Example: `
agenda edit 0192f1c4-... --at 10:00
agenda edit 0192f1c4-... --title "Call the bank" --on friday
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
			now := svc.Now()
			s := edit.Edit{
				ID: id,
				Change: func(draft item.Fields) (item.Fields, error) {
					return io.Merge(cmd, draft, now)
				},
				ShowID:  ido.ShowID,
				Service: svc,
				Output:  oo,
			}
			err = s.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	options.AddItemArgs(cmd, io)
	options.AddIDArgs(cmd, ido)
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)
	registerItemCompletions(cmd)

	topLevel.AddCommand(cmd)
}

func addDelete(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "delete <item id>",
		Aliases: []string{"rm", "remove"},
		Short:   "Delete an item",
		Long:    "Delete removes an item immediately. There is no undo.",
		Example: `
agenda delete 0192f1c4-...
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
			s := remove.Remove{
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
