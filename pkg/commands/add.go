package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/category"
	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	io := &options.ItemOptions{}
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add an item to the agenda",
		Example: `
agenda add Write the report --at 09:30 --priority high
agenda add Gym --on tomorrow --at 18:00 -c health
agenda add Standup --at 09:15 --repeat "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR;COUNT=10"
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 && io.Title == "" {
				return errors.New("requires a title")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := open(cmd)
			if err != nil {
				return oo.HandleError(err)
			}
			fields, err := io.Fields(args, svc.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			s := add.Add{
				Fields:  fields,
				Repeat:  io.Repeat,
				Limit:   io.Limit,
				ShowID:  ido.ShowID,
				Service: svc,
				Output:  oo,
			}
			err = s.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	options.AddItemArgs(cmd, io)
	options.AddRepeatArgs(cmd, io)
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)
	registerItemCompletions(cmd)

	topLevel.AddCommand(cmd)
}

// registerItemCompletions completes the category and priority flags from the
// registry.
func registerItemCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("category", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		ids := make([]string, 0, len(category.IDs()))
		for _, id := range category.IDs() {
			ids = append(ids, string(id))
		}
		return ids, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("priority", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		var ps []string
		for _, p := range category.Priorities() {
			ps = append(ps, string(p.Priority))
		}
		return ps, cobra.ShellCompDirectiveNoFileComp
	})
}
