package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(agenda completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(agenda completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// itemIDCompletions offers stored item ids with their titles.
func itemIDCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := so.Config()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	events, err := store.Load(cmd.Context(), cfg, nil)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var ids []string
	for _, it := range events.All() {
		if strings.HasPrefix(it.ID, toComplete) {
			ids = append(ids, it.ID+"\t"+it.Date+" "+it.Title)
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
