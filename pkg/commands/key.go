package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Print the categories, their colours and the priority markers",
		Example: `
agenda key
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := so.Config()
			if err != nil {
				return err
			}
			k := key.Key{Dark: options.DarkBackground(), Locale: cfg.Locale()}
			return k.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
