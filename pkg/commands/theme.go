package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
)

func addTheme(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the remembered colour theme",
		ValidArgs: []string{"dark", "light", "toggle"},
		Args:      cobra.MaximumNArgs(1),
		Example: `
agenda theme
agenda theme dark
agenda theme toggle
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := open(cmd)
			if err != nil {
				return oo.HandleError(err)
			}
			dark := svc.State().DarkMode
			if len(args) == 1 {
				switch strings.ToLower(args[0]) {
				case "dark", "on":
					dark = true
				case "light", "off":
					dark = false
				case "toggle":
					dark = !dark
				default:
					return oo.HandleError(fmt.Errorf("unknown theme %q (want dark, light or toggle)", args[0]))
				}
				if err := svc.SetDarkMode(cmd.Context(), dark); err != nil {
					return oo.HandleError(err)
				}
			}

			if oo.Structured() {
				return oo.Write(map[string]bool{"dark_mode": dark})
			}
			name := "light"
			if dark {
				name = "dark"
			}
			_, _ = fmt.Fprintf(color.Output, "theme: %s\n", color.New(color.Bold).Sprint(name))
			return nil
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
