package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/commands/options"
)

var (
	so = &options.StoreOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: base.Wrap80("A personal agenda on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddStoreArgs(cmd, so)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addEdit(topLevel)
	addDelete(topLevel)
	addDone(topLevel)
	addShow(topLevel)
	addNavigation(topLevel)
	addAnalyze(topLevel)
	addSuggest(topLevel)
	addQuote(topLevel)
	addTheme(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addReport(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addServe(topLevel)
	addCompletions(topLevel)
	addUpgrade(topLevel)
	addVersion(topLevel)
}

// open loads the agenda for a one-shot command.
func open(cmd *cobra.Command) (*app.Service, error) {
	svc, _, err := so.Service(cmd.Context(), so.Logger(false))
	return svc, err
}

// openQuiet is open for full screen commands, which must not write logs over
// the terminal unless --debug is set.
func openQuiet(cmd *cobra.Command) (*app.Service, error) {
	log := zap.NewNop()
	if so.Debug {
		log = so.Logger(false)
	}
	svc, _, err := so.Service(cmd.Context(), log)
	return svc, err
}
